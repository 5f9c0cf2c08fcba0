package discord

import (
	"fmt"
	"strings"

	"github.com/MatiasXp0/forca-tatica/internal/domain"
)

const (
	colorGray   = 0x95A5A6
	colorBlue   = 0x3498DB
	colorOrange = 0xE67E22
	colorRed    = 0xE74C3C
	colorGreen  = 0x2ECC71
	colorYellow = 0xF1C40F
	colorSlate  = 0x7F8C8D
	colorNavy   = 0x1F2A44
)

var announcementColors = map[domain.AnnouncementPriority]int{
	domain.AnnouncementPriorityLow:    colorGray,
	domain.AnnouncementPriorityNormal: colorBlue,
	domain.AnnouncementPriorityHigh:   colorOrange,
	domain.AnnouncementPriorityUrgent: colorRed,
}

var vehicleColors = map[domain.VehicleStatus]int{
	domain.VehicleStatusAvailable:   colorGreen,
	domain.VehicleStatusInService:   colorBlue,
	domain.VehicleStatusMaintenance: colorYellow,
	domain.VehicleStatusRetired:     colorSlate,
}

var personnelColors = map[domain.PersonnelStatus]int{
	domain.PersonnelStatusActive:   colorGreen,
	domain.PersonnelStatusLeave:    colorYellow,
	domain.PersonnelStatusInactive: colorSlate,
}

var vehicleStatusLabels = map[domain.VehicleStatus]string{
	domain.VehicleStatusAvailable:   "Disponível",
	domain.VehicleStatusInService:   "Em serviço",
	domain.VehicleStatusMaintenance: "Em manutenção",
	domain.VehicleStatusRetired:     "Baixada",
}

var personnelStatusLabels = map[domain.PersonnelStatus]string{
	domain.PersonnelStatusActive:   "Ativo",
	domain.PersonnelStatusLeave:    "Afastado",
	domain.PersonnelStatusInactive: "Inativo",
}

// AnnouncementEmbed renders a communications board post.
func AnnouncementEmbed(a *domain.Announcement) Embed {
	title := a.Title
	if a.Pinned {
		title = "📌 " + title
	}
	if a.Priority == domain.AnnouncementPriorityUrgent {
		title = "🚨 " + title
	}
	e := Embed{
		Title:       title,
		Description: a.Body,
		Color:       announcementColors[a.Priority],
		Author:      a.Author,
		ImageURL:    a.ImageURL,
		Timestamp:   a.UpdatedAt,
		Footer:      footer(domain.KindAnnouncement, a.ID),
	}
	if a.Category != "" {
		e.Fields = append(e.Fields, Field{Name: "Categoria", Value: a.Category, Inline: true})
	}
	e.Fields = append(e.Fields, Field{Name: "Prioridade", Value: string(a.Priority), Inline: true})
	return Normalize(e)
}

// UniformEmbed renders a uniform catalog entry.
func UniformEmbed(u *domain.Uniform) Embed {
	e := Embed{
		Title:       u.Name,
		Description: u.Description,
		Color:       colorNavy,
		ImageURL:    u.ImageURL,
		Timestamp:   u.UpdatedAt,
		Footer:      footer(domain.KindUniform, u.ID),
	}
	if u.Category != "" {
		e.Fields = append(e.Fields, Field{Name: "Categoria", Value: u.Category, Inline: true})
	}
	if len(u.Items) > 0 {
		e.Fields = append(e.Fields, Field{Name: "Peças", Value: bulletList(u.Items)})
	}
	return Normalize(e)
}

// VehicleEmbed renders a vehicle roster entry.
func VehicleEmbed(v *domain.Vehicle) Embed {
	e := Embed{
		Title:       v.Name,
		Description: v.Notes,
		Color:       vehicleColors[v.Status],
		ImageURL:    v.ImageURL,
		Timestamp:   v.UpdatedAt,
		Footer:      footer(domain.KindVehicle, v.ID),
		Fields: []Field{
			{Name: "Modelo", Value: v.Model, Inline: true},
			{Name: "Placa", Value: v.Plate, Inline: true},
			{Name: "Prefixo", Value: v.Callsign, Inline: true},
			{Name: "Situação", Value: labelOr(vehicleStatusLabels[v.Status], string(v.Status)), Inline: true},
		},
	}
	return Normalize(e)
}

// PersonnelEmbed renders a personnel record. superiorName may be empty.
func PersonnelEmbed(p *domain.Personnel, superiorName string) Embed {
	e := Embed{
		Title:     strings.TrimSpace(p.Rank + " " + p.Name),
		Color:     personnelColors[p.Status],
		Timestamp: p.UpdatedAt,
		Footer:    footer(domain.KindPersonnel, p.ID),
		Fields: []Field{
			{Name: "Posto/Graduação", Value: p.Rank, Inline: true},
			{Name: "Matrícula", Value: p.BadgeNumber, Inline: true},
			{Name: "Prefixo", Value: p.Callsign, Inline: true},
			{Name: "Função", Value: p.Position, Inline: true},
			{Name: "Superior", Value: superiorName, Inline: true},
			{Name: "Situação", Value: labelOr(personnelStatusLabels[p.Status], string(p.Status)), Inline: true},
		},
	}
	if p.JoinedAt != nil {
		e.Fields = append(e.Fields, Field{Name: "Ingresso", Value: p.JoinedAt.Format("02/01/2006"), Inline: true})
	}
	return Normalize(e)
}

func footer(kind domain.RecordKind, id string) string {
	return fmt.Sprintf("%s • %s", kind, id)
}

func bulletList(items []string) string {
	var b strings.Builder
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString("• ")
		b.WriteString(item)
	}
	return b.String()
}

func labelOr(label, fallback string) string {
	if label != "" {
		return label
	}
	return fallback
}
