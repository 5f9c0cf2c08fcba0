package domain

import "time"

// PersonnelStatus tracks duty state.
type PersonnelStatus string

const (
	PersonnelStatusActive   PersonnelStatus = "ACTIVE"
	PersonnelStatusLeave    PersonnelStatus = "LEAVE"
	PersonnelStatusInactive PersonnelStatus = "INACTIVE"
)

// Valid reports whether s is a known status.
func (s PersonnelStatus) Valid() bool {
	switch s {
	case PersonnelStatusActive, PersonnelStatusLeave, PersonnelStatusInactive:
		return true
	}
	return false
}

// Ranks lists the unit's ranks, most senior first.
var Ranks = []string{
	"Coronel",
	"Tenente-Coronel",
	"Major",
	"Capitão",
	"1º Tenente",
	"2º Tenente",
	"Aspirante",
	"Subtenente",
	"1º Sargento",
	"2º Sargento",
	"3º Sargento",
	"Cabo",
	"Soldado",
	"Recruta",
}

// RankSeniority returns the rank's position in Ranks (0 is most senior) or -1.
func RankSeniority(rank string) int {
	for i, r := range Ranks {
		if r == rank {
			return i
		}
	}
	return -1
}

// Personnel is a member of the unit hierarchy.
type Personnel struct {
	ID               string
	Name             string
	Rank             string
	BadgeNumber      string
	Callsign         string
	Position         string
	SuperiorID       *string
	Status           PersonnelStatus
	JoinedAt         *time.Time
	DiscordMessageID *string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// PersonnelNode is a personnel record with its direct subordinates.
type PersonnelNode struct {
	Personnel
	Subordinates []*PersonnelNode
}
