package dto

import (
	"time"

	"github.com/MatiasXp0/forca-tatica/internal/domain"
)

// PersonnelRequest payload. JoinedAt accepts RFC 3339 or YYYY-MM-DD.
type PersonnelRequest struct {
	Name        string                 `json:"name"`
	Rank        string                 `json:"rank"`
	BadgeNumber string                 `json:"badge_number"`
	Callsign    string                 `json:"callsign"`
	Position    string                 `json:"position"`
	SuperiorID  *string                `json:"superior_id"`
	Status      domain.PersonnelStatus `json:"status"`
	JoinedAt    string                 `json:"joined_at"`
}

// PersonnelResponse represents a member of the unit.
type PersonnelResponse struct {
	ID               string                 `json:"id"`
	Name             string                 `json:"name"`
	Rank             string                 `json:"rank"`
	BadgeNumber      string                 `json:"badge_number"`
	Callsign         string                 `json:"callsign"`
	Position         string                 `json:"position"`
	SuperiorID       *string                `json:"superior_id"`
	Status           domain.PersonnelStatus `json:"status"`
	JoinedAt         *time.Time             `json:"joined_at"`
	DiscordMessageID *string                `json:"discord_message_id"`
	CreatedAt        time.Time              `json:"created_at"`
	UpdatedAt        time.Time              `json:"updated_at"`
}

// PersonnelNodeResponse is one node of the chain of command.
type PersonnelNodeResponse struct {
	PersonnelResponse
	Subordinates []PersonnelNodeResponse `json:"subordinates"`
}
