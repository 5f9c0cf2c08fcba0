package dto

import (
	"time"

	"github.com/MatiasXp0/forca-tatica/internal/domain"
)

// VehicleRequest payload.
type VehicleRequest struct {
	Name     string               `json:"name"`
	Model    string               `json:"model"`
	Plate    string               `json:"plate"`
	Callsign string               `json:"callsign"`
	Status   domain.VehicleStatus `json:"status"`
	Notes    string               `json:"notes"`
	ImageURL string               `json:"image_url"`
}

// VehicleResponse represents a roster entry.
type VehicleResponse struct {
	ID               string               `json:"id"`
	Name             string               `json:"name"`
	Model            string               `json:"model"`
	Plate            string               `json:"plate"`
	Callsign         string               `json:"callsign"`
	Status           domain.VehicleStatus `json:"status"`
	Notes            string               `json:"notes"`
	ImageURL         string               `json:"image_url,omitempty"`
	DiscordMessageID *string              `json:"discord_message_id"`
	CreatedAt        time.Time            `json:"created_at"`
	UpdatedAt        time.Time            `json:"updated_at"`
}
