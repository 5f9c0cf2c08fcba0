package dto

import "time"

// UniformRequest is the create/replace payload of a catalog entry.
type UniformRequest struct {
	Name        string   `json:"name"`
	Category    string   `json:"category"`
	Description string   `json:"description"`
	Items       []string `json:"items"`
	ImageURL    string   `json:"image_url"`
}

// UniformResponse represents a catalog entry.
type UniformResponse struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Category         string    `json:"category"`
	Description      string    `json:"description"`
	Items            []string  `json:"items"`
	ImageURL         string    `json:"image_url,omitempty"`
	DiscordMessageID *string   `json:"discord_message_id"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}
