package domain

import "time"

// Uniform is an entry of the uniform catalog.
type Uniform struct {
	ID               string
	Name             string
	Category         string
	Description      string
	Items            []string
	ImageURL         string
	DiscordMessageID *string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
