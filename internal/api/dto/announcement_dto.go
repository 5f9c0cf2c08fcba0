package dto

import (
	"time"

	"github.com/MatiasXp0/forca-tatica/internal/domain"
)

// AnnouncementRequest is the create/replace payload of a board post.
type AnnouncementRequest struct {
	Title    string                      `json:"title"`
	Body     string                      `json:"body"`
	Author   string                      `json:"author"`
	Category string                      `json:"category"`
	Priority domain.AnnouncementPriority `json:"priority"`
	Pinned   bool                        `json:"pinned"`
	ImageURL string                      `json:"image_url"`
}

// AnnouncementResponse represents a board post.
type AnnouncementResponse struct {
	ID               string                      `json:"id"`
	Title            string                      `json:"title"`
	Body             string                      `json:"body"`
	Author           string                      `json:"author"`
	Category         string                      `json:"category"`
	Priority         domain.AnnouncementPriority `json:"priority"`
	Pinned           bool                        `json:"pinned"`
	ImageURL         string                      `json:"image_url,omitempty"`
	DiscordMessageID *string                     `json:"discord_message_id"`
	CreatedAt        time.Time                   `json:"created_at"`
	UpdatedAt        time.Time                   `json:"updated_at"`
}
