package domain

import "time"

// AnnouncementPriority orders items on the communications board.
type AnnouncementPriority string

const (
	AnnouncementPriorityLow    AnnouncementPriority = "LOW"
	AnnouncementPriorityNormal AnnouncementPriority = "NORMAL"
	AnnouncementPriorityHigh   AnnouncementPriority = "HIGH"
	AnnouncementPriorityUrgent AnnouncementPriority = "URGENT"
)

// Valid reports whether p is a known priority.
func (p AnnouncementPriority) Valid() bool {
	switch p {
	case AnnouncementPriorityLow, AnnouncementPriorityNormal, AnnouncementPriorityHigh, AnnouncementPriorityUrgent:
		return true
	}
	return false
}

// Announcement is a post on the communications board.
type Announcement struct {
	ID               string
	Title            string
	Body             string
	Author           string
	Category         string
	Priority         AnnouncementPriority
	Pinned           bool
	ImageURL         string
	DiscordMessageID *string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
