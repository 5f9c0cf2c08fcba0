package dto

import (
	"github.com/MatiasXp0/forca-tatica/internal/discord"
	"github.com/MatiasXp0/forca-tatica/internal/observability"
)

// Proxy actions.
const (
	ProxyActionSend   = "send"
	ProxyActionEdit   = "edit"
	ProxyActionDelete = "delete"
)

// ProxyRequest asks the server to act on a chat message on the caller's behalf.
type ProxyRequest struct {
	Action    string        `json:"action" validate:"required,oneof=send edit delete"`
	Kind      string        `json:"kind" validate:"required"`
	MessageID string        `json:"message_id" validate:"required_unless=Action send,snowflake"`
	Embed     discord.Embed `json:"embed"`
}

// ProxyResponse reports the affected message.
type ProxyResponse struct {
	Action    string `json:"action"`
	MessageID string `json:"message_id"`
}

// SyncResponse reports a forced resync of one record.
type SyncResponse struct {
	Kind    string                    `json:"kind"`
	ID      string                    `json:"id"`
	Outcome observability.SyncOutcome `json:"outcome"`
}
