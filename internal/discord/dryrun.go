package discord

import (
	"context"
	"encoding/binary"
	"strconv"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DryRunMessenger logs what would be delivered and fabricates message IDs.
type DryRunMessenger struct {
	logger *zap.Logger
}

// NewDryRunMessenger creates the simulated messenger.
func NewDryRunMessenger(logger *zap.Logger) *DryRunMessenger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DryRunMessenger{logger: logger}
}

func (m *DryRunMessenger) Send(ctx context.Context, channel string, embed Embed) (string, error) {
	u := uuid.New()
	// Numeric like a real snowflake so later edits pass ID validation.
	id := strconv.FormatUint(binary.BigEndian.Uint64(u[8:])>>1, 10)
	m.logger.Info("discord dry-run send",
		zap.String("channel", channel),
		zap.String("message_id", id),
		zap.String("title", embed.Title),
		zap.Int("fields", len(embed.Fields)))
	return id, nil
}

func (m *DryRunMessenger) Edit(ctx context.Context, channel, messageID string, embed Embed) error {
	if err := validateMessageID(messageID); err != nil {
		return err
	}
	m.logger.Info("discord dry-run edit",
		zap.String("channel", channel),
		zap.String("message_id", messageID),
		zap.String("title", embed.Title))
	return nil
}

func (m *DryRunMessenger) Delete(ctx context.Context, channel, messageID string) error {
	if err := validateMessageID(messageID); err != nil {
		return err
	}
	m.logger.Info("discord dry-run delete",
		zap.String("channel", channel),
		zap.String("message_id", messageID))
	return nil
}
