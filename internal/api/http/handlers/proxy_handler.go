package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/MatiasXp0/forca-tatica/internal/api/dto"
	"github.com/MatiasXp0/forca-tatica/internal/discord"
	"github.com/MatiasXp0/forca-tatica/internal/domain"
	apperrors "github.com/MatiasXp0/forca-tatica/pkg/util/errorutil"
)

// ProxyHandler relays chat messages for clients that must not hold the
// platform credentials. Only channels configured for a record kind are
// reachable.
type ProxyHandler struct {
	messenger discord.Messenger
	channels  discord.Channels
	logger    *zap.Logger
}

// NewProxyHandler constructs handler. A nil messenger makes every call fail
// with 503.
func NewProxyHandler(messenger discord.Messenger, channels discord.Channels, logger *zap.Logger) *ProxyHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProxyHandler{messenger: messenger, channels: channels, logger: logger}
}

// Handle POST /discord/proxy.
func (h *ProxyHandler) Handle(c *fiber.Ctx) error {
	if h.messenger == nil {
		return apperrors.NewDomainError("PROXY_UNAVAILABLE", "chat delivery is disabled", http.StatusServiceUnavailable, nil)
	}

	var req dto.ProxyRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	req.Action = strings.ToLower(strings.TrimSpace(req.Action))
	req.Kind = strings.ToLower(strings.TrimSpace(req.Kind))
	req.MessageID = strings.TrimSpace(req.MessageID)
	if err := validateRequest(&req); err != nil {
		return err
	}
	action, messageID := req.Action, req.MessageID

	kind, ok := domain.ParseRecordKind(req.Kind)
	if !ok {
		return apperrors.NewValidationError("invalid input", map[string]any{"kind": "unknown record kind"})
	}
	channel, ok := h.channels.For(kind)
	if !ok {
		return apperrors.NewForbidden("no channel configured for " + string(kind))
	}

	ctx := c.UserContext()
	switch action {
	case dto.ProxyActionSend:
		embed, err := proxyEmbed(req.Embed)
		if err != nil {
			return err
		}
		id, err := h.messenger.Send(ctx, channel, embed)
		if err != nil {
			return h.upstream(kind, action, err)
		}
		messageID = id
	case dto.ProxyActionEdit:
		embed, err := proxyEmbed(req.Embed)
		if err != nil {
			return err
		}
		if err := h.messenger.Edit(ctx, channel, messageID, embed); err != nil {
			return h.upstream(kind, action, err)
		}
	case dto.ProxyActionDelete:
		if err := h.messenger.Delete(ctx, channel, messageID); err != nil && !errors.Is(err, discord.ErrUnknownMessage) {
			return h.upstream(kind, action, err)
		}
	}

	status := http.StatusOK
	if action == dto.ProxyActionSend {
		status = http.StatusCreated
	}
	return c.Status(status).JSON(fiber.Map{"data": dto.ProxyResponse{Action: action, MessageID: messageID}})
}

func (h *ProxyHandler) upstream(kind domain.RecordKind, action string, err error) error {
	if errors.Is(err, discord.ErrUnknownMessage) {
		return apperrors.NewNotFound("message", nil)
	}
	if errors.Is(err, discord.ErrInvalidMessageID) {
		return apperrors.NewValidationError("invalid input", map[string]any{"message_id": "must be a numeric id"})
	}
	h.logger.Warn("proxy request failed",
		zap.String("kind", string(kind)),
		zap.String("action", action),
		zap.Error(err))
	return apperrors.NewUpstreamError(err)
}

func proxyEmbed(e discord.Embed) (discord.Embed, error) {
	e = discord.Normalize(e)
	if e.Empty() {
		return e, apperrors.NewValidationError("invalid input", map[string]any{"embed": "must have a title, description, field or image"})
	}
	return e, nil
}
