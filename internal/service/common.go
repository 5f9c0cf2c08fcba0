package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/MatiasXp0/forca-tatica/internal/domain"
	"github.com/MatiasXp0/forca-tatica/internal/events"
	apperrors "github.com/MatiasXp0/forca-tatica/pkg/util/errorutil"
)

// checkID rejects malformed identifiers before they reach the database.
func checkID(kind domain.RecordKind, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return apperrors.NewNotFound(string(kind), map[string]any{"id": id})
	}
	return nil
}

func publish(ctx context.Context, dispatcher events.Dispatcher, kind domain.RecordKind, action events.Action, recordID, actorID string, payload any) {
	if dispatcher == nil {
		return
	}
	_ = dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.TypeFor(kind, action),
		Kind:      kind,
		Action:    action,
		RecordID:  recordID,
		ActorID:   actorID,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	})
}

// fieldErrors collects per-field validation messages.
type fieldErrors map[string]any

func (f fieldErrors) require(field, value string) {
	if strings.TrimSpace(value) == "" {
		f[field] = "required"
	}
}

func (f fieldErrors) maxLen(field, value string, max int) {
	if len([]rune(value)) > max {
		f[field] = "too long"
	}
}

func (f fieldErrors) url(field, value string) {
	if value == "" {
		return
	}
	if !strings.HasPrefix(value, "https://") && !strings.HasPrefix(value, "http://") {
		f[field] = "must be an http(s) URL"
	}
}

func (f fieldErrors) err() error {
	if len(f) == 0 {
		return nil
	}
	return apperrors.NewValidationError("invalid input", f)
}

func cleanList(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
