package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MatiasXp0/forca-tatica/internal/domain"
)

func TestTypeFor(t *testing.T) {
	assert.Equal(t, EventType("vehicle_updated"), TypeFor(domain.KindVehicle, ActionUpdated))
	assert.Equal(t, EventType("personnel_deleted"), TypeFor(domain.KindPersonnel, ActionDeleted))
}

func TestDispatcher_FailingHandlerDoesNotStopOthers(t *testing.T) {
	d := NewInMemoryDispatcher(nil)
	eventType := TypeFor(domain.KindAnnouncement, ActionCreated)

	var calls []string
	d.Subscribe(eventType, func(ctx context.Context, e Event) error {
		calls = append(calls, "first")
		return errors.New("boom")
	})
	d.Subscribe(eventType, func(ctx context.Context, e Event) error {
		calls = append(calls, "second:"+e.RecordID)
		return nil
	})
	d.Subscribe(TypeFor(domain.KindUniform, ActionCreated), func(ctx context.Context, e Event) error {
		calls = append(calls, "other")
		return nil
	})

	err := d.Publish(context.Background(), Event{Type: eventType, RecordID: "a1"})
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second:a1"}, calls)
}

func TestDispatcher_NoListeners(t *testing.T) {
	d := NewInMemoryDispatcher(nil)
	assert.NoError(t, d.Publish(context.Background(), Event{Type: "nothing"}))
}
