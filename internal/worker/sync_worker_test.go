package worker

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/MatiasXp0/forca-tatica/internal/domain"
	"github.com/MatiasXp0/forca-tatica/internal/events"
	"github.com/MatiasXp0/forca-tatica/internal/observability"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type recordingSyncer struct {
	mu    sync.Mutex
	calls []string
	block chan struct{}
}

func (r *recordingSyncer) record(s string) {
	if r.block != nil {
		<-r.block
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, s)
}

func (r *recordingSyncer) SyncRecord(ctx context.Context, kind domain.RecordKind, id string) (observability.SyncOutcome, error) {
	r.record("sync:" + string(kind) + ":" + id)
	if id == "bad" {
		return observability.SyncFailed, errors.New("boom")
	}
	return observability.SyncSent, nil
}

func (r *recordingSyncer) RemoveMessage(ctx context.Context, kind domain.RecordKind, recordID string, messageID *string) (observability.SyncOutcome, error) {
	msg := "<nil>"
	if messageID != nil {
		msg = *messageID
	}
	r.record("remove:" + string(kind) + ":" + recordID + ":" + msg)
	return observability.SyncDeleted, nil
}

func TestSyncWorker_ProcessesInOrder(t *testing.T) {
	syncer := &recordingSyncer{}
	w := NewSyncWorker(syncer, nil, nil, Options{})
	dispatcher := events.NewInMemoryDispatcher(nil)
	w.Subscribe(dispatcher)
	w.Start(context.Background())

	ctx := context.Background()
	msgID := "m-1"
	require.NoError(t, dispatcher.Publish(ctx, events.Event{Type: events.TypeFor(domain.KindVehicle, events.ActionCreated), Kind: domain.KindVehicle, Action: events.ActionCreated, RecordID: "v1"}))
	require.NoError(t, dispatcher.Publish(ctx, events.Event{Type: events.TypeFor(domain.KindVehicle, events.ActionUpdated), Kind: domain.KindVehicle, Action: events.ActionUpdated, RecordID: "bad"}))
	require.NoError(t, dispatcher.Publish(ctx, events.Event{
		Type: events.TypeFor(domain.KindVehicle, events.ActionDeleted), Kind: domain.KindVehicle, Action: events.ActionDeleted, RecordID: "v1",
		Payload: events.DeletedPayload{DiscordMessageID: &msgID},
	}))
	w.Stop()

	assert.Equal(t, []string{"sync:vehicle:v1", "sync:vehicle:bad", "remove:vehicle:v1:m-1"}, syncer.calls)
}

func TestSyncWorker_DropsWhenQueueFull(t *testing.T) {
	syncer := &recordingSyncer{block: make(chan struct{})}
	metrics := observability.NewMetrics()
	w := NewSyncWorker(syncer, nil, metrics, Options{QueueSize: 1})

	event := events.Event{Kind: domain.KindUniform, Action: events.ActionUpdated, RecordID: "u1"}
	require.NoError(t, w.Enqueue(context.Background(), event))
	require.NoError(t, w.Enqueue(context.Background(), event))

	assert.Equal(t, int64(1), metrics.SyncCount("uniform", observability.SyncSkipped))

	w.Start(context.Background())
	close(syncer.block)
	w.Stop()
	assert.Equal(t, []string{"sync:uniform:u1"}, syncer.calls)
}

func TestSyncWorker_StopIsIdempotent(t *testing.T) {
	w := NewSyncWorker(&recordingSyncer{}, nil, nil, Options{})
	w.Start(context.Background())
	w.Stop()
	w.Stop()
}
