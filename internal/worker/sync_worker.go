package worker

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/MatiasXp0/forca-tatica/internal/domain"
	"github.com/MatiasXp0/forca-tatica/internal/events"
	"github.com/MatiasXp0/forca-tatica/internal/observability"
)

const (
	defaultQueueSize  = 256
	defaultJobTimeout = 15 * time.Second
)

// Syncer is the part of the sync service the worker drives.
type Syncer interface {
	SyncRecord(ctx context.Context, kind domain.RecordKind, id string) (observability.SyncOutcome, error)
	RemoveMessage(ctx context.Context, kind domain.RecordKind, recordID string, messageID *string) (observability.SyncOutcome, error)
}

// SyncWorker takes record events off the request path and mirrors them one
// at a time, so events for the same record apply in publication order.
type SyncWorker struct {
	syncer     Syncer
	logger     *zap.Logger
	metrics    *observability.Metrics
	jobTimeout time.Duration

	queue chan events.Event
	wg    sync.WaitGroup
	once  sync.Once
}

// Options tunes the worker; zero values pick defaults.
type Options struct {
	QueueSize  int
	JobTimeout time.Duration
}

// NewSyncWorker builds a stopped worker.
func NewSyncWorker(syncer Syncer, logger *zap.Logger, metrics *observability.Metrics, opts Options) *SyncWorker {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.QueueSize <= 0 {
		opts.QueueSize = defaultQueueSize
	}
	if opts.JobTimeout <= 0 {
		opts.JobTimeout = defaultJobTimeout
	}
	return &SyncWorker{
		syncer:     syncer,
		logger:     logger,
		metrics:    metrics,
		jobTimeout: opts.JobTimeout,
		queue:      make(chan events.Event, opts.QueueSize),
	}
}

// Subscribe routes every record event of the dispatcher to the worker.
func (w *SyncWorker) Subscribe(dispatcher events.Dispatcher) {
	for _, kind := range domain.RecordKinds {
		for _, action := range []events.Action{events.ActionCreated, events.ActionUpdated, events.ActionDeleted} {
			dispatcher.Subscribe(events.TypeFor(kind, action), w.Enqueue)
		}
	}
}

// Enqueue hands an event to the worker without blocking. A full queue drops
// the event; a later edit or a resync repairs the mirror.
func (w *SyncWorker) Enqueue(_ context.Context, event events.Event) error {
	select {
	case w.queue <- event:
		return nil
	default:
		w.logger.Warn("sync queue full; dropping event",
			zap.String("event_type", string(event.Type)),
			zap.String("record_id", event.RecordID))
		w.metrics.RecordSync(string(event.Kind), observability.SyncSkipped)
		return nil
	}
}

// Start launches the processing goroutine. It exits once Stop drains the
// queue; ctx cancellation aborts in-flight jobs.
func (w *SyncWorker) Start(ctx context.Context) {
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		for event := range w.queue {
			w.handle(ctx, event)
		}
	}()
}

// Stop closes the queue and waits for pending events to finish.
func (w *SyncWorker) Stop() {
	w.once.Do(func() { close(w.queue) })
	w.wg.Wait()
}

func (w *SyncWorker) handle(ctx context.Context, event events.Event) {
	jobCtx, cancel := context.WithTimeout(ctx, w.jobTimeout)
	defer cancel()

	var (
		outcome observability.SyncOutcome
		err     error
	)
	switch event.Action {
	case events.ActionDeleted:
		var messageID *string
		if payload, ok := event.Payload.(events.DeletedPayload); ok {
			messageID = payload.DiscordMessageID
		}
		outcome, err = w.syncer.RemoveMessage(jobCtx, event.Kind, event.RecordID, messageID)
	default:
		outcome, err = w.syncer.SyncRecord(jobCtx, event.Kind, event.RecordID)
	}

	if err != nil {
		// The sync service already logged the failure details.
		w.logger.Debug("sync job failed", zap.String("event_id", event.ID), zap.Error(err))
		return
	}
	w.logger.Debug("sync job done",
		zap.String("event_id", event.ID),
		zap.String("event_type", string(event.Type)),
		zap.String("outcome", string(outcome)))
}
