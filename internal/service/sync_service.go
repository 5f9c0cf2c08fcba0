package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/MatiasXp0/forca-tatica/internal/discord"
	"github.com/MatiasXp0/forca-tatica/internal/domain"
	"github.com/MatiasXp0/forca-tatica/internal/observability"
	"github.com/MatiasXp0/forca-tatica/internal/repository"
)

// resyncPageSize bounds each listing page during a full resync.
const resyncPageSize = 100

// SyncDependencies bundles what the sync service reads and writes.
type SyncDependencies struct {
	Messenger     discord.Messenger
	Channels      discord.Channels
	Announcements repository.AnnouncementRepository
	Uniforms      repository.UniformRepository
	Vehicles      repository.VehicleRepository
	Personnel     repository.PersonnelRepository
	Metrics       *observability.Metrics
	Logger        *zap.Logger
}

// SyncService mirrors records into chat channels, keyed by the message ID
// stored on each record.
type SyncService struct {
	messenger     discord.Messenger
	channels      discord.Channels
	announcements repository.AnnouncementRepository
	uniforms      repository.UniformRepository
	vehicles      repository.VehicleRepository
	personnel     repository.PersonnelRepository
	metrics       *observability.Metrics
	logger        *zap.Logger
	locks         recordLocks
}

// NewSyncService constructs the service. A nil Messenger disables syncing.
func NewSyncService(deps SyncDependencies) *SyncService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SyncService{
		messenger:     deps.Messenger,
		channels:      deps.Channels,
		announcements: deps.Announcements,
		uniforms:      deps.Uniforms,
		vehicles:      deps.Vehicles,
		personnel:     deps.Personnel,
		metrics:       deps.Metrics,
		logger:        logger,
	}
}

// syncTarget is one record reduced to what mirroring needs.
type syncTarget struct {
	kind      domain.RecordKind
	id        string
	messageID *string
	embed     discord.Embed
	store     func(ctx context.Context, id string, messageID *string) error
}

// SyncRecord loads the record and creates or edits its mirrored message.
// A record that no longer exists is skipped.
func (s *SyncService) SyncRecord(ctx context.Context, kind domain.RecordKind, id string) (observability.SyncOutcome, error) {
	defer s.locks.lock(kind, id)()

	target, err := s.load(ctx, kind, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			s.metrics.RecordSync(string(kind), observability.SyncSkipped)
			return observability.SyncSkipped, nil
		}
		s.metrics.RecordSync(string(kind), observability.SyncFailed)
		return observability.SyncFailed, err
	}
	return s.upsert(ctx, target)
}

// RemoveMessage deletes the mirrored message of a deleted record. A message
// already gone on the platform counts as deleted.
func (s *SyncService) RemoveMessage(ctx context.Context, kind domain.RecordKind, recordID string, messageID *string) (observability.SyncOutcome, error) {
	defer s.locks.lock(kind, recordID)()

	channel, ok := s.channel(kind)
	if !ok || messageID == nil || *messageID == "" {
		s.metrics.RecordSync(string(kind), observability.SyncSkipped)
		return observability.SyncSkipped, nil
	}
	err := s.messenger.Delete(ctx, channel, *messageID)
	if err != nil && !errors.Is(err, discord.ErrUnknownMessage) {
		return s.fail(kind, recordID, "delete", err)
	}
	s.logger.Debug("discord message deleted",
		zap.String("kind", string(kind)),
		zap.String("record_id", recordID),
		zap.String("message_id", *messageID))
	s.metrics.RecordSync(string(kind), observability.SyncDeleted)
	return observability.SyncDeleted, nil
}

// ResyncReport counts outcomes per kind for a full resync.
type ResyncReport map[domain.RecordKind]map[observability.SyncOutcome]int

// Resync mirrors every record of the given kinds, kinds in parallel and
// records of one kind in order. Individual failures are counted, not fatal;
// only listing errors abort.
func (s *SyncService) Resync(ctx context.Context, kinds []domain.RecordKind) (ResyncReport, error) {
	report := make(ResyncReport, len(kinds))
	counts := make([]map[observability.SyncOutcome]int, len(kinds))

	g, gctx := errgroup.WithContext(ctx)
	for i, kind := range kinds {
		i, kind := i, kind
		counts[i] = map[observability.SyncOutcome]int{}
		g.Go(func() error {
			ids, err := s.listIDs(gctx, kind)
			if err != nil {
				return fmt.Errorf("list %s: %w", kind, err)
			}
			for _, id := range ids {
				if err := gctx.Err(); err != nil {
					return err
				}
				outcome, _ := s.SyncRecord(gctx, kind, id)
				counts[i][outcome]++
			}
			return nil
		})
	}
	err := g.Wait()
	for i, kind := range kinds {
		report[kind] = counts[i]
	}
	return report, err
}

func (s *SyncService) upsert(ctx context.Context, t syncTarget) (observability.SyncOutcome, error) {
	channel, ok := s.channel(t.kind)
	if !ok {
		s.logger.Debug("discord sync skipped; no channel configured", zap.String("kind", string(t.kind)))
		s.metrics.RecordSync(string(t.kind), observability.SyncSkipped)
		return observability.SyncSkipped, nil
	}

	outcome := observability.SyncSent
	if t.messageID != nil && *t.messageID != "" {
		err := s.messenger.Edit(ctx, channel, *t.messageID, t.embed)
		if err == nil {
			s.metrics.RecordSync(string(t.kind), observability.SyncEdited)
			return observability.SyncEdited, nil
		}
		if !errors.Is(err, discord.ErrUnknownMessage) {
			return s.fail(t.kind, t.id, "edit", err)
		}
		s.logger.Info("mirrored message missing; sending a new one",
			zap.String("kind", string(t.kind)),
			zap.String("record_id", t.id),
			zap.String("message_id", *t.messageID))
		outcome = observability.SyncRecreated
	}

	messageID, err := s.messenger.Send(ctx, channel, t.embed)
	if err != nil {
		return s.fail(t.kind, t.id, "send", err)
	}
	if err := t.store(ctx, t.id, &messageID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Record deleted while the message was in flight.
			if derr := s.messenger.Delete(ctx, channel, messageID); derr != nil && !errors.Is(derr, discord.ErrUnknownMessage) {
				s.logger.Warn("orphaned discord message left behind",
					zap.String("kind", string(t.kind)),
					zap.String("record_id", t.id),
					zap.String("message_id", messageID),
					zap.Error(derr))
			}
			s.metrics.RecordSync(string(t.kind), observability.SyncSkipped)
			return observability.SyncSkipped, nil
		}
		return s.fail(t.kind, t.id, "store message id", err)
	}
	s.metrics.RecordSync(string(t.kind), outcome)
	return outcome, nil
}

func (s *SyncService) fail(kind domain.RecordKind, recordID, op string, err error) (observability.SyncOutcome, error) {
	s.logger.Error("discord sync failed",
		zap.String("kind", string(kind)),
		zap.String("record_id", recordID),
		zap.String("op", op),
		zap.Error(err))
	s.metrics.RecordSync(string(kind), observability.SyncFailed)
	return observability.SyncFailed, fmt.Errorf("%s %s %s: %w", op, kind, recordID, err)
}

func (s *SyncService) channel(kind domain.RecordKind) (string, bool) {
	if s.messenger == nil {
		return "", false
	}
	return s.channels.For(kind)
}

func (s *SyncService) load(ctx context.Context, kind domain.RecordKind, id string) (syncTarget, error) {
	switch kind {
	case domain.KindAnnouncement:
		a, err := s.announcements.GetByID(ctx, id)
		if err != nil {
			return syncTarget{}, err
		}
		return syncTarget{kind, a.ID, a.DiscordMessageID, discord.AnnouncementEmbed(a), s.announcements.SetDiscordMessageID}, nil
	case domain.KindUniform:
		u, err := s.uniforms.GetByID(ctx, id)
		if err != nil {
			return syncTarget{}, err
		}
		return syncTarget{kind, u.ID, u.DiscordMessageID, discord.UniformEmbed(u), s.uniforms.SetDiscordMessageID}, nil
	case domain.KindVehicle:
		v, err := s.vehicles.GetByID(ctx, id)
		if err != nil {
			return syncTarget{}, err
		}
		return syncTarget{kind, v.ID, v.DiscordMessageID, discord.VehicleEmbed(v), s.vehicles.SetDiscordMessageID}, nil
	case domain.KindPersonnel:
		p, err := s.personnel.GetByID(ctx, id)
		if err != nil {
			return syncTarget{}, err
		}
		superiorName := ""
		if p.SuperiorID != nil {
			if sup, err := s.personnel.GetByID(ctx, *p.SuperiorID); err == nil {
				superiorName = sup.Rank + " " + sup.Name
			}
		}
		return syncTarget{kind, p.ID, p.DiscordMessageID, discord.PersonnelEmbed(p, superiorName), s.personnel.SetDiscordMessageID}, nil
	}
	return syncTarget{}, fmt.Errorf("unknown record kind %q", kind)
}

func (s *SyncService) listIDs(ctx context.Context, kind domain.RecordKind) ([]string, error) {
	var ids []string
	for offset := 0; ; offset += resyncPageSize {
		page := repository.Page{Limit: resyncPageSize, Offset: offset}
		var (
			batch []string
			err   error
		)
		switch kind {
		case domain.KindAnnouncement:
			var list []domain.Announcement
			list, err = s.announcements.List(ctx, repository.AnnouncementFilter{Page: page})
			for _, r := range list {
				batch = append(batch, r.ID)
			}
		case domain.KindUniform:
			var list []domain.Uniform
			list, err = s.uniforms.List(ctx, repository.UniformFilter{Page: page})
			for _, r := range list {
				batch = append(batch, r.ID)
			}
		case domain.KindVehicle:
			var list []domain.Vehicle
			list, err = s.vehicles.List(ctx, repository.VehicleFilter{Page: page})
			for _, r := range list {
				batch = append(batch, r.ID)
			}
		case domain.KindPersonnel:
			var list []domain.Personnel
			list, err = s.personnel.List(ctx, repository.PersonnelFilter{Page: page})
			for _, r := range list {
				batch = append(batch, r.ID)
			}
		default:
			return nil, fmt.Errorf("unknown record kind %q", kind)
		}
		if err != nil {
			return nil, err
		}
		ids = append(ids, batch...)
		if len(batch) < resyncPageSize {
			return ids, nil
		}
	}
}

// recordLocks serializes sync work per record, so a forced sync and the
// worker never both send a first message for the same record.
type recordLocks struct {
	mu   sync.Mutex
	held map[string]*recordLock
}

type recordLock struct {
	mu   sync.Mutex
	refs int
}

// lock blocks until the record is free and returns the unlock func.
func (l *recordLocks) lock(kind domain.RecordKind, id string) func() {
	key := string(kind) + "/" + id
	l.mu.Lock()
	if l.held == nil {
		l.held = map[string]*recordLock{}
	}
	rl, ok := l.held[key]
	if !ok {
		rl = &recordLock{}
		l.held[key] = rl
	}
	rl.refs++
	l.mu.Unlock()

	rl.mu.Lock()
	return func() {
		rl.mu.Unlock()
		l.mu.Lock()
		rl.refs--
		if rl.refs == 0 {
			delete(l.held, key)
		}
		l.mu.Unlock()
	}
}
