package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/MatiasXp0/forca-tatica/internal/cache"
	"github.com/MatiasXp0/forca-tatica/internal/domain"
	"github.com/MatiasXp0/forca-tatica/internal/events"
	"github.com/MatiasXp0/forca-tatica/internal/repository"
)

// AnnouncementInput describes create/replace payloads for board posts.
type AnnouncementInput struct {
	Title    string
	Body     string
	Author   string
	Category string
	Priority domain.AnnouncementPriority
	Pinned   bool
	ImageURL string
}

// AnnouncementService coordinates the communications board.
type AnnouncementService struct {
	repo       repository.AnnouncementRepository
	dispatcher events.Dispatcher
	cache      *cache.ListCache
}

// NewAnnouncementService constructs the service.
func NewAnnouncementService(repo repository.AnnouncementRepository, dispatcher events.Dispatcher, listCache *cache.ListCache) *AnnouncementService {
	return &AnnouncementService{repo: repo, dispatcher: dispatcher, cache: listCache}
}

// Create stores a new post. An empty author falls back to the caller's name.
func (s *AnnouncementService) Create(ctx context.Context, actor Actor, input AnnouncementInput) (*domain.Announcement, error) {
	a := &domain.Announcement{}
	if err := applyAnnouncementInput(a, input, actor); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx, domain.KindAnnouncement)
	publish(ctx, s.dispatcher, domain.KindAnnouncement, events.ActionCreated, a.ID, actor.ID, nil)
	return a, nil
}

// Update replaces a post's editable fields.
func (s *AnnouncementService) Update(ctx context.Context, actor Actor, id string, input AnnouncementInput) (*domain.Announcement, error) {
	a, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := applyAnnouncementInput(a, input, actor); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, a); err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx, domain.KindAnnouncement)
	publish(ctx, s.dispatcher, domain.KindAnnouncement, events.ActionUpdated, a.ID, actor.ID, nil)
	return a, nil
}

// Get returns a single post.
func (s *AnnouncementService) Get(ctx context.Context, id string) (*domain.Announcement, error) {
	if err := checkID(domain.KindAnnouncement, id); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

// List returns board posts, pinned first.
func (s *AnnouncementService) List(ctx context.Context, filter repository.AnnouncementFilter) ([]domain.Announcement, error) {
	key := fmt.Sprintf("c=%s|p=%v|pin=%t|s=%s|l=%d|o=%d",
		deref(filter.Category), filter.Priorities, filter.PinnedOnly, deref(filter.SearchTerm), filter.Limit, filter.Offset)
	return cache.GetOrLoad(ctx, s.cache, domain.KindAnnouncement, key, func(ctx context.Context) ([]domain.Announcement, error) {
		return s.repo.List(ctx, filter)
	})
}

// Delete removes a post and schedules removal of its mirrored message.
func (s *AnnouncementService) Delete(ctx context.Context, actor Actor, id string) error {
	if err := checkID(domain.KindAnnouncement, id); err != nil {
		return err
	}
	messageID, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	s.cache.Invalidate(ctx, domain.KindAnnouncement)
	publish(ctx, s.dispatcher, domain.KindAnnouncement, events.ActionDeleted, id, actor.ID, events.DeletedPayload{DiscordMessageID: messageID})
	return nil
}

func applyAnnouncementInput(a *domain.Announcement, input AnnouncementInput, actor Actor) error {
	input.Title = strings.TrimSpace(input.Title)
	input.Body = strings.TrimSpace(input.Body)
	input.Author = strings.TrimSpace(input.Author)
	input.ImageURL = strings.TrimSpace(input.ImageURL)
	if input.Author == "" {
		input.Author = actor.Name
	}
	if input.Priority == "" {
		input.Priority = domain.AnnouncementPriorityNormal
	}

	errs := fieldErrors{}
	errs.require("title", input.Title)
	errs.maxLen("title", input.Title, 200)
	errs.require("body", input.Body)
	errs.url("image_url", input.ImageURL)
	if !input.Priority.Valid() {
		errs["priority"] = "must be one of LOW, NORMAL, HIGH, URGENT"
	}
	if err := errs.err(); err != nil {
		return err
	}

	a.Title = input.Title
	a.Body = input.Body
	a.Author = input.Author
	a.Category = strings.TrimSpace(input.Category)
	a.Priority = input.Priority
	a.Pinned = input.Pinned
	a.ImageURL = input.ImageURL
	return nil
}
