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

// UniformInput describes create/replace payloads for catalog entries.
type UniformInput struct {
	Name        string
	Category    string
	Description string
	Items       []string
	ImageURL    string
}

// UniformService coordinates the uniform catalog.
type UniformService struct {
	repo       repository.UniformRepository
	dispatcher events.Dispatcher
	cache      *cache.ListCache
}

// NewUniformService constructs the service.
func NewUniformService(repo repository.UniformRepository, dispatcher events.Dispatcher, listCache *cache.ListCache) *UniformService {
	return &UniformService{repo: repo, dispatcher: dispatcher, cache: listCache}
}

func (s *UniformService) Create(ctx context.Context, actor Actor, input UniformInput) (*domain.Uniform, error) {
	u := &domain.Uniform{}
	if err := applyUniformInput(u, input); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx, domain.KindUniform)
	publish(ctx, s.dispatcher, domain.KindUniform, events.ActionCreated, u.ID, actor.ID, nil)
	return u, nil
}

func (s *UniformService) Update(ctx context.Context, actor Actor, id string, input UniformInput) (*domain.Uniform, error) {
	u, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := applyUniformInput(u, input); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, u); err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx, domain.KindUniform)
	publish(ctx, s.dispatcher, domain.KindUniform, events.ActionUpdated, u.ID, actor.ID, nil)
	return u, nil
}

func (s *UniformService) Get(ctx context.Context, id string) (*domain.Uniform, error) {
	if err := checkID(domain.KindUniform, id); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

func (s *UniformService) List(ctx context.Context, filter repository.UniformFilter) ([]domain.Uniform, error) {
	key := fmt.Sprintf("c=%s|s=%s|l=%d|o=%d", deref(filter.Category), deref(filter.SearchTerm), filter.Limit, filter.Offset)
	return cache.GetOrLoad(ctx, s.cache, domain.KindUniform, key, func(ctx context.Context) ([]domain.Uniform, error) {
		return s.repo.List(ctx, filter)
	})
}

func (s *UniformService) Delete(ctx context.Context, actor Actor, id string) error {
	if err := checkID(domain.KindUniform, id); err != nil {
		return err
	}
	messageID, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	s.cache.Invalidate(ctx, domain.KindUniform)
	publish(ctx, s.dispatcher, domain.KindUniform, events.ActionDeleted, id, actor.ID, events.DeletedPayload{DiscordMessageID: messageID})
	return nil
}

func applyUniformInput(u *domain.Uniform, input UniformInput) error {
	input.Name = strings.TrimSpace(input.Name)
	input.ImageURL = strings.TrimSpace(input.ImageURL)
	items := cleanList(input.Items)

	errs := fieldErrors{}
	errs.require("name", input.Name)
	errs.maxLen("name", input.Name, 120)
	errs.url("image_url", input.ImageURL)
	if len(items) > 50 {
		errs["items"] = "at most 50 items"
	}
	if err := errs.err(); err != nil {
		return err
	}

	u.Name = input.Name
	u.Category = strings.TrimSpace(input.Category)
	u.Description = strings.TrimSpace(input.Description)
	u.Items = items
	u.ImageURL = input.ImageURL
	return nil
}
