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

// VehicleInput describes create/replace payloads for roster entries.
type VehicleInput struct {
	Name     string
	Model    string
	Plate    string
	Callsign string
	Status   domain.VehicleStatus
	Notes    string
	ImageURL string
}

// VehicleService coordinates the vehicle roster.
type VehicleService struct {
	repo       repository.VehicleRepository
	dispatcher events.Dispatcher
	cache      *cache.ListCache
}

// NewVehicleService constructs the service.
func NewVehicleService(repo repository.VehicleRepository, dispatcher events.Dispatcher, listCache *cache.ListCache) *VehicleService {
	return &VehicleService{repo: repo, dispatcher: dispatcher, cache: listCache}
}

func (s *VehicleService) Create(ctx context.Context, actor Actor, input VehicleInput) (*domain.Vehicle, error) {
	v := &domain.Vehicle{}
	if err := applyVehicleInput(v, input); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, v); err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx, domain.KindVehicle)
	publish(ctx, s.dispatcher, domain.KindVehicle, events.ActionCreated, v.ID, actor.ID, nil)
	return v, nil
}

func (s *VehicleService) Update(ctx context.Context, actor Actor, id string, input VehicleInput) (*domain.Vehicle, error) {
	v, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := applyVehicleInput(v, input); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, v); err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx, domain.KindVehicle)
	publish(ctx, s.dispatcher, domain.KindVehicle, events.ActionUpdated, v.ID, actor.ID, nil)
	return v, nil
}

func (s *VehicleService) Get(ctx context.Context, id string) (*domain.Vehicle, error) {
	if err := checkID(domain.KindVehicle, id); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

func (s *VehicleService) List(ctx context.Context, filter repository.VehicleFilter) ([]domain.Vehicle, error) {
	key := fmt.Sprintf("st=%v|s=%s|l=%d|o=%d", filter.Statuses, deref(filter.SearchTerm), filter.Limit, filter.Offset)
	return cache.GetOrLoad(ctx, s.cache, domain.KindVehicle, key, func(ctx context.Context) ([]domain.Vehicle, error) {
		return s.repo.List(ctx, filter)
	})
}

func (s *VehicleService) Delete(ctx context.Context, actor Actor, id string) error {
	if err := checkID(domain.KindVehicle, id); err != nil {
		return err
	}
	messageID, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	s.cache.Invalidate(ctx, domain.KindVehicle)
	publish(ctx, s.dispatcher, domain.KindVehicle, events.ActionDeleted, id, actor.ID, events.DeletedPayload{DiscordMessageID: messageID})
	return nil
}

func applyVehicleInput(v *domain.Vehicle, input VehicleInput) error {
	input.Name = strings.TrimSpace(input.Name)
	input.ImageURL = strings.TrimSpace(input.ImageURL)
	if input.Status == "" {
		input.Status = domain.VehicleStatusAvailable
	}

	errs := fieldErrors{}
	errs.require("name", input.Name)
	errs.maxLen("name", input.Name, 120)
	errs.maxLen("plate", input.Plate, 10)
	errs.url("image_url", input.ImageURL)
	if !input.Status.Valid() {
		errs["status"] = "must be one of AVAILABLE, IN_SERVICE, MAINTENANCE, RETIRED"
	}
	if err := errs.err(); err != nil {
		return err
	}

	v.Name = input.Name
	v.Model = strings.TrimSpace(input.Model)
	v.Plate = strings.ToUpper(strings.TrimSpace(input.Plate))
	v.Callsign = strings.ToUpper(strings.TrimSpace(input.Callsign))
	v.Status = input.Status
	v.Notes = strings.TrimSpace(input.Notes)
	v.ImageURL = input.ImageURL
	return nil
}
