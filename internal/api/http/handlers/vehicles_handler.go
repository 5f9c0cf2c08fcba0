package handlers

import (
	"context"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/MatiasXp0/forca-tatica/internal/api/dto"
	"github.com/MatiasXp0/forca-tatica/internal/domain"
	"github.com/MatiasXp0/forca-tatica/internal/repository"
	"github.com/MatiasXp0/forca-tatica/internal/service"
)

// VehicleService is the roster API the handler needs.
type VehicleService interface {
	Create(ctx context.Context, actor service.Actor, input service.VehicleInput) (*domain.Vehicle, error)
	Update(ctx context.Context, actor service.Actor, id string, input service.VehicleInput) (*domain.Vehicle, error)
	Get(ctx context.Context, id string) (*domain.Vehicle, error)
	List(ctx context.Context, filter repository.VehicleFilter) ([]domain.Vehicle, error)
	Delete(ctx context.Context, actor service.Actor, id string) error
}

// VehiclesHandler serves the vehicle roster.
type VehiclesHandler struct {
	service VehicleService
	syncer  RecordSyncer
}

// NewVehiclesHandler constructs handler.
func NewVehiclesHandler(svc VehicleService, syncer RecordSyncer) *VehiclesHandler {
	return &VehiclesHandler{service: svc, syncer: syncer}
}

// List GET /api/vehicles.
func (h *VehiclesHandler) List(c *fiber.Ctx) error {
	filter := repository.VehicleFilter{
		SearchTerm: queryString(c, "search"),
		Page:       parsePage(c),
	}
	for _, s := range queryList(c, "status") {
		filter.Statuses = append(filter.Statuses, domain.VehicleStatus(s))
	}
	list, err := h.service.List(c.UserContext(), filter)
	if err != nil {
		return err
	}
	items := make([]dto.VehicleResponse, 0, len(list))
	for i := range list {
		items = append(items, vehicleResponse(&list[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Get GET /api/vehicles/:id.
func (h *VehiclesHandler) Get(c *fiber.Ctx) error {
	v, err := h.service.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": vehicleResponse(v)})
}

// Create POST /api/vehicles.
func (h *VehiclesHandler) Create(c *fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	var req dto.VehicleRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	v, err := h.service.Create(c.UserContext(), actor, vehicleInput(req))
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": vehicleResponse(v)})
}

// Update PUT /api/vehicles/:id.
func (h *VehiclesHandler) Update(c *fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	var req dto.VehicleRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	v, err := h.service.Update(c.UserContext(), actor, c.Params("id"), vehicleInput(req))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": vehicleResponse(v)})
}

// Delete DELETE /api/vehicles/:id.
func (h *VehiclesHandler) Delete(c *fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.UserContext(), actor, c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// Sync POST /api/vehicles/:id/sync.
func (h *VehiclesHandler) Sync(c *fiber.Ctx) error {
	v, err := h.service.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return forceSync(c, h.syncer, domain.KindVehicle, v.ID)
}

func vehicleInput(req dto.VehicleRequest) service.VehicleInput {
	return service.VehicleInput{
		Name:     req.Name,
		Model:    req.Model,
		Plate:    req.Plate,
		Callsign: req.Callsign,
		Status:   req.Status,
		Notes:    req.Notes,
		ImageURL: req.ImageURL,
	}
}

func vehicleResponse(v *domain.Vehicle) dto.VehicleResponse {
	return dto.VehicleResponse{
		ID:               v.ID,
		Name:             v.Name,
		Model:            v.Model,
		Plate:            v.Plate,
		Callsign:         v.Callsign,
		Status:           v.Status,
		Notes:            v.Notes,
		ImageURL:         v.ImageURL,
		DiscordMessageID: v.DiscordMessageID,
		CreatedAt:        v.CreatedAt,
		UpdatedAt:        v.UpdatedAt,
	}
}
