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

// UniformService is the catalog API the handler needs.
type UniformService interface {
	Create(ctx context.Context, actor service.Actor, input service.UniformInput) (*domain.Uniform, error)
	Update(ctx context.Context, actor service.Actor, id string, input service.UniformInput) (*domain.Uniform, error)
	Get(ctx context.Context, id string) (*domain.Uniform, error)
	List(ctx context.Context, filter repository.UniformFilter) ([]domain.Uniform, error)
	Delete(ctx context.Context, actor service.Actor, id string) error
}

// UniformsHandler serves the uniform catalog.
type UniformsHandler struct {
	service UniformService
	syncer  RecordSyncer
}

// NewUniformsHandler constructs handler.
func NewUniformsHandler(svc UniformService, syncer RecordSyncer) *UniformsHandler {
	return &UniformsHandler{service: svc, syncer: syncer}
}

// List GET /api/uniforms.
func (h *UniformsHandler) List(c *fiber.Ctx) error {
	list, err := h.service.List(c.UserContext(), repository.UniformFilter{
		Category:   queryString(c, "category"),
		SearchTerm: queryString(c, "search"),
		Page:       parsePage(c),
	})
	if err != nil {
		return err
	}
	items := make([]dto.UniformResponse, 0, len(list))
	for i := range list {
		items = append(items, uniformResponse(&list[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Get GET /api/uniforms/:id.
func (h *UniformsHandler) Get(c *fiber.Ctx) error {
	u, err := h.service.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": uniformResponse(u)})
}

// Create POST /api/uniforms.
func (h *UniformsHandler) Create(c *fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	var req dto.UniformRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	u, err := h.service.Create(c.UserContext(), actor, uniformInput(req))
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": uniformResponse(u)})
}

// Update PUT /api/uniforms/:id.
func (h *UniformsHandler) Update(c *fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	var req dto.UniformRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	u, err := h.service.Update(c.UserContext(), actor, c.Params("id"), uniformInput(req))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": uniformResponse(u)})
}

// Delete DELETE /api/uniforms/:id.
func (h *UniformsHandler) Delete(c *fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.UserContext(), actor, c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// Sync POST /api/uniforms/:id/sync.
func (h *UniformsHandler) Sync(c *fiber.Ctx) error {
	u, err := h.service.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return forceSync(c, h.syncer, domain.KindUniform, u.ID)
}

func uniformInput(req dto.UniformRequest) service.UniformInput {
	return service.UniformInput{
		Name:        req.Name,
		Category:    req.Category,
		Description: req.Description,
		Items:       req.Items,
		ImageURL:    req.ImageURL,
	}
}

func uniformResponse(u *domain.Uniform) dto.UniformResponse {
	items := u.Items
	if items == nil {
		items = []string{}
	}
	return dto.UniformResponse{
		ID:               u.ID,
		Name:             u.Name,
		Category:         u.Category,
		Description:      u.Description,
		Items:            items,
		ImageURL:         u.ImageURL,
		DiscordMessageID: u.DiscordMessageID,
		CreatedAt:        u.CreatedAt,
		UpdatedAt:        u.UpdatedAt,
	}
}
