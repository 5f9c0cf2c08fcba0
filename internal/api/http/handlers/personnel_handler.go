package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/MatiasXp0/forca-tatica/internal/api/dto"
	"github.com/MatiasXp0/forca-tatica/internal/domain"
	"github.com/MatiasXp0/forca-tatica/internal/repository"
	"github.com/MatiasXp0/forca-tatica/internal/service"
	apperrors "github.com/MatiasXp0/forca-tatica/pkg/util/errorutil"
)

// PersonnelService is the hierarchy API the handler needs.
type PersonnelService interface {
	Create(ctx context.Context, actor service.Actor, input service.PersonnelInput) (*domain.Personnel, error)
	Update(ctx context.Context, actor service.Actor, id string, input service.PersonnelInput) (*domain.Personnel, error)
	Get(ctx context.Context, id string) (*domain.Personnel, error)
	List(ctx context.Context, filter repository.PersonnelFilter) ([]domain.Personnel, error)
	Delete(ctx context.Context, actor service.Actor, id string) error
	Hierarchy(ctx context.Context) ([]*domain.PersonnelNode, error)
}

// PersonnelHandler serves the unit roster and chain of command.
type PersonnelHandler struct {
	service PersonnelService
	syncer  RecordSyncer
}

// NewPersonnelHandler constructs handler.
func NewPersonnelHandler(svc PersonnelService, syncer RecordSyncer) *PersonnelHandler {
	return &PersonnelHandler{service: svc, syncer: syncer}
}

// List GET /api/personnel.
func (h *PersonnelHandler) List(c *fiber.Ctx) error {
	filter := repository.PersonnelFilter{
		Rank:       queryString(c, "rank"),
		SuperiorID: queryString(c, "superior_id"),
		SearchTerm: queryString(c, "search"),
		Page:       parsePage(c),
	}
	if filter.SuperiorID != nil {
		if _, err := uuid.Parse(*filter.SuperiorID); err != nil {
			return apperrors.NewValidationError("invalid input", map[string]any{"superior_id": "must be a uuid"})
		}
	}
	for _, s := range queryList(c, "status") {
		filter.Statuses = append(filter.Statuses, domain.PersonnelStatus(s))
	}
	list, err := h.service.List(c.UserContext(), filter)
	if err != nil {
		return err
	}
	items := make([]dto.PersonnelResponse, 0, len(list))
	for i := range list {
		items = append(items, personnelResponse(&list[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Hierarchy GET /api/personnel/hierarchy.
func (h *PersonnelHandler) Hierarchy(c *fiber.Ctx) error {
	roots, err := h.service.Hierarchy(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": personnelNodes(roots)})
}

// Get GET /api/personnel/:id.
func (h *PersonnelHandler) Get(c *fiber.Ctx) error {
	p, err := h.service.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": personnelResponse(p)})
}

// Create POST /api/personnel.
func (h *PersonnelHandler) Create(c *fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	input, err := parsePersonnelRequest(c)
	if err != nil {
		return err
	}
	p, err := h.service.Create(c.UserContext(), actor, input)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": personnelResponse(p)})
}

// Update PUT /api/personnel/:id.
func (h *PersonnelHandler) Update(c *fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	input, err := parsePersonnelRequest(c)
	if err != nil {
		return err
	}
	p, err := h.service.Update(c.UserContext(), actor, c.Params("id"), input)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": personnelResponse(p)})
}

// Delete DELETE /api/personnel/:id.
func (h *PersonnelHandler) Delete(c *fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.UserContext(), actor, c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// Sync POST /api/personnel/:id/sync.
func (h *PersonnelHandler) Sync(c *fiber.Ctx) error {
	p, err := h.service.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return forceSync(c, h.syncer, domain.KindPersonnel, p.ID)
}

func parsePersonnelRequest(c *fiber.Ctx) (service.PersonnelInput, error) {
	var req dto.PersonnelRequest
	if err := parseBody(c, &req); err != nil {
		return service.PersonnelInput{}, err
	}
	joinedAt, err := parseDate(req.JoinedAt)
	if err != nil {
		return service.PersonnelInput{}, apperrors.NewValidationError("invalid input", map[string]any{"joined_at": "expected YYYY-MM-DD or RFC 3339"})
	}
	return service.PersonnelInput{
		Name:        req.Name,
		Rank:        req.Rank,
		BadgeNumber: req.BadgeNumber,
		Callsign:    req.Callsign,
		Position:    req.Position,
		SuperiorID:  req.SuperiorID,
		Status:      domain.PersonnelStatus(strings.ToUpper(string(req.Status))),
		JoinedAt:    joinedAt,
	}, nil
}

func parseDate(val string) (*time.Time, error) {
	val = strings.TrimSpace(val)
	if val == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.DateOnly, val); err == nil {
		return &t, nil
	}
	t, err := time.Parse(time.RFC3339, val)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func personnelResponse(p *domain.Personnel) dto.PersonnelResponse {
	return dto.PersonnelResponse{
		ID:               p.ID,
		Name:             p.Name,
		Rank:             p.Rank,
		BadgeNumber:      p.BadgeNumber,
		Callsign:         p.Callsign,
		Position:         p.Position,
		SuperiorID:       p.SuperiorID,
		Status:           p.Status,
		JoinedAt:         p.JoinedAt,
		DiscordMessageID: p.DiscordMessageID,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
}

func personnelNodes(nodes []*domain.PersonnelNode) []dto.PersonnelNodeResponse {
	out := make([]dto.PersonnelNodeResponse, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, dto.PersonnelNodeResponse{
			PersonnelResponse: personnelResponse(&n.Personnel),
			Subordinates:      personnelNodes(n.Subordinates),
		})
	}
	return out
}
