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

// AnnouncementService is the board post API the handler needs.
type AnnouncementService interface {
	Create(ctx context.Context, actor service.Actor, input service.AnnouncementInput) (*domain.Announcement, error)
	Update(ctx context.Context, actor service.Actor, id string, input service.AnnouncementInput) (*domain.Announcement, error)
	Get(ctx context.Context, id string) (*domain.Announcement, error)
	List(ctx context.Context, filter repository.AnnouncementFilter) ([]domain.Announcement, error)
	Delete(ctx context.Context, actor service.Actor, id string) error
}

// AnnouncementsHandler serves the communications board.
type AnnouncementsHandler struct {
	service AnnouncementService
	syncer  RecordSyncer
}

// NewAnnouncementsHandler constructs handler.
func NewAnnouncementsHandler(svc AnnouncementService, syncer RecordSyncer) *AnnouncementsHandler {
	return &AnnouncementsHandler{service: svc, syncer: syncer}
}

// List GET /api/announcements.
func (h *AnnouncementsHandler) List(c *fiber.Ctx) error {
	filter := repository.AnnouncementFilter{
		Category:   queryString(c, "category"),
		PinnedOnly: c.QueryBool("pinned"),
		SearchTerm: queryString(c, "search"),
		Page:       parsePage(c),
	}
	for _, p := range queryList(c, "priority") {
		filter.Priorities = append(filter.Priorities, domain.AnnouncementPriority(p))
	}
	list, err := h.service.List(c.UserContext(), filter)
	if err != nil {
		return err
	}
	items := make([]dto.AnnouncementResponse, 0, len(list))
	for i := range list {
		items = append(items, announcementResponse(&list[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Get GET /api/announcements/:id.
func (h *AnnouncementsHandler) Get(c *fiber.Ctx) error {
	a, err := h.service.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": announcementResponse(a)})
}

// Create POST /api/announcements.
func (h *AnnouncementsHandler) Create(c *fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	var req dto.AnnouncementRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	a, err := h.service.Create(c.UserContext(), actor, announcementInput(req))
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": announcementResponse(a)})
}

// Update PUT /api/announcements/:id.
func (h *AnnouncementsHandler) Update(c *fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	var req dto.AnnouncementRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	a, err := h.service.Update(c.UserContext(), actor, c.Params("id"), announcementInput(req))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": announcementResponse(a)})
}

// Delete DELETE /api/announcements/:id.
func (h *AnnouncementsHandler) Delete(c *fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.UserContext(), actor, c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// Sync POST /api/announcements/:id/sync.
func (h *AnnouncementsHandler) Sync(c *fiber.Ctx) error {
	a, err := h.service.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return forceSync(c, h.syncer, domain.KindAnnouncement, a.ID)
}

func announcementInput(req dto.AnnouncementRequest) service.AnnouncementInput {
	return service.AnnouncementInput{
		Title:    req.Title,
		Body:     req.Body,
		Author:   req.Author,
		Category: req.Category,
		Priority: req.Priority,
		Pinned:   req.Pinned,
		ImageURL: req.ImageURL,
	}
}

func announcementResponse(a *domain.Announcement) dto.AnnouncementResponse {
	return dto.AnnouncementResponse{
		ID:               a.ID,
		Title:            a.Title,
		Body:             a.Body,
		Author:           a.Author,
		Category:         a.Category,
		Priority:         a.Priority,
		Pinned:           a.Pinned,
		ImageURL:         a.ImageURL,
		DiscordMessageID: a.DiscordMessageID,
		CreatedAt:        a.CreatedAt,
		UpdatedAt:        a.UpdatedAt,
	}
}
