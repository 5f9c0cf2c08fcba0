package handlers

import (
	"context"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/MatiasXp0/forca-tatica/internal/api/dto"
	"github.com/MatiasXp0/forca-tatica/internal/auth"
	"github.com/MatiasXp0/forca-tatica/internal/domain"
	"github.com/MatiasXp0/forca-tatica/internal/observability"
	"github.com/MatiasXp0/forca-tatica/internal/repository"
	"github.com/MatiasXp0/forca-tatica/internal/service"
	apperrors "github.com/MatiasXp0/forca-tatica/pkg/util/errorutil"
)

const defaultPageSize = 20

// RecordSyncer mirrors a single record on demand.
type RecordSyncer interface {
	SyncRecord(ctx context.Context, kind domain.RecordKind, id string) (observability.SyncOutcome, error)
}

func actorFrom(c *fiber.Ctx) (service.Actor, error) {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return service.Actor{}, apperrors.NewUnauthorized("authentication required")
	}
	return service.Actor{ID: principal.Subject, Name: principal.Name}, nil
}

func parseBody(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	return nil
}

// forceSync mirrors a record that the caller already loaded.
func forceSync(c *fiber.Ctx, syncer RecordSyncer, kind domain.RecordKind, id string) error {
	outcome, err := syncer.SyncRecord(c.UserContext(), kind, id)
	if err != nil {
		return apperrors.NewUpstreamError(err)
	}
	return c.JSON(fiber.Map{"data": dto.SyncResponse{Kind: string(kind), ID: id, Outcome: outcome}})
}

func parsePage(c *fiber.Ctx) repository.Page {
	page := parseInt(c.Query("page"), 1)
	pageSize := parseInt(c.Query("page_size"), defaultPageSize)
	return repository.Page{Limit: pageSize, Offset: (page - 1) * pageSize}
}

func parseInt(val string, def int) int {
	if val == "" {
		return def
	}
	parsed, err := strconv.Atoi(val)
	if err != nil || parsed <= 0 {
		return def
	}
	return parsed
}

func queryString(c *fiber.Ctx, key string) *string {
	val := strings.TrimSpace(c.Query(key))
	if val == "" {
		return nil
	}
	return &val
}

// queryList splits a comma separated query value, upper-casing enum values.
func queryList(c *fiber.Ctx, key string) []string {
	raw := c.Query(key)
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.ToUpper(strings.TrimSpace(part)); part != "" {
			out = append(out, part)
		}
	}
	return out
}
