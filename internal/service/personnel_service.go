package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/MatiasXp0/forca-tatica/internal/cache"
	"github.com/MatiasXp0/forca-tatica/internal/domain"
	"github.com/MatiasXp0/forca-tatica/internal/events"
	"github.com/MatiasXp0/forca-tatica/internal/repository"
	apperrors "github.com/MatiasXp0/forca-tatica/pkg/util/errorutil"
)

// hierarchyKey is the cache key of the full personnel tree.
const hierarchyKey = "hierarchy"

// subordinatePageSize bounds each listing page when fanning out to subordinates.
const subordinatePageSize = 200

// PersonnelInput describes create/replace payloads for personnel.
type PersonnelInput struct {
	Name        string
	Rank        string
	BadgeNumber string
	Callsign    string
	Position    string
	SuperiorID  *string
	Status      domain.PersonnelStatus
	JoinedAt    *time.Time
}

// PersonnelService coordinates the personnel hierarchy.
type PersonnelService struct {
	repo       repository.PersonnelRepository
	dispatcher events.Dispatcher
	cache      *cache.ListCache
}

// NewPersonnelService constructs the service.
func NewPersonnelService(repo repository.PersonnelRepository, dispatcher events.Dispatcher, listCache *cache.ListCache) *PersonnelService {
	return &PersonnelService{repo: repo, dispatcher: dispatcher, cache: listCache}
}

func (s *PersonnelService) Create(ctx context.Context, actor Actor, input PersonnelInput) (*domain.Personnel, error) {
	p := &domain.Personnel{}
	if err := applyPersonnelInput(p, input); err != nil {
		return nil, err
	}
	if err := s.checkSuperior(ctx, "", p.SuperiorID); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx, domain.KindPersonnel)
	publish(ctx, s.dispatcher, domain.KindPersonnel, events.ActionCreated, p.ID, actor.ID, nil)
	return p, nil
}

// Update replaces a record. Subordinate embeds show their superior's rank and
// name, so a change to either re-publishes the direct subordinates.
func (s *PersonnelService) Update(ctx context.Context, actor Actor, id string, input PersonnelInput) (*domain.Personnel, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	prevName, prevRank := p.Name, p.Rank
	if err := applyPersonnelInput(p, input); err != nil {
		return nil, err
	}
	if err := s.checkSuperior(ctx, p.ID, p.SuperiorID); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx, domain.KindPersonnel)
	publish(ctx, s.dispatcher, domain.KindPersonnel, events.ActionUpdated, p.ID, actor.ID, nil)
	if p.Name != prevName || p.Rank != prevRank {
		subordinates, err := s.subordinateIDs(ctx, p.ID)
		if err != nil {
			// The record is saved; a resync refreshes stale subordinates.
			return p, nil
		}
		for _, subID := range subordinates {
			publish(ctx, s.dispatcher, domain.KindPersonnel, events.ActionUpdated, subID, actor.ID, nil)
		}
	}
	return p, nil
}

func (s *PersonnelService) Get(ctx context.Context, id string) (*domain.Personnel, error) {
	if err := checkID(domain.KindPersonnel, id); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

func (s *PersonnelService) List(ctx context.Context, filter repository.PersonnelFilter) ([]domain.Personnel, error) {
	key := fmt.Sprintf("r=%s|sup=%s|st=%v|s=%s|l=%d|o=%d",
		deref(filter.Rank), deref(filter.SuperiorID), filter.Statuses, deref(filter.SearchTerm), filter.Limit, filter.Offset)
	return cache.GetOrLoad(ctx, s.cache, domain.KindPersonnel, key, func(ctx context.Context) ([]domain.Personnel, error) {
		return s.repo.List(ctx, filter)
	})
}

// Delete removes a record. Direct subordinates lose their superior through
// the foreign key and are re-published so their mirrored messages refresh.
func (s *PersonnelService) Delete(ctx context.Context, actor Actor, id string) error {
	if err := checkID(domain.KindPersonnel, id); err != nil {
		return err
	}
	subordinates, err := s.subordinateIDs(ctx, id)
	if err != nil {
		return err
	}
	messageID, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	s.cache.Invalidate(ctx, domain.KindPersonnel)
	publish(ctx, s.dispatcher, domain.KindPersonnel, events.ActionDeleted, id, actor.ID, events.DeletedPayload{DiscordMessageID: messageID})
	for _, subID := range subordinates {
		publish(ctx, s.dispatcher, domain.KindPersonnel, events.ActionUpdated, subID, actor.ID, nil)
	}
	return nil
}

// subordinateIDs pages through the direct subordinates of id.
func (s *PersonnelService) subordinateIDs(ctx context.Context, id string) ([]string, error) {
	var ids []string
	for offset := 0; ; offset += subordinatePageSize {
		batch, err := s.repo.List(ctx, repository.PersonnelFilter{
			SuperiorID: &id,
			Page:       repository.Page{Limit: subordinatePageSize, Offset: offset},
		})
		if err != nil {
			return nil, err
		}
		for _, p := range batch {
			ids = append(ids, p.ID)
		}
		if len(batch) < subordinatePageSize {
			return ids, nil
		}
	}
}

// Hierarchy returns the chain of command as a forest. Roots are records
// without a superior or whose superior is missing; siblings are ordered by
// rank seniority, then name.
func (s *PersonnelService) Hierarchy(ctx context.Context) ([]*domain.PersonnelNode, error) {
	return cache.GetOrLoad(ctx, s.cache, domain.KindPersonnel, hierarchyKey, func(ctx context.Context) ([]*domain.PersonnelNode, error) {
		all, err := s.repo.ListAll(ctx)
		if err != nil {
			return nil, err
		}
		return BuildHierarchy(all), nil
	})
}

// BuildHierarchy links records by SuperiorID. Records whose chain runs into a cycle
// (which validation prevents, but stored data may predate it) become roots.
func BuildHierarchy(all []domain.Personnel) []*domain.PersonnelNode {
	nodes := make(map[string]*domain.PersonnelNode, len(all))
	for i := range all {
		nodes[all[i].ID] = &domain.PersonnelNode{Personnel: all[i]}
	}

	roots := make([]*domain.PersonnelNode, 0)
	for i := range all {
		node := nodes[all[i].ID]
		parent := superiorNode(nodes, node)
		if parent == nil {
			roots = append(roots, node)
			continue
		}
		parent.Subordinates = append(parent.Subordinates, node)
	}

	var sortNodes func([]*domain.PersonnelNode)
	sortNodes = func(list []*domain.PersonnelNode) {
		sort.SliceStable(list, func(i, j int) bool {
			ri, rj := seniority(list[i].Rank), seniority(list[j].Rank)
			if ri != rj {
				return ri < rj
			}
			return list[i].Name < list[j].Name
		})
		for _, n := range list {
			sortNodes(n.Subordinates)
		}
	}
	sortNodes(roots)
	return roots
}

// superiorNode returns node's parent, or nil when the node should be a root.
func superiorNode(nodes map[string]*domain.PersonnelNode, node *domain.PersonnelNode) *domain.PersonnelNode {
	if node.SuperiorID == nil {
		return nil
	}
	parent, ok := nodes[*node.SuperiorID]
	if !ok {
		return nil
	}
	seen := map[string]bool{node.ID: true}
	for cur := parent; cur != nil && cur.SuperiorID != nil; {
		if seen[cur.ID] {
			return nil
		}
		seen[cur.ID] = true
		cur = nodes[*cur.SuperiorID]
	}
	return parent
}

func seniority(rank string) int {
	if s := domain.RankSeniority(rank); s >= 0 {
		return s
	}
	return len(domain.Ranks)
}

// checkSuperior verifies the proposed superior exists and that following the
// chain upward never reaches id.
func (s *PersonnelService) checkSuperior(ctx context.Context, id string, superiorID *string) error {
	if superiorID == nil {
		return nil
	}
	if id != "" && *superiorID == id {
		return apperrors.NewValidationError("personnel cannot be their own superior", map[string]any{"superior_id": *superiorID})
	}
	if err := checkID(domain.KindPersonnel, *superiorID); err != nil {
		return apperrors.NewValidationError("superior not found", map[string]any{"superior_id": *superiorID})
	}

	visited := map[string]bool{}
	cur := *superiorID
	for {
		if visited[cur] {
			return apperrors.NewConflict("existing hierarchy contains a cycle", map[string]any{"superior_id": *superiorID})
		}
		visited[cur] = true

		sup, err := s.repo.GetByID(ctx, cur)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.NewValidationError("superior not found", map[string]any{"superior_id": cur})
			}
			return err
		}
		if sup.SuperiorID == nil {
			return nil
		}
		if id != "" && *sup.SuperiorID == id {
			return apperrors.NewConflict("superior change would create a cycle", map[string]any{"superior_id": *superiorID})
		}
		cur = *sup.SuperiorID
	}
}

func applyPersonnelInput(p *domain.Personnel, input PersonnelInput) error {
	input.Name = strings.TrimSpace(input.Name)
	input.Rank = strings.TrimSpace(input.Rank)
	if input.Status == "" {
		input.Status = domain.PersonnelStatusActive
	}
	if input.SuperiorID != nil && strings.TrimSpace(*input.SuperiorID) == "" {
		input.SuperiorID = nil
	}

	errs := fieldErrors{}
	errs.require("name", input.Name)
	errs.maxLen("name", input.Name, 120)
	if domain.RankSeniority(input.Rank) < 0 {
		errs["rank"] = "unknown rank"
	}
	if !input.Status.Valid() {
		errs["status"] = "must be one of ACTIVE, LEAVE, INACTIVE"
	}
	if input.JoinedAt != nil && input.JoinedAt.After(time.Now().Add(24*time.Hour)) {
		errs["joined_at"] = "cannot be in the future"
	}
	if err := errs.err(); err != nil {
		return err
	}

	p.Name = input.Name
	p.Rank = input.Rank
	p.BadgeNumber = strings.TrimSpace(input.BadgeNumber)
	p.Callsign = strings.ToUpper(strings.TrimSpace(input.Callsign))
	p.Position = strings.TrimSpace(input.Position)
	p.SuperiorID = input.SuperiorID
	p.Status = input.Status
	p.JoinedAt = input.JoinedAt
	return nil
}
