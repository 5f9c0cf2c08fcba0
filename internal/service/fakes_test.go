package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"

	"github.com/MatiasXp0/forca-tatica/internal/discord"
	"github.com/MatiasXp0/forca-tatica/internal/domain"
	"github.com/MatiasXp0/forca-tatica/internal/events"
	"github.com/MatiasXp0/forca-tatica/internal/repository"
)

// memStore is an in-memory table keyed by ID.
type memStore[T any] struct {
	mu      sync.Mutex
	rows    map[string]*T
	order   []string
	idOf    func(*T) *string
	msgOf   func(*T) **string
	stampOf func(*T) (*time.Time, *time.Time)
}

func (m *memStore[T]) create(r *T) {
	m.mu.Lock()
	defer m.mu.Unlock()
	*m.idOf(r) = uuid.NewString()
	created, updated := m.stampOf(r)
	*created = time.Now()
	*updated = *created
	cp := *r
	m.rows[*m.idOf(r)] = &cp
	m.order = append(m.order, *m.idOf(r))
}

func (m *memStore[T]) update(r *T) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.rows[*m.idOf(r)]
	if !ok {
		return pgx.ErrNoRows
	}
	_, updated := m.stampOf(r)
	*updated = time.Now()
	cp := *r
	*m.msgOf(&cp) = *m.msgOf(existing)
	m.rows[*m.idOf(r)] = &cp
	return nil
}

func (m *memStore[T]) get(id string) (*T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.rows[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *r
	return &cp, nil
}

func (m *memStore[T]) list(page repository.Page, keep func(*T) bool) []T {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []T
	for _, id := range m.order {
		r, ok := m.rows[id]
		if !ok || (keep != nil && !keep(r)) {
			continue
		}
		out = append(out, *r)
	}
	limit := page.Limit
	if limit <= 0 {
		limit = 20
	}
	if page.Offset >= len(out) {
		return nil
	}
	out = out[page.Offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

func (m *memStore[T]) delete(id string) (*string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.rows[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	delete(m.rows, id)
	return *m.msgOf(r), nil
}

func (m *memStore[T]) setMessageID(id string, messageID *string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.rows[id]
	if !ok {
		return pgx.ErrNoRows
	}
	*m.msgOf(r) = messageID
	return nil
}

type fakeAnnouncementRepo struct{ memStore[domain.Announcement] }

func newFakeAnnouncementRepo() *fakeAnnouncementRepo {
	return &fakeAnnouncementRepo{memStore[domain.Announcement]{
		rows:    map[string]*domain.Announcement{},
		idOf:    func(a *domain.Announcement) *string { return &a.ID },
		msgOf:   func(a *domain.Announcement) **string { return &a.DiscordMessageID },
		stampOf: func(a *domain.Announcement) (*time.Time, *time.Time) { return &a.CreatedAt, &a.UpdatedAt },
	}}
}

func (f *fakeAnnouncementRepo) Create(_ context.Context, a *domain.Announcement) error {
	f.create(a)
	return nil
}
func (f *fakeAnnouncementRepo) Update(_ context.Context, a *domain.Announcement) error {
	return f.update(a)
}
func (f *fakeAnnouncementRepo) GetByID(_ context.Context, id string) (*domain.Announcement, error) {
	return f.get(id)
}
func (f *fakeAnnouncementRepo) List(_ context.Context, filter repository.AnnouncementFilter) ([]domain.Announcement, error) {
	return f.list(filter.Page, func(a *domain.Announcement) bool { return !filter.PinnedOnly || a.Pinned }), nil
}
func (f *fakeAnnouncementRepo) Delete(_ context.Context, id string) (*string, error) {
	return f.delete(id)
}
func (f *fakeAnnouncementRepo) SetDiscordMessageID(_ context.Context, id string, messageID *string) error {
	return f.setMessageID(id, messageID)
}

type fakeUniformRepo struct{ memStore[domain.Uniform] }

func newFakeUniformRepo() *fakeUniformRepo {
	return &fakeUniformRepo{memStore[domain.Uniform]{
		rows:    map[string]*domain.Uniform{},
		idOf:    func(u *domain.Uniform) *string { return &u.ID },
		msgOf:   func(u *domain.Uniform) **string { return &u.DiscordMessageID },
		stampOf: func(u *domain.Uniform) (*time.Time, *time.Time) { return &u.CreatedAt, &u.UpdatedAt },
	}}
}

func (f *fakeUniformRepo) Create(_ context.Context, u *domain.Uniform) error {
	f.create(u)
	return nil
}
func (f *fakeUniformRepo) Update(_ context.Context, u *domain.Uniform) error { return f.update(u) }
func (f *fakeUniformRepo) GetByID(_ context.Context, id string) (*domain.Uniform, error) {
	return f.get(id)
}
func (f *fakeUniformRepo) List(_ context.Context, filter repository.UniformFilter) ([]domain.Uniform, error) {
	return f.list(filter.Page, nil), nil
}
func (f *fakeUniformRepo) Delete(_ context.Context, id string) (*string, error) { return f.delete(id) }
func (f *fakeUniformRepo) SetDiscordMessageID(_ context.Context, id string, messageID *string) error {
	return f.setMessageID(id, messageID)
}

type fakeVehicleRepo struct{ memStore[domain.Vehicle] }

func newFakeVehicleRepo() *fakeVehicleRepo {
	return &fakeVehicleRepo{memStore[domain.Vehicle]{
		rows:    map[string]*domain.Vehicle{},
		idOf:    func(v *domain.Vehicle) *string { return &v.ID },
		msgOf:   func(v *domain.Vehicle) **string { return &v.DiscordMessageID },
		stampOf: func(v *domain.Vehicle) (*time.Time, *time.Time) { return &v.CreatedAt, &v.UpdatedAt },
	}}
}

func (f *fakeVehicleRepo) Create(_ context.Context, v *domain.Vehicle) error {
	f.create(v)
	return nil
}
func (f *fakeVehicleRepo) Update(_ context.Context, v *domain.Vehicle) error { return f.update(v) }
func (f *fakeVehicleRepo) GetByID(_ context.Context, id string) (*domain.Vehicle, error) {
	return f.get(id)
}
func (f *fakeVehicleRepo) List(_ context.Context, filter repository.VehicleFilter) ([]domain.Vehicle, error) {
	return f.list(filter.Page, nil), nil
}
func (f *fakeVehicleRepo) Delete(_ context.Context, id string) (*string, error) { return f.delete(id) }
func (f *fakeVehicleRepo) SetDiscordMessageID(_ context.Context, id string, messageID *string) error {
	return f.setMessageID(id, messageID)
}

type fakePersonnelRepo struct{ memStore[domain.Personnel] }

func newFakePersonnelRepo() *fakePersonnelRepo {
	return &fakePersonnelRepo{memStore[domain.Personnel]{
		rows:    map[string]*domain.Personnel{},
		idOf:    func(p *domain.Personnel) *string { return &p.ID },
		msgOf:   func(p *domain.Personnel) **string { return &p.DiscordMessageID },
		stampOf: func(p *domain.Personnel) (*time.Time, *time.Time) { return &p.CreatedAt, &p.UpdatedAt },
	}}
}

func (f *fakePersonnelRepo) Create(_ context.Context, p *domain.Personnel) error {
	f.create(p)
	return nil
}
func (f *fakePersonnelRepo) Update(_ context.Context, p *domain.Personnel) error { return f.update(p) }
func (f *fakePersonnelRepo) GetByID(_ context.Context, id string) (*domain.Personnel, error) {
	return f.get(id)
}
func (f *fakePersonnelRepo) List(_ context.Context, filter repository.PersonnelFilter) ([]domain.Personnel, error) {
	return f.list(filter.Page, func(p *domain.Personnel) bool {
		if filter.SuperiorID == nil {
			return true
		}
		return p.SuperiorID != nil && *p.SuperiorID == *filter.SuperiorID
	}), nil
}
func (f *fakePersonnelRepo) ListAll(_ context.Context) ([]domain.Personnel, error) {
	all := f.list(repository.Page{Limit: 1 << 20}, nil)
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	return all, nil
}
func (f *fakePersonnelRepo) Delete(_ context.Context, id string) (*string, error) {
	msg, err := f.delete(id)
	if err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.rows {
		if p.SuperiorID != nil && *p.SuperiorID == id {
			p.SuperiorID = nil
		}
	}
	return msg, nil
}
func (f *fakePersonnelRepo) SetDiscordMessageID(_ context.Context, id string, messageID *string) error {
	return f.setMessageID(id, messageID)
}

// mockMessenger is a testify mock of discord.Messenger.
type mockMessenger struct {
	mock.Mock
}

func (m *mockMessenger) Send(ctx context.Context, channel string, embed discord.Embed) (string, error) {
	args := m.Called(ctx, channel, embed)
	return args.String(0), args.Error(1)
}

func (m *mockMessenger) Edit(ctx context.Context, channel, messageID string, embed discord.Embed) error {
	args := m.Called(ctx, channel, messageID, embed)
	return args.Error(0)
}

func (m *mockMessenger) Delete(ctx context.Context, channel, messageID string) error {
	args := m.Called(ctx, channel, messageID)
	return args.Error(0)
}

// recordingDispatcher captures published events.
type recordingDispatcher struct {
	mu     sync.Mutex
	events []events.Event
}

func (d *recordingDispatcher) Publish(_ context.Context, e events.Event) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, e)
	return nil
}

func (d *recordingDispatcher) Subscribe(events.EventType, events.EventHandler) {}

func (d *recordingDispatcher) types() []events.EventType {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]events.EventType, len(d.events))
	for i, e := range d.events {
		out[i] = e.Type
	}
	return out
}

func strPtr(s string) *string { return &s }
