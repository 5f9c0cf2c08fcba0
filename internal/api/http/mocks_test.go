package http

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/MatiasXp0/forca-tatica/internal/discord"
	"github.com/MatiasXp0/forca-tatica/internal/domain"
	"github.com/MatiasXp0/forca-tatica/internal/observability"
	"github.com/MatiasXp0/forca-tatica/internal/repository"
	"github.com/MatiasXp0/forca-tatica/internal/service"
)

type mockAnnouncementService struct{ mock.Mock }

func (m *mockAnnouncementService) Create(ctx context.Context, actor service.Actor, input service.AnnouncementInput) (*domain.Announcement, error) {
	args := m.Called(ctx, actor, input)
	a, _ := args.Get(0).(*domain.Announcement)
	return a, args.Error(1)
}

func (m *mockAnnouncementService) Update(ctx context.Context, actor service.Actor, id string, input service.AnnouncementInput) (*domain.Announcement, error) {
	args := m.Called(ctx, actor, id, input)
	a, _ := args.Get(0).(*domain.Announcement)
	return a, args.Error(1)
}

func (m *mockAnnouncementService) Get(ctx context.Context, id string) (*domain.Announcement, error) {
	args := m.Called(ctx, id)
	a, _ := args.Get(0).(*domain.Announcement)
	return a, args.Error(1)
}

func (m *mockAnnouncementService) List(ctx context.Context, filter repository.AnnouncementFilter) ([]domain.Announcement, error) {
	args := m.Called(ctx, filter)
	list, _ := args.Get(0).([]domain.Announcement)
	return list, args.Error(1)
}

func (m *mockAnnouncementService) Delete(ctx context.Context, actor service.Actor, id string) error {
	return m.Called(ctx, actor, id).Error(0)
}

type mockPersonnelService struct{ mock.Mock }

func (m *mockPersonnelService) Create(ctx context.Context, actor service.Actor, input service.PersonnelInput) (*domain.Personnel, error) {
	args := m.Called(ctx, actor, input)
	p, _ := args.Get(0).(*domain.Personnel)
	return p, args.Error(1)
}

func (m *mockPersonnelService) Update(ctx context.Context, actor service.Actor, id string, input service.PersonnelInput) (*domain.Personnel, error) {
	args := m.Called(ctx, actor, id, input)
	p, _ := args.Get(0).(*domain.Personnel)
	return p, args.Error(1)
}

func (m *mockPersonnelService) Get(ctx context.Context, id string) (*domain.Personnel, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*domain.Personnel)
	return p, args.Error(1)
}

func (m *mockPersonnelService) List(ctx context.Context, filter repository.PersonnelFilter) ([]domain.Personnel, error) {
	args := m.Called(ctx, filter)
	list, _ := args.Get(0).([]domain.Personnel)
	return list, args.Error(1)
}

func (m *mockPersonnelService) Delete(ctx context.Context, actor service.Actor, id string) error {
	return m.Called(ctx, actor, id).Error(0)
}

func (m *mockPersonnelService) Hierarchy(ctx context.Context) ([]*domain.PersonnelNode, error) {
	args := m.Called(ctx)
	nodes, _ := args.Get(0).([]*domain.PersonnelNode)
	return nodes, args.Error(1)
}

type mockSyncer struct{ mock.Mock }

func (m *mockSyncer) SyncRecord(ctx context.Context, kind domain.RecordKind, id string) (observability.SyncOutcome, error) {
	args := m.Called(ctx, kind, id)
	return args.Get(0).(observability.SyncOutcome), args.Error(1)
}

type mockMessenger struct{ mock.Mock }

func (m *mockMessenger) Send(ctx context.Context, channel string, embed discord.Embed) (string, error) {
	args := m.Called(ctx, channel, embed)
	return args.String(0), args.Error(1)
}

func (m *mockMessenger) Edit(ctx context.Context, channel, messageID string, embed discord.Embed) error {
	return m.Called(ctx, channel, messageID, embed).Error(0)
}

func (m *mockMessenger) Delete(ctx context.Context, channel, messageID string) error {
	return m.Called(ctx, channel, messageID).Error(0)
}
