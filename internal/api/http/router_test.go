package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/MatiasXp0/forca-tatica/internal/api/http/handlers"
	"github.com/MatiasXp0/forca-tatica/internal/auth"
	"github.com/MatiasXp0/forca-tatica/internal/discord"
	"github.com/MatiasXp0/forca-tatica/internal/domain"
	"github.com/MatiasXp0/forca-tatica/internal/observability"
	"github.com/MatiasXp0/forca-tatica/internal/repository"
	"github.com/MatiasXp0/forca-tatica/internal/service"
	apperrors "github.com/MatiasXp0/forca-tatica/pkg/util/errorutil"
)

const (
	testProxyKey = "proxy-secret"
	testRecordID = "3f1c2b4a-5d6e-4f70-8a91-b2c3d4e5f607"
)

type okPinger struct{}

func (okPinger) Ping(context.Context) error { return nil }

type testServer struct {
	app           *fiber.App
	tokens        *auth.TokenManager
	metrics       *observability.Metrics
	announcements *mockAnnouncementService
	personnel     *mockPersonnelService
	syncer        *mockSyncer
	messenger     *mockMessenger
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(testProxyKey), bcrypt.MinCost)
	require.NoError(t, err)

	s := &testServer{
		app:           fiber.New(),
		tokens:        auth.NewTokenManager("test-secret", 60),
		metrics:       observability.NewMetrics(),
		announcements: &mockAnnouncementService{},
		personnel:     &mockPersonnelService{},
		syncer:        &mockSyncer{},
		messenger:     &mockMessenger{},
	}
	RegisterMiddlewares(s.app, zap.NewNop(), s.metrics, time.Second)
	RegisterRoutes(s.app, RouteConfig{
		Health:         handlers.NewHealthHandler("portal", "test", okPinger{}, nil, s.metrics),
		Announcements:  handlers.NewAnnouncementsHandler(s.announcements, s.syncer),
		Uniforms:       handlers.NewUniformsHandler(nil, s.syncer),
		Vehicles:       handlers.NewVehiclesHandler(nil, s.syncer),
		Personnel:      handlers.NewPersonnelHandler(s.personnel, s.syncer),
		Proxy:          handlers.NewProxyHandler(s.messenger, discord.Channels{domain.KindAnnouncement: "100"}, nil),
		AuthMiddleware: auth.NewAuthMiddleware(s.tokens),
		ProxyKeyHash:   string(hash),
	})
	t.Cleanup(func() {
		s.announcements.AssertExpectations(t)
		s.personnel.AssertExpectations(t)
		s.syncer.AssertExpectations(t)
		s.messenger.AssertExpectations(t)
	})
	return s
}

func (s *testServer) token(t *testing.T, role domain.Role) string {
	t.Helper()
	tok, _, err := s.tokens.GenerateToken("user-1", "Ana", role)
	require.NoError(t, err)
	return tok
}

func (s *testServer) do(t *testing.T, method, path string, body any, headers map[string]string) (int, map[string]any) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	out := map[string]any{}
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	}
	return resp.StatusCode, out
}

func bearer(tok string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + tok}
}

func errorCode(body map[string]any) string {
	envelope, _ := body["error"].(map[string]any)
	code, _ := envelope["code"].(string)
	return code
}

func strPtr(s string) *string { return &s }

func TestHealthAndMetrics(t *testing.T) {
	s := newTestServer(t)

	status, body := s.do(t, http.MethodGet, "/health/live", nil, nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "alive", body["status"])

	status, body = s.do(t, http.MethodGet, "/health/ready", nil, nil)
	assert.Equal(t, http.StatusOK, status)
	deps := body["dependencies"].(map[string]any)
	assert.Equal(t, "disabled", deps["redis"])

	status, body = s.do(t, http.MethodGet, "/metrics", nil, nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "requests")
}

func TestAPI_RequiresToken(t *testing.T) {
	s := newTestServer(t)

	status, body := s.do(t, http.MethodGet, "/api/announcements", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "UNAUTHORIZED", errorCode(body))

	status, _ = s.do(t, http.MethodGet, "/api/announcements", nil, bearer("garbage"))
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestAnnouncements_ListParsesQuery(t *testing.T) {
	s := newTestServer(t)
	expected := repository.AnnouncementFilter{
		Category:   strPtr("Ops"),
		Priorities: []domain.AnnouncementPriority{domain.AnnouncementPriorityHigh, domain.AnnouncementPriorityUrgent},
		PinnedOnly: true,
		Page:       repository.Page{Limit: 10, Offset: 10},
	}
	s.announcements.On("List", mock.Anything, expected).Return([]domain.Announcement{
		{ID: testRecordID, Title: "Escala", Priority: domain.AnnouncementPriorityHigh},
	}, nil).Once()

	status, body := s.do(t, http.MethodGet,
		"/api/announcements?page=2&page_size=10&priority=high,%20urgent&pinned=true&category=Ops",
		nil, bearer(s.token(t, domain.RoleViewer)))
	require.Equal(t, http.StatusOK, status)

	data := body["data"].([]any)
	require.Len(t, data, 1)
	item := data[0].(map[string]any)
	assert.Equal(t, "Escala", item["title"])
	assert.Nil(t, item["discord_message_id"])
}

func TestAnnouncements_ViewerCannotWrite(t *testing.T) {
	s := newTestServer(t)

	status, body := s.do(t, http.MethodPost, "/api/announcements",
		map[string]any{"title": "t", "body": "b"}, bearer(s.token(t, domain.RoleViewer)))
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "FORBIDDEN", errorCode(body))
}

func TestAnnouncements_CreateUsesTokenActor(t *testing.T) {
	s := newTestServer(t)
	input := service.AnnouncementInput{Title: "Escala", Body: "Plantão", Priority: domain.AnnouncementPriorityUrgent}
	s.announcements.On("Create", mock.Anything, service.Actor{ID: "user-1", Name: "Ana"}, input).
		Return(&domain.Announcement{ID: testRecordID, Title: "Escala", Author: "Ana"}, nil).Once()

	status, body := s.do(t, http.MethodPost, "/api/announcements",
		map[string]any{"title": "Escala", "body": "Plantão", "priority": "URGENT"},
		bearer(s.token(t, domain.RoleEditor)))
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, testRecordID, body["data"].(map[string]any)["id"])
}

func TestAnnouncements_ErrorEnvelope(t *testing.T) {
	s := newTestServer(t)
	s.announcements.On("Update", mock.Anything, mock.Anything, testRecordID, mock.Anything).
		Return(nil, apperrors.NewValidationError("invalid input", map[string]any{"title": "required"})).Once()
	s.announcements.On("Get", mock.Anything, "missing").
		Return(nil, apperrors.NewNotFound("announcement", nil)).Once()

	status, body := s.do(t, http.MethodPut, "/api/announcements/"+testRecordID,
		map[string]any{"title": ""}, bearer(s.token(t, domain.RoleAdmin)))
	assert.Equal(t, http.StatusBadRequest, status)
	envelope := body["error"].(map[string]any)
	assert.Equal(t, "VALIDATION_FAILED", envelope["code"])
	assert.Equal(t, "required", envelope["details"].(map[string]any)["title"])

	status, body = s.do(t, http.MethodGet, "/api/announcements/missing", nil, bearer(s.token(t, domain.RoleViewer)))
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", errorCode(body))

	var notFound int64
	for key, n := range s.metrics.Snapshot().Errors {
		if strings.HasSuffix(key, "|GET|NOT_FOUND") {
			notFound += n
		}
	}
	assert.EqualValues(t, 1, notFound)
}

func TestAnnouncements_Delete(t *testing.T) {
	s := newTestServer(t)
	s.announcements.On("Delete", mock.Anything, mock.Anything, testRecordID).Return(nil).Once()

	status, _ := s.do(t, http.MethodDelete, "/api/announcements/"+testRecordID, nil, bearer(s.token(t, domain.RoleEditor)))
	assert.Equal(t, http.StatusNoContent, status)
}

func TestAnnouncements_ForceSync(t *testing.T) {
	s := newTestServer(t)
	s.announcements.On("Get", mock.Anything, testRecordID).Return(&domain.Announcement{ID: testRecordID}, nil).Twice()
	s.syncer.On("SyncRecord", mock.Anything, domain.KindAnnouncement, testRecordID).Return(observability.SyncEdited, nil).Once()
	s.syncer.On("SyncRecord", mock.Anything, domain.KindAnnouncement, testRecordID).Return(observability.SyncFailed, errors.New("discord down")).Once()

	tok := s.token(t, domain.RoleEditor)
	status, body := s.do(t, http.MethodPost, "/api/announcements/"+testRecordID+"/sync", nil, bearer(tok))
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "edited", body["data"].(map[string]any)["outcome"])

	status, body = s.do(t, http.MethodPost, "/api/announcements/"+testRecordID+"/sync", nil, bearer(tok))
	assert.Equal(t, http.StatusBadGateway, status)
	assert.Equal(t, "UPSTREAM_FAILED", errorCode(body))
}

func TestPersonnel_HierarchyRoute(t *testing.T) {
	s := newTestServer(t)
	s.personnel.On("Hierarchy", mock.Anything).Return([]*domain.PersonnelNode{
		{
			Personnel: domain.Personnel{ID: "col", Name: "Zeca", Rank: "Coronel"},
			Subordinates: []*domain.PersonnelNode{
				{Personnel: domain.Personnel{ID: "maj", Name: "Ana", Rank: "Major", SuperiorID: strPtr("col")}},
			},
		},
	}, nil).Once()

	status, body := s.do(t, http.MethodGet, "/api/personnel/hierarchy", nil, bearer(s.token(t, domain.RoleViewer)))
	require.Equal(t, http.StatusOK, status)

	roots := body["data"].([]any)
	require.Len(t, roots, 1)
	root := roots[0].(map[string]any)
	assert.Equal(t, "col", root["id"])
	subs := root["subordinates"].([]any)
	require.Len(t, subs, 1)
	assert.Equal(t, "col", subs[0].(map[string]any)["superior_id"])
}

func TestPersonnel_ListRejectsMalformedSuperiorID(t *testing.T) {
	s := newTestServer(t)
	s.personnel.On("List", mock.Anything, mock.MatchedBy(func(f repository.PersonnelFilter) bool {
		return f.SuperiorID != nil && *f.SuperiorID == testRecordID
	})).Return([]domain.Personnel{}, nil).Once()
	tok := bearer(s.token(t, domain.RoleViewer))

	status, body := s.do(t, http.MethodGet, "/api/personnel?superior_id=abc", nil, tok)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION_FAILED", errorCode(body))
	details := body["error"].(map[string]any)["details"].(map[string]any)
	assert.Equal(t, "must be a uuid", details["superior_id"])

	status, _ = s.do(t, http.MethodGet, "/api/personnel?superior_id="+testRecordID, nil, tok)
	assert.Equal(t, http.StatusOK, status)
}

func TestPersonnel_CreateParsesJoinedAt(t *testing.T) {
	s := newTestServer(t)
	joined := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)
	s.personnel.On("Create", mock.Anything, mock.Anything, mock.MatchedBy(func(in service.PersonnelInput) bool {
		return in.JoinedAt != nil && in.JoinedAt.Equal(joined) && in.Status == domain.PersonnelStatusLeave
	})).Return(&domain.Personnel{ID: testRecordID, Name: "Souza", Rank: "Cabo", JoinedAt: &joined}, nil).Once()

	tok := s.token(t, domain.RoleEditor)
	status, _ := s.do(t, http.MethodPost, "/api/personnel",
		map[string]any{"name": "Souza", "rank": "Cabo", "status": "leave", "joined_at": "2024-05-10"}, bearer(tok))
	assert.Equal(t, http.StatusCreated, status)

	status, body := s.do(t, http.MethodPost, "/api/personnel",
		map[string]any{"name": "Souza", "rank": "Cabo", "joined_at": "10/05/2024"}, bearer(tok))
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION_FAILED", errorCode(body))
}

func TestUnknownRoute(t *testing.T) {
	s := newTestServer(t)
	status, body := s.do(t, http.MethodGet, "/nope", nil, nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", errorCode(body))
}
