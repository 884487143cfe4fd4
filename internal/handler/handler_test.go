package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/bagdasarian/simpleprefix/internal/config"
	"github.com/bagdasarian/simpleprefix/internal/domain"
	"github.com/bagdasarian/simpleprefix/internal/format"
	"github.com/bagdasarian/simpleprefix/internal/handler"
	"github.com/bagdasarian/simpleprefix/internal/handler/server"
	"github.com/bagdasarian/simpleprefix/internal/repository/yamlfile"
	"github.com/bagdasarian/simpleprefix/internal/scoreboard"
	"github.com/bagdasarian/simpleprefix/internal/service"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type inlineExecutor struct{}

func (inlineExecutor) Call(_ context.Context, fn func() error) error {
	return fn()
}

func (inlineExecutor) Submit(fn func()) bool {
	fn()
	return true
}

func (inlineExecutor) SubmitAfter(_ time.Duration, fn func()) {
	fn()
}

func setupRouter(t *testing.T) *http.ServeMux {
	t.Helper()
	dir := t.TempDir()
	logger := zap.NewNop()

	settings := config.NewSettingsStore(filepath.Join(dir, "config.yml"), nil)
	require.NoError(t, settings.Load())

	registry := service.NewGroupRegistry(yamlfile.NewGroupStore(filepath.Join(dir, "groups.yml")), nil, nil, settings, logger)
	require.NoError(t, registry.Load(context.Background()))

	limits := config.NegotiateLimits("1.20.4")
	renderer := format.NewLegacyRenderer(limits.Legacy)
	board := scoreboard.NewBoard()
	resolver := service.NewGroupResolver(nil, registry, settings, logger)
	synchronizer := service.NewTeamSynchronizer(resolver, registry, board, limits, renderer, settings, logger)
	sessions := service.NewSessions()
	executor := inlineExecutor{}

	h := handler.NewHandler(handler.Services{
		Registry:     registry,
		Resolver:     resolver,
		Synchronizer: synchronizer,
		Events:       service.NewEventService(sessions, registry, resolver, synchronizer, executor, settings, logger),
		Chat:         service.NewChatFormatter(resolver, registry, renderer, settings),
		Formats:      service.NewFormatService(settings, sessions, synchronizer, logger),
		Migration:    service.NewMigrationService(registry, settings, logger),
		Sessions:     sessions,
		Board:        board,
	}, executor)

	mux := http.NewServeMux()
	server.SetupRoutes(mux, h)
	return mux
}

func do(t *testing.T, mux *http.ServeMux, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var resp handler.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp.Error.Code
}

func TestHandler_Groups(t *testing.T) {
	t.Run("создание и чтение группы", func(t *testing.T) {
		mux := setupRouter(t)

		rec := do(t, mux, http.MethodPost, "/groups/create", handler.GroupRequest{
			Name: "VIP", Prefix: "<gold>[VIP] ", Priority: 10, NameColor: "gold",
		})
		require.Equal(t, http.StatusCreated, rec.Code)

		rec = do(t, mux, http.MethodGet, "/groups/get?name=vip", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		var group handler.GroupResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&group))
		assert.Equal(t, handler.GroupResponse{Name: "vip", Prefix: "<gold>[VIP] ", Priority: 10, NameColor: "gold"}, group)
	})

	t.Run("повторное создание - конфликт", func(t *testing.T) {
		mux := setupRouter(t)

		rec := do(t, mux, http.MethodPost, "/groups/create", handler.GroupRequest{Name: "admin", Priority: 1})

		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Equal(t, "CONFLICT", errorCode(t, rec))
	})

	t.Run("set обновляет существующую", func(t *testing.T) {
		mux := setupRouter(t)

		rec := do(t, mux, http.MethodPost, "/groups/set", handler.GroupRequest{Name: "admin", Prefix: "[A] ", Priority: 2})

		require.Equal(t, http.StatusOK, rec.Code)
		var group handler.GroupResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&group))
		assert.Equal(t, 2, group.Priority)
	})

	t.Run("удаление", func(t *testing.T) {
		mux := setupRouter(t)

		assert.Equal(t, http.StatusConflict, do(t, mux, http.MethodPost, "/groups/delete", handler.GroupNameRequest{Name: "default"}).Code)
		assert.Equal(t, http.StatusNotFound, do(t, mux, http.MethodPost, "/groups/delete", handler.GroupNameRequest{Name: "ghost"}).Code)
		assert.Equal(t, http.StatusNoContent, do(t, mux, http.MethodPost, "/groups/delete", handler.GroupNameRequest{Name: "admin"}).Code)
		assert.Equal(t, http.StatusNotFound, do(t, mux, http.MethodGet, "/groups/get?name=admin", nil).Code)
	})

	t.Run("список групп", func(t *testing.T) {
		mux := setupRouter(t)

		rec := do(t, mux, http.MethodGet, "/groups/list", nil)

		require.Equal(t, http.StatusOK, rec.Code)
		var list handler.GroupListResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&list))
		require.Len(t, list.Groups, 2)
		assert.Equal(t, "admin", list.Groups[0].Name)
		assert.Equal(t, "default", list.Groups[1].Name)
	})

	t.Run("некорректные запросы", func(t *testing.T) {
		mux := setupRouter(t)

		req := httptest.NewRequest(http.MethodPost, "/groups/set", bytes.NewBufferString("{"))
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		assert.Equal(t, http.StatusBadRequest, do(t, mux, http.MethodGet, "/groups/get", nil).Code)
		assert.Equal(t, http.StatusBadRequest, do(t, mux, http.MethodPost, "/groups/migrate", handler.MigrateRequest{}).Code)
	})
}

func TestHandler_Users(t *testing.T) {
	mux := setupRouter(t)
	aliceID := uuid.New()
	alice := &domain.User{ID: aliceID}

	rec := do(t, mux, http.MethodPost, "/users/join", handler.UserRequest{
		UserID:      aliceID.String(),
		Name:        "Alice",
		Permissions: []string{"simpleprefix.group.admin"},
	})
	require.Equal(t, http.StatusAccepted, rec.Code)

	t.Run("группа пользователя", func(t *testing.T) {
		rec := do(t, mux, http.MethodGet, "/users/resolve?user_id="+aliceID.String(), nil)

		require.Equal(t, http.StatusOK, rec.Code)
		var resp handler.ResolveResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Equal(t, "admin", resp.Group)
	})

	t.Run("команда на табло", func(t *testing.T) {
		rec := do(t, mux, http.MethodGet, "/teams", nil)

		require.Equal(t, http.StatusOK, rec.Code)
		var resp handler.TeamListResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		require.Len(t, resp.Teams, 1)
		assert.Equal(t, format.TeamIdentifier(1, alice.IDTail(), 16), resp.Teams[0].Name)
		assert.Equal(t, "§c[Admin] §c", resp.Teams[0].Prefix)
		assert.Equal(t, []string{"Alice"}, resp.Teams[0].Entries)
	})

	t.Run("снятие права", func(t *testing.T) {
		rec := do(t, mux, http.MethodPost, "/users/permissions", handler.PermissionsRequest{UserID: aliceID.String()})
		require.Equal(t, http.StatusAccepted, rec.Code)

		rec = do(t, mux, http.MethodPost, "/users/sync", handler.UserIDRequest{UserID: aliceID.String()})
		require.Equal(t, http.StatusOK, rec.Code)
		var binding handler.BindingResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&binding))
		assert.Equal(t, format.TeamIdentifier(999, alice.IDTail(), 16), binding.Identifier)
		assert.Equal(t, "default", binding.Group)
	})

	t.Run("строка чата", func(t *testing.T) {
		rec := do(t, mux, http.MethodPost, "/chat/format", handler.ChatLineRequest{UserID: aliceID.String(), Message: "hi"})

		require.Equal(t, http.StatusOK, rec.Code)
		var resp handler.ChatLineResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.True(t, resp.Enabled)
		assert.Equal(t, "Alice: hi", resp.Line)
	})

	t.Run("выход", func(t *testing.T) {
		require.Equal(t, http.StatusAccepted, do(t, mux, http.MethodPost, "/users/quit", handler.UserIDRequest{UserID: aliceID.String()}).Code)

		rec := do(t, mux, http.MethodGet, "/teams", nil)
		var resp handler.TeamListResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Empty(t, resp.Teams)
	})

	t.Run("ошибки идентификатора", func(t *testing.T) {
		assert.Equal(t, http.StatusBadRequest, do(t, mux, http.MethodGet, "/users/resolve?user_id=nope", nil).Code)
		assert.Equal(t, http.StatusNotFound, do(t, mux, http.MethodGet, "/users/resolve?user_id="+uuid.NewString(), nil).Code)
		assert.Equal(t, http.StatusNotFound, do(t, mux, http.MethodPost, "/users/permissions", handler.PermissionsRequest{UserID: uuid.NewString()}).Code)
	})
}

func TestHandler_Formats(t *testing.T) {
	mux := setupRouter(t)
	disabled := false

	rec := do(t, mux, http.MethodPost, "/formats/chat", handler.ChatFormatRequest{Enabled: &disabled})
	require.Equal(t, http.StatusOK, rec.Code)
	var chat handler.ChatFormatResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&chat))
	assert.False(t, chat.Enabled)

	layout := "{prefix}| {player}"
	rec = do(t, mux, http.MethodPost, "/formats/tab", handler.TabFormatRequest{Format: &layout})
	require.Equal(t, http.StatusOK, rec.Code)
	var tab handler.TabFormatResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&tab))
	assert.Equal(t, layout, tab.Format)
	assert.True(t, tab.SpaceBeforeName)
}

func TestHandler_BackendGroupChanged(t *testing.T) {
	mux := setupRouter(t)

	assert.Equal(t, http.StatusBadRequest, do(t, mux, http.MethodPost, "/backend/groups/changed", handler.BackendGroupChangedRequest{}).Code)
	assert.Equal(t, http.StatusAccepted, do(t, mux, http.MethodPost, "/backend/groups/changed", handler.BackendGroupChangedRequest{Group: "admin"}).Code)
}
