package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestAccessLog(t *testing.T) {
	t.Run("успешный запрос пишется на debug", func(t *testing.T) {
		core, logs := observer.New(zapcore.DebugLevel)
		h := AccessLog(zap.New(core))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusAccepted)
		}))

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/users/join", nil))

		assert.Equal(t, http.StatusAccepted, rec.Code)
		entries := logs.FilterMessage("request").All()
		require.Len(t, entries, 1)
		assert.Equal(t, zapcore.DebugLevel, entries[0].Level)
		assert.Equal(t, "/users/join", entries[0].ContextMap()["path"])
		assert.Equal(t, int64(http.StatusAccepted), entries[0].ContextMap()["status"])
	})

	t.Run("ошибка сервера пишется на warn", func(t *testing.T) {
		core, logs := observer.New(zapcore.DebugLevel)
		h := AccessLog(zap.New(core))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		}))

		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/groups/list", nil))

		assert.Equal(t, 1, logs.FilterMessage("request failed").FilterField(zap.Int("status", http.StatusInternalServerError)).Len())
	})

	t.Run("без WriteHeader статус 200", func(t *testing.T) {
		core, logs := observer.New(zapcore.DebugLevel)
		h := AccessLog(zap.New(core))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("ok"))
		}))

		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/teams", nil))

		assert.Equal(t, 1, logs.FilterField(zap.Int("status", http.StatusOK)).Len())
	})
}
