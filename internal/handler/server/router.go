package server

import (
	"net/http"

	"github.com/bagdasarian/simpleprefix/internal/handler"
)

func SetupRoutes(mux *http.ServeMux, h *handler.Handler) {
	mux.HandleFunc("POST /groups/set", h.SetGroup)
	mux.HandleFunc("POST /groups/create", h.CreateGroup)
	mux.HandleFunc("POST /groups/delete", h.DeleteGroup)
	mux.HandleFunc("GET /groups/get", h.GetGroup)
	mux.HandleFunc("GET /groups/list", h.ListGroups)
	mux.HandleFunc("POST /groups/cleanup", h.CleanupGroups)
	mux.HandleFunc("POST /groups/migrate", h.MigrateGroups)
	mux.HandleFunc("POST /registry/reload", h.ReloadRegistry)
	mux.HandleFunc("POST /users/join", h.Join)
	mux.HandleFunc("POST /users/quit", h.Quit)
	mux.HandleFunc("POST /users/permissions", h.SetPermissions)
	mux.HandleFunc("GET /users/resolve", h.ResolveGroup)
	mux.HandleFunc("POST /users/sync", h.SyncUser)
	mux.HandleFunc("POST /backend/groups/changed", h.BackendGroupChanged)
	mux.HandleFunc("POST /formats/chat", h.UpdateChatFormat)
	mux.HandleFunc("POST /formats/tab", h.UpdateTabFormat)
	mux.HandleFunc("POST /chat/format", h.FormatChat)
	mux.HandleFunc("GET /teams", h.ListTeams)
}
