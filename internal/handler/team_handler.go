package handler

import (
	"net/http"

	"github.com/bagdasarian/simpleprefix/internal/domain"
	"github.com/bagdasarian/simpleprefix/internal/scoreboard"
)

func (h *Handler) ListTeams(w http.ResponseWriter, r *http.Request) {
	var teams []scoreboard.Team
	err := h.executor.Call(r.Context(), func() error {
		teams = h.board.Teams()
		return nil
	})
	if err != nil {
		h.handleError(w, err)
		return
	}

	resp := TeamListResponse{Teams: make([]TeamResponse, 0, len(teams))}
	for _, t := range teams {
		resp.Teams = append(resp.Teams, teamToHTTP(t))
	}
	writeJSON(w, http.StatusOK, resp)
}

// BackendGroupChanged - уведомление от бэкенда прав об изменении группы
func (h *Handler) BackendGroupChanged(w http.ResponseWriter, r *http.Request) {
	var req BackendGroupChangedRequest
	if err := decode(r, &req); err != nil {
		h.handleError(w, err)
		return
	}
	if req.Group == "" {
		h.handleError(w, domain.NewBadRequestError("group is required"))
		return
	}

	if err := h.events.BackendGroupChanged(r.Context(), req.Group); err != nil {
		h.handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusAccepted)
}
