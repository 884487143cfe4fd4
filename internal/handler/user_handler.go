package handler

import (
	"net/http"

	"github.com/bagdasarian/simpleprefix/internal/domain"
)

func (h *Handler) Join(w http.ResponseWriter, r *http.Request) {
	var req UserRequest
	if err := decode(r, &req); err != nil {
		h.handleError(w, err)
		return
	}

	user, err := httpUserToDomain(req)
	if err != nil {
		h.handleError(w, err)
		return
	}
	if err := h.events.Join(r.Context(), user); err != nil {
		h.handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusAccepted)
}

func (h *Handler) Quit(w http.ResponseWriter, r *http.Request) {
	var req UserIDRequest
	if err := decode(r, &req); err != nil {
		h.handleError(w, err)
		return
	}

	id, err := parseUserID(req.UserID)
	if err != nil {
		h.handleError(w, err)
		return
	}
	if err := h.events.Quit(r.Context(), id); err != nil {
		h.handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusAccepted)
}

func (h *Handler) SetPermissions(w http.ResponseWriter, r *http.Request) {
	var req PermissionsRequest
	if err := decode(r, &req); err != nil {
		h.handleError(w, err)
		return
	}

	id, err := parseUserID(req.UserID)
	if err != nil {
		h.handleError(w, err)
		return
	}
	if err := h.events.PermissionsChanged(r.Context(), id, req.Permissions); err != nil {
		h.handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusAccepted)
}

func (h *Handler) ResolveGroup(w http.ResponseWriter, r *http.Request) {
	user, err := h.onlineUser(r.URL.Query().Get("user_id"))
	if err != nil {
		h.handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, ResolveResponse{
		UserID: user.ID.String(),
		Group:  h.resolver.ResolveGroup(r.Context(), user),
	})
}

// SyncUser синхронизирует пользователя сразу, без задержки событий
func (h *Handler) SyncUser(w http.ResponseWriter, r *http.Request) {
	var req UserIDRequest
	if err := decode(r, &req); err != nil {
		h.handleError(w, err)
		return
	}

	user, err := h.onlineUser(req.UserID)
	if err != nil {
		h.handleError(w, err)
		return
	}

	var binding domain.Binding
	err = h.executor.Call(r.Context(), func() error {
		if err := h.synchronizer.Synchronize(r.Context(), user); err != nil {
			return err
		}
		for _, b := range h.synchronizer.Bindings() {
			if b.UserID == user.ID {
				binding = b
			}
		}
		return nil
	})
	if err != nil {
		h.handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, domainBindingToHTTP(binding))
}

func (h *Handler) onlineUser(rawID string) (*domain.User, error) {
	if rawID == "" {
		return nil, domain.NewBadRequestError("user_id is required")
	}
	id, err := parseUserID(rawID)
	if err != nil {
		return nil, err
	}
	user, ok := h.sessions.Get(id)
	if !ok {
		return nil, domain.NewNotFoundError("online user " + rawID)
	}
	return user, nil
}
