package handler

import (
	"context"
	"net/http"

	"github.com/bagdasarian/simpleprefix/internal/domain"
	"github.com/bagdasarian/simpleprefix/internal/service"
)

// SetGroup создает или обновляет группу и пересинхронизирует всех онлайн
func (h *Handler) SetGroup(w http.ResponseWriter, r *http.Request) {
	var req GroupRequest
	if err := decode(r, &req); err != nil {
		h.handleError(w, err)
		return
	}

	h.saveGroup(w, r, req, http.StatusOK, h.registry.Upsert)
}

func (h *Handler) CreateGroup(w http.ResponseWriter, r *http.Request) {
	var req GroupRequest
	if err := decode(r, &req); err != nil {
		h.handleError(w, err)
		return
	}

	h.saveGroup(w, r, req, http.StatusCreated, h.registry.Create)
}

func (h *Handler) saveGroup(
	w http.ResponseWriter,
	r *http.Request,
	req GroupRequest,
	status int,
	save func(context.Context, domain.Group) error,
) {
	var saved domain.Group
	err := h.executor.Call(r.Context(), func() error {
		if err := save(r.Context(), httpGroupToDomain(req)); err != nil {
			// при IO_FAILURE запись уже в памяти, оформление все равно обновляется
			if _, ok := h.registry.Get(req.Name); ok {
				h.resyncOnline(r.Context())
			}
			return err
		}
		saved, _ = h.registry.Get(req.Name)
		h.resyncOnline(r.Context())
		return nil
	})
	if err != nil {
		h.handleError(w, err)
		return
	}

	writeJSON(w, status, domainGroupToHTTP(saved))
}

func (h *Handler) DeleteGroup(w http.ResponseWriter, r *http.Request) {
	var req GroupNameRequest
	if err := decode(r, &req); err != nil {
		h.handleError(w, err)
		return
	}

	err := h.executor.Call(r.Context(), func() error {
		if err := h.registry.Remove(r.Context(), req.Name); err != nil {
			return err
		}
		h.resyncOnline(r.Context())
		return nil
	})
	if err != nil {
		h.handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) GetGroup(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if name == "" {
		h.handleError(w, domain.NewBadRequestError("name parameter is required"))
		return
	}

	group, ok := h.registry.Get(name)
	if !ok {
		h.handleError(w, domain.NewNotFoundError("group "+name))
		return
	}

	writeJSON(w, http.StatusOK, domainGroupToHTTP(group))
}

func (h *Handler) ListGroups(w http.ResponseWriter, r *http.Request) {
	groups := h.registry.All()
	resp := GroupListResponse{Groups: make([]GroupResponse, 0, len(groups))}
	for _, g := range groups {
		resp.Groups = append(resp.Groups, domainGroupToHTTP(g))
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) ReloadRegistry(w http.ResponseWriter, r *http.Request) {
	err := h.executor.Call(r.Context(), func() error {
		if err := h.registry.Reload(r.Context()); err != nil {
			return err
		}
		h.resyncOnline(r.Context())
		return nil
	})
	if err != nil {
		h.handleError(w, err)
		return
	}

	h.ListGroups(w, r)
}

func (h *Handler) CleanupGroups(w http.ResponseWriter, r *http.Request) {
	var report *service.MigrationReport
	err := h.executor.Call(r.Context(), func() error {
		var err error
		report, err = h.migration.CleanupEmptyGroups(r.Context())
		h.resyncOnline(r.Context())
		return err
	})
	if err != nil {
		h.handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, reportToHTTP(report))
}

func (h *Handler) MigrateGroups(w http.ResponseWriter, r *http.Request) {
	var req MigrateRequest
	if err := decode(r, &req); err != nil {
		h.handleError(w, err)
		return
	}
	if req.Path == "" {
		h.handleError(w, domain.NewBadRequestError("path is required"))
		return
	}

	var report *service.MigrationReport
	err := h.executor.Call(r.Context(), func() error {
		var err error
		report, err = h.migration.MigrateLuckPrefix(r.Context(), req.Path)
		h.resyncOnline(r.Context())
		return err
	})
	if err != nil {
		h.handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, reportToHTTP(report))
}
