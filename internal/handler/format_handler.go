package handler

import (
	"net/http"

	"github.com/bagdasarian/simpleprefix/internal/config"
	"github.com/bagdasarian/simpleprefix/internal/service"
)

func (h *Handler) UpdateChatFormat(w http.ResponseWriter, r *http.Request) {
	var req ChatFormatRequest
	if err := decode(r, &req); err != nil {
		h.handleError(w, err)
		return
	}

	var chat config.ChatFormat
	err := h.executor.Call(r.Context(), func() error {
		var err error
		chat, err = h.formats.UpdateChat(r.Context(), service.FormatUpdate{
			Enabled: req.Enabled,
			Format:  req.Format,
		})
		return err
	})
	if err != nil {
		h.handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, chatFormatToHTTP(chat))
}

func (h *Handler) UpdateTabFormat(w http.ResponseWriter, r *http.Request) {
	var req TabFormatRequest
	if err := decode(r, &req); err != nil {
		h.handleError(w, err)
		return
	}

	var tab config.TabFormat
	err := h.executor.Call(r.Context(), func() error {
		var err error
		tab, err = h.formats.UpdateTab(r.Context(), service.FormatUpdate{
			Enabled:         req.Enabled,
			Format:          req.Format,
			SpaceBeforeName: req.SpaceBeforeName,
		})
		return err
	})
	if err != nil {
		h.handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, tabFormatToHTTP(tab))
}

// FormatChat отдает строку чата и имя в списке игроков для онлайн-пользователя
func (h *Handler) FormatChat(w http.ResponseWriter, r *http.Request) {
	var req ChatLineRequest
	if err := decode(r, &req); err != nil {
		h.handleError(w, err)
		return
	}

	user, err := h.onlineUser(req.UserID)
	if err != nil {
		h.handleError(w, err)
		return
	}

	line, enabled := h.chat.FormatChat(r.Context(), user, req.Message)
	writeJSON(w, http.StatusOK, ChatLineResponse{
		Enabled:  enabled,
		Line:     line,
		ListName: h.chat.FormatListName(r.Context(), user),
	})
}
