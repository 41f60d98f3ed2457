package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"cryptodash/src/models"
	"cryptodash/src/utils"

	"github.com/go-chi/chi/v5"
)

func (h *Handler) GetMessages(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID, err := h.resolveUserID(r)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	messages, err := h.Messages.List(ctx, userID, limit)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, messages, http.StatusOK)
}

func (h *Handler) MarkMessageRead(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	user, err := currentUser(r)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.HandleErrors(w, utils.BadRequest("invalid message id"))
		return
	}

	if err := h.Messages.MarkRead(ctx, id, user.ID); err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, nil, http.StatusOK)
}

// PublishMessage broadcasts an announcement to every active user. Admin only.
func (h *Handler) PublishMessage(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	admin, err := h.requireAdmin(r)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	var msg models.Message
	if err := json.NewDecoder(r.Body).Decode(&msg); err != nil {
		h.HandleErrors(w, utils.BadRequest("invalid message payload"))
		return
	}
	if msg.Title == "" || msg.Content == "" {
		h.HandleErrors(w, utils.BadRequest("title and content are required"))
		return
	}

	if err := h.Messages.Publish(ctx, &msg); err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.Admin.RecordOperation(ctx, admin.Username, "publish_message", msg.Title, r.RemoteAddr)
	h.respond(w, r, msg, http.StatusOK)
}
