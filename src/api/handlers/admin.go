package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"cryptodash/src/schemas"
	"cryptodash/src/utils"

	"github.com/go-chi/chi/v5"
)

func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if _, err := h.requireAdmin(r); err != nil {
		h.HandleErrors(w, err)
		return
	}

	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	pageSize, _ := strconv.Atoi(q.Get("pageSize"))

	users, err := h.Admin.ListUsers(ctx, q.Get("search"), q.Get("role"), q.Get("status"), page, pageSize)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, users, http.StatusOK)
}

func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	admin, err := h.requireAdmin(r)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	var req schemas.UserCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.HandleErrors(w, utils.BadRequest("invalid user payload"))
		return
	}

	user, err := h.Admin.CreateUser(ctx, &req, admin.Username)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, user, http.StatusOK)
}

func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	admin, err := h.requireAdmin(r)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.HandleErrors(w, utils.BadRequest("invalid user id"))
		return
	}

	var req schemas.UserUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.HandleErrors(w, utils.BadRequest("invalid user payload"))
		return
	}

	if err := h.Admin.UpdateUser(ctx, id, &req, admin.Username); err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, nil, http.StatusOK)
}

func (h *Handler) ResetUserPassword(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	admin, err := h.requireAdmin(r)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.HandleErrors(w, utils.BadRequest("invalid user id"))
		return
	}

	var req schemas.ResetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.HandleErrors(w, utils.BadRequest("invalid password payload"))
		return
	}

	if err := h.Admin.ResetPassword(ctx, id, req.NewPassword, admin.Username); err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, nil, http.StatusOK)
}

func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	admin, err := h.requireAdmin(r)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.HandleErrors(w, utils.BadRequest("invalid user id"))
		return
	}
	if id == admin.ID {
		h.HandleErrors(w, utils.BadRequest("cannot delete your own account"))
		return
	}

	if err := h.Admin.DeleteUser(ctx, id, admin.Username); err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, nil, http.StatusOK)
}

func (h *Handler) ListOperationLogs(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if _, err := h.requireAdmin(r); err != nil {
		h.HandleErrors(w, err)
		return
	}

	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	pageSize, _ := strconv.Atoi(q.Get("pageSize"))

	logs, err := h.Admin.ListLogs(ctx, q.Get("operator"), q.Get("action"), page, pageSize)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, logs, http.StatusOK)
}

func (h *Handler) GetSettings(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if _, err := h.requireAdmin(r); err != nil {
		h.HandleErrors(w, err)
		return
	}

	doc, err := h.Admin.GetSettings(ctx)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, doc, http.StatusOK)
}

func (h *Handler) PutSettings(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	admin, err := h.requireAdmin(r)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	var doc schemas.SettingsDocument
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		h.HandleErrors(w, utils.BadRequest("invalid settings payload"))
		return
	}

	if err := h.Admin.PutSettings(ctx, &doc, admin.Username); err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, doc, http.StatusOK)
}
