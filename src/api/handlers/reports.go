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

func (h *Handler) GetReports(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if _, err := currentUser(r); err != nil {
		h.HandleErrors(w, err)
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	status := r.URL.Query().Get("status")

	reports, err := h.Reports.List(ctx, status, limit)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, reports, http.StatusOK)
}

func (h *Handler) SubmitReport(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	user, err := currentUser(r)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	var report models.Report
	if err := json.NewDecoder(r.Body).Decode(&report); err != nil {
		h.HandleErrors(w, utils.BadRequest("invalid report payload"))
		return
	}
	report.UserID = user.ID

	if err := h.Reports.Submit(ctx, &report); err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, report, http.StatusOK)
}

func (h *Handler) ApproveReport(w http.ResponseWriter, r *http.Request) {
	h.reviewReport(w, r, true)
}

func (h *Handler) RejectReport(w http.ResponseWriter, r *http.Request) {
	h.reviewReport(w, r, false)
}

func (h *Handler) reviewReport(w http.ResponseWriter, r *http.Request, approve bool) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	admin, err := h.requireAdmin(r)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.HandleErrors(w, utils.BadRequest("invalid report id"))
		return
	}

	action := "approve_report"
	if approve {
		err = h.Reports.Approve(ctx, id, admin.ID)
	} else {
		action = "reject_report"
		err = h.Reports.Reject(ctx, id, admin.ID)
	}
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.Admin.RecordOperation(ctx, admin.Username, action, strconv.FormatInt(id, 10), r.RemoteAddr)
	h.respond(w, r, nil, http.StatusOK)
}
