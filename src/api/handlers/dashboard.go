package handlers

import (
	"context"
	"net/http"
	"time"
)

func (h *Handler) GetDashboardStats(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID, err := h.resolveUserID(r)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	stats, err := h.Dashboard.Stats(ctx, userID)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, stats, http.StatusOK)
}
