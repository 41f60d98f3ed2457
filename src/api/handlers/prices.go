package handlers

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"cryptodash/src/utils"

	"github.com/go-chi/chi/v5"
)

func (h *Handler) GetPriceRanking(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	ranking, err := h.Crypto.GetRanking(ctx, limit)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, ranking, http.StatusOK)
}

func (h *Handler) GetQuote(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	symbol := strings.ToUpper(chi.URLParam(r, "symbol"))
	if symbol == "" {
		h.HandleErrors(w, utils.BadRequest("missing symbol"))
		return
	}

	quote, err := h.Crypto.GetQuote(ctx, symbol)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, quote, http.StatusOK)
}
