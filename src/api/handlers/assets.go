package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"cryptodash/src/pricefeed"
	"cryptodash/src/schemas"
	"cryptodash/src/services"
	"cryptodash/src/utils"

	"github.com/go-chi/chi/v5"
)

// GetAssets returns the caller's holdings revalued against the latest price
// snapshot. Every recomputation also triggers the asynchronous valuation
// write-back; the response never waits on it.
func (h *Handler) GetAssets(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID, err := h.resolveUserID(r)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	holdings, err := h.Assets.GetHoldings(ctx, userID)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	result := h.Valuation.Revalue(holdings, h.latestSnapshot(ctx))
	h.Sync.SyncBatchAsync(context.WithoutCancel(ctx), result)

	h.respond(w, r, result, http.StatusOK)
}

func (h *Handler) CreateAsset(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	user, err := currentUser(r)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	var req schemas.AssetCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.HandleErrors(w, utils.BadRequest("invalid asset payload"))
		return
	}
	if req.UserID == 0 {
		req.UserID = user.ID
	}

	asset, err := h.Assets.Create(ctx, &req)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, asset, http.StatusOK)
}

func (h *Handler) UpdateAsset(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.HandleErrors(w, utils.BadRequest("invalid asset id"))
		return
	}

	var req schemas.AssetUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.HandleErrors(w, utils.BadRequest("invalid asset payload"))
		return
	}

	asset, err := h.Assets.Update(ctx, id, &req)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, asset, http.StatusOK)
}

func (h *Handler) DeleteAsset(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.HandleErrors(w, utils.BadRequest("invalid asset id"))
		return
	}
	if err := h.Assets.Delete(ctx, id); err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, nil, http.StatusOK)
}

func (h *Handler) GetAssetHistory(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID, err := h.resolveUserID(r)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	days, _ := strconv.Atoi(r.URL.Query().Get("days"))

	points, err := h.Assets.History(ctx, userID, days)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, points, http.StatusOK)
}

// ExportAssets streams the holdings workbook as an XLSX download.
func (h *Handler) ExportAssets(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	userID, err := h.resolveUserID(r)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	days, _ := strconv.Atoi(r.URL.Query().Get("days"))
	if days != 7 && days != 30 {
		days = 7
	}

	holdings, err := h.Assets.GetHoldings(ctx, userID)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	result := h.Valuation.Revalue(holdings, h.latestSnapshot(ctx))

	history, err := h.Assets.History(ctx, userID, days)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	file, err := h.Export.BuildWorkbook(result, history, days)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="`+services.ExportFilename(time.Now())+`"`)
	if err := file.Write(w); err != nil {
		utils.LoggerFromContext(ctx).WithError(err).Warn("failed to stream xlsx export")
	}
}

// resolveUserID picks the target user: admins may pass ?userId=, everyone
// else is pinned to their own id.
func (h *Handler) resolveUserID(r *http.Request) (int64, error) {
	user, err := currentUser(r)
	if err != nil {
		return 0, err
	}
	raw := r.URL.Query().Get("userId")
	if raw == "" {
		return user.ID, nil
	}
	requested, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, utils.BadRequest("invalid userId")
	}
	if requested != user.ID && user.Role != "admin" {
		return 0, utils.Forbidden("cannot access another user's data")
	}
	return requested, nil
}

// latestSnapshot assembles a symbol→price snapshot from the ranking cache.
// An empty snapshot is fine: the valuator falls back to cost basis.
func (h *Handler) latestSnapshot(ctx context.Context) pricefeed.Snapshot {
	ranking, err := h.Crypto.GetRanking(ctx, 100)
	if err != nil {
		utils.LoggerFromContext(ctx).WithError(err).Warn("price snapshot unavailable, valuing at cost basis")
		return pricefeed.Snapshot{}
	}
	snapshot := make(pricefeed.Snapshot, len(ranking))
	for _, row := range ranking {
		snapshot[row.Symbol] = row.Price
	}
	return snapshot
}
