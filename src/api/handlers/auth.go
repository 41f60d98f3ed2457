package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"cryptodash/src/schemas"
	"cryptodash/src/utils"
)

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var creds schemas.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		h.HandleErrors(w, utils.BadRequest("invalid login payload"))
		return
	}

	response, err := h.Auth.Login(ctx, creds.Username, creds.Password)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, response, http.StatusOK)
}

// Logout is stateless on the server; the client discards its token. The
// call exists so the action still lands in the audit trail.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.Admin.RecordOperation(r.Context(), user.Username, "logout", "system", r.RemoteAddr)
	h.respond(w, r, nil, http.StatusOK)
}
