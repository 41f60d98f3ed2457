package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"cryptodash/src/schemas"
	"cryptodash/src/services"
	"cryptodash/src/utils"

	"github.com/go-chi/jwtauth"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	Auth      services.AuthServiceI
	Assets    services.AssetServiceI
	Valuation *services.ValuationService
	Sync      *services.SyncService
	Crypto    services.CryptoServiceI
	Dashboard services.DashboardServiceI
	Messages  services.MessageServiceI
	Reports   services.ReportServiceI
	Admin     services.AdminServiceI
	Export    *services.ExportService
	Logger    *logrus.Logger
}

// respond wraps data in the uniform {code, message, data} envelope.
func (h *Handler) respond(w http.ResponseWriter, _ *http.Request, data interface{}, status int) {
	res, err := json.Marshal(schemas.Success(data))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	_, _ = w.Write(res)
}

// HandleErrors writes an error envelope. The envelope code mirrors the HTTP
// status so clients that only inspect the body behave the same.
func (h *Handler) HandleErrors(w http.ResponseWriter, err error) {
	var httpErr *utils.HTTPError
	status := http.StatusInternalServerError
	message := "Internal Server Error"

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		status = http.StatusGatewayTimeout
		message = "Request timed out"
	case errors.As(err, &httpErr):
		status = httpErr.Code
		message = httpErr.Message
	case err != nil:
		message = err.Error()
	}

	res, marshalErr := json.Marshal(schemas.Error(status, message))
	if marshalErr != nil {
		http.Error(w, message, status)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(res)
}

// currentUser extracts the caller's identity from the verified JWT claims.
func currentUser(r *http.Request) (schemas.UserInfo, error) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return schemas.UserInfo{}, utils.Unauthorized("missing or invalid token")
	}

	info := schemas.UserInfo{}
	// user_id decodes as float64 from a parsed token but stays integral when
	// the token was built in-process.
	switch id := claims["user_id"].(type) {
	case float64:
		info.ID = int64(id)
	case int64:
		info.ID = id
	case int:
		info.ID = int64(id)
	}
	if username, ok := claims["username"].(string); ok {
		info.Username = username
	}
	if role, ok := claims["role"].(string); ok {
		info.Role = role
	}
	if info.ID == 0 {
		return schemas.UserInfo{}, utils.Unauthorized("missing or invalid token")
	}
	return info, nil
}

func (h *Handler) requireAdmin(r *http.Request) (schemas.UserInfo, error) {
	user, err := currentUser(r)
	if err != nil {
		return schemas.UserInfo{}, err
	}
	if user.Role != "admin" {
		return schemas.UserInfo{}, utils.Forbidden("admin role required")
	}
	return user, nil
}
