package auth

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"restaurant-storefront/internal/logger"
)

// Handler handles HTTP requests for admin authentication
type Handler struct {
	service *Service
	logger  *logger.Logger
}

// NewHandler creates a new auth handler
func NewHandler(service *Service, log *logger.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  log,
	}
}

// RegisterRoutes mounts the auth endpoints on the mux
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/login", h.Login)
}

// Login handles POST /api/login
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	requestID := requestIDFrom(r)

	var body struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.writeErrorResponse(w, http.StatusBadRequest, "Invalid JSON format", requestID)
		return
	}

	err := h.service.Login(r.Context(), body.Username, body.Password, requestID)
	switch {
	case errors.Is(err, ErrInvalidCredentials):
		h.writeErrorResponse(w, http.StatusUnauthorized, "Invalid credentials", requestID)
	case err != nil:
		h.logger.Error("login_error", "Failed to verify credentials", requestID, err, nil)
		h.writeErrorResponse(w, http.StatusInternalServerError, "Failed to log in", requestID)
	default:
		h.writeJSON(w, http.StatusOK, map[string]interface{}{"success": true})
	}
}

func (h *Handler) writeJSON(w http.ResponseWriter, statusCode int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("response_encoding_failed", "Failed to encode response", "", err, nil)
	}
}

func (h *Handler) writeErrorResponse(w http.ResponseWriter, statusCode int, message, requestID string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	json.NewEncoder(w).Encode(map[string]interface{}{
		"error":      message,
		"timestamp":  time.Now().UTC().Format(time.RFC3339),
		"request_id": requestID,
	})
}

func requestIDFrom(r *http.Request) string {
	if id, ok := r.Context().Value("request_id").(string); ok {
		return id
	}
	return ""
}
