package order

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"restaurant-storefront/internal/logger"
	"restaurant-storefront/internal/models"
)

// Handler handles HTTP requests for orders
type Handler struct {
	service *Service
	logger  *logger.Logger
}

// NewHandler creates a new order handler
func NewHandler(service *Service, log *logger.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  log,
	}
}

// RegisterRoutes mounts the order endpoints on the mux
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/orders", h.CreateOrder)
	mux.HandleFunc("GET /api/orders", h.ListOrders)
	mux.HandleFunc("PUT /api/orders/{id}/status", h.UpdateStatus)
}

// CreateOrder handles POST /api/orders checkout submissions
func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	requestID := requestIDFrom(r)

	var req models.CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("validation_failed", "Failed to parse request body", requestID, err, nil)
		h.writeErrorResponse(w, http.StatusBadRequest, "Invalid JSON format", requestID)
		return
	}

	if err := req.Validate(); err != nil {
		h.logger.Error("validation_failed", "Request validation failed", requestID, err, map[string]interface{}{
			"customer_name": req.Customer.Name,
			"order_type":    req.Customer.Type,
		})
		h.writeErrorResponse(w, http.StatusBadRequest, err.Error(), requestID)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	order, err := h.service.Checkout(ctx, &req, requestID)
	if err != nil {
		h.logger.Error("order_creation_failed", "Failed to create order", requestID, err, map[string]interface{}{
			"customer_name": req.Customer.Name,
		})
		h.writeErrorResponse(w, http.StatusInternalServerError, "Failed to create order", requestID)
		return
	}

	h.writeJSON(w, http.StatusOK, models.CreateOrderResponse{
		Success: true,
		OrderID: order.ID,
		Total:   order.TotalPrice,
	})
}

// ListOrders handles GET /api/orders for the admin dashboard
func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	requestID := requestIDFrom(r)

	orders, err := h.service.ListOrders(r.Context())
	if err != nil {
		h.logger.Error("order_list_failed", "Failed to list orders", requestID, err, nil)
		h.writeErrorResponse(w, http.StatusInternalServerError, "Failed to fetch orders", requestID)
		return
	}
	if orders == nil {
		orders = []models.Order{}
	}

	h.writeJSON(w, http.StatusOK, orders)
}

// UpdateStatus handles PUT /api/orders/{id}/status
func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	requestID := requestIDFrom(r)

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		h.writeErrorResponse(w, http.StatusBadRequest, "Invalid order id", requestID)
		return
	}

	var body struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.writeErrorResponse(w, http.StatusBadRequest, "Invalid JSON format", requestID)
		return
	}

	err = h.service.UpdateStatus(r.Context(), id, body.Status, requestID)
	switch {
	case errors.Is(err, ErrInvalidStatus):
		h.writeErrorResponse(w, http.StatusBadRequest, "Status must be one of: pending, completed", requestID)
	case errors.Is(err, ErrOrderNotFound):
		h.writeErrorResponse(w, http.StatusNotFound, "Order not found", requestID)
	case err != nil:
		h.logger.Error("status_update_failed", "Failed to update order status", requestID, err, map[string]interface{}{
			"order_id": id,
		})
		h.writeErrorResponse(w, http.StatusInternalServerError, "Failed to update order", requestID)
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
