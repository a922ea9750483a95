package catalog

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"restaurant-storefront/internal/logger"
	"restaurant-storefront/internal/models"
)

// Handler handles HTTP requests for the catalog
type Handler struct {
	service *Service
	logger  *logger.Logger
}

// NewHandler creates a new catalog handler
func NewHandler(service *Service, log *logger.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  log,
	}
}

// RegisterRoutes mounts the catalog endpoints on the mux
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	// Public
	mux.HandleFunc("GET /api/menu", h.ListMenu)
	mux.HandleFunc("GET /api/ingredients", h.ListIngredients)
	mux.HandleFunc("GET /api/categories", h.ListCategories)
	mux.HandleFunc("GET /api/tags", h.ListTags)

	// Admin
	mux.HandleFunc("POST /api/menu", h.CreateMenuItem)
	mux.HandleFunc("PUT /api/menu/{id}", h.UpdateMenuItem)
	mux.HandleFunc("DELETE /api/menu/{id}", h.DeleteMenuItem)
	mux.HandleFunc("POST /api/ingredients", h.CreateIngredient)
	mux.HandleFunc("DELETE /api/ingredients/{id}", h.DeleteIngredient)
	mux.HandleFunc("POST /api/categories", h.CreateCategory)
	mux.HandleFunc("DELETE /api/categories/{id}", h.DeleteCategory)
	mux.HandleFunc("POST /api/tags", h.CreateTag)
	mux.HandleFunc("DELETE /api/tags/{id}", h.DeleteTag)
}

// ListMenu handles GET /api/menu
func (h *Handler) ListMenu(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.ListMenuItems(r.Context())
	if err != nil {
		h.logger.Error("menu_list_failed", "Failed to list menu items", requestIDFrom(r), err, nil)
		h.writeErrorResponse(w, http.StatusInternalServerError, "Failed to fetch menu items", requestIDFrom(r))
		return
	}
	if items == nil {
		items = []models.MenuItem{}
	}
	h.writeJSON(w, http.StatusOK, items)
}

// ListIngredients handles GET /api/ingredients
func (h *Handler) ListIngredients(w http.ResponseWriter, r *http.Request) {
	ingredients, err := h.service.ListIngredients(r.Context())
	if err != nil {
		h.logger.Error("ingredients_list_failed", "Failed to list ingredients", requestIDFrom(r), err, nil)
		h.writeErrorResponse(w, http.StatusInternalServerError, "Failed to fetch ingredients", requestIDFrom(r))
		return
	}
	if ingredients == nil {
		ingredients = []models.Ingredient{}
	}
	h.writeJSON(w, http.StatusOK, ingredients)
}

// CreateMenuItem handles POST /api/menu
func (h *Handler) CreateMenuItem(w http.ResponseWriter, r *http.Request) {
	var item models.MenuItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		h.writeErrorResponse(w, http.StatusBadRequest, "Invalid JSON format", requestIDFrom(r))
		return
	}

	id, err := h.service.CreateMenuItem(r.Context(), &item)
	if err != nil {
		h.logger.Error("menu_create_failed", "Failed to create menu item", requestIDFrom(r), err, map[string]interface{}{
			"name": item.Name,
		})
		h.writeErrorResponse(w, http.StatusBadRequest, err.Error(), requestIDFrom(r))
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "id": id})
}

// UpdateMenuItem handles PUT /api/menu/{id}
func (h *Handler) UpdateMenuItem(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	var item models.MenuItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		h.writeErrorResponse(w, http.StatusBadRequest, "Invalid JSON format", requestIDFrom(r))
		return
	}

	if err := h.service.UpdateMenuItem(r.Context(), id, &item); err != nil {
		h.logger.Error("menu_update_failed", "Failed to update menu item", requestIDFrom(r), err, map[string]interface{}{
			"id": id,
		})
		h.writeErrorResponse(w, http.StatusBadRequest, err.Error(), requestIDFrom(r))
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}

// DeleteMenuItem handles DELETE /api/menu/{id}
func (h *Handler) DeleteMenuItem(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	if err := h.service.DeleteMenuItem(r.Context(), id); err != nil {
		h.logger.Error("menu_delete_failed", "Failed to delete menu item", requestIDFrom(r), err, map[string]interface{}{
			"id": id,
		})
		h.writeErrorResponse(w, http.StatusInternalServerError, "Failed to delete item", requestIDFrom(r))
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}

// CreateIngredient handles POST /api/ingredients
func (h *Handler) CreateIngredient(w http.ResponseWriter, r *http.Request) {
	var ing models.Ingredient
	if err := json.NewDecoder(r.Body).Decode(&ing); err != nil {
		h.writeErrorResponse(w, http.StatusBadRequest, "Invalid JSON format", requestIDFrom(r))
		return
	}

	id, err := h.service.CreateIngredient(r.Context(), &ing)
	if err != nil {
		h.writeErrorResponse(w, http.StatusBadRequest, err.Error(), requestIDFrom(r))
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "id": id})
}

// DeleteIngredient handles DELETE /api/ingredients/{id}
func (h *Handler) DeleteIngredient(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	if err := h.service.DeleteIngredient(r.Context(), id); err != nil {
		h.writeErrorResponse(w, http.StatusInternalServerError, "Failed to delete ingredient", requestIDFrom(r))
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}

// ListCategories handles GET /api/categories
func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.ListCategories(r.Context())
	if err != nil {
		h.writeErrorResponse(w, http.StatusInternalServerError, "Failed to fetch categories", requestIDFrom(r))
		return
	}
	if categories == nil {
		categories = []models.Category{}
	}
	h.writeJSON(w, http.StatusOK, categories)
}

// CreateCategory handles POST /api/categories
func (h *Handler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.writeErrorResponse(w, http.StatusBadRequest, "Invalid JSON format", requestIDFrom(r))
		return
	}

	id, err := h.service.CreateCategory(r.Context(), body.Name)
	if err != nil {
		h.writeErrorResponse(w, http.StatusBadRequest, err.Error(), requestIDFrom(r))
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "id": id})
}

// DeleteCategory handles DELETE /api/categories/{id}
func (h *Handler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	if err := h.service.DeleteCategory(r.Context(), id); err != nil {
		h.writeErrorResponse(w, http.StatusInternalServerError, "Failed to delete category", requestIDFrom(r))
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}

// ListTags handles GET /api/tags
func (h *Handler) ListTags(w http.ResponseWriter, r *http.Request) {
	tags, err := h.service.ListTags(r.Context())
	if err != nil {
		h.writeErrorResponse(w, http.StatusInternalServerError, "Failed to fetch tags", requestIDFrom(r))
		return
	}
	if tags == nil {
		tags = []models.Tag{}
	}
	h.writeJSON(w, http.StatusOK, tags)
}

// CreateTag handles POST /api/tags
func (h *Handler) CreateTag(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.writeErrorResponse(w, http.StatusBadRequest, "Invalid JSON format", requestIDFrom(r))
		return
	}

	id, err := h.service.CreateTag(r.Context(), body.Name)
	if err != nil {
		h.writeErrorResponse(w, http.StatusBadRequest, err.Error(), requestIDFrom(r))
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "id": id})
}

// DeleteTag handles DELETE /api/tags/{id}
func (h *Handler) DeleteTag(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	if err := h.service.DeleteTag(r.Context(), id); err != nil {
		h.writeErrorResponse(w, http.StatusInternalServerError, "Failed to delete tag", requestIDFrom(r))
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}

// pathID parses the {id} path segment, writing a 400 on failure
func (h *Handler) pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		h.writeErrorResponse(w, http.StatusBadRequest, "Invalid id", requestIDFrom(r))
		return 0, false
	}
	return id, true
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

// requestIDFrom extracts the request id the logging middleware stored on
// the context
func requestIDFrom(r *http.Request) string {
	if id, ok := r.Context().Value("request_id").(string); ok {
		return id
	}
	return ""
}
