package handlers

import (
	"encoding/json"
	"net/http"

	"taskflow-project/backend/middleware"
	"taskflow-project/backend/services"
)

type EmployeeHandler struct {
	service *services.UserService
}

func NewEmployeeHandler(service *services.UserService) *EmployeeHandler {
	return &EmployeeHandler{service: service}
}

// ListEmployees returns the directory keyed by employee id. Query parameters
// role, manager and department narrow the result.
func (h *EmployeeHandler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	filter := services.EmployeeFilter{
		Role:       r.URL.Query().Get("role"),
		Manager:    r.URL.Query().Get("manager"),
		Department: r.URL.Query().Get("department"),
	}

	directory, err := h.service.ListEmployees(r.Context(), filter)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(directory)
}

// GetProfile returns the caller's own account.
func (h *EmployeeHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		http.Error(w, "Missing session", http.StatusUnauthorized)
		return
	}

	user, err := h.service.GetUserByID(r.Context(), claims.UserID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(user)
}
