package handlers

import (
	"encoding/json"
	"net/http"

	"taskflow-project/backend/middleware"
	"taskflow-project/backend/services"
)

type NotificationHandler struct {
	service *services.NotificationService
}

func NewNotificationHandler(service *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{service: service}
}

// GetNotifications returns the caller's feed, newest first. The recipient is
// always the session email, so one user cannot read another's feed.
func (h *NotificationHandler) GetNotifications(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		http.Error(w, "Missing session", http.StatusUnauthorized)
		return
	}

	notifications, err := h.service.GetNotificationsByRecipient(claims.Email)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(notifications)
}

func (h *NotificationHandler) MarkAsRead(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		http.Error(w, "Missing session", http.StatusUnauthorized)
		return
	}

	var request struct {
		NotificationID string `json:"notificationId"`
		CreatedAt      string `json:"createdAt"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if request.NotificationID == "" || request.CreatedAt == "" {
		http.Error(w, "notificationId and createdAt are required", http.StatusBadRequest)
		return
	}

	if err := h.service.MarkNotificationAsRead(claims.Email, request.NotificationID, request.CreatedAt); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Write([]byte(`{"message": "Notification marked as read"}`))
}

func (h *NotificationHandler) DeleteNotification(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		http.Error(w, "Missing session", http.StatusUnauthorized)
		return
	}

	var request struct {
		NotificationID string `json:"notificationId"`
		CreatedAt      string `json:"createdAt"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if request.NotificationID == "" || request.CreatedAt == "" {
		http.Error(w, "notificationId and createdAt are required", http.StatusBadRequest)
		return
	}

	if err := h.service.DeleteNotification(claims.Email, request.NotificationID, request.CreatedAt); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Write([]byte(`{"message": "Notification deleted"}`))
}
