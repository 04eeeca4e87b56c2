package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"taskflow-project/backend/logging"
	"taskflow-project/backend/services"
)

type AuthHandler struct {
	service *services.UserService
}

func NewAuthHandler(service *services.UserService) *AuthHandler {
	return &AuthHandler{service: service}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var in services.RegisterInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	if err := h.service.RegisterUser(r.Context(), in); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	logging.Logger.Infof("Event ID: USER_REGISTERED, Description: Registration started for %s", in.Email)
	w.WriteHeader(http.StatusCreated)
	w.Write([]byte(`{"message": "Verification code sent"}`))
}

func (h *AuthHandler) Verify(w http.ResponseWriter, r *http.Request) {
	var request struct {
		Email string `json:"email"`
		Code  string `json:"code"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if request.Email == "" || request.Code == "" {
		http.Error(w, "Email and code are required", http.StatusBadRequest)
		return
	}

	if err := h.service.VerifyUser(r.Context(), request.Email, request.Code); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	logging.Logger.Infof("Event ID: USER_VERIFIED, Description: Account activated for %s", request.Email)
	w.Write([]byte(`{"message": "Account verified"}`))
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var request struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	user, token, err := h.service.LoginUser(r.Context(), request.Email, request.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			http.Error(w, err.Error(), http.StatusUnauthorized)
			return
		}
		http.Error(w, err.Error(), http.StatusForbidden)
		return
	}

	logging.Logger.Infof("Event ID: USER_LOGGED_IN, Description: %s logged in as %s", user.Email, user.Role)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"token": token,
		"user":  user,
	})
}

func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var request struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if request.Email == "" {
		http.Error(w, "Email is required", http.StatusBadRequest)
		return
	}

	if err := h.service.ForgotPassword(r.Context(), request.Email); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	logging.Logger.Infof("Event ID: PASSWORD_RESET, Description: Temporary password sent to %s", request.Email)
	w.Write([]byte(`{"message": "New password sent to your email"}`))
}
