package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/peoplehq/hrms-backend-go/internal/domain/user"
	"github.com/peoplehq/hrms-backend-go/internal/handler/http/middleware"
	"github.com/peoplehq/hrms-backend-go/internal/handler/http/response"
	authsvc "github.com/peoplehq/hrms-backend-go/internal/service/auth"
)

type AuthHandler interface {
	Register(w http.ResponseWriter, r *http.Request)
	Login(w http.ResponseWriter, r *http.Request)
	RefreshToken(w http.ResponseWriter, r *http.Request)
	Logout(w http.ResponseWriter, r *http.Request)
	Me(w http.ResponseWriter, r *http.Request)
	UpdateProfile(w http.ResponseWriter, r *http.Request)
	ListEmployees(w http.ResponseWriter, r *http.Request)
	Deactivate(w http.ResponseWriter, r *http.Request)
}

type AuthHandlerImpl struct {
	authService *authsvc.Service
}

func NewAuthHandler(authService *authsvc.Service) AuthHandler {
	return &AuthHandlerImpl{authService: authService}
}

func (a *AuthHandlerImpl) Register(w http.ResponseWriter, r *http.Request) {
	var req user.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Register decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	created, err := a.authService.Register(r.Context(), req, middleware.UserID(r.Context()))
	if err != nil {
		slog.Error("Register service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Employee registered", user.ToResponse(created))
}

func (a *AuthHandlerImpl) Login(w http.ResponseWriter, r *http.Request) {
	var req user.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Login decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	u, pair, err := a.authService.Login(r.Context(), req)
	if err != nil {
		slog.Warn("Login failed", "email", req.Email, "error", err)
		response.HandleError(w, err)
		return
	}

	http.SetCookie(w, a.authService.RefreshCookie(pair))
	response.Success(w, map[string]any{
		"user":   user.ToResponse(u),
		"tokens": pair,
	})
}

func (a *AuthHandlerImpl) RefreshToken(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie("refresh_token")
	if err != nil {
		response.Unauthorized(w, "Missing refresh token")
		return
	}

	u, pair, err := a.authService.Refresh(r.Context(), cookie.Value)
	if err != nil {
		slog.Warn("RefreshToken failed", "error", err)
		response.HandleError(w, err)
		return
	}

	http.SetCookie(w, a.authService.RefreshCookie(pair))
	response.Success(w, map[string]any{
		"user":   user.ToResponse(u),
		"tokens": pair,
	})
}

func (a *AuthHandlerImpl) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie("refresh_token"); err == nil {
		a.authService.Logout(cookie.Value)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "refresh_token",
		Value:    "",
		Path:     "/api/v1/auth",
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
	})
	response.SuccessWithMessage(w, "Logged out", nil)
}

func (a *AuthHandlerImpl) Me(w http.ResponseWriter, r *http.Request) {
	u, err := a.authService.GetByID(r.Context(), middleware.UserID(r.Context()))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, user.ToResponse(u))
}

func (a *AuthHandlerImpl) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req user.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	// Employees may only edit themselves, and never their own role or
	// salary; HR can edit anyone.
	callerID := middleware.UserID(r.Context())
	if !middleware.CallerRole(r.Context()).CanApprove() {
		req.ID = callerID
		req.Role = nil
		req.BaseSalary = nil
	} else if req.ID == "" {
		req.ID = callerID
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	updated, err := a.authService.UpdateProfile(r.Context(), req, callerID)
	if err != nil {
		slog.Error("UpdateProfile service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Profile updated", user.ToResponse(updated))
}

func (a *AuthHandlerImpl) ListEmployees(w http.ResponseWriter, r *http.Request) {
	users, err := a.authService.ListActive(r.Context())
	if err != nil {
		slog.Error("ListEmployees service error", "error", err)
		response.HandleError(w, err)
		return
	}

	out := make([]user.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, user.ToResponse(u))
	}
	response.Success(w, out)
}

func (a *AuthHandlerImpl) Deactivate(w http.ResponseWriter, r *http.Request) {
	id := pathParam(r, "id")
	if err := a.authService.SetActive(r.Context(), id, false); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Employee deactivated", nil)
}
