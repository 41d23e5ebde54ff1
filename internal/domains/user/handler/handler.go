package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"library-backend/internal/domains/user/model"
	"library-backend/internal/domains/user/service"
	"library-backend/internal/shared/auth"
	"library-backend/internal/shared/response"
)

type Handler struct {
	service service.ServiceInterface
}

// NewHandler creates a new user handler.
func NewHandler(service service.ServiceInterface) *Handler {
	return &Handler{
		service: service,
	}
}

// Register handles POST /api/v1/auth/register
func (h *Handler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}

	res, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrUserAlreadyExists):
			response.Error(c, http.StatusConflict, "User already exists", err.Error())
		default:
			h.serviceError(c, err, "Failed to register user")
		}
		return
	}

	response.Success(c, http.StatusCreated, "User registered successfully", res)
}

// Login handles POST /api/v1/auth/login
func (h *Handler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}

	res, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrInvalidCredentials):
			response.Error(c, http.StatusUnauthorized, "Invalid credentials", nil)
		case errors.Is(err, model.ErrUserInactive):
			response.Error(c, http.StatusUnauthorized, "Account is inactive", nil)
		default:
			h.serviceError(c, err, "Failed to login")
		}
		return
	}

	response.Success(c, http.StatusOK, "Login successful", res)
}

// RefreshToken handles POST /api/v1/auth/refresh
func (h *Handler) RefreshToken(c *gin.Context) {
	var req model.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}

	res, err := h.service.RefreshToken(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrInvalidCredentials), errors.Is(err, model.ErrUserInactive):
			response.Error(c, http.StatusUnauthorized, "Invalid refresh token", nil)
		default:
			h.serviceError(c, err, "Failed to refresh token")
		}
		return
	}

	response.Success(c, http.StatusOK, "Token refreshed", res)
}

// GetProfile handles GET /api/v1/users/me
func (h *Handler) GetProfile(c *gin.Context) {
	principal, ok := auth.FromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "Authentication required", nil)
		return
	}

	res, err := h.service.GetProfile(c.Request.Context(), principal.ID)
	if err != nil {
		if model.IsNotFoundError(err) {
			response.Error(c, http.StatusNotFound, "User not found", nil)
			return
		}
		h.serviceError(c, err, "Failed to get profile")
		return
	}

	response.Success(c, http.StatusOK, "Profile retrieved successfully", res)
}

// UpdateProfile handles PUT /api/v1/users/me
func (h *Handler) UpdateProfile(c *gin.Context) {
	principal, ok := auth.FromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "Authentication required", nil)
		return
	}

	var req model.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}

	res, err := h.service.UpdateProfile(c.Request.Context(), principal.ID, req)
	if err != nil {
		switch {
		case model.IsNotFoundError(err):
			response.Error(c, http.StatusNotFound, "User not found", nil)
		case errors.Is(err, model.ErrEmailInUse):
			response.Error(c, http.StatusConflict, "Email already in use", err.Error())
		case errors.Is(err, model.ErrWrongPassword):
			response.Error(c, http.StatusUnauthorized, "Current password is incorrect", nil)
		default:
			h.serviceError(c, err, "Failed to update profile")
		}
		return
	}

	response.Success(c, http.StatusOK, "Profile updated successfully", res)
}

// serviceError distinguishes validation errors (ozzo returns
// validation.Errors) from infrastructure failures.
func (h *Handler) serviceError(c *gin.Context, err error, fallback string) {
	if isValidationError(err) {
		response.Error(c, http.StatusBadRequest, "Validation failed", err.Error())
		return
	}
	response.Error(c, http.StatusInternalServerError, fallback, nil)
}
