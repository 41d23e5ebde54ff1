package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"library-backend/internal/domains/membership/model"
	"library-backend/internal/domains/membership/service"
	"library-backend/internal/shared/auth"
	"library-backend/internal/shared/response"
)

type Handler struct {
	service service.ServiceInterface
}

// NewHandler creates a new membership handler.
func NewHandler(service service.ServiceInterface) *Handler {
	return &Handler{
		service: service,
	}
}

// CreateMembership handles POST /api/v1/memberships (admin)
func (h *Handler) CreateMembership(c *gin.Context) {
	var req model.CreateMembershipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}

	res, err := h.service.CreateMembership(c.Request.Context(), &req)
	if err != nil {
		h.mapError(c, err, "Failed to create membership")
		return
	}

	response.Success(c, http.StatusCreated, "Membership created successfully", res)
}

// GetMembership handles GET /api/v1/memberships/:id
func (h *Handler) GetMembership(c *gin.Context) {
	principal, ok := auth.FromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "Authentication required", nil)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusNotFound, "Membership not found", nil)
		return
	}

	res, err := h.service.GetMembership(c.Request.Context(), principal, id)
	if err != nil {
		h.mapError(c, err, "Failed to get membership")
		return
	}

	response.Success(c, http.StatusOK, "Membership retrieved successfully", res)
}

// ListMemberships handles GET /api/v1/memberships
func (h *Handler) ListMemberships(c *gin.Context) {
	principal, ok := auth.FromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "Authentication required", nil)
		return
	}

	res, err := h.service.ListMemberships(c.Request.Context(), principal)
	if err != nil {
		h.mapError(c, err, "Failed to list memberships")
		return
	}

	response.Success(c, http.StatusOK, "Memberships retrieved successfully", res)
}

// UpdateMembership handles PUT /api/v1/memberships/:id (admin)
func (h *Handler) UpdateMembership(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusNotFound, "Membership not found", nil)
		return
	}

	var req model.UpdateMembershipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}

	res, err := h.service.UpdateMembership(c.Request.Context(), id, &req)
	if err != nil {
		h.mapError(c, err, "Failed to update membership")
		return
	}

	response.Success(c, http.StatusOK, "Membership updated successfully", res)
}

// DeleteMembership handles DELETE /api/v1/memberships/:id (admin)
func (h *Handler) DeleteMembership(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusNotFound, "Membership not found", nil)
		return
	}

	if err := h.service.DeleteMembership(c.Request.Context(), id); err != nil {
		h.mapError(c, err, "Failed to delete membership")
		return
	}

	response.Success(c, http.StatusOK, "Membership removed", nil)
}

func (h *Handler) mapError(c *gin.Context, err error, fallback string) {
	var verrs validation.Errors

	switch {
	case errors.Is(err, model.ErrUserNotFound):
		response.Error(c, http.StatusNotFound, "User not found", nil)
	case model.IsNotFoundError(err):
		response.Error(c, http.StatusNotFound, "Membership not found", nil)
	case errors.Is(err, model.ErrForbidden):
		response.Error(c, http.StatusForbidden, "Access denied", nil)
	case model.IsValidationError(err), errors.As(err, &verrs):
		response.Error(c, http.StatusBadRequest, "Validation failed", err.Error())
	case model.IsConflictError(err):
		response.Error(c, http.StatusConflict, "Conflict", err.Error())
	default:
		response.Error(c, http.StatusInternalServerError, fallback, nil)
	}
}
