package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"library-backend/internal/domains/catalog/model"
	"library-backend/internal/domains/catalog/service"
	"library-backend/internal/shared/response"
)

type Handler struct {
	service service.ServiceInterface
}

// NewHandler creates a new catalog handler.
func NewHandler(service service.ServiceInterface) *Handler {
	return &Handler{
		service: service,
	}
}

// CreateItem handles POST /api/v1/items (admin)
func (h *Handler) CreateItem(c *gin.Context) {
	var req model.CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}

	res, err := h.service.CreateItem(c.Request.Context(), req)
	if err != nil {
		h.mapError(c, err, "Failed to create item")
		return
	}

	response.Success(c, http.StatusCreated, "Item created successfully", res)
}

// GetItemByID handles GET /api/v1/items/:id
func (h *Handler) GetItemByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusNotFound, "Item not found", nil)
		return
	}

	res, err := h.service.GetItemByID(c.Request.Context(), id)
	if err != nil {
		h.mapError(c, err, "Failed to get item")
		return
	}

	response.Success(c, http.StatusOK, "Item retrieved successfully", res)
}

// CheckBySerialNumber handles GET /api/v1/items/check/:serialNumber
func (h *Handler) CheckBySerialNumber(c *gin.Context) {
	res, err := h.service.CheckBySerialNumber(c.Request.Context(), c.Param("serialNumber"))
	if err != nil {
		h.mapError(c, err, "Failed to check item")
		return
	}

	response.Success(c, http.StatusOK, "Item availability checked", res)
}

// ListItems handles GET /api/v1/items with search filters
func (h *Handler) ListItems(c *gin.Context) {
	var req model.ListItemsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid query parameters", err.Error())
		return
	}

	res, err := h.service.ListItems(c.Request.Context(), req)
	if err != nil {
		h.mapError(c, err, "Failed to list items")
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, "Items retrieved successfully", res.Items, &response.Meta{
		Page:  res.Page,
		Limit: res.Limit,
		Total: res.TotalItems,
	})
}

// UpdateItem handles PUT /api/v1/items/:id (admin)
func (h *Handler) UpdateItem(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusNotFound, "Item not found", nil)
		return
	}

	var req model.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}

	res, err := h.service.UpdateItem(c.Request.Context(), id, req)
	if err != nil {
		h.mapError(c, err, "Failed to update item")
		return
	}

	response.Success(c, http.StatusOK, "Item updated successfully", res)
}

// DeleteItem handles DELETE /api/v1/items/:id (admin)
func (h *Handler) DeleteItem(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusNotFound, "Item not found", nil)
		return
	}

	if err := h.service.DeleteItem(c.Request.Context(), id); err != nil {
		h.mapError(c, err, "Failed to delete item")
		return
	}

	response.Success(c, http.StatusOK, "Item removed", nil)
}

func (h *Handler) mapError(c *gin.Context, err error, fallback string) {
	var verrs validation.Errors

	switch {
	case model.IsNotFoundError(err):
		response.Error(c, http.StatusNotFound, "Item not found", nil)
	case model.IsValidationError(err), errors.As(err, &verrs):
		response.Error(c, http.StatusBadRequest, "Validation failed", err.Error())
	case model.IsConflictError(err):
		response.Error(c, http.StatusConflict, "Conflict", err.Error())
	default:
		response.Error(c, http.StatusInternalServerError, fallback, nil)
	}
}
