package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"library-backend/internal/domains/transaction/model"
	"library-backend/internal/domains/transaction/service"
	"library-backend/internal/shared/auth"
	"library-backend/internal/shared/response"
)

type Handler struct {
	service service.ServiceInterface
}

// NewHandler creates a new transaction handler.
func NewHandler(service service.ServiceInterface) *Handler {
	return &Handler{
		service: service,
	}
}

// Issue handles POST /api/v1/transactions/issue
func (h *Handler) Issue(c *gin.Context) {
	principal, ok := auth.FromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "Authentication required", nil)
		return
	}

	var req model.IssueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}

	res, err := h.service.Issue(c.Request.Context(), principal, &req)
	if err != nil {
		h.mapError(c, err, "Failed to issue item")
		return
	}

	response.Success(c, http.StatusCreated, "Item issued successfully", res)
}

// Return handles POST /api/v1/transactions/return
func (h *Handler) Return(c *gin.Context) {
	principal, ok := auth.FromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "Authentication required", nil)
		return
	}

	var req model.ReturnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}

	res, err := h.service.Return(c.Request.Context(), principal, &req)
	if err != nil {
		h.mapError(c, err, "Failed to return item")
		return
	}

	response.Success(c, http.StatusOK, "Item returned successfully", res)
}

// PayFine handles POST /api/v1/transactions/payfine
func (h *Handler) PayFine(c *gin.Context) {
	principal, ok := auth.FromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "Authentication required", nil)
		return
	}

	var req model.PayFineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}

	res, err := h.service.PayFine(c.Request.Context(), principal, &req)
	if err != nil {
		h.mapError(c, err, "Failed to pay fine")
		return
	}

	response.Success(c, http.StatusOK, "Fine paid successfully", res)
}

// ListOverdue handles GET /api/v1/transactions/overdue
func (h *Handler) ListOverdue(c *gin.Context) {
	principal, ok := auth.FromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "Authentication required", nil)
		return
	}

	res, err := h.service.ListOverdue(c.Request.Context(), principal)
	if err != nil {
		h.mapError(c, err, "Failed to list overdue transactions")
		return
	}

	response.Success(c, http.StatusOK, "Overdue transactions retrieved", res)
}

// ListActive handles GET /api/v1/transactions/active
func (h *Handler) ListActive(c *gin.Context) {
	principal, ok := auth.FromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "Authentication required", nil)
		return
	}

	res, err := h.service.ListActive(c.Request.Context(), principal)
	if err != nil {
		h.mapError(c, err, "Failed to list active transactions")
		return
	}

	response.Success(c, http.StatusOK, "Active transactions retrieved", res)
}

// List handles GET /api/v1/transactions
func (h *Handler) List(c *gin.Context) {
	principal, ok := auth.FromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "Authentication required", nil)
		return
	}

	var req model.ListTransactionsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid query parameters", err.Error())
		return
	}

	res, err := h.service.List(c.Request.Context(), principal, &req)
	if err != nil {
		h.mapError(c, err, "Failed to list transactions")
		return
	}

	response.Success(c, http.StatusOK, "Transactions retrieved", res)
}

// GetByID handles GET /api/v1/transactions/:id
func (h *Handler) GetByID(c *gin.Context) {
	principal, ok := auth.FromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "Authentication required", nil)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusNotFound, "Transaction not found", nil)
		return
	}

	res, err := h.service.GetTransaction(c.Request.Context(), principal, id)
	if err != nil {
		h.mapError(c, err, "Failed to get transaction")
		return
	}

	response.Success(c, http.StatusOK, "Transaction retrieved", res)
}

func (h *Handler) mapError(c *gin.Context, err error, fallback string) {
	var verrs validation.Errors

	switch {
	case errors.Is(err, model.ErrItemNotFound):
		response.Error(c, http.StatusNotFound, "Item not found", nil)
	case errors.Is(err, model.ErrMembershipNotFound):
		response.Error(c, http.StatusNotFound, "Membership not found", nil)
	case model.IsNotFoundError(err):
		response.Error(c, http.StatusNotFound, "Transaction not found", nil)
	case errors.Is(err, model.ErrForbidden):
		response.Error(c, http.StatusForbidden, "Access denied", nil)
	case model.IsInvalidStateError(err):
		response.Error(c, http.StatusBadRequest, err.Error(), nil)
	case errors.As(err, &verrs):
		response.Error(c, http.StatusBadRequest, "Validation failed", err.Error())
	default:
		response.Error(c, http.StatusInternalServerError, fallback, nil)
	}
}
