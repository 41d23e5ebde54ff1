package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"library-backend/internal/domains/transaction/model"
	"library-backend/internal/shared/auth"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) Issue(ctx context.Context, principal auth.Principal, req *model.IssueRequest) (*model.TransactionResponse, error) {
	args := m.Called(ctx, principal, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.TransactionResponse), args.Error(1)
}

func (m *mockService) Return(ctx context.Context, principal auth.Principal, req *model.ReturnRequest) (*model.TransactionResponse, error) {
	args := m.Called(ctx, principal, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.TransactionResponse), args.Error(1)
}

func (m *mockService) PayFine(ctx context.Context, principal auth.Principal, req *model.PayFineRequest) (*model.TransactionResponse, error) {
	args := m.Called(ctx, principal, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.TransactionResponse), args.Error(1)
}

func (m *mockService) ListOverdue(ctx context.Context, principal auth.Principal) ([]model.TransactionResponse, error) {
	args := m.Called(ctx, principal)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.TransactionResponse), args.Error(1)
}

func (m *mockService) ListActive(ctx context.Context, principal auth.Principal) ([]model.TransactionResponse, error) {
	args := m.Called(ctx, principal)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.TransactionResponse), args.Error(1)
}

func (m *mockService) List(ctx context.Context, principal auth.Principal, req *model.ListTransactionsRequest) ([]model.TransactionResponse, error) {
	args := m.Called(ctx, principal, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.TransactionResponse), args.Error(1)
}

func (m *mockService) GetTransaction(ctx context.Context, principal auth.Principal, id uuid.UUID) (*model.TransactionResponse, error) {
	args := m.Called(ctx, principal, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.TransactionResponse), args.Error(1)
}

func setupRouter(svc *mockService, principal *auth.Principal) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	if principal != nil {
		router.Use(func(c *gin.Context) {
			c.Set(auth.ContextKey, *principal)
		})
	}

	h := NewHandler(svc)
	router.POST("/transactions/issue", h.Issue)
	router.POST("/transactions/return", h.Return)
	router.POST("/transactions/payfine", h.PayFine)
	router.GET("/transactions/overdue", h.ListOverdue)

	return router
}

func postJSON(router *gin.Engine, path string, payload interface{}) *httptest.ResponseRecorder {
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func TestIssueEndpoint(t *testing.T) {
	principal := auth.Principal{ID: uuid.New(), Role: auth.RoleUser}
	issueReq := model.IssueRequest{
		ItemID:       uuid.New(),
		MembershipID: uuid.New(),
		ReturnDate:   time.Now().Add(14 * 24 * time.Hour),
	}

	t.Run("created on success", func(t *testing.T) {
		svc := new(mockService)
		router := setupRouter(svc, &principal)

		svc.On("Issue", mock.Anything, principal, mock.AnythingOfType("*model.IssueRequest")).
			Return(&model.TransactionResponse{ID: uuid.New(), Status: "active"}, nil)

		rr := postJSON(router, "/transactions/issue", issueReq)

		assert.Equal(t, http.StatusCreated, rr.Code)
		svc.AssertExpectations(t)
	})

	t.Run("item unavailable maps to 400", func(t *testing.T) {
		svc := new(mockService)
		router := setupRouter(svc, &principal)

		svc.On("Issue", mock.Anything, principal, mock.Anything).
			Return(nil, model.ErrItemNotAvailable)

		rr := postJSON(router, "/transactions/issue", issueReq)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("missing item maps to 404", func(t *testing.T) {
		svc := new(mockService)
		router := setupRouter(svc, &principal)

		svc.On("Issue", mock.Anything, principal, mock.Anything).
			Return(nil, model.ErrItemNotFound)

		rr := postJSON(router, "/transactions/issue", issueReq)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("forbidden maps to 403", func(t *testing.T) {
		svc := new(mockService)
		router := setupRouter(svc, &principal)

		svc.On("Issue", mock.Anything, principal, mock.Anything).
			Return(nil, model.ErrForbidden)

		rr := postJSON(router, "/transactions/issue", issueReq)

		assert.Equal(t, http.StatusForbidden, rr.Code)
	})

	t.Run("unauthenticated maps to 401", func(t *testing.T) {
		svc := new(mockService)
		router := setupRouter(svc, nil)

		rr := postJSON(router, "/transactions/issue", issueReq)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		svc.AssertNotCalled(t, "Issue", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestPayFineEndpoint(t *testing.T) {
	principal := auth.Principal{ID: uuid.New(), Role: auth.RoleUser}
	payReq := model.PayFineRequest{TransactionID: uuid.New()}

	t.Run("already paid maps to 400", func(t *testing.T) {
		svc := new(mockService)
		router := setupRouter(svc, &principal)

		svc.On("PayFine", mock.Anything, principal, mock.Anything).
			Return(nil, model.ErrFineAlreadyPaid)

		rr := postJSON(router, "/transactions/payfine", payReq)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("payment entry returned on success", func(t *testing.T) {
		svc := new(mockService)
		router := setupRouter(svc, &principal)

		svc.On("PayFine", mock.Anything, principal, mock.Anything).
			Return(&model.TransactionResponse{ID: uuid.New(), TransactionType: "payfine"}, nil)

		rr := postJSON(router, "/transactions/payfine", payReq)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "payfine")
	})
}

func TestListOverdueEndpoint(t *testing.T) {
	principal := auth.Principal{ID: uuid.New(), Role: auth.RoleUser}

	svc := new(mockService)
	router := setupRouter(svc, &principal)

	calculated := model.TransactionResponse{ID: uuid.New(), Status: "active"}
	svc.On("ListOverdue", mock.Anything, principal).
		Return([]model.TransactionResponse{calculated}, nil)

	req := httptest.NewRequest(http.MethodGet, "/transactions/overdue", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	svc.AssertExpectations(t)
}
