package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"library-backend/internal/domains/catalog/model"
	"library-backend/internal/domains/catalog/repository"
)

// CatalogService implements ServiceInterface.
type CatalogService struct {
	repo repository.RepositoryInterface
}

// NewService creates a new catalog service.
func NewService(repo repository.RepositoryInterface) ServiceInterface {
	return &CatalogService{
		repo: repo,
	}
}

// CreateItem implements ServiceInterface.CreateItem.
func (s *CatalogService) CreateItem(ctx context.Context, req model.CreateItemRequest) (*model.ItemResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	status := model.StatusAvailable
	if req.Status != "" {
		status = model.ItemStatus(req.Status)
		if !status.IsValid() {
			return nil, model.ErrInvalidStatus
		}
		if status == model.StatusIssued {
			return nil, model.ErrStatusReserved
		}
	}

	kind := model.KindBook
	if req.ItemKind != "" {
		kind = model.ItemKind(req.ItemKind)
		if !kind.IsValid() {
			return nil, model.ErrInvalidKind
		}
	}

	now := time.Now()
	acquisitionDate := now
	if req.AcquisitionDate != nil {
		acquisitionDate = *req.AcquisitionDate
	}

	item := &model.Item{
		ID:              uuid.New(),
		SerialNumber:    req.SerialNumber,
		Title:           req.Title,
		Creator:         req.Creator,
		Category:        req.Category,
		ItemKind:        kind,
		Cost:            req.Cost,
		AcquisitionDate: acquisitionDate,
		Description:     req.Description,
		Status:          status,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.repo.Create(ctx, item); err != nil {
		return nil, err
	}

	res := item.ToResponse()
	return &res, nil
}

// GetItemByID implements ServiceInterface.GetItemByID.
func (s *CatalogService) GetItemByID(ctx context.Context, id uuid.UUID) (*model.ItemResponse, error) {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	res := item.ToResponse()
	return &res, nil
}

// CheckBySerialNumber implements ServiceInterface.CheckBySerialNumber.
func (s *CatalogService) CheckBySerialNumber(ctx context.Context, serialNumber string) (*model.CheckSerialResponse, error) {
	item, err := s.repo.GetBySerialNumber(ctx, serialNumber)
	if err != nil {
		return nil, err
	}

	return &model.CheckSerialResponse{
		Item:        item.ToResponse(),
		IsAvailable: item.IsAvailable(),
	}, nil
}

// ListItems implements ServiceInterface.ListItems.
func (s *CatalogService) ListItems(ctx context.Context, req model.ListItemsRequest) (*model.ListItemsResponse, error) {
	req.Normalize()

	items, total, err := s.repo.List(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}

	totalPages := (total + req.Limit - 1) / req.Limit
	if totalPages == 0 {
		totalPages = 1
	}

	return &model.ListItemsResponse{
		Items:      model.ToResponseList(items),
		TotalItems: total,
		TotalPages: totalPages,
		Page:       req.Page,
		Limit:      req.Limit,
	}, nil
}

// UpdateItem implements ServiceInterface.UpdateItem.
func (s *CatalogService) UpdateItem(ctx context.Context, id uuid.UUID, req model.UpdateItemRequest) (*model.ItemResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Status != nil {
		newStatus := model.ItemStatus(*req.Status)
		if !newStatus.IsValid() {
			return nil, model.ErrInvalidStatus
		}
		// Transitions to and from issued belong to the lending lifecycle.
		if newStatus == model.StatusIssued && item.Status != model.StatusIssued {
			return nil, model.ErrStatusReserved
		}
		if item.Status == model.StatusIssued && newStatus != model.StatusIssued {
			return nil, model.ErrItemOnLoan
		}
		item.Status = newStatus
	}

	if req.SerialNumber != nil {
		item.SerialNumber = *req.SerialNumber
	}
	if req.Title != nil {
		item.Title = *req.Title
	}
	if req.Creator != nil {
		item.Creator = *req.Creator
	}
	if req.Category != nil {
		item.Category = *req.Category
	}
	if req.ItemKind != nil {
		kind := model.ItemKind(*req.ItemKind)
		if !kind.IsValid() {
			return nil, model.ErrInvalidKind
		}
		item.ItemKind = kind
	}
	if req.Cost != nil {
		item.Cost = *req.Cost
	}
	if req.AcquisitionDate != nil {
		item.AcquisitionDate = *req.AcquisitionDate
	}
	if req.Description != nil {
		item.Description = req.Description
	}

	item.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, item); err != nil {
		return nil, err
	}

	res := item.ToResponse()
	return &res, nil
}

// DeleteItem implements ServiceInterface.DeleteItem.
func (s *CatalogService) DeleteItem(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}

	active, err := s.repo.CountActiveTransactions(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to check active loans: %w", err)
	}
	if active > 0 {
		return model.ErrItemOnLoan
	}

	return s.repo.Delete(ctx, id)
}
