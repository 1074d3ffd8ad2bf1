package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/zivabsuite/contable/internal/apperrors"
	"github.com/zivabsuite/contable/internal/core/domain"
	portsrepo "github.com/zivabsuite/contable/internal/core/ports/repositories"
	portssvc "github.com/zivabsuite/contable/internal/core/ports/services"
	"github.com/zivabsuite/contable/internal/dto"
)

// transactionTypeService manages a company's folio series.
type transactionTypeService struct {
	BaseService
	typeRepo portsrepo.TransactionTypeRepositoryFacade
}

// TransactionTypeServiceOption is a functional option for configuring the service
type TransactionTypeServiceOption func(*transactionTypeService)

// WithTypeCompanyAuthorizer sets the company authorizer for the folio series service.
func WithTypeCompanyAuthorizer(authorizer portssvc.CompanyAuthorizerSvc) TransactionTypeServiceOption {
	return func(s *transactionTypeService) {
		s.CompanyAuthorizer = authorizer
	}
}

// NewTransactionTypeService creates a new TransactionTypeService.
func NewTransactionTypeService(typeRepo portsrepo.TransactionTypeRepositoryFacade, options ...TransactionTypeServiceOption) portssvc.TransactionTypeSvcFacade {
	svc := &transactionTypeService{typeRepo: typeRepo}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.TransactionTypeSvcFacade = (*transactionTypeService)(nil)

// CreateTransactionType persists a new folio series. Requires ACCOUNTANT.
func (s *transactionTypeService) CreateTransactionType(ctx context.Context, companyID string, req dto.CreateTransactionTypeRequest, creatorUserID string) (*domain.TransactionType, error) {
	if err := s.AuthorizeUser(ctx, creatorUserID, companyID, domain.RoleAccountant); err != nil {
		return nil, err
	}

	if existing, err := s.typeRepo.FindTransactionTypeByCode(ctx, companyID, req.Code); err == nil && existing != nil {
		return nil, fmt.Errorf("%w: code %s already in use", apperrors.ErrDuplicate, req.Code)
	} else if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check code uniqueness: %w", err)
	}

	now := time.Now()
	tt := domain.TransactionType{
		TransactionTypeID:  uuid.NewString(),
		CompanyID:          companyID,
		Code:               req.Code,
		Name:               req.Name,
		Description:        req.Description,
		Prefix:             req.Prefix,
		Suffix:             req.Suffix,
		NumberLength:       req.NumberLength,
		LastFolio:          0,
		RequiresValidation: req.RequiresValidation,
		AllowsEditing:      req.AllowsEditing,
		IsActive:           true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.typeRepo.SaveTransactionType(ctx, tt); err != nil {
		s.LogError(ctx, err, "Failed to save folio series", slog.String("company_id", companyID), slog.String("code", req.Code))
		return nil, fmt.Errorf("failed to save folio series: %w", err)
	}
	s.LogInfo(ctx, "Folio series created", slog.String("transaction_type_id", tt.TransactionTypeID), slog.String("code", tt.Code))
	return &tt, nil
}

// GetTransactionTypeByID retrieves a folio series scoped to the company.
func (s *transactionTypeService) GetTransactionTypeByID(ctx context.Context, companyID string, transactionTypeID string, requestingUserID string) (*domain.TransactionType, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, companyID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	tt, err := s.typeRepo.FindTransactionTypeByID(ctx, transactionTypeID)
	if err != nil {
		return nil, err
	}
	if tt.CompanyID != companyID {
		return nil, apperrors.ErrNotFound
	}
	return tt, nil
}

// ListTransactionTypes retrieves a company's folio series.
func (s *transactionTypeService) ListTransactionTypes(ctx context.Context, companyID string, requestingUserID string) ([]domain.TransactionType, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, companyID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	tts, err := s.typeRepo.ListTransactionTypes(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list folio series: %w", err)
	}
	return tts, nil
}

// UpdateTransactionType updates a folio series. Prefix, suffix and number
// length are frozen once folios have been issued, so already-printed folios
// keep their meaning. Requires ACCOUNTANT.
func (s *transactionTypeService) UpdateTransactionType(ctx context.Context, companyID string, transactionTypeID string, req dto.UpdateTransactionTypeRequest, requestingUserID string) (*domain.TransactionType, error) {
	tt, err := s.GetTransactionTypeByID(ctx, companyID, transactionTypeID, requestingUserID)
	if err != nil {
		return nil, err
	}
	if err := s.AuthorizeUser(ctx, requestingUserID, companyID, domain.RoleAccountant); err != nil {
		return nil, err
	}

	if req.Name != nil {
		tt.Name = *req.Name
	}
	if req.Description != nil {
		tt.Description = *req.Description
	}
	if req.RequiresValidation != nil {
		tt.RequiresValidation = *req.RequiresValidation
	}
	if req.AllowsEditing != nil {
		tt.AllowsEditing = *req.AllowsEditing
	}
	if req.IsActive != nil {
		tt.IsActive = *req.IsActive
	}

	tt.LastUpdatedAt = time.Now()
	tt.LastUpdatedBy = requestingUserID

	if err := s.typeRepo.UpdateTransactionType(ctx, *tt); err != nil {
		s.LogError(ctx, err, "Failed to update folio series", slog.String("transaction_type_id", transactionTypeID))
		return nil, fmt.Errorf("failed to update folio series: %w", err)
	}
	return tt, nil
}
