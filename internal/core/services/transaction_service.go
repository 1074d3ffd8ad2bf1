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

var (
	ErrTransactionNotEditable = errors.New("only draft transactions can be edited")
	ErrAccountNotPostable     = errors.New("account does not accept direct movements")
	ErrCostCenterNotUsable    = errors.New("cost center does not accept movements")
	ErrProjectNotUsable       = errors.New("project does not accept movements")
)

// transactionService drives the transaction lifecycle and movement editing.
type transactionService struct {
	BaseService
	txnRepo        portsrepo.TransactionRepositoryFacade
	accountRepo    portsrepo.AccountRepositoryFacade
	typeRepo       portsrepo.TransactionTypeRepositoryFacade
	costCenterRepo portsrepo.CostCenterRepositoryFacade
}

// TransactionServiceOption is a functional option for configuring the transaction service
type TransactionServiceOption func(*transactionService)

// WithTxnCompanyAuthorizer sets the company authorizer for the transaction service.
func WithTxnCompanyAuthorizer(authorizer portssvc.CompanyAuthorizerSvc) TransactionServiceOption {
	return func(s *transactionService) {
		s.CompanyAuthorizer = authorizer
	}
}

// NewTransactionService creates a new TransactionService.
func NewTransactionService(
	txnRepo portsrepo.TransactionRepositoryFacade,
	accountRepo portsrepo.AccountRepositoryFacade,
	typeRepo portsrepo.TransactionTypeRepositoryFacade,
	costCenterRepo portsrepo.CostCenterRepositoryFacade,
	options ...TransactionServiceOption,
) portssvc.TransactionSvcFacade {
	svc := &transactionService{
		txnRepo:        txnRepo,
		accountRepo:    accountRepo,
		typeRepo:       typeRepo,
		costCenterRepo: costCenterRepo,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.TransactionSvcFacade = (*transactionService)(nil)

// checkMovement validates a movement line against its account and optional
// analytic dimensions, all scoped to the company.
func (s *transactionService) checkMovement(ctx context.Context, companyID string, m domain.Movement) error {
	if err := m.Validate(); err != nil {
		return err
	}

	account, err := s.accountRepo.FindAccountByID(ctx, m.AccountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: account %s", apperrors.ErrNotFound, m.AccountID)
		}
		return fmt.Errorf("failed to load account %s: %w", m.AccountID, err)
	}
	if account.CompanyID != companyID {
		return fmt.Errorf("%w: account %s", domain.ErrCrossCompanyReference, account.Code)
	}
	if !account.CanReceiveMovements() {
		return fmt.Errorf("%w: %s", ErrAccountNotPostable, account.Code)
	}

	if m.CostCenterID != nil {
		cc, err := s.costCenterRepo.FindCostCenterByID(ctx, *m.CostCenterID)
		if err != nil {
			return fmt.Errorf("failed to load cost center: %w", err)
		}
		if cc.CompanyID != companyID {
			return fmt.Errorf("%w: cost center %s", domain.ErrCrossCompanyReference, cc.Code)
		}
		if !cc.AllowsMovements || !cc.IsActive {
			return fmt.Errorf("%w: %s", ErrCostCenterNotUsable, cc.Code)
		}
	}
	if m.ProjectID != nil {
		p, err := s.costCenterRepo.FindProjectByID(ctx, *m.ProjectID)
		if err != nil {
			return fmt.Errorf("failed to load project: %w", err)
		}
		if p.CompanyID != companyID {
			return fmt.Errorf("%w: project %s", domain.ErrCrossCompanyReference, p.Code)
		}
		if !p.AcceptsMovements() || !p.IsActive {
			return fmt.Errorf("%w: %s", ErrProjectNotUsable, p.Code)
		}
	}
	return nil
}

// CreateTransaction persists a new draft with its movements, assigning the
// next folio of the applicable series. Requires ASSISTANT.
func (s *transactionService) CreateTransaction(ctx context.Context, companyID string, req dto.CreateTransactionRequest, creatorUserID string) (*domain.Transaction, error) {
	if err := s.AuthorizeUser(ctx, creatorUserID, companyID, domain.RoleAssistant); err != nil {
		return nil, err
	}

	if req.TransactionTypeID != nil {
		tt, err := s.typeRepo.FindTransactionTypeByID(ctx, *req.TransactionTypeID)
		if err != nil {
			return nil, err
		}
		if tt.CompanyID != companyID {
			return nil, fmt.Errorf("%w: transaction type %s", domain.ErrCrossCompanyReference, tt.Code)
		}
		if !tt.IsActive {
			return nil, fmt.Errorf("%w: transaction type %s is inactive", apperrors.ErrValidation, tt.Code)
		}
	}

	now := time.Now()
	txnID := uuid.NewString()
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     creatorUserID,
		LastUpdatedAt: now,
		LastUpdatedBy: creatorUserID,
	}

	movements := make([]domain.Movement, len(req.Movements))
	for i, mr := range req.Movements {
		m := domain.Movement{
			MovementID:    uuid.NewString(),
			TransactionID: txnID,
			AccountID:     mr.AccountID,
			Memo:          mr.Memo,
			Debit:         mr.Debit,
			Credit:        mr.Credit,
			CostCenterID:  mr.CostCenterID,
			ProjectID:     mr.ProjectID,
			IsActive:      true,
			AuditFields:   audit,
		}
		if err := s.checkMovement(ctx, companyID, m); err != nil {
			return nil, err
		}
		movements[i] = m
	}

	folio, err := s.typeRepo.NextFolio(ctx, companyID, req.TransactionTypeID, req.Kind, creatorUserID)
	if err != nil {
		s.LogError(ctx, err, "Failed to assign folio", slog.String("company_id", companyID))
		return nil, fmt.Errorf("failed to assign folio: %w", err)
	}

	txn := domain.Transaction{
		TransactionID:     txnID,
		CompanyID:         companyID,
		Folio:             folio,
		Date:              req.Date,
		Kind:              req.Kind,
		TransactionTypeID: req.TransactionTypeID,
		Memo:              req.Memo,
		Status:            domain.Draft,
		IsActive:          true,
		Movements:         movements,
		AuditFields:       audit,
	}
	txn.RecomputeTotals()

	if err := s.txnRepo.SaveTransaction(ctx, txn, movements); err != nil {
		s.LogError(ctx, err, "Failed to save transaction", slog.String("company_id", companyID), slog.String("folio", folio))
		return nil, fmt.Errorf("failed to save transaction: %w", err)
	}

	s.LogInfo(ctx, "Transaction created", slog.String("transaction_id", txnID), slog.String("folio", folio), slog.Int("movements", len(movements)))
	return &txn, nil
}

// loadCompanyTransaction fetches a transaction with movements, scoped to the company.
func (s *transactionService) loadCompanyTransaction(ctx context.Context, companyID string, transactionID string) (*domain.Transaction, error) {
	txn, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if txn.CompanyID != companyID {
		return nil, apperrors.ErrNotFound
	}
	movements, err := s.txnRepo.FindMovementsByTransactionID(ctx, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load movements: %w", err)
	}
	txn.Movements = movements
	return txn, nil
}

// GetTransactionByID retrieves a transaction with its movements.
func (s *transactionService) GetTransactionByID(ctx context.Context, companyID string, transactionID string, requestingUserID string) (*domain.Transaction, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, companyID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	return s.loadCompanyTransaction(ctx, companyID, transactionID)
}

// ListTransactions retrieves a paginated list of transactions in a company.
func (s *transactionService) ListTransactions(ctx context.Context, companyID string, requestingUserID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, companyID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	filter, err := buildTransactionFilter(params)
	if err != nil {
		return nil, err
	}

	limit := params.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	txns, nextToken, err := s.txnRepo.ListTransactionsByCompany(ctx, companyID, *filter, limit, params.NextToken)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	resp := dto.ToListTransactionsResponse(txns, nextToken)
	return &resp, nil
}

// buildTransactionFilter parses the listing query parameters.
func buildTransactionFilter(params dto.ListTransactionsParams) (*domain.TransactionFilter, error) {
	filter := &domain.TransactionFilter{}
	if params.Status != nil {
		status := domain.TransactionStatus(*params.Status)
		switch status {
		case domain.Draft, domain.Validated, domain.Posted, domain.Cancelled:
			filter.Status = &status
		default:
			return nil, fmt.Errorf("%w: unknown status %q", apperrors.ErrValidation, *params.Status)
		}
	}
	if params.Kind != nil {
		kind := domain.TransactionKind(*params.Kind)
		switch kind {
		case domain.IncomeEntry, domain.DisbursementEntry, domain.GeneralEntry, domain.AdjustmentEntry:
			filter.Kind = &kind
		default:
			return nil, fmt.Errorf("%w: unknown kind %q", apperrors.ErrValidation, *params.Kind)
		}
	}
	if params.From != nil {
		from, err := dto.ParseReportDate(*params.From)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid from date", apperrors.ErrValidation)
		}
		filter.From = &from
	}
	if params.To != nil {
		to, err := dto.ParseReportDate(*params.To)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid to date", apperrors.ErrValidation)
		}
		filter.To = &to
	}
	return filter, nil
}

// UpdateTransaction updates draft header fields. Requires ASSISTANT.
func (s *transactionService) UpdateTransaction(ctx context.Context, companyID string, transactionID string, req dto.UpdateTransactionRequest, requestingUserID string) (*domain.Transaction, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, companyID, domain.RoleAssistant); err != nil {
		return nil, err
	}

	txn, err := s.loadCompanyTransaction(ctx, companyID, transactionID)
	if err != nil {
		return nil, err
	}
	if !txn.Editable() {
		return nil, fmt.Errorf("%w: status is %s", ErrTransactionNotEditable, txn.Status)
	}

	if req.Date != nil {
		txn.Date = *req.Date
	}
	if req.Memo != nil {
		txn.Memo = *req.Memo
	}
	txn.LastUpdatedAt = time.Now()
	txn.LastUpdatedBy = requestingUserID

	if err := s.txnRepo.UpdateTransaction(ctx, *txn); err != nil {
		s.LogError(ctx, err, "Failed to update transaction", slog.String("transaction_id", transactionID))
		return nil, fmt.Errorf("failed to update transaction: %w", err)
	}
	return txn, nil
}

// AddMovement appends a movement to a draft and recomputes totals. Requires ASSISTANT.
func (s *transactionService) AddMovement(ctx context.Context, companyID string, transactionID string, req dto.AddMovementRequest, requestingUserID string) (*domain.Transaction, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, companyID, domain.RoleAssistant); err != nil {
		return nil, err
	}

	txn, err := s.loadCompanyTransaction(ctx, companyID, transactionID)
	if err != nil {
		return nil, err
	}
	if !txn.Editable() {
		return nil, fmt.Errorf("%w: status is %s", ErrTransactionNotEditable, txn.Status)
	}

	now := time.Now()
	movement := domain.Movement{
		MovementID:    uuid.NewString(),
		TransactionID: transactionID,
		AccountID:     req.AccountID,
		Memo:          req.Memo,
		Debit:         req.Debit,
		Credit:        req.Credit,
		CostCenterID:  req.CostCenterID,
		ProjectID:     req.ProjectID,
		IsActive:      true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     requestingUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: requestingUserID,
		},
	}
	if err := s.checkMovement(ctx, companyID, movement); err != nil {
		return nil, err
	}

	txn.Movements = append(txn.Movements, movement)
	txn.RecomputeTotals()

	if err := s.txnRepo.SaveMovement(ctx, movement, txn.TotalDebit, txn.TotalCredit, requestingUserID, now); err != nil {
		s.LogError(ctx, err, "Failed to save movement", slog.String("transaction_id", transactionID))
		return nil, fmt.Errorf("failed to save movement: %w", err)
	}

	s.LogInfo(ctx, "Movement added", slog.String("transaction_id", transactionID), slog.String("movement_id", movement.MovementID))
	return txn, nil
}

// RemoveMovement soft-deletes a movement from a draft and recomputes totals.
// Requires ASSISTANT.
func (s *transactionService) RemoveMovement(ctx context.Context, companyID string, transactionID string, movementID string, requestingUserID string) (*domain.Transaction, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, companyID, domain.RoleAssistant); err != nil {
		return nil, err
	}

	txn, err := s.loadCompanyTransaction(ctx, companyID, transactionID)
	if err != nil {
		return nil, err
	}
	if !txn.Editable() {
		return nil, fmt.Errorf("%w: status is %s", ErrTransactionNotEditable, txn.Status)
	}

	found := false
	for i := range txn.Movements {
		if txn.Movements[i].MovementID == movementID && txn.Movements[i].IsActive {
			txn.Movements[i].IsActive = false
			found = true
			break
		}
	}
	if !found {
		return nil, fmt.Errorf("%w: movement %s", apperrors.ErrNotFound, movementID)
	}
	txn.RecomputeTotals()

	now := time.Now()
	if err := s.txnRepo.DeactivateMovement(ctx, movementID, transactionID, txn.TotalDebit, txn.TotalCredit, requestingUserID, now); err != nil {
		s.LogError(ctx, err, "Failed to remove movement", slog.String("transaction_id", transactionID), slog.String("movement_id", movementID))
		return nil, fmt.Errorf("failed to remove movement: %w", err)
	}

	s.LogInfo(ctx, "Movement removed", slog.String("transaction_id", transactionID), slog.String("movement_id", movementID))
	return txn, nil
}

// ValidateTransaction advances DRAFT -> VALIDATED after the balance check.
// Requires ACCOUNTANT.
func (s *transactionService) ValidateTransaction(ctx context.Context, companyID string, transactionID string, requestingUserID string) (*domain.Transaction, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, companyID, domain.RoleAccountant); err != nil {
		return nil, err
	}

	txn, err := s.loadCompanyTransaction(ctx, companyID, transactionID)
	if err != nil {
		return nil, err
	}
	if err := txn.Validate(); err != nil {
		s.LogInfo(ctx, "Transaction validation rejected",
			slog.String("transaction_id", transactionID),
			slog.String("total_debit", txn.TotalDebit.String()),
			slog.String("total_credit", txn.TotalCredit.String()),
			slog.String("reason", err.Error()))
		return nil, err
	}

	now := time.Now()
	if err := s.txnRepo.UpdateTransactionStatus(ctx, transactionID, domain.Draft, domain.Validated, nil, requestingUserID, now); err != nil {
		s.LogError(ctx, err, "Failed to persist validated status", slog.String("transaction_id", transactionID))
		return nil, fmt.Errorf("failed to persist validated status: %w", err)
	}

	s.LogInfo(ctx, "Transaction validated", slog.String("transaction_id", transactionID), slog.String("folio", txn.Folio))
	return txn, nil
}

// PostTransaction advances VALIDATED -> POSTED. Requires ACCOUNTANT.
func (s *transactionService) PostTransaction(ctx context.Context, companyID string, transactionID string, requestingUserID string) (*domain.Transaction, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, companyID, domain.RoleAccountant); err != nil {
		return nil, err
	}

	txn, err := s.loadCompanyTransaction(ctx, companyID, transactionID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if err := txn.Post(now); err != nil {
		return nil, err
	}

	if err := s.txnRepo.UpdateTransactionStatus(ctx, transactionID, domain.Validated, domain.Posted, txn.PostedAt, requestingUserID, now); err != nil {
		s.LogError(ctx, err, "Failed to persist posted status", slog.String("transaction_id", transactionID))
		return nil, fmt.Errorf("failed to persist posted status: %w", err)
	}

	s.LogInfo(ctx, "Transaction posted", slog.String("transaction_id", transactionID), slog.String("folio", txn.Folio))
	return txn, nil
}

// CancelTransaction advances POSTED -> CANCELLED. The transaction and its
// movements are retained for audit; reports simply stop counting them.
// Requires ACCOUNTANT.
func (s *transactionService) CancelTransaction(ctx context.Context, companyID string, transactionID string, requestingUserID string) (*domain.Transaction, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, companyID, domain.RoleAccountant); err != nil {
		return nil, err
	}

	txn, err := s.loadCompanyTransaction(ctx, companyID, transactionID)
	if err != nil {
		return nil, err
	}
	if err := txn.Cancel(); err != nil {
		return nil, err
	}

	now := time.Now()
	if err := s.txnRepo.UpdateTransactionStatus(ctx, transactionID, domain.Posted, domain.Cancelled, nil, requestingUserID, now); err != nil {
		s.LogError(ctx, err, "Failed to persist cancelled status", slog.String("transaction_id", transactionID))
		return nil, fmt.Errorf("failed to persist cancelled status: %w", err)
	}

	s.LogInfo(ctx, "Transaction cancelled", slog.String("transaction_id", transactionID), slog.String("folio", txn.Folio))
	return txn, nil
}
