package service

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/bank-sampah-api/internal/models"
	appErrors "github.com/noah-isme/bank-sampah-api/pkg/errors"
)

type withdrawalRepository interface {
	List(ctx context.Context, filter models.WithdrawalFilter) ([]models.Withdrawal, int, error)
	FindByID(ctx context.Context, id string) (*models.Withdrawal, error)
	Create(ctx context.Context, withdrawal *models.Withdrawal) error
	UpdateStatus(ctx context.Context, id string, status models.WithdrawalStatus) error
	Delete(ctx context.Context, id string) error
}

type savingsRepository interface {
	FindByStudent(ctx context.Context, studentID string) (*models.Savings, error)
	Debit(ctx context.Context, studentID string, amount float64) error
}

// CreateWithdrawalRequest represents payload for a Rupiah savings withdrawal.
type CreateWithdrawalRequest struct {
	StudentID   string  `json:"student_id" validate:"required"`
	Amount      float64 `json:"amount" validate:"required,gt=0"`
	Description string  `json:"description" validate:"required"`
}

// WithdrawalService orchestrates the legacy Rupiah withdrawal workflow.
// Unlike the trashbag ledger, the savings balance is a stored counter:
// deposits credit it immediately and approvals debit it, so a rejected or
// deleted request never touches the balance.
type WithdrawalService struct {
	repo      withdrawalRepository
	savings   savingsRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewWithdrawalService constructs a WithdrawalService.
func NewWithdrawalService(repo withdrawalRepository, savings savingsRepository, validate *validator.Validate, logger *zap.Logger) *WithdrawalService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WithdrawalService{repo: repo, savings: savings, validator: validate, logger: logger}
}

// List returns withdrawal requests plus pagination data.
func (s *WithdrawalService) List(ctx context.Context, filter models.WithdrawalFilter) ([]models.Withdrawal, *models.Pagination, error) {
	withdrawals, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list withdrawals")
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 {
		size = 20
	}
	pagination := &models.Pagination{Page: page, PageSize: size, TotalCount: total}
	return withdrawals, pagination, nil
}

// Get returns a withdrawal request by id.
func (s *WithdrawalService) Get(ctx context.Context, id string) (*models.Withdrawal, error) {
	withdrawal, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "withdrawal request not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load withdrawal request")
	}
	return withdrawal, nil
}

// Balance returns a student's current savings balance. A student with no
// savings row has simply never deposited weighed waste, not an error.
func (s *WithdrawalService) Balance(ctx context.Context, studentID string) (float64, error) {
	savings, err := s.savings.FindByStudent(ctx, studentID)
	if err != nil {
		if err == sql.ErrNoRows {
			return 0, nil
		}
		return 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load savings balance")
	}
	return savings.Balance, nil
}

// Create files a new pending withdrawal, gated against the stored balance.
func (s *WithdrawalService) Create(ctx context.Context, req CreateWithdrawalRequest) (*models.Withdrawal, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid withdrawal payload")
	}
	description := strings.TrimSpace(req.Description)
	if description == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "description is required")
	}

	balance, err := s.Balance(ctx, req.StudentID)
	if err != nil {
		return nil, err
	}
	if req.Amount > balance {
		return nil, appErrors.Clone(appErrors.ErrInsufficientBalance,
			fmt.Sprintf("requested Rp%.0f but only Rp%.0f available", req.Amount, balance))
	}

	withdrawal := &models.Withdrawal{
		StudentID:   req.StudentID,
		Amount:      req.Amount,
		Description: description,
		Status:      models.WithdrawalPending,
	}
	if err := s.repo.Create(ctx, withdrawal); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create withdrawal request")
	}
	s.logger.Info("savings withdrawal requested",
		zap.String("withdrawal_id", withdrawal.ID),
		zap.String("student_id", withdrawal.StudentID),
		zap.Float64("amount", withdrawal.Amount))
	return withdrawal, nil
}

// Transition applies an approval decision. Approval debits the stored
// balance exactly once; the no-op rule for repeated submissions is what
// keeps the debit from applying twice.
func (s *WithdrawalService) Transition(ctx context.Context, id string, req TransitionRequest) (*models.Withdrawal, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid transition payload")
	}

	withdrawal, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	noop, err := resolveTransition(withdrawal.Status, req.Status)
	if err != nil {
		return nil, err
	}
	if noop {
		return withdrawal, nil
	}

	if err := s.repo.UpdateStatus(ctx, id, req.Status); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update withdrawal status")
	}
	withdrawal.Status = req.Status

	if req.Status == models.WithdrawalApproved {
		if err := s.savings.Debit(ctx, withdrawal.StudentID, withdrawal.Amount); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to debit savings")
		}
	}

	s.logger.Info("savings withdrawal resolved",
		zap.String("withdrawal_id", id),
		zap.String("status", string(req.Status)))
	return withdrawal, nil
}

// Delete removes a request regardless of state. The stored balance is left
// untouched even for approved requests.
func (s *WithdrawalService) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete withdrawal request")
	}
	return nil
}
