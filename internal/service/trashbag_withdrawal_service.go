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

type trashbagWithdrawalRepository interface {
	List(ctx context.Context, filter models.WithdrawalFilter) ([]models.TrashbagWithdrawal, int, error)
	ListByStudent(ctx context.Context, studentID string) ([]models.TrashbagWithdrawal, error)
	FindByID(ctx context.Context, id string) (*models.TrashbagWithdrawal, error)
	Create(ctx context.Context, withdrawal *models.TrashbagWithdrawal) error
	UpdateStatus(ctx context.Context, id string, status models.WithdrawalStatus) error
	Update(ctx context.Context, withdrawal *models.TrashbagWithdrawal) error
	Delete(ctx context.Context, id string) error
}

type ledgerReader interface {
	StudentSummary(ctx context.Context, studentID string) (*models.LedgerSummary, error)
}

// CreateTrashbagWithdrawalRequest represents payload for requesting a redemption.
type CreateTrashbagWithdrawalRequest struct {
	StudentID   string `json:"student_id" validate:"required"`
	Amount      int    `json:"amount" validate:"required"`
	Description string `json:"description" validate:"required"`
}

// UpdateTrashbagWithdrawalRequest represents payload for correcting a request.
type UpdateTrashbagWithdrawalRequest struct {
	Amount      int    `json:"amount" validate:"required,min=1"`
	Description string `json:"description" validate:"required"`
}

// TransitionRequest represents payload for an approval decision.
type TransitionRequest struct {
	Status models.WithdrawalStatus `json:"status" validate:"required"`
}

// TrashbagWithdrawalService orchestrates the trashbag redemption workflow.
// Requests are gated against the student's derived availability at creation
// time only; approval itself never re-checks, so the decision an admin sees
// in the list is exactly the one that gets applied.
type TrashbagWithdrawalService struct {
	repo      trashbagWithdrawalRepository
	ledger    ledgerReader
	validator *validator.Validate
	logger    *zap.Logger
}

// NewTrashbagWithdrawalService constructs a TrashbagWithdrawalService.
func NewTrashbagWithdrawalService(repo trashbagWithdrawalRepository, ledger ledgerReader, validate *validator.Validate, logger *zap.Logger) *TrashbagWithdrawalService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TrashbagWithdrawalService{repo: repo, ledger: ledger, validator: validate, logger: logger}
}

// List returns withdrawal requests plus pagination data.
func (s *TrashbagWithdrawalService) List(ctx context.Context, filter models.WithdrawalFilter) ([]models.TrashbagWithdrawal, *models.Pagination, error) {
	withdrawals, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list trashbag withdrawals")
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

// ListByStudent returns a student's full redemption history.
func (s *TrashbagWithdrawalService) ListByStudent(ctx context.Context, studentID string) ([]models.TrashbagWithdrawal, error) {
	withdrawals, err := s.repo.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list trashbag withdrawals")
	}
	return withdrawals, nil
}

// Get returns a withdrawal request by id.
func (s *TrashbagWithdrawalService) Get(ctx context.Context, id string) (*models.TrashbagWithdrawal, error) {
	withdrawal, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "withdrawal request not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load withdrawal request")
	}
	return withdrawal, nil
}

// Create files a new pending redemption request. The amount must be a
// positive whole number of trashbags and may not exceed what the student has
// left after prior approved withdrawals. Nothing is written when a gate fails.
func (s *TrashbagWithdrawalService) Create(ctx context.Context, req CreateTrashbagWithdrawalRequest) (*models.TrashbagWithdrawal, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid withdrawal payload")
	}
	if req.Amount < 1 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "amount must be at least 1 trashbag")
	}
	description := strings.TrimSpace(req.Description)
	if description == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "description is required")
	}

	summary, err := s.ledger.StudentSummary(ctx, req.StudentID)
	if err != nil {
		return nil, err
	}
	if req.Amount > summary.AvailableTrashbags {
		return nil, appErrors.Clone(appErrors.ErrInsufficientBalance,
			fmt.Sprintf("requested %d trashbags but only %d available", req.Amount, summary.AvailableTrashbags))
	}

	withdrawal := &models.TrashbagWithdrawal{
		StudentID:   req.StudentID,
		Amount:      req.Amount,
		Description: description,
		Status:      models.WithdrawalPending,
	}
	if err := s.repo.Create(ctx, withdrawal); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create withdrawal request")
	}
	s.logger.Info("trashbag withdrawal requested",
		zap.String("withdrawal_id", withdrawal.ID),
		zap.String("student_id", withdrawal.StudentID),
		zap.Int("amount", withdrawal.Amount))
	return withdrawal, nil
}

// Transition applies an approval decision. Repeating the current status is a
// no-op, and once a request is approved or rejected it cannot move to the
// other terminal state. Approval is what makes the amount count against the
// student's availability on subsequent ledger reads.
func (s *TrashbagWithdrawalService) Transition(ctx context.Context, id string, req TransitionRequest) (*models.TrashbagWithdrawal, error) {
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
	s.logger.Info("trashbag withdrawal resolved",
		zap.String("withdrawal_id", id),
		zap.String("status", string(req.Status)))
	return withdrawal, nil
}

// Update corrects the amount and description of a request. This is an admin
// repair surface: it does not re-run the availability gate, so a correction
// can push a ledger negative if misused.
func (s *TrashbagWithdrawalService) Update(ctx context.Context, id string, req UpdateTrashbagWithdrawalRequest) (*models.TrashbagWithdrawal, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid withdrawal payload")
	}

	withdrawal, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	withdrawal.Amount = req.Amount
	withdrawal.Description = strings.TrimSpace(req.Description)
	if err := s.repo.Update(ctx, withdrawal); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update withdrawal request")
	}
	return withdrawal, nil
}

// Delete removes a request regardless of state. Deleting an approved request
// returns its amount to the student's availability on the next ledger read.
func (s *TrashbagWithdrawalService) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete withdrawal request")
	}
	return nil
}
