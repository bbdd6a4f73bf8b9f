package service

import (
	"context"
	"database/sql"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/bank-sampah-api/internal/models"
	appErrors "github.com/noah-isme/bank-sampah-api/pkg/errors"
)

type depositRepository interface {
	List(ctx context.Context, filter models.DepositFilter) ([]models.DepositDetail, int, error)
	ListByStudent(ctx context.Context, studentID string) ([]models.Deposit, error)
	Create(ctx context.Context, deposit *models.Deposit) error
	Delete(ctx context.Context, id string) error
}

type wasteTypeFinder interface {
	FindByID(ctx context.Context, id string) (*models.WasteType, error)
}

type studentFinder interface {
	FindByID(ctx context.Context, id string) (*models.Student, error)
}

type savingsCreditor interface {
	Credit(ctx context.Context, studentID string, amount float64) error
}

// CreateDepositRequest represents payload for recording a deposit.
type CreateDepositRequest struct {
	StudentID   string  `json:"student_id" validate:"required"`
	WasteTypeID string  `json:"waste_type_id" validate:"required"`
	BottleCount int     `json:"bottle_count" validate:"min=0"`
	Weight      float64 `json:"weight" validate:"min=0"`
}

// DepositService records waste deposit events. The trashbag reward is frozen
// into the row at write time at the waste type's current rate, which is what
// lets the ledger honour historical rates after the catalog changes. Weighed
// waste is priced at the current price per kg and credited to the legacy
// savings balance in the same call.
type DepositService struct {
	repo       depositRepository
	wasteTypes wasteTypeFinder
	students   studentFinder
	savings    savingsCreditor
	validator  *validator.Validate
	logger     *zap.Logger
}

// NewDepositService constructs a DepositService.
func NewDepositService(repo depositRepository, wasteTypes wasteTypeFinder, students studentFinder, savings savingsCreditor, validate *validator.Validate, logger *zap.Logger) *DepositService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DepositService{repo: repo, wasteTypes: wasteTypes, students: students, savings: savings, validator: validate, logger: logger}
}

// List returns deposits plus pagination data.
func (s *DepositService) List(ctx context.Context, filter models.DepositFilter) ([]models.DepositDetail, *models.Pagination, error) {
	deposits, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list deposits")
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
	return deposits, pagination, nil
}

// ListByStudent returns a student's full deposit history.
func (s *DepositService) ListByStudent(ctx context.Context, studentID string) ([]models.Deposit, error) {
	deposits, err := s.repo.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list deposits")
	}
	return deposits, nil
}

// Create records a deposit. At least one of bottle count and weight must be
// positive. The reward and the Rupiah value are both computed here, once,
// and never revised afterwards.
func (s *DepositService) Create(ctx context.Context, req CreateDepositRequest) (*models.Deposit, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid deposit payload")
	}
	if req.BottleCount <= 0 && req.Weight <= 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "deposit needs a bottle count or a weight")
	}

	if _, err := s.students.FindByID(ctx, req.StudentID); err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}

	wasteType, err := s.wasteTypes.FindByID(ctx, req.WasteTypeID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "waste type not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load waste type")
	}

	deposit := &models.Deposit{
		StudentID:   req.StudentID,
		WasteTypeID: req.WasteTypeID,
		BottleCount: req.BottleCount,
		Weight:      req.Weight,
	}
	if req.BottleCount > 0 && wasteType.TrashbagsPerBottle > 0 {
		deposit.TrashbagReward = req.BottleCount / wasteType.TrashbagsPerBottle
	}
	if req.Weight > 0 {
		deposit.TotalValue = req.Weight * wasteType.PricePerKg
	}

	if err := s.repo.Create(ctx, deposit); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create deposit")
	}

	if deposit.TotalValue > 0 {
		if err := s.savings.Credit(ctx, deposit.StudentID, deposit.TotalValue); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to credit savings")
		}
	}

	s.logger.Info("deposit recorded",
		zap.String("deposit_id", deposit.ID),
		zap.String("student_id", deposit.StudentID),
		zap.Int("bottles", deposit.BottleCount),
		zap.Int("trashbag_reward", deposit.TrashbagReward),
		zap.Float64("value", deposit.TotalValue))
	return deposit, nil
}

// Delete removes a deposit event. The frozen reward disappears with the row,
// so the student's ledger shrinks accordingly on the next read. The savings
// balance is not reversed.
func (s *DepositService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete deposit")
	}
	return nil
}
