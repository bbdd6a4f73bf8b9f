package service

import (
	"context"
	"database/sql"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/bank-sampah-api/internal/models"
	appErrors "github.com/noah-isme/bank-sampah-api/pkg/errors"
)

type wasteTypeRepository interface {
	List(ctx context.Context) ([]models.WasteType, error)
	FindByID(ctx context.Context, id string) (*models.WasteType, error)
	Create(ctx context.Context, wt *models.WasteType) error
	Update(ctx context.Context, wt *models.WasteType) error
	Delete(ctx context.Context, id string) error
}

// WasteTypeRequest represents payload for creating or updating a waste type.
type WasteTypeRequest struct {
	Name               string  `json:"name" validate:"required,max=100"`
	TrashbagsPerBottle int     `json:"trashbags_per_bottle" validate:"required,min=1"`
	PricePerKg         float64 `json:"price_per_kg" validate:"min=0"`
}

// WasteTypeService manages the waste type catalog. Rate edits here only
// affect future deposits; rewards already frozen into the deposit log keep
// the rate they were written at.
type WasteTypeService struct {
	repo      wasteTypeRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewWasteTypeService constructs a WasteTypeService.
func NewWasteTypeService(repo wasteTypeRepository, validate *validator.Validate, logger *zap.Logger) *WasteTypeService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WasteTypeService{repo: repo, validator: validate, logger: logger}
}

// List returns the full catalog.
func (s *WasteTypeService) List(ctx context.Context) ([]models.WasteType, error) {
	types, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list waste types")
	}
	return types, nil
}

// Get returns a waste type by id.
func (s *WasteTypeService) Get(ctx context.Context, id string) (*models.WasteType, error) {
	wt, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "waste type not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load waste type")
	}
	return wt, nil
}

// Create registers a new waste type.
func (s *WasteTypeService) Create(ctx context.Context, req WasteTypeRequest) (*models.WasteType, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid waste type payload")
	}
	wt := &models.WasteType{
		Name:               strings.TrimSpace(req.Name),
		TrashbagsPerBottle: req.TrashbagsPerBottle,
		PricePerKg:         req.PricePerKg,
	}
	if err := s.repo.Create(ctx, wt); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create waste type")
	}
	return wt, nil
}

// Update modifies an existing waste type.
func (s *WasteTypeService) Update(ctx context.Context, id string, req WasteTypeRequest) (*models.WasteType, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid waste type payload")
	}
	wt, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	wt.Name = strings.TrimSpace(req.Name)
	wt.TrashbagsPerBottle = req.TrashbagsPerBottle
	wt.PricePerKg = req.PricePerKg
	if err := s.repo.Update(ctx, wt); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update waste type")
	}
	return wt, nil
}

// Delete removes a waste type from the catalog. Deposits referencing it are
// kept and show up in the ledger with their type unresolved.
func (s *WasteTypeService) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete waste type")
	}
	return nil
}
