package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/bank-sampah-api/internal/models"
)

// WasteTypeRepository manages the waste type catalog.
type WasteTypeRepository struct {
	db *sqlx.DB
}

// NewWasteTypeRepository constructs a WasteTypeRepository.
func NewWasteTypeRepository(db *sqlx.DB) *WasteTypeRepository {
	return &WasteTypeRepository{db: db}
}

// List returns all waste types ordered by name.
func (r *WasteTypeRepository) List(ctx context.Context) ([]models.WasteType, error) {
	const query = `SELECT id, name, trashbags_per_bottle, COALESCE(price_per_kg, 0) AS price_per_kg, created_at, updated_at
        FROM waste_types ORDER BY name`
	var types []models.WasteType
	if err := r.db.SelectContext(ctx, &types, query); err != nil {
		return nil, fmt.Errorf("list waste types: %w", err)
	}
	return types, nil
}

// FindByID fetches a waste type by ID.
func (r *WasteTypeRepository) FindByID(ctx context.Context, id string) (*models.WasteType, error) {
	const query = `SELECT id, name, trashbags_per_bottle, COALESCE(price_per_kg, 0) AS price_per_kg, created_at, updated_at
        FROM waste_types WHERE id = $1`
	var wt models.WasteType
	if err := r.db.GetContext(ctx, &wt, query, id); err != nil {
		return nil, err
	}
	return &wt, nil
}

// Create inserts a new waste type.
func (r *WasteTypeRepository) Create(ctx context.Context, wt *models.WasteType) error {
	if wt.ID == "" {
		wt.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if wt.CreatedAt.IsZero() {
		wt.CreatedAt = now
	}
	wt.UpdatedAt = now
	const query = `INSERT INTO waste_types (id, name, trashbags_per_bottle, price_per_kg, created_at, updated_at)
        VALUES (:id, :name, :trashbags_per_bottle, :price_per_kg, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, wt); err != nil {
		return fmt.Errorf("create waste type: %w", err)
	}
	return nil
}

// Update modifies an existing waste type.
func (r *WasteTypeRepository) Update(ctx context.Context, wt *models.WasteType) error {
	wt.UpdatedAt = time.Now().UTC()
	const query = `UPDATE waste_types SET name = :name, trashbags_per_bottle = :trashbags_per_bottle,
        price_per_kg = :price_per_kg, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, wt); err != nil {
		return fmt.Errorf("update waste type: %w", err)
	}
	return nil
}

// Delete removes a waste type. Deposits referencing it are kept; the ledger
// treats their type as unresolved.
func (r *WasteTypeRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM waste_types WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("delete waste type: %w", err)
	}
	return nil
}
