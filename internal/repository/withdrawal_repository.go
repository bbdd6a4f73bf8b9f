package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/bank-sampah-api/internal/models"
)

// WithdrawalRepository manages legacy Rupiah savings withdrawal requests.
type WithdrawalRepository struct {
	db *sqlx.DB
}

// NewWithdrawalRepository constructs a WithdrawalRepository.
func NewWithdrawalRepository(db *sqlx.DB) *WithdrawalRepository {
	return &WithdrawalRepository{db: db}
}

// List returns withdrawal requests matching the filter.
func (r *WithdrawalRepository) List(ctx context.Context, filter models.WithdrawalFilter) ([]models.Withdrawal, int, error) {
	base := "FROM withdrawals w"
	args := []interface{}{}
	conditions := []string{"1=1"}

	if filter.StudentID != "" {
		conditions = append(conditions, fmt.Sprintf("w.student_id = $%d", len(args)+1))
		args = append(args, filter.StudentID)
	}
	if filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("w.status = $%d", len(args)+1))
		args = append(args, filter.Status)
	}

	base = fmt.Sprintf("%s WHERE %s", base, strings.Join(conditions, " AND "))

	order := strings.ToUpper(filter.SortOrder)
	if order != "ASC" && order != "DESC" {
		order = "DESC"
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 100 {
		size = 20
	}
	offset := (page - 1) * size

	query := fmt.Sprintf(`SELECT w.id, w.student_id, w.amount, w.description, w.status, w.created_at, w.updated_at
        %s ORDER BY w.created_at %s LIMIT %d OFFSET %d`, base, order, size, offset)

	var withdrawals []models.Withdrawal
	if err := r.db.SelectContext(ctx, &withdrawals, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list withdrawals: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s", base)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count withdrawals: %w", err)
	}
	return withdrawals, total, nil
}

// FindByID fetches a withdrawal request by ID.
func (r *WithdrawalRepository) FindByID(ctx context.Context, id string) (*models.Withdrawal, error) {
	const query = `SELECT id, student_id, amount, description, status, created_at, updated_at
        FROM withdrawals WHERE id = $1`
	var withdrawal models.Withdrawal
	if err := r.db.GetContext(ctx, &withdrawal, query, id); err != nil {
		return nil, err
	}
	return &withdrawal, nil
}

// Create inserts a new pending withdrawal request.
func (r *WithdrawalRepository) Create(ctx context.Context, withdrawal *models.Withdrawal) error {
	if withdrawal.ID == "" {
		withdrawal.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if withdrawal.CreatedAt.IsZero() {
		withdrawal.CreatedAt = now
	}
	withdrawal.UpdatedAt = now
	const query = `INSERT INTO withdrawals (id, student_id, amount, description, status, created_at, updated_at)
        VALUES (:id, :student_id, :amount, :description, :status, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, withdrawal); err != nil {
		return fmt.Errorf("create withdrawal: %w", err)
	}
	return nil
}

// UpdateStatus sets the lifecycle state of a request.
func (r *WithdrawalRepository) UpdateStatus(ctx context.Context, id string, status models.WithdrawalStatus) error {
	const query = `UPDATE withdrawals SET status = $2, updated_at = $3 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id, status, time.Now().UTC()); err != nil {
		return fmt.Errorf("update withdrawal status: %w", err)
	}
	return nil
}

// Delete removes a withdrawal request in any state.
func (r *WithdrawalRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM withdrawals WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("delete withdrawal: %w", err)
	}
	return nil
}

// CountByStatus returns the number of requests in a given state.
func (r *WithdrawalRepository) CountByStatus(ctx context.Context, status models.WithdrawalStatus) (int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM withdrawals WHERE status = $1", status); err != nil {
		return 0, fmt.Errorf("count withdrawals: %w", err)
	}
	return total, nil
}
