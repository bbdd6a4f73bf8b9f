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

// TrashbagWithdrawalRepository manages trashbag redemption requests.
type TrashbagWithdrawalRepository struct {
	db *sqlx.DB
}

// NewTrashbagWithdrawalRepository constructs a TrashbagWithdrawalRepository.
func NewTrashbagWithdrawalRepository(db *sqlx.DB) *TrashbagWithdrawalRepository {
	return &TrashbagWithdrawalRepository{db: db}
}

// List returns withdrawal requests matching the filter.
func (r *TrashbagWithdrawalRepository) List(ctx context.Context, filter models.WithdrawalFilter) ([]models.TrashbagWithdrawal, int, error) {
	base := "FROM trashbag_withdrawals tw"
	args := []interface{}{}
	conditions := []string{"1=1"}

	if filter.StudentID != "" {
		conditions = append(conditions, fmt.Sprintf("tw.student_id = $%d", len(args)+1))
		args = append(args, filter.StudentID)
	}
	if filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("tw.status = $%d", len(args)+1))
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

	query := fmt.Sprintf(`SELECT tw.id, tw.student_id, tw.amount, tw.description, tw.status, tw.created_at, tw.updated_at
        %s ORDER BY tw.created_at %s LIMIT %d OFFSET %d`, base, order, size, offset)

	var withdrawals []models.TrashbagWithdrawal
	if err := r.db.SelectContext(ctx, &withdrawals, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list trashbag withdrawals: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s", base)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count trashbag withdrawals: %w", err)
	}
	return withdrawals, total, nil
}

// ListByStudent returns a student's full withdrawal history.
func (r *TrashbagWithdrawalRepository) ListByStudent(ctx context.Context, studentID string) ([]models.TrashbagWithdrawal, error) {
	const query = `SELECT id, student_id, amount, description, status, created_at, updated_at
        FROM trashbag_withdrawals WHERE student_id = $1 ORDER BY created_at DESC`
	var withdrawals []models.TrashbagWithdrawal
	if err := r.db.SelectContext(ctx, &withdrawals, query, studentID); err != nil {
		return nil, fmt.Errorf("list trashbag withdrawals by student: %w", err)
	}
	return withdrawals, nil
}

// FindByID fetches a withdrawal request by ID.
func (r *TrashbagWithdrawalRepository) FindByID(ctx context.Context, id string) (*models.TrashbagWithdrawal, error) {
	const query = `SELECT id, student_id, amount, description, status, created_at, updated_at
        FROM trashbag_withdrawals WHERE id = $1`
	var withdrawal models.TrashbagWithdrawal
	if err := r.db.GetContext(ctx, &withdrawal, query, id); err != nil {
		return nil, err
	}
	return &withdrawal, nil
}

// Create inserts a new pending withdrawal request.
func (r *TrashbagWithdrawalRepository) Create(ctx context.Context, withdrawal *models.TrashbagWithdrawal) error {
	if withdrawal.ID == "" {
		withdrawal.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if withdrawal.CreatedAt.IsZero() {
		withdrawal.CreatedAt = now
	}
	withdrawal.UpdatedAt = now
	const query = `INSERT INTO trashbag_withdrawals (id, student_id, amount, description, status, created_at, updated_at)
        VALUES (:id, :student_id, :amount, :description, :status, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, withdrawal); err != nil {
		return fmt.Errorf("create trashbag withdrawal: %w", err)
	}
	return nil
}

// UpdateStatus sets the lifecycle state of a request.
func (r *TrashbagWithdrawalRepository) UpdateStatus(ctx context.Context, id string, status models.WithdrawalStatus) error {
	const query = `UPDATE trashbag_withdrawals SET status = $2, updated_at = $3 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id, status, time.Now().UTC()); err != nil {
		return fmt.Errorf("update trashbag withdrawal status: %w", err)
	}
	return nil
}

// Update corrects the amount and description of a request.
func (r *TrashbagWithdrawalRepository) Update(ctx context.Context, withdrawal *models.TrashbagWithdrawal) error {
	withdrawal.UpdatedAt = time.Now().UTC()
	const query = `UPDATE trashbag_withdrawals SET amount = :amount, description = :description, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, withdrawal); err != nil {
		return fmt.Errorf("update trashbag withdrawal: %w", err)
	}
	return nil
}

// Delete removes a withdrawal request in any state.
func (r *TrashbagWithdrawalRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM trashbag_withdrawals WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("delete trashbag withdrawal: %w", err)
	}
	return nil
}

// CountByStatus returns the number of requests in a given state.
func (r *TrashbagWithdrawalRepository) CountByStatus(ctx context.Context, status models.WithdrawalStatus) (int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM trashbag_withdrawals WHERE status = $1", status); err != nil {
		return 0, fmt.Errorf("count trashbag withdrawals: %w", err)
	}
	return total, nil
}
