package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/bank-sampah-api/internal/models"
)

// SavingsRepository manages the legacy per-student Rupiah balance.
type SavingsRepository struct {
	db *sqlx.DB
}

// NewSavingsRepository constructs a SavingsRepository.
func NewSavingsRepository(db *sqlx.DB) *SavingsRepository {
	return &SavingsRepository{db: db}
}

// FindByStudent fetches a student's savings row.
func (r *SavingsRepository) FindByStudent(ctx context.Context, studentID string) (*models.Savings, error) {
	const query = `SELECT id, student_id, COALESCE(balance, 0) AS balance, updated_at FROM savings WHERE student_id = $1`
	var savings models.Savings
	if err := r.db.GetContext(ctx, &savings, query, studentID); err != nil {
		return nil, err
	}
	return &savings, nil
}

// Credit adds a deposit value to the student's balance, creating the row on
// first credit.
func (r *SavingsRepository) Credit(ctx context.Context, studentID string, amount float64) error {
	const query = `INSERT INTO savings (id, student_id, balance, updated_at)
        VALUES ($1, $2, $3, $4)
        ON CONFLICT (student_id) DO UPDATE SET balance = savings.balance + EXCLUDED.balance, updated_at = EXCLUDED.updated_at`
	if _, err := r.db.ExecContext(ctx, query, uuid.NewString(), studentID, amount, time.Now().UTC()); err != nil {
		return fmt.Errorf("credit savings: %w", err)
	}
	return nil
}

// Debit subtracts an approved withdrawal amount from the balance.
func (r *SavingsRepository) Debit(ctx context.Context, studentID string, amount float64) error {
	const query = `UPDATE savings SET balance = balance - $2, updated_at = $3 WHERE student_id = $1`
	if _, err := r.db.ExecContext(ctx, query, studentID, amount, time.Now().UTC()); err != nil {
		return fmt.Errorf("debit savings: %w", err)
	}
	return nil
}

// TotalBalance sums all stored balances.
func (r *SavingsRepository) TotalBalance(ctx context.Context) (float64, error) {
	var total float64
	if err := r.db.GetContext(ctx, &total, "SELECT COALESCE(SUM(balance), 0) FROM savings"); err != nil {
		return 0, fmt.Errorf("total savings balance: %w", err)
	}
	return total, nil
}
