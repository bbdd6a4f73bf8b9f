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

const depositColumns = `t.id, t.student_id, t.waste_type_id,
        COALESCE(t.bottle_count, 0) AS bottle_count,
        COALESCE(t.trashbag_reward, 0) AS trashbag_reward,
        COALESCE(t.weight, 0) AS weight,
        COALESCE(t.total_value, 0) AS total_value,
        t.created_at`

// DepositRepository manages the append-only deposit log.
type DepositRepository struct {
	db *sqlx.DB
}

// NewDepositRepository constructs a DepositRepository.
func NewDepositRepository(db *sqlx.DB) *DepositRepository {
	return &DepositRepository{db: db}
}

// List returns deposits with student and waste type display fields.
func (r *DepositRepository) List(ctx context.Context, filter models.DepositFilter) ([]models.DepositDetail, int, error) {
	base := `FROM transactions t
        LEFT JOIN students s ON s.id = t.student_id
        LEFT JOIN waste_types w ON w.id = t.waste_type_id`
	args := []interface{}{}
	conditions := []string{"1=1"}

	if filter.StudentID != "" {
		conditions = append(conditions, fmt.Sprintf("t.student_id = $%d", len(args)+1))
		args = append(args, filter.StudentID)
	}
	if filter.WasteTypeID != "" {
		conditions = append(conditions, fmt.Sprintf("t.waste_type_id = $%d", len(args)+1))
		args = append(args, filter.WasteTypeID)
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

	query := fmt.Sprintf(`SELECT %s,
        COALESCE(s.name, '') AS student_name,
        COALESCE(s.nis, '') AS student_nis,
        COALESCE(w.name, '') AS waste_type_name
        %s ORDER BY t.created_at %s LIMIT %d OFFSET %d`, depositColumns, base, order, size, offset)

	var deposits []models.DepositDetail
	if err := r.db.SelectContext(ctx, &deposits, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list deposits: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s", base)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count deposits: %w", err)
	}
	return deposits, total, nil
}

// ListByStudent returns a student's full deposit history.
func (r *DepositRepository) ListByStudent(ctx context.Context, studentID string) ([]models.Deposit, error) {
	query := fmt.Sprintf(`SELECT %s FROM transactions t WHERE t.student_id = $1 ORDER BY t.created_at DESC`, depositColumns)
	var deposits []models.Deposit
	if err := r.db.SelectContext(ctx, &deposits, query, studentID); err != nil {
		return nil, fmt.Errorf("list deposits by student: %w", err)
	}
	return deposits, nil
}

// Create inserts a new deposit event.
func (r *DepositRepository) Create(ctx context.Context, deposit *models.Deposit) error {
	if deposit.ID == "" {
		deposit.ID = uuid.NewString()
	}
	if deposit.CreatedAt.IsZero() {
		deposit.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO transactions (id, student_id, waste_type_id, bottle_count, trashbag_reward, weight, total_value, created_at)
        VALUES (:id, :student_id, :waste_type_id, :bottle_count, :trashbag_reward, :weight, :total_value, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, deposit); err != nil {
		return fmt.Errorf("create deposit: %w", err)
	}
	return nil
}

// Delete removes a deposit event.
func (r *DepositRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM transactions WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("delete deposit: %w", err)
	}
	return nil
}

// TotalsByWasteType aggregates bottles, trashbags and legacy value per type.
func (r *DepositRepository) TotalsByWasteType(ctx context.Context) ([]models.WasteTypeTotals, error) {
	const query = `SELECT w.name,
        COALESCE(SUM(t.bottle_count), 0) AS bottles,
        COALESCE(SUM(t.trashbag_reward), 0) AS trashbags,
        COALESCE(SUM(t.total_value), 0) AS value
        FROM transactions t
        JOIN waste_types w ON w.id = t.waste_type_id
        GROUP BY w.name ORDER BY bottles DESC`
	var totals []models.WasteTypeTotals
	if err := r.db.SelectContext(ctx, &totals, query); err != nil {
		return nil, fmt.Errorf("totals by waste type: %w", err)
	}
	return totals, nil
}

// MonthlyTotals aggregates deposit activity for the last twelve months.
func (r *DepositRepository) MonthlyTotals(ctx context.Context) ([]models.MonthlyTotals, error) {
	const query = `SELECT TO_CHAR(DATE_TRUNC('month', t.created_at), 'YYYY-MM') AS month,
        COALESCE(SUM(t.bottle_count), 0) AS bottles,
        COALESCE(SUM(t.total_value), 0) AS value
        FROM transactions t
        WHERE t.created_at >= DATE_TRUNC('month', NOW()) - INTERVAL '11 months'
        GROUP BY 1 ORDER BY 1`
	var totals []models.MonthlyTotals
	if err := r.db.SelectContext(ctx, &totals, query); err != nil {
		return nil, fmt.Errorf("monthly totals: %w", err)
	}
	return totals, nil
}

// TopCollectors ranks students by bottles collected.
func (r *DepositRepository) TopCollectors(ctx context.Context, limit int) ([]models.TopCollector, error) {
	if limit <= 0 {
		limit = 5
	}
	query := fmt.Sprintf(`SELECT s.id AS student_id, s.name AS student_name, s.class AS student_class,
        COUNT(t.id) AS deposits,
        COALESCE(SUM(t.bottle_count), 0) AS bottles
        FROM transactions t
        JOIN students s ON s.id = t.student_id
        GROUP BY s.id, s.name, s.class
        ORDER BY bottles DESC LIMIT %d`, limit)
	var collectors []models.TopCollector
	if err := r.db.SelectContext(ctx, &collectors, query); err != nil {
		return nil, fmt.Errorf("top collectors: %w", err)
	}
	return collectors, nil
}

// TotalBottles sums bottle counts across all deposits.
func (r *DepositRepository) TotalBottles(ctx context.Context) (int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COALESCE(SUM(bottle_count), 0) FROM transactions"); err != nil {
		return 0, fmt.Errorf("total bottles: %w", err)
	}
	return total, nil
}
