package repository

import (
	"context"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/bank-sampah-api/internal/models"
)

func TestDepositRepositoryListByStudent(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewDepositRepository(db)

	rows := sqlmock.NewRows([]string{"id", "student_id", "waste_type_id", "bottle_count", "trashbag_reward", "weight", "total_value", "created_at"}).
		AddRow("d1", "s1", "w1", 50, 2, 0.0, 0.0, time.Now()).
		AddRow("d2", "s1", "w1", 0, 0, 3.5, 7000.0, time.Now())
	mock.ExpectQuery("SELECT (.+) FROM transactions t WHERE t.student_id = ").
		WithArgs("s1").
		WillReturnRows(rows)

	deposits, err := repo.ListByStudent(context.Background(), "s1")
	require.NoError(t, err)
	require.Len(t, deposits, 2)
	assert.Equal(t, 50, deposits[0].BottleCount)
	assert.Equal(t, 2, deposits[0].TrashbagReward)
	assert.Equal(t, 7000.0, deposits[1].TotalValue)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDepositRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewDepositRepository(db)

	mock.ExpectExec("INSERT INTO transactions").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	deposit := &models.Deposit{StudentID: "s1", WasteTypeID: "w1", BottleCount: 45, TrashbagReward: 2}
	err := repo.Create(context.Background(), deposit)
	require.NoError(t, err)
	assert.NotEmpty(t, deposit.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDepositRepositoryTotalsByWasteType(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewDepositRepository(db)

	rows := sqlmock.NewRows([]string{"name", "bottles", "trashbags", "value"}).
		AddRow("Plastik", 120, 6, 0.0).
		AddRow("Kaleng", 40, 2, 1500.0)
	mock.ExpectQuery("SELECT w.name,").WillReturnRows(rows)

	totals, err := repo.TotalsByWasteType(context.Background())
	require.NoError(t, err)
	require.Len(t, totals, 2)
	assert.Equal(t, "Plastik", totals[0].Name)
	assert.Equal(t, 120, totals[0].Bottles)
	assert.NoError(t, mock.ExpectationsWereMet())
}
