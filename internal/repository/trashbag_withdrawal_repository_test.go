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

func TestTrashbagWithdrawalRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewTrashbagWithdrawalRepository(db)

	mock.ExpectExec("INSERT INTO trashbag_withdrawals").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	withdrawal := &models.TrashbagWithdrawal{StudentID: "s1", Amount: 2, Description: "tukar trashbag", Status: models.WithdrawalPending}
	err := repo.Create(context.Background(), withdrawal)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTrashbagWithdrawalRepositoryUpdateStatus(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewTrashbagWithdrawalRepository(db)

	mock.ExpectExec("UPDATE trashbag_withdrawals SET status = ").
		WithArgs("tw1", models.WithdrawalApproved, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpdateStatus(context.Background(), "tw1", models.WithdrawalApproved)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTrashbagWithdrawalRepositoryListByStudent(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewTrashbagWithdrawalRepository(db)

	rows := sqlmock.NewRows([]string{"id", "student_id", "amount", "description", "status", "created_at", "updated_at"}).
		AddRow("tw1", "s1", 2, "tukar trashbag", "approved", time.Now(), time.Now()).
		AddRow("tw2", "s1", 1, "tambahan", "pending", time.Now(), time.Now())
	mock.ExpectQuery("SELECT id, student_id, amount, description, status, created_at, updated_at\n        FROM trashbag_withdrawals WHERE student_id = ").
		WithArgs("s1").
		WillReturnRows(rows)

	withdrawals, err := repo.ListByStudent(context.Background(), "s1")
	require.NoError(t, err)
	require.Len(t, withdrawals, 2)
	assert.Equal(t, models.WithdrawalApproved, withdrawals[0].Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}
