package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/bank-sampah-api/internal/models"
)

func newRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestStudentRepositoryList(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	rows := sqlmock.NewRows([]string{"id", "nis", "name", "class", "created_at", "updated_at"}).
		AddRow("1", "12345", "Siswa Satu", "7A", time.Now(), time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("SELECT s.id, s.nis, s.name, s.class, s.created_at, s.updated_at\n        FROM students s WHERE 1=1 ORDER BY s.created_at DESC LIMIT 20 OFFSET 0")).
		WillReturnRows(rows)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM students s WHERE 1=1")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	students, total, err := repo.List(context.Background(), models.StudentFilter{})
	require.NoError(t, err)
	assert.Len(t, students, 1)
	assert.Equal(t, 1, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositoryFindByNIS(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	rows := sqlmock.NewRows([]string{"id", "nis", "name", "class", "created_at", "updated_at"}).
		AddRow("1", "12345", "Siswa Satu", "7A", time.Now(), time.Now())
	mock.ExpectQuery("SELECT id, nis, name, class, created_at, updated_at FROM students WHERE nis = ").
		WithArgs("12345").
		WillReturnRows(rows)

	student, err := repo.FindByNIS(context.Background(), "12345")
	require.NoError(t, err)
	assert.Equal(t, "Siswa Satu", student.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	mock.ExpectExec("INSERT INTO students").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := repo.Create(context.Background(), &models.Student{NIS: "12345", Name: "Siswa Satu", Class: "7A"})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
