package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/bank-sampah-api/internal/models"
	appErrors "github.com/noah-isme/bank-sampah-api/pkg/errors"
)

type mockDepositRepo struct {
	created []models.Deposit
	deleted []string
}

func (m *mockDepositRepo) List(ctx context.Context, filter models.DepositFilter) ([]models.DepositDetail, int, error) {
	return nil, 0, nil
}

func (m *mockDepositRepo) ListByStudent(ctx context.Context, studentID string) ([]models.Deposit, error) {
	return nil, nil
}

func (m *mockDepositRepo) Create(ctx context.Context, deposit *models.Deposit) error {
	if deposit.ID == "" {
		deposit.ID = "generated"
	}
	m.created = append(m.created, *deposit)
	return nil
}

func (m *mockDepositRepo) Delete(ctx context.Context, id string) error {
	m.deleted = append(m.deleted, id)
	return nil
}

type mockWasteTypeFinder struct {
	types map[string]*models.WasteType
}

func (m *mockWasteTypeFinder) FindByID(ctx context.Context, id string) (*models.WasteType, error) {
	if wt, ok := m.types[id]; ok {
		cp := *wt
		return &cp, nil
	}
	return nil, sql.ErrNoRows
}

type mockStudentFinder struct {
	students map[string]*models.Student
}

func (m *mockStudentFinder) FindByID(ctx context.Context, id string) (*models.Student, error) {
	if s, ok := m.students[id]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, sql.ErrNoRows
}

type mockSavingsCreditor struct {
	credits []float64
}

func (m *mockSavingsCreditor) Credit(ctx context.Context, studentID string, amount float64) error {
	m.credits = append(m.credits, amount)
	return nil
}

func newDepositFixture() (*DepositService, *mockDepositRepo, *mockSavingsCreditor) {
	repo := &mockDepositRepo{}
	savings := &mockSavingsCreditor{}
	wasteTypes := &mockWasteTypeFinder{types: map[string]*models.WasteType{
		"w1": {ID: "w1", Name: "Plastik", TrashbagsPerBottle: 20, PricePerKg: 2000},
	}}
	students := &mockStudentFinder{students: map[string]*models.Student{
		"s1": {ID: "s1", NIS: "12345", Name: "Siswa Satu", Class: "7A"},
	}}
	return NewDepositService(repo, wasteTypes, students, savings, nil, nil), repo, savings
}

func TestDepositCreateFreezesRewardAtCurrentRate(t *testing.T) {
	svc, repo, savings := newDepositFixture()

	deposit, err := svc.Create(context.Background(), CreateDepositRequest{
		StudentID: "s1", WasteTypeID: "w1", BottleCount: 45,
	})
	require.NoError(t, err)

	assert.Equal(t, 2, deposit.TrashbagReward)
	assert.Equal(t, 0.0, deposit.TotalValue)
	require.Len(t, repo.created, 1)
	assert.Equal(t, 2, repo.created[0].TrashbagReward)
	assert.Empty(t, savings.credits, "bottle-only deposit must not touch savings")
}

func TestDepositCreatePricesWeightAndCreditsSavings(t *testing.T) {
	svc, repo, savings := newDepositFixture()

	deposit, err := svc.Create(context.Background(), CreateDepositRequest{
		StudentID: "s1", WasteTypeID: "w1", Weight: 3.5,
	})
	require.NoError(t, err)

	assert.Equal(t, 7000.0, deposit.TotalValue)
	assert.Equal(t, 0, deposit.TrashbagReward)
	require.Len(t, repo.created, 1)
	require.Len(t, savings.credits, 1)
	assert.Equal(t, 7000.0, savings.credits[0])
}

func TestDepositCreateHandlesBothRegimesAtOnce(t *testing.T) {
	svc, _, savings := newDepositFixture()

	deposit, err := svc.Create(context.Background(), CreateDepositRequest{
		StudentID: "s1", WasteTypeID: "w1", BottleCount: 40, Weight: 1.0,
	})
	require.NoError(t, err)

	assert.Equal(t, 2, deposit.TrashbagReward)
	assert.Equal(t, 2000.0, deposit.TotalValue)
	assert.Len(t, savings.credits, 1)
}

func TestDepositCreateRequiresBottlesOrWeight(t *testing.T) {
	svc, repo, _ := newDepositFixture()

	_, err := svc.Create(context.Background(), CreateDepositRequest{
		StudentID: "s1", WasteTypeID: "w1",
	})
	require.Error(t, err)
	assert.Empty(t, repo.created)
}

func TestDepositCreateUnknownStudent(t *testing.T) {
	svc, repo, _ := newDepositFixture()

	_, err := svc.Create(context.Background(), CreateDepositRequest{
		StudentID: "missing", WasteTypeID: "w1", BottleCount: 10,
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
	assert.Empty(t, repo.created)
}

func TestDepositCreateUnknownWasteType(t *testing.T) {
	svc, repo, _ := newDepositFixture()

	_, err := svc.Create(context.Background(), CreateDepositRequest{
		StudentID: "s1", WasteTypeID: "missing", BottleCount: 10,
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
	assert.Empty(t, repo.created)
}
