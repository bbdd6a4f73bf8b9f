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

type mockWithdrawalRepo struct {
	items         map[string]*models.Withdrawal
	created       []models.Withdrawal
	statusUpdates []models.WithdrawalStatus
}

func (m *mockWithdrawalRepo) List(ctx context.Context, filter models.WithdrawalFilter) ([]models.Withdrawal, int, error) {
	return nil, 0, nil
}

func (m *mockWithdrawalRepo) FindByID(ctx context.Context, id string) (*models.Withdrawal, error) {
	if w, ok := m.items[id]; ok {
		cp := *w
		return &cp, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockWithdrawalRepo) Create(ctx context.Context, withdrawal *models.Withdrawal) error {
	if withdrawal.ID == "" {
		withdrawal.ID = "generated"
	}
	m.created = append(m.created, *withdrawal)
	return nil
}

func (m *mockWithdrawalRepo) UpdateStatus(ctx context.Context, id string, status models.WithdrawalStatus) error {
	m.statusUpdates = append(m.statusUpdates, status)
	if w, ok := m.items[id]; ok {
		w.Status = status
	}
	return nil
}

func (m *mockWithdrawalRepo) Delete(ctx context.Context, id string) error {
	delete(m.items, id)
	return nil
}

type mockSavingsRepo struct {
	balances map[string]float64
	debits   []float64
}

func (m *mockSavingsRepo) FindByStudent(ctx context.Context, studentID string) (*models.Savings, error) {
	balance, ok := m.balances[studentID]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &models.Savings{StudentID: studentID, Balance: balance}, nil
}

func (m *mockSavingsRepo) Debit(ctx context.Context, studentID string, amount float64) error {
	m.debits = append(m.debits, amount)
	m.balances[studentID] -= amount
	return nil
}

func TestWithdrawalCreateGatedOnBalance(t *testing.T) {
	repo := &mockWithdrawalRepo{}
	savings := &mockSavingsRepo{balances: map[string]float64{"s1": 5000}}
	svc := NewWithdrawalService(repo, savings, nil, nil)

	_, err := svc.Create(context.Background(), CreateWithdrawalRequest{
		StudentID: "s1", Amount: 10000, Description: "tarik tabungan",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInsufficientBalance.Code, appErrors.FromError(err).Code)
	assert.Empty(t, repo.created)

	withdrawal, err := svc.Create(context.Background(), CreateWithdrawalRequest{
		StudentID: "s1", Amount: 3000, Description: "tarik tabungan",
	})
	require.NoError(t, err)
	assert.Equal(t, models.WithdrawalPending, withdrawal.Status)
}

func TestWithdrawalCreateNoSavingsRowMeansZeroBalance(t *testing.T) {
	repo := &mockWithdrawalRepo{}
	savings := &mockSavingsRepo{balances: map[string]float64{}}
	svc := NewWithdrawalService(repo, savings, nil, nil)

	_, err := svc.Create(context.Background(), CreateWithdrawalRequest{
		StudentID: "s1", Amount: 100, Description: "tarik tabungan",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInsufficientBalance.Code, appErrors.FromError(err).Code)
}

func TestWithdrawalApprovalDebitsSavingsOnce(t *testing.T) {
	repo := &mockWithdrawalRepo{items: map[string]*models.Withdrawal{
		"w1": {ID: "w1", StudentID: "s1", Amount: 3000, Status: models.WithdrawalPending},
	}}
	savings := &mockSavingsRepo{balances: map[string]float64{"s1": 5000}}
	svc := NewWithdrawalService(repo, savings, nil, nil)

	_, err := svc.Transition(context.Background(), "w1", TransitionRequest{Status: models.WithdrawalApproved})
	require.NoError(t, err)
	assert.Equal(t, []float64{3000}, savings.debits)
	assert.Equal(t, 2000.0, savings.balances["s1"])

	// Resubmitting the same decision is a no-op, not a second debit.
	_, err = svc.Transition(context.Background(), "w1", TransitionRequest{Status: models.WithdrawalApproved})
	require.NoError(t, err)
	assert.Len(t, savings.debits, 1)
}

func TestWithdrawalRejectionLeavesBalanceAlone(t *testing.T) {
	repo := &mockWithdrawalRepo{items: map[string]*models.Withdrawal{
		"w1": {ID: "w1", StudentID: "s1", Amount: 3000, Status: models.WithdrawalPending},
	}}
	savings := &mockSavingsRepo{balances: map[string]float64{"s1": 5000}}
	svc := NewWithdrawalService(repo, savings, nil, nil)

	_, err := svc.Transition(context.Background(), "w1", TransitionRequest{Status: models.WithdrawalRejected})
	require.NoError(t, err)
	assert.Empty(t, savings.debits)
	assert.Equal(t, 5000.0, savings.balances["s1"])
}

func TestWithdrawalCrossTerminalMoveBlocked(t *testing.T) {
	repo := &mockWithdrawalRepo{items: map[string]*models.Withdrawal{
		"w1": {ID: "w1", StudentID: "s1", Amount: 3000, Status: models.WithdrawalApproved},
	}}
	savings := &mockSavingsRepo{balances: map[string]float64{"s1": 5000}}
	svc := NewWithdrawalService(repo, savings, nil, nil)

	_, err := svc.Transition(context.Background(), "w1", TransitionRequest{Status: models.WithdrawalRejected})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInvalidTransition.Code, appErrors.FromError(err).Code)
	assert.Empty(t, savings.debits)
}
