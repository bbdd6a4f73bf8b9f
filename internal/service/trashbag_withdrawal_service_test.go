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

type mockTrashbagWithdrawalRepo struct {
	items         map[string]*models.TrashbagWithdrawal
	created       []models.TrashbagWithdrawal
	statusUpdates []models.WithdrawalStatus
	deleted       []string
	listResult    []models.TrashbagWithdrawal
	listTotal     int
}

func (m *mockTrashbagWithdrawalRepo) List(ctx context.Context, filter models.WithdrawalFilter) ([]models.TrashbagWithdrawal, int, error) {
	return m.listResult, m.listTotal, nil
}

func (m *mockTrashbagWithdrawalRepo) ListByStudent(ctx context.Context, studentID string) ([]models.TrashbagWithdrawal, error) {
	return m.listResult, nil
}

func (m *mockTrashbagWithdrawalRepo) FindByID(ctx context.Context, id string) (*models.TrashbagWithdrawal, error) {
	if w, ok := m.items[id]; ok {
		cp := *w
		return &cp, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockTrashbagWithdrawalRepo) Create(ctx context.Context, withdrawal *models.TrashbagWithdrawal) error {
	if withdrawal.ID == "" {
		withdrawal.ID = "generated"
	}
	m.created = append(m.created, *withdrawal)
	return nil
}

func (m *mockTrashbagWithdrawalRepo) UpdateStatus(ctx context.Context, id string, status models.WithdrawalStatus) error {
	m.statusUpdates = append(m.statusUpdates, status)
	if w, ok := m.items[id]; ok {
		w.Status = status
	}
	return nil
}

func (m *mockTrashbagWithdrawalRepo) Update(ctx context.Context, withdrawal *models.TrashbagWithdrawal) error {
	cp := *withdrawal
	m.items[withdrawal.ID] = &cp
	return nil
}

func (m *mockTrashbagWithdrawalRepo) Delete(ctx context.Context, id string) error {
	m.deleted = append(m.deleted, id)
	return nil
}

type stubLedger struct {
	summary *models.LedgerSummary
	err     error
}

func (s *stubLedger) StudentSummary(ctx context.Context, studentID string) (*models.LedgerSummary, error) {
	return s.summary, s.err
}

func TestTrashbagWithdrawalCreateWithinAvailability(t *testing.T) {
	repo := &mockTrashbagWithdrawalRepo{}
	ledger := &stubLedger{summary: &models.LedgerSummary{StudentID: "s1", AvailableTrashbags: 3}}
	svc := NewTrashbagWithdrawalService(repo, ledger, nil, nil)

	withdrawal, err := svc.Create(context.Background(), CreateTrashbagWithdrawalRequest{
		StudentID: "s1", Amount: 2, Description: "tukar trashbag",
	})
	require.NoError(t, err)

	assert.Equal(t, models.WithdrawalPending, withdrawal.Status)
	require.Len(t, repo.created, 1)
	assert.Equal(t, 2, repo.created[0].Amount)
}

func TestTrashbagWithdrawalCreateRejectsOverLimit(t *testing.T) {
	repo := &mockTrashbagWithdrawalRepo{}
	ledger := &stubLedger{summary: &models.LedgerSummary{StudentID: "s1", AvailableTrashbags: 1}}
	svc := NewTrashbagWithdrawalService(repo, ledger, nil, nil)

	_, err := svc.Create(context.Background(), CreateTrashbagWithdrawalRequest{
		StudentID: "s1", Amount: 2, Description: "tukar trashbag",
	})
	require.Error(t, err)

	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrInsufficientBalance.Code, appErr.Code)
	assert.Empty(t, repo.created, "over-limit request must not be persisted")
}

func TestTrashbagWithdrawalCreateRejectsNonPositiveAmount(t *testing.T) {
	repo := &mockTrashbagWithdrawalRepo{}
	ledger := &stubLedger{summary: &models.LedgerSummary{AvailableTrashbags: 5}}
	svc := NewTrashbagWithdrawalService(repo, ledger, nil, nil)

	for _, amount := range []int{0, -1} {
		_, err := svc.Create(context.Background(), CreateTrashbagWithdrawalRequest{
			StudentID: "s1", Amount: amount, Description: "tukar trashbag",
		})
		require.Error(t, err)
	}
	assert.Empty(t, repo.created)
}

func TestTrashbagWithdrawalCreateRejectsBlankDescription(t *testing.T) {
	repo := &mockTrashbagWithdrawalRepo{}
	ledger := &stubLedger{summary: &models.LedgerSummary{AvailableTrashbags: 5}}
	svc := NewTrashbagWithdrawalService(repo, ledger, nil, nil)

	_, err := svc.Create(context.Background(), CreateTrashbagWithdrawalRequest{
		StudentID: "s1", Amount: 1, Description: "   ",
	})
	require.Error(t, err)
	assert.Empty(t, repo.created)
}

func TestTrashbagWithdrawalTransitionApproves(t *testing.T) {
	repo := &mockTrashbagWithdrawalRepo{items: map[string]*models.TrashbagWithdrawal{
		"tw1": {ID: "tw1", StudentID: "s1", Amount: 2, Status: models.WithdrawalPending},
	}}
	svc := NewTrashbagWithdrawalService(repo, &stubLedger{}, nil, nil)

	withdrawal, err := svc.Transition(context.Background(), "tw1", TransitionRequest{Status: models.WithdrawalApproved})
	require.NoError(t, err)

	assert.Equal(t, models.WithdrawalApproved, withdrawal.Status)
	assert.Len(t, repo.statusUpdates, 1)
}

func TestTrashbagWithdrawalTransitionIsIdempotent(t *testing.T) {
	repo := &mockTrashbagWithdrawalRepo{items: map[string]*models.TrashbagWithdrawal{
		"tw1": {ID: "tw1", StudentID: "s1", Amount: 2, Status: models.WithdrawalApproved},
	}}
	svc := NewTrashbagWithdrawalService(repo, &stubLedger{}, nil, nil)

	withdrawal, err := svc.Transition(context.Background(), "tw1", TransitionRequest{Status: models.WithdrawalApproved})
	require.NoError(t, err)

	assert.Equal(t, models.WithdrawalApproved, withdrawal.Status)
	assert.Empty(t, repo.statusUpdates, "repeated decision must not re-apply")
}

func TestTrashbagWithdrawalTransitionBlocksCrossTerminalMove(t *testing.T) {
	repo := &mockTrashbagWithdrawalRepo{items: map[string]*models.TrashbagWithdrawal{
		"tw1": {ID: "tw1", StudentID: "s1", Amount: 2, Status: models.WithdrawalRejected},
	}}
	svc := NewTrashbagWithdrawalService(repo, &stubLedger{}, nil, nil)

	_, err := svc.Transition(context.Background(), "tw1", TransitionRequest{Status: models.WithdrawalApproved})
	require.Error(t, err)

	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrInvalidTransition.Code, appErr.Code)
	assert.Empty(t, repo.statusUpdates)
}

func TestTrashbagWithdrawalTransitionRejectsPendingTarget(t *testing.T) {
	repo := &mockTrashbagWithdrawalRepo{items: map[string]*models.TrashbagWithdrawal{
		"tw1": {ID: "tw1", StudentID: "s1", Amount: 2, Status: models.WithdrawalPending},
	}}
	svc := NewTrashbagWithdrawalService(repo, &stubLedger{}, nil, nil)

	_, err := svc.Transition(context.Background(), "tw1", TransitionRequest{Status: models.WithdrawalPending})
	require.Error(t, err)
}

func TestTrashbagWithdrawalUpdateSkipsAvailabilityGate(t *testing.T) {
	repo := &mockTrashbagWithdrawalRepo{items: map[string]*models.TrashbagWithdrawal{
		"tw1": {ID: "tw1", StudentID: "s1", Amount: 2, Description: "lama", Status: models.WithdrawalPending},
	}}
	ledger := &stubLedger{summary: &models.LedgerSummary{AvailableTrashbags: 0}}
	svc := NewTrashbagWithdrawalService(repo, ledger, nil, nil)

	withdrawal, err := svc.Update(context.Background(), "tw1", UpdateTrashbagWithdrawalRequest{
		Amount: 5, Description: "koreksi admin",
	})
	require.NoError(t, err)

	assert.Equal(t, 5, withdrawal.Amount)
	assert.Equal(t, "koreksi admin", withdrawal.Description)
}

func TestTrashbagWithdrawalDelete(t *testing.T) {
	repo := &mockTrashbagWithdrawalRepo{items: map[string]*models.TrashbagWithdrawal{
		"tw1": {ID: "tw1", StudentID: "s1", Amount: 2, Status: models.WithdrawalApproved},
	}}
	svc := NewTrashbagWithdrawalService(repo, &stubLedger{}, nil, nil)

	require.NoError(t, svc.Delete(context.Background(), "tw1"))
	assert.Equal(t, []string{"tw1"}, repo.deleted)
}

func TestTrashbagWithdrawalDeleteNotFound(t *testing.T) {
	repo := &mockTrashbagWithdrawalRepo{}
	svc := NewTrashbagWithdrawalService(repo, &stubLedger{}, nil, nil)

	err := svc.Delete(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}
