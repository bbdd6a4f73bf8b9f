package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/bank-sampah-api/internal/models"
)

type mockDepositReader struct {
	deposits []models.Deposit
	err      error
}

func (m *mockDepositReader) ListByStudent(ctx context.Context, studentID string) ([]models.Deposit, error) {
	return m.deposits, m.err
}

type mockWasteTypeLister struct {
	types []models.WasteType
	err   error
}

func (m *mockWasteTypeLister) List(ctx context.Context) ([]models.WasteType, error) {
	return m.types, m.err
}

type mockTrashbagWithdrawalReader struct {
	withdrawals []models.TrashbagWithdrawal
	err         error
}

func (m *mockTrashbagWithdrawalReader) ListByStudent(ctx context.Context, studentID string) ([]models.TrashbagWithdrawal, error) {
	return m.withdrawals, m.err
}

func plastikCatalog(rate int) map[string]models.WasteType {
	return map[string]models.WasteType{
		"w1": {ID: "w1", Name: "Plastik", TrashbagsPerBottle: rate},
	}
}

func TestComputeStatsFloorsDerivedRewards(t *testing.T) {
	deposits := []models.Deposit{{StudentID: "s1", WasteTypeID: "w1", BottleCount: 45}}

	stats := ComputeStats(deposits, plastikCatalog(20))

	assert.Equal(t, 45, stats.TotalBottles)
	assert.Equal(t, 2, stats.TotalTrashbags)
	assert.Equal(t, models.WasteTally{Bottles: 45, Trashbags: 2}, stats.WasteBreakdown["Plastik"])
}

func TestComputeStatsStoredRewardSurvivesRateChange(t *testing.T) {
	// Frozen at rate 10 (30 bottles -> 3), catalog later changed to rate 20.
	deposits := []models.Deposit{{StudentID: "s1", WasteTypeID: "w1", BottleCount: 30, TrashbagReward: 3}}

	stats := ComputeStats(deposits, plastikCatalog(20))

	assert.Equal(t, 30, stats.TotalBottles)
	assert.Equal(t, 3, stats.TotalTrashbags)
}

func TestComputeStatsMissingWasteTypeStillCountsBottles(t *testing.T) {
	deposits := []models.Deposit{
		{StudentID: "s1", WasteTypeID: "w1", BottleCount: 40},
		{StudentID: "s1", WasteTypeID: "gone", BottleCount: 25, TrashbagReward: 1},
	}

	stats := ComputeStats(deposits, plastikCatalog(20))

	assert.Equal(t, 65, stats.TotalBottles)
	assert.Equal(t, 2, stats.TotalTrashbags)
	assert.NotContains(t, stats.WasteBreakdown, "gone")
	assert.Len(t, stats.WasteBreakdown, 1)
}

func TestComputeStatsIgnoresWeightOnlyDeposits(t *testing.T) {
	deposits := []models.Deposit{
		{StudentID: "s1", WasteTypeID: "w1", Weight: 3.5, TotalValue: 7000},
		{StudentID: "s1", WasteTypeID: "w1", BottleCount: 20},
	}

	stats := ComputeStats(deposits, plastikCatalog(20))

	assert.Equal(t, 20, stats.TotalBottles)
	assert.Equal(t, 1, stats.TotalTrashbags)
}

func TestComputeStatsIsPure(t *testing.T) {
	deposits := []models.Deposit{{StudentID: "s1", WasteTypeID: "w1", BottleCount: 45}}
	catalog := plastikCatalog(20)

	first := ComputeStats(deposits, catalog)
	second := ComputeStats(deposits, catalog)

	assert.Equal(t, first, second)
	assert.Equal(t, 45, deposits[0].BottleCount)
	assert.Equal(t, 0, deposits[0].TrashbagReward)
}

func TestStudentSummaryNetsOutApprovedWithdrawalsOnly(t *testing.T) {
	deposits := &mockDepositReader{deposits: []models.Deposit{
		{StudentID: "s1", WasteTypeID: "w1", BottleCount: 50},
		{StudentID: "s1", WasteTypeID: "w1", BottleCount: 30, TrashbagReward: 1},
	}}
	wasteTypes := &mockWasteTypeLister{types: []models.WasteType{
		{ID: "w1", Name: "Plastik", TrashbagsPerBottle: 20},
	}}
	withdrawals := &mockTrashbagWithdrawalReader{withdrawals: []models.TrashbagWithdrawal{
		{StudentID: "s1", Amount: 2, Status: models.WithdrawalApproved},
		{StudentID: "s1", Amount: 1, Status: models.WithdrawalPending},
		{StudentID: "s1", Amount: 1, Status: models.WithdrawalRejected},
	}}

	svc := NewLedgerService(deposits, wasteTypes, withdrawals, nil)
	summary, err := svc.StudentSummary(context.Background(), "s1")
	require.NoError(t, err)

	assert.Equal(t, 80, summary.TotalBottles)
	assert.Equal(t, 3, summary.TotalTrashbagsEarned)
	assert.Equal(t, 1, summary.AvailableTrashbags)
}

func TestStudentSummaryReflectsWithdrawalStateChanges(t *testing.T) {
	deposits := &mockDepositReader{deposits: []models.Deposit{
		{StudentID: "s1", WasteTypeID: "w1", BottleCount: 60},
	}}
	wasteTypes := &mockWasteTypeLister{types: []models.WasteType{
		{ID: "w1", Name: "Plastik", TrashbagsPerBottle: 20},
	}}
	withdrawals := &mockTrashbagWithdrawalReader{withdrawals: []models.TrashbagWithdrawal{
		{ID: "tw1", StudentID: "s1", Amount: 2, Status: models.WithdrawalPending},
	}}

	svc := NewLedgerService(deposits, wasteTypes, withdrawals, nil)

	summary, err := svc.StudentSummary(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, 3, summary.AvailableTrashbags)

	withdrawals.withdrawals[0].Status = models.WithdrawalApproved
	summary, err = svc.StudentSummary(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, 1, summary.AvailableTrashbags)
}

func TestStudentSummaryReportsNextTrashbagProgress(t *testing.T) {
	deposits := &mockDepositReader{deposits: []models.Deposit{
		{StudentID: "s1", WasteTypeID: "w1", BottleCount: 45},
	}}
	wasteTypes := &mockWasteTypeLister{types: []models.WasteType{
		{ID: "w1", Name: "Plastik", TrashbagsPerBottle: 20},
	}}
	withdrawals := &mockTrashbagWithdrawalReader{}

	svc := NewLedgerService(deposits, wasteTypes, withdrawals, nil)
	summary, err := svc.StudentSummary(context.Background(), "s1")
	require.NoError(t, err)

	assert.Equal(t, 5, summary.NextTrashbagBottles["Plastik"])
}
