package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/bank-sampah-api/internal/models"
	appErrors "github.com/noah-isme/bank-sampah-api/pkg/errors"
)

type memoryCacheRepo struct {
	entries map[string][]byte
}

func (m *memoryCacheRepo) Get(ctx context.Context, key string, dest interface{}) error {
	raw, ok := m.entries[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (m *memoryCacheRepo) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	if m.entries == nil {
		m.entries = make(map[string][]byte)
	}
	m.entries[key] = raw
	return nil
}

func (m *memoryCacheRepo) DeleteByPattern(ctx context.Context, pattern string) error {
	m.entries = make(map[string][]byte)
	return nil
}

type mockDashboardDepositRepo struct {
	calls int
}

func (m *mockDashboardDepositRepo) TotalsByWasteType(ctx context.Context) ([]models.WasteTypeTotals, error) {
	m.calls++
	return []models.WasteTypeTotals{
		{Name: "Plastik", Bottles: 120, Trashbags: 6},
		{Name: "Kaleng", Bottles: 40, Trashbags: 2, Value: 1500},
	}, nil
}

func (m *mockDashboardDepositRepo) MonthlyTotals(ctx context.Context) ([]models.MonthlyTotals, error) {
	return []models.MonthlyTotals{{Month: "2026-08", Bottles: 160, Value: 1500}}, nil
}

func (m *mockDashboardDepositRepo) TopCollectors(ctx context.Context, limit int) ([]models.TopCollector, error) {
	return []models.TopCollector{{StudentID: "s1", StudentName: "Siswa Satu", Bottles: 100}}, nil
}

func (m *mockDashboardDepositRepo) TotalBottles(ctx context.Context) (int, error) {
	return 160, nil
}

type mockStudentCounter struct{}

func (mockStudentCounter) Count(ctx context.Context) (int, error) { return 42, nil }

type mockSavingsTotaller struct{}

func (mockSavingsTotaller) TotalBalance(ctx context.Context) (float64, error) { return 15000, nil }

type mockPendingCounter struct{ pending int }

func (m mockPendingCounter) CountByStatus(ctx context.Context, status models.WithdrawalStatus) (int, error) {
	return m.pending, nil
}

func newDashboardFixture() (*DashboardService, *mockDashboardDepositRepo) {
	deposits := &mockDashboardDepositRepo{}
	cache := NewCacheService(&memoryCacheRepo{}, nil, time.Minute, nil, true)
	svc := NewDashboardService(DashboardServiceParams{
		Deposits:            deposits,
		Students:            mockStudentCounter{},
		Savings:             mockSavingsTotaller{},
		TrashbagWithdrawals: mockPendingCounter{pending: 3},
		SavingsWithdrawals:  mockPendingCounter{pending: 1},
		Cache:               cache,
	})
	return svc, deposits
}

func TestDashboardStatsComposesAggregates(t *testing.T) {
	svc, _ := newDashboardFixture()

	stats, cached, err := svc.Stats(context.Background())
	require.NoError(t, err)

	assert.False(t, cached)
	assert.Equal(t, 42, stats.TotalStudents)
	assert.Equal(t, 160, stats.TotalBottles)
	assert.Equal(t, 8, stats.TotalTrashbags)
	assert.Equal(t, 15000.0, stats.TotalSavings)
	assert.Equal(t, 3, stats.PendingTrashbagWithdrawals)
	assert.Equal(t, 1, stats.PendingWithdrawals)
	assert.Len(t, stats.WasteByType, 2)
}

func TestDashboardStatsServesFromCache(t *testing.T) {
	svc, deposits := newDashboardFixture()

	_, cached, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.False(t, cached)

	_, cached, err = svc.Stats(context.Background())
	require.NoError(t, err)
	assert.True(t, cached)
	assert.Equal(t, 1, deposits.calls, "second read must not hit the repositories")
}

func TestDashboardInvalidateForcesRecompute(t *testing.T) {
	svc, deposits := newDashboardFixture()

	_, _, err := svc.Stats(context.Background())
	require.NoError(t, err)

	svc.Invalidate(context.Background())

	_, cached, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.False(t, cached)
	assert.Equal(t, 2, deposits.calls)
}
