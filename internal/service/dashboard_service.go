package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/bank-sampah-api/internal/models"
	appErrors "github.com/noah-isme/bank-sampah-api/pkg/errors"
)

const dashboardCacheKey = "dash:stats"

type dashboardDepositRepository interface {
	TotalsByWasteType(ctx context.Context) ([]models.WasteTypeTotals, error)
	MonthlyTotals(ctx context.Context) ([]models.MonthlyTotals, error)
	TopCollectors(ctx context.Context, limit int) ([]models.TopCollector, error)
	TotalBottles(ctx context.Context) (int, error)
}

type studentCounter interface {
	Count(ctx context.Context) (int, error)
}

type savingsTotaller interface {
	TotalBalance(ctx context.Context) (float64, error)
}

type pendingCounter interface {
	CountByStatus(ctx context.Context, status models.WithdrawalStatus) (int, error)
}

// DashboardServiceConfig tunes dashboard behaviour.
type DashboardServiceConfig struct {
	CacheTTL     time.Duration
	TopCollector int
}

// DashboardServiceParams groups constructor dependencies.
type DashboardServiceParams struct {
	Deposits            dashboardDepositRepository
	Students            studentCounter
	Savings             savingsTotaller
	TrashbagWithdrawals pendingCounter
	SavingsWithdrawals  pendingCounter
	Cache               *CacheService
	Logger              *zap.Logger
	Config              DashboardServiceConfig
}

// DashboardService composes the admin overview. The aggregate is expensive
// to assemble, so it is cached in Redis for a short TTL; everything else in
// the system reads fresh.
type DashboardService struct {
	deposits            dashboardDepositRepository
	students            studentCounter
	savings             savingsTotaller
	trashbagWithdrawals pendingCounter
	savingsWithdrawals  pendingCounter
	cache               *CacheService
	logger              *zap.Logger
	now                 func() time.Time
	cfg                 DashboardServiceConfig
}

// NewDashboardService constructs a DashboardService with sane defaults.
func NewDashboardService(params DashboardServiceParams) *DashboardService {
	cfg := params.Config
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 5 * time.Minute
	}
	if cfg.TopCollector <= 0 {
		cfg.TopCollector = 5
	}
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardService{
		deposits:            params.Deposits,
		students:            params.Students,
		savings:             params.Savings,
		trashbagWithdrawals: params.TrashbagWithdrawals,
		savingsWithdrawals:  params.SavingsWithdrawals,
		cache:               params.Cache,
		logger:              logger,
		now:                 time.Now,
		cfg:                 cfg,
	}
}

// Stats returns the admin overview and indicates cache utilisation.
func (s *DashboardService) Stats(ctx context.Context) (*models.DashboardStats, bool, error) {
	var cached models.DashboardStats
	if hit, err := s.cache.Get(ctx, dashboardCacheKey, &cached); err == nil && hit {
		return &cached, true, nil
	}

	stats, err := s.compose(ctx)
	if err != nil {
		return nil, false, err
	}

	if err := s.cache.Set(ctx, dashboardCacheKey, stats, s.cfg.CacheTTL); err != nil {
		s.logger.Warn("failed to cache dashboard stats", zap.Error(err))
	}
	return stats, false, nil
}

// Invalidate drops the cached overview, forcing the next read to recompute.
func (s *DashboardService) Invalidate(ctx context.Context) {
	if err := s.cache.Invalidate(ctx, dashboardCacheKey); err != nil {
		s.logger.Warn("failed to invalidate dashboard cache", zap.Error(err))
	}
}

func (s *DashboardService) compose(ctx context.Context) (*models.DashboardStats, error) {
	students, err := s.students.Count(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count students")
	}
	bottles, err := s.deposits.TotalBottles(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to total bottles")
	}
	savings, err := s.savings.TotalBalance(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to total savings")
	}
	pendingTrashbag, err := s.trashbagWithdrawals.CountByStatus(ctx, models.WithdrawalPending)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count pending trashbag withdrawals")
	}
	pendingSavings, err := s.savingsWithdrawals.CountByStatus(ctx, models.WithdrawalPending)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count pending withdrawals")
	}
	byType, err := s.deposits.TotalsByWasteType(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to aggregate waste types")
	}
	monthly, err := s.deposits.MonthlyTotals(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to aggregate monthly totals")
	}
	top, err := s.deposits.TopCollectors(ctx, s.cfg.TopCollector)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to rank collectors")
	}

	trashbags := 0
	for _, t := range byType {
		trashbags += t.Trashbags
	}

	return &models.DashboardStats{
		TotalStudents:              students,
		TotalBottles:               bottles,
		TotalTrashbags:             trashbags,
		TotalSavings:               savings,
		PendingTrashbagWithdrawals: pendingTrashbag,
		PendingWithdrawals:         pendingSavings,
		WasteByType:                byType,
		MonthlyData:                monthly,
		TopStudents:                top,
		GeneratedAt:                s.now().UTC(),
	}, nil
}
