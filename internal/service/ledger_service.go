package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/noah-isme/bank-sampah-api/internal/models"
	appErrors "github.com/noah-isme/bank-sampah-api/pkg/errors"
)

type depositReader interface {
	ListByStudent(ctx context.Context, studentID string) ([]models.Deposit, error)
}

type wasteTypeLister interface {
	List(ctx context.Context) ([]models.WasteType, error)
}

type trashbagWithdrawalReader interface {
	ListByStudent(ctx context.Context, studentID string) ([]models.TrashbagWithdrawal, error)
}

// LedgerService derives a student's reward position from their full deposit
// and withdrawal history. Nothing here is ever cached or stored: every read
// recomputes from scratch, so the ledger and the withdrawal log cannot drift
// apart.
type LedgerService struct {
	deposits    depositReader
	wasteTypes  wasteTypeLister
	withdrawals trashbagWithdrawalReader
	logger      *zap.Logger
}

// NewLedgerService constructs a LedgerService.
func NewLedgerService(deposits depositReader, wasteTypes wasteTypeLister, withdrawals trashbagWithdrawalReader, logger *zap.Logger) *LedgerService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LedgerService{deposits: deposits, wasteTypes: wasteTypes, withdrawals: withdrawals, logger: logger}
}

// ComputeStats aggregates a deposit history against the waste type catalog.
//
// Per record:
//   - bottles count whenever bottle_count > 0, even if the waste type no
//     longer exists; there is no fallback derivation from legacy weight.
//   - trashbags use the stored trashbag_reward when one was frozen at write
//     time, so later edits to the conversion rate never reprice history;
//     otherwise they are derived as floor(bottles / rate) at the current
//     rate. A record whose waste type cannot be resolved earns zero
//     trashbags and is left out of the named breakdown.
//
// Dangling waste type references are tolerated silently: one orphaned row
// must not take down a student's whole summary.
func ComputeStats(deposits []models.Deposit, catalog map[string]models.WasteType) models.BottleStats {
	stats := models.BottleStats{WasteBreakdown: make(map[string]models.WasteTally)}

	for _, deposit := range deposits {
		bottles := 0
		if deposit.BottleCount > 0 {
			bottles = deposit.BottleCount
		}
		stats.TotalBottles += bottles

		wasteType, ok := catalog[deposit.WasteTypeID]
		if !ok {
			continue
		}

		trashbags := 0
		if deposit.TrashbagReward > 0 {
			trashbags = deposit.TrashbagReward
		} else if wasteType.TrashbagsPerBottle > 0 {
			trashbags = bottles / wasteType.TrashbagsPerBottle
		}
		stats.TotalTrashbags += trashbags

		tally := stats.WasteBreakdown[wasteType.Name]
		tally.Bottles += bottles
		tally.Trashbags += trashbags
		stats.WasteBreakdown[wasteType.Name] = tally
	}

	return stats
}

// StudentSummary returns the authoritative reward position for a student:
// lifetime bottles and trashbags earned, plus the trashbags still available
// after netting out approved withdrawals. Pending and rejected requests do
// not reduce availability.
func (s *LedgerService) StudentSummary(ctx context.Context, studentID string) (*models.LedgerSummary, error) {
	deposits, err := s.deposits.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load deposit history")
	}
	wasteTypes, err := s.wasteTypes.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load waste type catalog")
	}
	withdrawals, err := s.withdrawals.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load withdrawal history")
	}

	catalog := make(map[string]models.WasteType, len(wasteTypes))
	for _, wt := range wasteTypes {
		catalog[wt.ID] = wt
	}

	stats := ComputeStats(deposits, catalog)

	withdrawn := 0
	for _, withdrawal := range withdrawals {
		if withdrawal.Status == models.WithdrawalApproved {
			withdrawn += withdrawal.Amount
		}
	}

	return &models.LedgerSummary{
		StudentID:            studentID,
		TotalBottles:         stats.TotalBottles,
		TotalTrashbagsEarned: stats.TotalTrashbags,
		AvailableTrashbags:   stats.TotalTrashbags - withdrawn,
		WasteBreakdown:       stats.WasteBreakdown,
		NextTrashbagBottles:  nextTrashbagProgress(stats.WasteBreakdown, wasteTypes),
	}, nil
}

// nextTrashbagProgress reports bottles banked toward the next trashbag per
// waste type at the current conversion rate. Display data only; the frozen
// rewards above are never affected by it.
func nextTrashbagProgress(breakdown map[string]models.WasteTally, wasteTypes []models.WasteType) map[string]int {
	progress := make(map[string]int, len(breakdown))
	for _, wt := range wasteTypes {
		tally, ok := breakdown[wt.Name]
		if !ok || wt.TrashbagsPerBottle <= 0 {
			continue
		}
		progress[wt.Name] = tally.Bottles % wt.TrashbagsPerBottle
	}
	return progress
}
