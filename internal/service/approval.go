package service

import (
	appErrors "github.com/noah-isme/bank-sampah-api/pkg/errors"

	"github.com/noah-isme/bank-sampah-api/internal/models"
)

// resolveTransition decides what a status change request means for an
// approval-gated withdrawal. Both the trashbag and the legacy Rupiah
// workflow share these rules:
//
//   - repeating the current status is a no-op, so double-submitting an
//     approval cannot double-apply its side effects;
//   - moving between the two terminal states (approved <-> rejected) is
//     rejected outright;
//   - anything other than approved/rejected is not a valid target.
func resolveTransition(current, next models.WithdrawalStatus) (noop bool, err error) {
	if !next.Valid() || next == models.WithdrawalPending {
		return false, appErrors.Clone(appErrors.ErrValidation, "status must be approved or rejected")
	}
	if next == current {
		return true, nil
	}
	if current.Terminal() {
		return false, appErrors.Clone(appErrors.ErrInvalidTransition, "request already "+string(current))
	}
	return false, nil
}
