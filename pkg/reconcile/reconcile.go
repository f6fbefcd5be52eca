// Package reconcile computes the set of newly observed transactions between
// two snapshots of the same export.
package reconcile

import (
	"errors"
	"fmt"

	"github.com/chris/splitwise-sync/pkg/models"
)

// ErrDuplicateKey is returned when a snapshot contains the same transaction
// id more than once. Exports guarantee unique ids per snapshot; a duplicate
// means the input is broken, so the whole run fails rather than guessing
// which occurrence to keep.
var ErrDuplicateKey = errors.New("duplicate transaction id in snapshot")

// NewTransactions returns the records of cur whose id does not appear in
// prev, preserving cur's order. prev is the older snapshot. An empty prev
// marks every record in cur as new; an empty cur yields an empty result.
func NewTransactions(prev, cur []models.Transaction) ([]models.Transaction, error) {
	seen := make(map[string]struct{}, len(prev))
	for _, txn := range prev {
		if _, dup := seen[txn.Id]; dup {
			return nil, fmt.Errorf("%w: %q in previous snapshot", ErrDuplicateKey, txn.Id)
		}
		seen[txn.Id] = struct{}{}
	}

	fresh := make(map[string]struct{}, len(cur))
	out := make([]models.Transaction, 0)
	for _, txn := range cur {
		if _, dup := fresh[txn.Id]; dup {
			return nil, fmt.Errorf("%w: %q in current snapshot", ErrDuplicateKey, txn.Id)
		}
		fresh[txn.Id] = struct{}{}

		if _, old := seen[txn.Id]; !old {
			out = append(out, txn)
		}
	}

	return out, nil
}
