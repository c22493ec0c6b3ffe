package pantry

import (
	"time"

	"github.com/mesh-intelligence/pantry/pkg/types"
)

// FilterExpiring returns the records of table whose expiration date parses
// and falls on or before ref plus horizonDays days. Records with unparseable
// dates are dropped from the result. Input order is preserved.
func FilterExpiring(table types.PantryTable, ref time.Time, horizonDays int) types.PantryTable {
	cutoff := ref.AddDate(0, 0, horizonDays)
	soon := types.PantryTable{}
	for _, r := range table {
		d, ok := r.Expires(ref.Location())
		if !ok {
			continue
		}
		if !d.After(cutoff) {
			soon = append(soon, r)
		}
	}
	return soon
}
