package collections

import "time"

// DismissalWindow is how long an acknowledged item stays hidden from
// restock views, absent a quantity change.
const DismissalWindow = 24 * time.Hour

// DismissalEntry records that the user acknowledged a low-stock item.
// Entries are never deleted; they simply stop suppressing once the window
// elapses or the quantity changes.
type DismissalEntry struct {
	DismissedAtMs int64 `json:"dismissedAtMs"`
	Quantity      *int  `json:"quantity,omitempty"`
}

// Active reports whether the dismissal still suppresses the item: the
// window has not elapsed and, if a quantity was recorded, it still equals
// the item's current quantity. Any quantity delta revives the item
// immediately, regardless of elapsed time.
func (e DismissalEntry) Active(currentQuantity int, nowMs int64) bool {
	if nowMs-e.DismissedAtMs >= DismissalWindow.Milliseconds() {
		return false
	}
	return e.Quantity == nil || *e.Quantity == currentQuantity
}
