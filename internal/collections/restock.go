package collections

import "github.com/findez/findez/internal/model"

const msPerDay = 86_400_000

// DayBucket maps a Unix-millisecond timestamp to a whole-day index.
// Buckets are UTC-based integer division, so two sightings on the same
// calendar day share a bucket and count as one.
func DayBucket(ms int64) int64 {
	return ms / msPerDay
}

// HistoryEntry tracks sightings of a low-stock item across analyzer runs.
type HistoryEntry struct {
	FirstSeenMs  int64 `json:"firstSeenMs"`
	LastSeenMs   int64 `json:"lastSeenMs"`
	SeenCount    int   `json:"seenCount"`
	FirstSeenDay int64 `json:"firstSeenDay"`
	LastSeenDay  int64 `json:"lastSeenDay"`
	LastQuantity int   `json:"lastQuantity"`
}

// forgottenCap bounds the forgotten list so a long-neglected inventory
// does not flood the view.
const forgottenCap = 12

// RestockResult is one analyzer pass over the inventory.
type RestockResult struct {
	Urgent    []model.Item `json:"urgent"`
	Soon      []model.Item `json:"soon"`
	Forgotten []model.Item `json:"forgotten"`
}

// forgotten reports whether a history entry qualifies an item as
// repeatedly ignored: seen at least twice, across more than one day
// bucket or spanning at least a full day of wall time.
func (h HistoryEntry) forgotten(nowMs int64) bool {
	if h.SeenCount < 2 {
		return false
	}
	return h.LastSeenDay > h.FirstSeenDay || nowMs-h.FirstSeenMs >= DismissalWindow.Milliseconds()
}
