package collections

import (
	"context"

	"github.com/findez/findez/internal/kv"
	"github.com/findez/findez/internal/model"
)

// Analyzer runs the smart-collection heuristics over a user's inventory.
// State persistence and time are injected so every computation is
// deterministic given its inputs.
type Analyzer struct {
	State kv.Store
	Clock Clock
}

// NewAnalyzer returns an analyzer backed by the given state store and the
// system clock.
func NewAnalyzer(state kv.Store) *Analyzer {
	return &Analyzer{State: state, Clock: SystemClock}
}

// RunBeforeIBuy matches a purchase intent against the inventory and
// records a summary snapshot for "last used" display. parsed carries
// optional structured hints from query parsing and may be nil.
func (a *Analyzer) RunBeforeIBuy(ctx context.Context, intent string, parsed map[string]any, items []model.Item) []Match {
	matches := MatchIntent(intent, parsed, items)

	var exact, similar int
	for _, m := range matches {
		if m.Kind == MatchExact {
			exact++
		} else {
			similar++
		}
	}
	kv.SetJSON(ctx, a.State, KeyBeforeIBuy, BeforeIBuySnapshot{
		ExactCount:   exact,
		SimilarCount: similar,
		UsedAtMs:     a.Clock.Now().UnixMilli(),
		Query:        intent,
	})
	return matches
}

// AnalyzeRestock partitions the inventory into urgent (out of stock) and
// soon (last one) buckets, updates the per-item sighting history, and
// derives the frequently-forgotten list. Dismissed items are excluded
// before any bookkeeping. Persists the updated history and a summary
// snapshot.
func (a *Analyzer) AnalyzeRestock(ctx context.Context, items []model.Item) RestockResult {
	nowMs := a.Clock.Now().UnixMilli()
	today := DayBucket(nowMs)

	dismissals := map[string]DismissalEntry{}
	kv.GetJSON(ctx, a.State, KeyRestockDismissals, &dismissals)

	history := map[string]HistoryEntry{}
	kv.GetJSON(ctx, a.State, KeyRestockHistory, &history)

	var result RestockResult
	var low []model.Item
	for _, item := range items {
		if item.Quantity > 1 {
			continue
		}
		if entry, ok := dismissals[item.ItemID]; ok && entry.Active(item.Quantity, nowMs) {
			continue
		}
		if item.Quantity <= 0 {
			result.Urgent = append(result.Urgent, item)
		} else {
			result.Soon = append(result.Soon, item)
		}
		low = append(low, item)
	}

	for _, item := range low {
		entry, ok := history[item.ItemID]
		if !ok {
			history[item.ItemID] = HistoryEntry{
				FirstSeenMs:  nowMs,
				LastSeenMs:   nowMs,
				SeenCount:    1,
				FirstSeenDay: today,
				LastSeenDay:  today,
				LastQuantity: item.Quantity,
			}
			continue
		}
		if today != entry.LastSeenDay {
			entry.SeenCount++
		}
		entry.LastSeenMs = nowMs
		entry.LastSeenDay = today
		entry.LastQuantity = item.Quantity
		history[item.ItemID] = entry
	}

	for _, item := range low {
		if len(result.Forgotten) >= forgottenCap {
			break
		}
		if history[item.ItemID].forgotten(nowMs) {
			result.Forgotten = append(result.Forgotten, item)
		}
	}

	kv.SetJSON(ctx, a.State, KeyRestockHistory, history)
	kv.SetJSON(ctx, a.State, KeyRestock, RestockSnapshot{
		LowOrEmptyCount: len(low),
		ForgottenCount:  len(result.Forgotten),
		UsedAtMs:        nowMs,
	})
	return result
}

// DismissRestockItem records that the user acknowledged a low-stock item,
// hiding it from restock views for the dismissal window or until its
// quantity changes.
func (a *Analyzer) DismissRestockItem(ctx context.Context, item model.Item) {
	dismissals := map[string]DismissalEntry{}
	kv.GetJSON(ctx, a.State, KeyRestockDismissals, &dismissals)

	qty := item.Quantity
	dismissals[item.ItemID] = DismissalEntry{
		DismissedAtMs: a.Clock.Now().UnixMilli(),
		Quantity:      &qty,
	}
	kv.SetJSON(ctx, a.State, KeyRestockDismissals, dismissals)
}

// Snapshots returns the most recent before-i-buy and restock summaries.
// Either may be nil when the corresponding view has never been used.
func (a *Analyzer) Snapshots(ctx context.Context) (*BeforeIBuySnapshot, *RestockSnapshot) {
	var beforeIBuy *BeforeIBuySnapshot
	var snap BeforeIBuySnapshot
	if kv.GetJSON(ctx, a.State, KeyBeforeIBuy, &snap) {
		beforeIBuy = &snap
	}

	var restock *RestockSnapshot
	var rs RestockSnapshot
	if kv.GetJSON(ctx, a.State, KeyRestock, &rs) {
		restock = &rs
	}
	return beforeIBuy, restock
}
