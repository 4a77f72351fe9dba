package collections

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/findez/findez/internal/kv"
	"github.com/findez/findez/internal/model"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newTestAnalyzer() (*Analyzer, *fakeClock) {
	// Start at a day-bucket boundary so hour-scale advances stay
	// inside the current bucket.
	clock := &fakeClock{now: time.UnixMilli(19_675 * msPerDay)}
	return &Analyzer{State: kv.NewMemory(), Clock: clock}, clock
}

func TestAnalyzeRestockBuckets(t *testing.T) {
	a, _ := newTestAnalyzer()
	items := []model.Item{
		item("Dish soap", "Cleaning", "Kitchen", 0),
		item("Paper towels", "Home", "Pantry", 1),
		item("Batteries", "Electronics", "Closet", 6),
	}

	result := a.AnalyzeRestock(context.Background(), items)
	require.Len(t, result.Urgent, 1)
	assert.Equal(t, "Dish soap", result.Urgent[0].Name)
	require.Len(t, result.Soon, 1)
	assert.Equal(t, "Paper towels", result.Soon[0].Name)
	assert.Empty(t, result.Forgotten)
}

func TestDismissalSuppressionAndRevival(t *testing.T) {
	a, clock := newTestAnalyzer()
	x := item("Dish soap", "Cleaning", "Kitchen", 0)

	a.DismissRestockItem(context.Background(), x)

	clock.Advance(time.Hour)
	result := a.AnalyzeRestock(context.Background(), []model.Item{x})
	assert.Empty(t, result.Urgent, "dismissed item should be suppressed")

	// A quantity change revives the item even inside the window.
	clock.Advance(22 * time.Hour)
	x.Quantity = 1
	result = a.AnalyzeRestock(context.Background(), []model.Item{x})
	require.Len(t, result.Soon, 1)
	assert.Equal(t, "Dish soap", result.Soon[0].Name)
}

func TestDismissalExpiry(t *testing.T) {
	a, clock := newTestAnalyzer()
	x := item("Dish soap", "Cleaning", "Kitchen", 0)

	a.DismissRestockItem(context.Background(), x)

	clock.Advance(25 * time.Hour)
	result := a.AnalyzeRestock(context.Background(), []model.Item{x})
	require.Len(t, result.Urgent, 1)
	assert.Equal(t, "Dish soap", result.Urgent[0].Name)
}

func TestForgottenRequiresRepeatObservationAcrossDays(t *testing.T) {
	a, clock := newTestAnalyzer()
	x := item("Dish soap", "Cleaning", "Kitchen", 0)

	result := a.AnalyzeRestock(context.Background(), []model.Item{x})
	assert.Empty(t, result.Forgotten, "single sighting is not forgotten")

	clock.Advance(24 * time.Hour)
	result = a.AnalyzeRestock(context.Background(), []model.Item{x})
	require.Len(t, result.Forgotten, 1)
	assert.Equal(t, "Dish soap", result.Forgotten[0].Name)
}

func TestHistorySeenCountOncePerDay(t *testing.T) {
	a, clock := newTestAnalyzer()
	ctx := context.Background()
	x := item("Dish soap", "Cleaning", "Kitchen", 0)

	a.AnalyzeRestock(ctx, []model.Item{x})
	clock.Advance(time.Hour)
	a.AnalyzeRestock(ctx, []model.Item{x})

	history := map[string]HistoryEntry{}
	require.True(t, kv.GetJSON(ctx, a.State, KeyRestockHistory, &history))
	assert.Equal(t, 1, history[x.ItemID].SeenCount)

	// Next day bucket bumps the count exactly once more.
	clock.Advance(24 * time.Hour)
	a.AnalyzeRestock(ctx, []model.Item{x})
	clock.Advance(time.Hour)
	a.AnalyzeRestock(ctx, []model.Item{x})

	require.True(t, kv.GetJSON(ctx, a.State, KeyRestockHistory, &history))
	assert.Equal(t, 2, history[x.ItemID].SeenCount)
}

func TestForgottenCap(t *testing.T) {
	a, clock := newTestAnalyzer()
	ctx := context.Background()

	var items []model.Item
	for _, name := range []string{
		"a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k", "l", "m", "n",
	} {
		items = append(items, item(name, "Home", "Pantry", 0))
	}

	a.AnalyzeRestock(ctx, items)
	clock.Advance(24 * time.Hour)
	result := a.AnalyzeRestock(ctx, items)
	require.Len(t, result.Forgotten, 12)
	for i, m := range result.Forgotten {
		assert.Equal(t, items[i].Name, m.Name, "forgotten preserves input order")
	}
}

func TestRestockSnapshotsPersisted(t *testing.T) {
	a, clock := newTestAnalyzer()
	ctx := context.Background()

	before, restock := a.Snapshots(ctx)
	assert.Nil(t, before)
	assert.Nil(t, restock)

	a.RunBeforeIBuy(ctx, "AA batteries", nil, []model.Item{
		item("AA batteries", "Home", "Closet", 8),
		item("Rechargeable AA", "Home", "Drawer", 4),
	})
	a.AnalyzeRestock(ctx, []model.Item{
		item("Dish soap", "Cleaning", "Kitchen", 0),
		item("Paper towels", "Home", "Pantry", 1),
	})

	before, restock = a.Snapshots(ctx)
	require.NotNil(t, before)
	assert.Equal(t, 1, before.ExactCount)
	assert.Equal(t, 1, before.SimilarCount)
	assert.Equal(t, "AA batteries", before.Query)
	assert.Equal(t, clock.Now().UnixMilli(), before.UsedAtMs)

	require.NotNil(t, restock)
	assert.Equal(t, 2, restock.LowOrEmptyCount)
	assert.Equal(t, 0, restock.ForgottenCount)
}

func TestAnalyzerDegradesWithoutState(t *testing.T) {
	a := &Analyzer{State: failingStore{}, Clock: SystemClock}
	x := item("Dish soap", "Cleaning", "Kitchen", 0)

	// Storage failures never surface; the analysis still runs fresh.
	result := a.AnalyzeRestock(context.Background(), []model.Item{x})
	require.Len(t, result.Urgent, 1)
	a.DismissRestockItem(context.Background(), x)
}

type failingStore struct{}

func (failingStore) Get(context.Context, string) ([]byte, error) {
	return nil, assert.AnError
}

func (failingStore) Set(context.Context, string, []byte) error { return assert.AnError }

func (failingStore) Delete(context.Context, string) error { return assert.AnError }
