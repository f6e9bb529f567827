package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestTrendingByState(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	recent := now.Add(-5 * 24 * time.Hour)
	old := now.Add(-90 * 24 * time.Hour)

	t.Run("state with no orders reports the placeholder", func(t *testing.T) {
		out := TrendingByState(nil, now)
		require.Len(t, out, len(States))
		require.Equal(t, StateTrend{Movie: NoPurchases, Purchases: 0, Trending: false}, out["Wyoming"])
	})

	t.Run("all recent volume is trending", func(t *testing.T) {
		rows := []Sale{
			{State: "Georgia", Movie: "Alien", Quantity: 100, OrderDate: recent},
		}
		out := TrendingByState(rows, now)
		require.Equal(t, StateTrend{Movie: "Alien", Purchases: 100, Trending: true}, out["Georgia"])
	})

	t.Run("old volume alone is not trending", func(t *testing.T) {
		rows := []Sale{
			{State: "Georgia", Movie: "Alien", Quantity: 100, OrderDate: old},
		}
		out := TrendingByState(rows, now)
		require.Equal(t, StateTrend{Movie: "Alien", Purchases: 100, Trending: false}, out["Georgia"])
	})

	t.Run("recent share must exceed thirty percent", func(t *testing.T) {
		rows := []Sale{
			{State: "Texas", Movie: "Heat", Quantity: 70, OrderDate: old},
			{State: "Texas", Movie: "Heat", Quantity: 30, OrderDate: recent},
		}
		// 30 recent of 100 total is exactly 30%, not above it.
		out := TrendingByState(rows, now)
		require.Equal(t, StateTrend{Movie: "Heat", Purchases: 100, Trending: false}, out["Texas"])

		rows = append(rows, Sale{State: "Texas", Movie: "Heat", Quantity: 1, OrderDate: recent})
		out = TrendingByState(rows, now)
		require.Equal(t, StateTrend{Movie: "Heat", Purchases: 101, Trending: true}, out["Texas"])
	})

	t.Run("best seller picked by total quantity across movies", func(t *testing.T) {
		rows := []Sale{
			{State: "Ohio", Movie: "Alien", Quantity: 3, OrderDate: old},
			{State: "Ohio", Movie: "Heat", Quantity: 5, OrderDate: old},
			{State: "Ohio", Movie: "Alien", Quantity: 1, OrderDate: recent},
		}
		out := TrendingByState(rows, now)
		require.Equal(t, "Heat", out["Ohio"].Movie)
		require.Equal(t, uint64(5), out["Ohio"].Purchases)
	})

	t.Run("ties break to the first movie encountered in row order", func(t *testing.T) {
		rows := []Sale{
			{State: "Maine", Movie: "Alien", Quantity: 4, OrderDate: old},
			{State: "Maine", Movie: "Heat", Quantity: 4, OrderDate: recent},
		}
		out := TrendingByState(rows, now)
		require.Equal(t, "Alien", out["Maine"].Movie)
	})

	t.Run("states are independent", func(t *testing.T) {
		rows := []Sale{
			{State: "Georgia", Movie: "Alien", Quantity: 100, OrderDate: recent},
			{State: "Texas", Movie: "Heat", Quantity: 2, OrderDate: old},
		}
		out := TrendingByState(rows, now)
		require.True(t, out["Georgia"].Trending)
		require.False(t, out["Texas"].Trending)
		require.Equal(t, NoPurchases, out["Ohio"].Movie)
	})

	t.Run("unknown state values are ignored", func(t *testing.T) {
		rows := []Sale{
			{State: "Atlantis", Movie: "Alien", Quantity: 9, OrderDate: recent},
		}
		out := TrendingByState(rows, now)
		require.Len(t, out, len(States))
		for _, st := range out {
			require.Equal(t, NoPurchases, st.Movie)
		}
	})
}

func TestStatesListIsComplete(t *testing.T) {
	require.Len(t, States, 50)
	seen := make(map[string]bool, len(States))
	for _, s := range States {
		require.False(t, seen[s], "duplicate state %q", s)
		seen[s] = true
	}
}
