// Package analytics computes the per-state trending report from the
// order/item ledger.  The aggregation is a pure function over rows
// already fetched from the database so the math can be tested without
// one.  The report is recomputed in full on every request; at larger
// volumes this endpoint would need caching.
package analytics

import "time"

// Sale is one order line joined with its owning order's state and
// creation date.  Rows are expected in ledger order (order date
// ascending, then item id) which fixes the tie-break below.
type Sale struct {
	State     string
	Movie     string
	Quantity  uint64
	OrderDate time.Time
}

// StateTrend is the per-state result record emitted by the report.
type StateTrend struct {
	Movie     string `json:"movie"`
	Purchases uint64 `json:"purchases"`
	Trending  bool   `json:"trending"`
}

// NoPurchases is the placeholder movie name for states without orders.
const NoPurchases = "No purchases"

const (
	// recentWindow bounds what counts as a recent purchase.
	recentWindow = 30 * 24 * time.Hour
	// trendingShare is the fraction of all-time volume that recent
	// volume must exceed for a movie to be trending.
	trendingShare = 0.3
)

// TrendingByState determines, for each of the 50 states, the
// best-selling movie by total quantity and whether it is trending:
// its quantity sold within the last 30 days (relative to now) exceeds
// 30% of its all-time quantity in that state.  When two movies tie on
// total quantity the first one encountered in row order wins.  States
// with no sales report NoPurchases with zero purchases.
func TrendingByState(rows []Sale, now time.Time) map[string]StateTrend {
	byState := make(map[string][]Sale, len(States))
	for _, s := range rows {
		byState[s.State] = append(byState[s.State], s)
	}

	cutoff := now.Add(-recentWindow)
	out := make(map[string]StateTrend, len(States))
	for _, state := range States {
		sales := byState[state]
		if len(sales) == 0 {
			out[state] = StateTrend{Movie: NoPurchases, Purchases: 0, Trending: false}
			continue
		}

		totals := make(map[string]uint64, len(sales))
		recents := make(map[string]uint64, len(sales))
		order := make([]string, 0, len(sales))
		for _, s := range sales {
			if _, seen := totals[s.Movie]; !seen {
				order = append(order, s.Movie)
			}
			totals[s.Movie] += s.Quantity
			if !s.OrderDate.Before(cutoff) {
				recents[s.Movie] += s.Quantity
			}
		}

		best := order[0]
		for _, name := range order[1:] {
			if totals[name] > totals[best] {
				best = name
			}
		}

		total := totals[best]
		out[state] = StateTrend{
			Movie:     best,
			Purchases: total,
			Trending:  float64(recents[best]) > trendingShare*float64(total),
		}
	}
	return out
}
