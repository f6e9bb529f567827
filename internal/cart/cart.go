// Package cart implements the session-scoped shopping cart: a mapping
// of movie ID to quantity that lives in Redis until checkout converts
// it into an order.  Cart values are plain data; all operations here
// are pure so they can be tested without a store.
package cart

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/iliyamo/movie-store/internal/model"
)

// Cart maps a canonical movie key to the quantity string the
// transport layer produced.  Keys are always the decimal form of the
// movie ID (see Key), so a movie has exactly one possible entry and
// lookups never need to try multiple key representations.
type Cart map[string]string

// Key returns the canonical cart key for a movie ID.
func Key(movieID uint64) string { return strconv.FormatUint(movieID, 10) }

// Set stores the quantity for a movie, overwriting any previous value.
// Repeated adds for the same movie replace rather than accumulate.
func (c Cart) Set(movieID uint64, quantity string) { c[Key(movieID)] = quantity }

// Quantity returns the numeric quantity stored for a movie.  Missing
// entries and entries that do not parse as an unsigned integer count
// as zero; a malformed quantity must never fail a total computation.
func (c Cart) Quantity(movieID uint64) uint64 {
	raw, ok := c[Key(movieID)]
	if !ok {
		return 0
	}
	n, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// MovieIDs returns the movie IDs present in the cart in ascending
// order.  Keys that do not parse as IDs are skipped.
func (c Cart) MovieIDs() []uint64 {
	ids := make([]uint64, 0, len(c))
	for k := range c {
		if id, err := strconv.ParseUint(k, 10, 64); err == nil {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Total computes sum(price * quantity) in cents over the given movies.
// Movies without a cart entry and entries with non-numeric quantities
// contribute zero.  Arithmetic saturates at MaxUint64 instead of
// wrapping, so a stored quantity large enough to overflow can never
// produce a total smaller than any of its lines.
func Total(c Cart, movies []model.Movie) uint64 {
	var total uint64
	for _, m := range movies {
		price := uint64(m.PriceCents)
		qty := c.Quantity(m.ID)
		if price == 0 || qty == 0 {
			continue
		}
		line := price * qty
		if line/qty != price {
			return math.MaxUint64
		}
		if total > math.MaxUint64-line {
			return math.MaxUint64
		}
		total += line
	}
	return total
}
