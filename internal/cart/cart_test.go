package cart

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/iliyamo/movie-store/internal/model"
)

func TestTotal(t *testing.T) {
	movies := []model.Movie{
		{ID: 5, Name: "Movie Five", PriceCents: 1000},
		{ID: 7, Name: "Movie Seven", PriceCents: 250},
	}

	t.Run("sums price times quantity over resolvable entries", func(t *testing.T) {
		c := Cart{"5": "2", "7": "3"}
		require.Equal(t, uint64(2750), Total(c, movies))
	})

	t.Run("single entry", func(t *testing.T) {
		c := Cart{"5": "2"}
		require.Equal(t, uint64(2000), Total(c, movies))
	})

	t.Run("non-numeric quantity contributes zero", func(t *testing.T) {
		c := Cart{"5": "abc"}
		require.Equal(t, uint64(0), Total(c, movies))
	})

	t.Run("movie without a cart entry contributes zero", func(t *testing.T) {
		c := Cart{"7": "1"}
		require.Equal(t, uint64(250), Total(c, movies))
	})

	t.Run("empty cart totals zero", func(t *testing.T) {
		require.Equal(t, uint64(0), Total(Cart{}, movies))
	})

	t.Run("cart keys that resolve to no movie contribute zero", func(t *testing.T) {
		c := Cart{"999": "4", "5": "1"}
		require.Equal(t, uint64(1000), Total(c, movies))
	})

	t.Run("overflowing line saturates instead of wrapping", func(t *testing.T) {
		// 36893488147419103 * 1000 exceeds uint64; a wrapped total
		// would come out near zero and understate the order.
		c := Cart{"5": "36893488147419103"}
		require.Equal(t, uint64(math.MaxUint64), Total(c, movies))
	})

	t.Run("overflowing sum of lines saturates", func(t *testing.T) {
		big := []model.Movie{
			{ID: 1, PriceCents: math.MaxUint32},
			{ID: 2, PriceCents: math.MaxUint32},
		}
		// each line is ~1.03e19 and fits; their sum does not
		c := Cart{
			"1": "2400000000",
			"2": "2400000000",
		}
		require.Equal(t, uint64(math.MaxUint64), Total(c, big))
	})
}

func TestSetOverwrites(t *testing.T) {
	c := Cart{}
	c.Set(5, "2")
	c.Set(5, "9")
	require.Equal(t, Cart{"5": "9"}, c)
	require.Equal(t, uint64(9), c.Quantity(5))
}

func TestQuantity(t *testing.T) {
	c := Cart{"5": " 3 ", "7": "-1", "9": ""}
	require.Equal(t, uint64(3), c.Quantity(5), "surrounding whitespace is tolerated")
	require.Equal(t, uint64(0), c.Quantity(7), "negative values count as zero")
	require.Equal(t, uint64(0), c.Quantity(9), "empty values count as zero")
	require.Equal(t, uint64(0), c.Quantity(42), "missing keys count as zero")
}

func TestMovieIDs(t *testing.T) {
	c := Cart{"7": "1", "5": "2", "bogus": "3"}
	require.Equal(t, []uint64{5, 7}, c.MovieIDs())
}

func TestClearedCartTotalsZero(t *testing.T) {
	movies := []model.Movie{{ID: 5, PriceCents: 1000}}
	c := Cart{"5": "2"}
	require.NotZero(t, Total(c, movies))

	// clearing is modelled as replacing the value with an empty cart
	c = Cart{}
	require.Equal(t, uint64(0), Total(c, movies))
}
