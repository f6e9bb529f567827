package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPetitionVotes(t *testing.T) {
	p := &Petition{ID: 1, MovieTitle: "Stalker", Votes: []uint64{3, 7}}

	require.Equal(t, 2, p.VoteCount())
	require.True(t, p.HasUserVoted(3))
	require.True(t, p.HasUserVoted(7))
	require.False(t, p.HasUserVoted(9))

	t.Run("empty petition has no votes", func(t *testing.T) {
		var empty Petition
		require.Equal(t, 0, empty.VoteCount())
		require.False(t, empty.HasUserVoted(1))
	})
}
