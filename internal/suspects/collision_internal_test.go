package suspects

import (
	"fmt"
	"github.com/stretchr/testify/require"
	"testing"
)

func TestIndex_collisionsAreChained(t *testing.T) {
	// Every clue lands in the same bucket.
	constant := func(string) uint64 { return 42 }

	pairs := make([]Association, 50)
	for i := range pairs {
		pairs[i] = Association{Clue: fmt.Sprintf("clue %d", i), Suspect: fmt.Sprintf("suspect %d", i)}
	}
	ix, err := newIndex(pairs, constant)
	require.NoError(t, err)
	require.Greater(t, len(ix.buckets), initialBuckets, "table should have grown")

	for _, pair := range pairs {
		require.Equal(t, pair.Suspect, ix.Lookup(pair.Clue))
	}
	require.Equal(t, Unknown, ix.Lookup("clue 50"))

	// Conflicts are still detected inside a single chain.
	_, err = newIndex(append(pairs, Association{Clue: "clue 7", Suspect: "someone else"}), constant)
	require.ErrorIs(t, err, ErrConfigurationConflict)
}

func TestIndex_loadFactor(t *testing.T) {
	pairs := make([]Association, 100)
	for i := range pairs {
		pairs[i] = Association{Clue: fmt.Sprintf("clue %d", i), Suspect: "Ana"}
	}
	ix, err := NewIndex(pairs)
	require.NoError(t, err)
	require.LessOrEqual(t, 4*ix.Len(), 3*len(ix.buckets))
	require.Zero(t, len(ix.buckets)&(len(ix.buckets)-1), "bucket count must be a power of two")
}
