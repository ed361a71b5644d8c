package ledger_test

import (
	"github.com/myrjola/detectivequest/internal/ledger"
	"github.com/stretchr/testify/require"
	"slices"
	"testing"
)

func TestLedger_CountFor(t *testing.T) {
	l := ledger.New(0)
	require.Zero(t, l.CountFor("Maria"))

	for i := range 5 {
		count, err := l.Attribute("Maria")
		require.NoError(t, err)
		require.Equal(t, i+1, count)
	}
	require.Equal(t, 5, l.CountFor("Maria"))
	require.Zero(t, l.CountFor("maria"), "names are matched exactly")
}

func TestLedger_insertionOrder(t *testing.T) {
	l := ledger.New(0)
	for _, suspect := range []string{"Pedro", "Ana", "Pedro", "Unknown", "Ana", "Pedro"} {
		_, err := l.Attribute(suspect)
		require.NoError(t, err)
	}

	want := []ledger.Entry{
		{Suspect: "Pedro", Count: 3},
		{Suspect: "Ana", Count: 2},
		{Suspect: "Unknown", Count: 1},
	}
	require.Equal(t, want, l.Entries())
	require.Equal(t, want, slices.Collect(l.All()))
	require.Equal(t, 3, l.Len())
	require.Equal(t, 6, l.Total())
}

func TestLedger_Entries_isSnapshot(t *testing.T) {
	l := ledger.New(0)
	_, err := l.Attribute("Ana")
	require.NoError(t, err)

	entries := l.Entries()
	entries[0].Count = 100
	require.Equal(t, 1, l.CountFor("Ana"))
}

func TestLedger_capacity(t *testing.T) {
	l := ledger.New(2)
	_, err := l.Attribute("João")
	require.NoError(t, err)
	_, err = l.Attribute("Maria")
	require.NoError(t, err)

	require.False(t, l.Admits("Carlos"))
	count, err := l.Attribute("Carlos")
	require.ErrorIs(t, err, ledger.ErrCapacityExceeded)
	require.Zero(t, count)
	require.Zero(t, l.CountFor("Carlos"))
	require.Equal(t, 2, l.Len(), "refused suspect must not be stored")

	// Known suspects keep counting at capacity.
	require.True(t, l.Admits("Maria"))
	count, err = l.Attribute("Maria")
	require.NoError(t, err)
	require.Equal(t, 2, count)
}

func TestLedger_unbounded(t *testing.T) {
	for _, limit := range []int{0, -3} {
		l := ledger.New(limit)
		for _, suspect := range []string{"a", "b", "c", "d", "e", "f", "g"} {
			_, err := l.Attribute(suspect)
			require.NoError(t, err)
		}
		require.Equal(t, 7, l.Len())
	}
}

func TestLedger_Sustains(t *testing.T) {
	tests := []struct {
		name          string
		attributions  []string
		accused       string
		wantSustained bool
		wantCount     int
	}{
		{name: "no clues", attributions: nil, accused: "Maria", wantSustained: false, wantCount: 0},
		{name: "one clue", attributions: []string{"Maria"}, accused: "Maria", wantSustained: false, wantCount: 1},
		{name: "two clues", attributions: []string{"Maria", "Maria"}, accused: "Maria", wantSustained: true, wantCount: 2},
		{name: "three clues", attributions: []string{"Maria", "Ana", "Maria", "Maria"}, accused: "Maria",
			wantSustained: true, wantCount: 3},
		{name: "wrong suspect", attributions: []string{"Maria", "Maria"}, accused: "Ana", wantSustained: false,
			wantCount: 0},
		{name: "unknown suspect", attributions: []string{"Unknown", "Unknown"}, accused: "Unknown",
			wantSustained: true, wantCount: 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			l := ledger.New(0)
			for _, suspect := range tt.attributions {
				_, err := l.Attribute(suspect)
				require.NoError(t, err)
			}
			sustained, count := l.Sustains(tt.accused)
			require.Equal(t, tt.wantSustained, sustained)
			require.Equal(t, tt.wantCount, count)
			require.Equal(t, count >= ledger.SustainThreshold, sustained)
		})
	}
}
