package suspects_test

import (
	"fmt"
	"github.com/myrjola/detectivequest/internal/suspects"
	"github.com/stretchr/testify/require"
	"slices"
	"testing"
)

var mansionAssociations = []suspects.Association{
	{Clue: "Love letter signed with 'J'", Suspect: "João"},
	{Clue: "Red paint stains on the carpet", Suspect: "Maria"},
	{Clue: "Broken gold watch", Suspect: "Carlos"},
	{Clue: "Black dog hair", Suspect: "Ana"},
	{Clue: "Strong smell of perfume", Suspect: "Pedro"},
	{Clue: "Book with torn pages", Suspect: "João"},
	{Clue: "Half-smoked cigarette", Suspect: "Maria"},
	{Clue: "Muddy footprints", Suspect: "Carlos"},
	{Clue: "Strand of blond hair", Suspect: "Ana"},
	{Clue: "Jewelry receipt", Suspect: "Pedro"},
}

func TestIndex_Lookup(t *testing.T) {
	ix, err := suspects.NewIndex(mansionAssociations)
	require.NoError(t, err)
	require.Equal(t, len(mansionAssociations), ix.Len())

	tests := []struct {
		name string
		clue string
		want string
	}{
		{name: "direct hit", clue: "Broken gold watch", want: "Carlos"},
		{name: "many-to-one first", clue: "Love letter signed with 'J'", want: "João"},
		{name: "many-to-one second", clue: "Book with torn pages", want: "João"},
		{name: "miss", clue: "unlisted clue text", want: suspects.Unknown},
		{name: "exact match only", clue: "broken gold watch", want: suspects.Unknown},
		{name: "no trimming", clue: "Broken gold watch ", want: suspects.Unknown},
		{name: "empty", clue: "", want: suspects.Unknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			// Repeated lookups always agree.
			for range 3 {
				require.Equal(t, tt.want, ix.Lookup(tt.clue))
			}
		})
	}
}

func TestNewIndex_validation(t *testing.T) {
	tests := []struct {
		name       string
		pairs      []suspects.Association
		wantErr    error
		wantErrors int
	}{
		{
			name:  "empty seed",
			pairs: nil,
		},
		{
			name: "identical duplicate is tolerated",
			pairs: []suspects.Association{
				{Clue: "red stain", Suspect: "Maria"},
				{Clue: "red stain", Suspect: "Maria"},
			},
		},
		{
			name: "conflict is rejected",
			pairs: []suspects.Association{
				{Clue: "red stain", Suspect: "Maria"},
				{Clue: "red stain", Suspect: "Pedro"},
			},
			wantErr:    suspects.ErrConfigurationConflict,
			wantErrors: 1,
		},
		{
			name: "every conflict is reported",
			pairs: []suspects.Association{
				{Clue: "red stain", Suspect: "Maria"},
				{Clue: "mud", Suspect: "Carlos"},
				{Clue: "red stain", Suspect: "Pedro"},
				{Clue: "mud", Suspect: "Ana"},
				{Clue: "red stain", Suspect: "Ana"},
			},
			wantErr:    suspects.ErrConfigurationConflict,
			wantErrors: 3,
		},
		{
			name: "empty suspect",
			pairs: []suspects.Association{
				{Clue: "red stain", Suspect: ""},
			},
			wantErr:    suspects.ErrInvalidAssociation,
			wantErrors: 1,
		},
		{
			name: "empty clue",
			pairs: []suspects.Association{
				{Clue: "", Suspect: "Maria"},
			},
			wantErr:    suspects.ErrInvalidAssociation,
			wantErrors: 1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ix, err := suspects.NewIndex(tt.pairs)
			if tt.wantErr == nil {
				require.NoError(t, err)
				require.NotNil(t, ix)
				return
			}
			require.ErrorIs(t, err, tt.wantErr)
			require.Nil(t, ix)
			joined, ok := err.(interface{ Unwrap() []error })
			require.True(t, ok, "expected joined errors")
			require.Len(t, joined.Unwrap(), tt.wantErrors)
		})
	}
}

func TestIndex_growthKeepsEverything(t *testing.T) {
	pairs := make([]suspects.Association, 1000)
	for i := range pairs {
		pairs[i] = suspects.Association{
			Clue:    fmt.Sprintf("clue %d", i),
			Suspect: fmt.Sprintf("suspect %d", i%7),
		}
	}
	ix, err := suspects.NewIndex(pairs)
	require.NoError(t, err)
	require.Equal(t, len(pairs), ix.Len())
	for _, pair := range pairs {
		require.Equal(t, pair.Suspect, ix.Lookup(pair.Clue))
	}
	require.Len(t, ix.Suspects(), 7)
}

func TestIndex_Associations(t *testing.T) {
	ix, err := suspects.NewIndex([]suspects.Association{
		{Clue: "b", Suspect: "Pedro"},
		{Clue: "a", Suspect: "Ana"},
		{Clue: "b", Suspect: "Pedro"},
		{Clue: "c", Suspect: "Ana"},
	})
	require.NoError(t, err)

	require.Equal(t, []suspects.Association{
		{Clue: "b", Suspect: "Pedro"},
		{Clue: "a", Suspect: "Ana"},
		{Clue: "c", Suspect: "Ana"},
	}, slices.Collect(ix.Associations()))
	require.Equal(t, []string{"Ana", "Pedro"}, ix.Suspects())
}
