package report_test

import (
	"github.com/myrjola/detectivequest/internal/casebook"
	"github.com/myrjola/detectivequest/internal/investigation"
	"github.com/myrjola/detectivequest/internal/ledger"
	"github.com/myrjola/detectivequest/internal/report"
	"github.com/stretchr/testify/require"
	"io"
	"strings"
	"testing"
)

func plainStyles() report.Styles {
	// Output that is not a terminal gets no escape sequences.
	return report.NewWriterStyles(io.Discard)
}

func TestStyles_Report(t *testing.T) {
	got := plainStyles().Report(investigation.Report{
		Clues: []investigation.ClueLine{
			{Clue: "mud", Suspect: "Carlos"},
			{Clue: "red stain", Suspect: "Maria"},
		},
		Tally: []ledger.Entry{
			{Suspect: "Maria", Count: 2},
			{Suspect: "Carlos", Count: 1},
		},
	})
	require.Equal(t, `Collected clues (alphabetical):
  mud -> Carlos
  red stain -> Maria

Suspects and their clues:
  Maria: 2 clues
  Carlos: 1 clue
`, got)
}

func TestStyles_Verdict(t *testing.T) {
	tests := []struct {
		name    string
		verdict investigation.Verdict
		want    []string
	}{
		{
			name:    "sustained",
			verdict: investigation.Verdict{Outcome: investigation.OutcomeSustained, Accused: "Maria", Count: 2},
			want:    []string{"accusation against Maria is sustained", "2 clues found"},
		},
		{
			name:    "insufficient",
			verdict: investigation.Verdict{Outcome: investigation.OutcomeInsufficient, Accused: "Ana", Count: 1},
			want:    []string{"Insufficient evidence against Ana", "At least 2 clues", "Clues found for Ana: 1."},
		},
		{
			name:    "no evidence",
			verdict: investigation.Verdict{Outcome: investigation.OutcomeNoEvidence, Accused: "", Count: 0},
			want:    []string{"No clue was collected"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := plainStyles().Verdict(tt.verdict)
			require.True(t, strings.HasPrefix(got, "Final result\n"))
			for _, want := range tt.want {
				require.Contains(t, got, want)
			}
		})
	}
}

func TestStyles_Casebook(t *testing.T) {
	cb, err := casebook.Parse([]byte(`
title: Small Case
mansion:
  name: Hall
  left:
    name: Garden
    clue: mud
  right:
    name: Attic
    clue: feather
associations:
  - clue: mud
    suspect: Carlos
`))
	require.NoError(t, err)
	entrance, _, err := cb.Open()
	require.NoError(t, err)

	got := plainStyles().Casebook(cb, entrance)
	require.Equal(t, `Small Case

Rooms:
  Hall
    Garden: mud
    Attic: feather

Associations:
  mud -> Carlos

Suspects:
  Carlos

Clues without a suspect:
  feather
`, got)
}

func TestStyles_Discovery(t *testing.T) {
	require.Equal(t, "Clue found: mud\nIt points at: Carlos\n", plainStyles().Discovery("mud", "Carlos"))
}
