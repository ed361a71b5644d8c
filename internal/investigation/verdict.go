package investigation

import "github.com/myrjola/detectivequest/internal/ledger"

// Outcome classifies a verdict.
type Outcome int

const (
	// OutcomeNoEvidence means no clue was collected, so no accusation could be weighed.
	OutcomeNoEvidence Outcome = iota
	// OutcomeInsufficient means fewer than two clues point at the accused.
	OutcomeInsufficient
	// OutcomeSustained means enough clues point at the accused.
	OutcomeSustained
)

func (o Outcome) String() string {
	switch o {
	case OutcomeNoEvidence:
		return "no evidence"
	case OutcomeInsufficient:
		return "insufficient"
	case OutcomeSustained:
		return "sustained"
	}
	return "invalid"
}

// Verdict is the ruling on an accusation.
type Verdict struct {
	Outcome Outcome
	Accused string
	// Count is the number of clue discoveries attributed to the accused.
	Count int
}

// ClueLine is a collected clue and the suspect it points at.
type ClueLine struct {
	Clue    string
	Suspect string
}

// Report is the end-of-investigation summary.
type Report struct {
	// Clues are in ascending order.
	Clues []ClueLine
	// Tally is in the order suspects were first implicated.
	Tally []ledger.Entry
}
