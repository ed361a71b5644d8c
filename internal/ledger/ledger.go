// Package ledger tallies how many clues point at each suspect and decides whether an accusation holds.
package ledger

import (
	"github.com/myrjola/detectivequest/internal/errors"
	"iter"
	"log/slog"
	"slices"
)

// SustainThreshold is the number of attributed clues needed to sustain an accusation.
const SustainThreshold = 2

var ErrCapacityExceeded = errors.NewSentinel("too many distinct suspects")

// Entry is a suspect and the number of clues attributed to them.
type Entry struct {
	Suspect string
	Count   int
}

// Ledger counts clue attributions per suspect, remembering the order in which suspects were first attributed.
//
// A Ledger is not safe for concurrent use.
type Ledger struct {
	maxSuspects int
	positions   map[string]int
	entries     []Entry
}

// New creates a Ledger holding at most maxSuspects distinct suspects. Zero or a negative value means no limit.
func New(maxSuspects int) *Ledger {
	return &Ledger{
		maxSuspects: max(maxSuspects, 0),
		positions:   make(map[string]int),
		entries:     nil,
	}
}

// Admits reports whether Attribute would succeed for suspect.
func (l *Ledger) Admits(suspect string) bool {
	if _, ok := l.positions[suspect]; ok {
		return true
	}
	return l.maxSuspects == 0 || len(l.entries) < l.maxSuspects
}

// Attribute adds one clue to suspect's tally and returns the new count.
//
// A suspect that would exceed the distinct-suspect limit is refused with ErrCapacityExceeded and the ledger is left
// unchanged.
func (l *Ledger) Attribute(suspect string) (int, error) {
	if pos, ok := l.positions[suspect]; ok {
		l.entries[pos].Count++
		return l.entries[pos].Count, nil
	}
	if !l.Admits(suspect) {
		return 0, errors.Wrap(ErrCapacityExceeded, "attribute clue",
			slog.String("suspect", suspect),
			slog.Int("maxSuspects", l.maxSuspects),
		)
	}
	l.positions[suspect] = len(l.entries)
	l.entries = append(l.entries, Entry{Suspect: suspect, Count: 1})
	return 1, nil
}

// CountFor returns the number of clues attributed to suspect, zero if there are none.
func (l *Ledger) CountFor(suspect string) int {
	if pos, ok := l.positions[suspect]; ok {
		return l.entries[pos].Count
	}
	return 0
}

// Sustains applies the verdict rule: the accusation holds when at least SustainThreshold clues point at accused.
// It also returns the count the decision was based on.
func (l *Ledger) Sustains(accused string) (bool, int) {
	count := l.CountFor(accused)
	return count >= SustainThreshold, count
}

// All yields the tally entries in the order suspects were first attributed.
func (l *Ledger) All() iter.Seq[Entry] {
	return func(yield func(Entry) bool) {
		for _, entry := range l.entries {
			if !yield(entry) {
				return
			}
		}
	}
}

// Entries returns a snapshot of the tally in first-attribution order.
func (l *Ledger) Entries() []Entry {
	return slices.Clone(l.entries)
}

// Len returns the number of distinct suspects.
func (l *Ledger) Len() int {
	return len(l.entries)
}

// Total returns the sum of all counts.
func (l *Ledger) Total() int {
	total := 0
	for _, entry := range l.entries {
		total += entry.Count
	}
	return total
}
