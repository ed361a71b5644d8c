// Package suspects resolves clue descriptions to the suspect they implicate.
package suspects

import (
	"github.com/cespare/xxhash/v2"
	"github.com/myrjola/detectivequest/internal/errors"
	"iter"
	"log/slog"
	"slices"
)

// Unknown is the suspect returned for clues without an association.
const Unknown = "Unknown"

var (
	ErrConfigurationConflict = errors.NewSentinel("clue associated with more than one suspect")
	ErrInvalidAssociation    = errors.NewSentinel("invalid association")
)

// Association links a clue description to the suspect it implicates.
type Association struct {
	Clue    string `yaml:"clue"`
	Suspect string `yaml:"suspect"`
}

const (
	noEntry        int32 = -1
	initialBuckets       = 8
)

type entry struct {
	Association
	next int32
}

// Index is a read-only hash table from clue text to suspect.
//
// Collisions are chained. Every chain link is an index into the entry arena, which also preserves the seed order.
// An Index never changes after [NewIndex] returns, so it may be shared between sessions.
type Index struct {
	hash    func(string) uint64
	buckets []int32
	entries []entry
}

// NewIndex seeds an Index with the given associations.
//
// Several clues may point to the same suspect, and repeating an identical association is harmless. A clue associated
// with two different suspects is a configuration error: the seed is rejected and the returned error contains one
// ErrConfigurationConflict per offending association. Empty clues or suspects are rejected with
// ErrInvalidAssociation.
func NewIndex(pairs []Association) (*Index, error) {
	return newIndex(pairs, xxhash.Sum64String)
}

func newIndex(pairs []Association, hash func(string) uint64) (*Index, error) {
	ix := &Index{
		hash:    hash,
		buckets: emptyBuckets(initialBuckets),
		entries: make([]entry, 0, len(pairs)),
	}

	var errorList []error
	for i, pair := range pairs {
		if pair.Clue == "" || pair.Suspect == "" {
			errorList = append(errorList, errors.Wrap(ErrInvalidAssociation, "empty clue or suspect",
				slog.Int("position", i),
				slog.String("clue", pair.Clue),
				slog.String("suspect", pair.Suspect),
			))
			continue
		}

		if existing := ix.find(pair.Clue); existing != noEntry {
			if current := ix.entries[existing].Suspect; current != pair.Suspect {
				errorList = append(errorList, errors.Wrap(ErrConfigurationConflict, "conflicting association",
					slog.Int("position", i),
					slog.String("clue", pair.Clue),
					slog.String("suspect", current),
					slog.String("conflictingSuspect", pair.Suspect),
				))
			}
			continue
		}

		ix.insert(pair)
	}

	if len(errorList) != 0 {
		return nil, errors.Join(errorList...)
	}
	return ix, nil
}

func emptyBuckets(n int) []int32 {
	buckets := make([]int32, n)
	for i := range buckets {
		buckets[i] = noEntry
	}
	return buckets
}

func (ix *Index) bucket(clue string) int {
	// The bucket count is a power of two.
	return int(ix.hash(clue) & uint64(len(ix.buckets)-1)) //nolint:gosec // masked to the bucket count
}

func (ix *Index) find(clue string) int32 {
	for e := ix.buckets[ix.bucket(clue)]; e != noEntry; e = ix.entries[e].next {
		if ix.entries[e].Clue == clue {
			return e
		}
	}
	return noEntry
}

func (ix *Index) insert(pair Association) {
	// Keep the load factor at or below 3/4.
	if 4*(len(ix.entries)+1) > 3*len(ix.buckets) {
		ix.grow()
	}
	id := int32(len(ix.entries)) //nolint:gosec // seed lists are small
	b := ix.bucket(pair.Clue)
	ix.entries = append(ix.entries, entry{Association: pair, next: ix.buckets[b]})
	ix.buckets[b] = id
}

func (ix *Index) grow() {
	ix.buckets = emptyBuckets(2 * len(ix.buckets))
	for id := range ix.entries {
		b := ix.bucket(ix.entries[id].Clue)
		ix.entries[id].next = ix.buckets[b]
		ix.buckets[b] = int32(id) //nolint:gosec // seed lists are small
	}
}

// Lookup returns the suspect associated with exactly this clue text, or Unknown.
func (ix *Index) Lookup(clue string) string {
	if e := ix.find(clue); e != noEntry {
		return ix.entries[e].Suspect
	}
	return Unknown
}

// Len returns the number of distinct clues in the index.
func (ix *Index) Len() int {
	return len(ix.entries)
}

// Associations yields the associations in seed order, skipping repeated ones.
func (ix *Index) Associations() iter.Seq[Association] {
	return func(yield func(Association) bool) {
		for _, e := range ix.entries {
			if !yield(e.Association) {
				return
			}
		}
	}
}

// Suspects returns the distinct suspect names in ascending order.
func (ix *Index) Suspects() []string {
	names := make([]string, 0, len(ix.entries))
	for _, e := range ix.entries {
		names = append(names, e.Suspect)
	}
	slices.Sort(names)
	return slices.Compact(names)
}
