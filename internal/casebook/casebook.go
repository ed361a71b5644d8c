// Package casebook loads investigation scenarios: the mansion layout and the clue-to-suspect associations.
package casebook

import (
	"bytes"
	_ "embed"
	"github.com/myrjola/detectivequest/internal/errors"
	"github.com/myrjola/detectivequest/internal/mansion"
	"github.com/myrjola/detectivequest/internal/suspects"
	"gopkg.in/yaml.v3"
	"iter"
	"log/slog"
	"os"
	"unicode/utf8"
)

const (
	// MaxClueLength bounds clue descriptions, in runes.
	MaxClueLength = 100
	// MaxNameLength bounds room and suspect names, in runes.
	MaxNameLength = 50
)

var ErrInvalidCasebook = errors.NewSentinel("invalid casebook")

//go:embed default.yaml
var defaultCasebook []byte

// Casebook is a scenario file.
type Casebook struct {
	Title        string                 `yaml:"title"`
	Mansion      mansion.Layout         `yaml:"mansion"`
	Associations []suspects.Association `yaml:"associations"`
}

// Default returns the built-in mansion mystery.
func Default() (*Casebook, error) {
	cb, err := Parse(defaultCasebook)
	if err != nil {
		return nil, errors.Wrap(err, "parse default casebook")
	}
	return cb, nil
}

// Load reads and validates the casebook at path.
func Load(path string) (*Casebook, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read casebook", slog.String("path", path))
	}
	cb, err := Parse(data)
	if err != nil {
		return nil, errors.Wrap(err, "parse casebook", slog.String("path", path))
	}
	return cb, nil
}

// Parse decodes a YAML casebook and validates it. Unknown fields are rejected to catch typos.
func Parse(data []byte) (*Casebook, error) {
	var cb Casebook
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cb); err != nil {
		return nil, errors.Wrap(ErrInvalidCasebook, "decode yaml", slog.String("cause", err.Error()))
	}
	if err := cb.Validate(); err != nil {
		return nil, err
	}
	return &cb, nil
}

// Validate checks the length limits of names and clues. Structural problems of the mansion and conflicting
// associations are reported by Open.
func (cb *Casebook) Validate() error {
	var errorList []error
	tooLong := func(what, value string, limit int) {
		if utf8.RuneCountInString(value) > limit {
			errorList = append(errorList, errors.Wrap(ErrInvalidCasebook, what+" too long",
				slog.String("value", value), slog.Int("limit", limit)))
		}
	}

	for layout := range layouts(&cb.Mansion) {
		tooLong("room name", layout.Name, MaxNameLength)
		tooLong("clue", layout.Clue, MaxClueLength)
	}
	for _, association := range cb.Associations {
		tooLong("clue", association.Clue, MaxClueLength)
		tooLong("suspect name", association.Suspect, MaxNameLength)
	}

	if len(errorList) != 0 {
		return errors.Join(errorList...)
	}
	return nil
}

// Open builds the mansion and seeds the suspect index.
func (cb *Casebook) Open() (mansion.Room, *suspects.Index, error) {
	entrance, buildErr := mansion.Build(cb.Mansion)
	index, seedErr := suspects.NewIndex(cb.Associations)
	if err := errors.Join(buildErr, seedErr); err != nil {
		return nil, nil, errors.Wrap(err, "open casebook", slog.String("title", cb.Title))
	}
	return entrance, index, nil
}

// UnassociatedClues lists the room clues that no association covers, in walking order. Those clues implicate
// [suspects.Unknown] during play.
func (cb *Casebook) UnassociatedClues() []string {
	known := make(map[string]struct{}, len(cb.Associations))
	for _, association := range cb.Associations {
		known[association.Clue] = struct{}{}
	}
	var clues []string
	for layout := range layouts(&cb.Mansion) {
		if layout.Clue == "" {
			continue
		}
		if _, ok := known[layout.Clue]; !ok {
			clues = append(clues, layout.Clue)
		}
	}
	return clues
}

func layouts(root *mansion.Layout) iter.Seq[*mansion.Layout] {
	return func(yield func(*mansion.Layout) bool) {
		stack := []*mansion.Layout{root}
		for len(stack) > 0 {
			layout := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if layout == nil {
				continue
			}
			if !yield(layout) {
				return
			}
			stack = append(stack, layout.Right, layout.Left)
		}
	}
}
