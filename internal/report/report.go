// Package report renders investigation results and casebooks for the terminal.
package report

import (
	"fmt"
	"github.com/charmbracelet/lipgloss"
	"github.com/myrjola/detectivequest/internal/casebook"
	"github.com/myrjola/detectivequest/internal/investigation"
	"github.com/myrjola/detectivequest/internal/ledger"
	"github.com/myrjola/detectivequest/internal/mansion"
	"io"
	"strings"
)

// Styles holds the lipgloss styles used for rendering. Colours are dropped automatically when the renderer's output
// is not a terminal.
type Styles struct {
	Heading   lipgloss.Style
	Room      lipgloss.Style
	Clue      lipgloss.Style
	Suspect   lipgloss.Style
	Notice    lipgloss.Style
	Sustained lipgloss.Style
	Rejected  lipgloss.Style
}

// NewStyles creates the styles for the given renderer.
func NewStyles(r *lipgloss.Renderer) Styles {
	return Styles{
		Heading:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("212")),
		Room:      r.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		Clue:      r.NewStyle().Foreground(lipgloss.Color("220")),
		Suspect:   r.NewStyle().Foreground(lipgloss.Color("203")),
		Notice:    r.NewStyle().Faint(true),
		Sustained: r.NewStyle().Bold(true).Foreground(lipgloss.Color("42")),
		Rejected:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("196")),
	}
}

// NewWriterStyles creates styles that detect the colour support of w.
func NewWriterStyles(w io.Writer) Styles {
	return NewStyles(lipgloss.NewRenderer(w))
}

// Report renders the collected clues in ascending order followed by the suspect tally.
func (s Styles) Report(r investigation.Report) string {
	var b strings.Builder
	b.WriteString(s.Heading.Render("Collected clues (alphabetical):"))
	b.WriteByte('\n')
	for _, line := range r.Clues {
		fmt.Fprintf(&b, "  %s -> %s\n", s.Clue.Render(line.Clue), s.Suspect.Render(line.Suspect))
	}
	b.WriteByte('\n')
	b.WriteString(s.Heading.Render("Suspects and their clues:"))
	b.WriteByte('\n')
	for _, entry := range r.Tally {
		fmt.Fprintf(&b, "  %s: %s\n", s.Suspect.Render(entry.Suspect), pluralClues(entry.Count))
	}
	return b.String()
}

// Verdict renders the ruling on an accusation.
func (s Styles) Verdict(v investigation.Verdict) string {
	var b strings.Builder
	b.WriteString(s.Heading.Render("Final result"))
	b.WriteByte('\n')
	switch v.Outcome {
	case investigation.OutcomeNoEvidence:
		b.WriteString(s.Rejected.Render("No clue was collected. An accusation cannot be made."))
		b.WriteByte('\n')
	case investigation.OutcomeSustained:
		b.WriteString(s.Sustained.Render(fmt.Sprintf("The accusation against %s is sustained!", v.Accused)))
		b.WriteByte('\n')
		fmt.Fprintf(&b, "%s found linked to this suspect.\n", pluralClues(v.Count))
	case investigation.OutcomeInsufficient:
		b.WriteString(s.Rejected.Render(fmt.Sprintf("Insufficient evidence against %s.", v.Accused)))
		b.WriteByte('\n')
		fmt.Fprintf(&b, "At least %d clues are needed to sustain an accusation. Clues found for %s: %d.\n",
			ledger.SustainThreshold, v.Accused, v.Count)
	}
	return b.String()
}

// Discovery renders the line shown when a room's clue is found.
func (s Styles) Discovery(clue, suspect string) string {
	return fmt.Sprintf("Clue found: %s\nIt points at: %s\n", s.Clue.Render(clue), s.Suspect.Render(suspect))
}

// Casebook renders the rooms, the associations and the suspects of a casebook.
func (s Styles) Casebook(cb *casebook.Casebook, entrance mansion.Room) string {
	var b strings.Builder
	title := cb.Title
	if title == "" {
		title = "Untitled casebook"
	}
	b.WriteString(s.Heading.Render(title))
	b.WriteString("\n\n")

	b.WriteString(s.Heading.Render("Rooms:"))
	b.WriteByte('\n')
	writeRoom(&b, s, entrance, 1)

	b.WriteByte('\n')
	b.WriteString(s.Heading.Render("Associations:"))
	b.WriteByte('\n')
	suspectNames := make(map[string]struct{})
	var order []string
	for _, association := range cb.Associations {
		fmt.Fprintf(&b, "  %s -> %s\n", s.Clue.Render(association.Clue), s.Suspect.Render(association.Suspect))
		if _, ok := suspectNames[association.Suspect]; !ok {
			suspectNames[association.Suspect] = struct{}{}
			order = append(order, association.Suspect)
		}
	}

	b.WriteByte('\n')
	b.WriteString(s.Heading.Render("Suspects:"))
	b.WriteByte('\n')
	for _, name := range order {
		fmt.Fprintf(&b, "  %s\n", s.Suspect.Render(name))
	}

	if unassociated := cb.UnassociatedClues(); len(unassociated) > 0 {
		b.WriteByte('\n')
		b.WriteString(s.Notice.Render("Clues without a suspect:"))
		b.WriteByte('\n')
		for _, clue := range unassociated {
			fmt.Fprintf(&b, "  %s\n", s.Clue.Render(clue))
		}
	}
	return b.String()
}

func writeRoom(b *strings.Builder, s Styles, room mansion.Room, depth int) {
	b.WriteString(strings.Repeat("  ", depth))
	b.WriteString(s.Room.Render(room.Name()))
	if room.HasClue() {
		b.WriteString(": ")
		b.WriteString(s.Clue.Render(room.ClueText()))
	}
	b.WriteByte('\n')
	if left, ok := room.Left(); ok {
		writeRoom(b, s, left, depth+1)
	}
	if right, ok := room.Right(); ok {
		writeRoom(b, s, right, depth+1)
	}
}

func pluralClues(n int) string {
	if n == 1 {
		return "1 clue"
	}
	return fmt.Sprintf("%d clues", n)
}
