// Package tui is the interactive terminal front end built on bubbletea.
package tui

import (
	"context"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/myrjola/detectivequest/internal/errors"
	"github.com/myrjola/detectivequest/internal/explore"
	"github.com/myrjola/detectivequest/internal/investigation"
	"github.com/myrjola/detectivequest/internal/ledger"
	"github.com/myrjola/detectivequest/internal/logging"
	"github.com/myrjola/detectivequest/internal/mansion"
	"github.com/myrjola/detectivequest/internal/report"
	"log/slog"
	"strings"
)

// maxNarration is how many narration entries stay on screen.
const maxNarration = 6

type phase int

const (
	phaseExploring phase = iota
	phaseAccusing
	phaseDone
)

// Model walks the mansion with the arrow keys and takes the accusation in a text input.
//
// All session calls happen inside Update, which bubbletea calls from a single goroutine.
type Model struct {
	ctx       context.Context //nolint:containedctx // bubbletea models have no per-call context
	session   *investigation.Session
	room      mansion.Room
	phase     phase
	input     textinput.Model
	styles    report.Styles
	narration []string
	notice    string
	report    investigation.Report
	err       error
	logger    *slog.Logger
}

// New creates the model and enters the start room.
func New(ctx context.Context, session *investigation.Session, start mansion.Room, styles report.Styles,
	logger *slog.Logger) Model {
	input := textinput.New()
	input.Placeholder = "suspect name"
	input.CharLimit = explore.MaxAccusedNameLength
	input.Width = explore.MaxAccusedNameLength
	input.Prompt = "Who is the culprit? "

	m := Model{
		ctx:       ctx,
		session:   session,
		room:      start,
		phase:     phaseExploring,
		input:     input,
		styles:    styles,
		narration: nil,
		notice:    "",
		report:    investigation.Report{}, //nolint:exhaustruct // filled when exploration ends
		err:       nil,
		logger:    logger.With(slog.String("source", "TUI")),
	}
	m.enter(start)
	return m
}

func (m Model) Init() tea.Cmd {
	return nil
}

// Err returns the error that stopped the game, if any.
func (m Model) Err() error {
	return m.err
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		if m.phase == phaseAccusing {
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return m, cmd
		}
		return m, nil
	}
	if keyMsg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	switch m.phase {
	case phaseExploring:
		return m.updateExploring(keyMsg)
	case phaseAccusing:
		return m.updateAccusing(keyMsg)
	case phaseDone:
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) updateExploring(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.notice = ""
	var (
		next    mansion.Room
		hasNext bool
	)
	switch msg.String() {
	case "left", "l":
		next, hasNext = m.room.Left()
	case "right", "r":
		next, hasNext = m.room.Right()
	case "q", "esc":
		return m.finishExploring()
	default:
		return m, nil
	}
	if !hasNext {
		m.notice = "No door on that side."
		return m, nil
	}
	m.room = next
	m.enter(next)
	if m.err != nil {
		return m, tea.Quit
	}
	return m, nil
}

func (m *Model) enter(room mansion.Room) {
	ctx := logging.WithAttrs(m.ctx, slog.String("room", room.Name()))
	m.narrate("You are in: " + m.styles.Room.Render(room.Name()))
	if !room.HasClue() {
		return
	}
	suspect, err := m.session.OnClueDiscovered(ctx, room.ClueText())
	switch {
	case errors.Is(err, ledger.ErrCapacityExceeded):
		m.logger.LogAttrs(ctx, slog.LevelWarn, "clue ignored", errors.SlogError(err))
		m.narrate("Clue found: " + m.styles.Clue.Render(room.ClueText()) + ", but the case file is full.")
	case err != nil:
		m.err = errors.Wrap(err, "enter room", slog.String("room", room.Name()))
	default:
		m.narrate(strings.TrimSuffix(m.styles.Discovery(room.ClueText(), suspect), "\n"))
	}
}

func (m *Model) narrate(line string) {
	m.narration = append(m.narration, line)
	if len(m.narration) > maxNarration {
		m.narration = m.narration[len(m.narration)-maxNarration:]
	}
}

func (m Model) finishExploring() (tea.Model, tea.Cmd) {
	rep, err := m.session.FinalReport()
	if err != nil {
		m.err = errors.Wrap(err, "finish exploring")
		return m, tea.Quit
	}
	m.report = rep
	if len(rep.Clues) == 0 {
		return m.judge("")
	}
	m.phase = phaseAccusing
	return m, m.input.Focus()
}

func (m Model) updateAccusing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type != tea.KeyEnter {
		m.notice = ""
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	name := strings.TrimSpace(m.input.Value())
	if name == "" {
		m.notice = "Please enter a name."
		return m, nil
	}
	m.input.Blur()
	return m.judge(name)
}

func (m Model) judge(name string) (tea.Model, tea.Cmd) {
	if _, err := m.session.Judge(m.ctx, name); err != nil {
		m.err = errors.Wrap(err, "judge")
		return m, tea.Quit
	}
	m.phase = phaseDone
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(m.styles.Heading.Render("Detective Quest"))
	b.WriteString("\n\n")

	switch m.phase {
	case phaseExploring:
		for _, line := range m.narration {
			b.WriteString(line)
			b.WriteByte('\n')
		}
		b.WriteByte('\n')
		b.WriteString(m.styles.Notice.Render(m.help()))
		b.WriteByte('\n')
	case phaseAccusing:
		b.WriteString(m.styles.Report(m.report))
		b.WriteByte('\n')
		b.WriteString(m.input.View())
		b.WriteByte('\n')
	case phaseDone:
		if len(m.report.Clues) > 0 {
			b.WriteString(m.styles.Report(m.report))
			b.WriteByte('\n')
		}
		if verdict, ok := m.session.Verdict(); ok {
			b.WriteString(m.styles.Verdict(verdict))
		}
		b.WriteByte('\n')
		b.WriteString(m.styles.Notice.Render("Press any key to leave."))
		b.WriteByte('\n')
	}

	if m.notice != "" {
		b.WriteString(m.styles.Rejected.Render(m.notice))
		b.WriteByte('\n')
	}
	return b.String()
}

func (m Model) help() string {
	var parts []string
	if left, ok := m.room.Left(); ok {
		parts = append(parts, "← / l: "+left.Name())
	}
	if right, ok := m.room.Right(); ok {
		parts = append(parts, "→ / r: "+right.Name())
	}
	if len(parts) == 0 {
		parts = append(parts, "dead end")
	}
	return strings.Join(append(parts, "q: accuse"), " • ")
}

// Run plays the game in the terminal until the player leaves.
func Run(ctx context.Context, m Model, opts ...tea.ProgramOption) error {
	opts = append(opts, tea.WithContext(ctx))
	final, err := tea.NewProgram(m, opts...).Run()
	if err != nil {
		return errors.Wrap(err, "run terminal ui")
	}
	if fm, ok := final.(Model); ok && fm.err != nil {
		return fm.err
	}
	return nil
}
