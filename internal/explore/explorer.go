// Package explore is the line-oriented front end: it walks the mansion from typed commands and takes the final
// accusation.
package explore

import (
	"bufio"
	"context"
	"fmt"
	"github.com/myrjola/detectivequest/internal/errors"
	"github.com/myrjola/detectivequest/internal/investigation"
	"github.com/myrjola/detectivequest/internal/ledger"
	"github.com/myrjola/detectivequest/internal/logging"
	"github.com/myrjola/detectivequest/internal/mansion"
	"github.com/myrjola/detectivequest/internal/report"
	"io"
	"log/slog"
	"strings"
	"unicode/utf8"
)

// MaxAccusedNameLength bounds the accused suspect's name, in runes.
const MaxAccusedNameLength = 50

var ErrInputClosed = errors.NewSentinel("input closed before an accusation was made")

type scanResult struct {
	line string
	ok   bool
}

type command int

const (
	commandUnknown command = iota
	commandLeft
	commandRight
	commandQuit
)

func parseCommand(line string) command {
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "l", "left":
		return commandLeft
	case "r", "right":
		return commandRight
	case "q", "quit", "exit":
		return commandQuit
	}
	return commandUnknown
}

// Explorer drives one session from an input stream of commands.
type Explorer struct {
	in *bufio.Scanner
	// pending receives the result of the scan in flight, if any. A scan abandoned by a cancelled context is picked up
	// by the next read so that two goroutines never scan at once.
	pending chan scanResult
	out     io.Writer
	session *investigation.Session
	styles  report.Styles
	logger  *slog.Logger
}

// New creates an Explorer reading commands from in and writing the narration to out.
func New(in io.Reader, out io.Writer, session *investigation.Session, logger *slog.Logger) *Explorer {
	return &Explorer{
		in:      bufio.NewScanner(in),
		pending: nil,
		out:     out,
		session: session,
		styles:  report.NewWriterStyles(out),
		logger:  logger.With(slog.String("source", "Explorer")),
	}
}

// Run explores the mansion from start and then judges the accusation.
func (e *Explorer) Run(ctx context.Context, start mansion.Room) (investigation.Verdict, error) {
	if err := e.Explore(ctx, start); err != nil {
		return investigation.Verdict{}, err //nolint:exhaustruct // zero on error
	}
	return e.Accuse(ctx)
}

// Explore walks from start until the player quits, reaches the end of input or an error occurs. Every clue in an
// entered room is reported to the session. Cancelling ctx stops a pending read and returns the context's error.
func (e *Explorer) Explore(ctx context.Context, start mansion.Room) error {
	e.printf("\n%s\n", e.styles.Heading.Render("Exploring the mansion"))

	room := start
	entered := true
	for {
		roomCtx := logging.WithAttrs(ctx, slog.String("room", room.Name()))
		if entered {
			if err := e.enter(roomCtx, room); err != nil {
				return err
			}
			entered = false
		}
		e.printf("%s\nCommand: ", e.options(room))

		line, ok, err := e.readLine(ctx)
		if err != nil {
			return err
		}
		if !ok {
			e.printf("\nLeaving the mansion...\n")
			return e.scanErr()
		}

		next, hasNext := mansion.Room(nil), false
		switch parseCommand(line) {
		case commandLeft:
			next, hasNext = room.Left()
		case commandRight:
			next, hasNext = room.Right()
		case commandQuit:
			e.printf("\nLeaving the mansion...\n")
			return nil
		case commandUnknown:
		}
		if !hasNext {
			e.logger.LogAttrs(roomCtx, slog.LevelDebug, "invalid move", slog.String("command", line))
			e.printf("Invalid command or unavailable direction!\n")
			// Stay without re-entering, so a typo does not report the room's clue again.
			continue
		}
		room = next
		entered = true
	}
}

func (e *Explorer) enter(ctx context.Context, room mansion.Room) error {
	e.printf("\nYou are in: %s\n", e.styles.Room.Render(room.Name()))
	if !room.HasClue() {
		return nil
	}
	suspect, err := e.session.OnClueDiscovered(ctx, room.ClueText())
	if errors.Is(err, ledger.ErrCapacityExceeded) {
		e.logger.LogAttrs(ctx, slog.LevelWarn, "clue ignored", errors.SlogError(err))
		e.printf("Clue found: %s\nThe case file has no room for another suspect, so this clue is left behind.\n",
			e.styles.Clue.Render(room.ClueText()))
		return nil
	}
	if err != nil {
		return errors.Wrap(err, "enter room", slog.String("room", room.Name()))
	}
	e.printf("%s", e.styles.Discovery(room.ClueText(), suspect))
	return nil
}

func (e *Explorer) options(room mansion.Room) string {
	var parts []string
	if left, ok := room.Left(); ok {
		parts = append(parts, fmt.Sprintf("[l] Left (%s)", left.Name()))
	}
	if right, ok := room.Right(); ok {
		parts = append(parts, fmt.Sprintf("[r] Right (%s)", right.Name()))
	}
	if len(parts) == 0 {
		return "Dead end! [q] Quit"
	}
	return "Options: " + strings.Join(append(parts, "[q] Quit"), " | ")
}

// Accuse prints the final report, asks for the culprit and prints the verdict. Without collected clues the verdict is
// rendered straight away and nothing is read.
func (e *Explorer) Accuse(ctx context.Context) (investigation.Verdict, error) {
	e.printf("\n%s\n", e.styles.Heading.Render("Final phase: the accusation"))

	rep, err := e.session.FinalReport()
	if err != nil {
		return investigation.Verdict{}, errors.Wrap(err, "accuse") //nolint:exhaustruct // zero on error
	}

	accused := ""
	if len(rep.Clues) > 0 {
		e.printf("\n%s", e.styles.Report(rep))
		if accused, err = e.readAccused(ctx); err != nil {
			return investigation.Verdict{}, err //nolint:exhaustruct // zero on error
		}
	}

	verdict, err := e.session.Judge(ctx, accused)
	if err != nil {
		return investigation.Verdict{}, errors.Wrap(err, "accuse") //nolint:exhaustruct // zero on error
	}
	e.printf("\n%s", e.styles.Verdict(verdict))
	return verdict, nil
}

func (e *Explorer) readAccused(ctx context.Context) (string, error) {
	for {
		e.printf("\nWho is the culprit? Enter the suspect's name: ")
		line, ok, err := e.readLine(ctx)
		if err != nil {
			return "", err
		}
		if !ok {
			if scanErr := e.scanErr(); scanErr != nil {
				return "", scanErr
			}
			return "", errors.Wrap(ErrInputClosed, "read accused")
		}
		name := strings.TrimSpace(line)
		switch n := utf8.RuneCountInString(name); {
		case n == 0:
			e.printf("Please enter a name.\n")
		case n > MaxAccusedNameLength:
			e.printf("Names are at most %d characters long.\n", MaxAccusedNameLength)
		default:
			return name, nil
		}
	}
}

// readLine returns the next input line. ok is false at the end of input. The scan runs in its own goroutine because
// reading from a terminal cannot be interrupted.
func (e *Explorer) readLine(ctx context.Context) (string, bool, error) {
	if e.pending == nil {
		result := make(chan scanResult, 1)
		go func() {
			if !e.in.Scan() {
				result <- scanResult{line: "", ok: false}
				return
			}
			result <- scanResult{line: e.in.Text(), ok: true}
		}()
		e.pending = result
	}

	select {
	case <-ctx.Done():
		return "", false, errors.Wrap(ctx.Err(), "read input")
	case r := <-e.pending:
		e.pending = nil
		return r.line, r.ok, nil
	}
}

func (e *Explorer) scanErr() error {
	if err := e.in.Err(); err != nil {
		return errors.Wrap(err, "read input")
	}
	return nil
}

func (e *Explorer) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(e.out, format, args...)
}
