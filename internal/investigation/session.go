// Package investigation runs a single player's investigation: it collects the clues reported by the mansion walk,
// attributes them to suspects and judges the final accusation.
package investigation

import (
	"context"
	"github.com/google/uuid"
	"github.com/myrjola/detectivequest/internal/catalog"
	"github.com/myrjola/detectivequest/internal/errors"
	"github.com/myrjola/detectivequest/internal/ledger"
	"github.com/myrjola/detectivequest/internal/suspects"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"log/slog"
)

const instrumentationName = "github.com/myrjola/detectivequest/internal/investigation"

var (
	ErrEmptyClue     = errors.NewSentinel("empty clue")
	ErrNotCollecting = errors.NewSentinel("session no longer collects clues")
	ErrAlreadyJudged = errors.NewSentinel("session already judged")
	ErrClosed        = errors.NewSentinel("session closed")
)

// State is the lifecycle stage of a Session. Sessions only move forward: Collecting, Judged, Closed.
type State int

const (
	StateCollecting State = iota
	StateJudged
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateCollecting:
		return "collecting"
	case StateJudged:
		return "judged"
	case StateClosed:
		return "closed"
	}
	return "invalid"
}

// Options tune a Session.
type Options struct {
	// MaxSuspects bounds the number of distinct suspects in the tally. Zero means no limit.
	MaxSuspects int
	// Tracer defaults to the global OpenTelemetry tracer.
	Tracer trace.Tracer
}

// Session owns the clue catalog and suspect tally of one investigation.
//
// A Session is not safe for concurrent use. The navigation loop must report clues one at a time.
type Session struct {
	id      uuid.UUID
	index   *suspects.Index
	catalog *catalog.Catalog
	ledger  *ledger.Ledger
	state   State
	verdict Verdict
	judged  bool
	logger  *slog.Logger
	tracer  trace.Tracer
}

// NewSession starts collecting clues. The index is only read, so several sessions may share it.
func NewSession(index *suspects.Index, opts Options, logger *slog.Logger) *Session {
	id := uuid.New()
	tracer := opts.Tracer
	if tracer == nil {
		tracer = otel.Tracer(instrumentationName)
	}
	return &Session{
		id:      id,
		index:   index,
		catalog: catalog.New(),
		ledger:  ledger.New(opts.MaxSuspects),
		state:   StateCollecting,
		verdict: Verdict{}, //nolint:exhaustruct // set by Judge
		judged:  false,
		logger:  logger.With(slog.String("source", "InvestigationSession"), slog.String("session", id.String())),
		tracer:  tracer,
	}
}

// ID identifies the session in logs and traces.
func (s *Session) ID() uuid.UUID {
	return s.id
}

// State returns the current lifecycle stage.
func (s *Session) State() State {
	return s.state
}

func (s *Session) startSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	attrs = append(attrs, attribute.String("session.id", s.id.String()))
	return s.tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

func fail(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}

// OnClueDiscovered records a clue found in a room and returns the suspect it points at.
//
// Every call counts towards the suspect's tally, including clues that are already in the catalog. If the tally
// refuses a new suspect the error wraps [ledger.ErrCapacityExceeded] and neither the catalog nor the tally changes.
func (s *Session) OnClueDiscovered(ctx context.Context, text string) (string, error) {
	ctx, span := s.startSpan(ctx, "investigation.clue_discovered", attribute.String("clue", text))
	defer span.End()

	if s.state != StateCollecting {
		return "", fail(span, errors.Wrap(ErrNotCollecting, "discover clue", slog.String("state", s.state.String())))
	}
	if text == "" {
		return "", fail(span, errors.Wrap(ErrEmptyClue, "discover clue"))
	}

	suspect := s.index.Lookup(text)
	count, err := s.ledger.Attribute(suspect)
	if err != nil {
		err = errors.Wrap(err, "discover clue", slog.String("clue", text))
		s.logger.LogAttrs(ctx, slog.LevelWarn, "clue not recorded", errors.SlogError(err))
		return "", fail(span, err)
	}
	isNew := s.catalog.Insert(text)

	span.SetAttributes(attribute.String("suspect", suspect), attribute.Int("suspect.count", count))
	s.logger.LogAttrs(ctx, slog.LevelDebug, "clue discovered",
		slog.String("clue", text),
		slog.String("suspect", suspect),
		slog.Int("count", count),
		slog.Bool("newClue", isNew),
	)
	return suspect, nil
}

// FinalReport snapshots the collected clues and the suspect tally.
func (s *Session) FinalReport() (Report, error) {
	if s.state == StateClosed {
		return Report{}, errors.Wrap(ErrClosed, "final report") //nolint:exhaustruct // zero report on error
	}

	clues := make([]ClueLine, 0, s.catalog.Len())
	for text := range s.catalog.InOrder() {
		clues = append(clues, ClueLine{Clue: text, Suspect: s.index.Lookup(text)})
	}
	return Report{
		Clues: clues,
		Tally: s.ledger.Entries(),
	}, nil
}

// Judge rules on an accusation against the named suspect and fixes the verdict. The name is matched as exact text.
//
// Without any collected clue the outcome is OutcomeNoEvidence whatever the name. Otherwise the accusation is
// sustained when at least [ledger.SustainThreshold] clues point at the suspect. A name nobody was tallied for simply
// counts zero. Judge can only be called once.
func (s *Session) Judge(ctx context.Context, accused string) (Verdict, error) {
	ctx, span := s.startSpan(ctx, "investigation.judge", attribute.String("accused", accused))
	defer span.End()

	switch s.state {
	case StateJudged:
		return Verdict{}, fail(span, errors.Wrap(ErrAlreadyJudged, "judge")) //nolint:exhaustruct // zero on error
	case StateClosed:
		return Verdict{}, fail(span, errors.Wrap(ErrClosed, "judge")) //nolint:exhaustruct // zero on error
	case StateCollecting:
	}

	verdict := Verdict{Outcome: OutcomeNoEvidence, Accused: accused, Count: 0}
	if s.catalog.Len() > 0 {
		sustained, count := s.ledger.Sustains(accused)
		verdict.Count = count
		verdict.Outcome = OutcomeInsufficient
		if sustained {
			verdict.Outcome = OutcomeSustained
		}
	}

	s.verdict = verdict
	s.judged = true
	s.state = StateJudged

	span.SetAttributes(attribute.String("outcome", verdict.Outcome.String()), attribute.Int("count", verdict.Count))
	s.logger.LogAttrs(ctx, slog.LevelInfo, "accusation judged",
		slog.String("accused", accused),
		slog.String("outcome", verdict.Outcome.String()),
		slog.Int("count", verdict.Count),
		slog.Int("clues", s.catalog.Len()),
	)
	return verdict, nil
}

// Verdict returns the verdict fixed by Judge, if any.
func (s *Session) Verdict() (Verdict, bool) {
	return s.verdict, s.judged
}

// Close releases the catalog and tally. It may be called in any state and more than once.
//
// Closing a collecting session aborts it: the session skips StateJudged and no verdict is fixed.
func (s *Session) Close() {
	if s.state == StateClosed {
		return
	}
	s.state = StateClosed
	s.catalog = nil
	s.ledger = nil
	s.index = nil
	s.logger.LogAttrs(context.Background(), slog.LevelDebug, "session closed")
}
