package main

import (
	"context"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/myrjola/detectivequest/internal/casebook"
	"github.com/myrjola/detectivequest/internal/config"
	"github.com/myrjola/detectivequest/internal/errors"
	"github.com/myrjola/detectivequest/internal/explore"
	"github.com/myrjola/detectivequest/internal/investigation"
	"github.com/myrjola/detectivequest/internal/logging"
	"github.com/myrjola/detectivequest/internal/observability"
	"github.com/myrjola/detectivequest/internal/report"
	"github.com/myrjola/detectivequest/internal/tui"
	"github.com/spf13/cobra"
	"io"
	"log/slog"
	"time"
)

const shutdownTimeout = 5 * time.Second

var gameGroup = &cobra.Group{
	ID:    "game",
	Title: "Game",
}

func newPlayCmd(env *environment) *cobra.Command {
	var (
		casebookPath string
		plain        bool
		maxSuspects  int
	)
	cmd := &cobra.Command{
		Use:     "play",
		GroupID: gameGroup.ID,
		Short:   "Investigate the mansion",
		Long: `Walks the mansion room by room. Every clue found is linked to a suspect. When you stop exploring you
accuse a suspect, and the accusation is sustained when at least two clues point at them.

The terminal UI keeps quiet unless DETECTIVE_LOG_FILE is set. Plain mode logs to standard error.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(env.lookupEnv)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("casebook") {
				cfg.Casebook = casebookPath
			}
			if cmd.Flags().Changed("max-suspects") {
				cfg.MaxSuspects = maxSuspects
			}
			if err = cfg.Validate(); err != nil {
				return err
			}
			return play(cmd.Context(), env, cfg, plain)
		},
	}
	cmd.Flags().StringVar(&casebookPath, "casebook", "", "casebook file (default: the built-in mansion)")
	cmd.Flags().BoolVar(&plain, "plain", false, "line-based play on standard input and output")
	cmd.Flags().IntVar(&maxSuspects, "max-suspects", 0, "maximum number of suspects in the tally, 0 for no limit")
	return cmd
}

func play(ctx context.Context, env *environment, cfg config.Config, plain bool) (err error) {
	logSink := env.stderr
	if !plain {
		logSink = io.Discard
	}
	logger, closeLog, err := cfg.NewLogger(logSink)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, closeLog())
	}()
	logger = logger.With(slog.String("source", "play"))

	tp, err := observability.InitTracing(ctx, cfg.Tracing(serviceName, version))
	if err != nil {
		return errors.Wrap(err, "init tracing")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		if shutdownErr := tp.Shutdown(shutdownCtx); shutdownErr != nil {
			logger.LogAttrs(ctx, slog.LevelWarn, "tracing shutdown failed", errors.SlogError(shutdownErr))
		}
	}()

	cb, err := loadCasebook(cfg.Casebook)
	if err != nil {
		return err
	}
	entrance, index, err := cb.Open()
	if err != nil {
		return err
	}

	session := investigation.NewSession(index, investigation.Options{
		MaxSuspects: cfg.MaxSuspects,
		Tracer:      tp.Tracer(serviceName),
	}, logger)
	defer session.Close()

	ctx = logging.WithAttrs(ctx, slog.String("casebook", cb.Title))
	logger.LogAttrs(ctx, slog.LevelInfo, "investigation started",
		slog.String("session", session.ID().String()),
		slog.Bool("plain", plain),
		slog.Bool("tracing", tp.Enabled()),
	)

	if plain {
		if _, err = explore.New(env.stdin, env.stdout, session, logger).Run(ctx, entrance); err != nil {
			return errors.Wrap(err, "play")
		}
		return nil
	}

	model := tui.New(ctx, session, entrance, report.NewWriterStyles(env.stdout), logger)
	if err = tui.Run(ctx, model, tea.WithInput(env.stdin), tea.WithOutput(env.stdout)); err != nil {
		return errors.Wrap(err, "play")
	}
	return nil
}

func loadCasebook(path string) (*casebook.Casebook, error) {
	if path == "" {
		return casebook.Default()
	}
	return casebook.Load(path)
}
