package main

import (
	"context"
	"fmt"
	"github.com/joho/godotenv"
	"github.com/myrjola/detectivequest/internal/errors"
	"github.com/spf13/cobra"
	"io"
	"io/fs"
	"os"
	"os/signal"
	"syscall"
)

const serviceName = "detectivequest"

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

// environment is what the commands may touch outside the process.
type environment struct {
	stdin     io.Reader
	stdout    io.Writer
	stderr    io.Writer
	lookupEnv func(string) (string, bool)
}

func newRootCmd(env *environment) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "detectivequest",
		Short:         "Solve the mansion mystery",
		Long:          `Detective Quest: walk the mansion, collect clues and accuse the culprit.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version,
	}
	rootCmd.SetIn(env.stdin)
	rootCmd.SetOut(env.stdout)
	rootCmd.SetErr(env.stderr)

	rootCmd.AddGroup(gameGroup)
	rootCmd.AddCommand(newPlayCmd(env))
	rootCmd.AddGroup(casebookGroup)
	rootCmd.AddCommand(newCasebookCmd(env))
	return rootCmd
}

func run(
	ctx context.Context,
	args []string,
	stdin io.Reader,
	stdout, stderr io.Writer,
	lookupEnv func(string) (string, bool),
) error {
	env := &environment{
		stdin:     stdin,
		stdout:    stdout,
		stderr:    stderr,
		lookupEnv: lookupEnv,
	}
	rootCmd := newRootCmd(env)
	rootCmd.SetArgs(args)
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		return errors.Wrap(err, "detectivequest")
	}
	return nil
}

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr, os.LookupEnv)
	stop()
	if err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
