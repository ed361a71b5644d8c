package main

import (
	"fmt"
	"github.com/myrjola/detectivequest/internal/mansion"
	"github.com/myrjola/detectivequest/internal/report"
	"github.com/spf13/cobra"
)

var casebookGroup = &cobra.Group{
	ID:    "casebook",
	Title: "Casebook operations",
}

func newCasebookCmd(env *environment) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "casebook",
		GroupID: casebookGroup.ID,
		Short:   "Inspect casebook files",
		Long: `A casebook is a YAML file holding the mansion layout and the clue to suspect associations.
Without a file the built-in mansion mystery is used.`,
	}
	cmd.AddCommand(newValidateCmd(env), newShowCmd(env))
	return cmd
}

func newValidateCmd(env *environment) *cobra.Command {
	return &cobra.Command{
		Use:   "validate FILE",
		Short: "Check a casebook for errors",
		Long: `Loads the casebook, builds the mansion and seeds the suspect index. Conflicting associations,
unnamed or duplicate rooms and overlong texts are reported.`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			cb, err := loadCasebook(args[0])
			if err != nil {
				return err
			}
			entrance, index, err := cb.Open()
			if err != nil {
				return err
			}

			rooms := 0
			for range mansion.Walk(entrance) {
				rooms++
			}
			_, _ = fmt.Fprintf(env.stdout, "%s: rooms: %d, associations: %d, suspects: %d\n",
				args[0], rooms, index.Len(), len(index.Suspects()))
			for _, clue := range cb.UnassociatedClues() {
				_, _ = fmt.Fprintf(env.stdout, "warning: clue %q implicates no suspect\n", clue)
			}
			return nil
		},
	}
}

func newShowCmd(env *environment) *cobra.Command {
	return &cobra.Command{
		Use:   "show [FILE]",
		Short: "Print the rooms, associations and suspects of a casebook",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			cb, err := loadCasebook(path)
			if err != nil {
				return err
			}
			entrance, _, err := cb.Open()
			if err != nil {
				return err
			}
			_, _ = fmt.Fprint(env.stdout, report.NewWriterStyles(env.stdout).Casebook(cb, entrance))
			return nil
		},
	}
}
