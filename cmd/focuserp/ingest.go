package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/pvmelo/focuserp/internal/ingest"
)

func ingestCmd() *cobra.Command {
	var noRemote bool

	cmd := &cobra.Command{
		Use:   "ingest [file]",
		Short: "Ingest pasted text into the task list (reads stdin without a file argument)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newRuntime()
			if err != nil {
				return err
			}

			var raw []byte
			if len(args) == 1 {
				raw, err = os.ReadFile(args[0])
			} else {
				raw, err = io.ReadAll(os.Stdin)
			}
			if err != nil {
				return err
			}

			ing := rt.newIngestor()
			if noRemote {
				ing.Provider = nil
			}

			res, err := ing.Ingest(cmd.Context(), string(raw))
			if errors.Is(err, ingest.ErrNothingParsed) {
				return errors.New("could not extract any tasks from the text")
			}
			if err != nil {
				return err
			}

			via := "remote"
			if res.Fallback {
				via = "local parser"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "added %d categories, %d tasks, %d sub-tasks (%s)\n",
				res.Counts.Categories, res.Counts.Tasks, res.Counts.SubTasks, via)
			return nil
		},
	}

	cmd.Flags().BoolVar(&noRemote, "no-remote", false, "skip the remote service and use only the local parser")

	return cmd
}
