package app

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/toolbox-migrate/internal/config"
	"github.com/blackwell-systems/toolbox-migrate/internal/output"
	"github.com/blackwell-systems/toolbox-migrate/internal/store"
)

func newHistoryCmd(opts *globalOptions) *cobra.Command {
	var (
		limit int
		last  string
	)

	cmd := &cobra.Command{
		Use:   "history [run-id]",
		Short: "Show previous backup and restore runs",
		Long: `List recorded backup and restore runs, newest first. Failed runs are marked
with "!" and followed by their error.

Pass a run ID to show a single run, or --last to show the most recent
successful backup or restore.

History is kept per user. Runs under sudo are recorded in root's history.`,
		Example: `  toolbox-migrate history
  toolbox-migrate history --limit 5
  toolbox-migrate history 12
  toolbox-migrate history --last backup`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var id int64
			if len(args) == 1 {
				if last != "" {
					return fmt.Errorf("a run ID cannot be combined with --last")
				}
				n, err := strconv.ParseInt(args[0], 10, 64)
				if err != nil || n <= 0 {
					return fmt.Errorf("invalid run ID %q", args[0])
				}
				id = n
			}
			if last != "" && last != string(config.OpBackup) && last != string(config.OpRestore) {
				return fmt.Errorf("--last must be %q or %q, got %q", config.OpBackup, config.OpRestore, last)
			}

			s, err := newSession(cmd, opts)
			if err != nil {
				return err
			}

			st, err := s.openHistory(opts)
			if err != nil {
				return s.fail(fmt.Errorf("failed to open run history: %w", err))
			}
			defer st.Close()

			var runs []*store.Run
			switch {
			case id > 0:
				run, err := st.GetRun(id)
				if err != nil {
					return s.fail(err)
				}
				runs = []*store.Run{run}
			case last != "":
				run, err := st.LastSuccessful(last)
				if err != nil {
					return s.fail(err)
				}
				if run == nil {
					fmt.Fprintf(cmd.OutOrStdout(), "No successful %s recorded.\n", last)
					return nil
				}
				runs = []*store.Run{run}
			default:
				runs, err = st.ListRuns(limit)
				if err != nil {
					return s.fail(err)
				}
			}

			out := cmd.OutOrStdout()
			fmt.Fprint(out, output.RenderHistoryTable(runs, output.IsColorEnabled(out)))
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "maximum number of runs to show (0 for all)")
	cmd.Flags().StringVar(&last, "last", "", "show only the most recent successful run of this operation (backup or restore)")
	return cmd
}
