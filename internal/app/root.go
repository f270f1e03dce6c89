package app

import (
	"errors"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/toolbox-migrate/internal/config"
	"github.com/blackwell-systems/toolbox-migrate/internal/runner"
)

// Seams replaced in tests.
var (
	currentEnvironment = config.CurrentEnvironment
	newRunner          = func() runner.Runner { return runner.NewExecRunner() }
)

// globalOptions holds the persistent flags shared by every subcommand.
type globalOptions struct {
	verbose   bool
	dir       string
	config    string
	historyDB string
	noHistory bool
}

// categoryOptions holds the mutually exclusive category flags.
type categoryOptions struct {
	repos bool
	rpms  bool
	certs bool
}

// NewRootCmd returns the root command with every subcommand registered.
// Each call builds fresh commands and flag state.
func NewRootCmd(stdout, stderr io.Writer) *cobra.Command {
	opts := &globalOptions{}

	cmd := &cobra.Command{
		Use:   "toolbox-migrate",
		Short: "Back up and restore toolbox repos, packages and CA certs",
		Long: `toolbox-migrate snapshots the parts of a toolbox container that are lost
when the container is recreated: third-party yum repositories, the names of
installed RPMs, and custom CA trust anchors.

Run 'backup' as your normal user inside the old toolbox, then run 'restore'
with sudo inside the new one. Restore reads the backup of the user who
invoked sudo.

Backup layout (default ~/.local/share/toolbox-backup):
  repos/                 copied /etc/yum.repos.d files (fedora* excluded)
  certs/                 copied /etc/pki/ca-trust/source/anchors files
  toolbox-rpms.backup    space-separated installed package names`,
		Example: `  # Back up everything
  toolbox-migrate backup

  # Restore everything into a fresh toolbox
  sudo toolbox-migrate restore

  # Only restore CA certs, with debug output
  sudo toolbox-migrate restore --certs --verbose

  # Show previous runs
  toolbox-migrate history`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	cmd.PersistentFlags().BoolVar(&opts.verbose, "verbose", false, "make the operation more talkative")
	cmd.PersistentFlags().StringVar(&opts.dir, "dir", "", "backup directory to use (default: ~/.local/share/toolbox-backup)")
	cmd.PersistentFlags().StringVar(&opts.config, "config", "", "config file (default: ~/.config/toolbox-migrate/config)")
	cmd.PersistentFlags().StringVar(&opts.historyDB, "history-db", "", "run history database (default: ~/.local/state/toolbox-migrate/history.db)")
	cmd.PersistentFlags().BoolVar(&opts.noHistory, "no-history", false, "do not record this run in the history database")

	cmd.SuggestionsMinimumDistance = 2

	cmd.AddCommand(newBackupCmd(opts))
	cmd.AddCommand(newRestoreCmd(opts))
	cmd.AddCommand(newCleanupCmd(opts))
	cmd.AddCommand(newHistoryCmd(opts))

	return cmd
}

// RootCmd is the root command for toolbox-migrate, bound to the process stdio.
var RootCmd = NewRootCmd(os.Stdout, os.Stderr)

// Execute runs RootCmd.
func Execute() error {
	return RootCmd.Execute()
}

// reportedError marks an error that has already been logged.
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

// IsReported reports whether err was already written to the log, so the
// caller only needs to set the exit status.
func IsReported(err error) bool {
	var r *reportedError
	return errors.As(err, &r)
}
