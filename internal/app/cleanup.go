package app

import (
	"github.com/spf13/cobra"

	"github.com/blackwell-systems/toolbox-migrate/internal/config"
	"github.com/blackwell-systems/toolbox-migrate/internal/migrate"
)

func newCleanupCmd(opts *globalOptions) *cobra.Command {
	cats := &categoryOptions{}

	cmd := &cobra.Command{
		Use:   "cleanup",
		Short: "Clean up a backup (not implemented; does nothing)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd, opts)
			if err != nil {
				return err
			}

			override := opts.dir
			if override == "" {
				override = s.settings.BackupDir
			}
			// Cleanup does nothing, so an unresolvable root is not an error.
			root, err := config.ResolveBackupRoot(config.OpCleanup, override, s.env)
			if err != nil {
				s.log.Debugf("Backup root not resolved for cleanup: %v", err)
			}

			mgr := migrate.New(migrate.Config{BackupRoot: root, Log: s.log})
			if err := mgr.Cleanup(cats.selection()); err != nil {
				return s.fail(err)
			}
			return nil
		},
	}

	addCategoryFlags(cmd, cats, "clean up")
	return cmd
}
