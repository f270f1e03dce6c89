package app

import (
	"github.com/spf13/cobra"

	"github.com/blackwell-systems/toolbox-migrate/internal/config"
)

func newBackupCmd(opts *globalOptions) *cobra.Command {
	cats := &categoryOptions{}

	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Back up repos, installed RPM names and CA certs",
		Long: `Copy third-party yum repository files, the names of all installed RPMs and
custom CA trust anchors into the backup directory.

Repository files whose names start with "fedora" ship with the distribution
and are not backed up. The package list records names only; versions and
architectures are not kept.`,
		Example: `  toolbox-migrate backup
  toolbox-migrate backup --rpms
  toolbox-migrate backup --dir /mnt/usb/toolbox-backup`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd, opts)
			if err != nil {
				return err
			}

			mgr, err := s.manager(config.OpBackup, opts)
			if err != nil {
				return s.fail(err)
			}

			rep, err := mgr.Backup(cats.selection())
			s.record(opts, rep, err)
			if err != nil {
				return s.fail(err)
			}

			s.log.Infof("Backed up %d repo files, %d package names and %d CA certs to %s",
				rep.Repos, rep.Packages, rep.Certs, rep.BackupRoot)
			return nil
		},
	}

	addCategoryFlags(cmd, cats, "back up")
	return cmd
}
