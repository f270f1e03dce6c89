package app

import (
	"github.com/spf13/cobra"

	"github.com/blackwell-systems/toolbox-migrate/internal/config"
	"github.com/blackwell-systems/toolbox-migrate/internal/guard"
)

func newRestoreCmd(opts *globalOptions) *cobra.Command {
	cats := &categoryOptions{}

	cmd := &cobra.Command{
		Use:   "restore",
		Short: "Restore a backup into this toolbox (requires root)",
		Long: `Reapply a backup: copy CA certs into the trust anchors and refresh the trust
store, copy repository files into /etc/yum.repos.d, then reinstall the saved
packages with 'dnf -y --skip-broken install'. CA certs are restored again
after the packages are installed.

Restore must run as root. Without --dir it reads the backup of the user who
invoked sudo ($SUDO_USER), under /var/home/$SUDO_USER.

Packages dnf can no longer find are reported as warnings and do not fail
the restore.`,
		Example: `  sudo toolbox-migrate restore
  sudo toolbox-migrate restore --repos
  sudo toolbox-migrate restore --dir /mnt/usb/toolbox-backup`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd, opts)
			if err != nil {
				return err
			}

			// Before path resolution: SUDO_USER is unset outside sudo.
			if err := guard.RequireSuperuser(s.env.EUID, string(config.OpRestore)); err != nil {
				return s.fail(err)
			}

			mgr, err := s.manager(config.OpRestore, opts)
			if err != nil {
				return s.fail(err)
			}

			rep, err := mgr.Restore(cats.selection())
			s.record(opts, rep, err)
			if err != nil {
				return s.fail(err)
			}

			s.log.Infof("Restored %d repo files and %d CA certs, requested %d packages (%d unresolved)",
				rep.Repos, rep.Certs, rep.Packages, len(rep.Unresolved))
			return nil
		},
	}

	addCategoryFlags(cmd, cats, "restore")
	return cmd
}
