package migrate

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/blackwell-systems/toolbox-migrate/internal/config"
	"github.com/blackwell-systems/toolbox-migrate/internal/guard"
	"github.com/blackwell-systems/toolbox-migrate/internal/rpm"
	"github.com/blackwell-systems/toolbox-migrate/internal/trust"
)

// Restore reapplies the selected categories from the backup root. It requires
// superuser privilege and checks it before touching the filesystem.
//
// The order is certs, repos, rpms, certs. Anchors are restored a second time
// after the package step.
func (m *Manager) Restore(sel Selection) (*Report, error) {
	if err := guard.RequireSuperuser(m.cfg.EUID, string(config.OpRestore)); err != nil {
		return nil, err
	}

	rep := &Report{
		Operation:  config.OpRestore,
		BackupRoot: m.cfg.BackupRoot,
		Selection:  sel,
	}

	if err := guard.EnsureDir(m.log, m.cfg.BackupRoot, "toolbox", false); err != nil {
		return rep, err
	}

	if sel.Has(Certs) {
		if err := m.restoreCerts(rep); err != nil {
			return rep, err
		}
	}

	if sel.Has(Repos) {
		n, err := m.restoreRepos()
		rep.Repos = n
		if err != nil {
			return rep, err
		}
	}

	if sel.Has(RPMs) {
		if err := m.restoreRPMs(rep); err != nil {
			return rep, err
		}
	}

	if sel.Has(Certs) {
		if err := m.restoreCerts(rep); err != nil {
			return rep, err
		}
	}

	m.log.Debug("Restore of toolbox config complete")
	return rep, nil
}

func (m *Manager) restoreCerts(rep *Report) error {
	log := m.log.WithField("category", Certs)
	backupDir := filepath.Join(m.cfg.BackupRoot, certsSubdir)

	if err := guard.EnsureDir(log, backupDir, "CA cert", false); err != nil {
		return err
	}

	certs, err := guard.List(log, backupDir, "CA cert")
	if err != nil {
		return err
	}

	n, err := m.copyAll(backupDir, m.cfg.AnchorsDir, certs, "CA cert")
	rep.Certs = n
	if err != nil {
		return err
	}

	if n > 0 {
		if err := trust.Refresh(m.cfg.Runner, log); err != nil {
			return err
		}
		rep.CertRefreshes++
	}
	return nil
}

func (m *Manager) restoreRepos() (int, error) {
	log := m.log.WithField("category", Repos)
	backupDir := filepath.Join(m.cfg.BackupRoot, reposSubdir)

	if err := guard.EnsureDir(log, backupDir, "repo", false); err != nil {
		return 0, err
	}

	repos, err := guard.List(log, backupDir, "yum repo")
	if err != nil {
		return 0, err
	}

	return m.copyAll(backupDir, m.cfg.ReposDir, repos, "repo file")
}

func (m *Manager) restoreRPMs(rep *Report) error {
	log := m.log.WithField("category", RPMs)
	path := filepath.Join(m.cfg.BackupRoot, PackageListFile)

	if err := guard.RequireFile(path); err != nil {
		return err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	names := rpm.ParsePackageList(string(data))
	rep.Packages = len(names)
	if len(names) == 0 {
		log.WithField("path", path).Warnf("Did not find any RPMs to restore in %s", path)
		return nil
	}

	if m.cfg.Installer == nil {
		return fmt.Errorf("no package installer configured")
	}

	log.Debug("Starting restore of RPMs")
	res, err := m.cfg.Installer.Install(names)
	if err != nil {
		return err
	}

	log.Debugf("dnf install finished: %s", res)
	rep.Unresolved = res.Unresolved
	if len(res.Unresolved) > 0 {
		log.WithField("unresolved", res.Unresolved).Warnf("Unable to install following RPMs: %v", res.Unresolved)
	}

	log.Debug("Finished restoring RPMs")
	return nil
}
