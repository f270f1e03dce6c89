package migrate

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/blackwell-systems/toolbox-migrate/internal/config"
	"github.com/blackwell-systems/toolbox-migrate/internal/guard"
	"github.com/blackwell-systems/toolbox-migrate/internal/rpm"
)

// Backup captures the selected categories into the backup root, creating the
// root and its subdirectories as needed. Categories run in order repos, rpms,
// certs; the first fatal error stops the run.
func (m *Manager) Backup(sel Selection) (*Report, error) {
	rep := &Report{
		Operation:  config.OpBackup,
		BackupRoot: m.cfg.BackupRoot,
		Selection:  sel,
	}

	if err := guard.EnsureDir(m.log, m.cfg.BackupRoot, "toolbox backup", true); err != nil {
		return rep, err
	}

	if sel.Has(Repos) {
		n, err := m.backupRepos()
		rep.Repos = n
		if err != nil {
			return rep, err
		}
	}

	if sel.Has(RPMs) {
		n, err := m.backupRPMs()
		rep.Packages = n
		if err != nil {
			return rep, err
		}
	}

	if sel.Has(Certs) {
		n, err := m.backupCerts()
		rep.Certs = n
		if err != nil {
			return rep, err
		}
	}

	m.log.Debug("Backup of toolbox config complete")
	return rep, nil
}

func (m *Manager) backupRepos() (int, error) {
	log := m.log.WithField("category", Repos)

	entries, err := guard.ReadDir(m.cfg.ReposDir, "yum repo")
	if err != nil {
		return 0, err
	}

	backupDir := filepath.Join(m.cfg.BackupRoot, reposSubdir)
	if err := guard.EnsureDir(log, backupDir, "yum repo", true); err != nil {
		return 0, err
	}

	var repos []string
	for _, name := range entries {
		if IsDistributionRepo(name) {
			log.Debugf("Skipping distribution repo %s", name)
			continue
		}
		repos = append(repos, name)
	}

	return m.copyAll(m.cfg.ReposDir, backupDir, repos, "yum repo file")
}

func (m *Manager) backupRPMs() (int, error) {
	path := filepath.Join(m.cfg.BackupRoot, PackageListFile)
	m.log.WithField("category", RPMs).Debugf("Backing up names of installed RPMs to %s", path)

	if m.cfg.Packages == nil {
		return 0, fmt.Errorf("no installed-package provider configured")
	}
	names, err := m.cfg.Packages.InstalledNames()
	if err != nil {
		return 0, fmt.Errorf("failed to list installed RPMs: %w", err)
	}

	if err := os.WriteFile(path, []byte(rpm.FormatPackageList(names)), 0644); err != nil {
		return 0, fmt.Errorf("failed to write %s: %w", path, err)
	}
	return len(names), nil
}

func (m *Manager) backupCerts() (int, error) {
	log := m.log.WithField("category", Certs)

	entries, err := guard.ReadDir(m.cfg.AnchorsDir, "CA cert")
	if err != nil {
		return 0, err
	}

	backupDir := filepath.Join(m.cfg.BackupRoot, certsSubdir)
	if err := guard.EnsureDir(log, backupDir, "CA cert", true); err != nil {
		return 0, err
	}

	return m.copyAll(m.cfg.AnchorsDir, backupDir, entries, "CA cert")
}
