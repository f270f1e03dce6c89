// Package config provides configuration file parsing and backup-root path
// resolution for toolbox-migrate.
package config

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
)

const (
	// DefaultReposDir is where dnf reads repository definitions.
	DefaultReposDir = "/etc/yum.repos.d"

	// DefaultAnchorsDir is where custom trust anchors are installed.
	DefaultAnchorsDir = "/etc/pki/ca-trust/source/anchors"

	// BackupSubdir is the backup root relative to a user's home directory.
	BackupSubdir = ".local/share/toolbox-backup"

	// RestoreHomeBase is the parent of user home directories as seen from
	// inside a toolbox container.
	RestoreHomeBase = "/var/home"
)

// Settings holds values read from the config file. Empty fields mean "use
// the default".
type Settings struct {
	BackupDir  string
	ReposDir   string
	AnchorsDir string
	HistoryDB  string
}

// Dir returns the toolbox-migrate config directory, respecting
// XDG_CONFIG_HOME. Defaults to ~/.config/toolbox-migrate.
func Dir(env Environment) string {
	base := env.XDGConfigHome
	if base == "" {
		base = filepath.Join(env.Home, ".config")
	}
	return filepath.Join(base, "toolbox-migrate")
}

// DefaultPath returns the default config file location.
func DefaultPath(env Environment) string {
	return filepath.Join(Dir(env), "config")
}

// Load reads the key=value config file at path. A missing file yields empty
// Settings without an error. Blank lines, # comments and malformed lines are
// skipped; unknown keys are logged at debug level and ignored.
func Load(path string, log logrus.FieldLogger) (*Settings, error) {
	s := &Settings{}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return s, err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		idx := strings.IndexByte(line, '=')
		if idx <= 0 {
			continue
		}

		key := strings.TrimSpace(line[:idx])
		value := strings.TrimSpace(line[idx+1:])
		if value == "" {
			continue
		}

		switch key {
		case "backup_dir":
			s.BackupDir = value
		case "repos_dir":
			s.ReposDir = value
		case "anchors_dir":
			s.AnchorsDir = value
		case "history_db":
			s.HistoryDB = value
		default:
			log.WithField("path", path).Debugf("Ignoring unknown config key %q", key)
		}
	}

	if err := scanner.Err(); err != nil {
		return s, err
	}

	return s, nil
}

// ReposDirOrDefault returns the configured repository directory or
// DefaultReposDir.
func (s *Settings) ReposDirOrDefault() string {
	if s.ReposDir != "" {
		return s.ReposDir
	}
	return DefaultReposDir
}

// AnchorsDirOrDefault returns the configured anchor directory or
// DefaultAnchorsDir.
func (s *Settings) AnchorsDirOrDefault() string {
	if s.AnchorsDir != "" {
		return s.AnchorsDir
	}
	return DefaultAnchorsDir
}

// HistoryDBOrDefault returns the configured history database path or
// $XDG_STATE_HOME/toolbox-migrate/history.db.
func (s *Settings) HistoryDBOrDefault(env Environment) string {
	if s.HistoryDB != "" {
		return ExpandUser(s.HistoryDB, env.Home)
	}
	base := env.XDGStateHome
	if base == "" {
		base = filepath.Join(env.Home, ".local", "state")
	}
	return filepath.Join(base, "toolbox-migrate", "history.db")
}
