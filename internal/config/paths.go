package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrMissingIdentity is returned when the user whose backup root should be
// used cannot be determined from the environment.
var ErrMissingIdentity = errors.New("missing identity")

// Operation names a top-level toolbox-migrate operation.
type Operation string

const (
	OpBackup  Operation = "backup"
	OpRestore Operation = "restore"
	OpCleanup Operation = "cleanup"
)

// Environment is the process-wide state that path resolution and privilege
// checks depend on, captured once at startup.
type Environment struct {
	Home          string
	SudoUser      string
	EUID          int
	XDGConfigHome string
	XDGStateHome  string
}

// CurrentEnvironment captures the environment of the running process.
func CurrentEnvironment() Environment {
	return Environment{
		Home:          os.Getenv("HOME"),
		SudoUser:      os.Getenv("SUDO_USER"),
		EUID:          os.Geteuid(),
		XDGConfigHome: os.Getenv("XDG_CONFIG_HOME"),
		XDGStateHome:  os.Getenv("XDG_STATE_HOME"),
	}
}

// ResolveBackupRoot returns the backup root for op.
//
// A non-empty override always wins. Otherwise backup (and cleanup) use the
// invoking user's $HOME, while restore uses the home of $SUDO_USER: restore
// runs elevated but must read the plain user's snapshot.
func ResolveBackupRoot(op Operation, override string, env Environment) (string, error) {
	if override != "" {
		return ExpandUser(override, env.Home), nil
	}

	switch op {
	case OpRestore:
		if env.SudoUser == "" {
			return "", fmt.Errorf("cannot determine the invoking user for restore: SUDO_USER is not set (use --dir): %w", ErrMissingIdentity)
		}
		return filepath.Join(RestoreHomeBase, env.SudoUser, BackupSubdir), nil
	default:
		if env.Home == "" {
			return "", fmt.Errorf("cannot determine home directory for %s: HOME is not set (use --dir): %w", op, ErrMissingIdentity)
		}
		return filepath.Join(env.Home, BackupSubdir), nil
	}
}

// ExpandUser replaces a leading "~" in path with home.
func ExpandUser(path, home string) string {
	if home == "" {
		return path
	}
	if path == "~" {
		return home
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(home, path[2:])
	}
	return path
}
