// Package rpm talks to the RPM database and to dnf: it lists installed
// package names for backup and reinstalls a saved list on restore.
package rpm

// Provider returns the names of every installed package.
type Provider interface {
	InstalledNames() ([]string, error)
}

// InstallResult summarises a dnf install run.
type InstallResult struct {
	Requested  []string
	Unresolved []string
}
