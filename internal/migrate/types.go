// Package migrate implements the toolbox backup, restore and cleanup
// operations over the three configuration categories: yum repositories,
// installed RPM names, and CA trust anchors.
//
// Fatal conditions are returned as errors wrapping guard.ErrPermissionDenied,
// guard.ErrMissingDirectory, guard.ErrMissingFile or runner.ErrCommandFailure.
// Empty categories and packages dnf cannot match are logged as warnings and
// do not stop the operation.
package migrate

import (
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/blackwell-systems/toolbox-migrate/internal/config"
	"github.com/blackwell-systems/toolbox-migrate/internal/rpm"
	"github.com/blackwell-systems/toolbox-migrate/internal/runner"
)

const (
	// PackageListFile is the name of the package list inside the backup root.
	PackageListFile = "toolbox-rpms.backup"

	reposSubdir = "repos"
	certsSubdir = "certs"
)

// Category is one independently selectable configuration domain.
type Category string

const (
	Repos Category = "repos"
	RPMs  Category = "rpms"
	Certs Category = "certs"
)

// AllCategories lists every category in backup order.
var AllCategories = []Category{Repos, RPMs, Certs}

// Selection is the effective set of categories an operation acts on.
type Selection struct {
	repos bool
	rpms  bool
	certs bool
}

// NewSelection applies the select-all rule: when no category is requested
// every category is selected, otherwise only the requested ones.
func NewSelection(repos, rpms, certs bool) Selection {
	if !repos && !rpms && !certs {
		return Selection{repos: true, rpms: true, certs: true}
	}
	return Selection{repos: repos, rpms: rpms, certs: certs}
}

// Has reports whether c is selected.
func (s Selection) Has(c Category) bool {
	switch c {
	case Repos:
		return s.repos
	case RPMs:
		return s.rpms
	case Certs:
		return s.certs
	}
	return false
}

// Categories returns the selected categories in backup order.
func (s Selection) Categories() []Category {
	var cats []Category
	for _, c := range AllCategories {
		if s.Has(c) {
			cats = append(cats, c)
		}
	}
	return cats
}

func (s Selection) String() string {
	cats := s.Categories()
	parts := make([]string, len(cats))
	for i, c := range cats {
		parts[i] = string(c)
	}
	return strings.Join(parts, ",")
}

// Installer reinstalls a list of packages.
type Installer interface {
	Install(names []string) (*rpm.InstallResult, error)
}

// Config carries everything an operation needs. It is built once by the
// caller so that no operation reads process-global state.
type Config struct {
	BackupRoot string
	ReposDir   string
	AnchorsDir string
	EUID       int

	Runner    runner.Runner
	Packages  rpm.Provider
	Installer Installer
	Log       logrus.FieldLogger
}

// Report summarises what an operation did. Counts are filled in as each
// category completes, so a report returned with an error reflects the work
// done before the failure.
type Report struct {
	Operation     config.Operation
	BackupRoot    string
	Selection     Selection
	Repos         int
	Certs         int
	Packages      int
	CertRefreshes int

	// Unresolved holds the packages dnf could not match during restore.
	Unresolved []string
}

// Manager runs operations against a Config.
type Manager struct {
	cfg Config
	log logrus.FieldLogger
}

// New creates a Manager.
func New(cfg Config) *Manager {
	log := cfg.Log
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Manager{cfg: cfg, log: log}
}

// IsDistributionRepo reports whether a repository file ships with Fedora and
// therefore is not backed up.
func IsDistributionRepo(name string) bool {
	return strings.HasPrefix(name, "fedora")
}
