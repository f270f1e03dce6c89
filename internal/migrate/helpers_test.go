package migrate

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"

	"github.com/blackwell-systems/toolbox-migrate/internal/rpm"
	"github.com/blackwell-systems/toolbox-migrate/internal/runner"
)

// fixture is a throwaway system layout: a repo dir, an anchor dir and a
// backup root, all under one temp dir.
type fixture struct {
	root       string
	reposDir   string
	anchorsDir string
	backupRoot string
	runner     *runner.Fake
	hook       *test.Hook
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	root := t.TempDir()
	f := &fixture{
		root:       root,
		reposDir:   filepath.Join(root, "etc", "yum.repos.d"),
		anchorsDir: filepath.Join(root, "etc", "pki", "anchors"),
		backupRoot: filepath.Join(root, "home", "alice", ".local", "share", "toolbox-backup"),
		runner:     runner.NewFake(),
	}
	for _, dir := range []string{f.reposDir, f.anchorsDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			t.Fatalf("failed to create %s: %v", dir, err)
		}
	}
	return f
}

func (f *fixture) manager(euid int) *Manager {
	log, hook := test.NewNullLogger()
	log.SetLevel(logrus.DebugLevel)
	f.hook = hook

	client := rpm.NewClient(f.runner, log)
	return New(Config{
		BackupRoot: f.backupRoot,
		ReposDir:   f.reposDir,
		AnchorsDir: f.anchorsDir,
		EUID:       euid,
		Runner:     f.runner,
		Packages:   client,
		Installer:  client,
		Log:        log,
	})
}

func (f *fixture) warnings() []string {
	var msgs []string
	for _, e := range f.hook.AllEntries() {
		if e.Level == logrus.WarnLevel {
			msgs = append(msgs, e.Message)
		}
	}
	return msgs
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("failed to create parent of %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

func listNames(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("failed to list %s: %v", dir, err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names
}
