package guard

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

func TestRequireSuperuser(t *testing.T) {
	if err := RequireSuperuser(0, "restore"); err != nil {
		t.Errorf("expected root to pass, got %v", err)
	}

	err := RequireSuperuser(1000, "restore")
	if !errors.Is(err, ErrPermissionDenied) {
		t.Fatalf("expected ErrPermissionDenied, got %v", err)
	}
	if !strings.Contains(err.Error(), "restore") {
		t.Errorf("expected operation name in error, got %q", err.Error())
	}
}

func TestEnsureDir(t *testing.T) {
	log, hook := test.NewNullLogger()
	log.SetLevel(logrus.DebugLevel)

	t.Run("existing directory", func(t *testing.T) {
		hook.Reset()
		if err := EnsureDir(log, t.TempDir(), "toolbox", false); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
		if len(hook.AllEntries()) != 0 {
			t.Errorf("expected no log entries, got %d", len(hook.AllEntries()))
		}
	})

	t.Run("missing without create", func(t *testing.T) {
		missing := filepath.Join(t.TempDir(), "nope")
		err := EnsureDir(log, missing, "CA cert", false)
		if !errors.Is(err, ErrMissingDirectory) {
			t.Fatalf("expected ErrMissingDirectory, got %v", err)
		}
		if !strings.Contains(err.Error(), missing) || !strings.Contains(err.Error(), "CA cert") {
			t.Errorf("error should name path and description, got %q", err.Error())
		}
		if _, statErr := os.Stat(missing); !os.IsNotExist(statErr) {
			t.Error("directory must not be created when create is false")
		}
	})

	t.Run("missing with create", func(t *testing.T) {
		hook.Reset()
		missing := filepath.Join(t.TempDir(), "a", "repos")
		if err := EnsureDir(log, missing, "yum repo", true); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		info, err := os.Stat(missing)
		if err != nil || !info.IsDir() {
			t.Fatalf("expected directory to be created: %v", err)
		}
		if hook.LastEntry() == nil {
			t.Fatal("expected log entries for created directory")
		}
		if hook.AllEntries()[0].Level != logrus.WarnLevel {
			t.Errorf("expected warning first, got %v", hook.AllEntries()[0].Level)
		}
	})

	t.Run("file in place of directory", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "certs")
		if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
		if err := EnsureDir(log, path, "CA cert", true); !errors.Is(err, ErrMissingDirectory) {
			t.Errorf("expected ErrMissingDirectory, got %v", err)
		}
	})
}

func TestRequireFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "toolbox-rpms.backup")
	if err := os.WriteFile(file, []byte("vim"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := RequireFile(file); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := RequireFile(filepath.Join(dir, "missing")); !errors.Is(err, ErrMissingFile) {
		t.Errorf("expected ErrMissingFile, got %v", err)
	}
	if err := RequireFile(dir); !errors.Is(err, ErrMissingFile) {
		t.Errorf("expected ErrMissingFile for directory, got %v", err)
	}
}

func TestList(t *testing.T) {
	log, hook := test.NewNullLogger()

	t.Run("sorted entries", func(t *testing.T) {
		hook.Reset()
		dir := t.TempDir()
		for _, name := range []string{"b.repo", "a.repo", "c.repo"} {
			if err := os.WriteFile(filepath.Join(dir, name), nil, 0644); err != nil {
				t.Fatal(err)
			}
		}

		got, err := List(log, dir, "yum repo")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := []string{"a.repo", "b.repo", "c.repo"}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("List() = %v, want %v", got, want)
		}
		if len(hook.AllEntries()) != 0 {
			t.Error("expected no warnings for non-empty directory")
		}
	})

	t.Run("empty directory warns", func(t *testing.T) {
		hook.Reset()
		dir := t.TempDir()
		got, err := List(log, dir, "CA cert")
		if err != nil {
			t.Fatalf("empty directory must not be an error: %v", err)
		}
		if len(got) != 0 {
			t.Errorf("expected empty result, got %v", got)
		}
		entry := hook.LastEntry()
		if entry == nil || entry.Level != logrus.WarnLevel {
			t.Fatalf("expected a warning, got %+v", entry)
		}
		if !strings.Contains(entry.Message, "Did not find any CA cert to restore") {
			t.Errorf("unexpected warning message %q", entry.Message)
		}
	})

	t.Run("missing directory", func(t *testing.T) {
		_, err := List(log, filepath.Join(t.TempDir(), "gone"), "CA cert")
		if !errors.Is(err, ErrMissingDirectory) {
			t.Errorf("expected ErrMissingDirectory, got %v", err)
		}
	})
}

func TestReadDirDoesNotWarn(t *testing.T) {
	names, err := ReadDir(t.TempDir(), "yum repo")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(names) != 0 {
		t.Errorf("expected no entries, got %v", names)
	}
}
