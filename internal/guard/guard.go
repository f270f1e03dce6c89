// Package guard provides the precondition checks run before backup and
// restore touch the filesystem: privilege level, directory and file
// existence, and directory listings.
package guard

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/sirupsen/logrus"
)

var (
	// ErrPermissionDenied is returned when an operation needs superuser
	// privilege and the effective user does not have it.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrMissingDirectory is returned when a required directory is absent.
	ErrMissingDirectory = errors.New("missing directory")

	// ErrMissingFile is returned when a required file is absent.
	ErrMissingFile = errors.New("missing file")
)

// RequireSuperuser fails with ErrPermissionDenied unless euid is 0.
func RequireSuperuser(euid int, operation string) error {
	if euid != 0 {
		return fmt.Errorf("must run %s operation as superuser (euid %d): %w", operation, euid, ErrPermissionDenied)
	}
	return nil
}

// EnsureDir verifies that path is a directory. When create is true a missing
// directory is created (with parents); otherwise ErrMissingDirectory is
// returned naming the path and description.
func EnsureDir(log logrus.FieldLogger, path, description string, create bool) error {
	info, err := os.Stat(path)
	if err == nil && info.IsDir() {
		return nil
	}
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to stat %s dir at %s: %w", description, path, err)
	}
	if err == nil {
		return fmt.Errorf("%s path %s is not a directory: %w", description, path, ErrMissingDirectory)
	}

	if !create {
		return fmt.Errorf("unable to find %s dir at %s: %w", description, path, ErrMissingDirectory)
	}

	log.WithField("path", path).Warnf("Unable to find %s dir at %s", description, path)
	log.WithField("path", path).Debugf("Making %s dir at %s", description, path)
	if err := os.MkdirAll(path, 0755); err != nil {
		return fmt.Errorf("failed to create %s dir at %s: %w", description, path, err)
	}
	return nil
}

// RequireFile fails with ErrMissingFile unless path is a regular file.
func RequireFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("unable to find %s: %w", path, ErrMissingFile)
		}
		return fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("%s is not a regular file: %w", path, ErrMissingFile)
	}
	return nil
}

// ReadDir returns the names of the entries in path, sorted. A missing
// directory is reported as ErrMissingDirectory.
func ReadDir(path, description string) ([]string, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("unable to find %s dir at %s: %w", description, path, ErrMissingDirectory)
		}
		return nil, fmt.Errorf("failed to list %s dir at %s: %w", description, path, err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}

// List is ReadDir for restore sources. An empty directory is not an error:
// a warning is logged and an empty slice returned.
func List(log logrus.FieldLogger, path, description string) ([]string, error) {
	names, err := ReadDir(path, description)
	if err != nil {
		return nil, err
	}

	if len(names) == 0 {
		log.WithField("path", path).Warnf("Did not find any %s to restore at %s", description, path)
	}
	return names, nil
}
