package store

import "time"

// Run is one recorded backup or restore invocation.
type Run struct {
	ID         int64
	CreatedAt  time.Time
	Operation  string
	BackupRoot string
	Categories string // comma-separated, e.g. "repos,rpms,certs"
	Repos      int
	Certs      int
	Packages   int
	Succeeded  bool
	Error      string
}
