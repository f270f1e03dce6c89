package migrate

import (
	"fmt"
	"path/filepath"

	"github.com/blackwell-systems/toolbox-migrate/internal/fsutil"
)

// copyAll copies each named entry from srcDir to dstDir and returns how many
// files were copied. Entries that are not regular files are skipped.
func (m *Manager) copyAll(srcDir, dstDir string, names []string, description string) (int, error) {
	copied := 0
	for _, name := range names {
		if !fsutil.IsRegular(srcDir, name) {
			m.log.WithField("path", filepath.Join(srcDir, name)).Debugf("Skipping %s entry that is not a regular file", description)
			continue
		}

		m.log.Debugf("Copying %s: %s->%s", description, filepath.Join(srcDir, name), filepath.Join(dstDir, name))
		if err := fsutil.CopyFile(srcDir, dstDir, name); err != nil {
			return copied, fmt.Errorf("failed to copy %s %s: %w", description, name, err)
		}
		copied++
	}
	return copied, nil
}
