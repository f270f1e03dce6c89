package migrate

// Cleanup accepts the same selection as Backup and Restore and does nothing.
func (m *Manager) Cleanup(sel Selection) error {
	m.log.Debugf("Cleanup of %s in %s is not implemented; nothing to do", sel, m.cfg.BackupRoot)
	return nil
}
