package initcmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ConfigExists reports whether a config file is present at path.
func ConfigExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// BackupConfig copies an existing config aside before overwriting.
// Returns the backup path, or empty when there was nothing to back up.
func BackupConfig(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("read existing config: %w", err)
	}

	backupPath := path + ".bak"
	_ = os.Remove(backupPath)

	if err := os.WriteFile(backupPath, content, 0o644); err != nil {
		return "", fmt.Errorf("create backup: %w", err)
	}

	return backupPath, nil
}

// expandHome resolves a leading ~/ against the user home directory.
func expandHome(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}
