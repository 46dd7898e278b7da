package platform

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// SecretFileMode is applied to files holding credentials (.env, creds caches).
const SecretFileMode os.FileMode = 0600

// Chmod sets file permissions. On Windows this is a no-op because Windows
// does not support Unix-style permission bits.
func Chmod(path string, mode os.FileMode) error {
	if runtime.GOOS == "windows" {
		return nil
	}
	return os.Chmod(path, mode)
}

// WriteSecretFile writes data to path and restricts it to the owner, even
// when the file already existed with wider permissions.
func WriteSecretFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating directory for %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, SecretFileMode); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := Chmod(path, SecretFileMode); err != nil {
		return fmt.Errorf("restricting permissions on %s: %w", path, err)
	}
	return nil
}
