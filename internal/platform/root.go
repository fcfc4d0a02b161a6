package platform

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/aretw0/folio/internal/config"
)

// FindRoot looks upwards from startDir for a project root.
// Indicators are: a folio.yaml file or a content/ directory.
// It returns the absolute path of the first directory that has either.
func FindRoot(startDir string) (string, error) {
	abs, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	dir := abs
	for {
		if isFile(filepath.Join(dir, config.FileName)) || isDir(filepath.Join(dir, "content")) {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root
			break
		}
		dir = parent
	}

	return "", fmt.Errorf("no %s or content directory found above %s", config.FileName, abs)
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
