// Package paths provides filesystem path helpers.
package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// Expand expands a path to avoid `~`.
func Expand(path string) (string, error) {
	if !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "getting user home dir")
	}
	return filepath.Join(home, path[2:]), nil
}
