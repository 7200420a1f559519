package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// NextAvailableFilename returns path if nothing exists there yet, otherwise the first of name_1.ext, name_2.ext, ...
// that is free.
func NextAvailableFilename(path string) string {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return path
	}

	dir := filepath.Dir(path)
	ext := filepath.Ext(path)
	name := strings.TrimSuffix(filepath.Base(path), ext)

	for i := 1; ; i++ {
		newPath := filepath.Join(dir, fmt.Sprintf("%s_%d%s", name, i, ext))
		if _, err := os.Stat(newPath); os.IsNotExist(err) {
			return newPath
		}
	}
}
