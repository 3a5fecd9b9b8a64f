package levels

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

//go:embed *.yaml
var LevelsFS embed.FS

var ErrNotFound = errors.New("levels: level not found")

// FileName returns the file of level n.
func FileName(n int) string {
	return fmt.Sprintf("level_%d.yaml", n)
}

// Load reads, parses and validates level n. A level file under ./levels on
// disk takes precedence over the embedded copy.
func Load(n int) (*Level, error) {
	if n < 1 {
		return nil, fmt.Errorf("levels: load %d: %w", n, ErrNotFound)
	}
	data, err := readLevel(FileName(n))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("levels: load %d: %w", n, ErrNotFound)
		}
		return nil, fmt.Errorf("levels: read level %d: %w", n, err)
	}
	lvl, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("levels: level %d: %w", n, err)
	}
	lvl.Number = n
	return lvl, nil
}

// Exists reports whether level n can be loaded.
func Exists(n int) bool {
	if n < 1 {
		return false
	}
	_, err := readLevel(FileName(n))
	return err == nil
}

// Count returns the number of consecutive levels starting at 1.
func Count() int {
	n := 0
	for Exists(n + 1) {
		n++
	}
	return n
}

func readLevel(name string) ([]byte, error) {
	clean := filepath.ToSlash(name)
	clean = strings.TrimPrefix(clean, "levels/")
	if data, err := os.ReadFile(filepath.Join("levels", filepath.FromSlash(clean))); err == nil {
		return data, nil
	}
	return fs.ReadFile(LevelsFS, clean)
}
