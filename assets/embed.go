package assets

import (
	"embed"
	"os"
	"path/filepath"
	"strings"
)

//go:embed *.yaml
var assetsFS embed.FS

// LoadFile loads an asset by assets-relative path. A file of the same name
// under ./assets on disk wins over the embedded copy.
func LoadFile(path string) ([]byte, error) {
	clean := cleanAssetPath(path)
	if data, err := os.ReadFile(filepath.Join("assets", filepath.FromSlash(clean))); err == nil {
		return data, nil
	}
	return assetsFS.ReadFile(clean)
}

func cleanAssetPath(path string) string {
	s := filepath.ToSlash(path)
	if after, ok := strings.CutPrefix(s, "assets/"); ok {
		return after
	}
	return s
}
