package prefabs

import (
	"embed"
	"os"
	"path/filepath"
	"strings"
)

//go:embed *.yaml
var PrefabsFS embed.FS

// Load reads a prefab from disk, trying the name as given and then under
// prefabs/, before falling back to the embedded copy.
func Load(name string) ([]byte, error) {
	clean := cleanPrefabPath(name)
	for _, p := range diskPrefabPaths(name, clean) {
		if data, err := os.ReadFile(p); err == nil {
			return data, nil
		}
	}
	return PrefabsFS.ReadFile(clean)
}

// Dir returns the directory a watcher should observe for name.
func Dir(name string) string {
	if name != "" {
		if _, err := os.Stat(name); err == nil {
			return filepath.Dir(name)
		}
	}
	return "prefabs"
}

func cleanPrefabPath(path string) string {
	if path == "" {
		return ""
	}
	s := filepath.ToSlash(path)
	if after, ok := strings.CutPrefix(s, "prefabs/"); ok {
		return after
	}
	return filepath.Base(s)
}

func diskPrefabPaths(name, clean string) []string {
	if name == "" {
		return nil
	}
	return []string{name, filepath.Join("prefabs", filepath.FromSlash(clean))}
}
