package prefabs

import (
	"embed"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
)

//go:embed *.yaml scripts/*.tengo
var PrefabsFS embed.FS

// Dir is the on-disk prefab directory consulted before the embedded copy, so
// catalog and script edits apply without a rebuild.
var Dir = "prefabs"

// Load reads a catalog such as "parts.yaml".
func Load(name string) ([]byte, error) {
	return read(cleanPath(name, ""))
}

// LoadScript reads a scene script by scene name, e.g. "ocean".
func LoadScript(name string) ([]byte, error) {
	return read(path.Join("scripts", cleanPath(name, ".tengo")))
}

func read(clean string) ([]byte, error) {
	if data, err := os.ReadFile(filepath.Join(Dir, filepath.FromSlash(clean))); err == nil {
		return data, nil
	}
	return fs.ReadFile(PrefabsFS, clean)
}

// cleanPath strips any leading "prefabs/" or "scripts/" and adds ext when
// the name has none.
func cleanPath(name, ext string) string {
	s := filepath.ToSlash(name)
	for _, prefix := range []string{"prefabs/", "scripts/"} {
		s = strings.TrimPrefix(s, prefix)
	}
	if ext != "" && path.Ext(s) == "" {
		s += ext
	}
	return s
}
