package levels

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
)

//go:embed *.json
var LevelsFS embed.FS

var ErrNotFound = errors.New("levels: level not found")

// Dir is checked before the embedded maps so edited levels load without a
// rebuild.
var Dir = "levels"

type Level struct {
	Name     string   `json:"name"`
	Width    int      `json:"width"`
	Height   int      `json:"height"`
	Ambient  []string `json:"ambient,omitempty"`
	CarStart Spawn    `json:"car_start"`
	Entities []Entity `json:"entities,omitempty"`
}

// Spawn is where the car appears when a level is entered from a scene.
type Spawn struct {
	X   float64 `json:"x"`
	Y   float64 `json:"y"`
	Dir int     `json:"dir"`
}

type Entity struct {
	Type  string                 `json:"type"`
	ID    string                 `json:"id"`
	X     float64                `json:"x"`
	Y     float64                `json:"y"`
	Props map[string]interface{} `json:"props,omitempty"`
}

// Load reads a level by name, with or without the .json suffix.
func Load(name string) (*Level, error) {
	file := name
	if !strings.HasSuffix(file, ".json") {
		file += ".json"
	}
	data, err := os.ReadFile(filepath.Join(Dir, file))
	if err != nil {
		data, err = fs.ReadFile(LevelsFS, file)
	}
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("levels: load %s: %w", name, ErrNotFound)
		}
		return nil, fmt.Errorf("levels: load %s: %w", name, err)
	}

	var lvl Level
	if err := json.Unmarshal(data, &lvl); err != nil {
		return nil, fmt.Errorf("levels: unmarshal %s: %w", name, err)
	}
	if lvl.Name == "" {
		lvl.Name = strings.TrimSuffix(path.Base(file), ".json")
	}
	for i := range lvl.Entities {
		if lvl.Entities[i].ID == "" {
			lvl.Entities[i].ID = fmt.Sprintf("%s-%s-%d", lvl.Name, lvl.Entities[i].Type, i)
		}
	}
	return &lvl, nil
}

// Names lists the embedded levels.
func Names() []string {
	entries, err := fs.ReadDir(LevelsFS, ".")
	if err != nil {
		return nil
	}
	var out []string
	for _, e := range entries {
		if n, ok := strings.CutSuffix(e.Name(), ".json"); ok {
			out = append(out, n)
		}
	}
	sort.Strings(out)
	return out
}
