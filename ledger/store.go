package ledger

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// ErrNoSave is returned by Load when the profile has never been saved.
var ErrNoSave = errors.New("ledger: no save for profile")

// Store persists snapshots by profile id.
type Store interface {
	Load(ctx context.Context, profile string) (*Snapshot, error)
	Save(ctx context.Context, profile string, snap *Snapshot) error
}

// Memory keeps snapshots in process. Saved values are copied.
type Memory struct {
	mu    sync.Mutex
	saves map[string][]byte
}

func NewMemory() *Memory {
	return &Memory{saves: map[string][]byte{}}
}

func (m *Memory) Load(_ context.Context, profile string) (*Snapshot, error) {
	m.mu.Lock()
	data, ok := m.saves[profile]
	m.mu.Unlock()
	if !ok {
		return nil, ErrNoSave
	}
	return decodeYAML(data)
}

func (m *Memory) Save(_ context.Context, profile string, snap *Snapshot) error {
	data, err := yaml.Marshal(snap)
	if err != nil {
		return fmt.Errorf("ledger: encode snapshot: %w", err)
	}
	m.mu.Lock()
	m.saves[profile] = data
	m.mu.Unlock()
	return nil
}

// FileStore writes one YAML file per profile under Dir.
type FileStore struct {
	Dir string
}

func NewFileStore(dir string) *FileStore {
	return &FileStore{Dir: dir}
}

func (f *FileStore) path(profile string) (string, error) {
	if profile == "" || strings.ContainsAny(profile, `/\`) || profile == "." || profile == ".." {
		return "", fmt.Errorf("ledger: invalid profile %q", profile)
	}
	return filepath.Join(f.Dir, profile+".yaml"), nil
}

func (f *FileStore) Load(_ context.Context, profile string) (*Snapshot, error) {
	p, err := f.path(profile)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(p)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNoSave
	}
	if err != nil {
		return nil, fmt.Errorf("ledger: read %s: %w", p, err)
	}
	return decodeYAML(data)
}

func (f *FileStore) Save(_ context.Context, profile string, snap *Snapshot) error {
	p, err := f.path(profile)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(f.Dir, 0o755); err != nil {
		return fmt.Errorf("ledger: create save dir: %w", err)
	}
	data, err := yaml.Marshal(snap)
	if err != nil {
		return fmt.Errorf("ledger: encode snapshot: %w", err)
	}
	tmp := p + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("ledger: write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, p); err != nil {
		return fmt.Errorf("ledger: replace %s: %w", p, err)
	}
	return nil
}

func decodeYAML(data []byte) (*Snapshot, error) {
	var snap Snapshot
	if err := yaml.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("ledger: decode snapshot: %w", err)
	}
	return &snap, nil
}
