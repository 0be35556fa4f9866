package ledger

import (
	"context"
	"fmt"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

const gdataProperty = "ledger"

// GdataStore saves into the platform's per-user app data location.
type GdataStore struct {
	m *gdata.Manager
}

// OpenGdataStore opens the app data root for appName.
func OpenGdataStore(appName string) (*GdataStore, error) {
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return nil, fmt.Errorf("ledger: open gdata %q: %w", appName, err)
	}
	return &GdataStore{m: m}, nil
}

func (g *GdataStore) Load(_ context.Context, profile string) (*Snapshot, error) {
	if !g.m.ObjectPropExists(profile, gdataProperty) {
		return nil, ErrNoSave
	}
	data, err := g.m.LoadObjectProp(profile, gdataProperty)
	if err != nil {
		return nil, fmt.Errorf("ledger: gdata load %s: %w", profile, err)
	}
	return decodeYAML(data)
}

func (g *GdataStore) Save(_ context.Context, profile string, snap *Snapshot) error {
	data, err := yaml.Marshal(snap)
	if err != nil {
		return fmt.Errorf("ledger: encode snapshot: %w", err)
	}
	if err := g.m.SaveObjectProp(profile, gdataProperty, data); err != nil {
		return fmt.Errorf("ledger: gdata save %s: %w", profile, err)
	}
	return nil
}
