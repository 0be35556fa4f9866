package prefabs

import (
	"fmt"
	"time"

	"github.com/milk9111/roadtrip/anim"
	"github.com/milk9111/roadtrip/audio"
	"github.com/milk9111/roadtrip/ledger"
	"gopkg.in/yaml.v3"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// ClipSpec authors an animation either as an explicit frame list or as an
// inclusive from..to range, which may run backwards.
type ClipSpec struct {
	Frames []int   `yaml:"frames"`
	From   int     `yaml:"from"`
	To     int     `yaml:"to"`
	FPS    float64 `yaml:"fps"`
	Loop   bool    `yaml:"loop"`
}

func (c ClipSpec) Clip() anim.Clip {
	frames := c.Frames
	if len(frames) == 0 {
		frames = anim.Span(c.From, c.To)
	}
	return anim.Clip{Frames: frames, FPS: c.FPS, Loop: c.Loop}
}

// ExtentSpec is a half-width/half-height box centred on the object.
type ExtentSpec struct {
	W float64 `yaml:"w"`
	H float64 `yaml:"h"`
}

type ZoneSpec struct {
	Outer ExtentSpec `yaml:"outer"`
	Inner ExtentSpec `yaml:"inner"`
}

// ObjectSpec is the shared definition of one map object type.
type ObjectSpec struct {
	Type       string              `yaml:"type"`
	Zone       ZoneSpec            `yaml:"zone"`
	Clips      map[string]ClipSpec `yaml:"clips"`
	Sounds     []string            `yaml:"sounds"`
	CloseSound string              `yaml:"close_sound"`
	PassFrame  int                 `yaml:"pass_frame"`
	StepBack   int                 `yaml:"step_back"`
	Medal      int                 `yaml:"medal"`
	Line       string              `yaml:"line"`
	FadeMS     int                 `yaml:"fade_ms"`
	CooldownMS int                 `yaml:"cooldown_ms"`
}

func (o ObjectSpec) Fade() time.Duration     { return time.Duration(o.FadeMS) * time.Millisecond }
func (o ObjectSpec) Cooldown() time.Duration { return time.Duration(o.CooldownMS) * time.Millisecond }

type objectsFile struct {
	Objects []ObjectSpec `yaml:"objects"`
}

// LoadObjectSpecs reads objects.yaml keyed by type.
func LoadObjectSpecs() (map[string]ObjectSpec, error) {
	file, err := LoadSpec[objectsFile]("objects.yaml")
	if err != nil {
		return nil, err
	}
	out := make(map[string]ObjectSpec, len(file.Objects))
	for _, o := range file.Objects {
		if o.Type == "" {
			return nil, fmt.Errorf("prefabs: objects.yaml: object without type")
		}
		out[o.Type] = o
	}
	return out, nil
}

type PartSpec struct {
	ID         int            `yaml:"id"`
	Name       string         `yaml:"name"`
	Reward     bool           `yaml:"reward"`
	Postal     bool           `yaml:"postal"`
	Properties map[string]int `yaml:"properties"`
}

type partsFile struct {
	Yard  ledger.YardArea `yaml:"yard"`
	Parts []PartSpec      `yaml:"parts"`
}

// LoadPartCatalog reads parts.yaml into the ledger's catalog form.
func LoadPartCatalog() (ledger.Catalog, error) {
	file, err := LoadSpec[partsFile]("parts.yaml")
	if err != nil {
		return ledger.Catalog{}, err
	}
	cat := ledger.Catalog{Yard: file.Yard, Properties: map[ledger.PartID]map[string]int{}}
	for _, p := range file.Parts {
		id := ledger.PartID(p.ID)
		if p.Reward {
			cat.RewardPool = append(cat.RewardPool, id)
		}
		if p.Postal {
			cat.Postal = append(cat.Postal, id)
		}
		if len(p.Properties) > 0 {
			cat.Properties[id] = p.Properties
		}
	}
	return cat, nil
}

type missionsFile struct {
	Missions []ledger.Mission `yaml:"missions"`
}

func LoadMissions() ([]ledger.Mission, error) {
	file, err := LoadSpec[missionsFile]("missions.yaml")
	if err != nil {
		return nil, err
	}
	return file.Missions, nil
}

type SoundSpec struct {
	ID         string  `yaml:"id"`
	File       string  `yaml:"file"`
	DurationMS int     `yaml:"duration_ms"`
	Loop       bool    `yaml:"loop"`
	Volume     float64 `yaml:"volume"`
}

type soundsFile struct {
	Sounds []SoundSpec `yaml:"sounds"`
}

func LoadSoundCatalog() (audio.Catalog, error) {
	file, err := LoadSpec[soundsFile]("sounds.yaml")
	if err != nil {
		return nil, err
	}
	cat := make(audio.Catalog, len(file.Sounds))
	for _, s := range file.Sounds {
		cat[s.ID] = audio.Sound{
			ID:       s.ID,
			File:     s.File,
			Duration: time.Duration(s.DurationMS) * time.Millisecond,
			Loop:     s.Loop,
			Volume:   s.Volume,
		}
	}
	return cat, nil
}

// Catalogs bundles every definition file.
type Catalogs struct {
	Objects  map[string]ObjectSpec
	Parts    ledger.Catalog
	Missions []ledger.Mission
	Sounds   audio.Catalog
}

func LoadCatalogs() (*Catalogs, error) {
	objects, err := LoadObjectSpecs()
	if err != nil {
		return nil, err
	}
	parts, err := LoadPartCatalog()
	if err != nil {
		return nil, err
	}
	missions, err := LoadMissions()
	if err != nil {
		return nil, err
	}
	sounds, err := LoadSoundCatalog()
	if err != nil {
		return nil, err
	}
	return &Catalogs{Objects: objects, Parts: parts, Missions: missions, Sounds: sounds}, nil
}
