package prefabs

import "gopkg.in/yaml.v3"

// DecodeProps converts loosely typed level props into a tagged struct by
// round-tripping through YAML.
func DecodeProps[T any](raw any) (T, error) {
	var zero T
	if raw == nil {
		return zero, nil
	}
	b, err := yaml.Marshal(raw)
	if err != nil {
		return zero, err
	}
	var out T
	if err := yaml.Unmarshal(b, &out); err != nil {
		return zero, err
	}
	return out, nil
}

// TeleportProps are the per-instance settings of a teleport. Pointers stay
// nil when the level omits the value.
type TeleportProps struct {
	TargetX        *float64 `yaml:"target_x"`
	TargetY        *float64 `yaml:"target_y"`
	TargetLocation string   `yaml:"target_location"`
	Direction      int      `yaml:"direction"`
}

type SoundProps struct {
	Sound string `yaml:"sound"`
}

type BridgeProps struct {
	Direction int `yaml:"direction"`
	PassFrame int `yaml:"pass_frame"`
}

type MedalProps struct {
	Medal int    `yaml:"medal"`
	Line  string `yaml:"line"`
}

// EntranceProps mark a scene doorway on a map.
type EntranceProps struct {
	Location string `yaml:"location"`
}
