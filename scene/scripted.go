package scene

import (
	"fmt"
	"strings"
	"time"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/roadtrip/ledger"
	"github.com/milk9111/roadtrip/prefabs"
	"github.com/milk9111/roadtrip/sequence"
)

const sceneDispatchScript = `
build(__engine)
`

// Scripted is a cutscene whose chain is built by a tengo script in
// prefabs/scripts. The script defines build(engine); queries answer right
// away, builders append steps that run once the script returns.
type Scripted struct {
	cutscene
	name    string
	ambient []string
	steps   []sequence.Step
}

func NewScripted(name string, ambient ...string) *Scripted {
	return &Scripted{name: name, ambient: ambient}
}

func (s *Scripted) Name() string { return s.name }

func (s *Scripted) Enter(st *Stage) error {
	s.st = st
	s.steps = nil

	src, err := prefabs.LoadScript(s.name)
	if err != nil {
		return fmt.Errorf("scene: script %s: %w", s.name, err)
	}

	script := tengo.NewScript([]byte(string(src) + "\n" + sceneDispatchScript))
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))
	if err := script.Add("__engine", s.engine(st)); err != nil {
		return fmt.Errorf("scene: script %s: %w", s.name, err)
	}

	compiled, err := script.Compile()
	if err != nil {
		return fmt.Errorf("scene: compile %s: %w", s.name, err)
	}
	if err := compiled.Run(); err != nil {
		return fmt.Errorf("scene: run %s: %w", s.name, err)
	}

	st.PlayAmbient(s.ambient...)
	s.run(st, s.name, s.steps...)
	return nil
}

// Steps is what the script queued on its last entry.
func (s *Scripted) Steps() []sequence.Step { return s.steps }

func (s *Scripted) engine(st *Stage) *tengo.ImmutableMap {
	values := map[string]tengo.Object{}

	query := func(name string, fn func(args ...tengo.Object) bool) {
		values[name] = &tengo.UserFunction{Name: name, Value: func(args ...tengo.Object) (tengo.Object, error) {
			if fn(args...) {
				return tengo.TrueValue, nil
			}
			return tengo.FalseValue, nil
		}}
	}
	builder := func(name string, fn func(args ...tengo.Object) error) {
		values[name] = &tengo.UserFunction{Name: name, Value: func(args ...tengo.Object) (tengo.Object, error) {
			if err := fn(args...); err != nil {
				return nil, fmt.Errorf("%s: %w", name, err)
			}
			return tengo.UndefinedValue, nil
		}}
	}

	query("has_flag", func(args ...tengo.Object) bool {
		return len(args) > 0 && st.Ledger.HasFlag(objectAsString(args[0]))
	})
	query("has_part", func(args ...tengo.Object) bool {
		return len(args) > 0 && st.Ledger.HasPart(ledger.PartID(objectAsInt(args[0])))
	})
	query("car_has_part", func(args ...tengo.Object) bool {
		return len(args) > 0 && st.Car != nil && st.Car.HasPart(ledger.PartID(objectAsInt(args[0])))
	})
	query("mission_complete", func(args ...tengo.Object) bool {
		return len(args) > 0 && st.Ledger.MissionComplete(objectAsInt(args[0]))
	})
	values["car_property"] = &tengo.UserFunction{Name: "car_property", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 1 || st.Car == nil {
			return &tengo.Int{Value: 0}, nil
		}
		return &tengo.Int{Value: int64(st.Car.Property(objectAsString(args[0])))}, nil
	}}

	builder("line", func(args ...tengo.Object) error {
		if len(args) < 2 {
			return tengo.ErrWrongNumArguments
		}
		s.steps = append(s.steps, sequence.Line(st.Actor(objectAsString(args[0])), objectAsString(args[1])))
		return nil
	})
	builder("sound", func(args ...tengo.Object) error {
		if len(args) < 1 {
			return tengo.ErrWrongNumArguments
		}
		s.steps = append(s.steps, sequence.Sound(objectAsString(args[0])))
		return nil
	})
	builder("stop", func(args ...tengo.Object) error {
		if len(args) < 1 {
			return tengo.ErrWrongNumArguments
		}
		id := objectAsString(args[0])
		s.steps = append(s.steps, sequence.Do(func() {
			if st.Audio != nil {
				st.Audio.Stop(id)
			}
		}))
		return nil
	})
	builder("delay", func(args ...tengo.Object) error {
		if len(args) < 1 {
			return tengo.ErrWrongNumArguments
		}
		s.steps = append(s.steps, sequence.Delay(time.Duration(objectAsInt(args[0]))*time.Millisecond))
		return nil
	})
	builder("reward", func(args ...tengo.Object) error {
		if len(args) < 1 {
			return tengo.ErrWrongNumArguments
		}
		spec, err := prefabs.DecodeProps[RewardSpec](objectToAny(args[0]))
		if err != nil {
			return err
		}
		r, err := spec.Reward()
		if err != nil {
			return err
		}
		s.steps = append(s.steps, r.Step(st))
		return nil
	})
	builder("go", func(args ...tengo.Object) error {
		if len(args) < 1 {
			return tengo.ErrWrongNumArguments
		}
		s.steps = append(s.steps, st.Go(objectAsString(args[0])))
		return nil
	})

	return &tengo.ImmutableMap{Value: values}
}

func objectAsString(obj tengo.Object) string {
	if obj == nil {
		return ""
	}
	switch v := obj.(type) {
	case *tengo.String:
		return v.Value
	default:
		return strings.Trim(v.String(), "\"")
	}
}

func objectAsInt(obj tengo.Object) int {
	if obj == nil {
		return 0
	}
	if v, ok := tengo.ToInt(obj); ok {
		return v
	}
	return 0
}

func objectToAny(obj tengo.Object) any {
	if obj == nil {
		return nil
	}

	switch v := obj.(type) {
	case *tengo.String:
		return v.Value
	case *tengo.Int:
		return int(v.Value)
	case *tengo.Float:
		return v.Value
	case *tengo.Bool:
		return !v.IsFalsy()
	case *tengo.Array:
		out := make([]any, 0, len(v.Value))
		for _, item := range v.Value {
			out = append(out, objectToAny(item))
		}
		return out
	case *tengo.ImmutableArray:
		out := make([]any, 0, len(v.Value))
		for _, item := range v.Value {
			out = append(out, objectToAny(item))
		}
		return out
	case *tengo.Map:
		out := make(map[string]any, len(v.Value))
		for k, item := range v.Value {
			out[k] = objectToAny(item)
		}
		return out
	case *tengo.ImmutableMap:
		out := make(map[string]any, len(v.Value))
		for k, item := range v.Value {
			out[k] = objectToAny(item)
		}
		return out
	case *tengo.Undefined:
		return nil
	default:
		return v.String()
	}
}
