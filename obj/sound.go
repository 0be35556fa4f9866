package obj

import "github.com/milk9111/roadtrip/prefabs"

// Sound plays a clip the first time the car drives into it.
type Sound struct {
	Base
	svc    *Services
	sound  string
	played bool
}

func NewSound(inst Instance, svc *Services) (TriggerZone, error) {
	props, err := prefabs.DecodeProps[prefabs.SoundProps](inst.Props)
	if err != nil {
		return nil, err
	}
	s := &Sound{Base: NewBase(inst, svc.logger()), svc: svc, sound: props.Sound}
	if s.sound == "" && len(inst.Spec.Sounds) > 0 {
		s.sound = inst.Spec.Sounds[0]
	}
	return s, nil
}

func (s *Sound) OnCreate() {
	if s.sound == "" {
		s.log.Warn("sound: no sound configured")
	}
}

func (s *Sound) OnEnterInner(_ Car) {
	if s.played || s.sound == "" {
		return
	}
	s.played = true
	if s.svc.Audio == nil {
		s.log.Warn("sound: no audio service", "sound", s.sound)
		return
	}
	s.svc.Audio.Play(s.sound, nil)
}
