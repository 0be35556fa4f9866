package obj

import (
	"github.com/milk9111/roadtrip/anim"
	"github.com/milk9111/roadtrip/prefabs"
)

const (
	defaultPassFrame = 37
	defaultStepBack  = 2
)

type BridgeState int

const (
	BridgeClosed BridgeState = iota
	BridgeOpening
	BridgeOpen
	BridgeClosing
)

func (s BridgeState) String() string {
	switch s {
	case BridgeClosed:
		return "closed"
	case BridgeOpening:
		return "opening"
	case BridgeOpen:
		return "open"
	case BridgeClosing:
		return "closing"
	default:
		return "unknown"
	}
}

// Bridge opens when the car approaches and only lets it across once the
// opening clip has passed passFrame.
type Bridge struct {
	Base
	svc        *Services
	state      BridgeState
	handle     *anim.Handle
	passFrame  int
	stepBack   int
	openSound  string
	closeSound string
}

func NewBridge(inst Instance, svc *Services) (TriggerZone, error) {
	props, err := prefabs.DecodeProps[prefabs.BridgeProps](inst.Props)
	if err != nil {
		return nil, err
	}
	b := &Bridge{
		Base:       NewBase(inst, svc.logger()),
		svc:        svc,
		passFrame:  inst.Spec.PassFrame,
		stepBack:   inst.Spec.StepBack,
		closeSound: inst.Spec.CloseSound,
	}
	b.dir = props.Direction
	if props.PassFrame > 0 {
		b.passFrame = props.PassFrame
	}
	if b.passFrame <= 0 {
		b.passFrame = defaultPassFrame
	}
	if b.stepBack <= 0 {
		b.stepBack = defaultStepBack
	}
	if len(inst.Spec.Sounds) > 0 {
		b.openSound = inst.Spec.Sounds[0]
	}
	return b, nil
}

func (b *Bridge) State() BridgeState { return b.state }
func (b *Bridge) PassFrame() int     { return b.passFrame }

func (b *Bridge) OnCreate() {
	for _, clip := range []string{"opening", "closing"} {
		if !b.anim.Defined(clip) {
			b.log.Warn("bridge: clip not defined", "clip", clip)
		}
	}
}

func (b *Bridge) OnEnterOuter(_ Car) {
	if b.state != BridgeClosed {
		b.log.Debug("bridge: already moving", "state", b.state)
		return
	}
	b.setState(BridgeOpening)
	if b.openSound != "" && b.svc.Audio != nil {
		b.svc.Audio.Play(b.openSound, nil)
	}
	b.play("opening", BridgeOpen)
}

func (b *Bridge) OnExitOuter(_ Car) {
	if b.state != BridgeOpen || b.anim.Playing() {
		return
	}
	b.setState(BridgeClosing)
	if b.closeSound != "" && b.svc.Audio != nil {
		b.svc.Audio.Play(b.closeSound, nil)
	}
	b.play("closing", BridgeClosed)
}

// OnEnterInner pushes the car back unless the bridge is far enough open.
func (b *Bridge) OnEnterInner(car Car) {
	if b.Passable() {
		return
	}
	b.log.Debug("bridge: blocked", "state", b.state, "frame", b.anim.Frame())
	car.SetSpeed(0)
	car.StepBack(b.stepBack)
}

// Passable reports whether a car may cross right now.
func (b *Bridge) Passable() bool {
	return b.state == BridgeOpen && b.anim.Frame() >= b.passFrame
}

func (b *Bridge) play(clip string, next BridgeState) {
	h, err := b.anim.Play(clip)
	if err != nil {
		b.log.Error("bridge: play clip", "clip", clip, "err", err)
		b.setState(next)
		return
	}
	b.handle = h
	h.OnComplete(b.svc.Timers.Wrap(func() {
		if b.handle != h {
			return
		}
		b.handle = nil
		b.setState(next)
	}))
}

func (b *Bridge) setState(s BridgeState) {
	b.log.Debug("bridge: state", "from", b.state, "to", s)
	b.state = s
}
