package main

import (
	"fmt"
	"image/color"
	"log/slog"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/roadtrip/assets"
	"github.com/milk9111/roadtrip/audio"
	"github.com/milk9111/roadtrip/obj"
	"github.com/milk9111/roadtrip/scene"
	"github.com/milk9111/roadtrip/sched"
	"github.com/milk9111/roadtrip/session"
	"github.com/milk9111/roadtrip/vehicle"
	"golang.org/x/image/colornames"
)

const (
	baseWidth  = 640
	baseHeight = 480

	throttleForward = 3.0
	throttleReverse = -1.5
	turnEvery       = 6
)

// speakers plays through the sound card when the catalog's files are on
// disk or embedded, and falls back to timed silence otherwise.
func speakers(catalog audio.Catalog, scope *sched.Scope, log *slog.Logger) audio.Service {
	files := make([]string, 0, len(catalog))
	for _, s := range catalog {
		files = append(files, s.File)
	}
	if !assets.HasAudio(files...) {
		log.Warn("no audio files found, playing silently")
		return session.Headless(catalog, scope, log)
	}
	return audio.NewMixer(catalog, assets.LoadAudioPlayer, scope, log)
}

type Game struct {
	frames int
	debug  bool
	sess   *session.Session
	turnT  int
	notice string
}

func NewGame(sess *session.Session, debug bool) *Game {
	return &Game{sess: sess, debug: debug}
}

func (g *Game) Update() error {
	g.frames++

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF3) {
		g.debug = !g.debug
	}

	g.readDrive()

	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		if m, gifts, ok := g.sess.OpenMailbox(); ok {
			g.notice = fmt.Sprintf("letter %d, %d parts", m.ID, len(gifts))
		} else {
			g.notice = "mailbox empty"
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		g.sess.Leave()
	}

	g.sess.Update(time.Second / time.Duration(ebiten.TPS()))
	return nil
}

func (g *Game) readDrive() {
	throttle := 0.0
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) || ebiten.IsKeyPressed(ebiten.KeyW) {
		throttle = throttleForward
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) || ebiten.IsKeyPressed(ebiten.KeyS) {
		throttle = throttleReverse
	}

	left := ebiten.IsKeyPressed(ebiten.KeyArrowLeft) || ebiten.IsKeyPressed(ebiten.KeyA)
	right := ebiten.IsKeyPressed(ebiten.KeyArrowRight) || ebiten.IsKeyPressed(ebiten.KeyD)
	turn := 0
	if left != right {
		g.turnT++
		if g.turnT >= turnEvery {
			g.turnT = 0
			turn = 1
			if left {
				turn = -1
			}
		}
	} else {
		g.turnT = turnEvery - 1
	}

	g.sess.Drive(throttle, turn)
}

func (g *Game) Draw(screen *ebiten.Image) {
	if m, ok := g.sess.Map(); ok {
		screen.Fill(colornames.Darkolivegreen)
		g.drawMap(screen, m)
	} else {
		screen.Fill(colornames.Midnightblue)
		g.drawScene(screen)
	}

	if a := g.sess.Fader.Alpha(); a > 0 {
		vector.DrawFilledRect(screen, 0, 0, baseWidth, baseHeight, color.NRGBA{A: uint8(a * 255)}, false)
	}

	g.drawHUD(screen)
}

func (g *Game) drawMap(screen *ebiten.Image, m *scene.MapLocation) {
	for _, o := range m.Objects() {
		pos := o.Position()
		clr := objectColor(o)
		if !o.Active() {
			clr = colornames.Dimgray
		}
		vector.DrawFilledRect(screen, float32(pos.X)-6, float32(pos.Y)-6, 12, 12, clr, false)

		if g.debug {
			outer, inner := obj.Bounds(pos, o.Zone())
			strokeBB(screen, outer.L, outer.B, outer.R, outer.T, colornames.Yellow)
			strokeBB(screen, inner.L, inner.B, inner.R, inner.T, colornames.Orangered)
		}
	}

	car := g.sess.Car
	pos := car.Position()
	clr := colornames.Crimson
	if !car.Enabled() {
		clr = colornames.Lightpink
	}
	vector.DrawFilledRect(screen, float32(pos.X)-8, float32(pos.Y)-8, 16, 16, clr, false)
	nose := pos.Add(vehicle.Heading(car.Direction()).Mult(14))
	vector.StrokeLine(screen, float32(pos.X), float32(pos.Y), float32(nose.X), float32(nose.Y), 3, colornames.White, true)
}

func strokeBB(screen *ebiten.Image, l, b, r, t float64, clr color.Color) {
	vector.StrokeRect(screen, float32(l), float32(b), float32(r-l), float32(t-b), 1, clr, false)
}

func objectColor(o obj.TriggerZone) color.Color {
	switch b := o.(type) {
	case *obj.Bridge:
		if b.Passable() {
			return colornames.Saddlebrown
		}
		return colornames.Steelblue
	case *obj.Teleport:
		return colornames.Mediumpurple
	case *obj.Entrance:
		return colornames.Gold
	case *obj.FarAway:
		return colornames.Silver
	default:
		return colornames.Lightgreen
	}
}

func (g *Game) drawScene(screen *ebiten.Image) {
	stage := g.sess.Director.Stage()
	if stage == nil {
		return
	}
	for i, a := range stage.Actors() {
		x := float32(120 + i*160)
		h := float32(80)
		if a.Talking() {
			h += float32(a.Anim().Frame() * 4)
		}
		vector.DrawFilledRect(screen, x, 300-h, 60, h, colornames.Peachpuff, false)
		ebitenutil.DebugPrintAt(screen, a.Name(), int(x), 310)
	}

	if y, ok := g.sess.Director.Location().(*scene.Yard); ok {
		x := float32(500 + y.ShakeOffset())
		clr := colornames.Firebrick
		if y.Ringing() {
			clr = colornames.Tomato
		}
		vector.DrawFilledRect(screen, x, 120, 40, 24, clr, false)
		ebitenutil.DebugPrintAt(screen, "M: mailbox  ENTER: drive out", 20, 440)
	}
}

func (g *Game) drawHUD(screen *ebiten.Image) {
	l := g.sess.Ledger
	var b strings.Builder
	fmt.Fprintf(&b, "%s  yard parts: %d  installed: %d  medals: %v\n",
		g.sess.Director.Current(), len(l.YardParts()), len(l.InstalledParts()), l.Medals())
	fmt.Fprintf(&b, "missions done: %v\n", l.CompletedMissions())
	if g.notice != "" {
		fmt.Fprintf(&b, "%s\n", g.notice)
	}
	if g.debug {
		car := g.sess.Car
		fmt.Fprintf(&b, "car %.0f,%.0f dir %d speed %.1f enabled %t\n",
			car.Position().X, car.Position().Y, car.Direction(), car.Speed(), car.Enabled())
		fmt.Fprintf(&b, "timers %d  FPS %.1f  frames %d", g.sess.Loop.Pending(), ebiten.ActualFPS(), g.frames)
	}
	ebitenutil.DebugPrint(screen, b.String())
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return baseWidth, baseHeight
}
