package main

import (
	"flag"
	"fmt"
	"image/color"
	"log"
	"slices"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/roadtrip/anim"
	"github.com/milk9111/roadtrip/prefabs"
	"golang.org/x/image/colornames"
)

const (
	screenWidth  = 512
	screenHeight = 256
)

// clipGame steps an object's clips through an anim.Player so timing and
// the pass frame can be checked without loading a map.
type clipGame struct {
	spec    prefabs.ObjectSpec
	player  *anim.Player
	names   []string
	current int
	maxF    int
	status  string
}

func newClipGame(spec prefabs.ObjectSpec) *clipGame {
	g := &clipGame{spec: spec, player: anim.NewPlayer()}
	for name, c := range spec.Clips {
		clip := c.Clip()
		g.player.Define(name, clip)
		g.names = append(g.names, name)
		for _, f := range clip.Frames {
			g.maxF = max(g.maxF, f)
		}
	}
	slices.Sort(g.names)
	g.play()
	return g
}

func (g *clipGame) play() {
	if len(g.names) == 0 {
		g.status = "no clips"
		return
	}
	name := g.names[g.current]
	h, err := g.player.Play(name)
	if err != nil {
		g.status = err.Error()
		return
	}
	g.status = "playing " + name
	h.OnComplete(func() { g.status = name + " done" })
}

func (g *clipGame) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) && len(g.names) > 0 {
		g.current = (g.current + 1) % len(g.names)
		g.play()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		g.play()
	}
	g.player.Tick()
	return nil
}

func (g *clipGame) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{0x00, 0x00, 0x00, 0xff})

	n := g.maxF + 1
	w := float32(screenWidth-40) / float32(n)
	frame := g.player.Frame()
	for i := range n {
		clr := colornames.Dimgray
		switch {
		case i == frame:
			clr = colornames.Gold
		case g.spec.PassFrame > 0 && i >= g.spec.PassFrame:
			clr = colornames.Seagreen
		}
		vector.DrawFilledRect(screen, 20+float32(i)*w, 120, w-1, 60, clr, false)
	}
	if g.spec.PassFrame > 0 {
		x := 20 + float32(g.spec.PassFrame)*w
		vector.StrokeLine(screen, x, 110, x, 190, 2, colornames.White, false)
	}

	ebitenutil.DebugPrint(screen, fmt.Sprintf("%s  frame %d  pass %d\n%s\nSPACE next clip  ENTER replay",
		g.spec.Type, frame, g.spec.PassFrame, g.status))
}

func (g *clipGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenWidth, screenHeight
}

func main() {
	objType := flag.String("type", "bridge", "object type in prefabs/objects.yaml")
	flag.Parse()

	specs, err := prefabs.LoadObjectSpecs()
	if err != nil {
		log.Fatal(err)
	}
	spec, ok := specs[*objType]
	if !ok {
		log.Fatalf("no object type %q", *objType)
	}

	ebiten.SetWindowSize(screenWidth*2, screenHeight*2)
	ebiten.SetWindowTitle("Clip Viewer: " + *objType)
	if err := ebiten.RunGame(newClipGame(spec)); err != nil {
		log.Fatal(err)
	}
}
