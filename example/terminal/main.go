package main

import (
	"fmt"
	"math"
	"os"
	"time"
	"unicode"

	"github.com/gdamore/tcell/v2"
	"github.com/oomph-ac/locomotion"
	"github.com/oomph-ac/locomotion/player"
	"github.com/oomph-ac/locomotion/settings"
	"github.com/oomph-ac/locomotion/world"
	"github.com/sirupsen/logrus"
)

// holdWindow is how long a key counts as held after its last key event. Terminals report key repeats but
// never key releases.
const holdWindow = 150 * time.Millisecond

// cellSize is the number of world units covered by a single terminal cell along x, and twice that along z.
const cellSize = 20

// The following program renders a top-down view of an avatar walking around the default scene. WASD moves,
// holding shift (or typing upper case) runs and escape quits.
func main() {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetLevel(logrus.WarnLevel)

	s, err := settings.LoadOrCreate("locomotion.toml")
	if err != nil {
		log.Fatalf("unable to load settings: %v", err)
	}
	rt, err := locomotion.New(log, s)
	if err != nil {
		log.Fatalf("unable to create runtime: %v", err)
	}
	p, err := rt.NewPlayer()
	if err != nil {
		log.Fatalf("unable to create player: %v", err)
	}
	defer rt.RemovePlayer(p)

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatalf("unable to create screen: %v", err)
	}
	if err := screen.Init(); err != nil {
		log.Fatalf("unable to initialise screen: %v", err)
	}
	defer screen.Fini()

	events := make(chan tcell.Event, 16)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	held := make(map[string]time.Time)
	ticker := time.NewTicker(time.Second / time.Duration(s.Session.FrameRate))
	defer ticker.Stop()
	dt := 1 / float64(s.Session.FrameRate)

	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return
			}
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
					return
				}
				if ev.Key() != tcell.KeyRune {
					continue
				}
				r := ev.Rune()
				now := time.Now()
				held[string(unicode.ToLower(r))] = now
				if unicode.IsUpper(r) || ev.Modifiers()&tcell.ModShift != 0 {
					held["shift"] = now
				}
			case *tcell.EventResize:
				screen.Sync()
			}
		case now := <-ticker.C:
			for key, at := range held {
				down := now.Sub(at) < holdWindow
				p.HandleKey(key, down)
				if !down {
					delete(held, key)
				}
			}
			snap, ok := p.Tick(dt)
			if ok {
				draw(screen, rt.Scene(), snap, p.History())
			}
		}
	}
}

// draw renders the scene's obstacles, the avatar's recent trail and the avatar itself, centred on the avatar.
func draw(screen tcell.Screen, scene world.Scene, snap player.Snapshot, trail []player.Snapshot) {
	screen.Clear()
	w, h := screen.Size()
	cx, cz := snap.Position.X(), snap.Position.Z()
	toCell := func(x, z float64) (int, int) {
		return w/2 + int(math.Round((x-cx)/cellSize)), h/2 + int(math.Round((z-cz)/(cellSize*2)))
	}

	if g := scene.Ground; g != nil {
		x0, z0 := toCell(g.Center[0]-g.Width/2, g.Center[2]-g.Depth/2)
		x1, z1 := toCell(g.Center[0]+g.Width/2, g.Center[2]+g.Depth/2)
		fill(screen, x0, z0, x1, z1, '.', tcell.StyleDefault.Foreground(tcell.ColorGreen))
	}
	for _, b := range scene.Obstacles {
		x0, z0 := toCell(b.Min[0], b.Min[2])
		x1, z1 := toCell(b.Max[0], b.Max[2])
		fill(screen, x0, z0, x1, z1, '#', tcell.StyleDefault.Foreground(tcell.ColorYellow))
	}
	for _, f := range scene.Triangles {
		for _, v := range []world.Vec{f.A, f.B, f.C} {
			x, z := toCell(v[0], v[2])
			screen.SetContent(x, z, '/', nil, tcell.StyleDefault.Foreground(tcell.ColorBlue))
		}
	}
	for _, t := range trail {
		x, z := toCell(t.Position.X(), t.Position.Z())
		screen.SetContent(x, z, '*', nil, tcell.StyleDefault.Foreground(tcell.ColorGray))
	}
	screen.SetContent(w/2, h/2, facingRune(snap.Yaw), nil, tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true))

	status := fmt.Sprintf("frame %d  %s  speed %.0f  pos (%.0f, %.0f, %.0f)  grounded %v",
		snap.Frame, snap.Gait, snap.Speed, snap.Position.X(), snap.Position.Y(), snap.Position.Z(), snap.OnGround)
	for i, r := range status {
		screen.SetContent(i, 0, r, nil, tcell.StyleDefault.Reverse(true))
	}
	screen.Show()
}

func fill(screen tcell.Screen, x0, y0, x1, y1 int, r rune, style tcell.Style) {
	for x := x0; x <= x1; x++ {
		for y := y0; y <= y1; y++ {
			screen.SetContent(x, y, r, nil, style)
		}
	}
}

// facingRune returns an arrow pointing the way an avatar with the yaw passed faces, seen from above with -z
// towards the top of the screen.
func facingRune(yaw float64) rune {
	arrows := []rune{'v', '\\', '>', '/', '^', '\\', '<', '/'}
	octant := int(math.Round(yaw/(math.Pi/4))) % 8
	if octant < 0 {
		octant += 8
	}
	return arrows[octant]
}
