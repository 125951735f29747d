package main

import (
	"os"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
	"github.com/oomph-ac/locomotion"
	"github.com/oomph-ac/locomotion/settings"
	"github.com/sirupsen/logrus"
)

// keyEvent presses or releases a key at a given frame of the script.
type keyEvent struct {
	frame int
	key   string
	down  bool
}

// script walks forward, sprints, turns left while sprinting, then stops.
var script = []keyEvent{
	{frame: 60, key: "w", down: true},
	{frame: 180, key: "shift", down: true},
	{frame: 300, key: "a", down: true},
	{frame: 360, key: "a", down: false},
	{frame: 420, key: "shift", down: false},
	{frame: 480, key: "w", down: false},
}

// The following program drives an avatar through a fixed key script at the configured frame rate and logs
// where it ends up every half second.
func main() {
	log := logrus.New()
	log.SetLevel(logrus.DebugLevel)

	path := "locomotion.toml"
	if len(os.Args) > 1 {
		path = os.Args[1]
	}
	s, err := settings.LoadOrCreate(path)
	if err != nil {
		log.Fatalf("unable to load settings: %v", err)
	}

	if dsn := os.Getenv("SENTRY_DSN"); dsn != "" {
		if err := sentry.Init(sentry.ClientOptions{Dsn: dsn}); err != nil {
			log.Errorf("unable to initialize sentry: %v", err)
		}
		defer sentry.Flush(2 * time.Second)
	}
	if os.Getenv("PPROF_ENABLED") != "" {
		viewer.SetConfiguration(viewer.WithTheme(viewer.ThemeWesteros), viewer.WithAddr("localhost:8080"))

		mgr := statsview.New()
		go mgr.Start()
		defer mgr.Stop()
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

	dt := 1 / float64(s.Session.FrameRate)
	end := script[len(script)-1].frame + s.Session.FrameRate
	next := 0
	for frame := 0; frame < end; frame++ {
		for next < len(script) && script[next].frame == frame {
			p.HandleKey(script[next].key, script[next].down)
			next++
		}
		snap, ok := p.Tick(dt)
		if !ok || frame%max(s.Session.FrameRate/2, 1) != 0 {
			continue
		}
		log.WithFields(logrus.Fields{
			"frame":    snap.Frame,
			"gait":     snap.Gait,
			"speed":    snap.Speed,
			"onGround": snap.OnGround,
			"yaw":      snap.RenderYaw(),
		}).Infof("avatar at %.2f", snap.Position)
	}
}
