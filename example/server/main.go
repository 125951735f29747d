package main

import (
	"net/http"
	"os"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/gorilla/websocket"
	"github.com/oomph-ac/locomotion"
	"github.com/oomph-ac/locomotion/session"
	"github.com/oomph-ac/locomotion/settings"
	"github.com/sirupsen/logrus"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(*http.Request) bool { return true },
}

// The following program serves every websocket client connecting to /ws its own avatar. Clients send key
// events and receive a frame for every tick of the simulation.
func main() {
	if len(os.Args) < 2 {
		logrus.Info("Usage: ./bin <listen_addr> [settings_path]")
		return
	}
	log := logrus.New()
	log.SetLevel(logrus.InfoLevel)

	path := "locomotion.toml"
	if len(os.Args) > 2 {
		path = os.Args[2]
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

	rt, err := locomotion.New(log, s)
	if err != nil {
		log.Fatalf("unable to create runtime: %v", err)
	}

	http.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Errorf("upgrade failed: %v", err)
			return
		}
		p, err := rt.NewPlayer()
		if err != nil {
			log.Errorf("unable to create player: %v", err)
			conn.Close()
			return
		}
		defer rt.RemovePlayer(p)

		if err := session.New(log, conn, p, rt.World().Checksum(), s.Session.FrameRate).Serve(r.Context()); err != nil {
			log.Errorf("session %s ended: %v", p.ID(), err)
		}
	})
	log.Infof("listening on %s", os.Args[1])
	log.Fatal(http.ListenAndServe(os.Args[1], nil))
}
