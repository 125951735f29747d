package session

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/gorilla/websocket"
	"github.com/oomph-ac/locomotion/animation"
	"github.com/oomph-ac/locomotion/movement"
	"github.com/oomph-ac/locomotion/player"
	"github.com/oomph-ac/locomotion/settings"
	"github.com/oomph-ac/locomotion/world"
)

func newTestServer(t *testing.T) (*httptest.Server, *world.World, chan error) {
	w := world.New(nil)
	if err := w.RegisterScene(world.DefaultScene()); err != nil {
		t.Fatalf("unexpected register error: %v", err)
	}
	idx, err := w.Build()
	if err != nil {
		t.Fatalf("unexpected build error: %v", err)
	}
	s := settings.DefaultSettings()
	controller := movement.NewController(idx, s.Movement)

	served := make(chan error, 1)
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(rw, r, nil)
		if err != nil {
			served <- err
			return
		}
		p := player.New(nil, controller, mgl64.Vec3{0, 0, 0}, s)
		mixer := animation.NewSoftMixer()
		if err := p.Load(player.Asset{
			Bounds:  cube.Box(-30, 0, -20, 30, 180, 20),
			Actions: mixer.Actions(animation.Clip{Name: "Idle", Duration: 2}, animation.Clip{Name: "Walk", Duration: 1}, animation.Clip{Name: "Run", Duration: 0.7}),
			Mixer:   mixer,
		}); err != nil {
			served <- err
			return
		}
		served <- New(nil, conn, p, w.Checksum(), 120).Serve(context.Background())
	}))
	t.Cleanup(srv.Close)
	return srv, w, served
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	conn, resp, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	if err != nil {
		t.Fatalf("failed to open websocket connection: %v", err)
	}
	if resp != nil {
		resp.Body.Close()
	}
	_ = conn.SetReadDeadline(time.Now().Add(10 * time.Second))
	return conn
}

func TestSessionStreamsFrames(t *testing.T) {
	srv, w, served := newTestServer(t)
	conn := dial(t, srv)
	defer conn.Close()

	var hello helloMessage
	if err := conn.ReadJSON(&hello); err != nil {
		t.Fatalf("failed to read hello: %v", err)
	}
	if hello.Type != "hello" || hello.Checksum != fmt.Sprintf("%016x", w.Checksum()) || hello.Avatar == "" {
		t.Fatalf("unexpected hello %+v", hello)
	}

	if err := conn.WriteJSON(clientMessage{Type: "keydown", Key: "w"}); err != nil {
		t.Fatalf("failed to write key event: %v", err)
	}
	var (
		f       frameMessage
		walking bool
	)
	for range 240 {
		if err := conn.ReadJSON(&f); err != nil {
			t.Fatalf("failed to read frame: %v", err)
		}
		if f.Type != "frame" {
			t.Fatalf("unexpected message type %q", f.Type)
		}
		if f.Gait == "Walk" && f.Speed > 0 {
			walking = true
			break
		}
	}
	if !walking {
		t.Fatalf("expected the avatar to start walking after a key down event")
	}
	if f.Position[2] >= 0 {
		t.Fatalf("expected the avatar to move forward along -z, at %v", f.Position)
	}

	err := conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	if err != nil {
		t.Fatalf("failed to close connection: %v", err)
	}
	select {
	case err := <-served:
		if err != nil {
			t.Fatalf("expected a clean shutdown, got %v", err)
		}
	case <-time.After(10 * time.Second):
		t.Fatalf("session did not stop after the connection closed")
	}
}

func TestSessionIgnoresMalformedMessages(t *testing.T) {
	srv, _, _ := newTestServer(t)
	conn := dial(t, srv)
	defer conn.Close()

	var hello helloMessage
	if err := conn.ReadJSON(&hello); err != nil {
		t.Fatalf("failed to read hello: %v", err)
	}
	for _, payload := range []string{"not json", `{"type":"jump"}`, `{"type":"keydown","key":"q"}`} {
		if err := conn.WriteMessage(websocket.TextMessage, []byte(payload)); err != nil {
			t.Fatalf("failed to write message: %v", err)
		}
	}
	for range 30 {
		_, data, err := conn.ReadMessage()
		if err != nil {
			t.Fatalf("expected the session to keep running, got %v", err)
		}
		var f frameMessage
		if err := json.Unmarshal(data, &f); err != nil || f.Gait != "Idle" {
			t.Fatalf("expected idle frames, got %s", data)
		}
	}
}
