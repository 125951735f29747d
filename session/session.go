package session

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/gorilla/websocket"
	"github.com/oomph-ac/locomotion/game"
	"github.com/oomph-ac/locomotion/oerror"
	"github.com/oomph-ac/locomotion/player"
	"github.com/sirupsen/logrus"
)

type keyEvent struct {
	key  string
	down bool
}

// Session drives a player from a websocket connection: key events are read from the connection and frame
// snapshots are written back to it. Key events are queued by a reader goroutine and only applied to the
// player at the start of a frame, so the player is only ever touched by the goroutine running Serve.
type Session struct {
	log    *logrus.Logger
	conn   *websocket.Conn
	player *player.Player

	checksum  uint64
	frameRate int

	events chan keyEvent
	clock  game.FrameClock
}

// New returns a session for the connection and loaded player passed. checksum is the checksum of the world the
// player moves in and is sent to the remote end on connection. A nil logger discards all output.
func New(log *logrus.Logger, conn *websocket.Conn, p *player.Player, checksum uint64, frameRate int) *Session {
	if log == nil {
		log = logrus.New()
		log.SetOutput(io.Discard)
	}
	return &Session{
		log:       log,
		conn:      conn,
		player:    p,
		checksum:  checksum,
		frameRate: max(frameRate, 1),
		events:    make(chan keyEvent, 64),
	}
}

// Serve runs the session until the context is cancelled or the connection fails. A connection closed normally
// by the remote end is not an error.
func (s *Session) Serve(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	defer func() {
		if v := recover(); v != nil {
			s.report("frameLoop", v)
			err = oerror.New("session panic: %v", v)
		}
	}()

	if err := s.conn.WriteJSON(newHelloMessage(s.player, s.checksum, s.frameRate)); err != nil {
		_ = s.conn.Close()
		return fmt.Errorf("write hello: %w", err)
	}
	s.log.WithField("avatar", s.player.ID()).Info("session started")

	readErr := make(chan error, 1)
	go func() {
		readErr <- s.read(ctx)
	}()
	defer s.conn.Close()

	ticker := time.NewTicker(time.Second / time.Duration(s.frameRate))
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			_ = s.conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(time.Second))
			return nil
		case err := <-readErr:
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.log.WithField("avatar", s.player.ID()).Info("session closed by remote")
				return nil
			}
			return fmt.Errorf("read: %w", err)
		case now := <-ticker.C:
			s.drain()
			snap, ok := s.player.Tick(s.clock.Tick(now))
			if !ok {
				continue
			}
			if err := s.conn.WriteJSON(newFrameMessage(snap)); err != nil {
				return fmt.Errorf("write frame: %w", err)
			}
		}
	}
}

// drain applies every queued key event to the player.
func (s *Session) drain() {
	for {
		select {
		case ev := <-s.events:
			s.player.HandleKey(ev.key, ev.down)
		default:
			return
		}
	}
}

// read queues key events from the connection until it fails or the context is cancelled.
func (s *Session) read(ctx context.Context) (err error) {
	defer func() {
		if v := recover(); v != nil {
			s.report("readLoop", v)
			err = oerror.New("session reader panic: %v", v)
		}
	}()

	for {
		_, payload, err := s.conn.ReadMessage()
		if err != nil {
			return err
		}
		var msg clientMessage
		if err := json.Unmarshal(payload, &msg); err != nil {
			s.log.Debugf("discarding malformed message: %v", err)
			continue
		}

		var ev keyEvent
		switch msg.Type {
		case messageKeyDown:
			ev = keyEvent{key: msg.Key, down: true}
		case messageKeyUp:
			ev = keyEvent{key: msg.Key}
		default:
			s.log.Debugf("discarding message of unknown type %q", msg.Type)
			continue
		}
		select {
		case s.events <- ev:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (s *Session) report(loop string, v any) {
	s.log.Errorf("session %s panic: %v", loop, v)
	hub := sentry.CurrentHub().Clone()
	hub.ConfigureScope(func(scope *sentry.Scope) {
		scope.SetTag("loop", loop)
		scope.SetTag("avatar", s.player.ID().String())
	})
	hub.Recover(oerror.New("%v", v))
	hub.Flush(time.Second * 5)
}
