package session

import (
	"fmt"

	"github.com/oomph-ac/locomotion/player"
)

const (
	messageKeyDown = "keydown"
	messageKeyUp   = "keyup"
	messageHello   = "hello"
	messageFrame   = "frame"
)

// clientMessage is a key event sent by the remote input device.
type clientMessage struct {
	Type string `json:"type"`
	Key  string `json:"key"`
}

// helloMessage is the first message written to a connection.
type helloMessage struct {
	Type      string `json:"type"`
	Avatar    string `json:"avatar"`
	Checksum  string `json:"checksum"`
	FrameRate int    `json:"frameRate"`
}

type cameraMessage struct {
	Position [3]float64 `json:"position"`
	Target   [3]float64 `json:"target"`
}

// frameMessage carries the avatar's transform and locomotion state at the end of a frame.
type frameMessage struct {
	Type         string        `json:"type"`
	Frame        uint64        `json:"frame"`
	Position     [3]float64    `json:"position"`
	Yaw          float64       `json:"yaw"`
	Gait         string        `json:"gait"`
	Speed        float64       `json:"speed"`
	FallingSpeed float64       `json:"fallingSpeed"`
	OnGround     bool          `json:"onGround"`
	Camera       cameraMessage `json:"camera"`
	Matrix       [16]float32   `json:"matrix"`
}

func newHelloMessage(p *player.Player, checksum uint64, frameRate int) helloMessage {
	return helloMessage{
		Type:      messageHello,
		Avatar:    p.ID().String(),
		Checksum:  fmt.Sprintf("%016x", checksum),
		FrameRate: frameRate,
	}
}

func newFrameMessage(s player.Snapshot) frameMessage {
	return frameMessage{
		Type:         messageFrame,
		Frame:        s.Frame,
		Position:     s.Position,
		Yaw:          s.Yaw,
		Gait:         s.Gait.String(),
		Speed:        s.Speed,
		FallingSpeed: s.FallingSpeed,
		OnGround:     s.OnGround,
		Camera: cameraMessage{
			Position: s.Camera.Position,
			Target:   s.Camera.Target,
		},
		Matrix: s.Matrix(),
	}
}
