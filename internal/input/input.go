// Package input turns device state into per-step snapshots of logical axes
// and button transitions.
package input

import (
	"errors"
)

// ErrQuit is returned by a Source when the player asked to leave. It is a
// normal exit path, not a failure.
var ErrQuit = errors.New("quit requested")

// Logical axis names.
const (
	AxisLX = "LX"
	AxisLY = "LY"
	AxisRX = "RX"
	AxisRY = "RY"
	AxisL2 = "L2"
	AxisR2 = "R2"
)

// Logical button names.
const (
	ButtonA      = "A"
	ButtonB      = "B"
	ButtonX      = "X"
	ButtonY      = "Y"
	ButtonL1     = "L1"
	ButtonR1     = "R1"
	ButtonStart  = "START"
	ButtonSelect = "SELECT"
	ButtonUp     = "UP"
	ButtonDown   = "DOWN"
	ButtonLeft   = "LEFT"
	ButtonRight  = "RIGHT"
	ButtonPause  = "PAUSE"
)

// DefaultDeadZone is the axis magnitude below which input reads as zero.
const DefaultDeadZone = 0.001

type ButtonEvent struct {
	Name    string `json:"name"`
	Pressed bool   `json:"pressed"`
}

// Snapshot is the input for one simulation step. Axis values are in
// [-1, 1] with the dead zone already applied.
type Snapshot struct {
	Axes   map[string]float32 `json:"axes,omitempty"`
	Events []ButtonEvent      `json:"events,omitempty"`
}

func (s Snapshot) Axis(name string) float32 {
	return s.Axes[name]
}

// Pressed reports whether name went down during this snapshot.
func (s Snapshot) Pressed(name string) bool {
	for _, e := range s.Events {
		if e.Name == name && e.Pressed {
			return true
		}
	}
	return false
}

// Clone returns a copy sharing no storage with s.
func (s Snapshot) Clone() Snapshot {
	out := Snapshot{}
	if len(s.Axes) > 0 {
		out.Axes = make(map[string]float32, len(s.Axes))
		for k, v := range s.Axes {
			out.Axes[k] = v
		}
	}
	if len(s.Events) > 0 {
		out.Events = append([]ButtonEvent(nil), s.Events...)
	}
	return out
}

// ApplyDeadZone zeroes values inside the dead zone and clamps the rest to
// [-1, 1].
func ApplyDeadZone(v, deadZone float32) float32 {
	if v > -deadZone && v < deadZone {
		return 0
	}
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	return v
}

// Source yields one snapshot per call. Sample returns ErrQuit once the
// player asked to exit.
type Source interface {
	Sample() (Snapshot, error)
}

// Script replays a fixed list of snapshots, then returns empty snapshots,
// or ErrQuit if QuitAtEnd is set.
type Script struct {
	Frames    []Snapshot
	QuitAtEnd bool
	next      int
}

func NewScript(frames ...Snapshot) *Script {
	return &Script{Frames: frames}
}

func (s *Script) Sample() (Snapshot, error) {
	if s.next >= len(s.Frames) {
		if s.QuitAtEnd {
			return Snapshot{}, ErrQuit
		}
		return Snapshot{}, nil
	}
	snap := s.Frames[s.next].Clone()
	s.next++
	return snap, nil
}

// Consumed returns how many scripted frames have been handed out.
func (s *Script) Consumed() int {
	return s.next
}
