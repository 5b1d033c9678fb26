package input

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

type keyAxis struct {
	name     string
	neg, pos int32
}

// Device samples keyboard and the first gamepad through raylib. Button
// events are derived from state changes between samples so that a press is
// reported to exactly one step even when several steps run in a frame.
type Device struct {
	DeadZone float32
	Gamepad  int32

	keyAxes    []keyAxis
	keyButtons map[string]int32
	padButtons map[string]int32
	padAxes    map[string]int32

	down    map[string]bool
	quitKey int32
}

func NewDevice(deadZone float32) *Device {
	return &Device{
		DeadZone: deadZone,
		keyAxes: []keyAxis{
			{AxisLX, rl.KeyA, rl.KeyD},
			{AxisLY, rl.KeyS, rl.KeyW},
			{AxisRX, rl.KeyLeft, rl.KeyRight},
			{AxisRY, rl.KeyDown, rl.KeyUp},
			{AxisL2, rl.KeyNull, rl.KeyQ},
			{AxisR2, rl.KeyNull, rl.KeyE},
		},
		keyButtons: map[string]int32{
			ButtonA:      rl.KeySpace,
			ButtonB:      rl.KeyLeftShift,
			ButtonStart:  rl.KeyEnter,
			ButtonSelect: rl.KeyTab,
			ButtonUp:     rl.KeyI,
			ButtonDown:   rl.KeyK,
			ButtonLeft:   rl.KeyJ,
			ButtonRight:  rl.KeyL,
			ButtonPause:  rl.KeyP,
		},
		padButtons: map[string]int32{
			ButtonA:      rl.GamepadButtonRightFaceDown,
			ButtonB:      rl.GamepadButtonRightFaceRight,
			ButtonX:      rl.GamepadButtonRightFaceLeft,
			ButtonY:      rl.GamepadButtonRightFaceUp,
			ButtonL1:     rl.GamepadButtonLeftTrigger1,
			ButtonR1:     rl.GamepadButtonRightTrigger1,
			ButtonStart:  rl.GamepadButtonMiddleRight,
			ButtonSelect: rl.GamepadButtonMiddleLeft,
			ButtonUp:     rl.GamepadButtonLeftFaceUp,
			ButtonDown:   rl.GamepadButtonLeftFaceDown,
			ButtonLeft:   rl.GamepadButtonLeftFaceLeft,
			ButtonRight:  rl.GamepadButtonLeftFaceRight,
		},
		padAxes: map[string]int32{
			AxisLX: rl.GamepadAxisLeftX,
			AxisLY: rl.GamepadAxisLeftY,
			AxisRX: rl.GamepadAxisRightX,
			AxisRY: rl.GamepadAxisRightY,
			AxisL2: rl.GamepadAxisLeftTrigger,
			AxisR2: rl.GamepadAxisRightTrigger,
		},
		down:    make(map[string]bool),
		quitKey: rl.KeyF4,
	}
}

// Sample reads the devices. The window close button and F4 both quit.
func (d *Device) Sample() (Snapshot, error) {
	if rl.WindowShouldClose() || rl.IsKeyDown(d.quitKey) {
		return Snapshot{}, ErrQuit
	}

	snap := Snapshot{Axes: make(map[string]float32, len(d.keyAxes))}
	pad := rl.IsGamepadAvailable(d.Gamepad)

	for _, ka := range d.keyAxes {
		var v float32
		if ka.pos != rl.KeyNull && rl.IsKeyDown(ka.pos) {
			v++
		}
		if ka.neg != rl.KeyNull && rl.IsKeyDown(ka.neg) {
			v--
		}
		if pad {
			if axis, ok := d.padAxes[ka.name]; ok {
				pv := rl.GetGamepadAxisMovement(d.Gamepad, axis)
				// raylib reports stick Y down-positive
				if ka.name == AxisLY || ka.name == AxisRY {
					pv = -pv
				}
				if v == 0 {
					v = pv
				}
			}
		}
		snap.Axes[ka.name] = ApplyDeadZone(v, d.DeadZone)
	}

	for _, name := range buttonOrder {
		now := false
		if key, ok := d.keyButtons[name]; ok && rl.IsKeyDown(key) {
			now = true
		}
		if btn, ok := d.padButtons[name]; ok && pad && rl.IsGamepadButtonDown(d.Gamepad, btn) {
			now = true
		}
		if now != d.down[name] {
			snap.Events = append(snap.Events, ButtonEvent{Name: name, Pressed: now})
			d.down[name] = now
		}
	}
	return snap, nil
}

// fixed order keeps event lists reproducible
var buttonOrder = []string{
	ButtonA, ButtonB, ButtonX, ButtonY, ButtonL1, ButtonR1,
	ButtonStart, ButtonSelect, ButtonUp, ButtonDown, ButtonLeft, ButtonRight, ButtonPause,
}
