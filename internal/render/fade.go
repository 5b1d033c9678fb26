package render

import (
	"github.com/gen2brain/raylib-go/easings"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Fade eases a flat screen color from one alpha to another over a fixed
// duration.
type Fade struct {
	Color    rl.Color
	From, To float32
	Duration float32

	elapsed float32
}

// FadeIn starts opaque and clears over d seconds.
func FadeIn(c rl.Color, d float32) *Fade {
	return &Fade{Color: c, From: 1, To: 0, Duration: d}
}

// FadeOut goes from clear to opaque over d seconds.
func FadeOut(c rl.Color, d float32) *Fade {
	return &Fade{Color: c, From: 0, To: 1, Duration: d}
}

func (f *Fade) Advance(dt float32) {
	f.elapsed += dt
	if f.elapsed > f.Duration {
		f.elapsed = f.Duration
	}
}

func (f *Fade) Done() bool {
	return f.elapsed >= f.Duration
}

// Alpha is the current opacity in [0, 1].
func (f *Fade) Alpha() float32 {
	if f.Duration <= 0 {
		return f.To
	}
	return easings.SineInOut(f.elapsed, f.From, f.To-f.From, f.Duration)
}

// Current is the overlay color for this frame. A nil fade draws nothing.
func (f *Fade) Current() rl.Color {
	if f == nil {
		return rl.Color{}
	}
	a := f.Alpha()
	if a < 0 {
		a = 0
	}
	if a > 1 {
		a = 1
	}
	c := f.Color
	c.A = uint8(a*255 + 0.5)
	return c
}
