// Package mission runs the objective state machine of the active mission.
package mission

import (
	"fmt"
	"log"

	"skyring/internal/engine"
	"skyring/internal/geom"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type State int

const (
	Briefing State = iota
	Running
	Complete
	Failed
)

func (s State) String() string {
	switch s {
	case Briefing:
		return "briefing"
	case Running:
		return "running"
	case Complete:
		return "complete"
	case Failed:
		return "failed"
	}
	return "unknown"
}

// Config is the mission-control part of a mission template.
type Config struct {
	Briefing       string   `yaml:"briefing" json:"briefing,omitempty"`
	BriefingSteps  uint64   `yaml:"briefing_steps" json:"briefing_steps,omitempty"`
	Objectives     []string `yaml:"objectives" json:"objectives"`
	ReachRadius    float32  `yaml:"reach_radius" json:"reach_radius,omitempty"`
	TimeLimitSteps uint64   `yaml:"time_limit_steps" json:"time_limit_steps,omitempty"`
}

const DefaultReachRadius = 5

// Result is emitted once when the mission completes or fails.
type Result struct {
	Mission string
	Outcome State
	Steps   uint64
}

// Waypoint is implemented by objective objects that show progress.
type Waypoint interface {
	SetReached(bool)
}

// HUD is what the mission draws its overlay through.
type HUD interface {
	ScreenSize() (w, h int32)
	DrawText(text string, x, y, size int32, c rl.Color)
	Panel(bounds rl.Rectangle, title string)
}

type Control struct {
	Name string

	OnObjective engine.EventWithArg[string]
	OnFinish    engine.EventWithArg[Result]

	cfg      Config
	tickRate int
	state    State
	next     int
	elapsed  uint64
	missing  map[string]bool
}

func New(name string, cfg Config, tickRate int) *Control {
	if cfg.ReachRadius <= 0 {
		cfg.ReachRadius = DefaultReachRadius
	}
	if tickRate <= 0 {
		tickRate = 60
	}
	c := &Control{
		Name:     name,
		cfg:      cfg,
		tickRate: tickRate,
		missing:  make(map[string]bool),
	}
	if cfg.BriefingSteps == 0 {
		c.state = Running
	}
	return c
}

func (c *Control) State() State { return c.state }

// Elapsed is the number of steps spent running.
func (c *Control) Elapsed() uint64 { return c.elapsed }

// Progress returns reached and total objective counts.
func (c *Control) Progress() (int, int) { return c.next, len(c.cfg.Objectives) }

// NextObjective names the objective the avatar should head for, or "".
func (c *Control) NextObjective() string {
	if c.next >= len(c.cfg.Objectives) {
		return ""
	}
	return c.cfg.Objectives[c.next]
}

func (c *Control) Step(ctx *engine.StepContext) {
	switch c.state {
	case Briefing:
		c.elapsed++
		if c.elapsed >= c.cfg.BriefingSteps {
			c.state = Running
			c.elapsed = 0
		}
	case Running:
		c.elapsed++
		c.checkObjective(ctx)
		if c.state == Running && c.cfg.TimeLimitSteps > 0 && c.elapsed >= c.cfg.TimeLimitSteps {
			c.finish(Failed)
		}
	}
}

func (c *Control) checkObjective(ctx *engine.StepContext) {
	if len(c.cfg.Objectives) == 0 {
		c.finish(Complete)
		return
	}
	if ctx == nil || ctx.World == nil {
		return
	}
	avatar := ctx.World.Avatar()
	if avatar == nil {
		return
	}
	name := c.cfg.Objectives[c.next]
	target := ctx.World.FindByName(name)
	if target == nil {
		if !c.missing[name] {
			log.Printf("Mission: %s objective %q not in world", c.Name, name)
			c.missing[name] = true
		}
		return
	}
	if geom.Dist(avatar.Base().Position, target.Base().Position) > c.cfg.ReachRadius {
		return
	}
	if w, ok := target.(Waypoint); ok {
		w.SetReached(true)
	}
	c.next++
	c.OnObjective.Invoke(name)
	if c.next == len(c.cfg.Objectives) {
		c.finish(Complete)
	}
}

func (c *Control) finish(s State) {
	c.state = s
	log.Printf("Mission: %s %s after %d steps", c.Name, s, c.elapsed)
	c.OnFinish.Invoke(Result{Mission: c.Name, Outcome: s, Steps: c.elapsed})
}

var (
	hudText  = rl.Color{R: 230, G: 230, B: 240, A: 255}
	hudGood  = rl.Color{R: 120, G: 255, B: 140, A: 255}
	hudBad   = rl.Color{R: 255, G: 110, B: 90, A: 255}
	hudPanel = rl.Rectangle{X: 10, Y: 10, Width: 260, Height: 78}
)

// Draw renders the mission overlay.
func (c *Control) Draw(h HUD) {
	w, hgt := h.ScreenSize()
	switch c.state {
	case Briefing:
		if c.cfg.Briefing != "" {
			h.DrawText(c.cfg.Briefing, 20, hgt/2, 20, hudText)
		}
		return
	case Complete:
		h.DrawText("MISSION COMPLETE", w/2-110, hgt/3, 24, hudGood)
	case Failed:
		h.DrawText("MISSION FAILED", w/2-95, hgt/3, 24, hudBad)
	}

	h.Panel(hudPanel, c.Name)
	done, total := c.Progress()
	h.DrawText(fmt.Sprintf("Objectives %d/%d", done, total), 20, 40, 16, hudText)
	if next := c.NextObjective(); next != "" {
		h.DrawText("Next: "+next, 20, 58, 16, hudText)
	}
	if c.cfg.TimeLimitSteps > 0 && c.state == Running {
		left := (c.cfg.TimeLimitSteps - c.elapsed) / uint64(c.tickRate)
		h.DrawText(fmt.Sprintf("%ds", left), int32(hudPanel.X+hudPanel.Width)-40, 40, 16, hudText)
	}
}
