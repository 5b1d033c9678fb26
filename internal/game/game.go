// Package game runs the outer loop: it samples input, runs the fixed steps
// that are due and renders one frame per iteration.
package game

import (
	"context"
	"errors"
	"fmt"
	"log"

	"skyring/internal/assets"
	"skyring/internal/config"
	"skyring/internal/input"
	"skyring/internal/mission"
	"skyring/internal/persistence/savedb"
	"skyring/internal/render"
	"skyring/internal/replay"
	"skyring/internal/transport/observer"
	"skyring/internal/world"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/google/uuid"
)

type Mode int

const (
	ModeTitle Mode = iota
	ModeGameplay
)

func (m Mode) String() string {
	if m == ModeGameplay {
		return "gameplay"
	}
	return "title"
}

// errFrameLimit ends Run once Options.MaxFrames frames have been drawn.
var errFrameLimit = errors.New("frame limit reached")

type Options struct {
	Tuning  config.Tuning
	Catalog *assets.Catalog
	Source  input.Source
	Clock   Clock
	// Backend may be nil for headless runs, which skip drawing.
	Backend render.Backend

	Results  *savedb.DB
	Observer *observer.Hub
	// MaxFrames stops the loop after that many iterations. Zero runs until
	// the input source quits.
	MaxFrames int
}

type Game struct {
	World    *world.World
	Pipeline *render.Pipeline

	opts  Options
	mode  Mode
	runID string

	frames    int
	lastFrame float32
	fade      *render.Fade
	debug     bool

	paused bool

	title titleMenu
	rec   *replay.Recorder
}

func New(opts Options) *Game {
	if opts.Clock == nil {
		opts.Clock = NewWallClock()
	}
	g := &Game{
		World: world.New(opts.Tuning, opts.Catalog),
		opts:  opts,
		debug: opts.Tuning.Display.Debug,
	}
	if opts.Backend != nil {
		g.Pipeline = render.NewPipeline(opts.Backend, opts.Tuning.Display)
	}
	if opts.Catalog != nil {
		g.title = newTitleMenu(opts.Catalog)
	}
	g.World.OnMissionLoaded.AddListener(g.missionLoaded)
	return g
}

// InitUI themes raygui. It needs an open window.
func (g *Game) InitUI() {
	initRayguiStyle()
}

func (g *Game) Mode() Mode { return g.mode }

func (g *Game) Frames() int { return g.frames }

// Start loads an area and, if named, a mission before Run.
func (g *Game) Start(area, missionName string) error {
	if area == "" {
		return nil
	}
	if err := g.World.LoadArea(area); err != nil {
		return err
	}
	if missionName == "" {
		return nil
	}
	return g.World.LoadMission(missionName)
}

func (g *Game) missionLoaded(c *mission.Control) {
	g.runID = uuid.NewString()
	g.fade = render.FadeIn(rl.Black, 1)
	c.OnFinish.AddListener(func(r mission.Result) {
		if g.opts.Results == nil {
			return
		}
		err := g.opts.Results.Record(context.Background(), savedb.Result{
			RunID:   g.runID,
			Mission: r.Mission,
			Outcome: r.Outcome.String(),
			Steps:   r.Steps,
		})
		if err != nil {
			log.Printf("Game: could not store result: %v", err)
		}
	})
}

// Run drives the loop until the input source quits. The mode is chosen
// each time the loop (re)starts: GAMEPLAY when an area and mission are
// loaded, TITLE otherwise.
func (g *Game) Run() error {
	defer g.closeRecorder()
	for {
		var err error
		if g.World.InGameplay() {
			g.mode = ModeGameplay
			err = g.runGameplay()
		} else {
			g.mode = ModeTitle
			err = g.runTitle()
		}
		switch {
		case errors.Is(err, input.ErrQuit):
			log.Printf("Game: quit after %d steps", g.World.Steps())
			return nil
		case errors.Is(err, errFrameLimit):
			return nil
		case err != nil:
			return err
		}
	}
}

func (g *Game) seconds() float32 {
	return float32(g.opts.Clock.Now().Seconds())
}

// beginFrame returns the wall time since the previous frame.
func (g *Game) beginFrame(now float32) (float32, error) {
	if g.opts.MaxFrames > 0 && g.frames >= g.opts.MaxFrames {
		return 0, errFrameLimit
	}
	g.frames++
	dt := now - g.lastFrame
	if g.frames == 1 || dt < 0 {
		dt = 0
	}
	g.lastFrame = now
	if g.fade != nil {
		g.fade.Advance(dt)
		if g.fade.Done() && g.fade.To == 0 {
			g.fade = nil
		}
	}
	return dt, nil
}

func (g *Game) draw(overlay func(render.Backend)) {
	if g.Pipeline == nil {
		return
	}
	in := render.FrameInput{
		Camera:  g.World.Camera,
		Objects: g.World.Objects(),
		Sky:     g.World.Sky,
		Overlay: overlay,
		Fade:    g.fade.Current(),
	}
	if g.debug {
		in.Debug = func(near, far int) []string {
			lines := render.DebugLines(g.World.Steps(), g.World.List.Len(), near, far, g.World.Pairs().Count())
			return append(lines, fmt.Sprintf("mode %s", g.mode))
		}
	}
	g.Pipeline.Frame(in)
}

func (g *Game) openRecorder() {
	dir := g.opts.Tuning.ReplayDir
	if dir == "" || g.rec != nil {
		return
	}
	rec, err := replay.Create(dir, replay.Header{
		RunID:      g.runID,
		TickRateHz: g.opts.Tuning.TickRateHz,
		Area:       g.World.AreaName(),
		Mission:    g.World.MissionName(),
	})
	if err != nil {
		log.Printf("Game: replay disabled: %v", err)
		return
	}
	g.rec = rec
}

func (g *Game) closeRecorder() {
	if g.rec == nil {
		return
	}
	if err := g.rec.Close(); err != nil {
		log.Printf("Game: closing replay: %v", err)
	}
	log.Printf("Game: replay %s holds %d steps", g.rec.Path(), g.rec.Frames())
	g.rec = nil
}
