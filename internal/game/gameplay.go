package game

import (
	"log"
	"time"

	"skyring/internal/input"
	"skyring/internal/mission"
	"skyring/internal/render"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// runGameplay steps the loaded mission until the player leaves it or the
// input source quits. Steps are scheduled by StepsDue against the time
// spent unpaused in this loop.
func (g *Game) runGameplay() error {
	g.openRecorder()
	defer g.closeRecorder()

	rate := g.opts.Tuning.TickRateHz
	base := g.World.Steps()
	start := g.opts.Clock.Now()
	var pausedFor, pausedAt time.Duration
	g.paused = false

	for {
		now := g.opts.Clock.Now()
		if _, err := g.beginFrame(float32(now.Seconds())); err != nil {
			return err
		}

		if g.paused {
			// input is still sampled while paused, but nothing steps
			snap, err := g.opts.Source.Sample()
			if err != nil {
				return err
			}
			if pausePressed(snap) {
				g.paused = false
				pausedFor += now - pausedAt
				log.Printf("Game: resumed at step %d", g.World.Steps())
			}
		} else {
			due := StepsDue(now-start-pausedFor, rate, g.World.Steps()-base)
			for i := uint64(0); i < due; i++ {
				snap, err := g.opts.Source.Sample()
				if err != nil {
					return err
				}
				if g.failed() && snap.Pressed(input.ButtonB) {
					return g.retryMission()
				}
				if g.finished() && (snap.Pressed(input.ButtonA) || snap.Pressed(input.ButtonStart)) {
					return g.leaveMission()
				}
				if pausePressed(snap) {
					g.paused = true
					pausedAt = now
					log.Printf("Game: paused at step %d", g.World.Steps())
					break
				}
				if snap.Pressed(input.ButtonSelect) {
					g.debug = !g.debug
				}
				g.step(snap)
			}
		}

		g.draw(g.gameplayOverlay)
	}
}

func pausePressed(snap input.Snapshot) bool {
	return snap.Pressed(input.ButtonPause) || snap.Pressed(input.ButtonStart)
}

func (g *Game) step(snap input.Snapshot) {
	if g.rec != nil {
		if err := g.rec.Record(g.World.Steps(), snap); err != nil {
			log.Printf("Game: replay write failed, recording stopped: %v", err)
			g.closeRecorder()
		}
	}
	g.World.Step(snap)

	every := uint64(g.opts.Tuning.ObserverEvery)
	if g.opts.Observer != nil && every > 0 && g.World.Steps()%every == 0 {
		if err := g.opts.Observer.Publish(g.World.Telemetry()); err != nil {
			log.Printf("Game: telemetry: %v", err)
		}
	}
}

func (g *Game) finished() bool {
	c := g.World.Control
	return c != nil && (c.State() == mission.Complete || c.State() == mission.Failed)
}

func (g *Game) failed() bool {
	return g.World.Control != nil && g.World.Control.State() == mission.Failed
}

// retryMission reloads the failed mission from its templates. The loop
// then restarts in gameplay.
func (g *Game) retryMission() error {
	name := g.World.MissionName()
	if err := g.World.Restart(); err != nil {
		return err
	}
	log.Printf("Game: retrying %s", name)
	return nil
}

// leaveMission drops the mission but keeps its area, which sends the loop
// back to the title.
func (g *Game) leaveMission() error {
	if err := g.World.LoadArea(g.World.AreaName()); err != nil {
		return err
	}
	g.fade = render.FadeIn(rl.Black, 0.5)
	return nil
}

func (g *Game) gameplayOverlay(b render.Backend) {
	if g.World.Control != nil {
		g.World.Control.Draw(b)
	}
	w, h := b.ScreenSize()
	if g.paused {
		b.Panel(rl.Rectangle{X: float32(w/2 - 120), Y: float32(h/2 - 40), Width: 240, Height: 80}, "Paused")
		b.DrawText("PAUSE to resume", w/2-90, h/2, 18, colorTextSecondary)
	}
	switch {
	case g.failed():
		b.DrawText("Press B to retry, A to continue", w/2-150, h-60, 20, colorTextSecondary)
	case g.finished():
		b.DrawText("Press A to continue", w/2-100, h-60, 20, colorTextSecondary)
	}
}
