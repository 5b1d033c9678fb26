package game

import (
	"context"
	"errors"
	"fmt"
	"log"

	"skyring/internal/assets"
	"skyring/internal/camera"
	"skyring/internal/input"
	"skyring/internal/persistence/savedb"
	"skyring/internal/render"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// titleOrbitRate is how fast the title camera circles, in revolutions per
// second.
const titleOrbitRate = 0.005

type titleMenu struct {
	names    []string
	labels   []string
	areas    []string
	records  []string
	selected int
}

func newTitleMenu(cat *assets.Catalog) titleMenu {
	var m titleMenu
	for _, name := range cat.MissionNames() {
		def := cat.Missions[name]
		label := def.Title
		if label == "" {
			label = name
		}
		m.names = append(m.names, name)
		m.labels = append(m.labels, label)
		m.areas = append(m.areas, def.Area)
	}
	m.records = make([]string, len(m.names))
	return m
}

// loadRecords fills in each mission's best completed run and run count.
func (m *titleMenu) loadRecords(ctx context.Context, db *savedb.DB) {
	for i, name := range m.names {
		runs, err := db.History(ctx, name)
		if err != nil {
			log.Printf("Game: reading results for %s: %v", name, err)
			continue
		}
		best, err := db.Best(ctx, name)
		switch {
		case errors.Is(err, savedb.ErrNoResult):
			m.records[i] = ""
			if len(runs) > 0 {
				m.records[i] = fmt.Sprintf("runs %d, not cleared", len(runs))
			}
		case err != nil:
			log.Printf("Game: reading best run for %s: %v", name, err)
		default:
			m.records[i] = fmt.Sprintf("runs %d, best %d steps", len(runs), best.Steps)
		}
	}
}

// handle moves the selection and returns the chosen entry, or -1.
func (m *titleMenu) handle(snap input.Snapshot) int {
	n := len(m.names)
	if n == 0 {
		return -1
	}
	switch {
	case snap.Pressed(input.ButtonUp):
		m.selected = (m.selected + n - 1) % n
	case snap.Pressed(input.ButtonDown):
		m.selected = (m.selected + 1) % n
	case snap.Pressed(input.ButtonA), snap.Pressed(input.ButtonStart):
		return m.selected
	}
	return -1
}

// draw shows the menu and returns the clicked entry, or -1.
func (m *titleMenu) draw(b render.Backend) int {
	w, h := b.ScreenSize()
	b.DrawText("SKYRING", w/2-70, h/4, 36, colorTextPrimary)

	const width, rowH, buttonW = 520, 40, 300
	bounds := rl.Rectangle{
		X:      float32(w/2 - width/2),
		Y:      float32(h / 3),
		Width:  width,
		Height: float32(40 + rowH*len(m.names)),
	}
	b.Panel(bounds, "Missions")

	clicked := -1
	for i, label := range m.labels {
		if i == m.selected {
			label = "> " + label
		}
		row := rl.Rectangle{X: bounds.X + 10, Y: bounds.Y + 32 + float32(i*rowH), Width: buttonW, Height: rowH - 8}
		if b.Button(row, label) {
			clicked = i
		}
		if i < len(m.records) && m.records[i] != "" {
			b.DrawText(m.records[i], int32(row.X+row.Width)+12, int32(row.Y)+8, 16, colorTextSecondary)
		}
	}
	b.DrawText("UP/DOWN to choose, A to fly", w/2-130, h-40, 18, colorTextMuted)
	return clicked
}

// runTitle orbits the title camera and shows the mission menu until a
// mission loads.
func (g *Game) runTitle() error {
	if _, ok := g.World.Camera.(*camera.FreeCamera); !ok {
		g.World.Camera = camera.NewTitleCamera()
	}
	if g.opts.Results != nil {
		g.title.loadRecords(context.Background(), g.opts.Results)
	}
	for {
		dt, err := g.beginFrame(g.seconds())
		if err != nil {
			return err
		}
		snap, err := g.opts.Source.Sample()
		if err != nil {
			return err
		}
		choice := g.title.handle(snap)

		if fc, ok := g.World.Camera.(*camera.FreeCamera); ok {
			fc.Orbit(dt * titleOrbitRate)
		}
		g.draw(func(b render.Backend) {
			if i := g.title.draw(b); i >= 0 && choice < 0 {
				choice = i
			}
		})

		if choice >= 0 && g.launch(choice) {
			return nil
		}
	}
}

func (g *Game) launch(i int) bool {
	name, area := g.title.names[i], g.title.areas[i]
	if err := g.World.LoadArea(area); err != nil {
		log.Printf("Game: cannot start %s: %v", name, err)
		return false
	}
	if err := g.World.LoadMission(name); err != nil {
		log.Printf("Game: cannot start %s: %v", name, err)
		return false
	}
	log.Printf("Game: starting mission %s", name)
	return true
}
