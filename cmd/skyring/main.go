package main

import (
	"context"
	"flag"
	"log"
	"os"
	"path/filepath"
	"strings"

	"skyring/internal/assets"
	"skyring/internal/config"
	"skyring/internal/game"
	"skyring/internal/input"
	_ "skyring/internal/objects"
	"skyring/internal/persistence/savedb"
	"skyring/internal/render"
	"skyring/internal/transport/observer"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func main() {
	// Change working directory to executable location for deployed builds.
	// Skip this for "go run" which puts the binary in a temp directory.
	if execPath, err := os.Executable(); err == nil {
		execDir := filepath.Dir(execPath)
		if !strings.Contains(execDir, "go-build") {
			os.Chdir(execDir)
		}
	}

	tuningPath := flag.String("tuning", "configs/tuning.yaml", "tuning file")
	area := flag.String("area", "", "area to load at start (skips the title)")
	missionName := flag.String("mission", "", "mission to load at start")
	flag.Parse()

	t, err := config.Load(*tuningPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if *area != "" {
		t.StartArea = *area
	}
	if *missionName != "" {
		t.StartMission = *missionName
	}

	cat, err := assets.Load(t.CatalogPath)
	if err != nil {
		log.Fatalf("catalog: %v", err)
	}

	opts := game.Options{Tuning: t, Catalog: cat}

	if t.SaveDBPath != "" {
		db, err := savedb.Open(t.SaveDBPath)
		if err != nil {
			log.Printf("savedb disabled: %v", err)
		} else {
			defer db.Close()
			opts.Results = db
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if t.ObserverAddr != "" {
		hub := observer.NewHub(log.New(os.Stderr, "", log.LstdFlags))
		opts.Observer = hub
		go func() {
			if err := hub.Serve(ctx, t.ObserverAddr); err != nil {
				log.Printf("Observer: %v", err)
			}
		}()
	}

	rl.SetConfigFlags(rl.FlagWindowHighdpi | rl.FlagMsaa4xHint)
	rl.InitWindow(t.Display.Width, t.Display.Height, "Skyring")
	defer rl.CloseWindow()
	rl.SetTargetFPS(t.Display.MaxFPS)
	rl.SetExitKey(rl.KeyNull)

	backend := render.NewRaylib(t.Display)
	defer backend.Unload()
	defer assets.Unload()

	opts.Backend = backend
	opts.Source = input.NewDevice(t.DeadZone)

	g := game.New(opts)
	g.InitUI()
	if err := g.Start(t.StartArea, t.StartMission); err != nil {
		log.Printf("start: %v", err)
	}
	if err := g.Run(); err != nil {
		log.Fatalf("run: %v", err)
	}
}
