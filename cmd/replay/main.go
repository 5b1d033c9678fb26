// Re-simulates a recorded run headlessly and prints where it ended, so two
// runs of the same recording can be compared.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"skyring/internal/assets"
	"skyring/internal/config"
	"skyring/internal/game"
	_ "skyring/internal/objects"
	"skyring/internal/replay"
)

func main() {
	var (
		path       = flag.String("replay", "", "path to .jsonl.zst recording")
		tuningPath = flag.String("tuning", "configs/tuning.yaml", "tuning file")
	)
	flag.Parse()

	if *path == "" {
		fmt.Fprintln(os.Stderr, "missing -replay")
		os.Exit(2)
	}

	player, err := replay.Open(*path)
	if err != nil {
		fmt.Fprintln(os.Stderr, "open replay:", err)
		os.Exit(1)
	}
	h := player.Header()

	t, err := config.Load(*tuningPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	if h.TickRateHz > 0 {
		t.TickRateHz = h.TickRateHz
	}
	t.ReplayDir = ""
	t.ObserverAddr = ""

	cat, err := assets.Load(t.CatalogPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "catalog:", err)
		os.Exit(1)
	}

	// one second per frame so every recorded step is due at once
	g := game.New(game.Options{
		Tuning:  t,
		Catalog: cat,
		Source:  player,
		Clock:   &game.ManualClock{Tick: time.Second},
	})
	if err := g.Start(h.Area, h.Mission); err != nil {
		fmt.Fprintln(os.Stderr, "start:", err)
		os.Exit(1)
	}
	if err := g.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "run:", err)
		os.Exit(1)
	}

	fmt.Printf("replay run=%s area=%s mission=%s recorded=%d steps=%d\n",
		h.RunID, h.Area, h.Mission, player.Len(), g.World.Steps())
	if a := g.World.Avatar(); a != nil {
		p := a.Base().Position
		fmt.Printf("avatar %s at (%.6f, %.6f, %.6f)\n", a.Base().Name, p.X, p.Y, p.Z)
	}
	if c := g.World.Control; c != nil {
		done, total := c.Progress()
		fmt.Printf("mission %s %d/%d objectives\n", c.State(), done, total)
	}
}
