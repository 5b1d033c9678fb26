package savedb

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
)

func TestRecordAndBest(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "save", "results.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer db.Close()
	ctx := context.Background()

	if _, err := db.Best(ctx, "first_flight"); !errors.Is(err, ErrNoResult) {
		t.Errorf("Expected ErrNoResult on empty db, got %v", err)
	}

	for _, r := range []Result{
		{RunID: "a", Mission: "first_flight", Outcome: "complete", Steps: 900},
		{RunID: "b", Mission: "first_flight", Outcome: "failed", Steps: 100},
		{RunID: "c", Mission: "first_flight", Outcome: "complete", Steps: 600},
		{RunID: "d", Mission: "other", Outcome: "complete", Steps: 10},
	} {
		if err := db.Record(ctx, r); err != nil {
			t.Fatalf("Record failed: %v", err)
		}
	}

	best, err := db.Best(ctx, "first_flight")
	if err != nil {
		t.Fatalf("Best failed: %v", err)
	}
	if best.RunID != "c" || best.Steps != 600 {
		t.Errorf("Expected run c with 600 steps, got %s with %d", best.RunID, best.Steps)
	}

	hist, err := db.History(ctx, "first_flight")
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}
	if len(hist) != 3 || hist[0].RunID != "a" {
		t.Errorf("Expected 3 runs starting with a, got %+v", hist)
	}
	if hist[0].RecordedAt.IsZero() {
		t.Errorf("Expected recorded time to be stored")
	}
}
