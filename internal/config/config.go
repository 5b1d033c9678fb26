// Package config holds the engine tuning loaded from tuning.yaml.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Tuning struct {
	TickRateHz       int        `yaml:"tick_rate_hz"`
	SolverIterations int        `yaml:"solver_iterations"`
	Gravity          [3]float32 `yaml:"gravity"`
	CollisionCell    float32    `yaml:"collision_cell"`
	VelDamp          float32    `yaml:"vel_damp"`
	AngDamp          float32    `yaml:"ang_damp"`
	DeadZone         float32    `yaml:"dead_zone"`

	Display Display `yaml:"display"`

	CatalogPath  string `yaml:"catalog_path"`
	StartArea    string `yaml:"start_area"`
	StartMission string `yaml:"start_mission"`

	ReplayDir    string `yaml:"replay_dir"`
	SaveDBPath   string `yaml:"save_db_path"`
	ObserverAddr string `yaml:"observer_addr"`
	// ObserverEvery is how many steps pass between telemetry frames.
	ObserverEvery int `yaml:"observer_every"`
}

type Display struct {
	Width        int32   `yaml:"width"`
	Height       int32   `yaml:"height"`
	FOV          float32 `yaml:"fov"`
	NearClip     float32 `yaml:"near_clip"`
	GameplayClip float32 `yaml:"gameplay_clip"`
	SkyClip      float32 `yaml:"sky_clip"`
	NearFactor   float32 `yaml:"near_factor"`
	MaxFPS       int32   `yaml:"max_fps"`
	Debug        bool    `yaml:"debug"`
	ShaderDir    string  `yaml:"shader_dir"`
}

func Default() Tuning {
	return Tuning{
		TickRateHz:       60,
		SolverIterations: 10,
		CollisionCell:    16,
		VelDamp:          0.15,
		AngDamp:          0.15,
		DeadZone:         0.001,
		Display: Display{
			Width:        800,
			Height:       600,
			FOV:          45,
			NearClip:     0.1,
			GameplayClip: 50000,
			SkyClip:      1e12,
			NearFactor:   0.9,
			MaxFPS:       60,
		},
		CatalogPath:   "assets/catalog/main.yaml",
		ObserverEvery: 6,
	}
}

// DT is the fixed step length in seconds.
func (t Tuning) DT() float32 {
	return 1 / float32(t.TickRateHz)
}

// Load reads path over the defaults. A missing file yields the defaults.
func Load(path string) (Tuning, error) {
	t := Default()
	raw, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return t, nil
	}
	if err != nil {
		return t, err
	}
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return t, fmt.Errorf("tuning.yaml: %w", err)
	}
	if err := t.Validate(); err != nil {
		return t, fmt.Errorf("tuning.yaml: %w", err)
	}
	return t, nil
}

func (t Tuning) Validate() error {
	switch {
	case t.TickRateHz <= 0:
		return fmt.Errorf("tick_rate_hz must be positive, got %d", t.TickRateHz)
	case t.SolverIterations <= 0:
		return fmt.Errorf("solver_iterations must be positive, got %d", t.SolverIterations)
	case t.VelDamp < 0 || t.AngDamp < 0:
		return fmt.Errorf("vel_damp and ang_damp must not be negative, got %g and %g", t.VelDamp, t.AngDamp)
	case t.Display.GameplayClip <= 0 || t.Display.SkyClip <= 0:
		return errors.New("clip distances must be positive")
	case t.Display.SkyClip < t.Display.GameplayClip:
		return errors.New("sky_clip must not be closer than gameplay_clip")
	case t.Display.NearFactor <= 0 || t.Display.NearFactor > 1:
		return fmt.Errorf("near_factor must be in (0,1], got %g", t.Display.NearFactor)
	}
	return nil
}
