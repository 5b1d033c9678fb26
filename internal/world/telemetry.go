package world

import "skyring/internal/geom"

type ObjectState struct {
	Name     string     `json:"name"`
	Kind     string     `json:"kind"`
	Position [3]float32 `json:"pos"`
	Speed    float32    `json:"speed"`
}

// Telemetry is a read-only picture of the world after a step.
type Telemetry struct {
	Step     uint64        `json:"step"`
	Area     string        `json:"area,omitempty"`
	Mission  string        `json:"mission,omitempty"`
	State    string        `json:"state,omitempty"`
	Progress [2]int        `json:"progress"`
	Pairs    int           `json:"pairs"`
	Objects  []ObjectState `json:"objects"`
}

func (w *World) Telemetry() Telemetry {
	t := Telemetry{
		Step:    w.steps,
		Area:    w.area,
		Mission: w.mission,
		Pairs:   w.pairs.Count(),
		Objects: make([]ObjectState, 0, w.List.Len()),
	}
	if w.Control != nil {
		t.State = w.Control.State().String()
		t.Progress[0], t.Progress[1] = w.Control.Progress()
	}
	for _, o := range w.List.All() {
		g := o.Base()
		t.Objects = append(t.Objects, ObjectState{
			Name:     g.Name,
			Kind:     g.Kind,
			Position: [3]float32{g.Position.X, g.Position.Y, g.Position.Z},
			Speed:    geom.Length(g.LinearVel),
		})
	}
	return t
}
