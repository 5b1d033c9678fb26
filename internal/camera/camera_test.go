package camera

import (
	"testing"

	"skyring/internal/engine"
	"skyring/internal/geom"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

func near(a, b rl.Vector3) bool {
	return geom.Dist(a, b) < 1e-3
}

func TestFollowCameraOffsets(t *testing.T) {
	list := engine.NewObjectList()
	av := engine.NewGameObject("LIBAvatar", "Avatar")
	av.Position = rl.Vector3{X: 10, Y: 0, Z: 0}
	list.Add(av)

	cam := NewFollowCamera(list, av)
	eye, center, up := cam.ViewParameters()

	if !near(eye, rl.Vector3{X: 10, Y: 1.1, Z: -7}) {
		t.Errorf("Expected eye behind avatar, got %v", eye)
	}
	if !near(center, rl.Vector3{X: 10, Y: 1.1}) {
		t.Errorf("Expected center above avatar, got %v", center)
	}
	if !near(up, geom.Up) {
		t.Errorf("Expected world up, got %v", up)
	}
}

func TestFollowCameraTracksOrientation(t *testing.T) {
	list := engine.NewObjectList()
	av := engine.NewGameObject("LIBAvatar", "Avatar")
	list.Add(av)
	cam := NewFollowCamera(list, av)

	// turning the avatar 90 degrees left puts the camera on -X
	av.Orientation = geom.FromEulerDeg(rl.Vector3{Y: 90})
	eye := cam.Position()
	if !near(eye, rl.Vector3{X: -7, Y: 1.1}) {
		t.Errorf("Expected eye at (-7,1.1,0), got %v", eye)
	}
}

func TestFollowCameraIsPureFunctionOfState(t *testing.T) {
	list := engine.NewObjectList()
	av := engine.NewGameObject("LIBAvatar", "Avatar")
	list.Add(av)
	cam := NewFollowCamera(list, av)

	e1, _, _ := cam.ViewParameters()
	e2, _, _ := cam.ViewParameters()
	if e1 != e2 {
		t.Errorf("Expected repeated queries to agree, got %v and %v", e1, e2)
	}
}

func TestFollowCameraLost(t *testing.T) {
	list := engine.NewObjectList()
	av := engine.NewGameObject("LIBAvatar", "Avatar")
	av.Position = rl.Vector3{Z: 3}
	list.Add(av)
	cam := NewFollowCamera(list, av)
	if cam.Lost() {
		t.Fatal("Expected camera to have its target")
	}

	list.Remove(av)
	eye := cam.Position()

	if !cam.Lost() {
		t.Error("Expected camera to report lost target")
	}
	if !near(eye, rl.Vector3{Y: 1.1, Z: -4}) {
		t.Errorf("Expected last known pose, got %v", eye)
	}
}

func TestFreeCameraOrbit(t *testing.T) {
	cam := NewFreeCamera(rl.Vector3{Z: 10}, rl.Vector3{})
	cam.Orbit(0.25)
	if math32.Abs(cam.Eye.X-10) > 1e-3 || math32.Abs(cam.Eye.Z) > 1e-3 {
		t.Errorf("Expected eye at (10,0,0), got %v", cam.Eye)
	}
	eye, center, up := cam.ViewParameters()
	if eye != cam.Position() || center != (rl.Vector3{}) || up != geom.Up {
		t.Error("Expected view parameters to reflect the pose")
	}
}

func TestToRaylib(t *testing.T) {
	cam := NewTitleCamera()
	rc := ToRaylib(cam, 45)
	if rc.Position != TitleEye || rc.Fovy != 45 {
		t.Errorf("Expected title pose with fovy 45, got %v", rc)
	}
}
