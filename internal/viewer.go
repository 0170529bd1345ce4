package internal

import (
	"encoding/json"
	"fmt"

	"graphics.gd/classdb/Camera3D"
	"graphics.gd/classdb/Engine"
	"graphics.gd/classdb/Environment"
	"graphics.gd/classdb/FileAccess"
	"graphics.gd/classdb/Input"
	"graphics.gd/classdb/InputEvent"
	"graphics.gd/classdb/InputEventMagnifyGesture"
	"graphics.gd/classdb/InputEventMouseButton"
	"graphics.gd/classdb/InputEventMouseMotion"
	"graphics.gd/classdb/InputEventScreenDrag"
	"graphics.gd/classdb/Node3D"
	"graphics.gd/classdb/OS"
	"graphics.gd/classdb/RenderingServer"
	"graphics.gd/classdb/WorldEnvironment"
	"graphics.gd/variant/Angle"
	"graphics.gd/variant/Color"
	"graphics.gd/variant/Float"
	"graphics.gd/variant/Object"
	"graphics.gd/variant/Vector3"

	"the.quetzal.community/starling/galaxy"
)

// Viewer is the root of the scene: it owns the galaxy, the camera rig
// orbiting it and the tuning panel that reshapes it.
type Viewer struct {
	Node3D.Extension[Viewer] `gd:"StarlingViewer"`

	// FocalPoint is the point the camera orbits around, the Lens tilts
	// up and down while the FocalPoint spins.
	FocalPoint struct {
		Node3D.Instance

		Lens struct {
			Node3D.Instance

			Camera Camera3D.Instance
		}
	}

	Galaxy *Galaxy
	Panel  *TuningPanel
}

// Ready does a bunch of dependency injection and setup.
func (viewer *Viewer) Ready() {
	viewer.Galaxy.field = viewer.loadFieldState()

	viewer.Panel.galaxy = viewer.Galaxy
	viewer.Panel.committed = viewer.saveFieldState
	viewer.Panel.Setup()

	env := Environment.New()
	env.SetBackgroundMode(Environment.BgClearColor)
	worldenv := WorldEnvironment.New()
	worldenv.SetEnvironment(env)
	viewer.AsNode().AddChild(worldenv.AsNode())
	RenderingServer.SetDefaultClearColor(Color.RGBA{R: 0.01, G: 0.01, B: 0.03, A: 1})

	viewer.FocalPoint.Lens.AsNode3D().Rotate(Vector3.New(1, 0, 0), Angle.InRadians(-30))
	viewer.FocalPoint.Lens.Camera.AsNode3D().SetPosition(Vector3.New(0, 0, 9))

	viewer.Galaxy.Reshape()

	fmt.Println("Viewer setup complete")
}

const speed = 1.5

func (viewer *Viewer) Process(dt Float.X) {
	if Input.IsKeyPressed(Input.KeyQ) || Input.IsKeyPressed(Input.KeyLeft) {
		viewer.FocalPoint.AsNode3D().Rotate(Vector3.New(0, 1, 0), -Angle.Radians(speed*dt))
	}
	if Input.IsKeyPressed(Input.KeyE) || Input.IsKeyPressed(Input.KeyRight) {
		viewer.FocalPoint.AsNode3D().Rotate(Vector3.New(0, 1, 0), Angle.Radians(speed*dt))
	}
	if Input.IsKeyPressed(Input.KeyR) || Input.IsKeyPressed(Input.KeyUp) {
		viewer.FocalPoint.Lens.AsNode3D().Rotate(Vector3.New(1, 0, 0), -Angle.Radians(speed*dt))
	}
	if Input.IsKeyPressed(Input.KeyF) || Input.IsKeyPressed(Input.KeyDown) {
		viewer.FocalPoint.Lens.AsNode3D().Rotate(Vector3.New(1, 0, 0), Angle.Radians(speed*dt))
	}
	if Input.IsKeyPressed(Input.KeyEqual) {
		viewer.FocalPoint.Lens.Camera.AsNode3D().Translate(Vector3.New(0, 0, -4*dt))
	}
	if Input.IsKeyPressed(Input.KeyMinus) {
		viewer.FocalPoint.Lens.Camera.AsNode3D().Translate(Vector3.New(0, 0, 4*dt))
	}
}

func (viewer *Viewer) UnhandledInput(event InputEvent.Instance) {
	if mouse, ok := Object.As[InputEventMouseMotion.Instance](event); ok {
		if Input.IsMouseButtonPressed(Input.MouseButtonMiddle) || Input.IsMouseButtonPressed(Input.MouseButtonLeft) {
			relative := mouse.Relative()
			viewer.FocalPoint.AsNode3D().Rotate(Vector3.New(0, 1, 0), -Angle.Radians(relative.X*0.005))
			viewer.FocalPoint.Lens.AsNode3D().Rotate(Vector3.New(1, 0, 0), -Angle.Radians(relative.Y*0.005))
		}
	}
	if gesture, ok := Object.As[InputEventScreenDrag.Instance](event); ok {
		if gesture.Index() != 0 {
			return
		}
		relative := gesture.Relative()
		viewer.FocalPoint.AsNode3D().Rotate(Vector3.New(0, 1, 0), -Angle.Radians(relative.X*0.005))
		viewer.FocalPoint.Lens.AsNode3D().Rotate(Vector3.New(1, 0, 0), -Angle.Radians(relative.Y*0.005))
	}
	if gesture, ok := Object.As[InputEventMagnifyGesture.Instance](event); ok {
		factor := gesture.Factor()
		if factor < 1.005 && factor > 0.995 {
			return
		}
		viewer.FocalPoint.Lens.Camera.AsNode3D().Translate(Vector3.New(0, 0, (1-factor)*5))
	}
	if mouse, ok := Object.As[InputEventMouseButton.Instance](event); ok {
		if mouse.ButtonIndex() == Input.MouseButtonWheelUp {
			viewer.FocalPoint.Lens.Camera.AsNode3D().Translate(Vector3.New(0, 0, -0.4))
		}
		if mouse.ButtonIndex() == Input.MouseButtonWheelDown {
			viewer.FocalPoint.Lens.Camera.AsNode3D().Translate(Vector3.New(0, 0, 0.4))
		}
	}
}

func (viewer *Viewer) saveFieldState() {
	file := FileAccess.Open(OS.GetUserDataDir()+"/galaxy.json", FileAccess.Write)
	if file == FileAccess.Nil {
		return
	}
	buf, err := json.Marshal(viewer.Galaxy.field)
	if err != nil {
		Engine.Raise(fmt.Errorf("failed to marshal galaxy state: %w", err))
		return
	}
	file.StoreBuffer(buf)
	file.Close()
}

func (viewer *Viewer) loadFieldState() galaxy.Field {
	field := galaxy.Defaults()
	path := OS.GetUserDataDir() + "/galaxy.json"
	file := FileAccess.Open(path, FileAccess.Read)
	if file != FileAccess.Nil {
		buf := file.GetBuffer(FileAccess.GetSize(path))
		if err := json.Unmarshal(buf, &field); err != nil {
			Engine.Raise(fmt.Errorf("failed to unmarshal galaxy state: %w", err))
			field = galaxy.Defaults()
		}
		file.Close()
	}
	return field
}
