package internal

import (
	"github.com/lucasb-eyer/go-colorful"
	"graphics.gd/classdb/ColorPickerButton"
	"graphics.gd/classdb/HSlider"
	"graphics.gd/classdb/Input"
	"graphics.gd/classdb/Label"
	"graphics.gd/classdb/Range"
	"graphics.gd/classdb/VBoxContainer"
	"graphics.gd/variant/Color"
	"graphics.gd/variant/Float"
	"graphics.gd/variant/Vector2"

	"the.quetzal.community/starling/galaxy"
)

// TuningPanel is the column of sliders and color pickers that reshape the
// galaxy. Rows are generated from the field tags, so adding a parameter
// to [galaxy.Field] is enough to expose it here. Edits apply to the field
// immediately but the rebuild only fires once the edit is committed, on
// mouse release, never per drag sample.
type TuningPanel struct {
	VBoxContainer.Extension[TuningPanel] `gd:"StarlingTuningPanel"`

	galaxy    *Galaxy
	committed func()

	edits_pending bool
}

// Setup builds the panel rows, it expects the galaxy to be wired in.
func (panel *TuningPanel) Setup() {
	for _, name := range galaxy.Sliders() {
		label := Label.New()
		label.SetText(name)
		panel.AsNode().AddChild(label.AsNode())

		slider := HSlider.Advanced(HSlider.New())
		_, from, upto, step := galaxy.SliderConfig(name)
		slider.AsRange().SetMin(from)
		slider.AsRange().SetMax(upto)
		slider.AsRange().SetStep(step)
		slider.AsRange().SetValue(panel.galaxy.field.Get(name))
		Range.Instance(slider.AsRange()).OnValueChanged(func(value Float.X) {
			panel.galaxy.field.Set(name, float64(value))
			panel.edits_pending = true
		})
		HSlider.Instance(slider).AsControl().SetCustomMinimumSize(Vector2.New(220, 0))
		panel.AsNode().AddChild(HSlider.Instance(slider).AsNode())
	}
	panel.addPicker("inside color", panel.galaxy.field.InsideColor, func(color colorful.Color) {
		panel.galaxy.field.InsideColor = color
	})
	panel.addPicker("outside color", panel.galaxy.field.OutsideColor, func(color colorful.Color) {
		panel.galaxy.field.OutsideColor = color
	})
}

func (panel *TuningPanel) addPicker(name string, initial colorful.Color, assign func(colorful.Color)) {
	label := Label.New()
	label.SetText(name)
	panel.AsNode().AddChild(label.AsNode())

	picker := ColorPickerButton.New()
	picker.SetColor(engineColor(initial))
	picker.OnColorChanged(func(color Color.RGBA) {
		assign(coreColor(color))
		panel.edits_pending = true
	})
	panel.AsNode().AddChild(picker.AsNode())
}

// Process commits the pending edit once the mouse button is released.
func (panel *TuningPanel) Process(delta Float.X) {
	if panel.edits_pending && !Input.IsMouseButtonPressed(Input.MouseButtonLeft) {
		panel.edits_pending = false
		panel.galaxy.Reshape()
		if panel.committed != nil {
			panel.committed()
		}
	}
}

func engineColor(color colorful.Color) Color.RGBA {
	return Color.RGBA{R: Float.X(color.R), G: Float.X(color.G), B: Float.X(color.B), A: 1}
}

func coreColor(color Color.RGBA) colorful.Color {
	return colorful.Color{R: float64(color.R), G: float64(color.G), B: float64(color.B)}
}
