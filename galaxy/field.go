// Package galaxy samples the particles of a procedurally generated
// spiral galaxy. It has no dependency on the rendering engine, so the
// shape of a galaxy can be computed (and tested) headlessly.
package galaxy

import (
	"math"
	"math/rand"
	"reflect"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Field describes the shape of a galaxy. Every numeric parameter carries
// the range and default used to build its slider in the tuning panel.
// The panel clamps edits into the tagged range, so sampling never has to
// validate its input.
type Field struct {
	Count    int     `gd:"count" range:"100,1000000" default:"50000"`
	Size     float64 `gd:"size" range:"1,16" default:"2"`
	Radius   float64 `gd:"radius" range:"0.01,20" default:"5"`
	Branches int     `gd:"branches" range:"1,20" default:"3"`
	Spin     float64 `gd:"spin" range:"-5,5" default:"1"`

	// Randomness scales how far particles scatter away from their branch,
	// RandomnessPower biases the scatter towards the branch centerline,
	// higher values cluster tighter with the occasional outlier.
	Randomness      float64 `gd:"randomness" range:"0,2" default:"0.2"`
	RandomnessPower float64 `gd:"randomness_power" range:"1,10" default:"3"`

	Seed int `gd:"seed" range:"0,1000,or_greater" default:"100"`

	InsideColor  colorful.Color
	OutsideColor colorful.Color
}

const (
	defaultInsideColor  = "#ff6030"
	defaultOutsideColor = "#1b3984"
)

// Defaults returns a field populated from the struct tags.
func Defaults() (field Field) {
	rtype := reflect.TypeFor[Field]()
	rvalue := reflect.ValueOf(&field).Elem()
	for i := range rtype.NumField() {
		tag := rtype.Field(i).Tag.Get("default")
		if tag == "" {
			continue
		}
		switch rtype.Field(i).Type.Kind() {
		case reflect.Int:
			value, _ := strconv.ParseInt(tag, 10, 64)
			rvalue.Field(i).SetInt(value)
		case reflect.Float64:
			value, _ := strconv.ParseFloat(tag, 64)
			rvalue.Field(i).SetFloat(value)
		}
	}
	field.InsideColor, _ = colorful.Hex(defaultInsideColor)
	field.OutsideColor, _ = colorful.Hex(defaultOutsideColor)
	return field
}

// Sliders lists the tunable parameters in declaration order.
func Sliders() (names []string) {
	rtype := reflect.TypeFor[Field]()
	for i := range rtype.NumField() {
		if name := rtype.Field(i).Tag.Get("gd"); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// SliderConfig returns the slider configuration for the named parameter,
// derived from the field tags. Integer parameters step by whole units.
func SliderConfig(name string) (init, from, upto, step float64) {
	rtype := reflect.TypeFor[Field]()
	for i := range rtype.NumField() {
		field := rtype.Field(i)
		if field.Tag.Get("gd") == name {
			init, _ = strconv.ParseFloat(field.Tag.Get("default"), 64)
			ranges := strings.Split(field.Tag.Get("range"), ",")
			from, _ = strconv.ParseFloat(ranges[0], 64)
			upto, _ = strconv.ParseFloat(ranges[1], 64)
			step := 0.001
			if field.Type.Kind() == reflect.Int {
				step = 1
			}
			return init, from, upto, step
		}
	}
	return 1, 0, 5, 0.01
}

// Get reads the named parameter by its tag name.
func (field Field) Get(name string) float64 {
	rtype := reflect.TypeFor[Field]()
	for i := range rtype.NumField() {
		if rtype.Field(i).Tag.Get("gd") != name {
			continue
		}
		rvalue := reflect.ValueOf(field).Field(i)
		if rtype.Field(i).Type.Kind() == reflect.Int {
			return float64(rvalue.Int())
		}
		return rvalue.Float()
	}
	return 0
}

// Set assigns the named parameter by its tag name, clamped into the
// tagged range.
func (field *Field) Set(name string, value float64) {
	rtype := reflect.TypeFor[Field]()
	for i := range rtype.NumField() {
		if rtype.Field(i).Tag.Get("gd") != name {
			continue
		}
		_, from, upto, _ := SliderConfig(name)
		value = math.Min(math.Max(value, from), upto)
		rvalue := reflect.ValueOf(field).Elem().Field(i)
		if rtype.Field(i).Type.Kind() == reflect.Int {
			rvalue.SetInt(int64(value))
		} else {
			rvalue.SetFloat(value)
		}
		return
	}
}

// Particle returns the position and color of particle i, drawing the
// scatter detail from the given random source. The spiral itself is
// deterministic: particle i belongs to branch i mod Branches, twisted
// by Spin radians per unit of radial distance. Color depends only on
// radial distance, blending InsideColor out to OutsideColor.
func (field Field) Particle(i int, random func() float64) (position [3]float64, color colorful.Color) {
	var (
		r      = random() * field.Radius
		spin   = r * field.Spin
		branch = float64(i%field.Branches) / float64(field.Branches) * 2 * math.Pi
	)
	scatter := func() float64 {
		offset := math.Pow(random(), field.RandomnessPower) * field.Randomness
		if random() < 0.5 {
			return -offset
		}
		return offset
	}
	position[0] = math.Cos(branch+spin)*r + scatter()
	position[1] = scatter()
	position[2] = math.Sin(branch+spin)*r + scatter()
	return position, field.InsideColor.BlendRgb(field.OutsideColor, r/field.Radius)
}

// Buffers samples every particle into flat position and color buffers of
// length 3×Count, laid out xyz/rgb per particle, ready to be packed into
// vertex arrays. The random source is seeded from Seed, so equal fields
// always produce equal buffers.
func (field Field) Buffers() (positions, colors []float32) {
	random := rand.New(rand.NewSource(int64(field.Seed))).Float64
	positions = make([]float32, 3*field.Count)
	colors = make([]float32, 3*field.Count)
	for i := range field.Count {
		position, color := field.Particle(i, random)
		positions[3*i+0] = float32(position[0])
		positions[3*i+1] = float32(position[1])
		positions[3*i+2] = float32(position[2])
		colors[3*i+0] = float32(color.R)
		colors[3*i+1] = float32(color.G)
		colors[3*i+2] = float32(color.B)
	}
	return positions, colors
}
