// Package render draws the splash animation into an off-screen RGBA buffer.
//
// Rendering is a pure function of the frame number: drawing the same frame
// into buffers of the same size always yields identical pixels. Window
// backends own the buffer and copy it to the screen after Render returns.
package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"sort"
)

// Colours shared by the scenes.
var (
	ColorBackground = color.RGBA{R: 0x33, G: 0x11, B: 0x22, A: 0xff}
	ColorOutline    = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	ColorCaption    = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
)

// Scene is one animation variant.
type Scene interface {
	// Name is the identifier used by configuration and flags.
	Name() string
	// Draw renders the scene for frame around center.
	Draw(c *Canvas, frame int, center image.Point)
	// Extent is the largest area Draw can touch for any frame.
	Extent(center image.Point) image.Rectangle
}

// SceneFactory builds a scene with the given caption.
type SceneFactory func(caption string) Scene

var scenes = map[string]SceneFactory{
	"rocket": func(caption string) Scene { return NewRocket(caption) },
	"dots":   func(caption string) Scene { return NewDots(caption) },
}

// SceneNames lists the registered scene names in sorted order.
func SceneNames() []string {
	names := make([]string, 0, len(scenes))
	for name := range scenes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SceneByName returns the named scene with the given caption.
func SceneByName(name, caption string) (Scene, error) {
	factory, ok := scenes[name]
	if !ok {
		return nil, fmt.Errorf("unknown scene %q (available: %v)", name, SceneNames())
	}
	return factory(caption), nil
}

// Renderer fills the buffer with the background colour and draws a scene
// centred in it.
type Renderer struct {
	scene      Scene
	background color.RGBA
}

// Option customises a Renderer.
type Option func(*Renderer)

// WithBackground sets the fill colour drawn behind the scene.
func WithBackground(c color.RGBA) Option {
	return func(r *Renderer) {
		r.background = c
	}
}

// NewRenderer returns a renderer for scene.
func NewRenderer(scene Scene, opts ...Option) *Renderer {
	r := &Renderer{
		scene:      scene,
		background: ColorBackground,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Scene returns the scene being drawn.
func (r *Renderer) Scene() Scene {
	return r.scene
}

// Background returns the fill colour.
func (r *Renderer) Background() color.RGBA {
	return r.background
}

// Render draws frame into dst. It panics if dst is nil, since a backend
// without a buffer has nothing to show.
func (r *Renderer) Render(dst *image.RGBA, frame int) {
	if dst == nil {
		panic("render: nil destination buffer")
	}
	draw.Draw(dst, dst.Bounds(), &image.Uniform{C: r.background}, image.Point{}, draw.Src)
	r.scene.Draw(NewCanvas(dst), frame, Center(dst.Bounds()))
}

// Damage returns the part of bounds that can differ between two frames. Pixels
// outside it always hold the background colour.
func (r *Renderer) Damage(bounds image.Rectangle) image.Rectangle {
	return r.scene.Extent(Center(bounds)).Intersect(bounds)
}

// Center returns the centre point of b.
func Center(b image.Rectangle) image.Point {
	return image.Point{X: b.Min.X + b.Dx()/2, Y: b.Min.Y + b.Dy()/2}
}

// NewBuffer allocates an off-screen buffer of the given size. Non-positive
// sizes yield an empty buffer.
func NewBuffer(width, height int) *image.RGBA {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return image.NewRGBA(image.Rect(0, 0, width, height))
}

// mod returns a modulo n in [0, n).
func mod(a, n int) int {
	m := a % n
	if m < 0 {
		m += n
	}
	return m
}
