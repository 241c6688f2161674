package render

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

// ellipseSegments is the number of edges used to approximate an ellipse.
const ellipseSegments = 48

// Pen describes an outline. A zero Width draws no outline.
type Pen struct {
	Color color.RGBA
	Width float32
}

type point struct {
	X, Y float32
}

// Canvas draws filled and outlined primitives into an RGBA buffer. All
// coordinates are in the buffer's pixel space.
type Canvas struct {
	dst  *image.RGBA
	z    vector.Rasterizer
	face font.Face
}

// NewCanvas wraps dst for drawing.
func NewCanvas(dst *image.RGBA) *Canvas {
	return &Canvas{dst: dst, face: basicFace()}
}

func basicFace() font.Face {
	return basicfont.Face7x13
}

// Bounds returns the drawable area.
func (c *Canvas) Bounds() image.Rectangle {
	return c.dst.Bounds()
}

// Fill paints the whole buffer with col.
func (c *Canvas) Fill(col color.RGBA) {
	c.FillRect(c.dst.Bounds(), col)
}

// FillRect paints r with col, replacing what was there.
func (c *Canvas) FillRect(r image.Rectangle, col color.RGBA) {
	draw.Draw(c.dst, r.Intersect(c.dst.Bounds()), &image.Uniform{C: col}, image.Point{}, draw.Src)
}

// Rectangle fills the rectangle spanned by r and outlines it with pen.
func (c *Canvas) Rectangle(r image.Rectangle, fill color.RGBA, pen Pen) {
	c.Polygon([]image.Point{
		{X: r.Min.X, Y: r.Min.Y},
		{X: r.Max.X, Y: r.Min.Y},
		{X: r.Max.X, Y: r.Max.Y},
		{X: r.Min.X, Y: r.Max.Y},
	}, fill, pen)
}

// Polygon fills the closed polygon through pts and outlines it with pen.
func (c *Canvas) Polygon(pts []image.Point, fill color.RGBA, pen Pen) {
	if len(pts) < 3 {
		return
	}
	path := make([]point, len(pts))
	for i, p := range pts {
		path[i] = point{X: float32(p.X), Y: float32(p.Y)}
	}
	c.fillPath(path, fill)
	c.strokePath(path, pen)
}

// Ellipse fills the ellipse inscribed in r and outlines it with pen.
func (c *Canvas) Ellipse(r image.Rectangle, fill color.RGBA, pen Pen) {
	if r.Dx() <= 0 || r.Dy() <= 0 {
		return
	}
	cx := float64(r.Min.X+r.Max.X) / 2
	cy := float64(r.Min.Y+r.Max.Y) / 2
	rx := float64(r.Dx()) / 2
	ry := float64(r.Dy()) / 2

	path := make([]point, ellipseSegments)
	for i := range path {
		a := 2 * math.Pi * float64(i) / ellipseSegments
		path[i] = point{
			X: float32(cx + rx*math.Cos(a)),
			Y: float32(cy + ry*math.Sin(a)),
		}
	}
	c.fillPath(path, fill)
	c.strokePath(path, pen)
}

// Line draws a straight segment from a to b.
func (c *Canvas) Line(a, b image.Point, pen Pen) {
	c.strokeSegment(
		point{X: float32(a.X), Y: float32(a.Y)},
		point{X: float32(b.X), Y: float32(b.Y)},
		pen,
	)
}

// Text draws s with its top-left corner at p.
func (c *Canvas) Text(p image.Point, s string, col color.RGBA) {
	d := font.Drawer{
		Dst:  c.dst,
		Src:  &image.Uniform{C: col},
		Face: c.face,
		Dot:  fixed.P(p.X, p.Y+c.face.Metrics().Ascent.Ceil()),
	}
	d.DrawString(s)
}

// TextSize returns the pixel size of s as drawn by Text.
func (c *Canvas) TextSize(s string) image.Point {
	return textSize(c.face, s)
}

func textSize(face font.Face, s string) image.Point {
	m := face.Metrics()
	return image.Point{
		X: font.MeasureString(face, s).Ceil(),
		Y: (m.Ascent + m.Descent).Ceil(),
	}
}

func (c *Canvas) strokePath(path []point, pen Pen) {
	if pen.Width <= 0 {
		return
	}
	for i := range path {
		c.strokeSegment(path[i], path[(i+1)%len(path)], pen)
	}
}

// strokeSegment fills the quad of width pen.Width around a-b, extended by
// half the width at both ends so adjacent segments join without notches.
func (c *Canvas) strokeSegment(a, b point, pen Pen) {
	if pen.Width <= 0 {
		return
	}
	dx, dy := b.X-a.X, b.Y-a.Y
	length := float32(math.Hypot(float64(dx), float64(dy)))
	if length == 0 {
		return
	}
	half := pen.Width / 2
	ux, uy := dx/length*half, dy/length*half
	nx, ny := -uy, ux

	a = point{X: a.X - ux, Y: a.Y - uy}
	b = point{X: b.X + ux, Y: b.Y + uy}
	c.fillPath([]point{
		{X: a.X + nx, Y: a.Y + ny},
		{X: b.X + nx, Y: b.Y + ny},
		{X: b.X - nx, Y: b.Y - ny},
		{X: a.X - nx, Y: a.Y - ny},
	}, pen.Color)
}

// fillPath rasterizes the closed path with non-zero winding, restricted to
// the path's bounding box so the rasterizer never spans the whole buffer.
func (c *Canvas) fillPath(path []point, col color.RGBA) {
	if col.A == 0 || len(path) < 3 {
		return
	}
	box := pathBounds(path).Intersect(c.dst.Bounds())
	if box.Empty() {
		return
	}

	ox, oy := float32(box.Min.X), float32(box.Min.Y)
	c.z.Reset(box.Dx(), box.Dy())
	c.z.DrawOp = draw.Over
	c.z.MoveTo(path[0].X-ox, path[0].Y-oy)
	for _, p := range path[1:] {
		c.z.LineTo(p.X-ox, p.Y-oy)
	}
	c.z.ClosePath()
	c.z.Draw(c.dst, box, &image.Uniform{C: col}, image.Point{})
}

func pathBounds(path []point) image.Rectangle {
	minX, minY := path[0].X, path[0].Y
	maxX, maxY := minX, minY
	for _, p := range path[1:] {
		minX = min(minX, p.X)
		minY = min(minY, p.Y)
		maxX = max(maxX, p.X)
		maxY = max(maxY, p.Y)
	}
	return image.Rect(
		int(math.Floor(float64(minX)))-1,
		int(math.Floor(float64(minY)))-1,
		int(math.Ceil(float64(maxX)))+1,
		int(math.Ceil(float64(maxY)))+1,
	)
}
