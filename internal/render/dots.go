package render

import (
	"image"
	"image/color"
	"math"
)

const (
	dotCount           = 8
	dotRingRadius      = 50
	dotRadius          = 5
	dotHighlightRadius = 9
	dotHighlightFrames = 10 // frames each dot stays highlighted
	dotAngularSpeed    = 0.05
	dotCaptionOffset   = 30 // caption top below the ring
)

var (
	colorDot          = color.RGBA{R: 0x99, G: 0x88, B: 0xbb, A: 0xff}
	colorDotHighlight = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
)

// Dots draws a rotating ring of dots with one chasing highlight.
type Dots struct {
	Caption string
}

var _ Scene = (*Dots)(nil)

// NewDots returns the dots scene.
func NewDots(caption string) *Dots {
	return &Dots{Caption: caption}
}

func (d *Dots) Name() string { return "dots" }

// HighlightIndex returns the dot drawn larger at frame, cycling 0..7 every
// 80 frames.
func HighlightIndex(frame int) int {
	return mod(frame/dotHighlightFrames, dotCount)
}

func dotCenter(center image.Point, frame, i int) image.Point {
	angle := float64(frame)*dotAngularSpeed + float64(i)*2*math.Pi/dotCount
	return image.Point{
		X: center.X + int(math.Round(dotRingRadius*math.Cos(angle))),
		Y: center.Y + int(math.Round(dotRingRadius*math.Sin(angle))),
	}
}

func (d *Dots) Draw(c *Canvas, frame int, center image.Point) {
	highlight := HighlightIndex(frame)
	for i := 0; i < dotCount; i++ {
		p := dotCenter(center, frame, i)
		radius, col := dotRadius, colorDot
		if i == highlight {
			radius, col = dotHighlightRadius, colorDotHighlight
		}
		c.Ellipse(image.Rect(p.X-radius, p.Y-radius, p.X+radius, p.Y+radius), col, Pen{})
	}

	if d.Caption != "" {
		size := c.TextSize(d.Caption)
		c.Text(image.Point{
			X: center.X - size.X/2,
			Y: center.Y + dotRingRadius + dotCaptionOffset,
		}, d.Caption, ColorCaption)
	}
}

func (d *Dots) Extent(center image.Point) image.Rectangle {
	reach := dotRingRadius + dotHighlightRadius + 2
	box := image.Rect(center.X-reach, center.Y-reach, center.X+reach+1, center.Y+reach+1)
	if d.Caption != "" {
		size := textSize(basicFace(), d.Caption)
		top := center.Y + dotRingRadius + dotCaptionOffset
		box = box.Union(image.Rect(
			center.X-size.X/2-1, top-1,
			center.X+size.X/2+size.X%2+1, top+size.Y+1,
		))
	}
	return box
}
