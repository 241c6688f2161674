package render

import (
	"image"
	"image/color"
	"math"
)

const (
	rocketWidth   = 30
	rocketHeight  = 80
	noseHeight    = 30
	finWidth      = 15
	finHeight     = 20
	portholeSize  = 12
	portholeRise  = 10 // porthole centre above the scene centre
	outlineWidth  = 2
	captionOffset = 50 // caption top below the body bottom

	flameWidthBase  = 20
	flameHeightBase = 25
	flamePhases     = 4
	flameFrames     = 5 // frames per flame phase

	motionLineCount     = 12
	motionLineMaxLength = 25
	motionLineStart     = rocketWidth*3/4 + 10
	motionLinePeriod    = 15
	motionLineRise      = 10 // frames spent growing; the rest shrinking
	motionLineStagger   = 5  // frame offset between neighbouring lines
)

var (
	colorRocketBody = color.RGBA{R: 0xcc, G: 0xcc, B: 0xcc, A: 0xff}
	colorFlameHot   = color.RGBA{R: 0xff, G: 0x66, B: 0x00, A: 0xff}
	colorFlameCool  = color.RGBA{R: 0x00, G: 0x66, B: 0xff, A: 0xff}
)

// Rocket draws a hovering rocket with an animated flame and motion lines.
type Rocket struct {
	Caption string
}

var _ Scene = (*Rocket)(nil)

// NewRocket returns the rocket scene.
func NewRocket(caption string) *Rocket {
	return &Rocket{Caption: caption}
}

func (r *Rocket) Name() string { return "rocket" }

// Bob returns the vertical hover offset for frame.
func Bob(frame int) int {
	return int(math.Round(math.Sin(float64(frame)*0.1))) * 2
}

// FlamePhase returns the flame size step for frame, cycling 0..3 every 20
// frames.
func FlamePhase(frame int) int {
	return mod(frame/flameFrames, flamePhases)
}

// motionLineLength returns the length of line i at frame: a sawtooth that
// grows for 10 frames and shrinks for 5.
func motionLineLength(frame, i int) int {
	phase := mod(frame+i*motionLineStagger, motionLinePeriod)
	if phase < motionLineRise {
		return motionLineMaxLength * phase / motionLineRise
	}
	return motionLineMaxLength * (motionLinePeriod - phase) / (motionLinePeriod - motionLineRise)
}

// motionLineAngle returns the direction of line i and whether it falls in the
// bottom arc that is drawn.
func motionLineAngle(i int) (float64, bool) {
	angle := float64(i)*2*math.Pi/motionLineCount + math.Pi/4
	return angle, angle > math.Pi/6 && angle < 11*math.Pi/6
}

type segment struct {
	From, To image.Point
}

func motionLines(center image.Point, frame int) []segment {
	lines := make([]segment, 0, motionLineCount)
	for i := 0; i < motionLineCount; i++ {
		angle, visible := motionLineAngle(i)
		if !visible {
			continue
		}
		length := float64(motionLineLength(frame, i))
		cos, sin := math.Cos(angle), math.Sin(angle)
		start := image.Point{
			X: center.X + int(motionLineStart*cos),
			Y: center.Y + int(motionLineStart*sin),
		}
		end := image.Point{
			X: start.X + int(length*cos),
			Y: start.Y + int(length*sin),
		}
		lines = append(lines, segment{From: start, To: end})
	}
	return lines
}

func (r *Rocket) Draw(c *Canvas, frame int, center image.Point) {
	pen := Pen{Color: ColorOutline, Width: outlineWidth}
	offset := Bob(frame)

	bodyTop := center.Y - rocketHeight/2 + noseHeight/2 + offset
	bodyBottom := center.Y + rocketHeight/2 + offset
	bodyLeft := center.X - rocketWidth/2
	bodyRight := center.X + rocketWidth/2

	c.Rectangle(image.Rect(bodyLeft, bodyTop, bodyRight, bodyBottom), colorRocketBody, pen)

	c.Polygon([]image.Point{
		{X: center.X, Y: bodyTop - noseHeight},
		{X: bodyRight, Y: bodyTop},
		{X: bodyLeft, Y: bodyTop},
	}, colorRocketBody, pen)

	c.Polygon([]image.Point{
		{X: bodyLeft, Y: bodyBottom - finHeight},
		{X: bodyLeft - finWidth, Y: bodyBottom},
		{X: bodyLeft, Y: bodyBottom},
	}, colorRocketBody, pen)
	c.Polygon([]image.Point{
		{X: bodyRight, Y: bodyBottom - finHeight},
		{X: bodyRight + finWidth, Y: bodyBottom},
		{X: bodyRight, Y: bodyBottom},
	}, colorRocketBody, pen)

	portholeY := center.Y - portholeRise + offset
	c.Ellipse(image.Rect(
		center.X-portholeSize/2, portholeY-portholeSize/2,
		center.X+portholeSize/2, portholeY+portholeSize/2,
	), colorRocketBody, pen)

	phase := FlamePhase(frame)
	flameWidth := flameWidthBase + phase*2
	flameHeight := flameHeightBase + phase*3
	flameColor := colorFlameHot
	if phase%2 != 0 {
		flameColor = colorFlameCool
	}
	c.Polygon([]image.Point{
		{X: center.X - flameWidth/2, Y: bodyBottom},
		{X: center.X, Y: bodyBottom + flameHeight},
		{X: center.X + flameWidth/2, Y: bodyBottom},
	}, flameColor, pen)

	for _, line := range motionLines(center, frame) {
		c.Line(line.From, line.To, pen)
	}

	if r.Caption != "" {
		size := c.TextSize(r.Caption)
		c.Text(image.Point{
			X: center.X - size.X/2,
			Y: center.Y + rocketHeight/2 + captionOffset + offset,
		}, r.Caption, ColorCaption)
	}
}

func (r *Rocket) Extent(center image.Point) image.Rectangle {
	const bob = 2
	reach := motionLineStart + motionLineMaxLength + outlineWidth
	top := center.Y - rocketHeight/2 + noseHeight/2 - noseHeight - bob - outlineWidth
	bottom := center.Y + rocketHeight/2 + flameHeightBase + (flamePhases-1)*3 + bob + outlineWidth
	box := image.Rect(center.X-reach, min(top, center.Y-reach), center.X+reach+1, max(bottom, center.Y+reach+1))

	if r.Caption != "" {
		size := textSize(basicFace(), r.Caption)
		captionTop := center.Y + rocketHeight/2 + captionOffset - bob
		box = box.Union(image.Rect(
			center.X-size.X/2-1, captionTop-1,
			center.X+size.X/2+size.X%2+1, captionTop+size.Y+bob*2+1,
		))
	}
	return box
}
