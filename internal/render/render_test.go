package render

import (
	"bytes"
	"image"
	"image/color"
	"strings"
	"testing"
)

func TestRenderIsDeterministicPerFrame(t *testing.T) {
	for _, name := range SceneNames() {
		scene, err := SceneByName(name, "Launching your game")
		if err != nil {
			t.Fatalf("scene %q: %v", name, err)
		}
		r := NewRenderer(scene)
		for _, frame := range []int{0, 1, 7, 19, 20, 79, 1234} {
			a := NewBuffer(320, 240)
			b := NewBuffer(320, 240)
			r.Render(a, frame)
			r.Render(b, frame)
			if !bytes.Equal(a.Pix, b.Pix) {
				t.Fatalf("%s frame %d: repeated render differs", name, frame)
			}
		}
	}
}

func TestRenderReusedBufferMatchesFreshBuffer(t *testing.T) {
	r := NewRenderer(NewRocket("hello"))
	reused := NewBuffer(320, 240)
	r.Render(reused, 3)
	r.Render(reused, 11)

	fresh := NewBuffer(320, 240)
	r.Render(fresh, 11)
	if !bytes.Equal(reused.Pix, fresh.Pix) {
		t.Fatalf("rendering into a dirty buffer left stale pixels")
	}
}

func TestRenderAnimates(t *testing.T) {
	for _, name := range SceneNames() {
		scene, _ := SceneByName(name, "")
		r := NewRenderer(scene)
		a := NewBuffer(320, 240)
		b := NewBuffer(320, 240)
		r.Render(a, 0)
		r.Render(b, 10)
		if bytes.Equal(a.Pix, b.Pix) {
			t.Fatalf("%s: frames 0 and 10 rendered identically", name)
		}
	}
}

func TestRenderFillsBackgroundAndDrawsAtCenter(t *testing.T) {
	bg := color.RGBA{R: 0x10, G: 0x20, B: 0x30, A: 0xff}
	r := NewRenderer(NewRocket(""), WithBackground(bg))
	dst := NewBuffer(400, 300)
	r.Render(dst, 0)

	if got := dst.RGBAAt(0, 0); got != bg {
		t.Fatalf("corner pixel: got %+v want %+v", got, bg)
	}
	// The rocket body is filled grey around the centre.
	if got := dst.RGBAAt(200, 150+20); got != colorRocketBody {
		t.Fatalf("body pixel: got %+v want %+v", got, colorRocketBody)
	}
}

func TestDamageCoversEveryDrawnPixel(t *testing.T) {
	for _, name := range SceneNames() {
		scene, _ := SceneByName(name, "Launching your game")
		r := NewRenderer(scene)
		dst := NewBuffer(480, 360)
		damage := r.Damage(dst.Bounds())
		if damage.Empty() {
			t.Fatalf("%s: empty damage rect", name)
		}
		for frame := 0; frame < 80; frame++ {
			r.Render(dst, frame)
			b := dst.Bounds()
			for y := b.Min.Y; y < b.Max.Y; y++ {
				for x := b.Min.X; x < b.Max.X; x++ {
					if dst.RGBAAt(x, y) == r.Background() {
						continue
					}
					if !(image.Point{X: x, Y: y}).In(damage) {
						t.Fatalf("%s frame %d: pixel (%d,%d) drawn outside damage %v", name, frame, x, y, damage)
					}
				}
			}
		}
	}
}

func TestRenderClipsToSmallBuffers(t *testing.T) {
	r := NewRenderer(NewRocket("a caption wider than the buffer"))
	for _, size := range []image.Point{{X: 0, Y: 0}, {X: 1, Y: 1}, {X: 20, Y: 10}} {
		dst := NewBuffer(size.X, size.Y)
		r.Render(dst, 5)
	}
}

func TestRenderNilBufferPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for nil buffer")
		}
	}()
	NewRenderer(NewDots("")).Render(nil, 0)
}

func TestSceneByName(t *testing.T) {
	scene, err := SceneByName("dots", "x")
	if err != nil {
		t.Fatalf("dots: %v", err)
	}
	if scene.Name() != "dots" {
		t.Fatalf("expected dots, got %q", scene.Name())
	}
	if _, err := SceneByName("comet", ""); err == nil || !strings.Contains(err.Error(), "rocket") {
		t.Fatalf("expected unknown scene error listing names, got %v", err)
	}
	if got := strings.Join(SceneNames(), ","); got != "dots,rocket" {
		t.Fatalf("unexpected scene names %q", got)
	}
}

func TestMod(t *testing.T) {
	tests := []struct{ a, n, want int }{
		{0, 4, 0}, {5, 4, 1}, {-1, 4, 3}, {-8, 8, 0},
	}
	for _, tt := range tests {
		if got := mod(tt.a, tt.n); got != tt.want {
			t.Fatalf("mod(%d,%d) = %d, want %d", tt.a, tt.n, got, tt.want)
		}
	}
}
