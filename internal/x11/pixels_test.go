package x11

import (
	"image"
	"image/color"
	"testing"
)

func TestRowsPerRequest(t *testing.T) {
	tests := []struct {
		width, maxReq, want int
	}{
		{1920, 1 << 18, (1<<18 - 28) / (1920 * 4)},
		{100, 428, 1},
		{100, 10, 1},
		{0, 1 << 18, 1},
		{1, 1 << 18, (1<<18 - 28) / 4},
	}
	for _, tt := range tests {
		if got := rowsPerRequest(tt.width, tt.maxReq); got != tt.want {
			t.Fatalf("rowsPerRequest(%d, %d) = %d, want %d", tt.width, tt.maxReq, got, tt.want)
		}
	}
}

func TestRowsPerRequestFitsBudget(t *testing.T) {
	for _, width := range []int{1, 640, 1366, 1920, 3840, 7680} {
		rows := rowsPerRequest(width, maxRequestBytes())
		if size := putImageHeader + rows*width*4; size > maxRequestBytes() {
			t.Fatalf("width %d: %d rows need %d bytes, budget %d", width, rows, size, maxRequestBytes())
		}
	}
}

func TestToZPixmapSwapsChannels(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 3, 2))
	src.SetRGBA(1, 0, color.RGBA{R: 0x11, G: 0x22, B: 0x33, A: 0xff})
	src.SetRGBA(2, 1, color.RGBA{R: 0xaa, G: 0xbb, B: 0xcc, A: 0xff})

	got := toZPixmap(nil, src, image.Rect(1, 0, 3, 2))
	want := []byte{
		0x33, 0x22, 0x11, 0xff, 0x00, 0x00, 0x00, 0xff,
		0x00, 0x00, 0x00, 0xff, 0xcc, 0xbb, 0xaa, 0xff,
	}
	if string(got) != string(want) {
		t.Fatalf("toZPixmap = % x, want % x", got, want)
	}
}

func TestToZPixmapReusesAndClips(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 4, 4))
	scratch := make([]byte, 0, 64)

	got := toZPixmap(scratch, src, image.Rect(2, 2, 10, 10))
	if len(got) != 2*2*4 {
		t.Fatalf("expected clipped 2x2 region, got %d bytes", len(got))
	}
	if &got[0] != &scratch[:1][0] {
		t.Fatalf("expected scratch buffer to be reused")
	}

	if got := toZPixmap(nil, src, image.Rect(5, 5, 6, 6)); len(got) != 0 {
		t.Fatalf("expected empty result outside the image, got %d bytes", len(got))
	}
}

func TestPackRGB(t *testing.T) {
	if got := packRGB(0x33, 0x11, 0x22); got != 0x331122 {
		t.Fatalf("packRGB = %#x", got)
	}
}

func TestPickPrimary(t *testing.T) {
	fallback := Monitor{Name: "root", Width: 800, Height: 600}
	left := Monitor{ID: 0, Name: "DP-1", Width: 1920, Height: 1080}
	right := Monitor{ID: 1, Name: "HDMI-1", X: 1920, Width: 2560, Height: 1440, Primary: true}

	if got := pickPrimary([]Monitor{left, right}, fallback); got.Name != "HDMI-1" {
		t.Fatalf("expected primary output, got %+v", got)
	}
	right.Primary = false
	if got := pickPrimary([]Monitor{left, right}, fallback); got.Name != "DP-1" {
		t.Fatalf("expected first monitor without a primary, got %+v", got)
	}
	if got := pickPrimary(nil, fallback); got != fallback {
		t.Fatalf("expected root fallback, got %+v", got)
	}
}
