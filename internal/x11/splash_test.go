package x11

import (
	"os"
	"testing"

	"github.com/1broseidon/splash/internal/render"
)

func openDisplayOrSkip(t *testing.T) *Connection {
	t.Helper()
	if os.Getenv("DISPLAY") == "" {
		t.Skip("DISPLAY not set")
	}
	conn, err := NewConnection("")
	if err != nil {
		t.Skipf("cannot connect to X server: %v", err)
	}
	t.Cleanup(conn.Close)
	return conn
}

func TestSplashWindowLifecycle(t *testing.T) {
	conn := openDisplayOrSkip(t)

	scene, err := render.SceneByName("rocket", "Launching your game")
	if err != nil {
		t.Fatalf("scene: %v", err)
	}
	win, err := NewSplashWindow(conn, SplashOptions{Title: "Loading...", Renderer: render.NewRenderer(scene)})
	if err != nil {
		t.Fatalf("create splash window: %v", err)
	}

	if b := win.Bounds(); b.Dx() <= 0 || b.Dy() <= 0 {
		t.Fatalf("unexpected bounds %v", b)
	}
	for i := 0; i < 3; i++ {
		if !win.ProcessPendingMessages() {
			t.Fatalf("window quit unexpectedly")
		}
		win.RequestRedraw()
	}
	if win.Frame() != 3 {
		t.Fatalf("expected frame 3, got %d", win.Frame())
	}

	if err := win.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := win.Close(); err != nil {
		t.Fatalf("second close: %v", err)
	}
	if win.ProcessPendingMessages() {
		t.Fatalf("closed window still reports running")
	}
	win.RequestRedraw()
	if win.Frame() != 3 {
		t.Fatalf("redraw after close advanced the frame")
	}
}

func TestNewSplashWindowRequiresConnection(t *testing.T) {
	if _, err := NewSplashWindow(&Connection{}, SplashOptions{}); err == nil {
		t.Fatalf("expected error for missing connection")
	}
}
