// Package platform selects the window-system backend that shows the splash.
package platform

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/1broseidon/splash/internal/render"
)

// DefaultTitle is the window title used when Options.Title is empty.
const DefaultTitle = "Loading..."

// SplashWindow is a full-screen, borderless, topmost window showing the
// splash animation.
type SplashWindow interface {
	// ProcessPendingMessages handles every queued window-system event without
	// blocking. It returns false once a quit has been requested.
	ProcessPendingMessages() bool
	// RequestRedraw advances the animation by one frame and repaints.
	RequestRedraw()
	// Frame returns the number of the frame currently on screen.
	Frame() int
	// Close destroys the window. Calling it again is a no-op.
	Close() error
}

// Options configures NewSplashWindow.
type Options struct {
	Title    string
	Renderer *render.Renderer
	// Display names the X server to use. Ignored on Windows.
	Display string
	Logger  *slog.Logger
}

// CreationError reports a failure to set up the splash window. Op names the
// step that failed.
type CreationError struct {
	Op  string
	Err error
}

func (e *CreationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("failed to create splash window: %s: %v", e.Op, e.Err)
}

func (e *CreationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// NewSplashWindow creates and shows the splash window with the first frame
// already painted.
func NewSplashWindow(opts Options) (SplashWindow, error) {
	if opts.Renderer == nil {
		return nil, &CreationError{Op: "configure", Err: errors.New("renderer is required")}
	}
	if opts.Title == "" {
		opts.Title = DefaultTitle
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return newSplashWindow(opts)
}
