//go:build linux

package platform

import (
	"github.com/1broseidon/splash/internal/x11"
)

// linuxSplash owns the X11 connection for the lifetime of the window.
type linuxSplash struct {
	*x11.SplashWindow
	conn *x11.Connection
}

var _ SplashWindow = (*linuxSplash)(nil)

func newSplashWindow(opts Options) (SplashWindow, error) {
	conn, err := x11.NewConnection(opts.Display)
	if err != nil {
		return nil, &CreationError{Op: "connect to X server", Err: err}
	}

	win, err := x11.NewSplashWindow(conn, x11.SplashOptions{
		Title:    opts.Title,
		Renderer: opts.Renderer,
		Logger:   opts.Logger,
	})
	if err != nil {
		conn.Close()
		return nil, &CreationError{Op: "create window", Err: err}
	}
	return &linuxSplash{SplashWindow: win, conn: conn}, nil
}

// Close destroys the window and disconnects from the X server.
func (s *linuxSplash) Close() error {
	if s == nil || s.conn == nil {
		return nil
	}
	err := s.SplashWindow.Close()
	s.conn.Close()
	s.conn = nil
	return err
}
