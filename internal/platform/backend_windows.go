//go:build windows

package platform

import (
	"github.com/1broseidon/splash/internal/win32"
)

var _ SplashWindow = (*win32.SplashWindow)(nil)

func newSplashWindow(opts Options) (SplashWindow, error) {
	win, err := win32.NewSplashWindow(win32.SplashOptions{
		Title:    opts.Title,
		Renderer: opts.Renderer,
		Logger:   opts.Logger,
	})
	if err != nil {
		return nil, &CreationError{Op: "create window", Err: err}
	}
	return win, nil
}
