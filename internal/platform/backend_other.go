//go:build !linux && !windows

package platform

import (
	"fmt"
	"runtime"
)

func newSplashWindow(Options) (SplashWindow, error) {
	return nil, &CreationError{
		Op:  "select backend",
		Err: fmt.Errorf("no splash backend for %s", runtime.GOOS),
	}
}
