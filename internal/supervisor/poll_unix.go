//go:build unix

package supervisor

import (
	"golang.org/x/sys/unix"
)

type sysProcess struct{}

func (s *sysProcess) attach(pid int) {}

func (s *sysProcess) poll(pid int) (Status, error) {
	var ws unix.WaitStatus
	for {
		wpid, err := unix.Wait4(pid, &ws, unix.WNOHANG, nil)
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			return Status{}, err
		}
		if wpid == 0 {
			return Status{State: StateRunning}, nil
		}
		return statusFromWait(ws), nil
	}
}

func (s *sysProcess) release() error {
	return nil
}

func statusFromWait(ws unix.WaitStatus) Status {
	if ws.Signaled() {
		return Status{State: StateExited, Code: -1, Signal: ws.Signal().String()}
	}
	return Status{State: StateExited, Code: ws.ExitStatus()}
}
