//go:build windows

package supervisor

import (
	"fmt"

	"golang.org/x/sys/windows"
)

type sysProcess struct {
	handle windows.Handle
	err    error
}

func (s *sysProcess) attach(pid int) {
	h, err := windows.OpenProcess(windows.SYNCHRONIZE|windows.PROCESS_QUERY_LIMITED_INFORMATION, false, uint32(pid))
	if err != nil {
		s.err = fmt.Errorf("OpenProcess: %w", err)
		return
	}
	s.handle = h
}

func (s *sysProcess) poll(pid int) (Status, error) {
	if s.handle == 0 {
		if s.err != nil {
			return Status{}, s.err
		}
		return Status{}, fmt.Errorf("no handle for pid %d", pid)
	}

	event, err := windows.WaitForSingleObject(s.handle, 0)
	if err != nil {
		return Status{}, fmt.Errorf("WaitForSingleObject: %w", err)
	}
	switch event {
	case uint32(windows.WAIT_TIMEOUT):
		return Status{State: StateRunning}, nil
	case windows.WAIT_OBJECT_0:
		var code uint32
		if err := windows.GetExitCodeProcess(s.handle, &code); err != nil {
			return Status{}, fmt.Errorf("GetExitCodeProcess: %w", err)
		}
		return Status{State: StateExited, Code: int(code)}, nil
	default:
		return Status{}, fmt.Errorf("WaitForSingleObject: unexpected result %#x", event)
	}
}

func (s *sysProcess) release() error {
	if s.handle == 0 {
		return nil
	}
	err := windows.CloseHandle(s.handle)
	s.handle = 0
	return err
}
