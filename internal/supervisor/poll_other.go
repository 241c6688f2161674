//go:build !unix && !windows

package supervisor

import (
	"errors"
)

type sysProcess struct{}

func (s *sysProcess) attach(pid int) {}

func (s *sysProcess) poll(pid int) (Status, error) {
	return Status{}, errors.New("process polling is not supported on this platform")
}

func (s *sysProcess) release() error {
	return nil
}
