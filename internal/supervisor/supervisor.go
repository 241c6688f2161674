// Package supervisor launches the target program and polls it without
// blocking. The child's lifecycle is its own: it is never killed or waited on
// to completion here.
package supervisor

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"time"
)

// State is the coarse liveness of a child process.
type State int

const (
	StateRunning State = iota
	StateExited
)

// Status is the result of a liveness poll.
type Status struct {
	State State
	// Code is the exit code once the child has exited normally, or -1 when it
	// was terminated by a signal.
	Code int
	// Signal names the terminating signal, if any.
	Signal string
}

// Running reports whether the child had not exited at poll time.
func (s Status) Running() bool {
	return s.State == StateRunning
}

// Exited reports whether the child had exited at poll time.
func (s Status) Exited() bool {
	return s.State == StateExited
}

func (s Status) String() string {
	switch {
	case s.Running():
		return "running"
	case s.Signal != "":
		return "signal: " + s.Signal
	default:
		return fmt.Sprintf("exit status %d", s.Code)
	}
}

// LaunchError reports that the target could not be started.
type LaunchError struct {
	Path string
	Err  error
}

func (e *LaunchError) Error() string {
	return fmt.Sprintf("failed to launch %s: %v", e.Path, e.Err)
}

func (e *LaunchError) Unwrap() error {
	return e.Err
}

// StatusError reports that the child's status could not be determined.
type StatusError struct {
	PID int
	Err error
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("status of pid %d: %v", e.PID, e.Err)
}

func (e *StatusError) Unwrap() error {
	return e.Err
}

// Process is a spawned child.
type Process struct {
	path      string
	cmd       *exec.Cmd
	pid       int
	startedAt time.Time
	exited    *Status
	sys       sysProcess
}

// Spawn starts path with args, inheriting this process's standard streams.
// The minimum-display timer starts when Spawn returns successfully.
func Spawn(path string, args ...string) (*Process, error) {
	if path == "" {
		return nil, &LaunchError{Path: path, Err: errors.New("empty program path")}
	}

	cmd := exec.Command(path, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Start(); err != nil {
		return nil, &LaunchError{Path: path, Err: err}
	}

	p := &Process{
		path:      path,
		cmd:       cmd,
		pid:       cmd.Process.Pid,
		startedAt: time.Now(),
	}
	p.sys.attach(p.pid)
	return p, nil
}

// Path returns the program path as given to Spawn.
func (p *Process) Path() string {
	return p.path
}

// PID returns the OS-assigned process ID.
func (p *Process) PID() int {
	return p.pid
}

// StartedAt returns the instant the child was spawned.
func (p *Process) StartedAt() time.Time {
	return p.startedAt
}

// Elapsed returns the monotonic time since spawn.
func (p *Process) Elapsed() time.Duration {
	return time.Since(p.startedAt)
}

// Poll reports whether the child is still running. It never blocks. Once an
// exit has been observed the same status is returned on every later call.
func (p *Process) Poll() (Status, error) {
	if p.exited != nil {
		return *p.exited, nil
	}
	st, err := p.sys.poll(p.pid)
	if err != nil {
		return Status{}, &StatusError{PID: p.pid, Err: err}
	}
	if st.Exited() {
		p.exited = &st
	}
	return st, nil
}

// Release frees the OS resources held for polling. The child keeps running.
func (p *Process) Release() error {
	err := p.sys.release()
	if relErr := p.cmd.Process.Release(); relErr != nil && err == nil {
		err = relErr
	}
	return err
}
