// Package launcher runs the splash loop: pump window messages, redraw, and
// dismiss once the child has been up for the minimum display time.
package launcher

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/1broseidon/splash/internal/supervisor"
)

const (
	DefaultMinDisplay    = 2 * time.Second
	DefaultFrameInterval = 16 * time.Millisecond
)

// Window is the part of the splash window the loop drives.
type Window interface {
	ProcessPendingMessages() bool
	RequestRedraw()
}

// Child is the part of the spawned process the loop polls.
type Child interface {
	Poll() (supervisor.Status, error)
	Elapsed() time.Duration
}

// Outcome says why the loop stopped.
type Outcome int

const (
	// OutcomeQuit: the window system asked to quit, or ctx was cancelled.
	OutcomeQuit Outcome = iota
	// OutcomeExited: the child exited; Result.Status holds its status.
	OutcomeExited
	// OutcomeRunning: the child is up and the minimum time has passed.
	OutcomeRunning
	// OutcomeStatusUnknown: the status check failed and the child is
	// assumed to be running.
	OutcomeStatusUnknown
)

func (o Outcome) String() string {
	switch o {
	case OutcomeQuit:
		return "quit"
	case OutcomeExited:
		return "exited"
	case OutcomeRunning:
		return "running"
	case OutcomeStatusUnknown:
		return "status-unknown"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// Result describes how the loop ended.
type Result struct {
	Outcome Outcome
	Status  supervisor.Status // set for OutcomeExited
	Err     error             // set for OutcomeStatusUnknown
	Frames  int               // redraws requested
	Elapsed time.Duration     // child elapsed time at the final check
}

// Loop ties the splash window to the child process.
type Loop struct {
	Window Window
	Child  Child

	MinDisplay    time.Duration
	FrameInterval time.Duration

	// Sleep pauses between iterations. Defaults to time.Sleep.
	Sleep func(time.Duration)
	// Out receives the user-facing progress lines. Defaults to io.Discard.
	Out    io.Writer
	Logger *slog.Logger
}

// Run iterates until the window quits or the child has been up for at least
// MinDisplay. It never returns before MinDisplay has elapsed except on quit.
func (l *Loop) Run(ctx context.Context) Result {
	minDisplay := l.MinDisplay
	if minDisplay < 0 {
		minDisplay = 0
	}
	interval := l.FrameInterval
	if interval <= 0 {
		interval = DefaultFrameInterval
	}
	sleep := l.Sleep
	if sleep == nil {
		sleep = time.Sleep
	}
	out := l.Out
	if out == nil {
		out = io.Discard
	}
	logger := l.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	var res Result
	for {
		if err := ctx.Err(); err != nil {
			logger.Debug("splash loop cancelled", "err", err, "frames", res.Frames)
			res.Outcome = OutcomeQuit
			return res
		}

		if !l.Window.ProcessPendingMessages() {
			logger.Debug("quit message received", "frames", res.Frames)
			res.Outcome = OutcomeQuit
			return res
		}

		l.Window.RequestRedraw()
		res.Frames++

		if elapsed := l.Child.Elapsed(); elapsed >= minDisplay {
			res.Elapsed = elapsed
			st, err := l.Child.Poll()
			switch {
			case err != nil:
				fmt.Fprintf(out, "Error checking process status: %v\n", err)
				logger.Warn("status check failed, assuming child is running", "err", err)
				res.Outcome = OutcomeStatusUnknown
				res.Err = err
			case st.Exited():
				fmt.Fprintf(out, "Process has exited with status: %s\n", st)
				res.Outcome = OutcomeExited
				res.Status = st
			default:
				fmt.Fprintln(out, "Process is running and minimum time elapsed - closing splash screen")
				res.Outcome = OutcomeRunning
				res.Status = st
			}
			logger.Debug("splash loop finished", "outcome", res.Outcome.String(), "frames", res.Frames, "elapsed", elapsed)
			return res
		}

		sleep(interval)
	}
}

// DescribeMinDisplay renders d the way the startup banner prints it, e.g.
// "2 seconds" or "1.5s".
func DescribeMinDisplay(d time.Duration) string {
	if d%time.Second == 0 {
		n := int64(d / time.Second)
		if n == 1 {
			return "1 second"
		}
		return fmt.Sprintf("%d seconds", n)
	}
	return d.String()
}
