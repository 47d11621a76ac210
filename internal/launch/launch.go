// SPDX-License-Identifier: MPL-2.0

// Package launch spawns the composed node invocation and mirrors its
// fate. The child inherits the parent's stdio untouched; the parent
// does nothing afterwards but wait, forward interrupts, and reproduce
// the child's exit code or fatal signal.
package launch

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"

	"testpilot-cli/internal/memusage"
	"testpilot-cli/pkg/types"
)

// DefaultGracePeriod is how long an interrupted child gets to honor
// SIGINT before SIGTERM follows.
const DefaultGracePeriod = 10 * time.Second

// State is the launcher's view of the child process lifetime.
type State int

const (
	// StateRunning means the child has been spawned and not yet reaped.
	StateRunning State = iota
	// StateExited means the child exited on its own with a code.
	StateExited
	// StateSignaled means the child was terminated by a signal.
	StateSignaled
)

// Status is the reaped child's wait status.
type Status struct {
	Code     types.ExitCode
	Signal   syscall.Signal
	Signaled bool
}

// State returns the terminal state the status describes.
func (s Status) State() State {
	if s.Signaled {
		return StateSignaled
	}
	return StateExited
}

// Child is the process handle the supervision loop drives. The real
// implementation wraps os/exec; tests inject fakes.
type Child interface {
	Start() error
	Signal(sig os.Signal) error
	// Wait blocks until the child is reaped and returns its status.
	Wait() Status
}

// Spec describes one composed invocation.
type Spec struct {
	// NodePath is the runtime executable to spawn.
	NodePath string
	// NodeArgs are the runtime-destined arguments, already unparsed.
	NodeArgs []string
	// Entry is the runner's real entry-point script.
	Entry string
	// RunnerArgs are the application-destined arguments, already unparsed.
	RunnerArgs []string
}

// Argv returns the full child argument vector:
// runtime args, then the entry point, then the runner args.
func (s Spec) Argv() []string {
	argv := make([]string, 0, len(s.NodeArgs)+1+len(s.RunnerArgs))
	argv = append(argv, s.NodeArgs...)
	argv = append(argv, s.Entry)
	argv = append(argv, s.RunnerArgs...)
	return argv
}

// Launcher supervises exactly one child process.
type Launcher struct {
	// GracePeriod bounds how long a SIGINT-ed child may linger before
	// SIGTERM. Zero means DefaultGracePeriod.
	GracePeriod time.Duration
	// Diagnostics receives the resource-usage report. Defaults to stdout.
	Diagnostics io.Writer

	// NewChild constructs the process handle. Defaults to os/exec.
	NewChild func(Spec) Child
	// Interrupts overrides the interrupt source. When nil the launcher
	// subscribes to os.Interrupt delivery.
	Interrupts <-chan os.Signal
}

// Run spawns the child described by spec and blocks until it is
// reaped, driving the RUNNING -> EXITED | SIGNALED transition. The
// resource report is written on any abnormal outcome and on every
// interrupt; report failures never affect the result.
func (l *Launcher) Run(spec Spec) (Status, error) {
	newChild := l.NewChild
	if newChild == nil {
		newChild = newExecChild
	}
	child := newChild(spec)

	if err := child.Start(); err != nil {
		return Status{}, fmt.Errorf("failed to spawn %s: %w", spec.NodePath, err)
	}
	log.Debug("child spawned", "node", spec.NodePath, "argv", spec.Argv())

	interrupts := l.Interrupts
	if interrupts == nil {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, os.Interrupt)
		defer signal.Stop(sigCh)
		interrupts = sigCh
	}

	waitCh := make(chan Status, 1)
	go func() { waitCh <- child.Wait() }()

	return l.supervise(child, waitCh, interrupts), nil
}

// supervise consumes lifecycle events until the child is reaped.
func (l *Launcher) supervise(child Child, waitCh <-chan Status, interrupts <-chan os.Signal) Status {
	grace := l.GracePeriod
	if grace == 0 {
		grace = DefaultGracePeriod
	}

	var escalate <-chan time.Time
	for {
		select {
		case status := <-waitCh:
			if status.State() == StateSignaled {
				log.Debug("child terminated by signal", "signal", status.Signal)
				l.report()
			} else if !status.Code.IsSuccess() {
				log.Debug("child exited abnormally", "code", status.Code)
				l.report()
			}
			return status

		case sig := <-interrupts:
			l.report()
			if err := child.Signal(sig); err != nil {
				log.Debug("interrupt forwarding failed", "err", err)
			}
			// Repeated interrupts must not push the escalation out; the
			// timer runs from the first one only.
			if escalate == nil {
				escalate = time.After(grace)
			}

		case <-escalate:
			l.report()
			if err := child.Signal(syscall.SIGTERM); err != nil {
				log.Debug("SIGTERM forwarding failed", "err", err)
			}
			escalate = nil
		}
	}
}

func (l *Launcher) report() {
	w := l.Diagnostics
	if w == nil {
		w = os.Stdout
	}
	memusage.Report(w)
}
