// Package tunnel supervises the kubectl port-forward process exposing the
// deployed service on a local port.
//
// The local port is an exclusively-owned resource: the supervisor always
// observes and kills any recorded prior tunnel before starting a new one,
// so at most one tunnel is alive per (namespace, service) pair.
package tunnel

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"syscall"
	"time"

	"github.com/banwar54/mthree/internal/util/netutil"
)

// GraceError reports that the tunnel process did not survive the grace
// period. It is non-fatal: the service stays reachable through an
// alternate access path.
type GraceError struct {
	Service   string
	LocalPort int
	Err       error
}

func (e *GraceError) Error() string {
	return fmt.Sprintf("tunnel for %s on port %d did not stay alive: %v", e.Service, e.LocalPort, e.Err)
}

func (e *GraceError) Unwrap() error {
	return e.Err
}

// Logger receives progress output.
type Logger interface {
	Printf(format string, v ...interface{})
}

// Supervisor owns the tunnel process lifecycle.
type Supervisor struct {
	logger Logger
	dir    string
	grace  time.Duration

	// newCommand builds the tunnel process. Tests substitute a harmless
	// long-running command.
	newCommand func(namespace, service string, localPort, remotePort int) *exec.Cmd
}

// NewSupervisor creates a supervisor storing pidfiles under dir.
func NewSupervisor(logger Logger, dir string, grace time.Duration) *Supervisor {
	return &Supervisor{
		logger:     logger,
		dir:        dir,
		grace:      grace,
		newCommand: portForwardCommand,
	}
}

// portForwardCommand builds the detached kubectl port-forward process.
// Setpgid keeps the tunnel alive when the orchestrator's terminal session
// receives a signal.
func portForwardCommand(namespace, service string, localPort, remotePort int) *exec.Cmd {
	// #nosec G204 - arguments come from validated config, not user input
	cmd := exec.Command("kubectl", "port-forward",
		"--namespace", namespace,
		"service/"+service,
		fmt.Sprintf("%d:%d", localPort, remotePort),
	)
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	return cmd
}

// Ensure starts the tunnel, killing any recorded prior instance for the
// same (namespace, service) pair first. After the grace period it verifies
// the process is still alive and the local port accepts connections;
// failure there returns the handle together with a *GraceError, which the
// caller reports as a warning.
func (s *Supervisor) Ensure(ctx context.Context, namespace, service string, localPort, remotePort int) (*Handle, error) {
	prior, err := loadHandle(s.dir, namespace, service)
	if err != nil {
		// An unreadable pidfile means a prior tunnel may still hold the
		// port; the grace check below catches the collision if so.
		s.logger.Printf("Warning: cannot check for a prior tunnel for %s/%s: %v", namespace, service, err)
	} else if prior.Alive() {
		s.logger.Printf("Terminating existing tunnel (pid %d) for %s/%s", prior.PID, namespace, service)
		s.terminate(prior)
	}

	cmd := s.newCommand(namespace, service, localPort, remotePort)
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("failed to start tunnel process: %w", err)
	}
	// Reap the child if it exits while we are still running.
	go func() { _ = cmd.Wait() }()

	handle := &Handle{
		PID:        cmd.Process.Pid,
		Namespace:  namespace,
		Service:    service,
		LocalPort:  localPort,
		RemotePort: remotePort,
		StartedAt:  time.Now(),
	}
	if err := saveHandle(s.dir, handle); err != nil {
		s.logger.Printf("Warning: %v", err)
	}

	s.logger.Printf("Tunnel started (pid %d): localhost:%d -> %s/%s:%d",
		handle.PID, localPort, namespace, service, remotePort)

	portErr := netutil.WaitForPort(ctx, "127.0.0.1", localPort, s.grace)
	if !handle.Alive() {
		return handle, &GraceError{Service: service, LocalPort: localPort, Err: fmt.Errorf("process exited during grace period")}
	}
	if portErr != nil {
		return handle, &GraceError{Service: service, LocalPort: localPort, Err: portErr}
	}

	return handle, nil
}

// Stop kills any recorded tunnel for the pair and removes its pidfile.
// Missing or already-dead tunnels are a no-op.
func (s *Supervisor) Stop(namespace, service string) error {
	handle, err := loadHandle(s.dir, namespace, service)
	if err != nil {
		return err
	}
	if handle == nil {
		return nil
	}

	if handle.Alive() {
		s.logger.Printf("Stopping tunnel (pid %d) for %s/%s", handle.PID, namespace, service)
		s.terminate(handle)
	}
	return removeHandle(s.dir, namespace, service)
}

// Status returns the recorded handle for the pair, or nil when none exists.
func (s *Supervisor) Status(namespace, service string) (*Handle, error) {
	return loadHandle(s.dir, namespace, service)
}

// terminate sends SIGTERM and polls until the process is gone, escalating
// to SIGKILL after a bounded wait.
func (s *Supervisor) terminate(handle *Handle) {
	proc, err := os.FindProcess(handle.PID)
	if err != nil {
		return
	}

	_ = proc.Signal(syscall.SIGTERM)

	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if !handle.Alive() {
			return
		}
		time.Sleep(100 * time.Millisecond)
	}

	_ = proc.Kill()
}
