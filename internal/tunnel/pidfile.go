package tunnel

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"syscall"
	"time"
)

// Handle records a supervised tunnel process. It is persisted as a pidfile
// so a later run (or teardown) can locate and kill a tunnel started by a
// previous process.
type Handle struct {
	PID        int       `json:"pid"`
	Namespace  string    `json:"namespace"`
	Service    string    `json:"service"`
	LocalPort  int       `json:"localPort"`
	RemotePort int       `json:"remotePort"`
	StartedAt  time.Time `json:"startedAt"`
}

// Alive reports whether the recorded process still exists, probed with
// signal 0.
func (h *Handle) Alive() bool {
	if h == nil || h.PID <= 0 {
		return false
	}
	proc, err := os.FindProcess(h.PID)
	if err != nil {
		return false
	}
	return proc.Signal(syscall.Signal(0)) == nil
}

// DefaultStateDir returns the directory tunnel pidfiles live in.
func DefaultStateDir() (string, error) {
	cache, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve cache directory: %w", err)
	}
	return filepath.Join(cache, "mthree"), nil
}

// pidfilePath keys the pidfile by namespace and service, matching the
// at-most-one-tunnel-per-pair invariant.
func pidfilePath(dir, namespace, service string) string {
	return filepath.Join(dir, fmt.Sprintf("tunnel-%s-%s.json", namespace, service))
}

// loadHandle reads a recorded handle. A missing pidfile returns (nil, nil).
func loadHandle(dir, namespace, service string) (*Handle, error) {
	data, err := os.ReadFile(pidfilePath(dir, namespace, service))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read tunnel pidfile: %w", err)
	}

	var handle Handle
	if err := json.Unmarshal(data, &handle); err != nil {
		return nil, fmt.Errorf("failed to parse tunnel pidfile: %w", err)
	}
	return &handle, nil
}

// saveHandle persists a handle, creating the state directory if needed.
func saveHandle(dir string, handle *Handle) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create tunnel state directory: %w", err)
	}

	data, err := json.Marshal(handle)
	if err != nil {
		return fmt.Errorf("failed to marshal tunnel handle: %w", err)
	}

	path := pidfilePath(dir, handle.Namespace, handle.Service)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write tunnel pidfile: %w", err)
	}
	return nil
}

// removeHandle deletes a pidfile, tolerating its absence.
func removeHandle(dir, namespace, service string) error {
	err := os.Remove(pidfilePath(dir, namespace, service))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove tunnel pidfile: %w", err)
	}
	return nil
}
