// Package netutil provides network utility functions for port checking and network operations.
package netutil

import (
	"context"
	"fmt"
	"net"
	"time"
)

const dialTimeout = 2 * time.Second

// PortOpen reports whether a TCP connection to ip:port succeeds right now.
func PortOpen(ip string, port int) bool {
	address := net.JoinHostPort(ip, fmt.Sprintf("%d", port))
	conn, err := net.DialTimeout("tcp", address, dialTimeout)
	if err != nil {
		return false
	}
	_ = conn.Close()
	return true
}

// WaitForPort waits for a TCP port to be open on the target IP.
// It retries every second until the port is accessible or the timeout is reached.
func WaitForPort(ctx context.Context, ip string, port int, timeout time.Duration) error {
	address := net.JoinHostPort(ip, fmt.Sprintf("%d", port))
	// Check every second instead of 5 to allow faster tests and responsiveness
	ticker := time.NewTicker(1 * time.Second)
	defer ticker.Stop()

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	// Check immediately before waiting for ticker
	if conn, err := net.DialTimeout("tcp", address, dialTimeout); err == nil {
		_ = conn.Close()
		return nil
	}

	for {
		select {
		case <-ctx.Done():
			if ctx.Err() == context.DeadlineExceeded {
				return fmt.Errorf("timeout waiting for %s", address)
			}
			return ctx.Err()
		case <-ticker.C:
			conn, err := net.DialTimeout("tcp", address, dialTimeout)
			if err == nil {
				_ = conn.Close()
				return nil
			}
		}
	}
}
