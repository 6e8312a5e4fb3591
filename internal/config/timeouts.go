package config

import (
	"os"
	"strconv"
	"time"
)

// Timeouts holds all configurable timeout values.
// These values can be customized via environment variables.
type Timeouts struct {
	ClusterStart    time.Duration // Timeout for a single minikube start attempt
	Rollout         time.Duration // Deadline for the workload rollout to become ready
	RolloutPoll     time.Duration // Interval between rollout readiness polls
	Apply           time.Duration // Timeout for a single kubectl apply
	Delete          time.Duration // Timeout for teardown delete operations
	TunnelGrace     time.Duration // Grace period before verifying the tunnel stayed alive
	BuildAttempts   int           // Maximum number of image build attempts
	BuildBackoff    time.Duration // Fixed delay between image build attempts
	ApplyAttempts   int           // Total kubectl apply invocations per manifest on transient failures
	ApplyRetryDelay time.Duration // Delay between kubectl apply retries
}

// LoadTimeouts loads timeout configuration from environment variables.
// If an environment variable is not set or invalid, a default value is used.
//
// Environment Variables:
//   - MTHREE_TIMEOUT_CLUSTER_START (default: 10m)
//   - MTHREE_TIMEOUT_ROLLOUT (default: 3m)
//   - MTHREE_ROLLOUT_POLL_INTERVAL (default: 5s)
//   - MTHREE_TIMEOUT_APPLY (default: 2m)
//   - MTHREE_TIMEOUT_DELETE (default: 5m)
//   - MTHREE_TUNNEL_GRACE (default: 3s)
//   - MTHREE_BUILD_MAX_ATTEMPTS (default: 3)
//   - MTHREE_BUILD_BACKOFF (default: 10s)
//   - MTHREE_APPLY_MAX_ATTEMPTS (default: 3)
//   - MTHREE_APPLY_RETRY_DELAY (default: 5s)
func LoadTimeouts() *Timeouts {
	return &Timeouts{
		ClusterStart:    parseDuration("MTHREE_TIMEOUT_CLUSTER_START", 10*time.Minute),
		Rollout:         parseDuration("MTHREE_TIMEOUT_ROLLOUT", 3*time.Minute),
		RolloutPoll:     parseDuration("MTHREE_ROLLOUT_POLL_INTERVAL", 5*time.Second),
		Apply:           parseDuration("MTHREE_TIMEOUT_APPLY", 2*time.Minute),
		Delete:          parseDuration("MTHREE_TIMEOUT_DELETE", 5*time.Minute),
		TunnelGrace:     parseDuration("MTHREE_TUNNEL_GRACE", 3*time.Second),
		BuildAttempts:   parseInt("MTHREE_BUILD_MAX_ATTEMPTS", 3),
		BuildBackoff:    parseDuration("MTHREE_BUILD_BACKOFF", 10*time.Second),
		ApplyAttempts:   parseInt("MTHREE_APPLY_MAX_ATTEMPTS", 3),
		ApplyRetryDelay: parseDuration("MTHREE_APPLY_RETRY_DELAY", 5*time.Second),
	}
}

// parseDuration parses a duration from an environment variable.
// If the variable is not set or parsing fails, the default value is returned.
func parseDuration(envVar string, defaultVal time.Duration) time.Duration {
	val := os.Getenv(envVar)
	if val == "" {
		return defaultVal
	}

	d, err := time.ParseDuration(val)
	if err != nil {
		return defaultVal
	}

	return d
}

// parseInt parses an integer from an environment variable.
// If the variable is not set or parsing fails, the default value is returned.
func parseInt(envVar string, defaultVal int) int {
	val := os.Getenv(envVar)
	if val == "" {
		return defaultVal
	}

	i, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}

	return i
}
