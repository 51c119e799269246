package database

import (
	"context"
	"time"
)

// Pinger is any backing store the readiness probe checks.
type Pinger interface {
	Name() string
	Ping(ctx context.Context) error
}

// CheckAll pings every dependency and returns the failures keyed by name.
func CheckAll(ctx context.Context, timeout time.Duration, deps ...Pinger) map[string]string {
	failures := make(map[string]string)
	for _, dep := range deps {
		if dep == nil {
			continue
		}
		pingCtx, cancel := context.WithTimeout(ctx, timeout)
		if err := dep.Ping(pingCtx); err != nil {
			failures[dep.Name()] = err.Error()
		}
		cancel()
	}
	return failures
}
