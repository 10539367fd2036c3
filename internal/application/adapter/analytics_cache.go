// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import "context"

// AnalyticsCache memoizes engine output per (use case, filter, transaction-set version).
type AnalyticsCache interface {
	// Get decodes the cached value for key into dest. Returns false on a miss.
	Get(ctx context.Context, key string, dest any) (bool, error)

	// Set stores value under key.
	Set(ctx context.Context, key string, value any) error

	// Version returns the current transaction-set version.
	Version(ctx context.Context) (int64, error)

	// BumpVersion invalidates every cached entry by advancing the version.
	BumpVersion(ctx context.Context) (int64, error)
}
