package storage

import (
	"errors"
	"time"
)

// ErrUnavailable is returned by read operations when the store is
// disabled or its backing database cannot be reached. Callers treat it
// as "no samples available", never as a hard failure.
var ErrUnavailable = errors.New("timing store unavailable")

// Store defines the interface for timing-sample persistence.
//
// Implementations must allow concurrent RecordSample and QuerySamples
// calls, and a reader must never observe a partially written sample.
// No cross-sample atomicity is required: the data model has no updates
// or deletes on the hot path.
type Store interface {
	// Init opens the database and runs migrations.
	Init() error

	// RecordSample appends one timing sample. Append-only.
	RecordSample(s Sample) error

	// QuerySamples returns all samples for a tool in a feature bucket,
	// oldest first. Returns ErrUnavailable when the store is disabled.
	QuerySamples(tool, bucket string) ([]Sample, error)

	// Stats summarizes sample counts and mean durations per tool/bucket.
	Stats() ([]BucketStats, error)

	// Cleanup removes samples older than the retention window.
	Cleanup(retention time.Duration) error

	// Close closes the database connection.
	Close() error
}
