/*
Package storage provides data models for the timing-sample store.

A timing sample is one observed execution of a reasoning tool: the tool
name, the complexity features present at the time, the measured duration
and a timestamp. Samples are immutable once written and the store is
append-only.
*/
package storage

import "time"

// Sample represents one observed tool execution.
type Sample struct {
	// Tool is the name of the tool that was executed.
	Tool string `json:"tool"`

	// Bucket is the discretized complexity-feature key the sample was
	// recorded under. Estimation queries match on tool + bucket.
	Bucket string `json:"bucket"`

	// Features are the raw complexity feature values at execution time.
	Features map[string]float64 `json:"features"`

	// DurationMS is the measured execution duration in milliseconds.
	DurationMS int64 `json:"duration_ms"`

	// Timestamp is when the execution completed.
	Timestamp time.Time `json:"timestamp"`
}

// BucketStats summarizes the samples recorded for one tool/bucket pair.
type BucketStats struct {
	// Tool is the tool name.
	Tool string `json:"tool"`

	// Bucket is the discretized feature key.
	Bucket string `json:"bucket"`

	// Count is the number of samples in the bucket.
	Count int `json:"count"`

	// MeanMS is the arithmetic mean duration in milliseconds.
	MeanMS int64 `json:"mean_ms"`
}
