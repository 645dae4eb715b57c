package storage

import (
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// RecordSample appends one timing sample.
//
// Writes on a disabled store are silent no-ops: a missed data point is
// a degraded estimate later, not a failed tool call now.
func (s *SQLiteStore) RecordSample(sample Sample) error {
	if !s.enabled || s.db == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	featuresJSON, err := json.Marshal(sample.Features)
	if err != nil {
		return fmt.Errorf("failed to marshal features: %w", err)
	}

	ts := sample.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}

	query := `
		INSERT INTO timing_samples (tool_name, feature_bucket, features_json, duration_ms, timestamp)
		VALUES (?, ?, ?, ?, ?)
	`

	if _, err := s.db.Exec(query,
		sample.Tool,
		sample.Bucket,
		string(featuresJSON),
		sample.DurationMS,
		ts.UTC().Format(time.RFC3339Nano),
	); err != nil {
		return fmt.Errorf("failed to record sample: %w", err)
	}

	return nil
}

// QuerySamples returns all samples for a tool in a feature bucket,
// oldest first.
func (s *SQLiteStore) QuerySamples(tool, bucket string) ([]Sample, error) {
	if !s.enabled || s.db == nil {
		return nil, ErrUnavailable
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		SELECT tool_name, feature_bucket, features_json, duration_ms, timestamp
		FROM timing_samples
		WHERE tool_name = ? AND feature_bucket = ?
		ORDER BY timestamp ASC, id ASC
	`

	rows, err := s.db.Query(query, tool, bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to query samples: %w", err)
	}
	defer rows.Close()

	var samples []Sample
	for rows.Next() {
		var sample Sample
		var featuresJSON, timestampStr string

		if err := rows.Scan(
			&sample.Tool,
			&sample.Bucket,
			&featuresJSON,
			&sample.DurationMS,
			&timestampStr,
		); err != nil {
			s.logger.Warn("failed to scan sample row", zap.Error(err))
			continue
		}

		if err := json.Unmarshal([]byte(featuresJSON), &sample.Features); err != nil {
			s.logger.Warn("failed to parse sample features", zap.Error(err))
			continue
		}

		sample.Timestamp, err = time.Parse(time.RFC3339Nano, timestampStr)
		if err != nil {
			s.logger.Warn("failed to parse sample timestamp", zap.Error(err))
			continue
		}

		samples = append(samples, sample)
	}

	return samples, rows.Err()
}

// Stats summarizes sample counts and mean durations per tool/bucket.
func (s *SQLiteStore) Stats() ([]BucketStats, error) {
	if !s.enabled || s.db == nil {
		return nil, ErrUnavailable
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		SELECT tool_name, feature_bucket, COUNT(*), CAST(AVG(duration_ms) AS INTEGER)
		FROM timing_samples
		GROUP BY tool_name, feature_bucket
		ORDER BY tool_name, feature_bucket
	`

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query stats: %w", err)
	}
	defer rows.Close()

	var stats []BucketStats
	for rows.Next() {
		var st BucketStats
		if err := rows.Scan(&st.Tool, &st.Bucket, &st.Count, &st.MeanMS); err != nil {
			s.logger.Warn("failed to scan stats row", zap.Error(err))
			continue
		}
		stats = append(stats, st)
	}

	return stats, rows.Err()
}

// Cleanup removes samples older than the retention window.
func (s *SQLiteStore) Cleanup(retention time.Duration) error {
	if !s.enabled || s.db == nil {
		return nil
	}
	if retention <= 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// datetime() normalizes the stored RFC3339 strings so the comparison
	// is chronological regardless of fractional-second formatting.
	cutoff := time.Now().Add(-retention).UTC().Format(time.RFC3339Nano)
	result, err := s.db.Exec("DELETE FROM timing_samples WHERE datetime(timestamp) < datetime(?)", cutoff)
	if err != nil {
		return fmt.Errorf("failed to clean up samples: %w", err)
	}

	if n, err := result.RowsAffected(); err == nil && n > 0 {
		s.logger.Info("trimmed timing samples", zap.Int64("removed", n))
	}

	return nil
}
