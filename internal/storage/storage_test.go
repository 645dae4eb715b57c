package storage

import (
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store := NewSQLiteStore(filepath.Join(t.TempDir(), "history.db"), nil)
	require.NoError(t, store.Init())
	t.Cleanup(func() { store.Close() })
	return store
}

func TestRecordAndQuerySamples(t *testing.T) {
	store := newTestStore(t)

	sample := Sample{
		Tool:       "reason_tree",
		Bucket:     "branches=3|depth=3",
		Features:   map[string]float64{"branches": 3, "depth": 3},
		DurationMS: 9500,
		Timestamp:  time.Now(),
	}
	require.NoError(t, store.RecordSample(sample))

	got, err := store.QuerySamples("reason_tree", "branches=3|depth=3")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "reason_tree", got[0].Tool)
	assert.Equal(t, int64(9500), got[0].DurationMS)
	assert.Equal(t, map[string]float64{"branches": 3, "depth": 3}, got[0].Features)
}

func TestQuerySamples_FiltersByToolAndBucket(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.RecordSample(Sample{Tool: "reason_tree", Bucket: "branches=3|depth=3", DurationMS: 100}))
	require.NoError(t, store.RecordSample(Sample{Tool: "reason_tree", Bucket: "branches=5|depth=3", DurationMS: 200}))
	require.NoError(t, store.RecordSample(Sample{Tool: "reason_mcts", Bucket: "branches=3|depth=3", DurationMS: 300}))

	got, err := store.QuerySamples("reason_tree", "branches=3|depth=3")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, int64(100), got[0].DurationMS)
}

func TestQuerySamples_EmptyBucket(t *testing.T) {
	store := newTestStore(t)

	got, err := store.QuerySamples("reason_tree", "branches=9|depth=9")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestStats(t *testing.T) {
	store := newTestStore(t)

	for i := 0; i < 4; i++ {
		require.NoError(t, store.RecordSample(Sample{Tool: "reason_graph", Bucket: "nodes=10", DurationMS: 1000}))
	}
	require.NoError(t, store.RecordSample(Sample{Tool: "reason_graph", Bucket: "nodes=20", DurationMS: 5000}))

	stats, err := store.Stats()
	require.NoError(t, err)
	require.Len(t, stats, 2)

	assert.Equal(t, "nodes=10", stats[0].Bucket)
	assert.Equal(t, 4, stats[0].Count)
	assert.Equal(t, int64(1000), stats[0].MeanMS)
	assert.Equal(t, "nodes=20", stats[1].Bucket)
	assert.Equal(t, 1, stats[1].Count)
}

func TestCleanup_RemovesOldSamples(t *testing.T) {
	store := newTestStore(t)

	old := Sample{Tool: "reason_tree", Bucket: "b", DurationMS: 100, Timestamp: time.Now().Add(-48 * time.Hour)}
	recent := Sample{Tool: "reason_tree", Bucket: "b", DurationMS: 200, Timestamp: time.Now()}
	require.NoError(t, store.RecordSample(old))
	require.NoError(t, store.RecordSample(recent))

	require.NoError(t, store.Cleanup(24*time.Hour))

	got, err := store.QuerySamples("reason_tree", "b")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, int64(200), got[0].DurationMS)
}

func TestCleanup_ZeroRetentionKeepsEverything(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.RecordSample(Sample{Tool: "t", Bucket: "b", DurationMS: 1, Timestamp: time.Now().Add(-1000 * time.Hour)}))
	require.NoError(t, store.Cleanup(0))

	got, err := store.QuerySamples("t", "b")
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestDisabledStore_WritesAreNoOpsReadsUnavailable(t *testing.T) {
	store := NewSQLiteStore("", nil)
	require.NoError(t, store.Init())

	assert.NoError(t, store.RecordSample(Sample{Tool: "t", Bucket: "b"}))

	_, err := store.QuerySamples("t", "b")
	assert.ErrorIs(t, err, ErrUnavailable)

	_, err = store.Stats()
	assert.ErrorIs(t, err, ErrUnavailable)

	assert.NoError(t, store.Cleanup(time.Hour))
	assert.NoError(t, store.Close())
}

func TestConcurrentAppendsAndReads(t *testing.T) {
	store := newTestStore(t)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 10; j++ {
				_ = store.RecordSample(Sample{Tool: "reason_tree", Bucket: "b", DurationMS: int64(j)})
				_, _ = store.QuerySamples("reason_tree", "b")
			}
		}()
	}
	wg.Wait()

	got, err := store.QuerySamples("reason_tree", "b")
	require.NoError(t, err)
	assert.Len(t, got, 100)
}

func TestInit_Idempotent(t *testing.T) {
	store := newTestStore(t)
	assert.NoError(t, store.Init())
	assert.NoError(t, store.Init())
}
