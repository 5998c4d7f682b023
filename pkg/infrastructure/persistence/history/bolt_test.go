package history

import (
	"context"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/homolo/homolo-mcp/pkg/domain/errors"
	"github.com/homolo/homolo-mcp/pkg/domain/history"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *BoltStore {
	t.Helper()
	store, err := NewBoltStore(filepath.Join(t.TempDir(), "db", "runs.db"), slog.Default())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func testRun(id, tool string, started time.Time, status history.Status) history.Run {
	return history.Run{
		ID:        id,
		Tool:      tool,
		Status:    status,
		Inputs:    map[string]string{"input_path": "in.csv"},
		Output:    "out.xlsx",
		Rows:      3,
		StartedAt: started,
		Duration:  150 * time.Millisecond,
	}
}

func TestBoltStore_RecordAndGet(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	run := testRun("run-1", "build_layer_10_financial", time.Now().UTC(), history.StatusSucceeded)

	require.NoError(t, store.Record(ctx, run))

	got, err := store.Get(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, run.Tool, got.Tool)
	assert.Equal(t, run.Inputs, got.Inputs)
	assert.True(t, run.StartedAt.Equal(got.StartedAt))

	err = store.Record(ctx, run)
	assert.True(t, errors.HasCode(err, errors.CodeAlreadyExists))

	_, err = store.Get(ctx, "missing")
	assert.True(t, errors.HasCode(err, errors.CodeNotFound))

	err = store.Record(ctx, history.Run{})
	assert.True(t, errors.HasCode(err, errors.CodeMissingParameter))
}

func TestBoltStore_ListNewestFirst(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, id := range []string{"a", "b", "c"} {
		require.NoError(t, store.Record(ctx, testRun(id, "file_list", base.Add(time.Duration(i)*time.Minute), history.StatusSucceeded)))
	}

	all, err := store.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"c", "b", "a"}, []string{all[0].ID, all[1].ID, all[2].ID})

	limited, err := store.List(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
	assert.Equal(t, "c", limited[0].ID)
}

func TestBoltStore_Cleanup(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	now := time.Now()
	require.NoError(t, store.Record(ctx, testRun("old", "t", now.Add(-48*time.Hour), history.StatusSucceeded)))
	require.NoError(t, store.Record(ctx, testRun("new", "t", now, history.StatusSucceeded)))

	removed, err := store.Cleanup(ctx, now.Add(-24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	_, err = store.Get(ctx, "old")
	assert.True(t, errors.HasCode(err, errors.CodeNotFound))
	_, err = store.Get(ctx, "new")
	assert.NoError(t, err)
}

func TestBoltStore_Stats(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, store.Record(ctx, testRun("1", "build_layer_10_financial", base, history.StatusSucceeded)))
	require.NoError(t, store.Record(ctx, testRun("2", "build_layer_10_financial", base.Add(time.Hour), history.StatusFailed)))
	require.NoError(t, store.Record(ctx, testRun("3", "build_layer_20_personal", base.Add(2*time.Hour), history.StatusSucceeded)))

	stats, err := store.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.TotalRuns)
	assert.Equal(t, 1, stats.FailedRuns)
	assert.Equal(t, map[string]int{"build_layer_10_financial": 2, "build_layer_20_personal": 1}, stats.ByTool)
	require.NotNil(t, stats.OldestRun)
	assert.True(t, base.Equal(*stats.OldestRun))
	assert.True(t, base.Add(2*time.Hour).Equal(*stats.NewestRun))
}

func TestNewBoltStore_LockedDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.db")
	first, err := NewBoltStore(path, slog.Default())
	require.NoError(t, err)
	defer first.Close()

	_, err = NewBoltStore(path, slog.Default())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MCP_STORE_PATH")
}
