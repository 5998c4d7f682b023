// Package history stores run records in BoltDB.
package history

import (
	"bytes"
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/homolo/homolo-mcp/pkg/domain/errors"
	"github.com/homolo/homolo-mcp/pkg/domain/history"
	"go.etcd.io/bbolt"
)

const (
	runsBucket  = "runs"
	indexBucket = "run_index"
)

// BoltStore implements history.Store using BoltDB. Runs are keyed by
// start time so that cursor order is chronological; a second bucket maps
// run IDs to those keys.
type BoltStore struct {
	db     *bbolt.DB
	logger *slog.Logger
}

var _ history.Store = (*BoltStore)(nil)

// NewBoltStore opens (or creates) the database at dbPath.
func NewBoltStore(dbPath string, logger *slog.Logger) (*BoltStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.New(errors.CodeIoError, "persistence", fmt.Sprintf("failed to create directory %s", dir), err)
	}

	db, err := bbolt.Open(dbPath, 0o600, &bbolt.Options{
		Timeout: 1 * time.Second,
	})
	if err != nil {
		if strings.Contains(err.Error(), "timeout") || strings.Contains(err.Error(), "resource temporarily unavailable") {
			return nil, errors.New(errors.CodeIoError, "persistence",
				fmt.Sprintf("database file '%s' is already in use by another server instance. "+
					"Use MCP_STORE_PATH to specify a different database file", dbPath), err)
		}
		return nil, errors.New(errors.CodeIoError, "persistence", "failed to open bolt db", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		for _, name := range []string{runsBucket, indexBucket} {
			if _, err := tx.CreateBucketIfNotExists([]byte(name)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, errors.New(errors.CodeIoError, "persistence", "failed to create buckets", err)
	}

	return &BoltStore{
		db:     db,
		logger: logger.With("component", "history_store"),
	}, nil
}

// Close closes the BoltDB connection
func (s *BoltStore) Close() error {
	return s.db.Close()
}

func runKey(run history.Run) []byte {
	key := make([]byte, 8, 8+len(run.ID))
	binary.BigEndian.PutUint64(key, uint64(run.StartedAt.UnixNano()))
	return append(key, run.ID...)
}

// Record stores a run. IDs must be unique.
func (s *BoltStore) Record(ctx context.Context, run history.Run) error {
	if run.ID == "" {
		return errors.New(errors.CodeMissingParameter, "persistence", "run id is required", nil)
	}
	data, err := json.Marshal(run)
	if err != nil {
		return errors.New(errors.CodeInternalError, "persistence", "failed to marshal run", err)
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		index := tx.Bucket([]byte(indexBucket))
		if index.Get([]byte(run.ID)) != nil {
			return errors.New(errors.CodeAlreadyExists, "persistence", fmt.Sprintf("run %s already exists", run.ID), nil)
		}
		key := runKey(run)
		if err := tx.Bucket([]byte(runsBucket)).Put(key, data); err != nil {
			return errors.New(errors.CodeIoError, "persistence", "failed to store run", err)
		}
		if err := index.Put([]byte(run.ID), key); err != nil {
			return errors.New(errors.CodeIoError, "persistence", "failed to index run", err)
		}
		return nil
	})
}

// Get retrieves a run by ID
func (s *BoltStore) Get(ctx context.Context, id string) (history.Run, error) {
	var run history.Run
	err := s.db.View(func(tx *bbolt.Tx) error {
		key := tx.Bucket([]byte(indexBucket)).Get([]byte(id))
		if key == nil {
			return errors.New(errors.CodeNotFound, "persistence", fmt.Sprintf("run %s not found", id), nil)
		}
		data := tx.Bucket([]byte(runsBucket)).Get(key)
		if data == nil {
			return errors.New(errors.CodeNotFound, "persistence", fmt.Sprintf("run %s not found", id), nil)
		}
		return json.Unmarshal(data, &run)
	})
	if err != nil {
		return history.Run{}, err
	}
	return run, nil
}

// List returns runs newest first
func (s *BoltStore) List(ctx context.Context, limit int) ([]history.Run, error) {
	runs := []history.Run{}
	err := s.db.View(func(tx *bbolt.Tx) error {
		c := tx.Bucket([]byte(runsBucket)).Cursor()
		for k, v := c.Last(); k != nil; k, v = c.Prev() {
			if limit > 0 && len(runs) >= limit {
				break
			}
			var run history.Run
			if err := json.Unmarshal(v, &run); err != nil {
				s.logger.Warn("Skipping unreadable run record", "key", fmt.Sprintf("%x", k), "error", err)
				continue
			}
			runs = append(runs, run)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return runs, nil
}

// Cleanup removes runs that started before cutoff
func (s *BoltStore) Cleanup(ctx context.Context, cutoff time.Time) (int, error) {
	var removed int
	limit := make([]byte, 8)
	binary.BigEndian.PutUint64(limit, uint64(cutoff.UnixNano()))

	err := s.db.Update(func(tx *bbolt.Tx) error {
		runs := tx.Bucket([]byte(runsBucket))
		index := tx.Bucket([]byte(indexBucket))

		var expired [][]byte
		c := runs.Cursor()
		for k, _ := c.First(); k != nil && bytes.Compare(k[:8], limit) < 0; k, _ = c.Next() {
			expired = append(expired, append([]byte(nil), k...))
		}

		for _, k := range expired {
			if err := runs.Delete(k); err != nil {
				return err
			}
			if err := index.Delete(k[8:]); err != nil {
				return err
			}
			removed++
		}
		return nil
	})
	if err != nil {
		return 0, errors.New(errors.CodeIoError, "persistence", "failed to clean up runs", err)
	}

	if removed > 0 {
		s.logger.Info("Removed expired runs", "count", removed, "cutoff", cutoff)
	}
	return removed, nil
}

// Stats returns storage statistics
func (s *BoltStore) Stats(ctx context.Context) (history.Stats, error) {
	stats := history.Stats{ByTool: map[string]int{}}
	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(runsBucket)).ForEach(func(k, v []byte) error {
			var run history.Run
			if err := json.Unmarshal(v, &run); err != nil {
				return nil // Continue counting
			}
			stats.TotalRuns++
			stats.ByTool[run.Tool]++
			if !run.Succeeded() {
				stats.FailedRuns++
			}
			started := run.StartedAt
			if stats.OldestRun == nil || started.Before(*stats.OldestRun) {
				stats.OldestRun = &started
			}
			if stats.NewestRun == nil || started.After(*stats.NewestRun) {
				stats.NewestRun = &started
			}
			return nil
		})
	})
	if err != nil {
		return history.Stats{}, err
	}
	return stats, nil
}
