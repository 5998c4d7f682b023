// Package history defines the record kept for every layer build.
package history

import (
	"context"
	"time"
)

// Status is the outcome of a run.
type Status string

const (
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

// Run is one execution of a layer-building tool.
type Run struct {
	ID        string            `json:"id"`
	Tool      string            `json:"tool"`
	Status    Status            `json:"status"`
	Inputs    map[string]string `json:"inputs,omitempty"`
	Output    string            `json:"output,omitempty"`
	Rows      int               `json:"rows"`
	StartedAt time.Time         `json:"started_at"`
	Duration  time.Duration     `json:"duration_ns"`
	Error     string            `json:"error,omitempty"`
}

// Succeeded reports whether the run finished without error.
func (r Run) Succeeded() bool {
	return r.Status == StatusSucceeded
}

// Stats summarizes the stored runs.
type Stats struct {
	TotalRuns  int            `json:"total_runs"`
	FailedRuns int            `json:"failed_runs"`
	ByTool     map[string]int `json:"by_tool"`
	OldestRun  *time.Time     `json:"oldest_run,omitempty"`
	NewestRun  *time.Time     `json:"newest_run,omitempty"`
}

// Store persists runs.
type Store interface {
	Record(ctx context.Context, run Run) error
	Get(ctx context.Context, id string) (Run, error)
	// List returns up to limit runs, newest first. limit <= 0 means all.
	List(ctx context.Context, limit int) ([]Run, error)
	// Cleanup removes runs that started before cutoff and returns how many were removed.
	Cleanup(ctx context.Context, cutoff time.Time) (int, error)
	Stats(ctx context.Context) (Stats, error)
	Close() error
}
