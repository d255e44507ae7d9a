// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// Job pairs one input PDF with the path its padded copy is written to.
type Job struct {
	Input  string `json:"input" yaml:"input"`
	Output string `json:"output" yaml:"output"`
}

// RunRequest is one batch invocation: an ordered list of jobs sharing a
// single set of margins. It is built fresh per run and not mutated while
// the run is active.
type RunRequest struct {
	Jobs    []Job
	Margins Margins

	// ContinueOnError keeps processing the remaining jobs after a failure
	// instead of aborting the batch.
	ContinueOnError bool
}

// FileStatus is the outcome of one job.
type FileStatus string

const (
	FileDone   FileStatus = "done"
	FileFailed FileStatus = "failed"
)

// JournalEntry records one processed file in the run journal.
type JournalEntry struct {
	RunID      string     `json:"run_id" yaml:"run_id"`
	Input      string     `json:"input" yaml:"input"`
	Output     string     `json:"output" yaml:"output"`
	Margins    Margins    `json:"margins" yaml:"margins"`
	Status     FileStatus `json:"status" yaml:"status"`
	Error      string     `json:"error,omitempty" yaml:"error,omitempty"`
	Pages      int        `json:"pages" yaml:"pages"`
	FinishedAt time.Time  `json:"finished_at" yaml:"finished_at"`
}
