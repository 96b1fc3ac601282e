// Package quality computes data-quality checks over a loaded bundle.
//
// The check names and semantics mirror the warehouse dq surface: three
// checks per upstream source plus a volume check against the total-row
// requirement. Checks run on whatever data the loader produced, so a
// sample-data session reports honestly on the rows it actually has.
package quality

import "time"

// Status is a check verdict.
type Status string

const (
	StatusPass Status = "PASS"
	StatusFail Status = "FAIL"
)

// Detail is one named figure behind a check.
type Detail struct {
	Label string
	Value string
}

// Check is one completed quality check.
type Check struct {
	Name        string
	Source      string
	Description string
	Status      Status
	Records     int
	Details     []Detail
	CheckedAt   time.Time
}

// Volume is one source's row count.
type Volume struct {
	Source string
	Rows   int
}

// Report is the outcome of a full quality run.
type Report struct {
	Checks    []Check
	Volumes   []Volume
	TotalRows int
	CheckedAt time.Time
}

// Passing counts the checks that passed.
func (r *Report) Passing() int {
	n := 0
	for _, c := range r.Checks {
		if c.Status == StatusPass {
			n++
		}
	}
	return n
}

// Failing counts the checks that failed.
func (r *Report) Failing() int {
	return len(r.Checks) - r.Passing()
}

// PassRate returns the percentage of passing checks.
func (r *Report) PassRate() float64 {
	if len(r.Checks) == 0 {
		return 0
	}
	return float64(r.Passing()) / float64(len(r.Checks)) * 100
}

// Filter returns the checks matching source and status. Empty values match
// everything.
func (r *Report) Filter(source string, status Status) []Check {
	var out []Check
	for _, c := range r.Checks {
		if source != "" && c.Source != source {
			continue
		}
		if status != "" && c.Status != status {
			continue
		}
		out = append(out, c)
	}
	return out
}
