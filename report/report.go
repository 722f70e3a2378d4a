// Package report defines the result model for a completed test run and
// renders it into a human-readable summary.
//
// Everything in this package is pure string formatting: no I/O, no clocks,
// no network. A Snapshot is built by the reporter at run end and handed to
// a renderer, which never fails — malformed input degrades to safe
// placeholder values instead.
package report

import "time"

// Status is the overall outcome of a test run.
type Status string

// Run outcomes reported by the runner. Anything other than StatusPassed
// counts as not passed for gating and title purposes.
const (
	StatusPassed      Status = "passed"
	StatusFailed      Status = "failed"
	StatusTimedOut    Status = "timedout"
	StatusInterrupted Status = "interrupted"
)

// Passed reports whether the run finished with every test passing.
func (s Status) Passed() bool {
	return s == StatusPassed
}

// Outcome is the result of a single test attempt.
type Outcome string

// Attempt outcomes.
const (
	OutcomePassed   Outcome = "passed"
	OutcomeFailed   Outcome = "failed"
	OutcomeSkipped  Outcome = "skipped"
	OutcomeTimedOut Outcome = "timedout"
)

// Attempt captures one execution attempt of a test.
type Attempt struct {
	Outcome Outcome

	// DurationMs is the attempt's wall-clock duration in milliseconds.
	// A negative value means the duration is unknown and renders as "N/A".
	DurationMs int64

	// Error is the failure description, possibly multi-line.
	// Empty means no error was recorded.
	Error string
}

// Test is the result of one test case. Built-in renderers consult only the
// first attempt; a Test with no attempts contributes to the total count but
// to no outcome bucket.
type Test struct {
	// TitlePath is the ordered title hierarchy, from the top-level group
	// down to the test name itself. It may include the browser label and a
	// file-derived segment, both of which are stripped when deriving the
	// display group.
	TitlePath []string

	// Browser is the execution context the test ran under (empty if none).
	Browser string

	// File identifies the source file the test came from.
	File string

	Attempts []Attempt
}

// FirstAttempt returns the first recorded attempt, or nil when the test
// never ran.
func (t *Test) FirstAttempt() *Attempt {
	if len(t.Attempts) == 0 {
		return nil
	}
	return &t.Attempts[0]
}

// Snapshot is the immutable end-of-run state handed to renderers.
type Snapshot struct {
	Status Status

	// Tests is the flat, ordered collection of all executed tests.
	Tests []*Test

	// StartedAt is the wall-clock time captured at run begin.
	StartedAt time.Time

	// Duration is the elapsed wall-clock time of the whole run.
	Duration time.Duration
}

// Buckets groups tests by first-attempt outcome, in the fixed display
// order: failed, timed out, skipped, passed.
type Buckets struct {
	Failed   []*Test
	TimedOut []*Test
	Skipped  []*Test
	Passed   []*Test
}

// Buckets partitions the snapshot's tests by their first-attempt outcome.
// Tests with no attempts land in no bucket.
func (s *Snapshot) Buckets() Buckets {
	var b Buckets
	for _, t := range s.Tests {
		a := t.FirstAttempt()
		if a == nil {
			continue
		}
		switch a.Outcome {
		case OutcomeFailed:
			b.Failed = append(b.Failed, t)
		case OutcomeTimedOut:
			b.TimedOut = append(b.TimedOut, t)
		case OutcomeSkipped:
			b.Skipped = append(b.Skipped, t)
		case OutcomePassed:
			b.Passed = append(b.Passed, t)
		}
	}
	return b
}
