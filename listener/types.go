package listener

import (
	"time"

	"github.com/google/uuid"
)

// Status is the outcome of a test or a suite.
type Status int

const (
	// StatusRunning means the outcome is not known yet.
	StatusRunning Status = iota
	StatusPassed
	StatusFailed
	StatusSkipped
)

func (s Status) String() string {
	switch s {
	case StatusPassed:
		return "pass"
	case StatusFailed:
		return "fail"
	case StatusSkipped:
		return "skip"
	default:
		return "run"
	}
}

// PartResult is a single message reported by a test, e.g. a failed assertion.
type PartResult struct {
	// Test is the full name of the test which reported the message.
	Test string

	// File and Line locate the message in the test source, if known.
	File string
	Line int

	// Message is the reported text, continuation lines are joined with "\n".
	Message string

	// Failed is true if the message belongs to a failed test.
	Failed bool
}

// TestInfo is a single leaf test.
type TestInfo struct {
	// Suite is the name of the suite (Go package) of the test.
	Suite string

	// Name is the full Go test name, e.g. "TestAdd/rows=1".
	Name string

	Status  Status
	Elapsed time.Duration

	// Parts are the messages reported by the test in order.
	Parts []*PartResult
}

// Failed reports whether the test failed.
func (t *TestInfo) Failed() bool { return t.Status == StatusFailed }

// Skipped reports whether the test was skipped.
func (t *TestInfo) Skipped() bool { return t.Status == StatusSkipped }

// Suite is a group of tests, a Go package.
type Suite struct {
	Name    string
	Status  Status
	Elapsed time.Duration

	// Output is the package-level output which is not attributed to a test,
	// e.g. build errors or a panic.
	Output []string

	// Tests are the leaf tests of the suite in the order they started.
	Tests []*TestInfo
}

// Failed reports whether the suite itself or any of its tests failed.
func (s *Suite) Failed() bool {
	if s.Status == StatusFailed {
		return true
	}
	return s.FailedTestCount() > 0
}

// TestCount returns the number of tests of the suite.
func (s *Suite) TestCount() int { return len(s.Tests) }

// FailedTestCount returns the number of failed tests of the suite.
func (s *Suite) FailedTestCount() int {
	n := 0
	for _, t := range s.Tests {
		if t.Failed() {
			n++
		}
	}
	return n
}

// SuccessfulTestCount returns the number of tests of the suite which did not fail.
func (s *Suite) SuccessfulTestCount() int { return s.TestCount() - s.FailedTestCount() }

// Run is the whole test program: one or more iterations of the same tests.
type Run struct {
	// ID identifies the run in reports and storage.
	ID uuid.UUID

	StartedAt time.Time
	Elapsed   time.Duration

	// Repeat is the number of iterations requested.
	Repeat int

	// Iteration is the zero-based index of the current iteration.
	Iteration int

	// Suites are the finished suites of the current iteration.
	Suites []*Suite

	iterationStart time.Time
	failed         bool
}

// NewRun creates a run of the given number of iterations.
func NewRun(repeat int) *Run {
	if repeat < 1 {
		repeat = 1
	}
	return &Run{ID: uuid.New(), StartedAt: time.Now(), Repeat: repeat}
}

// StartIteration forgets the suites of the previous iteration.
func (r *Run) StartIteration(iteration int) {
	r.Iteration = iteration
	r.Suites = nil
	r.iterationStart = time.Now()
}

// AddSuite adds a finished suite to the current iteration.
func (r *Run) AddSuite(s *Suite) {
	r.Suites = append(r.Suites, s)
	if s.Failed() {
		r.failed = true
	}
}

// Finish records the total elapsed time of the run.
func (r *Run) Finish() { r.Elapsed = time.Since(r.StartedAt) }

// IterationElapsed returns the time spent in the current iteration.
func (r *Run) IterationElapsed() time.Duration {
	if r.iterationStart.IsZero() {
		return 0
	}
	return time.Since(r.iterationStart)
}

// Passed reports whether every suite of every iteration so far passed.
func (r *Run) Passed() bool { return !r.failed }

// SuiteCount returns the number of suites of the current iteration.
func (r *Run) SuiteCount() int { return len(r.Suites) }

// Tests returns all tests of the current iteration.
func (r *Run) Tests() []*TestInfo {
	var tests []*TestInfo
	for _, s := range r.Suites {
		tests = append(tests, s.Tests...)
	}
	return tests
}

// TestCount returns the number of tests of the current iteration.
func (r *Run) TestCount() int { return len(r.Tests()) }

// FailedTests returns the failed tests of the current iteration.
func (r *Run) FailedTests() []*TestInfo { return r.filter(StatusFailed) }

// SkippedTests returns the skipped tests of the current iteration.
func (r *Run) SkippedTests() []*TestInfo { return r.filter(StatusSkipped) }

// FailedSuites returns the suites which failed without a failed test, e.g. build failures.
func (r *Run) FailedSuites() []*Suite {
	var suites []*Suite
	for _, s := range r.Suites {
		if s.Status == StatusFailed && s.FailedTestCount() == 0 {
			suites = append(suites, s)
		}
	}
	return suites
}

func (r *Run) filter(status Status) []*TestInfo {
	var tests []*TestInfo
	for _, t := range r.Tests() {
		if t.Status == status {
			tests = append(tests, t)
		}
	}
	return tests
}
