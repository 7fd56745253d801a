package listener

import "fmt"

// recorder is a Reporter which remembers the events it received.
type recorder struct {
	events []string
	closed bool
	err    error
}

func (r *recorder) add(format string, args ...any) error {
	r.events = append(r.events, fmt.Sprintf(format, args...))
	return r.err
}

func (r *recorder) OnProgramStart(*Run) error { return r.add("program start") }
func (r *recorder) OnIterationStart(_ *Run, i int) error {
	return r.add("iteration start %d", i)
}
func (r *recorder) OnEnvironmentsSetUpStart(*Run) error { return r.add("setup start") }
func (r *recorder) OnEnvironmentsSetUpEnd(*Run) error   { return r.add("setup end") }
func (r *recorder) OnSuiteStart(s *Suite) error         { return r.add("suite start %s", s.Name) }
func (r *recorder) OnTestStart(t *TestInfo) error       { return r.add("test start %s", t.Name) }
func (r *recorder) OnTestPartResult(p *PartResult) error {
	return r.add("part %s %s", p.Test, p.Message)
}
func (r *recorder) OnTestEnd(t *TestInfo) error          { return r.add("test end %s", t.Name) }
func (r *recorder) OnSuiteEnd(s *Suite) error            { return r.add("suite end %s", s.Name) }
func (r *recorder) OnEnvironmentsTearDownStart(*Run) error { return r.add("teardown start") }
func (r *recorder) OnEnvironmentsTearDownEnd(*Run) error   { return r.add("teardown end") }
func (r *recorder) OnIterationEnd(_ *Run, i int) error {
	return r.add("iteration end %d", i)
}
func (r *recorder) OnProgramEnd(*Run) error { return r.add("program end") }
func (r *recorder) Close() error {
	r.closed = true
	return r.err
}

func passedTest(name string) *TestInfo {
	return &TestInfo{Suite: "hwgrade/homework", Name: name, Status: StatusPassed}
}

func failedTest(name string) *TestInfo {
	return &TestInfo{Suite: "hwgrade/homework", Name: name, Status: StatusFailed}
}
