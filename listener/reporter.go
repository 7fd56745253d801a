// Package listener reports the lifecycle of a test run.
//
// A Reporter receives the lifecycle callbacks in a fixed order:
//
//	program start
//	  iteration start
//	    environments set-up start, environments set-up end
//	    { suite start { test start, test part result*, test end }* suite end }*
//	    environments tear-down start, environments tear-down end
//	  iteration end
//	program end
//
// Callbacks are invoked sequentially from a single goroutine.
package listener

// Reporter is a receiver of test lifecycle events.
type Reporter interface {
	OnProgramStart(run *Run) error
	OnIterationStart(run *Run, iteration int) error
	OnEnvironmentsSetUpStart(run *Run) error
	OnEnvironmentsSetUpEnd(run *Run) error
	OnSuiteStart(suite *Suite) error
	OnTestStart(test *TestInfo) error
	OnTestPartResult(result *PartResult) error
	OnTestEnd(test *TestInfo) error
	OnSuiteEnd(suite *Suite) error
	OnEnvironmentsTearDownStart(run *Run) error
	OnEnvironmentsTearDownEnd(run *Run) error
	OnIterationEnd(run *Run, iteration int) error
	OnProgramEnd(run *Run) error

	// Close releases the reporter and everything it owns.
	Close() error
}

// EmptyReporter implements every callback of Reporter as a no-op.
// Embed it to implement only the callbacks you need.
type EmptyReporter struct{}

func (EmptyReporter) OnProgramStart(*Run) error              { return nil }
func (EmptyReporter) OnIterationStart(*Run, int) error       { return nil }
func (EmptyReporter) OnEnvironmentsSetUpStart(*Run) error    { return nil }
func (EmptyReporter) OnEnvironmentsSetUpEnd(*Run) error      { return nil }
func (EmptyReporter) OnSuiteStart(*Suite) error              { return nil }
func (EmptyReporter) OnTestStart(*TestInfo) error            { return nil }
func (EmptyReporter) OnTestPartResult(*PartResult) error     { return nil }
func (EmptyReporter) OnTestEnd(*TestInfo) error              { return nil }
func (EmptyReporter) OnSuiteEnd(*Suite) error                { return nil }
func (EmptyReporter) OnEnvironmentsTearDownStart(*Run) error { return nil }
func (EmptyReporter) OnEnvironmentsTearDownEnd(*Run) error   { return nil }
func (EmptyReporter) OnIterationEnd(*Run, int) error         { return nil }
func (EmptyReporter) OnProgramEnd(*Run) error                { return nil }
func (EmptyReporter) Close() error                           { return nil }

// Listeners dispatches every event to each reporter in order.
// Dispatching stops at the first error, which is returned as is.
type Listeners []Reporter

func (ls Listeners) each(f func(Reporter) error) error {
	for _, r := range ls {
		if err := f(r); err != nil {
			return err
		}
	}
	return nil
}

func (ls Listeners) OnProgramStart(run *Run) error {
	return ls.each(func(r Reporter) error { return r.OnProgramStart(run) })
}

func (ls Listeners) OnIterationStart(run *Run, iteration int) error {
	return ls.each(func(r Reporter) error { return r.OnIterationStart(run, iteration) })
}

func (ls Listeners) OnEnvironmentsSetUpStart(run *Run) error {
	return ls.each(func(r Reporter) error { return r.OnEnvironmentsSetUpStart(run) })
}

func (ls Listeners) OnEnvironmentsSetUpEnd(run *Run) error {
	return ls.each(func(r Reporter) error { return r.OnEnvironmentsSetUpEnd(run) })
}

func (ls Listeners) OnSuiteStart(suite *Suite) error {
	return ls.each(func(r Reporter) error { return r.OnSuiteStart(suite) })
}

func (ls Listeners) OnTestStart(test *TestInfo) error {
	return ls.each(func(r Reporter) error { return r.OnTestStart(test) })
}

func (ls Listeners) OnTestPartResult(result *PartResult) error {
	return ls.each(func(r Reporter) error { return r.OnTestPartResult(result) })
}

func (ls Listeners) OnTestEnd(test *TestInfo) error {
	return ls.each(func(r Reporter) error { return r.OnTestEnd(test) })
}

func (ls Listeners) OnSuiteEnd(suite *Suite) error {
	return ls.each(func(r Reporter) error { return r.OnSuiteEnd(suite) })
}

func (ls Listeners) OnEnvironmentsTearDownStart(run *Run) error {
	return ls.each(func(r Reporter) error { return r.OnEnvironmentsTearDownStart(run) })
}

func (ls Listeners) OnEnvironmentsTearDownEnd(run *Run) error {
	return ls.each(func(r Reporter) error { return r.OnEnvironmentsTearDownEnd(run) })
}

func (ls Listeners) OnIterationEnd(run *Run, iteration int) error {
	return ls.each(func(r Reporter) error { return r.OnIterationEnd(run, iteration) })
}

func (ls Listeners) OnProgramEnd(run *Run) error {
	return ls.each(func(r Reporter) error { return r.OnProgramEnd(run) })
}

// Close closes every reporter, in reverse order, and returns the first error.
func (ls Listeners) Close() error {
	var first error
	for i := len(ls) - 1; i >= 0; i-- {
		if err := ls[i].Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
