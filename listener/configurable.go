package listener

import (
	"fmt"
	"io"

	log "github.com/sirupsen/logrus"
)

// ConfigurableListener is a Reporter which forwards events to a wrapped reporter
// only for the categories that are enabled, and keeps a running success tally.
type ConfigurableListener struct {
	wrapped Reporter
	out     io.Writer
	log     *log.Entry

	// ShowTestCases shows the start and the end of each suite.
	ShowTestCases bool

	// ShowTestNames shows the name of each test when it starts.
	ShowTestNames bool

	// ShowSuccesses shows the end of each test which did not fail.
	ShowSuccesses bool

	// ShowInlineFailures shows each failure as it occurs.
	// Failures are listed again in the summary of the iteration anyway.
	ShowInlineFailures bool

	// ShowEnvironment shows the set-up and the tear-down of the global environment.
	ShowEnvironment bool

	// NumSuccess is the number of tests of the current iteration which did not fail.
	NumSuccess int

	// NumFailures is the number of failed tests of the current iteration.
	NumFailures int

	// NumTests is the number of finished tests of the current iteration.
	NumTests int
}

// NewConfigurableListener wraps the reporter, which is then owned by the listener.
// The grade line is written to out. All categories are shown by default.
func NewConfigurableListener(wrapped Reporter, out io.Writer) *ConfigurableListener {
	return &ConfigurableListener{
		wrapped:            wrapped,
		out:                out,
		log:                log.NewEntry(log.StandardLogger()),
		ShowTestCases:      true,
		ShowTestNames:      true,
		ShowSuccesses:      true,
		ShowInlineFailures: true,
		ShowEnvironment:    true,
	}
}

// WithLogger sets the logger of the progress lines.
func (l *ConfigurableListener) WithLogger(logger *log.Entry) *ConfigurableListener {
	l.log = logger
	return l
}

func (l *ConfigurableListener) OnProgramStart(run *Run) error {
	return l.wrapped.OnProgramStart(run)
}

func (l *ConfigurableListener) OnIterationStart(run *Run, iteration int) error {
	l.NumSuccess = 0
	l.NumFailures = 0
	l.NumTests = 0
	return l.wrapped.OnIterationStart(run, iteration)
}

func (l *ConfigurableListener) OnEnvironmentsSetUpStart(run *Run) error {
	if l.ShowEnvironment {
		return l.wrapped.OnEnvironmentsSetUpStart(run)
	}
	return nil
}

func (l *ConfigurableListener) OnEnvironmentsSetUpEnd(run *Run) error {
	if l.ShowEnvironment {
		return l.wrapped.OnEnvironmentsSetUpEnd(run)
	}
	return nil
}

func (l *ConfigurableListener) OnSuiteStart(suite *Suite) error {
	if l.ShowTestCases {
		return l.wrapped.OnSuiteStart(suite)
	}
	return nil
}

func (l *ConfigurableListener) OnTestStart(test *TestInfo) error {
	l.log.WithField("test", test.Name).Infof("POINTS: %d", l.NumSuccess)
	if l.ShowTestNames {
		return l.wrapped.OnTestStart(test)
	}
	return nil
}

func (l *ConfigurableListener) OnTestPartResult(result *PartResult) error {
	return l.wrapped.OnTestPartResult(result)
}

func (l *ConfigurableListener) OnTestEnd(test *TestInfo) error {
	failed := test.Failed()
	var err error
	if (l.ShowInlineFailures && failed) || (l.ShowSuccesses && !failed) {
		err = l.wrapped.OnTestEnd(test)
	}
	l.NumTests++
	if failed {
		l.NumFailures++
	} else {
		l.NumSuccess++
	}
	return err
}

func (l *ConfigurableListener) OnSuiteEnd(suite *Suite) error {
	if l.ShowTestCases {
		return l.wrapped.OnSuiteEnd(suite)
	}
	return nil
}

func (l *ConfigurableListener) OnEnvironmentsTearDownStart(run *Run) error {
	if l.ShowEnvironment {
		return l.wrapped.OnEnvironmentsTearDownStart(run)
	}
	return nil
}

func (l *ConfigurableListener) OnEnvironmentsTearDownEnd(run *Run) error {
	if l.ShowEnvironment {
		return l.wrapped.OnEnvironmentsTearDownEnd(run)
	}
	return nil
}

func (l *ConfigurableListener) OnIterationEnd(run *Run, iteration int) error {
	return l.wrapped.OnIterationEnd(run, iteration)
}

// OnProgramEnd forwards the event and then writes the grade line
// "HOMEWORK_GRADE: <successes>/<total>" which graders parse.
func (l *ConfigurableListener) OnProgramEnd(run *Run) error {
	if err := l.wrapped.OnProgramEnd(run); err != nil {
		return err
	}
	_, err := fmt.Fprintf(l.out, "\nHOMEWORK_GRADE: %d/%d\n", l.NumSuccess, l.NumFailures+l.NumSuccess)
	return err
}

// Close closes the wrapped reporter.
func (l *ConfigurableListener) Close() error {
	return l.wrapped.Close()
}
