package runner

import (
	"strings"

	"hwgrade/listener"

	log "github.com/sirupsen/logrus"
)

// incompleteMessage is reported for tests which never finished, e.g. after a panic or a timeout.
const incompleteMessage = "test did not complete"

type testState struct {
	info   *listener.TestInfo
	output []string
	parent bool
	done   bool
}

type packageState struct {
	suite *listener.Suite
	tests map[string]*testState
	order []*testState
}

// collector buffers the events of every package and replays a package to the reporter
// once the package has finished, so that every suite is reported as a whole.
type collector struct {
	reporter listener.Reporter
	run      *listener.Run
	log      *log.Entry

	packages map[string]*packageState
	order    []string

	// builds holds the build output of each import path.
	builds map[string][]string
}

func newCollector(reporter listener.Reporter, run *listener.Run, logger *log.Entry) *collector {
	return &collector{
		reporter: reporter,
		run:      run,
		log:      logger,
		packages: make(map[string]*packageState),
		builds:   make(map[string][]string),
	}
}

func (c *collector) pkg(name string) *packageState {
	p, ok := c.packages[name]
	if !ok {
		p = &packageState{
			suite: &listener.Suite{Name: name, Status: listener.StatusRunning},
			tests: make(map[string]*testState),
		}
		c.packages[name] = p
		c.order = append(c.order, name)
	}
	return p
}

// handle processes a single event.
func (c *collector) handle(e *Event) error {
	switch e.Action {
	case ActionBuildOutput:
		path := buildImportPath(e.ImportPath)
		c.builds[path] = append(c.builds[path], e.Output)
		return nil
	case ActionBuildFail:
		return nil
	}

	if e.Package == "" {
		if out := strings.TrimRight(e.Output, "\n"); out != "" {
			c.log.WithField("output", out).Warn("Unattributed test output")
		}
		return nil
	}

	p := c.pkg(e.Package)
	if e.Test == "" {
		switch e.Action {
		case ActionOutput:
			p.suite.Output = append(p.suite.Output, e.Output)
		case ActionPass, ActionFail, ActionSkip:
			p.suite.Status = status(e.Action)
			p.suite.Elapsed = e.ElapsedDuration()
			if e.FailedBuild != "" {
				build := c.builds[buildImportPath(e.FailedBuild)]
				output := make([]string, 0, len(build)+len(p.suite.Output))
				p.suite.Output = append(append(output, build...), p.suite.Output...)
			}
			return c.finish(e.Package)
		}
		return nil
	}

	t := p.test(e.Test)
	switch e.Action {
	case ActionOutput:
		t.output = append(t.output, e.Output)
	case ActionPass, ActionFail, ActionSkip:
		t.info.Status = status(e.Action)
		t.info.Elapsed = e.ElapsedDuration()
		t.done = true
	}
	return nil
}

// test returns the state of the named test, creating it on its first event.
// Every known test whose name is a "/"-prefix of a new test becomes a parent.
func (p *packageState) test(name string) *testState {
	if t, ok := p.tests[name]; ok {
		return t
	}
	for i := 0; i < len(name); i++ {
		if name[i] != '/' {
			continue
		}
		if parent, ok := p.tests[name[:i]]; ok {
			parent.parent = true
		}
	}
	t := &testState{info: &listener.TestInfo{
		Suite: p.suite.Name, Name: name, Status: listener.StatusRunning,
	}}
	p.tests[name] = t
	p.order = append(p.order, t)
	return t
}

// leaves returns the tests which are scored: tests without subtests, and parents which
// failed on their own while all of their subtests passed.
func (p *packageState) leaves() []*testState {
	var leaves []*testState
	for _, t := range p.order {
		if !t.parent || (t.info.Failed() && !p.hasFailedChild(t.info.Name)) {
			leaves = append(leaves, t)
		}
	}
	return leaves
}

func (p *packageState) hasFailedChild(name string) bool {
	prefix := name + "/"
	for _, t := range p.order {
		if strings.HasPrefix(t.info.Name, prefix) && t.info.Failed() {
			return true
		}
	}
	return false
}

// finish replays the package to the reporter and forgets it.
func (c *collector) finish(name string) error {
	p := c.packages[name]
	delete(c.packages, name)
	for i, n := range c.order {
		if n == name {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}

	for _, t := range p.order {
		if !t.done {
			t.info.Status = listener.StatusFailed
		}
	}
	leaves := p.leaves()
	if len(leaves) == 0 && p.suite.Status != listener.StatusFailed {
		c.log.WithField("package", name).Debug("Package has no tests")
		return nil
	}
	for _, t := range leaves {
		t.info.Parts = parseParts(t.info.Name, t.output, t.info.Failed())
		if !t.done {
			t.info.Parts = append(t.info.Parts, &listener.PartResult{
				Test: t.info.Name, Message: incompleteMessage, Failed: true,
			})
		}
		p.suite.Tests = append(p.suite.Tests, t.info)
	}

	if err := c.reporter.OnSuiteStart(p.suite); err != nil {
		return err
	}
	for _, t := range p.suite.Tests {
		if err := c.reporter.OnTestStart(t); err != nil {
			return err
		}
		for _, part := range t.Parts {
			if err := c.reporter.OnTestPartResult(part); err != nil {
				return err
			}
		}
		if err := c.reporter.OnTestEnd(t); err != nil {
			return err
		}
	}
	if err := c.reporter.OnSuiteEnd(p.suite); err != nil {
		return err
	}
	c.run.AddSuite(p.suite)
	return nil
}

// flush finishes the packages which never reported their end, failing them.
func (c *collector) flush() error {
	for len(c.order) > 0 {
		name := c.order[0]
		c.log.WithField("package", name).Warn("Package did not complete")
		c.packages[name].suite.Status = listener.StatusFailed
		if err := c.finish(name); err != nil {
			return err
		}
	}
	return nil
}

func status(a Action) listener.Status {
	switch a {
	case ActionPass:
		return listener.StatusPassed
	case ActionSkip:
		return listener.StatusSkipped
	default:
		return listener.StatusFailed
	}
}

// buildImportPath strips the test variant suffix, e.g. "p [p.test]" becomes "p".
func buildImportPath(path string) string {
	if i := strings.Index(path, " "); i >= 0 {
		return path[:i]
	}
	return path
}
