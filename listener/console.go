package listener

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// ColorMode decides whether the console output is colored.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// Console is the default reporter. It prints the run in the familiar bracket-tagged format:
//
//	[ RUN      ] TestAdd/rows=1
//	[       OK ] TestAdd/rows=1 (0 ms)
type Console struct {
	out io.Writer

	good lipgloss.Style
	bad  lipgloss.Style
	warn lipgloss.Style
}

// NewConsole creates a console reporter writing to out.
func NewConsole(out io.Writer, mode ColorMode) *Console {
	r := lipgloss.NewRenderer(out)
	if useColor(out, mode) {
		r.SetColorProfile(termenv.ANSI)
	} else {
		r.SetColorProfile(termenv.Ascii)
	}
	return &Console{
		out:  out,
		good: r.NewStyle().Foreground(lipgloss.Color("2")),
		bad:  r.NewStyle().Foreground(lipgloss.Color("1")),
		warn: r.NewStyle().Foreground(lipgloss.Color("3")),
	}
}

func useColor(out io.Writer, mode ColorMode) bool {
	switch mode {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	}
	f, ok := out.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func (c *Console) write(s string) error {
	_, err := io.WriteString(c.out, s)
	return err
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

func millis(d time.Duration) int64 { return d.Milliseconds() }

func (c *Console) OnProgramStart(*Run) error { return nil }

func (c *Console) OnIterationStart(run *Run, iteration int) error {
	b := strings.Builder{}
	if run.Repeat > 1 {
		b.WriteString(fmt.Sprintf("\nRepeating all tests (iteration %d) . . .\n\n", iteration+1))
	}
	b.WriteString(c.good.Render("[==========]") + " Running tests.\n")
	return c.write(b.String())
}

func (c *Console) OnEnvironmentsSetUpStart(*Run) error {
	return c.write(c.good.Render("[----------]") + " Global test environment set-up.\n")
}

func (c *Console) OnEnvironmentsSetUpEnd(*Run) error { return nil }

func (c *Console) OnSuiteStart(suite *Suite) error {
	return c.write(fmt.Sprintf("%s %s from %s\n",
		c.good.Render("[----------]"), plural(suite.TestCount(), "test"), suite.Name))
}

func (c *Console) OnTestStart(test *TestInfo) error {
	return c.write(c.good.Render("[ RUN      ]") + " " + test.Name + "\n")
}

func (c *Console) OnTestPartResult(result *PartResult) error {
	if !result.Failed {
		return nil
	}
	if result.File == "" {
		return c.write(result.Message + "\n")
	}
	return c.write(fmt.Sprintf("%s:%d: Failure\n%s\n", result.File, result.Line, result.Message))
}

func (c *Console) OnTestEnd(test *TestInfo) error {
	var tag string
	switch test.Status {
	case StatusFailed:
		tag = c.bad.Render("[  FAILED  ]")
	case StatusSkipped:
		tag = c.warn.Render("[  SKIPPED ]")
	default:
		tag = c.good.Render("[       OK ]")
	}
	return c.write(fmt.Sprintf("%s %s (%d ms)\n", tag, test.Name, millis(test.Elapsed)))
}

func (c *Console) OnSuiteEnd(suite *Suite) error {
	b := strings.Builder{}
	if suite.Status == StatusFailed {
		for _, line := range suite.Output {
			b.WriteString(strings.TrimRight(line, "\n") + "\n")
		}
	}
	b.WriteString(fmt.Sprintf("%s %s from %s (%d ms total)\n\n",
		c.good.Render("[----------]"), plural(suite.TestCount(), "test"), suite.Name,
		millis(suite.Elapsed)))
	return c.write(b.String())
}

func (c *Console) OnEnvironmentsTearDownStart(*Run) error {
	return c.write(c.good.Render("[----------]") + " Global test environment tear-down\n")
}

func (c *Console) OnEnvironmentsTearDownEnd(*Run) error { return nil }

func (c *Console) OnIterationEnd(run *Run, _ int) error {
	b := strings.Builder{}
	b.WriteString(fmt.Sprintf("%s %s from %s ran. (%d ms total)\n",
		c.good.Render("[==========]"), plural(run.TestCount(), "test"),
		plural(run.SuiteCount(), "test suite"), millis(run.IterationElapsed())))

	failed := run.FailedTests()
	skipped := run.SkippedTests()
	b.WriteString(fmt.Sprintf("%s %s.\n", c.good.Render("[  PASSED  ]"),
		plural(run.TestCount()-len(failed)-len(skipped), "test")))

	if len(skipped) > 0 {
		b.WriteString(fmt.Sprintf("%s %s, listed below:\n",
			c.warn.Render("[  SKIPPED ]"), plural(len(skipped), "test")))
		for _, t := range skipped {
			b.WriteString(c.warn.Render("[  SKIPPED ]") + " " + t.Name + "\n")
		}
	}

	failedSuites := run.FailedSuites()
	if len(failed) > 0 || len(failedSuites) > 0 {
		b.WriteString(fmt.Sprintf("%s %s, listed below:\n",
			c.bad.Render("[  FAILED  ]"), plural(len(failed), "test")))
		for _, t := range failed {
			b.WriteString(c.bad.Render("[  FAILED  ]") + " " + t.Name + "\n")
		}
		for _, s := range failedSuites {
			b.WriteString(c.bad.Render("[  FAILED  ]") + " " + s.Name + " (package failed)\n")
		}
		n := len(failed) + len(failedSuites)
		noun := "TESTS"
		if n == 1 {
			noun = "TEST"
		}
		b.WriteString(fmt.Sprintf("\n%2d FAILED %s\n", n, noun))
	}
	return c.write(b.String())
}

func (c *Console) OnProgramEnd(*Run) error { return nil }

// Close does nothing, the console does not own its writer.
func (c *Console) Close() error { return nil }
