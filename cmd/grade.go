package cmd

import (
	"context"

	"hwgrade/grading"
	"hwgrade/listener"
	"hwgrade/report"
	"hwgrade/runner"
	"hwgrade/service/db"
	"hwgrade/service/storage"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// listenerFlags are the flags which choose what the console shows.
type listenerFlags struct {
	showTestCases      bool
	showTestNames      bool
	showSuccesses      bool
	showInlineFailures bool
	showEnvironment    bool
	showRunningGrade   bool
	color              string
	report             string
}

func (f *listenerFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.BoolVar(&f.showTestCases, "show-test-cases", true, "show the start and the end of each package")
	flags.BoolVar(&f.showTestNames, "show-test-names", true, "show the name of each test when it starts")
	flags.BoolVar(&f.showSuccesses, "show-successes", true, "show each test which passed")
	flags.BoolVar(&f.showInlineFailures, "show-inline-failures", true, "show each failure as it occurs")
	flags.BoolVar(&f.showEnvironment, "show-environment", true, "show the global set-up and tear-down")
	flags.BoolVar(&f.showRunningGrade, "show-running-grade", false, "show the grade after each graded test")
	flags.StringVar(&f.color, "color", "", "color the output: auto, always or never")
	flags.StringVar(&f.report, "report", "", "write the grade report to this file")
}

// resolve fills the flags which were not set on the command line from the config.
func (f *listenerFlags) resolve(cmd *cobra.Command, o *options) {
	conf := o.config.Listener
	fallback := func(name string, v *bool, c bool) {
		if !cmd.Flags().Changed(name) {
			*v = c
		}
	}
	fallback("show-test-cases", &f.showTestCases, conf.ShowTestCases)
	fallback("show-test-names", &f.showTestNames, conf.ShowTestNames)
	fallback("show-successes", &f.showSuccesses, conf.ShowSuccesses)
	fallback("show-inline-failures", &f.showInlineFailures, conf.ShowInlineFailures)
	fallback("show-environment", &f.showEnvironment, conf.ShowEnvironment)
	fallback("show-running-grade", &f.showRunningGrade, conf.ShowRunningGrade)
	if f.color == "" {
		f.color = conf.Color
	}
	if f.report == "" {
		f.report = o.config.Report.Path
	}
}

func parseColor(s string) (listener.ColorMode, error) {
	switch mode := listener.ColorMode(s); mode {
	case "":
		return listener.ColorAuto, nil
	case listener.ColorAuto, listener.ColorAlways, listener.ColorNever:
		return mode, nil
	default:
		return "", errors.Errorf("invalid color mode '%s', expected auto, always or never", s)
	}
}

// grade runs the tests of source, prints them and publishes the grade report.
func (o *options) grade(
	ctx context.Context, cmd *cobra.Command, homework string, source runner.Source,
	repeat int, flags *listenerFlags,
) error {
	flags.resolve(cmd, o)
	rubric, err := o.config.Rubric(homework)
	if err != nil {
		return err
	}
	color, err := parseColor(flags.color)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	console := listener.NewConfigurableListener(listener.NewConsole(out, color), out)
	console.ShowTestCases = flags.showTestCases
	console.ShowTestNames = flags.showTestNames
	console.ShowSuccesses = flags.showSuccesses
	console.ShowInlineFailures = flags.showInlineFailures
	console.ShowEnvironment = flags.showEnvironment

	ledger := grading.NewLedger()
	grades := listener.NewGradeListener(rubric, ledger, out)
	grades.ShowRunningGrade = flags.showRunningGrade

	// The grade line of the console comes last.
	reporter := listener.Listeners{grades, console}
	defer func() {
		if err := reporter.Close(); err != nil {
			log.WithError(err).Error("Failed to close reporter")
		}
	}()

	run, err := runner.NewDriver(reporter, source, repeat).Run(ctx)
	if err != nil {
		return err
	}

	sinks, err := o.sinks(ctx, flags.report)
	if err != nil {
		return err
	}
	if err := report.Publish(ctx, report.Build(run, ledger, rubric, rubric.Name), sinks...); err != nil {
		return err
	}
	if !run.Passed() {
		return ErrTestsFailed
	}
	return nil
}

// sinks returns the report destinations of the configuration.
func (o *options) sinks(ctx context.Context, reportPath string) ([]report.Sink, error) {
	var sinks []report.Sink
	if reportPath != "" {
		sinks = append(sinks, &report.FileSink{Path: reportPath})
	}
	provider, err := storage.FromConfig(o.config)
	if err != nil {
		return nil, err
	}
	if provider != nil {
		sinks = append(sinks, &report.StorageSink{Provider: provider, Prefix: o.config.Report.Prefix})
	}
	if o.config.Database.Enabled {
		gdb, err := db.Open(o.config)
		if err != nil {
			return nil, err
		}
		sinks = append(sinks, &report.DBSink{DB: gdb})
	}
	if o.config.Database.Redis.Enabled {
		rdb, err := db.OpenRedis(ctx, o.config)
		if err != nil {
			return nil, err
		}
		sinks = append(sinks, &report.RedisSink{Client: rdb})
	}
	return sinks, nil
}
