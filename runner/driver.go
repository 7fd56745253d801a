package runner

import (
	"context"
	"io"

	"hwgrade/listener"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Driver runs the iterations of the tests and reports them.
type Driver struct {
	reporter listener.Reporter
	source   Source
	repeat   int
	log      *log.Entry
}

// NewDriver creates a driver running the tests of source repeat times.
// The reporter is not closed by the driver.
func NewDriver(reporter listener.Reporter, source Source, repeat int) *Driver {
	if repeat < 1 {
		repeat = 1
	}
	return &Driver{
		reporter: reporter,
		source:   source,
		repeat:   repeat,
		log:      log.WithField("component", "runner"),
	}
}

// Run runs every iteration and returns the run.
// The run is returned even on error, holding the suites finished so far.
func (d *Driver) Run(ctx context.Context) (*listener.Run, error) {
	run := listener.NewRun(d.repeat)
	d.log.WithField("run", run.ID).Debug("Starting run")
	if err := d.reporter.OnProgramStart(run); err != nil {
		return run, err
	}
	for i := 0; i < run.Repeat; i++ {
		if err := ctx.Err(); err != nil {
			return run, err
		}
		if err := d.runIteration(ctx, run, i); err != nil {
			return run, err
		}
	}
	run.Finish()
	if err := d.reporter.OnProgramEnd(run); err != nil {
		return run, err
	}
	d.log.WithFields(log.Fields{
		"run":     run.ID,
		"elapsed": run.Elapsed,
		"passed":  run.Passed(),
	}).Debug("Finished run")
	return run, nil
}

func (d *Driver) runIteration(ctx context.Context, run *listener.Run, iteration int) error {
	run.StartIteration(iteration)
	if err := d.reporter.OnIterationStart(run, iteration); err != nil {
		return err
	}
	if err := d.reporter.OnEnvironmentsSetUpStart(run); err != nil {
		return err
	}
	if err := d.reporter.OnEnvironmentsSetUpEnd(run); err != nil {
		return err
	}
	if err := d.collect(ctx, run, iteration); err != nil {
		return err
	}
	if err := d.reporter.OnEnvironmentsTearDownStart(run); err != nil {
		return err
	}
	if err := d.reporter.OnEnvironmentsTearDownEnd(run); err != nil {
		return err
	}
	return d.reporter.OnIterationEnd(run, iteration)
}

func (d *Driver) collect(ctx context.Context, run *listener.Run, iteration int) (err error) {
	stream, err := d.source.Open(ctx, iteration)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := stream.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	c := newCollector(d.reporter, run, d.log.WithField("iteration", iteration))
	dec := NewDecoder(stream)
	for {
		e, err := dec.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		if err := c.handle(e); err != nil {
			return err
		}
	}
	if err := ctx.Err(); err != nil {
		return errors.Wrap(err, "tests interrupted")
	}
	return c.flush()
}
