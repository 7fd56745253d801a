// Package cmd implements the hwgrade command line.
package cmd

import (
	"context"

	"hwgrade/service/etc"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// ErrTestsFailed is returned when some test of some iteration failed.
var ErrTestsFailed = errors.New("tests failed")

type options struct {
	configFile string
	logLevel   string
	config     *etc.Configuration
}

// NewRootCmd creates the hwgrade command.
func NewRootCmd() *cobra.Command {
	o := &options{}
	cmd := &cobra.Command{
		Use:   "hwgrade",
		Short: "Grade homework by running its Go tests",
		Long: `hwgrade runs the graded test suites of a homework, prints the test run and
computes a weighted grade from the questions the tests belong to.

Examples:
  hwgrade run hw1
  hwgrade run hw5 --repeat 3 --show-successes=false
  hwgrade replay hw1 events.json
  hwgrade questions hw5
  hwgrade serve --addr :8080`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			log.SetOutput(cmd.ErrOrStderr())
			config, err := etc.Load(o.configFile)
			if err != nil {
				return err
			}
			o.config = config
			if o.logLevel != "" {
				return etc.SetLogLevel(o.logLevel)
			}
			return nil
		},
	}
	cmd.PersistentFlags().StringVarP(&o.configFile, "config", "c", "",
		"config file (default is ./config.yaml, then /etc/hwgrade/config.yaml)")
	cmd.PersistentFlags().StringVar(&o.logLevel, "log-level", "",
		"log level: debug, info, warn, error, fatal or panic")

	cmd.AddCommand(
		newRunCmd(o),
		newReplayCmd(o),
		newQuestionsCmd(o),
		newHistoryCmd(o),
		newServeCmd(o),
		newTokenCmd(o),
	)
	return cmd
}

// Execute runs the hwgrade command with the arguments of the process.
func Execute(ctx context.Context) error {
	return NewRootCmd().ExecuteContext(ctx)
}
