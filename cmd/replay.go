package cmd

import (
	"path/filepath"

	"hwgrade/runner"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func newReplayCmd(o *options) *cobra.Command {
	var repeat int
	flags := &listenerFlags{}

	cmd := &cobra.Command{
		Use:   "replay <homework> <events.json>...",
		Short: "Grade saved test events",
		Long: `Grade the output of "go test -json" saved in files, one iteration per file.
Use "-" to read the events from the standard input.

Examples:
  go test -json ./homework/... > events.json
  hwgrade replay hw1 events.json
  go test -json ./homework/... | hwgrade replay hw1 -`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			homework, paths := args[0], args[1:]

			var source runner.Source
			if len(paths) == 1 && paths[0] == "-" {
				source = runner.NewReaderSource(cmd.InOrStdin())
				if repeat > 1 {
					return errors.New("events from the standard input can be replayed only once")
				}
			} else {
				abs := make([]string, 0, len(paths))
				for _, p := range paths {
					if p == "-" {
						return errors.New("\"-\" cannot be mixed with event files")
					}
					a, err := filepath.Abs(p)
					if err != nil {
						return errors.Wrapf(err, "resolve %s", p)
					}
					abs = append(abs, a)
				}
				source = runner.NewFileSource(osfs.New("/"), abs...)
			}
			if repeat <= 0 {
				repeat = len(paths)
			}
			return o.grade(cmd.Context(), cmd, homework, source, repeat, flags)
		},
	}
	cmd.Flags().IntVarP(&repeat, "repeat", "r", 0, "number of iterations (default is one per file)")
	flags.register(cmd)
	return cmd
}
