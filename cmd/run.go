package cmd

import (
	"context"
	"path/filepath"

	"hwgrade/runner"
	"hwgrade/service/git"

	"github.com/spf13/cobra"
)

func newRunCmd(o *options) *cobra.Command {
	var repeat int
	var filter, repo, ref string
	flags := &listenerFlags{}

	cmd := &cobra.Command{
		Use:   "run <homework> [-- go test flags]",
		Short: "Run and grade the tests of a homework",
		Long: `Run the tests of the homework packages with "go test -json" and grade them.

Arguments after "--" are passed to "go test" as they are. The command fails
if any test of any iteration failed.

Examples:
  hwgrade run hw1
  hwgrade run hw5 --run TestTypedMatrix
  hwgrade run hw5 -- -race
  hwgrade run hw1 --repo https://git.example.com/student/homework.git --ref main`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			homework := args[0]
			var extra []string
			if dash := cmd.ArgsLenAtDash(); dash >= 0 {
				extra = args[dash:]
			} else if len(args) > 1 {
				return cobra.MaximumNArgs(1)(cmd, args)
			}

			hw, err := o.config.Homework(homework)
			if err != nil {
				return err
			}
			conf := o.config.Runner
			ctx := cmd.Context()
			if conf.Timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, conf.Timeout)
				defer cancel()
			}

			source := &runner.CommandSource{
				GoBinary: conf.GoBinary,
				Args:     append([]string{}, conf.Args...),
				Packages: hw.Packages,
				Dir:      conf.Dir,
			}
			if filter != "" {
				source.Args = append(source.Args, "-run", filter)
			}
			source.Args = append(source.Args, extra...)
			if repeat <= 0 {
				repeat = conf.Repeat
			}
			if repo != "" {
				dir, cleanup, err := git.CloneTemp(ctx, repo, ref, git.Auth(o.config))
				if err != nil {
					return err
				}
				defer cleanup()
				source.Dir = filepath.Join(dir, conf.Dir)
			}
			return o.grade(ctx, cmd, homework, source, repeat, flags)
		},
	}
	cmd.Flags().IntVarP(&repeat, "repeat", "r", 0, "run the tests this many times (default from config)")
	cmd.Flags().StringVar(&filter, "run", "", "run only the tests matching this regular expression")
	cmd.Flags().StringVar(&repo, "repo", "", "clone the submission from this git repository and test it")
	cmd.Flags().StringVar(&ref, "ref", "", "branch of the repository to test (default branch if empty)")
	flags.register(cmd)
	return cmd
}
