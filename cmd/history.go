package cmd

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"hwgrade/report"
	"hwgrade/service/db"
	"hwgrade/service/storage"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
)

func newHistoryCmd(o *options) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "history <homework>",
		Short: "List the past grade runs of a homework",
		Long: `List the past grade runs of a homework, newest first.

Runs are read from the database if it is enabled, otherwise from the reports
in the storage.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			homework := strings.ToLower(args[0])
			if _, err := o.config.Homework(homework); err != nil {
				return err
			}
			reports, err := o.history(cmd, homework, limit)
			if err != nil {
				return err
			}
			if len(reports) == 0 {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), "No grade runs")
				return err
			}
			t := table.New().
				Border(lipgloss.NormalBorder()).
				Headers("RUN", "STARTED", "GRADE", "PASSED", "TESTS")
			for _, r := range reports {
				grade := "-"
				if r.Graded {
					grade = strconv.FormatFloat(r.Grade, 'f', 2, 64) + "%"
				}
				t.Row(r.RunID.String(), r.StartedAt.Local().Format("2006-01-02 15:04:05"), grade,
					strconv.FormatBool(r.Passed), fmt.Sprintf("%d/%d", r.NumPassed, r.NumTests))
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), t.Render())
			return err
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "show at most this many runs, all if not positive")
	return cmd
}

func (o *options) history(cmd *cobra.Command, homework string, limit int) ([]*report.Report, error) {
	archive, err := o.archive(cmd.Context())
	if err != nil {
		return nil, err
	}
	return archive.History(cmd.Context(), homework, limit)
}

// archive returns the report archive of the configuration.
func (o *options) archive(ctx context.Context) (*report.Archive, error) {
	archive := &report.Archive{Prefix: o.config.Report.Prefix}
	if o.config.Database.Enabled {
		gdb, err := db.Open(o.config)
		if err != nil {
			return nil, err
		}
		archive.DB = gdb
	}
	provider, err := storage.FromConfig(o.config)
	if err != nil {
		return nil, err
	}
	archive.Provider = provider
	if o.config.Database.Redis.Enabled {
		rdb, err := db.OpenRedis(ctx, o.config)
		if err != nil {
			return nil, err
		}
		archive.Cache = rdb
	}
	return archive, nil
}
