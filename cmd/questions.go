package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
)

func newQuestionsCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "questions <homework>",
		Short: "List the questions of a homework",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rubric, err := o.config.Rubric(args[0])
			if err != nil {
				return err
			}
			t := table.New().
				Border(lipgloss.NormalBorder()).
				Headers("ID", "QUESTION", "WEIGHT", "TESTS")
			for _, q := range rubric.Questions {
				t.Row(strconv.Itoa(q.ID), q.Name, strconv.FormatFloat(q.Weight, 'g', -1, 64),
					strings.Join(q.Tests, " "))
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s\n%d questions, %s points\n", t.Render(),
				len(rubric.Questions), strconv.FormatFloat(rubric.TotalWeight(), 'g', -1, 64))
			return err
		},
	}
}
