package cmd

import (
	"fmt"

	"hwgrade/utils"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func newTokenCmd(o *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token <grader>",
		Short: "Issue an access token for the HTTP server",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			conf := o.config.Server
			if conf.TokenSecret == "" {
				return errors.New("server.token_secret must be set to issue tokens")
			}
			utils.SetTokenSecret(conf.TokenSecret)
			token, err := utils.GenerateToken(args[0], conf.TokenExpiration)
			if err != nil {
				return errors.Wrap(err, "generate token")
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), token)
			return err
		},
	}
	return cmd
}
