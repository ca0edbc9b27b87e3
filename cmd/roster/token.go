package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/noah-isme/sma-roster/internal/service"
)

func newTokenCmd(opts *rootOptions) *cobra.Command {
	var operator string
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a bearer token for the student endpoint",
		Long: `token signs a token with $JWT_SECRET, valid for $JWT_EXPIRATION. Pass it to other
commands with --token or $ROSTER_TOKEN.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			token, expires, err := service.NewTokenService(cfg.JWT.Secret, cfg.JWT.Expiration).Issue(operator)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			fmt.Fprintf(cmd.ErrOrStderr(), "expires %s\n", expires.Format(time.RFC3339))
			return nil
		},
	}
	cmd.Flags().StringVar(&operator, "operator", "", "name recorded in the token")
	_ = cmd.MarkFlagRequired("operator")
	return cmd
}
