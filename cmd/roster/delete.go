package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/noah-isme/sma-roster/internal/roster"
	appErrors "github.com/noah-isme/sma-roster/pkg/errors"
)

func newDeleteCmd(opts *rootOptions) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete ID [ID...]",
		Short: "Delete one or more students by id",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var saver roster.SaveCoordinator
			confirmation, err := saver.ConfirmIDs(args)
			if err != nil {
				return err
			}

			confirm := roster.Confirmer(roster.AlwaysConfirm)
			if !yes {
				confirm = promptConfirmer(cmd.InOrStdin(), cmd.ErrOrStderr())
			}
			if !confirm.Confirm(confirmation.Prompt) {
				return roster.ErrCancelled
			}

			s, err := opts.open()
			if err != nil {
				return err
			}
			defer s.close()

			env, err := s.client.Do(cmd.Context(), confirmation.Descriptor)
			if err != nil {
				return err
			}
			if !env.Success() {
				return appErrors.Clone(appErrors.ErrApplication, env.Message)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), env.Message)
			return err
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	return cmd
}

// promptConfirmer asks on out and accepts y or yes read from in. An answer cut off by
// EOF is still read; empty input counts as no.
func promptConfirmer(in io.Reader, out io.Writer) roster.ConfirmFunc {
	reader := bufio.NewReader(in)
	return func(prompt string) bool {
		fmt.Fprintf(out, "%s [y/N] ", prompt)
		line, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return false
		}
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y", "yes":
			return true
		}
		return false
	}
}
