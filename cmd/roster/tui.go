package main

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/noah-isme/sma-roster/internal/roster"
	"github.com/noah-isme/sma-roster/internal/tui"
)

func newTUICmd(opts *rootOptions) *cobra.Command {
	var title string
	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive roster screen",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.open()
			if err != nil {
				return err
			}
			defer s.close()

			model := tui.New(cmd.Context(), roster.NewScreen(s.cfg.Client.PageSize), s.client, tui.Options{
				Title:     title,
				PageSizes: s.cfg.Client.PageSizes,
				Logger:    s.logger,
			})
			program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
			_, err = program.Run()
			return err
		},
	}
	cmd.Flags().StringVar(&title, "title", "Student Roster", "screen title")
	return cmd
}
