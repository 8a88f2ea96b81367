package main

import (
	"errors"
	"fmt"

	"birdbook/internal/api"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
)

func newListCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print every bird in the collection",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := setup(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer e.close()

			birds, err := e.client.ListBirds(cmd.Context())
			if err != nil {
				return errors.New(api.Describe(err))
			}
			out := cmd.OutOrStdout()
			if len(birds) == 0 {
				fmt.Fprintln(out, "No birds yet.")
				return nil
			}
			t := table.New().
				Border(lipgloss.NormalBorder()).
				Headers("ID", "Common", "Scientific", "Size", "Habitat")
			for _, b := range birds {
				t.Row(b.ID, b.CommonName, b.ScientificName, b.Appearance.Size, b.HabitatSummary())
			}
			fmt.Fprintln(out, t.Render())
			fmt.Fprintf(out, "%d bird(s)\n", len(birds))
			return nil
		},
	}
}
