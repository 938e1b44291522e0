package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewListCommand creates the list command
func NewListCommand(container *CLIContainer) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show the saved artefact catalogue",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := container.Store()
			if err != nil {
				return err
			}

			catalogue, err := s.Load()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, t := range container.Registry.Types() {
				entries := catalogue.Artefacts[t]
				fmt.Fprintf(out, "%s (%d)\n", titleStyle.Render(t), len(entries))

				if len(entries) == 0 {
					impl, _ := container.Registry.DefaultImplementation(t)
					fmt.Fprintf(out, "  none saved, default implementation: %s\n", impl)
					continue
				}
				for _, e := range entries {
					if e.Source != "" {
						fmt.Fprintf(out, "  %s\t%s\n", e.Name, mutedStyle.Render(e.Source))
					} else {
						fmt.Fprintf(out, "  %s\n", e.Name)
					}
				}
			}
			return nil
		},
	}
}
