package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"smig.dev/cli/internal/core/artefact"
	"smig.dev/cli/internal/infrastructure/manifest"
)

// NewClassifyCommand creates the classify command
func NewClassifyCommand(container *CLIContainer) *cobra.Command {
	return &cobra.Command{
		Use:   "classify <manifest>",
		Short: "Classify the types declared in a single manifest",
		Long: `Classify prints one line per declared type with the artefact category it
belongs to, or "ignored". Nothing is registered or saved.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			types, err := manifest.ParseFile(args[0])
			if err != nil {
				return err
			}

			for _, t := range types {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", t.Name(), classify(container.Registry, t))
			}
			return nil
		},
	}
}

// classify returns the category that claims t, or "ignored"
func classify(registry *artefact.Registry, t artefact.TypeDescriptor) string {
	if h, ok := registry.Classify(t); ok {
		return h.Type()
	}
	return "ignored"
}
