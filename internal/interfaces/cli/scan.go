package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"smig.dev/cli/internal/core/artefact"
	"smig.dev/cli/internal/infrastructure/manifest"
	"smig.dev/cli/internal/infrastructure/store"
)

// ScanFlags holds command-line flags for the scan command
type ScanFlags struct {
	Save bool
}

// NewScanCommand creates the scan command
func NewScanCommand(container *CLIContainer) *cobra.Command {
	flags := &ScanFlags{}

	cmd := &cobra.Command{
		Use:   "scan [dirs...]",
		Short: "Discover manifests and register Migration artefacts",
		Long: `Scan walks the given directories (or the configured manifest directories)
for .json, .yaml and .yml manifests, classifies every declared type and prints
which ones were registered.

Examples:
  smig scan                     # Scan configured directories
  smig scan db/migrations       # Scan a specific directory
  smig scan --save              # Persist accepted artefacts to the catalogue`,
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := runScan(cmd.Context(), container, args)
			if err != nil {
				return err
			}

			fmt.Fprint(cmd.OutOrStdout(), renderReport(report, container.Registry))

			if flags.Save {
				s, err := container.Store()
				if err != nil {
					return err
				}
				if err := s.Save(store.FromRegistry(container.Registry)); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "\nSaved catalogue to %s\n", s.Path())
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&flags.Save, "save", false, "Persist accepted artefacts to the catalogue")

	return cmd
}

// runScan discovers manifests and classifies their types against a fresh registry state
func runScan(ctx context.Context, container *CLIContainer, dirs []string) (*artefact.ScanReport, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	types, err := container.Discoverer(dirs).Discover(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to discover manifests: %w", err)
	}

	container.Registry.Reset()
	report, err := container.Registry.Scan(ctx, manifest.Candidates(types))
	if err != nil {
		return nil, fmt.Errorf("scan interrupted: %w", err)
	}
	return report, nil
}
