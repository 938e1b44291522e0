package cli

import (
	"context"
	"fmt"
	"log"
	"os"
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"

	"smig.dev/cli/internal/core/artefact"
	"smig.dev/cli/internal/infrastructure/config"
	"smig.dev/cli/internal/infrastructure/manifest"
	"smig.dev/cli/internal/infrastructure/store"
)

var (
	Version   = "dev"     // Overridden by ldflags
	BuildTime = "unknown" // Overridden by ldflags
)

// CLIContainer holds all the dependencies for CLI commands
type CLIContainer struct {
	Config   config.Config
	Logger   *log.Logger
	Registry *artefact.Registry
}

// Discoverer builds a manifest discoverer over dirs, or the configured dirs when empty
func (c *CLIContainer) Discoverer(dirs []string) *manifest.Discoverer {
	if len(dirs) == 0 {
		dirs = c.Config.ManifestDirs
	}
	return manifest.NewDiscoverer(dirs, c.Logger, c.Config.Debug)
}

// Store opens the artefact catalogue in the configured store directory
func (c *CLIContainer) Store() (*store.FileStore, error) {
	return store.NewFileStore(c.Config.StoreDir)
}

// NewRootCommand creates the smig root command
func NewRootCommand(container *CLIContainer) *cobra.Command {
	var rootCmd = &cobra.Command{
		Use:   "smig",
		Short: "smig - Migration artefact scanner",
		Long: `smig discovers candidate types declared in JSON or YAML manifests and
registers the ones that qualify as Migration artefacts.

A type qualifies when it declares the Migrate capability and exposes exactly
one public constructor, taking no arguments.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := applyConfigurationOverrides(cmd, container); err != nil {
				return fmt.Errorf("failed to apply configuration overrides: %w", err)
			}
			return nil
		},
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf("{{.Name}} version {{.Version}}\nBuild time: %s\nGo version: %s\nPlatform: %s/%s\n",
		BuildTime, goVersion(), runtime.GOOS, runtime.GOARCH))

	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug mode")
	rootCmd.PersistentFlags().String("store-dir", "", "Directory holding the artefact catalogue (default is $HOME/.smig)")
	rootCmd.PersistentFlags().StringSlice("dir", nil, "Manifest directory to scan (repeatable)")

	rootCmd.AddCommand(NewScanCommand(container))
	rootCmd.AddCommand(NewClassifyCommand(container))
	rootCmd.AddCommand(NewListCommand(container))
	rootCmd.AddCommand(NewBrowseCommand(container))

	return rootCmd
}

// Execute runs the root command and exits non-zero on failure
func Execute(ctx context.Context, container *CLIContainer) {
	if err := NewRootCommand(container).ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// goVersion returns the Go version used to build the binary
func goVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok {
		return info.GoVersion
	}
	return "unknown"
}

// applyConfigurationOverrides applies configuration overrides from command line flags
func applyConfigurationOverrides(cmd *cobra.Command, container *CLIContainer) error {
	flags := cmd.Flags()

	if flags.Changed("debug") {
		d, err := flags.GetBool("debug")
		if err != nil {
			return err
		}
		container.Config.Debug = d
		container.Registry.SetDebug(d)
	}

	if flags.Changed("store-dir") {
		dir, err := flags.GetString("store-dir")
		if err != nil {
			return err
		}
		container.Config.StoreDir = dir
	}

	if flags.Changed("dir") {
		dirs, err := flags.GetStringSlice("dir")
		if err != nil {
			return err
		}
		container.Config.ManifestDirs = dirs
	}

	return config.NewValidator().Validate(container.Config)
}
