package di

import (
	"fmt"
	"io"
	"log"
	"os"

	"smig.dev/cli/internal/core/artefact"
	"smig.dev/cli/internal/core/migration"
	"smig.dev/cli/internal/infrastructure/config"
	"smig.dev/cli/internal/interfaces/cli"
)

// Container holds all application dependencies
type Container struct {
	Config     config.Config
	Registry   *artefact.Registry
	Migrations *migration.Handler

	// CLI
	CLIContainer *cli.CLIContainer

	// Logger
	Logger *log.Logger
}

// NewContainer creates and configures the dependency injection container
func NewContainer() (*Container, error) {
	return NewContainerWithOutput(os.Stderr)
}

// NewContainerWithOutput creates a container whose logger writes to w
func NewContainerWithOutput(w io.Writer) (*Container, error) {
	container := &Container{
		Logger: log.New(w, "[smig] ", log.LstdFlags),
	}

	if err := container.initializeComponents(); err != nil {
		return nil, fmt.Errorf("failed to initialize components: %w", err)
	}

	return container, nil
}

// initializeComponents initializes all components with proper dependencies
func (c *Container) initializeComponents() error {
	cfg, err := config.Load()
	if err != nil {
		c.Logger.Printf("Warning: Failed to load configuration, using defaults: %v", err)
		cfg = config.Default()
	}
	c.Config = cfg

	c.Registry = artefact.NewRegistry(c.Logger, cfg.Debug)
	c.Migrations = migration.NewHandler(c.Logger)
	if err := c.Registry.RegisterHandler(c.Migrations); err != nil {
		return fmt.Errorf("failed to register migration handler: %w", err)
	}

	c.CLIContainer = &cli.CLIContainer{
		Config:   c.Config,
		Logger:   c.Logger,
		Registry: c.Registry,
	}

	return nil
}

// GetCLIContainer returns the CLI container
func (c *Container) GetCLIContainer() *cli.CLIContainer {
	return c.CLIContainer
}
