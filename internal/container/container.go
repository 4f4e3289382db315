package container

import (
	"context"
	"fmt"

	"titrate/adapters/archive"
	"titrate/adapters/excel"
	"titrate/adapters/plotting"
	"titrate/app"
	"titrate/internal"
	"titrate/internal/config"
	"titrate/internal/errors"
	"titrate/ports"

	"github.com/jmoiron/sqlx"
)

// Container holds all application dependencies and manages their lifecycle
type Container struct {
	Config *config.Config
	Logger *internal.Logger

	// Infrastructure
	DB *sqlx.DB

	// Ports
	Archive ports.RunArchive
	Sinks   []ports.ChartSink

	// Services
	CurveService *app.CurveService
}

// New creates a new dependency injection container
func New(cfg *config.Config, logger *internal.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if logger == nil {
		logger = internal.NewDefaultLogger()
	}
	return &Container{
		Config: cfg,
		Logger: logger,
	}, nil
}

// Init connects the archive when configured, builds the chart sinks and the curve service
func (c *Container) Init(ctx context.Context) error {
	if err := c.initArchive(ctx); err != nil {
		return errors.Wrap(err, "failed to initialize run archive")
	}

	if err := c.initSinks(); err != nil {
		return errors.Wrap(err, "failed to initialize chart sinks")
	}

	c.CurveService = app.NewCurveService(c.Config.Workers, c.Logger, c.Archive, c.Sinks...)
	c.Logger.Debug("container initialized: %d sinks, archive enabled=%t", len(c.Sinks), c.Archive != nil)
	return nil
}

// initArchive opens the database and the run repository
func (c *Container) initArchive(ctx context.Context) error {
	if !c.Config.Database.Enabled() {
		return nil
	}
	db, err := archive.Open(ctx, c.Config.Database.Driver, c.Config.Database.URL)
	if err != nil {
		return err
	}
	c.DB = db
	c.Archive = archive.NewRunRepository(db)
	c.Logger.Info("archiving runs to %s database", c.Config.Database.Driver)
	return nil
}

// initSinks creates one sink per configured output file
func (c *Container) initSinks() error {
	c.Sinks = nil
	if path := c.Config.Output.PlotFile; path != "" {
		if !plotting.SupportedFormat(path) {
			return errors.ConfigInvalid("PLOT_OUTPUT %q has no supported image extension", path)
		}
		c.Sinks = append(c.Sinks, plotting.NewRenderer(path, c.Logger))
	}
	if path := c.Config.Output.ExcelFile; path != "" {
		c.Sinks = append(c.Sinks, excel.NewWorkbookWriter(path, c.Logger))
	}
	return nil
}

// Shutdown gracefully shuts down all components
func (c *Container) Shutdown(ctx context.Context) error {
	// Close database connection
	if c.DB != nil {
		return c.DB.Close()
	}
	return nil
}
