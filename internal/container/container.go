package container

import (
	"context"
	"fmt"
	"log"
	"time"

	"happydash/adapters/chart"
	"happydash/adapters/datareadiness/coercer"
	"happydash/adapters/excel"
	"happydash/adapters/postgres"
	"happydash/internal/analysis"
	"happydash/internal/config"
	"happydash/internal/dataset"

	"github.com/jmoiron/sqlx"
)

// Container holds all application dependencies and manages their lifecycle
type Container struct {
	Config *config.Config

	// Data
	DB      *sqlx.DB
	Records *postgres.RecordRepository
	Loader  *dataset.Loader
	Store   *dataset.Store

	// Analysis
	Memo   *analysis.Memo
	Runner *analysis.Runner

	// Presentation
	Renderer *chart.Renderer
}

// New creates a new dependency injection container. The dataset is not
// read until the first request needs it. A configured database URL takes
// precedence over the data file.
func New(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	c := &Container{Config: cfg}
	c.Loader = dataset.NewLoader(coercer.DefaultCoercionConfig())

	source := cfg.Data.File
	if cfg.Database.URL != "" {
		db, err := postgres.Connect(context.Background(), cfg.Database.Driver, cfg.Database.URL)
		if err != nil {
			return nil, err
		}
		c.DB = db
		c.Records = postgres.NewRecordRepository(db)
		c.Store = dataset.NewRecordStore(c.Loader, c.Records)
		source = c.Records.Name()
	} else {
		reader := excel.DefaultReaderConfig(cfg.Data.File)
		reader.Sheet = cfg.Data.Sheet
		c.Store = dataset.NewStore(c.Loader, reader)
	}

	if cfg.Memo.Enabled {
		c.Memo = analysis.NewMemo(cfg.Memo.MaxEntries)
	}
	c.Runner = analysis.NewRunner(c.Store, cfg.Analysis, c.Memo)
	c.Renderer = chart.NewRenderer(cfg.Charts)

	log.Printf("Container initialized for %s (memo enabled: %t)", source, cfg.Memo.Enabled)
	return c, nil
}

// Warm loads the dataset eagerly so the first request does not pay for it
func (c *Container) Warm(ctx context.Context) error {
	start := time.Now()
	info, err := c.Store.Info(ctx)
	if err != nil {
		return err
	}
	log.Printf("Dataset %s ready: %d rows, %d countries, %d-%d (%.2fms)",
		info.Source, info.Rows, info.Countries, info.YearMin, info.YearMax,
		float64(time.Since(start).Nanoseconds())/1e6)
	return nil
}

// Shutdown releases cached results and the database connection
func (c *Container) Shutdown(ctx context.Context) error {
	log.Printf("Shutting down container...")
	c.Memo.Reset()
	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			return fmt.Errorf("failed to close database: %w", err)
		}
	}
	log.Printf("Container shutdown complete")
	return nil
}
