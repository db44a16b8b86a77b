package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/ziadkadry99/iodocs/internal/config"
	"github.com/ziadkadry99/iodocs/internal/db"
	"github.com/ziadkadry99/iodocs/internal/pages"
)

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `iodocs init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", cfgFile, err)
	}
	return cfg, nil
}

// loadIndex returns the page index: from the database when one is
// configured and populated, otherwise from the index file.
func loadIndex(ctx context.Context, cfg *config.Config) (*pages.Index, error) {
	if cfg.Pages.Database != "" {
		database, err := db.Open(cfg.Pages.Database)
		if err != nil {
			return nil, err
		}
		defer database.Close()

		idx, err := pages.NewStore(database).Index(ctx)
		switch {
		case err == nil:
			logger.Debug("page index loaded", "source", cfg.Pages.Database, "pages", idx.Len())
			return idx, nil
		case errors.Is(err, pages.ErrNoPages) && cfg.Pages.Index != "":
			logger.Warn("page database is empty, falling back to index file",
				"database", cfg.Pages.Database, "index", cfg.Pages.Index)
		default:
			return nil, fmt.Errorf("loading pages from %s: %w", cfg.Pages.Database, err)
		}
	}

	idx, err := pages.LoadFile(cfg.Pages.Index)
	if err != nil {
		return nil, fmt.Errorf("%w\nPoint pages.index at a YAML or JSON page list", err)
	}
	logger.Debug("page index loaded", "source", cfg.Pages.Index, "pages", idx.Len())
	return idx, nil
}
