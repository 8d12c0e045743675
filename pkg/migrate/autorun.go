package migrate

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/angelmondragon/storefront-backend/pkg/config"
	"github.com/angelmondragon/storefront-backend/pkg/db"
	"github.com/angelmondragon/storefront-backend/pkg/logger"
)

// MaybeRunDev applies the goose migrations on boot for a dev, SQL-backed
// document store with auto-migrate on. Binaries started outside the repo have
// no migrations directory; that case is logged and skipped.
func MaybeRunDev(ctx context.Context, cfg *config.Config, logg *logger.Logger, client *db.Client) error {
	return runDev(ctx, cfg, logg, client, DefaultDir)
}

func runDev(ctx context.Context, cfg *config.Config, logg *logger.Logger, client *db.Client, dir string) error {
	if !cfg.App.IsDev() || !cfg.Storage.AutoMigrate || !cfg.Storage.IsSQL() {
		return nil
	}
	if logg == nil {
		logg = logger.Nop()
	}
	ctx = logg.WithFields(ctx, map[string]any{"dir": dir, "driver": client.Driver()})

	if _, err := os.Stat(dir); errors.Is(err, fs.ErrNotExist) {
		logg.Warn(ctx, "migrations directory missing, skipping dev auto-run")
		return nil
	}

	sqlDB, err := client.DB().DB()
	if err != nil {
		return fmt.Errorf("extracting sql.DB: %w", err)
	}
	logg.Info(ctx, "applying document migrations (dev auto-run)")
	if err := Run(ctx, sqlDB, client.Driver(), dir, "up"); err != nil {
		return fmt.Errorf("running goose up: %w", err)
	}
	return nil
}
