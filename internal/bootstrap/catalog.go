package bootstrap

import (
	"context"
	"fmt"
	"log"
	"time"

	"albi-mall-assistant-be/internal/config"
	"albi-mall-assistant-be/internal/repository/implementation"
	"albi-mall-assistant-be/internal/repository/specification"
	"albi-mall-assistant-be/pkg/catalog"
	"albi-mall-assistant-be/pkg/database"
)

// LoadCatalog reads the product set from the configured source.
func LoadCatalog(ctx context.Context, cfg *config.Config) (*catalog.Catalog, error) {
	var (
		products []catalog.Product
		err      error
	)

	switch cfg.Catalog.Source {
	case "", "sample":
		products, err = catalog.Sample()
	case "file":
		if cfg.Catalog.Path == "" {
			return nil, fmt.Errorf("CATALOG_PATH is required for the file catalog source")
		}
		products, err = catalog.LoadFile(cfg.Catalog.Path)
	case "postgres":
		products, err = loadFromPostgres(ctx, cfg.Catalog.DBConnection)
	default:
		return nil, fmt.Errorf("unsupported catalog source: %s", cfg.Catalog.Source)
	}
	if err != nil {
		return nil, fmt.Errorf("load %s catalog: %w", cfg.Catalog.Source, err)
	}

	c, err := catalog.New(products, cfg.Catalog.InCatalogBrands...)
	if err != nil {
		return nil, err
	}
	log.Printf("[INFO] Catalog loaded from %s: %d products, brands %v", cfg.Catalog.Source, c.Len(), c.Brands())
	return c, nil
}

func loadFromPostgres(ctx context.Context, dsn string) ([]catalog.Product, error) {
	if dsn == "" {
		return nil, fmt.Errorf("DB_CONNECTION_STRING is required for the postgres catalog source")
	}
	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		return nil, err
	}
	defer database.Close(db)

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	// Out-of-stock rows never reach the assistant.
	return implementation.NewProductRepository(db).FindAll(ctx, specification.Available{})
}
