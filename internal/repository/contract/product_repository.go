package contract

import (
	"context"

	"albi-mall-assistant-be/internal/repository/specification"
	"albi-mall-assistant-be/pkg/catalog"
)

type ProductRepository interface {
	FindAll(ctx context.Context, specs ...specification.Specification) ([]catalog.Product, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	UpsertMany(ctx context.Context, products []catalog.Product) error
}
