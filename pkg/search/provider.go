package search

import (
	"context"

	"albi-mall-assistant-be/pkg/catalog"
)

// Provider returns ranked product documents for a text query.
type Provider interface {
	Search(ctx context.Context, query string, limit int) ([]catalog.Product, error)
}
