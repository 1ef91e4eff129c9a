package service

import (
	"context"
	"errors"
	"testing"

	"albi-mall-assistant-be/internal/dto"
	"albi-mall-assistant-be/internal/repository/specification"
	"albi-mall-assistant-be/pkg/catalog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingProductRepo struct {
	products  []catalog.Product
	total     int64
	err       error
	findSpecs []specification.Specification
	countSpec []specification.Specification
}

func (r *recordingProductRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]catalog.Product, error) {
	r.findSpecs = specs
	return r.products, r.err
}

func (r *recordingProductRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	r.countSpec = specs
	return r.total, r.err
}

func (r *recordingProductRepo) UpsertMany(ctx context.Context, products []catalog.Product) error {
	return nil
}

func listingCatalog(t *testing.T) *catalog.Catalog {
	c, err := catalog.New([]catalog.Product{
		{ID: "t-1", Name: "Bedford Tote", Brand: "Michael Kors", Category: "bags", Subcategory: "tote", Price: 120, Rating: 4.1, Color: "black"},
		{ID: "t-2", Name: "Jet Set Tote", Brand: "Michael Kors", Category: "bags", Subcategory: "tote", Price: 80, Rating: 4.8, Color: "brown"},
		{ID: "t-3", Name: "Astor Tote", Brand: "Coach", Category: "bags", Subcategory: "tote", Price: 200, Rating: 3.9, Color: "red"},
		{ID: "w-1", Name: "Slim Wallet", Brand: "Michael Kors", Category: "accessories", Subcategory: "wallet", Price: 60, Rating: 4.5, Color: "black"},
	})
	require.NoError(t, err)
	return c
}

func TestListProducts_RepositorySpecs(t *testing.T) {
	repo := &recordingProductRepo{
		products: []catalog.Product{{ID: "t-2", Name: "Jet Set Tote", Brand: "Michael Kors", Price: 80}},
		total:    7,
	}
	svc := NewCatalogService(listingCatalog(t), repo)

	res, err := svc.ListProducts(context.Background(), &dto.ProductListRequest{
		Category: "tote",
		Brand:    "Michael Kors",
		Sort:     "-price",
		Limit:    5,
		Offset:   10,
	})
	require.NoError(t, err)

	assert.Equal(t, 1, res.Count)
	assert.Equal(t, 7, res.Total)
	assert.Equal(t, "t-2", res.Products[0].ID)

	assert.Equal(t, []specification.Specification{
		specification.Available{},
		specification.ByCategory{Category: "tote"},
		specification.ByBrand{Brand: "Michael Kors"},
	}, repo.countSpec)
	assert.Equal(t, []specification.Specification{
		specification.Available{},
		specification.ByCategory{Category: "tote"},
		specification.ByBrand{Brand: "Michael Kors"},
		specification.OrderBy{Field: "price", Desc: true},
		specification.Pagination{Limit: 5, Offset: 10},
	}, repo.findSpecs)
}

func TestListProducts_RepositoryDefaults(t *testing.T) {
	repo := &recordingProductRepo{}
	svc := NewCatalogService(listingCatalog(t), repo)

	_, err := svc.ListProducts(context.Background(), &dto.ProductListRequest{})
	require.NoError(t, err)

	assert.Equal(t, []specification.Specification{
		specification.Available{},
		specification.ByCategory{},
		specification.Pagination{Limit: defaultProductLimit},
	}, repo.findSpecs)
}

func TestListProducts_RepositoryError(t *testing.T) {
	repo := &recordingProductRepo{err: errors.New("connection refused")}
	svc := NewCatalogService(listingCatalog(t), repo)

	res, err := svc.ListProducts(context.Background(), &dto.ProductListRequest{Category: "tote"})
	assert.Error(t, err)
	assert.Nil(t, res)
}

func TestListProducts_InMemory(t *testing.T) {
	svc := NewCatalogService(listingCatalog(t), nil)

	res, err := svc.ListProducts(context.Background(), &dto.ProductListRequest{Category: "tote", Brand: "michael kors", Sort: "price"})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Total)
	require.Len(t, res.Products, 2)
	assert.Equal(t, "t-2", res.Products[0].ID)
	assert.Equal(t, "t-1", res.Products[1].ID)

	res, err = svc.ListProducts(context.Background(), &dto.ProductListRequest{Category: "tote", Sort: "-rating", Limit: 1, Offset: 1})
	require.NoError(t, err)
	assert.Equal(t, 3, res.Total)
	require.Len(t, res.Products, 1)
	assert.Equal(t, "t-1", res.Products[0].ID)

	res, err = svc.ListProducts(context.Background(), &dto.ProductListRequest{Offset: 50})
	require.NoError(t, err)
	assert.Equal(t, 4, res.Total)
	assert.Empty(t, res.Products)
	assert.Equal(t, 0, res.Count)
}
