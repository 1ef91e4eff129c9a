package service

import (
	"context"
	"sort"
	"strings"

	"albi-mall-assistant-be/internal/constant"
	"albi-mall-assistant-be/internal/dto"
	"albi-mall-assistant-be/internal/mapper"
	"albi-mall-assistant-be/internal/repository/contract"
	"albi-mall-assistant-be/internal/repository/specification"
	"albi-mall-assistant-be/pkg/catalog"
)

const defaultProductLimit = 20

type ICatalogService interface {
	ListProducts(ctx context.Context, request *dto.ProductListRequest) (*dto.ProductListResponse, error)
	SuggestedQueries(ctx context.Context) []constant.SuggestedQuery
}

type catalogService struct {
	catalog     *catalog.Catalog
	productRepo contract.ProductRepository
	mapper      *mapper.ProductMapper
}

// NewCatalogService lists from productRepo when one is given, otherwise from
// the in-memory catalog.
func NewCatalogService(c *catalog.Catalog, productRepo contract.ProductRepository) ICatalogService {
	return &catalogService{
		catalog:     c,
		productRepo: productRepo,
		mapper:      mapper.NewProductMapper(),
	}
}

func (s *catalogService) ListProducts(ctx context.Context, request *dto.ProductListRequest) (*dto.ProductListResponse, error) {
	limit := request.Limit
	if limit <= 0 {
		limit = defaultProductLimit
	}

	var (
		products []catalog.Product
		total    int
		err      error
	)
	if s.productRepo != nil {
		products, total, err = s.listFromRepository(ctx, request, limit)
		if err != nil {
			return nil, err
		}
	} else {
		products, total = s.listFromCatalog(request, limit)
	}

	res := &dto.ProductListResponse{
		Products: make([]dto.ProductDTO, 0, len(products)),
		Total:    total,
	}
	for _, p := range products {
		res.Products = append(res.Products, s.mapper.ToDTO(p))
	}
	res.Count = len(res.Products)
	return res, nil
}

func (s *catalogService) listFromRepository(ctx context.Context, request *dto.ProductListRequest, limit int) ([]catalog.Product, int, error) {
	specs := []specification.Specification{
		specification.Available{},
		specification.ByCategory{Category: request.Category},
	}
	if request.Brand != "" {
		specs = append(specs, specification.ByBrand{Brand: request.Brand})
	}

	total, err := s.productRepo.Count(ctx, specs...)
	if err != nil {
		return nil, 0, err
	}

	if field, desc, ok := sortField(request.Sort); ok {
		specs = append(specs, specification.OrderBy{Field: field, Desc: desc})
	}
	specs = append(specs, specification.Pagination{Limit: limit, Offset: request.Offset})

	products, err := s.productRepo.FindAll(ctx, specs...)
	if err != nil {
		return nil, 0, err
	}
	return products, int(total), nil
}

func (s *catalogService) listFromCatalog(request *dto.ProductListRequest, limit int) ([]catalog.Product, int) {
	all := s.catalog.ByCategory(request.Category, 0)

	products := all[:0]
	for _, p := range all {
		if p.Availability == "out_of_stock" {
			continue
		}
		if request.Brand != "" && !strings.EqualFold(p.Brand, strings.TrimSpace(request.Brand)) {
			continue
		}
		products = append(products, p)
	}

	if field, desc, ok := sortField(request.Sort); ok {
		sort.SliceStable(products, func(i, j int) bool {
			if desc {
				return lessBy(field, products[j], products[i])
			}
			return lessBy(field, products[i], products[j])
		})
	}

	total := len(products)
	if request.Offset >= total {
		return nil, total
	}
	products = products[request.Offset:]
	if len(products) > limit {
		products = products[:limit]
	}
	return products, total
}

// sortField maps "price" / "-price" style keys to a column and direction.
func sortField(key string) (field string, desc bool, ok bool) {
	if key == "" {
		return "", false, false
	}
	desc = strings.HasPrefix(key, "-")
	field = strings.TrimPrefix(key, "-")
	switch field {
	case "price", "rating", "name":
		return field, desc, true
	}
	return "", false, false
}

func lessBy(field string, a, b catalog.Product) bool {
	switch field {
	case "price":
		return a.Price < b.Price
	case "rating":
		return a.Rating < b.Rating
	default:
		return a.Name < b.Name
	}
}

func (s *catalogService) SuggestedQueries(ctx context.Context) []constant.SuggestedQuery {
	return constant.SuggestedQueries
}
