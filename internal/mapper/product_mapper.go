package mapper

import (
	"albi-mall-assistant-be/internal/dto"
	"albi-mall-assistant-be/internal/model"
	"albi-mall-assistant-be/pkg/catalog"

	"gorm.io/datatypes"
)

type ProductMapper struct{}

func NewProductMapper() *ProductMapper {
	return &ProductMapper{}
}

func (m *ProductMapper) ToCatalog(p *model.Product) catalog.Product {
	if p == nil {
		return catalog.Product{}
	}
	return catalog.Product{
		ID:                 p.Id,
		Name:               p.Name,
		Brand:              p.Brand,
		Category:           p.Category,
		Subcategory:        p.Subcategory,
		Price:              p.Price,
		OriginalPrice:      p.OriginalPrice,
		DiscountPercentage: p.DiscountPercentage,
		Color:              p.Color,
		Colors:             []string(p.Colors),
		Size:               p.Size,
		Sizes:              []string(p.Sizes),
		Material:           p.Material,
		Description:        p.Description,
		Features:           []string(p.Features),
		Tags:               []string(p.Tags),
		Availability:       p.Availability,
		Rating:             p.Rating,
		ReviewsCount:       p.ReviewsCount,
	}
}

func (m *ProductMapper) ToModel(p catalog.Product) *model.Product {
	return &model.Product{
		Id:                 p.ID,
		Name:               p.Name,
		Brand:              p.Brand,
		Category:           p.Category,
		Subcategory:        p.Subcategory,
		Price:              p.Price,
		OriginalPrice:      p.OriginalPrice,
		DiscountPercentage: p.DiscountPercentage,
		Color:              p.Color,
		Colors:             datatypes.JSONSlice[string](p.Colors),
		Size:               p.Size,
		Sizes:              datatypes.JSONSlice[string](p.Sizes),
		Material:           p.Material,
		Description:        p.Description,
		Features:           datatypes.JSONSlice[string](p.Features),
		Tags:               datatypes.JSONSlice[string](p.Tags),
		Availability:       p.Availability,
		Rating:             p.Rating,
		ReviewsCount:       p.ReviewsCount,
	}
}

func (m *ProductMapper) ToDTO(p catalog.Product) dto.ProductDTO {
	return dto.ProductDTO{
		ID:                 p.ID,
		Name:               p.Name,
		Brand:              p.Brand,
		Category:           p.Category,
		Subcategory:        p.Subcategory,
		Price:              p.Price,
		OriginalPrice:      p.OriginalPrice,
		DiscountPercentage: p.DiscountPercentage,
		Color:              p.Color,
		Colors:             p.Colors,
		Size:               p.Size,
		Material:           p.Material,
		Description:        p.Description,
		Features:           p.Features,
		Availability:       p.Availability,
		Rating:             p.Rating,
		ReviewsCount:       p.ReviewsCount,
	}
}

func (m *ProductMapper) ToSummary(p catalog.Product) dto.ProductSummary {
	return dto.ProductSummary{
		ID:    p.ID,
		Name:  p.Name,
		Price: p.Price,
		Color: p.Color,
	}
}

func (m *ProductMapper) ToSummaries(products []catalog.Product) []dto.ProductSummary {
	out := make([]dto.ProductSummary, 0, len(products))
	for _, p := range products {
		out = append(out, m.ToSummary(p))
	}
	return out
}
