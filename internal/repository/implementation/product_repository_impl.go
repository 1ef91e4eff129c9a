package implementation

import (
	"context"
	"fmt"

	"albi-mall-assistant-be/internal/mapper"
	"albi-mall-assistant-be/internal/model"
	"albi-mall-assistant-be/internal/repository/contract"
	"albi-mall-assistant-be/internal/repository/scope"
	"albi-mall-assistant-be/internal/repository/specification"
	"albi-mall-assistant-be/pkg/catalog"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProductRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ProductMapper
}

func NewProductRepository(db *gorm.DB) contract.ProductRepository {
	return &ProductRepositoryImpl{
		db:     db,
		mapper: mapper.NewProductMapper(),
	}
}

func (r *ProductRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *ProductRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]catalog.Product, error) {
	var models []*model.Product
	query := r.applySpecifications(r.db.WithContext(ctx).Scopes(scope.CatalogOrder), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, fmt.Errorf("find products: %w", err)
	}

	products := make([]catalog.Product, 0, len(models))
	for _, m := range models {
		products = append(products, r.mapper.ToCatalog(m))
	}
	return products, nil
}

func (r *ProductRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Product{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// UpsertMany inserts the products, overwriting rows that share an id.
func (r *ProductRepositoryImpl) UpsertMany(ctx context.Context, products []catalog.Product) error {
	if len(products) == 0 {
		return nil
	}
	models := make([]*model.Product, 0, len(products))
	for _, p := range products {
		models = append(models, r.mapper.ToModel(p))
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).
		CreateInBatches(models, 100).Error
}
