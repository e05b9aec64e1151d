package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/LamineSayad1/agriconnect/internal/domain/model"
	repo "github.com/LamineSayad1/agriconnect/internal/repository"

	"gorm.io/gorm"
)

type ProductGormRepository struct {
	db *gorm.DB
}

func NewProductGormRepository(db *gorm.DB) *ProductGormRepository {
	return &ProductGormRepository{db: db}
}

func (r *ProductGormRepository) ListPublic(ctx context.Context, q repo.ProductListQuery) ([]model.Product, int64, error) {
	base := r.db.WithContext(ctx).Model(&model.Product{}).
		Where("products.is_available = ?", true)

	//キーワード（名前・説明の部分一致）
	if s := strings.TrimSpace(q.Q); s != "" {
		like := "%" + s + "%"
		base = base.Where("products.name ILIKE ? OR products.description ILIKE ?", like, like)
	}

	if q.Category != "" {
		base = base.Where("products.category = ?", q.Category)
	}
	if q.MinPrice != nil {
		base = base.Where("products.price >= ?", *q.MinPrice)
	}
	if q.MaxPrice != nil {
		base = base.Where("products.price <= ?", *q.MaxPrice)
	}

	//supply-market用：販売者ロールで絞る
	if q.SellerType != "" {
		base = base.Joins("JOIN profiles ON profiles.id = products.seller_id").
			Where("profiles.user_type = ?", q.SellerType)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return []model.Product{}, 0, err
	}

	switch q.Sort {
	case "price_asc":
		base = base.Order("products.price asc")
	case "price_desc":
		base = base.Order("products.price desc")
	case "rating":
		base = base.Order("products.rating desc")
	default:
		base = base.Order("products.created_at desc")
	}

	var items []model.Product
	offset := (q.Page - 1) * q.Limit
	if err := base.Limit(q.Limit).Offset(offset).Find(&items).Error; err != nil {
		return []model.Product{}, 0, err
	}

	return items, total, nil
}

func (r *ProductGormRepository) ListBySellerID(ctx context.Context, sellerID string) ([]model.Product, error) {
	var items []model.Product
	err := r.db.WithContext(ctx).
		Where("seller_id = ?", sellerID).
		Order("created_at desc").
		Find(&items).Error
	if err != nil {
		return []model.Product{}, err
	}
	return items, nil
}

func (r *ProductGormRepository) FindByID(ctx context.Context, id string) (model.Product, error) {
	var p model.Product
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Product{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Product{}, err
	}
	return p, nil
}

func (r *ProductGormRepository) Create(ctx context.Context, p model.Product) (model.Product, error) {
	if err := r.db.WithContext(ctx).Create(&p).Error; err != nil {
		return model.Product{}, err
	}
	return p, nil
}

func (r *ProductGormRepository) Update(ctx context.Context, p model.Product) error {
	res := r.db.WithContext(ctx).Model(&model.Product{}).
		Where("id = ?", p.ID).
		Updates(map[string]interface{}{
			"name":         p.Name,
			"description":  p.Description,
			"category":     p.Category,
			"price":        p.Price,
			"unit":         p.Unit,
			"is_available": p.IsAvailable,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *ProductGormRepository) SoftDelete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Product{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *ProductGormRepository) UpdateRating(ctx context.Context, id string, rating float64, reviewCount int64) error {
	res := r.db.WithContext(ctx).Model(&model.Product{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"rating":       rating,
			"review_count": reviewCount,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
