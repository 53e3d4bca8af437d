package repositories

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vedixlab/vedixlab-backend/internal/modules/site/models"
)

type PricingRepo interface {
	Create(ctx context.Context, plan *models.PricingPlan) error
	GetByID(ctx context.Context, id string) (*models.PricingPlan, error)
	List(ctx context.Context) ([]models.PricingPlan, error)
	Update(ctx context.Context, plan *models.PricingPlan) error
	Delete(ctx context.Context, id string) error
}

type pricingRepo struct {
	db *gorm.DB
}

func NewPricingRepo(db *gorm.DB) PricingRepo {
	return &pricingRepo{db: db}
}

func (r *pricingRepo) Create(ctx context.Context, plan *models.PricingPlan) error {
	return r.db.WithContext(ctx).Create(plan).Error
}

func (r *pricingRepo) GetByID(ctx context.Context, id string) (*models.PricingPlan, error) {
	uid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	var plan models.PricingPlan
	if err := r.db.WithContext(ctx).First(&plan, "id = ?", uid).Error; err != nil {
		return nil, err
	}
	return &plan, nil
}

// List returns plans by display order; ties keep insertion order.
func (r *pricingRepo) List(ctx context.Context) ([]models.PricingPlan, error) {
	var plans []models.PricingPlan
	err := r.db.WithContext(ctx).
		Order("sort_order ASC").
		Order("created_at ASC").
		Find(&plans).Error
	return plans, err
}

func (r *pricingRepo) Update(ctx context.Context, plan *models.PricingPlan) error {
	return r.db.WithContext(ctx).Save(plan).Error
}

func (r *pricingRepo) Delete(ctx context.Context, id string) error {
	uid, err := parseID(id)
	if err != nil {
		return err
	}
	return deleteByID(r.db.WithContext(ctx), &models.PricingPlan{}, uid)
}

// parseID treats malformed ids as missing rows so callers answer 404.
func parseID(id string) (uuid.UUID, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, gorm.ErrRecordNotFound
	}
	return uid, nil
}

func deleteByID(db *gorm.DB, model interface{}, id uuid.UUID) error {
	result := db.Delete(model, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
