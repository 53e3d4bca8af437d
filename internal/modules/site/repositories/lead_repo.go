package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/vedixlab/vedixlab-backend/internal/modules/site/models"
)

type LeadRepo interface {
	Create(ctx context.Context, lead *models.Lead) error
	GetByID(ctx context.Context, id string) (*models.Lead, error)
	List(ctx context.Context, filter models.LeadFilter) ([]models.Lead, error)
	UpdateStatus(ctx context.Context, id string, status models.LeadStatus) (*models.Lead, error)
	Delete(ctx context.Context, id string) error
	DeleteOlderThan(ctx context.Context, cutoff time.Time, statuses []models.LeadStatus) (int64, error)
}

type leadRepo struct {
	db *gorm.DB
}

func NewLeadRepo(db *gorm.DB) LeadRepo {
	return &leadRepo{db: db}
}

func (r *leadRepo) Create(ctx context.Context, lead *models.Lead) error {
	return r.db.WithContext(ctx).Create(lead).Error
}

func (r *leadRepo) GetByID(ctx context.Context, id string) (*models.Lead, error) {
	uid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	var lead models.Lead
	if err := r.db.WithContext(ctx).First(&lead, "id = ?", uid).Error; err != nil {
		return nil, err
	}
	return &lead, nil
}

// List returns newest leads first.
func (r *leadRepo) List(ctx context.Context, filter models.LeadFilter) ([]models.Lead, error) {
	query := r.db.WithContext(ctx).Model(&models.Lead{})
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var leads []models.Lead
	err := query.Order("created_at DESC").Find(&leads).Error
	return leads, err
}

func (r *leadRepo) UpdateStatus(ctx context.Context, id string, status models.LeadStatus) (*models.Lead, error) {
	uid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	result := r.db.WithContext(ctx).Model(&models.Lead{}).
		Where("id = ?", uid).
		Update("status", status)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *leadRepo) Delete(ctx context.Context, id string) error {
	uid, err := parseID(id)
	if err != nil {
		return err
	}
	return deleteByID(r.db.WithContext(ctx), &models.Lead{}, uid)
}

// DeleteOlderThan purges leads created before cutoff whose status is in statuses.
func (r *leadRepo) DeleteOlderThan(ctx context.Context, cutoff time.Time, statuses []models.LeadStatus) (int64, error) {
	if len(statuses) == 0 {
		return 0, nil
	}
	result := r.db.WithContext(ctx).
		Where("created_at < ? AND status IN ?", cutoff, statuses).
		Delete(&models.Lead{})
	return result.RowsAffected, result.Error
}
