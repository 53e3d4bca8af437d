package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/vedixlab/vedixlab-backend/internal/modules/site/models"
)

type ContentRepo interface {
	List(ctx context.Context) ([]models.ContentSection, error)
	GetBySection(ctx context.Context, section string) (*models.ContentSection, error)
	// Upsert loads the row for section (or starts a new one), runs apply on it and persists it.
	Upsert(ctx context.Context, section string, apply func(*models.ContentSection)) (*models.ContentSection, error)
}

type contentRepo struct {
	db *gorm.DB
}

func NewContentRepo(db *gorm.DB) ContentRepo {
	return &contentRepo{db: db}
}

func (r *contentRepo) List(ctx context.Context) ([]models.ContentSection, error) {
	var sections []models.ContentSection
	err := r.db.WithContext(ctx).Order("created_at ASC").Find(&sections).Error
	return sections, err
}

func (r *contentRepo) GetBySection(ctx context.Context, section string) (*models.ContentSection, error) {
	var content models.ContentSection
	if err := r.db.WithContext(ctx).Where("section = ?", section).First(&content).Error; err != nil {
		return nil, err
	}
	return &content, nil
}

func (r *contentRepo) Upsert(ctx context.Context, section string, apply func(*models.ContentSection)) (*models.ContentSection, error) {
	var content models.ContentSection
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("section = ?", section).First(&content).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			content = models.ContentSection{Section: section}
			apply(&content)
			return tx.Create(&content).Error
		case err != nil:
			return err
		}

		apply(&content)
		return tx.Save(&content).Error
	})
	if err != nil {
		return nil, err
	}
	return &content, nil
}
