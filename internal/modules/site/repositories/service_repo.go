package repositories

import (
	"context"

	"gorm.io/gorm"

	"github.com/vedixlab/vedixlab-backend/internal/modules/site/models"
)

type ServiceRepo interface {
	Create(ctx context.Context, service *models.ServiceOffering) error
	GetByID(ctx context.Context, id string) (*models.ServiceOffering, error)
	List(ctx context.Context) ([]models.ServiceOffering, error)
	Update(ctx context.Context, service *models.ServiceOffering) error
	Delete(ctx context.Context, id string) error
}

type serviceRepo struct {
	db *gorm.DB
}

func NewServiceRepo(db *gorm.DB) ServiceRepo {
	return &serviceRepo{db: db}
}

func (r *serviceRepo) Create(ctx context.Context, service *models.ServiceOffering) error {
	return r.db.WithContext(ctx).Create(service).Error
}

func (r *serviceRepo) GetByID(ctx context.Context, id string) (*models.ServiceOffering, error) {
	uid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	var service models.ServiceOffering
	if err := r.db.WithContext(ctx).First(&service, "id = ?", uid).Error; err != nil {
		return nil, err
	}
	return &service, nil
}

func (r *serviceRepo) List(ctx context.Context) ([]models.ServiceOffering, error) {
	var services []models.ServiceOffering
	err := r.db.WithContext(ctx).
		Order("sort_order ASC").
		Order("created_at ASC").
		Find(&services).Error
	return services, err
}

func (r *serviceRepo) Update(ctx context.Context, service *models.ServiceOffering) error {
	return r.db.WithContext(ctx).Save(service).Error
}

func (r *serviceRepo) Delete(ctx context.Context, id string) error {
	uid, err := parseID(id)
	if err != nil {
		return err
	}
	return deleteByID(r.db.WithContext(ctx), &models.ServiceOffering{}, uid)
}
