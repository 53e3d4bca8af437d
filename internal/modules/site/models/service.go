package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ServiceOffering is one card in the services grid.
type ServiceOffering struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"_id"`
	Icon        string    `gorm:"type:text;not null" json:"icon"`
	Title       string    `gorm:"type:text;not null" json:"title"`
	Description string    `gorm:"type:text;not null" json:"description"`
	Image       string    `gorm:"type:text;not null" json:"image"`
	Order       int       `gorm:"column:sort_order;not null;default:0;index" json:"order"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (ServiceOffering) TableName() string {
	return "service_offerings"
}

func (s *ServiceOffering) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

type ServiceOfferingRequest struct {
	Icon        *string `json:"icon"`
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Image       *string `json:"image"`
	Order       *int    `json:"order"`
}

func (r *ServiceOfferingRequest) Apply(s *ServiceOffering) {
	if r.Icon != nil {
		s.Icon = *r.Icon
	}
	if r.Title != nil {
		s.Title = *r.Title
	}
	if r.Description != nil {
		s.Description = *r.Description
	}
	if r.Image != nil {
		s.Image = *r.Image
	}
	if r.Order != nil {
		s.Order = *r.Order
	}
}
