package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LeadStatus string

const (
	LeadStatusNew       LeadStatus = "new"
	LeadStatusContacted LeadStatus = "contacted"
	LeadStatusQualified LeadStatus = "qualified"
	LeadStatusConverted LeadStatus = "converted"
	LeadStatusLost      LeadStatus = "lost"
)

func (s LeadStatus) Valid() bool {
	switch s {
	case LeadStatusNew, LeadStatusContacted, LeadStatusQualified, LeadStatusConverted, LeadStatusLost:
		return true
	}
	return false
}

// Lead is a contact-form submission tracked through the sales pipeline.
type Lead struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"_id"`
	Name        string     `gorm:"type:text;not null" json:"name"`
	Email       string     `gorm:"type:text;not null;index" json:"email"`
	ProjectType string     `gorm:"type:text;not null" json:"projectType"`
	BudgetRange string     `gorm:"type:text;not null" json:"budgetRange"`
	Message     string     `gorm:"type:text;not null" json:"message"`
	Status      LeadStatus `gorm:"type:text;not null;default:'new';index" json:"status"`

	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (Lead) TableName() string {
	return "leads"
}

func (l *Lead) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	if l.Status == "" {
		l.Status = LeadStatusNew
	}
	return nil
}

// ContactRequest is the public contact form payload.
type ContactRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	ProjectType string `json:"projectType"`
	BudgetRange string `json:"budgetRange"`
	Message     string `json:"message"`
}

type LeadStatusRequest struct {
	Status LeadStatus `json:"status"`
}

// LeadFilter narrows lead listings; zero values match everything.
type LeadFilter struct {
	Status LeadStatus
}
