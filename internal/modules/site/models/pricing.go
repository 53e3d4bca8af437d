package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// PricingPlan is a plan card on the pricing page. Price is a display string ("$499", "Custom").
type PricingPlan struct {
	ID       uuid.UUID                   `gorm:"type:uuid;primaryKey" json:"_id"`
	Name     string                      `gorm:"type:text;not null" json:"name"`
	Tagline  string                      `gorm:"type:text;not null" json:"tagline"`
	Price    string                      `gorm:"type:text;not null" json:"price"`
	Period   string                      `gorm:"type:text;not null;default:''" json:"period"`
	Features datatypes.JSONSlice[string] `gorm:"not null" json:"features"`
	CTA      string                      `gorm:"column:cta;type:text;not null;default:'Get Started'" json:"cta"`
	Popular  bool                        `gorm:"not null;default:false" json:"popular"`
	Order    int                         `gorm:"column:sort_order;not null;default:0;index" json:"order"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (PricingPlan) TableName() string {
	return "pricing_plans"
}

func (p *PricingPlan) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.CTA == "" {
		p.CTA = "Get Started"
	}
	if p.Features == nil {
		p.Features = datatypes.JSONSlice[string]{}
	}
	return nil
}

// PricingPlanRequest is the admin payload for create and update. Nil fields are left untouched on update.
type PricingPlanRequest struct {
	Name     *string   `json:"name"`
	Tagline  *string   `json:"tagline"`
	Price    *string   `json:"price"`
	Period   *string   `json:"period"`
	Features *[]string `json:"features"`
	CTA      *string   `json:"cta"`
	Popular  *bool     `json:"popular"`
	Order    *int      `json:"order"`
}

// Apply copies the set fields onto p.
func (r *PricingPlanRequest) Apply(p *PricingPlan) {
	if r.Name != nil {
		p.Name = *r.Name
	}
	if r.Tagline != nil {
		p.Tagline = *r.Tagline
	}
	if r.Price != nil {
		p.Price = *r.Price
	}
	if r.Period != nil {
		p.Period = *r.Period
	}
	if r.Features != nil {
		p.Features = datatypes.JSONSlice[string](*r.Features)
	}
	if r.CTA != nil {
		p.CTA = *r.CTA
	}
	if r.Popular != nil {
		p.Popular = *r.Popular
	}
	if r.Order != nil {
		p.Order = *r.Order
	}
}
