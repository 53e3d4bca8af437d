package audit

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Entry is one admin mutation against the API.
type Entry struct {
	ID uuid.UUID `json:"_id" gorm:"type:uuid;primaryKey"`

	AdminID string `json:"adminId" gorm:"type:text;index"`
	Email   string `json:"email" gorm:"type:text"`

	Action   string `json:"action" gorm:"type:text;not null;index"` // create, update, delete
	Entity   string `json:"entity" gorm:"type:text;not null;index"` // pricing, service, content, lead
	EntityID string `json:"entityId,omitempty" gorm:"type:text;index"`

	Method    string `json:"method" gorm:"type:text"`
	Path      string `json:"path" gorm:"type:text"`
	Status    int    `json:"status"`
	IPAddress string `json:"ipAddress,omitempty" gorm:"type:text"`
	Duration  int64  `json:"durationMs"`

	CreatedAt time.Time `json:"createdAt" gorm:"index"`
}

func (Entry) TableName() string {
	return "audit_logs"
}

func (e *Entry) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// Filter narrows List. Zero values match everything.
type Filter struct {
	AdminID string
	Entity  string
	Action  string
	Since   *time.Time
	Limit   int
}
