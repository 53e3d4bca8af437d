package models

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Section keys accepted for ContentSection.Section.
const (
	SectionHero     = "hero"
	SectionServices = "services"
	SectionFeatures = "features"
	SectionAbout    = "about"
	SectionContact  = "contact"
)

var validSections = map[string]bool{
	SectionHero:     true,
	SectionServices: true,
	SectionFeatures: true,
	SectionAbout:    true,
	SectionContact:  true,
}

func IsValidSection(key string) bool {
	return validSections[key]
}

// ContentSection is a keyed singleton; at most one row exists per section key.
type ContentSection struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"_id"`
	Section     string         `gorm:"type:text;not null;uniqueIndex" json:"section"`
	Title       string         `gorm:"type:text" json:"title,omitempty"`
	Subtitle    string         `gorm:"type:text" json:"subtitle,omitempty"`
	Description string         `gorm:"type:text" json:"description,omitempty"`
	Content     datatypes.JSON `gorm:"not null" json:"content"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (ContentSection) TableName() string {
	return "content_sections"
}

func (c *ContentSection) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// BeforeSave stores an absent payload as the JSON literal null so the column never holds SQL NULL.
func (c *ContentSection) BeforeSave(tx *gorm.DB) error {
	if len(bytes.TrimSpace(c.Content)) == 0 {
		c.Content = datatypes.JSON("null")
	}
	return nil
}

// HasContent reports whether a payload other than null was stored.
func (c *ContentSection) HasContent() bool {
	trimmed := bytes.TrimSpace(c.Content)
	return len(trimmed) > 0 && !bytes.Equal(trimmed, []byte("null"))
}

// ContentString renders the payload for prompts: JSON strings are unquoted, everything else stays JSON.
func (c *ContentSection) ContentString() string {
	if !c.HasContent() {
		return ""
	}
	trimmed := bytes.TrimSpace(c.Content)
	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err == nil {
			return s
		}
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, trimmed); err != nil {
		return string(trimmed)
	}
	return buf.String()
}

type ContentSectionRequest struct {
	Section     string         `json:"section"`
	Title       *string        `json:"title"`
	Subtitle    *string        `json:"subtitle"`
	Description *string        `json:"description"`
	Content     datatypes.JSON `json:"content"`
}

func (r *ContentSectionRequest) Apply(c *ContentSection) {
	if r.Title != nil {
		c.Title = *r.Title
	}
	if r.Subtitle != nil {
		c.Subtitle = *r.Subtitle
	}
	if r.Description != nil {
		c.Description = *r.Description
	}
	if r.Content != nil {
		c.Content = r.Content
	}
}
