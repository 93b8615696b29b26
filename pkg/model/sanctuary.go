package model

import "time"

// Sanctuary is a wildlife sanctuary; its catalog items live in wildlife_items.
type Sanctuary struct {
	ID            uint      `gorm:"column:id;primaryKey"`
	Name          string    `gorm:"column:name;not null"`
	Slug          string    `gorm:"column:slug;not null;uniqueIndex"`
	Description   string    `gorm:"column:description"`
	FeaturedImage string    `gorm:"column:featured_image"`
	SEO           SEO       `gorm:"embedded"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Sanctuary) TableName() string {
	return "sanctuaries"
}
