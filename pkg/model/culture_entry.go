package model

import "time"

// CultureEntry covers festivals, cuisine, crafts and similar content.
type CultureEntry struct {
	ID            uint      `gorm:"column:id;primaryKey"`
	Category      string    `gorm:"column:category;index"`
	Title         string    `gorm:"column:title;not null"`
	Slug          string    `gorm:"column:slug;not null;uniqueIndex"`
	Description   string    `gorm:"column:description"`
	FeaturedImage string    `gorm:"column:featured_image"`
	SEO           SEO       `gorm:"embedded"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (CultureEntry) TableName() string {
	return "culture_entries"
}
