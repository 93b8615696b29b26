package model

import "time"

// Village is the leaf of the geographic hierarchy and carries an ordered
// gallery of secondary images.
type Village struct {
	ID            uint      `gorm:"column:id;primaryKey"`
	DistrictID    uint      `gorm:"column:district_id;not null;index"`
	Name          string    `gorm:"column:name;not null"`
	Slug          string    `gorm:"column:slug;not null;uniqueIndex"`
	Description   string    `gorm:"column:description"`
	FeaturedImage string    `gorm:"column:featured_image"`
	SEO           SEO       `gorm:"embedded"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Village) TableName() string {
	return "villages"
}
