package model

import "time"

// District belongs to a Region.
type District struct {
	ID            uint      `gorm:"column:id;primaryKey"`
	RegionID      uint      `gorm:"column:region_id;not null;index"`
	Name          string    `gorm:"column:name;not null"`
	Slug          string    `gorm:"column:slug;not null;uniqueIndex"`
	Description   string    `gorm:"column:description"`
	FeaturedImage string    `gorm:"column:featured_image"`
	SEO           SEO       `gorm:"embedded"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (District) TableName() string {
	return "districts"
}
