package model

import "time"

// Region is the top of the geographic hierarchy: a state or union territory.
type Region struct {
	ID            uint       `gorm:"column:id;primaryKey"`
	Kind          RegionKind `gorm:"column:kind;not null"`
	Name          string     `gorm:"column:name;not null"`
	Slug          string     `gorm:"column:slug;not null;uniqueIndex"`
	Capital       string     `gorm:"column:capital"`
	Description   string     `gorm:"column:description"`
	FeaturedImage string     `gorm:"column:featured_image"`
	SEO           SEO        `gorm:"embedded"`
	CreatedAt     time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

func (Region) TableName() string {
	return "regions"
}
