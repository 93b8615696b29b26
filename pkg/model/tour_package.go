package model

import "time"

// TourPackage is a bookable tour offering with a featured image and gallery.
type TourPackage struct {
	ID            uint      `gorm:"column:id;primaryKey"`
	Title         string    `gorm:"column:title;not null"`
	Slug          string    `gorm:"column:slug;not null;uniqueIndex"`
	Description   string    `gorm:"column:description"`
	DurationDays  int       `gorm:"column:duration_days"`
	Price         float64   `gorm:"column:price"`
	FeaturedImage string    `gorm:"column:featured_image"`
	SEO           SEO       `gorm:"embedded"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (TourPackage) TableName() string {
	return "packages"
}
