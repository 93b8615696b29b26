package model

import "time"

// Institution is an education or healthcare facility, tagged with an
// explicit kind discriminant.
type Institution struct {
	ID            uint            `gorm:"column:id;primaryKey"`
	Kind          InstitutionKind `gorm:"column:kind;not null;index"`
	DistrictID    *uint           `gorm:"column:district_id;index"`
	Name          string          `gorm:"column:name;not null"`
	Slug          string          `gorm:"column:slug;not null;uniqueIndex"`
	Address       string          `gorm:"column:address"`
	Description   string          `gorm:"column:description"`
	FeaturedImage string          `gorm:"column:featured_image"`
	SEO           SEO             `gorm:"embedded"`
	CreatedAt     time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

func (Institution) TableName() string {
	return "institutions"
}
