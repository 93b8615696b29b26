package model

import "time"

// WildlifeItem is one flora/fauna/bird catalog entry within a sanctuary.
type WildlifeItem struct {
	ID            uint             `gorm:"column:id;primaryKey"`
	SanctuaryID   uint             `gorm:"column:sanctuary_id;not null;index"`
	Category      WildlifeCategory `gorm:"column:category;not null;index"`
	Name          string           `gorm:"column:name;not null"`
	Slug          string           `gorm:"column:slug;not null;uniqueIndex"`
	Description   string           `gorm:"column:description"`
	FeaturedImage string           `gorm:"column:featured_image"`
	CreatedAt     time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}

func (WildlifeItem) TableName() string {
	return "wildlife_items"
}
