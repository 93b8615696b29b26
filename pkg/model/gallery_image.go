package model

import "time"

// GalleryImage is a secondary attachment owned by a content record.
// Owner is polymorphic: (owner_kind, owner_id) identifies the record.
// DisplayOrder is sortable but not necessarily contiguous.
type GalleryImage struct {
	ID           uint       `gorm:"column:id;primaryKey"`
	OwnerKind    EntityKind `gorm:"column:owner_kind;not null;index:idx_gallery_owner"`
	OwnerID      uint       `gorm:"column:owner_id;not null;index:idx_gallery_owner"`
	Path         string     `gorm:"column:path;not null"`
	OriginalName string     `gorm:"column:original_name"`
	AltText      string     `gorm:"column:alt_text"`
	Caption      string     `gorm:"column:caption"`
	DisplayOrder int        `gorm:"column:display_order;default:0"`
	CreatedAt    time.Time  `gorm:"column:created_at;autoCreateTime"`
}

func (GalleryImage) TableName() string {
	return "gallery_images"
}
