package model

import "time"

// WebStory is a slide-based story; slides are gallery images with captions.
type WebStory struct {
	ID         uint      `gorm:"column:id;primaryKey"`
	Title      string    `gorm:"column:title;not null"`
	Slug       string    `gorm:"column:slug;not null;uniqueIndex"`
	CoverImage string    `gorm:"column:cover_image"`
	SEO        SEO       `gorm:"embedded"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (WebStory) TableName() string {
	return "web_stories"
}
