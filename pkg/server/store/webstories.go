package store

import (
	"github.com/trailpost/tourcms/pkg/lifecycle"
	"github.com/trailpost/tourcms/pkg/model"
)

type WebStoryFields struct {
	Title string
	Slug  string
	SEO   model.SEO
}

type WebStoryUpdate struct {
	Title           *string
	Slug            *string
	MetaTitle       *string
	MetaDescription *string
	MetaKeywords    *string
}

// WebStoriesStore abstracts web story storage. The cover image is the
// primary attachment; slides are the story's gallery images.
type WebStoriesStore interface {
	Create(fields WebStoryFields, file *lifecycle.File) (*model.WebStory, error)
	Update(id uint, fields WebStoryUpdate, file *lifecycle.File) (*model.WebStory, error)
	Delete(id uint) (failedFiles []string, err error)
	FindByID(id uint) (*model.WebStory, error)
	FindBySlug(slug string) (*model.WebStory, error)
	List(filter ListFilter) ([]model.WebStory, error)
}
