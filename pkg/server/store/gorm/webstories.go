package gorm

import (
	"gorm.io/gorm"

	"github.com/trailpost/tourcms/pkg/apperr"
	"github.com/trailpost/tourcms/pkg/lifecycle"
	"github.com/trailpost/tourcms/pkg/model"
	"github.com/trailpost/tourcms/pkg/server/store"
)

var _ store.WebStoriesStore = (*WebStoriesStore)(nil)

// WebStoriesStore implements store.WebStoriesStore using GORM. A story's
// slides are its gallery images; the cover is the primary attachment.
type WebStoriesStore struct {
	db *gorm.DB
	lc *lifecycle.Manager
}

func NewWebStoriesStore(db *gorm.DB, lc *lifecycle.Manager) *WebStoriesStore {
	return &WebStoriesStore{db: db, lc: lc}
}

func (s *WebStoriesStore) Create(fields store.WebStoryFields, file *lifecycle.File) (*model.WebStory, error) {
	var fieldErrs []apperr.FieldError
	if fields.Title == "" {
		fieldErrs = append(fieldErrs, apperr.FieldError{Field: "title", Message: "title is required"})
	}
	if fields.Slug == "" {
		fieldErrs = append(fieldErrs, apperr.FieldError{Field: "slug", Message: "slug is required"})
	}
	if len(fieldErrs) > 0 {
		return nil, apperr.Validation("invalid web story", fieldErrs...)
	}

	story := model.WebStory{
		Title: fields.Title,
		Slug:  fields.Slug,
		SEO:   fields.SEO,
	}

	_, err := s.lc.CreateWithFeatured(file, func(tx *gorm.DB, path string) error {
		if err := ensureSlugFree(tx, story.TableName(), fields.Slug, 0); err != nil {
			return err
		}
		story.CoverImage = path
		return tx.Create(&story).Error
	})
	if err != nil {
		return nil, err
	}
	return &story, nil
}

func (s *WebStoriesStore) Update(id uint, fields store.WebStoryUpdate, file *lifecycle.File) (*model.WebStory, error) {
	story, err := s.FindByID(id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	setStr(updates, "title", fields.Title)
	setStr(updates, "slug", fields.Slug)
	setStr(updates, "meta_title", fields.MetaTitle)
	setStr(updates, "meta_description", fields.MetaDescription)
	setStr(updates, "meta_keywords", fields.MetaKeywords)

	_, err = s.lc.ReplaceFeatured(story.CoverImage, file, func(tx *gorm.DB, path string) error {
		if fields.Slug != nil {
			if err := ensureSlugFree(tx, story.TableName(), *fields.Slug, id); err != nil {
				return err
			}
		}
		if file != nil {
			updates["cover_image"] = path
		}
		if len(updates) == 0 {
			return nil
		}
		return tx.Model(&model.WebStory{}).Where("id = ?", id).Updates(updates).Error
	})
	if err != nil {
		return nil, err
	}
	return s.FindByID(id)
}

func (s *WebStoriesStore) Delete(id uint) ([]string, error) {
	story, err := s.FindByID(id)
	if err != nil {
		return nil, err
	}

	return s.lc.DeleteRecord(func(tx *gorm.DB) ([]string, error) {
		paths := []string{story.CoverImage}

		slidePaths, err := lifecycle.GalleryPathsTx(tx, model.KindWebStory, []uint{id})
		if err != nil {
			return nil, err
		}
		paths = append(paths, slidePaths...)

		if err := lifecycle.DeleteGalleryRowsTx(tx, model.KindWebStory, []uint{id}); err != nil {
			return nil, err
		}
		return paths, tx.Delete(&model.WebStory{}, id).Error
	})
}

func (s *WebStoriesStore) FindByID(id uint) (*model.WebStory, error) {
	var story model.WebStory
	if err := s.db.First(&story, id).Error; err != nil {
		return nil, findErr("web story", id, err)
	}
	return &story, nil
}

func (s *WebStoriesStore) FindBySlug(slug string) (*model.WebStory, error) {
	var story model.WebStory
	if err := s.db.Where("slug = ?", slug).First(&story).Error; err != nil {
		return nil, findErr("web story", slug, err)
	}
	return &story, nil
}

func (s *WebStoriesStore) List(filter store.ListFilter) ([]model.WebStory, error) {
	q := applyFilter(s.db.Model(&model.WebStory{}), filter, "title", "slug")

	stories := []model.WebStory{}
	if err := q.Order("created_at DESC").Find(&stories).Error; err != nil {
		return nil, dbErr("list web stories", err)
	}
	return stories, nil
}
