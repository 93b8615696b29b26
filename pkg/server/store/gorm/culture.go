package gorm

import (
	"gorm.io/gorm"

	"github.com/trailpost/tourcms/pkg/apperr"
	"github.com/trailpost/tourcms/pkg/lifecycle"
	"github.com/trailpost/tourcms/pkg/model"
	"github.com/trailpost/tourcms/pkg/server/store"
)

var _ store.CultureStore = (*CultureStore)(nil)

// CultureStore implements store.CultureStore using GORM.
type CultureStore struct {
	db *gorm.DB
	lc *lifecycle.Manager
}

func NewCultureStore(db *gorm.DB, lc *lifecycle.Manager) *CultureStore {
	return &CultureStore{db: db, lc: lc}
}

func (s *CultureStore) Create(fields store.CultureFields, file *lifecycle.File) (*model.CultureEntry, error) {
	var fieldErrs []apperr.FieldError
	if fields.Title == "" {
		fieldErrs = append(fieldErrs, apperr.FieldError{Field: "title", Message: "title is required"})
	}
	if fields.Slug == "" {
		fieldErrs = append(fieldErrs, apperr.FieldError{Field: "slug", Message: "slug is required"})
	}
	if len(fieldErrs) > 0 {
		return nil, apperr.Validation("invalid culture entry", fieldErrs...)
	}

	entry := model.CultureEntry{
		Category:    fields.Category,
		Title:       fields.Title,
		Slug:        fields.Slug,
		Description: fields.Description,
		SEO:         fields.SEO,
	}

	_, err := s.lc.CreateWithFeatured(file, func(tx *gorm.DB, path string) error {
		if err := ensureSlugFree(tx, entry.TableName(), fields.Slug, 0); err != nil {
			return err
		}
		entry.FeaturedImage = path
		return tx.Create(&entry).Error
	})
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (s *CultureStore) Update(id uint, fields store.CultureUpdate, file *lifecycle.File) (*model.CultureEntry, error) {
	entry, err := s.FindByID(id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	setStr(updates, "category", fields.Category)
	setStr(updates, "title", fields.Title)
	setStr(updates, "slug", fields.Slug)
	setStr(updates, "description", fields.Description)
	setStr(updates, "meta_title", fields.MetaTitle)
	setStr(updates, "meta_description", fields.MetaDescription)
	setStr(updates, "meta_keywords", fields.MetaKeywords)

	_, err = s.lc.ReplaceFeatured(entry.FeaturedImage, file, func(tx *gorm.DB, path string) error {
		if fields.Slug != nil {
			if err := ensureSlugFree(tx, entry.TableName(), *fields.Slug, id); err != nil {
				return err
			}
		}
		if file != nil {
			updates["featured_image"] = path
		}
		if len(updates) == 0 {
			return nil
		}
		return tx.Model(&model.CultureEntry{}).Where("id = ?", id).Updates(updates).Error
	})
	if err != nil {
		return nil, err
	}
	return s.FindByID(id)
}

func (s *CultureStore) Delete(id uint) ([]string, error) {
	entry, err := s.FindByID(id)
	if err != nil {
		return nil, err
	}

	return s.lc.DeleteRecord(func(tx *gorm.DB) ([]string, error) {
		return []string{entry.FeaturedImage}, tx.Delete(&model.CultureEntry{}, id).Error
	})
}

func (s *CultureStore) FindByID(id uint) (*model.CultureEntry, error) {
	var entry model.CultureEntry
	if err := s.db.First(&entry, id).Error; err != nil {
		return nil, findErr("culture entry", id, err)
	}
	return &entry, nil
}

func (s *CultureStore) FindBySlug(slug string) (*model.CultureEntry, error) {
	var entry model.CultureEntry
	if err := s.db.Where("slug = ?", slug).First(&entry).Error; err != nil {
		return nil, findErr("culture entry", slug, err)
	}
	return &entry, nil
}

func (s *CultureStore) List(filter store.ListFilter) ([]model.CultureEntry, error) {
	q := s.db.Model(&model.CultureEntry{})
	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}
	q = applyFilter(q, filter, "title", "slug")

	entries := []model.CultureEntry{}
	if err := q.Order("title ASC").Find(&entries).Error; err != nil {
		return nil, dbErr("list culture entries", err)
	}
	return entries, nil
}
