package gorm

import (
	"gorm.io/gorm"

	"github.com/trailpost/tourcms/pkg/apperr"
	"github.com/trailpost/tourcms/pkg/lifecycle"
	"github.com/trailpost/tourcms/pkg/model"
	"github.com/trailpost/tourcms/pkg/server/store"
)

var _ store.SanctuariesStore = (*SanctuariesStore)(nil)
var _ store.WildlifeItemsStore = (*WildlifeItemsStore)(nil)

// SanctuariesStore implements store.SanctuariesStore using GORM.
type SanctuariesStore struct {
	db *gorm.DB
	lc *lifecycle.Manager
}

func NewSanctuariesStore(db *gorm.DB, lc *lifecycle.Manager) *SanctuariesStore {
	return &SanctuariesStore{db: db, lc: lc}
}

func (s *SanctuariesStore) Create(fields store.SanctuaryFields, file *lifecycle.File) (*model.Sanctuary, error) {
	var fieldErrs []apperr.FieldError
	if fields.Name == "" {
		fieldErrs = append(fieldErrs, apperr.FieldError{Field: "name", Message: "name is required"})
	}
	if fields.Slug == "" {
		fieldErrs = append(fieldErrs, apperr.FieldError{Field: "slug", Message: "slug is required"})
	}
	if len(fieldErrs) > 0 {
		return nil, apperr.Validation("invalid sanctuary", fieldErrs...)
	}

	sanctuary := model.Sanctuary{
		Name:        fields.Name,
		Slug:        fields.Slug,
		Description: fields.Description,
		SEO:         fields.SEO,
	}

	_, err := s.lc.CreateWithFeatured(file, func(tx *gorm.DB, path string) error {
		if err := ensureSlugFree(tx, sanctuary.TableName(), fields.Slug, 0); err != nil {
			return err
		}
		sanctuary.FeaturedImage = path
		return tx.Create(&sanctuary).Error
	})
	if err != nil {
		return nil, err
	}
	return &sanctuary, nil
}

func (s *SanctuariesStore) Update(id uint, fields store.SanctuaryUpdate, file *lifecycle.File) (*model.Sanctuary, error) {
	sanctuary, err := s.FindByID(id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	setStr(updates, "name", fields.Name)
	setStr(updates, "slug", fields.Slug)
	setStr(updates, "description", fields.Description)
	setStr(updates, "meta_title", fields.MetaTitle)
	setStr(updates, "meta_description", fields.MetaDescription)
	setStr(updates, "meta_keywords", fields.MetaKeywords)

	_, err = s.lc.ReplaceFeatured(sanctuary.FeaturedImage, file, func(tx *gorm.DB, path string) error {
		if fields.Slug != nil {
			if err := ensureSlugFree(tx, sanctuary.TableName(), *fields.Slug, id); err != nil {
				return err
			}
		}
		if file != nil {
			updates["featured_image"] = path
		}
		if len(updates) == 0 {
			return nil
		}
		return tx.Model(&model.Sanctuary{}).Where("id = ?", id).Updates(updates).Error
	})
	if err != nil {
		return nil, err
	}
	return s.FindByID(id)
}

// Delete cascades to the sanctuary's wildlife items and every image at both
// levels, including item galleries.
func (s *SanctuariesStore) Delete(id uint) ([]string, error) {
	sanctuary, err := s.FindByID(id)
	if err != nil {
		return nil, err
	}

	return s.lc.DeleteRecord(func(tx *gorm.DB) ([]string, error) {
		paths := []string{sanctuary.FeaturedImage}

		var itemIDs []uint
		if err := tx.Model(&model.WildlifeItem{}).Where("sanctuary_id = ?", id).Pluck("id", &itemIDs).Error; err != nil {
			return nil, err
		}
		var itemPaths []string
		if err := tx.Model(&model.WildlifeItem{}).Where("sanctuary_id = ?", id).Pluck("featured_image", &itemPaths).Error; err != nil {
			return nil, err
		}
		paths = append(paths, itemPaths...)

		itemGallery, err := lifecycle.GalleryPathsTx(tx, model.KindWildlifeItem, itemIDs)
		if err != nil {
			return nil, err
		}
		paths = append(paths, itemGallery...)

		ownGallery, err := lifecycle.GalleryPathsTx(tx, model.KindSanctuary, []uint{id})
		if err != nil {
			return nil, err
		}
		paths = append(paths, ownGallery...)

		if err := lifecycle.DeleteGalleryRowsTx(tx, model.KindWildlifeItem, itemIDs); err != nil {
			return nil, err
		}
		if err := lifecycle.DeleteGalleryRowsTx(tx, model.KindSanctuary, []uint{id}); err != nil {
			return nil, err
		}
		if err := tx.Where("sanctuary_id = ?", id).Delete(&model.WildlifeItem{}).Error; err != nil {
			return nil, err
		}
		return paths, tx.Delete(&model.Sanctuary{}, id).Error
	})
}

func (s *SanctuariesStore) FindByID(id uint) (*model.Sanctuary, error) {
	var sanctuary model.Sanctuary
	if err := s.db.First(&sanctuary, id).Error; err != nil {
		return nil, findErr("sanctuary", id, err)
	}
	return &sanctuary, nil
}

func (s *SanctuariesStore) FindBySlug(slug string) (*model.Sanctuary, error) {
	var sanctuary model.Sanctuary
	if err := s.db.Where("slug = ?", slug).First(&sanctuary).Error; err != nil {
		return nil, findErr("sanctuary", slug, err)
	}
	return &sanctuary, nil
}

func (s *SanctuariesStore) List(filter store.ListFilter) ([]model.Sanctuary, error) {
	q := applyFilter(s.db.Model(&model.Sanctuary{}), filter, "name", "slug")

	sanctuaries := []model.Sanctuary{}
	if err := q.Order("name ASC").Find(&sanctuaries).Error; err != nil {
		return nil, dbErr("list sanctuaries", err)
	}
	return sanctuaries, nil
}

// Summary returns item counts grouped by category. Categories with no items
// are absent; the caller supplies zero-defaults for display.
func (s *SanctuariesStore) Summary(sanctuaryID uint) ([]store.WildlifeSummary, error) {
	if _, err := s.FindByID(sanctuaryID); err != nil {
		return nil, err
	}

	rows := []store.WildlifeSummary{}
	err := s.db.Model(&model.WildlifeItem{}).
		Select("category, COUNT(*) AS count").
		Where("sanctuary_id = ?", sanctuaryID).
		Group("category").
		Order("category ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, dbErr("wildlife summary", err)
	}
	return rows, nil
}

// WildlifeItemsStore implements store.WildlifeItemsStore using GORM.
type WildlifeItemsStore struct {
	db *gorm.DB
	lc *lifecycle.Manager
}

func NewWildlifeItemsStore(db *gorm.DB, lc *lifecycle.Manager) *WildlifeItemsStore {
	return &WildlifeItemsStore{db: db, lc: lc}
}

func validCategory(c model.WildlifeCategory) bool {
	return c == model.WildlifeFlora || c == model.WildlifeFauna || c == model.WildlifeBird
}

func (s *WildlifeItemsStore) Create(fields store.WildlifeItemFields, file *lifecycle.File) (*model.WildlifeItem, error) {
	var fieldErrs []apperr.FieldError
	if fields.SanctuaryID == 0 {
		fieldErrs = append(fieldErrs, apperr.FieldError{Field: "sanctuary_id", Message: "sanctuary_id is required"})
	}
	if !validCategory(fields.Category) {
		fieldErrs = append(fieldErrs, apperr.FieldError{Field: "category", Message: "must be flora, fauna or bird"})
	}
	if fields.Name == "" {
		fieldErrs = append(fieldErrs, apperr.FieldError{Field: "name", Message: "name is required"})
	}
	if fields.Slug == "" {
		fieldErrs = append(fieldErrs, apperr.FieldError{Field: "slug", Message: "slug is required"})
	}
	if len(fieldErrs) > 0 {
		return nil, apperr.Validation("invalid wildlife item", fieldErrs...)
	}

	if err := s.db.First(&model.Sanctuary{}, fields.SanctuaryID).Error; err != nil {
		return nil, findErr("sanctuary", fields.SanctuaryID, err)
	}

	item := model.WildlifeItem{
		SanctuaryID: fields.SanctuaryID,
		Category:    fields.Category,
		Name:        fields.Name,
		Slug:        fields.Slug,
		Description: fields.Description,
	}

	_, err := s.lc.CreateWithFeatured(file, func(tx *gorm.DB, path string) error {
		if err := ensureSlugFree(tx, item.TableName(), fields.Slug, 0); err != nil {
			return err
		}
		item.FeaturedImage = path
		return tx.Create(&item).Error
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *WildlifeItemsStore) Update(id uint, fields store.WildlifeItemUpdate, file *lifecycle.File) (*model.WildlifeItem, error) {
	item, err := s.FindByID(id)
	if err != nil {
		return nil, err
	}

	if fields.Category != nil && !validCategory(*fields.Category) {
		return nil, apperr.Validation("invalid wildlife item",
			apperr.FieldError{Field: "category", Message: "must be flora, fauna or bird"})
	}

	updates := map[string]interface{}{}
	if fields.Category != nil {
		updates["category"] = *fields.Category
	}
	setStr(updates, "name", fields.Name)
	setStr(updates, "slug", fields.Slug)
	setStr(updates, "description", fields.Description)

	_, err = s.lc.ReplaceFeatured(item.FeaturedImage, file, func(tx *gorm.DB, path string) error {
		if fields.Slug != nil {
			if err := ensureSlugFree(tx, item.TableName(), *fields.Slug, id); err != nil {
				return err
			}
		}
		if file != nil {
			updates["featured_image"] = path
		}
		if len(updates) == 0 {
			return nil
		}
		return tx.Model(&model.WildlifeItem{}).Where("id = ?", id).Updates(updates).Error
	})
	if err != nil {
		return nil, err
	}
	return s.FindByID(id)
}

func (s *WildlifeItemsStore) Delete(id uint) ([]string, error) {
	item, err := s.FindByID(id)
	if err != nil {
		return nil, err
	}

	return s.lc.DeleteRecord(func(tx *gorm.DB) ([]string, error) {
		paths := []string{item.FeaturedImage}

		galleryPaths, err := lifecycle.GalleryPathsTx(tx, model.KindWildlifeItem, []uint{id})
		if err != nil {
			return nil, err
		}
		paths = append(paths, galleryPaths...)

		if err := lifecycle.DeleteGalleryRowsTx(tx, model.KindWildlifeItem, []uint{id}); err != nil {
			return nil, err
		}
		return paths, tx.Delete(&model.WildlifeItem{}, id).Error
	})
}

func (s *WildlifeItemsStore) FindByID(id uint) (*model.WildlifeItem, error) {
	var item model.WildlifeItem
	if err := s.db.First(&item, id).Error; err != nil {
		return nil, findErr("wildlife item", id, err)
	}
	return &item, nil
}

func (s *WildlifeItemsStore) FindBySlug(slug string) (*model.WildlifeItem, error) {
	var item model.WildlifeItem
	if err := s.db.Where("slug = ?", slug).First(&item).Error; err != nil {
		return nil, findErr("wildlife item", slug, err)
	}
	return &item, nil
}

func (s *WildlifeItemsStore) List(filter store.ListFilter) ([]model.WildlifeItem, error) {
	q := s.db.Model(&model.WildlifeItem{})
	if filter.ParentID != 0 {
		q = q.Where("sanctuary_id = ?", filter.ParentID)
	}
	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}
	q = applyFilter(q, filter, "name", "slug")

	items := []model.WildlifeItem{}
	if err := q.Order("name ASC").Find(&items).Error; err != nil {
		return nil, dbErr("list wildlife items", err)
	}
	return items, nil
}
