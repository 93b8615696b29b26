package gorm

import (
	"gorm.io/gorm"

	"github.com/trailpost/tourcms/pkg/apperr"
	"github.com/trailpost/tourcms/pkg/lifecycle"
	"github.com/trailpost/tourcms/pkg/model"
	"github.com/trailpost/tourcms/pkg/server/store"
)

// Ensure RegionsStore implements store.RegionsStore
var _ store.RegionsStore = (*RegionsStore)(nil)

// RegionsStore implements store.RegionsStore using GORM.
type RegionsStore struct {
	db *gorm.DB
	lc *lifecycle.Manager
}

func NewRegionsStore(db *gorm.DB, lc *lifecycle.Manager) *RegionsStore {
	return &RegionsStore{db: db, lc: lc}
}

func (s *RegionsStore) Create(fields store.RegionFields, file *lifecycle.File) (*model.Region, error) {
	var fieldErrs []apperr.FieldError
	if fields.Kind != model.RegionState && fields.Kind != model.RegionTerritory {
		fieldErrs = append(fieldErrs, apperr.FieldError{Field: "kind", Message: "must be state or territory"})
	}
	if fields.Name == "" {
		fieldErrs = append(fieldErrs, apperr.FieldError{Field: "name", Message: "name is required"})
	}
	if fields.Slug == "" {
		fieldErrs = append(fieldErrs, apperr.FieldError{Field: "slug", Message: "slug is required"})
	}
	if fields.Capital == "" {
		fieldErrs = append(fieldErrs, apperr.FieldError{Field: "capital", Message: "capital is required"})
	}
	if len(fieldErrs) > 0 {
		return nil, apperr.Validation("invalid region", fieldErrs...)
	}

	region := model.Region{
		Kind:        fields.Kind,
		Name:        fields.Name,
		Slug:        fields.Slug,
		Capital:     fields.Capital,
		Description: fields.Description,
		SEO:         fields.SEO,
	}

	_, err := s.lc.CreateWithFeatured(file, func(tx *gorm.DB, path string) error {
		if err := ensureSlugFree(tx, region.TableName(), fields.Slug, 0); err != nil {
			return err
		}
		region.FeaturedImage = path
		return tx.Create(&region).Error
	})
	if err != nil {
		return nil, err
	}
	return &region, nil
}

func (s *RegionsStore) Update(id uint, fields store.RegionUpdate, file *lifecycle.File) (*model.Region, error) {
	region, err := s.FindByID(id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	setStr(updates, "name", fields.Name)
	setStr(updates, "slug", fields.Slug)
	setStr(updates, "capital", fields.Capital)
	setStr(updates, "description", fields.Description)
	setStr(updates, "meta_title", fields.MetaTitle)
	setStr(updates, "meta_description", fields.MetaDescription)
	setStr(updates, "meta_keywords", fields.MetaKeywords)

	_, err = s.lc.ReplaceFeatured(region.FeaturedImage, file, func(tx *gorm.DB, path string) error {
		if fields.Slug != nil {
			if err := ensureSlugFree(tx, region.TableName(), *fields.Slug, id); err != nil {
				return err
			}
		}
		if file != nil {
			updates["featured_image"] = path
		}
		if len(updates) == 0 {
			return nil
		}
		return tx.Model(&model.Region{}).Where("id = ?", id).Updates(updates).Error
	})
	if err != nil {
		return nil, err
	}
	return s.FindByID(id)
}

// Delete removes the region and cascades to its districts, their villages
// and every image in the subtree. Rows go in one transaction; files are
// removed after commit.
func (s *RegionsStore) Delete(id uint) ([]string, error) {
	region, err := s.FindByID(id)
	if err != nil {
		return nil, err
	}

	return s.lc.DeleteRecord(func(tx *gorm.DB) ([]string, error) {
		paths := []string{region.FeaturedImage}

		var districtIDs []uint
		if err := tx.Model(&model.District{}).Where("region_id = ?", id).Pluck("id", &districtIDs).Error; err != nil {
			return nil, err
		}
		var districtPaths []string
		if err := tx.Model(&model.District{}).Where("region_id = ?", id).Pluck("featured_image", &districtPaths).Error; err != nil {
			return nil, err
		}
		paths = append(paths, districtPaths...)

		var villageIDs []uint
		var villagePaths []string
		if len(districtIDs) > 0 {
			if err := tx.Model(&model.Village{}).Where("district_id IN ?", districtIDs).Pluck("id", &villageIDs).Error; err != nil {
				return nil, err
			}
			if err := tx.Model(&model.Village{}).Where("district_id IN ?", districtIDs).Pluck("featured_image", &villagePaths).Error; err != nil {
				return nil, err
			}
			paths = append(paths, villagePaths...)
		}

		galleryPaths, err := lifecycle.GalleryPathsTx(tx, model.KindVillage, villageIDs)
		if err != nil {
			return nil, err
		}
		paths = append(paths, galleryPaths...)

		if err := lifecycle.DeleteGalleryRowsTx(tx, model.KindVillage, villageIDs); err != nil {
			return nil, err
		}
		if len(districtIDs) > 0 {
			if err := tx.Where("district_id IN ?", districtIDs).Delete(&model.Village{}).Error; err != nil {
				return nil, err
			}
			// Institutions outlive the subtree; detach them so the FK
			// cannot block the district deletes.
			if err := tx.Model(&model.Institution{}).Where("district_id IN ?", districtIDs).
				Update("district_id", nil).Error; err != nil {
				return nil, err
			}
		}
		if err := tx.Where("region_id = ?", id).Delete(&model.District{}).Error; err != nil {
			return nil, err
		}
		return paths, tx.Delete(&model.Region{}, id).Error
	})
}

func (s *RegionsStore) FindByID(id uint) (*model.Region, error) {
	var region model.Region
	if err := s.db.First(&region, id).Error; err != nil {
		return nil, findErr("region", id, err)
	}
	return &region, nil
}

func (s *RegionsStore) FindBySlug(slug string) (*model.Region, error) {
	var region model.Region
	if err := s.db.Where("slug = ?", slug).First(&region).Error; err != nil {
		return nil, findErr("region", slug, err)
	}
	return &region, nil
}

func (s *RegionsStore) List(filter store.ListFilter) ([]model.Region, error) {
	q := s.db.Model(&model.Region{})
	if filter.Kind != "" {
		q = q.Where("kind = ?", filter.Kind)
	}
	q = applyFilter(q, filter, "name", "slug")

	regions := []model.Region{}
	if err := q.Order("name ASC").Find(&regions).Error; err != nil {
		return nil, dbErr("list regions", err)
	}
	return regions, nil
}

func (s *RegionsStore) Count(filter store.ListFilter) (int64, error) {
	q := s.db.Model(&model.Region{})
	if filter.Kind != "" {
		q = q.Where("kind = ?", filter.Kind)
	}
	if filter.Search != "" {
		q = applyFilter(q, store.ListFilter{Search: filter.Search}, "name", "slug")
	}
	var count int64
	if err := q.Count(&count).Error; err != nil {
		return 0, dbErr("count regions", err)
	}
	return count, nil
}
