package gorm

import (
	"gorm.io/gorm"

	"github.com/trailpost/tourcms/pkg/apperr"
	"github.com/trailpost/tourcms/pkg/lifecycle"
	"github.com/trailpost/tourcms/pkg/model"
	"github.com/trailpost/tourcms/pkg/server/store"
)

var _ store.DistrictsStore = (*DistrictsStore)(nil)

// DistrictsStore implements store.DistrictsStore using GORM.
type DistrictsStore struct {
	db *gorm.DB
	lc *lifecycle.Manager
}

func NewDistrictsStore(db *gorm.DB, lc *lifecycle.Manager) *DistrictsStore {
	return &DistrictsStore{db: db, lc: lc}
}

func (s *DistrictsStore) Create(fields store.DistrictFields, file *lifecycle.File) (*model.District, error) {
	var fieldErrs []apperr.FieldError
	if fields.RegionID == 0 {
		fieldErrs = append(fieldErrs, apperr.FieldError{Field: "region_id", Message: "region_id is required"})
	}
	if fields.Name == "" {
		fieldErrs = append(fieldErrs, apperr.FieldError{Field: "name", Message: "name is required"})
	}
	if fields.Slug == "" {
		fieldErrs = append(fieldErrs, apperr.FieldError{Field: "slug", Message: "slug is required"})
	}
	if len(fieldErrs) > 0 {
		return nil, apperr.Validation("invalid district", fieldErrs...)
	}

	if err := s.db.First(&model.Region{}, fields.RegionID).Error; err != nil {
		return nil, findErr("region", fields.RegionID, err)
	}

	district := model.District{
		RegionID:    fields.RegionID,
		Name:        fields.Name,
		Slug:        fields.Slug,
		Description: fields.Description,
		SEO:         fields.SEO,
	}

	_, err := s.lc.CreateWithFeatured(file, func(tx *gorm.DB, path string) error {
		if err := ensureSlugFree(tx, district.TableName(), fields.Slug, 0); err != nil {
			return err
		}
		district.FeaturedImage = path
		return tx.Create(&district).Error
	})
	if err != nil {
		return nil, err
	}
	return &district, nil
}

func (s *DistrictsStore) Update(id uint, fields store.DistrictUpdate, file *lifecycle.File) (*model.District, error) {
	district, err := s.FindByID(id)
	if err != nil {
		return nil, err
	}

	if fields.RegionID != nil {
		if err := s.db.First(&model.Region{}, *fields.RegionID).Error; err != nil {
			return nil, findErr("region", *fields.RegionID, err)
		}
	}

	updates := map[string]interface{}{}
	setUint(updates, "region_id", fields.RegionID)
	setStr(updates, "name", fields.Name)
	setStr(updates, "slug", fields.Slug)
	setStr(updates, "description", fields.Description)
	setStr(updates, "meta_title", fields.MetaTitle)
	setStr(updates, "meta_description", fields.MetaDescription)
	setStr(updates, "meta_keywords", fields.MetaKeywords)

	_, err = s.lc.ReplaceFeatured(district.FeaturedImage, file, func(tx *gorm.DB, path string) error {
		if fields.Slug != nil {
			if err := ensureSlugFree(tx, district.TableName(), *fields.Slug, id); err != nil {
				return err
			}
		}
		if file != nil {
			updates["featured_image"] = path
		}
		if len(updates) == 0 {
			return nil
		}
		return tx.Model(&model.District{}).Where("id = ?", id).Updates(updates).Error
	})
	if err != nil {
		return nil, err
	}
	return s.FindByID(id)
}

// Delete cascades to the district's villages and their gallery images.
func (s *DistrictsStore) Delete(id uint) ([]string, error) {
	district, err := s.FindByID(id)
	if err != nil {
		return nil, err
	}

	return s.lc.DeleteRecord(func(tx *gorm.DB) ([]string, error) {
		paths := []string{district.FeaturedImage}

		var villageIDs []uint
		if err := tx.Model(&model.Village{}).Where("district_id = ?", id).Pluck("id", &villageIDs).Error; err != nil {
			return nil, err
		}
		var villagePaths []string
		if err := tx.Model(&model.Village{}).Where("district_id = ?", id).Pluck("featured_image", &villagePaths).Error; err != nil {
			return nil, err
		}
		paths = append(paths, villagePaths...)

		galleryPaths, err := lifecycle.GalleryPathsTx(tx, model.KindVillage, villageIDs)
		if err != nil {
			return nil, err
		}
		paths = append(paths, galleryPaths...)

		if err := lifecycle.DeleteGalleryRowsTx(tx, model.KindVillage, villageIDs); err != nil {
			return nil, err
		}
		if err := tx.Where("district_id = ?", id).Delete(&model.Village{}).Error; err != nil {
			return nil, err
		}
		// Institutions outlive their district; detach them before the
		// district row goes so the FK cannot block the delete.
		if err := tx.Model(&model.Institution{}).Where("district_id = ?", id).
			Update("district_id", nil).Error; err != nil {
			return nil, err
		}
		return paths, tx.Delete(&model.District{}, id).Error
	})
}

func (s *DistrictsStore) FindByID(id uint) (*model.District, error) {
	var district model.District
	if err := s.db.First(&district, id).Error; err != nil {
		return nil, findErr("district", id, err)
	}
	return &district, nil
}

func (s *DistrictsStore) FindBySlug(slug string) (*model.District, error) {
	var district model.District
	if err := s.db.Where("slug = ?", slug).First(&district).Error; err != nil {
		return nil, findErr("district", slug, err)
	}
	return &district, nil
}

func (s *DistrictsStore) List(filter store.ListFilter) ([]model.District, error) {
	q := s.db.Model(&model.District{})
	if filter.ParentID != 0 {
		q = q.Where("region_id = ?", filter.ParentID)
	}
	q = applyFilter(q, filter, "name", "slug")

	districts := []model.District{}
	if err := q.Order("name ASC").Find(&districts).Error; err != nil {
		return nil, dbErr("list districts", err)
	}
	return districts, nil
}
