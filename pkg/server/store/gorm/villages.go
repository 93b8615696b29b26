package gorm

import (
	"gorm.io/gorm"

	"github.com/trailpost/tourcms/pkg/apperr"
	"github.com/trailpost/tourcms/pkg/lifecycle"
	"github.com/trailpost/tourcms/pkg/model"
	"github.com/trailpost/tourcms/pkg/server/store"
)

var _ store.VillagesStore = (*VillagesStore)(nil)

// VillagesStore implements store.VillagesStore using GORM.
type VillagesStore struct {
	db *gorm.DB
	lc *lifecycle.Manager
}

func NewVillagesStore(db *gorm.DB, lc *lifecycle.Manager) *VillagesStore {
	return &VillagesStore{db: db, lc: lc}
}

func (s *VillagesStore) Create(fields store.VillageFields, file *lifecycle.File) (*model.Village, error) {
	var fieldErrs []apperr.FieldError
	if fields.DistrictID == 0 {
		fieldErrs = append(fieldErrs, apperr.FieldError{Field: "district_id", Message: "district_id is required"})
	}
	if fields.Name == "" {
		fieldErrs = append(fieldErrs, apperr.FieldError{Field: "name", Message: "name is required"})
	}
	if fields.Slug == "" {
		fieldErrs = append(fieldErrs, apperr.FieldError{Field: "slug", Message: "slug is required"})
	}
	if len(fieldErrs) > 0 {
		return nil, apperr.Validation("invalid village", fieldErrs...)
	}

	if err := s.db.First(&model.District{}, fields.DistrictID).Error; err != nil {
		return nil, findErr("district", fields.DistrictID, err)
	}

	village := model.Village{
		DistrictID:  fields.DistrictID,
		Name:        fields.Name,
		Slug:        fields.Slug,
		Description: fields.Description,
		SEO:         fields.SEO,
	}

	_, err := s.lc.CreateWithFeatured(file, func(tx *gorm.DB, path string) error {
		if err := ensureSlugFree(tx, village.TableName(), fields.Slug, 0); err != nil {
			return err
		}
		village.FeaturedImage = path
		return tx.Create(&village).Error
	})
	if err != nil {
		return nil, err
	}
	return &village, nil
}

func (s *VillagesStore) Update(id uint, fields store.VillageUpdate, file *lifecycle.File) (*model.Village, error) {
	village, err := s.FindByID(id)
	if err != nil {
		return nil, err
	}

	if fields.DistrictID != nil {
		if err := s.db.First(&model.District{}, *fields.DistrictID).Error; err != nil {
			return nil, findErr("district", *fields.DistrictID, err)
		}
	}

	updates := map[string]interface{}{}
	setUint(updates, "district_id", fields.DistrictID)
	setStr(updates, "name", fields.Name)
	setStr(updates, "slug", fields.Slug)
	setStr(updates, "description", fields.Description)
	setStr(updates, "meta_title", fields.MetaTitle)
	setStr(updates, "meta_description", fields.MetaDescription)
	setStr(updates, "meta_keywords", fields.MetaKeywords)

	_, err = s.lc.ReplaceFeatured(village.FeaturedImage, file, func(tx *gorm.DB, path string) error {
		if fields.Slug != nil {
			if err := ensureSlugFree(tx, village.TableName(), *fields.Slug, id); err != nil {
				return err
			}
		}
		if file != nil {
			updates["featured_image"] = path
		}
		if len(updates) == 0 {
			return nil
		}
		return tx.Model(&model.Village{}).Where("id = ?", id).Updates(updates).Error
	})
	if err != nil {
		return nil, err
	}
	return s.FindByID(id)
}

// Delete removes the village row, its gallery rows and all their files.
func (s *VillagesStore) Delete(id uint) ([]string, error) {
	village, err := s.FindByID(id)
	if err != nil {
		return nil, err
	}

	return s.lc.DeleteRecord(func(tx *gorm.DB) ([]string, error) {
		paths := []string{village.FeaturedImage}

		galleryPaths, err := lifecycle.GalleryPathsTx(tx, model.KindVillage, []uint{id})
		if err != nil {
			return nil, err
		}
		paths = append(paths, galleryPaths...)

		if err := lifecycle.DeleteGalleryRowsTx(tx, model.KindVillage, []uint{id}); err != nil {
			return nil, err
		}
		return paths, tx.Delete(&model.Village{}, id).Error
	})
}

func (s *VillagesStore) FindByID(id uint) (*model.Village, error) {
	var village model.Village
	if err := s.db.First(&village, id).Error; err != nil {
		return nil, findErr("village", id, err)
	}
	return &village, nil
}

func (s *VillagesStore) FindBySlug(slug string) (*model.Village, error) {
	var village model.Village
	if err := s.db.Where("slug = ?", slug).First(&village).Error; err != nil {
		return nil, findErr("village", slug, err)
	}
	return &village, nil
}

func (s *VillagesStore) List(filter store.ListFilter) ([]model.Village, error) {
	q := s.db.Model(&model.Village{})
	if filter.ParentID != 0 {
		q = q.Where("district_id = ?", filter.ParentID)
	}
	q = applyFilter(q, filter, "name", "slug")

	villages := []model.Village{}
	if err := q.Order("name ASC").Find(&villages).Error; err != nil {
		return nil, dbErr("list villages", err)
	}
	return villages, nil
}
