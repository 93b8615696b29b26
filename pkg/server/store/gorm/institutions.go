package gorm

import (
	"gorm.io/gorm"

	"github.com/trailpost/tourcms/pkg/apperr"
	"github.com/trailpost/tourcms/pkg/lifecycle"
	"github.com/trailpost/tourcms/pkg/model"
	"github.com/trailpost/tourcms/pkg/server/store"
)

var _ store.InstitutionsStore = (*InstitutionsStore)(nil)

// InstitutionsStore implements store.InstitutionsStore using GORM. The kind
// discriminant is part of the record, not the URL.
type InstitutionsStore struct {
	db *gorm.DB
	lc *lifecycle.Manager
}

func NewInstitutionsStore(db *gorm.DB, lc *lifecycle.Manager) *InstitutionsStore {
	return &InstitutionsStore{db: db, lc: lc}
}

func (s *InstitutionsStore) Create(fields store.InstitutionFields, file *lifecycle.File) (*model.Institution, error) {
	var fieldErrs []apperr.FieldError
	if fields.Kind != model.InstitutionEducation && fields.Kind != model.InstitutionHealthcare {
		fieldErrs = append(fieldErrs, apperr.FieldError{Field: "kind", Message: "must be education or healthcare"})
	}
	if fields.Name == "" {
		fieldErrs = append(fieldErrs, apperr.FieldError{Field: "name", Message: "name is required"})
	}
	if fields.Slug == "" {
		fieldErrs = append(fieldErrs, apperr.FieldError{Field: "slug", Message: "slug is required"})
	}
	if len(fieldErrs) > 0 {
		return nil, apperr.Validation("invalid institution", fieldErrs...)
	}

	if fields.DistrictID != nil {
		if err := s.db.First(&model.District{}, *fields.DistrictID).Error; err != nil {
			return nil, findErr("district", *fields.DistrictID, err)
		}
	}

	inst := model.Institution{
		Kind:        fields.Kind,
		DistrictID:  fields.DistrictID,
		Name:        fields.Name,
		Slug:        fields.Slug,
		Address:     fields.Address,
		Description: fields.Description,
		SEO:         fields.SEO,
	}

	_, err := s.lc.CreateWithFeatured(file, func(tx *gorm.DB, path string) error {
		if err := ensureSlugFree(tx, inst.TableName(), fields.Slug, 0); err != nil {
			return err
		}
		inst.FeaturedImage = path
		return tx.Create(&inst).Error
	})
	if err != nil {
		return nil, err
	}
	return &inst, nil
}

func (s *InstitutionsStore) Update(id uint, fields store.InstitutionUpdate, file *lifecycle.File) (*model.Institution, error) {
	inst, err := s.FindByID(id)
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
	setStr(updates, "address", fields.Address)
	setStr(updates, "description", fields.Description)
	setStr(updates, "meta_title", fields.MetaTitle)
	setStr(updates, "meta_description", fields.MetaDescription)
	setStr(updates, "meta_keywords", fields.MetaKeywords)

	_, err = s.lc.ReplaceFeatured(inst.FeaturedImage, file, func(tx *gorm.DB, path string) error {
		if fields.Slug != nil {
			if err := ensureSlugFree(tx, inst.TableName(), *fields.Slug, id); err != nil {
				return err
			}
		}
		if file != nil {
			updates["featured_image"] = path
		}
		if len(updates) == 0 {
			return nil
		}
		return tx.Model(&model.Institution{}).Where("id = ?", id).Updates(updates).Error
	})
	if err != nil {
		return nil, err
	}
	return s.FindByID(id)
}

func (s *InstitutionsStore) Delete(id uint) ([]string, error) {
	inst, err := s.FindByID(id)
	if err != nil {
		return nil, err
	}

	return s.lc.DeleteRecord(func(tx *gorm.DB) ([]string, error) {
		return []string{inst.FeaturedImage}, tx.Delete(&model.Institution{}, id).Error
	})
}

func (s *InstitutionsStore) FindByID(id uint) (*model.Institution, error) {
	var inst model.Institution
	if err := s.db.First(&inst, id).Error; err != nil {
		return nil, findErr("institution", id, err)
	}
	return &inst, nil
}

func (s *InstitutionsStore) FindBySlug(slug string) (*model.Institution, error) {
	var inst model.Institution
	if err := s.db.Where("slug = ?", slug).First(&inst).Error; err != nil {
		return nil, findErr("institution", slug, err)
	}
	return &inst, nil
}

func (s *InstitutionsStore) List(filter store.ListFilter) ([]model.Institution, error) {
	q := s.db.Model(&model.Institution{})
	if filter.Kind != "" {
		q = q.Where("kind = ?", filter.Kind)
	}
	if filter.ParentID != 0 {
		q = q.Where("district_id = ?", filter.ParentID)
	}
	q = applyFilter(q, filter, "name", "slug")

	institutions := []model.Institution{}
	if err := q.Order("name ASC").Find(&institutions).Error; err != nil {
		return nil, dbErr("list institutions", err)
	}
	return institutions, nil
}
