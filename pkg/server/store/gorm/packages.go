package gorm

import (
	"gorm.io/gorm"

	"github.com/trailpost/tourcms/pkg/apperr"
	"github.com/trailpost/tourcms/pkg/lifecycle"
	"github.com/trailpost/tourcms/pkg/model"
	"github.com/trailpost/tourcms/pkg/server/store"
)

var _ store.PackagesStore = (*PackagesStore)(nil)

// PackagesStore implements store.PackagesStore using GORM.
type PackagesStore struct {
	db *gorm.DB
	lc *lifecycle.Manager
}

func NewPackagesStore(db *gorm.DB, lc *lifecycle.Manager) *PackagesStore {
	return &PackagesStore{db: db, lc: lc}
}

func (s *PackagesStore) Create(fields store.PackageFields, file *lifecycle.File) (*model.TourPackage, error) {
	var fieldErrs []apperr.FieldError
	if fields.Title == "" {
		fieldErrs = append(fieldErrs, apperr.FieldError{Field: "title", Message: "title is required"})
	}
	if fields.Slug == "" {
		fieldErrs = append(fieldErrs, apperr.FieldError{Field: "slug", Message: "slug is required"})
	}
	if fields.DurationDays < 0 {
		fieldErrs = append(fieldErrs, apperr.FieldError{Field: "duration_days", Message: "must not be negative"})
	}
	if fields.Price < 0 {
		fieldErrs = append(fieldErrs, apperr.FieldError{Field: "price", Message: "must not be negative"})
	}
	if len(fieldErrs) > 0 {
		return nil, apperr.Validation("invalid package", fieldErrs...)
	}

	pkg := model.TourPackage{
		Title:        fields.Title,
		Slug:         fields.Slug,
		Description:  fields.Description,
		DurationDays: fields.DurationDays,
		Price:        fields.Price,
		SEO:          fields.SEO,
	}

	_, err := s.lc.CreateWithFeatured(file, func(tx *gorm.DB, path string) error {
		if err := ensureSlugFree(tx, pkg.TableName(), fields.Slug, 0); err != nil {
			return err
		}
		pkg.FeaturedImage = path
		return tx.Create(&pkg).Error
	})
	if err != nil {
		return nil, err
	}
	return &pkg, nil
}

func (s *PackagesStore) Update(id uint, fields store.PackageUpdate, file *lifecycle.File) (*model.TourPackage, error) {
	pkg, err := s.FindByID(id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	setStr(updates, "title", fields.Title)
	setStr(updates, "slug", fields.Slug)
	setStr(updates, "description", fields.Description)
	setInt(updates, "duration_days", fields.DurationDays)
	setFloat(updates, "price", fields.Price)
	setStr(updates, "meta_title", fields.MetaTitle)
	setStr(updates, "meta_description", fields.MetaDescription)
	setStr(updates, "meta_keywords", fields.MetaKeywords)

	_, err = s.lc.ReplaceFeatured(pkg.FeaturedImage, file, func(tx *gorm.DB, path string) error {
		if fields.Slug != nil {
			if err := ensureSlugFree(tx, pkg.TableName(), *fields.Slug, id); err != nil {
				return err
			}
		}
		if file != nil {
			updates["featured_image"] = path
		}
		if len(updates) == 0 {
			return nil
		}
		return tx.Model(&model.TourPackage{}).Where("id = ?", id).Updates(updates).Error
	})
	if err != nil {
		return nil, err
	}
	return s.FindByID(id)
}

func (s *PackagesStore) Delete(id uint) ([]string, error) {
	pkg, err := s.FindByID(id)
	if err != nil {
		return nil, err
	}

	return s.lc.DeleteRecord(func(tx *gorm.DB) ([]string, error) {
		paths := []string{pkg.FeaturedImage}

		galleryPaths, err := lifecycle.GalleryPathsTx(tx, model.KindPackage, []uint{id})
		if err != nil {
			return nil, err
		}
		paths = append(paths, galleryPaths...)

		if err := lifecycle.DeleteGalleryRowsTx(tx, model.KindPackage, []uint{id}); err != nil {
			return nil, err
		}
		return paths, tx.Delete(&model.TourPackage{}, id).Error
	})
}

func (s *PackagesStore) FindByID(id uint) (*model.TourPackage, error) {
	var pkg model.TourPackage
	if err := s.db.First(&pkg, id).Error; err != nil {
		return nil, findErr("package", id, err)
	}
	return &pkg, nil
}

func (s *PackagesStore) FindBySlug(slug string) (*model.TourPackage, error) {
	var pkg model.TourPackage
	if err := s.db.Where("slug = ?", slug).First(&pkg).Error; err != nil {
		return nil, findErr("package", slug, err)
	}
	return &pkg, nil
}

func (s *PackagesStore) List(filter store.ListFilter) ([]model.TourPackage, error) {
	q := applyFilter(s.db.Model(&model.TourPackage{}), filter, "title", "slug")

	packages := []model.TourPackage{}
	if err := q.Order("title ASC").Find(&packages).Error; err != nil {
		return nil, dbErr("list packages", err)
	}
	return packages, nil
}
