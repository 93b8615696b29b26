package store

import (
	"github.com/trailpost/tourcms/pkg/lifecycle"
	"github.com/trailpost/tourcms/pkg/model"
)

type DistrictFields struct {
	RegionID    uint
	Name        string
	Slug        string
	Description string
	SEO         model.SEO
}

type DistrictUpdate struct {
	RegionID        *uint
	Name            *string
	Slug            *string
	Description     *string
	MetaTitle       *string
	MetaDescription *string
	MetaKeywords    *string
}

// DistrictsStore abstracts district storage. Delete cascades to villages
// and their images.
type DistrictsStore interface {
	Create(fields DistrictFields, file *lifecycle.File) (*model.District, error)
	Update(id uint, fields DistrictUpdate, file *lifecycle.File) (*model.District, error)
	Delete(id uint) (failedFiles []string, err error)
	FindByID(id uint) (*model.District, error)
	FindBySlug(slug string) (*model.District, error)
	List(filter ListFilter) ([]model.District, error)
}
