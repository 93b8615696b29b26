package store

import (
	"github.com/trailpost/tourcms/pkg/lifecycle"
	"github.com/trailpost/tourcms/pkg/model"
)

// RegionFields are the create-time fields for a region.
type RegionFields struct {
	Kind        model.RegionKind
	Name        string
	Slug        string
	Capital     string
	Description string
	SEO         model.SEO
}

// RegionUpdate carries partial-update fields; nil means "leave unchanged".
type RegionUpdate struct {
	Name            *string
	Slug            *string
	Capital         *string
	Description     *string
	MetaTitle       *string
	MetaDescription *string
	MetaKeywords    *string
}

// RegionsStore abstracts region storage. Delete cascades to districts,
// villages and every gallery image in the subtree; the returned slice lists
// files that could not be removed after the rows were gone.
type RegionsStore interface {
	Create(fields RegionFields, file *lifecycle.File) (*model.Region, error)
	Update(id uint, fields RegionUpdate, file *lifecycle.File) (*model.Region, error)
	Delete(id uint) (failedFiles []string, err error)
	FindByID(id uint) (*model.Region, error)
	FindBySlug(slug string) (*model.Region, error)
	List(filter ListFilter) ([]model.Region, error)
	Count(filter ListFilter) (int64, error)
}
