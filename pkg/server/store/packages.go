package store

import (
	"github.com/trailpost/tourcms/pkg/lifecycle"
	"github.com/trailpost/tourcms/pkg/model"
)

type PackageFields struct {
	Title        string
	Slug         string
	Description  string
	DurationDays int
	Price        float64
	SEO          model.SEO
}

type PackageUpdate struct {
	Title           *string
	Slug            *string
	Description     *string
	DurationDays    *int
	Price           *float64
	MetaTitle       *string
	MetaDescription *string
	MetaKeywords    *string
}

type PackagesStore interface {
	Create(fields PackageFields, file *lifecycle.File) (*model.TourPackage, error)
	Update(id uint, fields PackageUpdate, file *lifecycle.File) (*model.TourPackage, error)
	Delete(id uint) (failedFiles []string, err error)
	FindByID(id uint) (*model.TourPackage, error)
	FindBySlug(slug string) (*model.TourPackage, error)
	List(filter ListFilter) ([]model.TourPackage, error)
}
