package store

import (
	"github.com/trailpost/tourcms/pkg/lifecycle"
	"github.com/trailpost/tourcms/pkg/model"
)

type InstitutionFields struct {
	Kind        model.InstitutionKind
	DistrictID  *uint
	Name        string
	Slug        string
	Address     string
	Description string
	SEO         model.SEO
}

type InstitutionUpdate struct {
	DistrictID      *uint
	Name            *string
	Slug            *string
	Address         *string
	Description     *string
	MetaTitle       *string
	MetaDescription *string
	MetaKeywords    *string
}

type InstitutionsStore interface {
	Create(fields InstitutionFields, file *lifecycle.File) (*model.Institution, error)
	Update(id uint, fields InstitutionUpdate, file *lifecycle.File) (*model.Institution, error)
	Delete(id uint) (failedFiles []string, err error)
	FindByID(id uint) (*model.Institution, error)
	FindBySlug(slug string) (*model.Institution, error)
	List(filter ListFilter) ([]model.Institution, error)
}
