package store

import (
	"github.com/trailpost/tourcms/pkg/lifecycle"
	"github.com/trailpost/tourcms/pkg/model"
)

type VillageFields struct {
	DistrictID  uint
	Name        string
	Slug        string
	Description string
	SEO         model.SEO
}

type VillageUpdate struct {
	DistrictID      *uint
	Name            *string
	Slug            *string
	Description     *string
	MetaTitle       *string
	MetaDescription *string
	MetaKeywords    *string
}

type VillagesStore interface {
	Create(fields VillageFields, file *lifecycle.File) (*model.Village, error)
	Update(id uint, fields VillageUpdate, file *lifecycle.File) (*model.Village, error)
	Delete(id uint) (failedFiles []string, err error)
	FindByID(id uint) (*model.Village, error)
	FindBySlug(slug string) (*model.Village, error)
	List(filter ListFilter) ([]model.Village, error)
}
