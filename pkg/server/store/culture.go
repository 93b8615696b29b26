package store

import (
	"github.com/trailpost/tourcms/pkg/lifecycle"
	"github.com/trailpost/tourcms/pkg/model"
)

type CultureFields struct {
	Category    string
	Title       string
	Slug        string
	Description string
	SEO         model.SEO
}

type CultureUpdate struct {
	Category        *string
	Title           *string
	Slug            *string
	Description     *string
	MetaTitle       *string
	MetaDescription *string
	MetaKeywords    *string
}

type CultureStore interface {
	Create(fields CultureFields, file *lifecycle.File) (*model.CultureEntry, error)
	Update(id uint, fields CultureUpdate, file *lifecycle.File) (*model.CultureEntry, error)
	Delete(id uint) (failedFiles []string, err error)
	FindByID(id uint) (*model.CultureEntry, error)
	FindBySlug(slug string) (*model.CultureEntry, error)
	List(filter ListFilter) ([]model.CultureEntry, error)
}
