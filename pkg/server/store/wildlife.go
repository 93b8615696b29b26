package store

import (
	"github.com/trailpost/tourcms/pkg/lifecycle"
	"github.com/trailpost/tourcms/pkg/model"
)

type SanctuaryFields struct {
	Name        string
	Slug        string
	Description string
	SEO         model.SEO
}

type SanctuaryUpdate struct {
	Name            *string
	Slug            *string
	Description     *string
	MetaTitle       *string
	MetaDescription *string
	MetaKeywords    *string
}

type WildlifeItemFields struct {
	SanctuaryID uint
	Category    model.WildlifeCategory
	Name        string
	Slug        string
	Description string
}

type WildlifeItemUpdate struct {
	Category    *model.WildlifeCategory
	Name        *string
	Slug        *string
	Description *string
}

// WildlifeSummary is one grouped count of catalog items per category.
// Categories with zero items for a sanctuary do not appear.
type WildlifeSummary struct {
	Category model.WildlifeCategory `json:"category"`
	Count    int64                  `json:"count"`
}

// SanctuariesStore abstracts sanctuary storage. Delete cascades to the
// sanctuary's wildlife items and all images at both levels.
type SanctuariesStore interface {
	Create(fields SanctuaryFields, file *lifecycle.File) (*model.Sanctuary, error)
	Update(id uint, fields SanctuaryUpdate, file *lifecycle.File) (*model.Sanctuary, error)
	Delete(id uint) (failedFiles []string, err error)
	FindByID(id uint) (*model.Sanctuary, error)
	FindBySlug(slug string) (*model.Sanctuary, error)
	List(filter ListFilter) ([]model.Sanctuary, error)
	Summary(sanctuaryID uint) ([]WildlifeSummary, error)
}

type WildlifeItemsStore interface {
	Create(fields WildlifeItemFields, file *lifecycle.File) (*model.WildlifeItem, error)
	Update(id uint, fields WildlifeItemUpdate, file *lifecycle.File) (*model.WildlifeItem, error)
	Delete(id uint) (failedFiles []string, err error)
	FindByID(id uint) (*model.WildlifeItem, error)
	FindBySlug(slug string) (*model.WildlifeItem, error)
	List(filter ListFilter) ([]model.WildlifeItem, error)
}
