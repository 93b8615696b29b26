package model

// SEO holds the meta fields every public-facing record carries.
// Treated as opaque text end to end.
type SEO struct {
	MetaTitle       string `gorm:"column:meta_title" json:"meta_title"`
	MetaDescription string `gorm:"column:meta_description" json:"meta_description"`
	MetaKeywords    string `gorm:"column:meta_keywords" json:"meta_keywords"`
}
