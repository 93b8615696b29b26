package model

// EntityKind tags a content record's table for lifecycle, audit and
// gallery-image ownership. Stored as plain strings.
type EntityKind string

const (
	KindRegion       EntityKind = "region"
	KindDistrict     EntityKind = "district"
	KindVillage      EntityKind = "village"
	KindPackage      EntityKind = "package"
	KindWebStory     EntityKind = "web_story"
	KindSanctuary    EntityKind = "sanctuary"
	KindWildlifeItem EntityKind = "wildlife_item"
	KindInstitution  EntityKind = "institution"
	KindCulture      EntityKind = "culture_entry"
)

// RegionKind discriminates states from union territories explicitly,
// instead of sniffing the request URL.
type RegionKind string

const (
	RegionState     RegionKind = "state"
	RegionTerritory RegionKind = "territory"
)

// InstitutionKind discriminates education from healthcare institutions.
type InstitutionKind string

const (
	InstitutionEducation  InstitutionKind = "education"
	InstitutionHealthcare InstitutionKind = "healthcare"
)

// WildlifeCategory groups sanctuary catalog items.
type WildlifeCategory string

const (
	WildlifeFlora WildlifeCategory = "flora"
	WildlifeFauna WildlifeCategory = "fauna"
	WildlifeBird  WildlifeCategory = "bird"
)
