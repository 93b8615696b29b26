package store

// ListFilter carries the common list-endpoint parameters. Zero values mean
// "no constraint". ParentID scopes children (district→region, village→
// district, wildlife item→sanctuary, institution→district).
type ListFilter struct {
	Search   string
	Kind     string
	Category string
	ParentID uint
	Limit    int
	Offset   int
}
