package endpoints

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/trailpost/tourcms/pkg/imagestore"
	"github.com/trailpost/tourcms/pkg/model"
	"github.com/trailpost/tourcms/pkg/render"
)

// Views are the JSON shapes handed to clients. Stored image paths are
// resolved to public URLs here and nowhere else; descriptions pass through
// as markdown unless the request asked for rendered HTML.

type regionView struct {
	ID            uint      `json:"id"`
	Kind          string    `json:"kind"`
	Name          string    `json:"name"`
	Slug          string    `json:"slug"`
	Capital       string    `json:"capital,omitempty"`
	Description   string    `json:"description"`
	FeaturedImage string    `json:"featured_image,omitempty"`
	SEO           model.SEO `json:"seo"`
}

type districtView struct {
	ID            uint      `json:"id"`
	RegionID      uint      `json:"region_id"`
	Name          string    `json:"name"`
	Slug          string    `json:"slug"`
	Description   string    `json:"description"`
	FeaturedImage string    `json:"featured_image,omitempty"`
	SEO           model.SEO `json:"seo"`
}

type galleryImageView struct {
	ID           uint   `json:"id"`
	URL          string `json:"url"`
	OriginalName string `json:"original_name,omitempty"`
	AltText      string `json:"alt_text,omitempty"`
	Caption      string `json:"caption,omitempty"`
	DisplayOrder int    `json:"display_order"`
}

type villageView struct {
	ID            uint               `json:"id"`
	DistrictID    uint               `json:"district_id"`
	Name          string             `json:"name"`
	Slug          string             `json:"slug"`
	Description   string             `json:"description"`
	FeaturedImage string             `json:"featured_image,omitempty"`
	Gallery       []galleryImageView `json:"gallery,omitempty"`
	SEO           model.SEO          `json:"seo"`
}

type packageView struct {
	ID            uint               `json:"id"`
	Title         string             `json:"title"`
	Slug          string             `json:"slug"`
	Description   string             `json:"description"`
	DurationDays  int                `json:"duration_days"`
	Price         float64            `json:"price"`
	FeaturedImage string             `json:"featured_image,omitempty"`
	Gallery       []galleryImageView `json:"gallery,omitempty"`
	SEO           model.SEO          `json:"seo"`
}

type webStoryView struct {
	ID         uint               `json:"id"`
	Title      string             `json:"title"`
	Slug       string             `json:"slug"`
	CoverImage string             `json:"cover_image,omitempty"`
	Slides     []galleryImageView `json:"slides,omitempty"`
	SEO        model.SEO          `json:"seo"`
}

type sanctuaryView struct {
	ID            uint               `json:"id"`
	Name          string             `json:"name"`
	Slug          string             `json:"slug"`
	Description   string             `json:"description"`
	FeaturedImage string             `json:"featured_image,omitempty"`
	Gallery       []galleryImageView `json:"gallery,omitempty"`
	SEO           model.SEO          `json:"seo"`
}

type wildlifeItemView struct {
	ID            uint               `json:"id"`
	SanctuaryID   uint               `json:"sanctuary_id"`
	Category      string             `json:"category"`
	Name          string             `json:"name"`
	Slug          string             `json:"slug"`
	Description   string             `json:"description"`
	FeaturedImage string             `json:"featured_image,omitempty"`
	Gallery       []galleryImageView `json:"gallery,omitempty"`
}

type institutionView struct {
	ID            uint      `json:"id"`
	Kind          string    `json:"kind"`
	DistrictID    *uint     `json:"district_id,omitempty"`
	Name          string    `json:"name"`
	Slug          string    `json:"slug"`
	Address       string    `json:"address,omitempty"`
	Description   string    `json:"description"`
	FeaturedImage string    `json:"featured_image,omitempty"`
	SEO           model.SEO `json:"seo"`
}

type cultureView struct {
	ID            uint      `json:"id"`
	Category      string    `json:"category,omitempty"`
	Title         string    `json:"title"`
	Slug          string    `json:"slug"`
	Description   string    `json:"description"`
	FeaturedImage string    `json:"featured_image,omitempty"`
	SEO           model.SEO `json:"seo"`
}

// viewContext carries per-request rendering options for view building.
type viewContext struct {
	images *imagestore.Store
	logger zerolog.Logger
	html   bool
}

func newViewContext(r *http.Request, images *imagestore.Store, logger zerolog.Logger) viewContext {
	return viewContext{
		images: images,
		logger: logger,
		html:   r.URL.Query().Get("render") == "html",
	}
}

func (vc viewContext) imageURL(path string) string {
	if path == "" {
		return ""
	}
	return vc.images.PublicURL(path)
}

// description renders markdown to HTML when requested. A rendering failure
// falls back to the raw text rather than failing the read.
func (vc viewContext) description(source string) string {
	if !vc.html || source == "" {
		return source
	}
	out, err := render.Markdown(source)
	if err != nil {
		vc.logger.Warn().Err(err).Msg("markdown rendering failed")
		return source
	}
	return out
}

func (vc viewContext) gallery(images []model.GalleryImage) []galleryImageView {
	if len(images) == 0 {
		return nil
	}
	views := make([]galleryImageView, 0, len(images))
	for _, img := range images {
		views = append(views, galleryImageView{
			ID:           img.ID,
			URL:          vc.imageURL(img.Path),
			OriginalName: img.OriginalName,
			AltText:      img.AltText,
			Caption:      img.Caption,
			DisplayOrder: img.DisplayOrder,
		})
	}
	return views
}

func (vc viewContext) region(m *model.Region) regionView {
	return regionView{
		ID:            m.ID,
		Kind:          string(m.Kind),
		Name:          m.Name,
		Slug:          m.Slug,
		Capital:       m.Capital,
		Description:   vc.description(m.Description),
		FeaturedImage: vc.imageURL(m.FeaturedImage),
		SEO:           m.SEO,
	}
}

func (vc viewContext) regions(ms []model.Region) []regionView {
	views := make([]regionView, 0, len(ms))
	for i := range ms {
		views = append(views, vc.region(&ms[i]))
	}
	return views
}

func (vc viewContext) district(m *model.District) districtView {
	return districtView{
		ID:            m.ID,
		RegionID:      m.RegionID,
		Name:          m.Name,
		Slug:          m.Slug,
		Description:   vc.description(m.Description),
		FeaturedImage: vc.imageURL(m.FeaturedImage),
		SEO:           m.SEO,
	}
}

func (vc viewContext) districts(ms []model.District) []districtView {
	views := make([]districtView, 0, len(ms))
	for i := range ms {
		views = append(views, vc.district(&ms[i]))
	}
	return views
}

func (vc viewContext) village(m *model.Village, gallery []model.GalleryImage) villageView {
	return villageView{
		ID:            m.ID,
		DistrictID:    m.DistrictID,
		Name:          m.Name,
		Slug:          m.Slug,
		Description:   vc.description(m.Description),
		FeaturedImage: vc.imageURL(m.FeaturedImage),
		Gallery:       vc.gallery(gallery),
		SEO:           m.SEO,
	}
}

func (vc viewContext) villages(ms []model.Village) []villageView {
	views := make([]villageView, 0, len(ms))
	for i := range ms {
		views = append(views, vc.village(&ms[i], nil))
	}
	return views
}

func (vc viewContext) tourPackage(m *model.TourPackage, gallery []model.GalleryImage) packageView {
	return packageView{
		ID:            m.ID,
		Title:         m.Title,
		Slug:          m.Slug,
		Description:   vc.description(m.Description),
		DurationDays:  m.DurationDays,
		Price:         m.Price,
		FeaturedImage: vc.imageURL(m.FeaturedImage),
		Gallery:       vc.gallery(gallery),
		SEO:           m.SEO,
	}
}

func (vc viewContext) tourPackages(ms []model.TourPackage) []packageView {
	views := make([]packageView, 0, len(ms))
	for i := range ms {
		views = append(views, vc.tourPackage(&ms[i], nil))
	}
	return views
}

func (vc viewContext) webStory(m *model.WebStory, slides []model.GalleryImage) webStoryView {
	return webStoryView{
		ID:         m.ID,
		Title:      m.Title,
		Slug:       m.Slug,
		CoverImage: vc.imageURL(m.CoverImage),
		Slides:     vc.gallery(slides),
		SEO:        m.SEO,
	}
}

func (vc viewContext) webStories(ms []model.WebStory) []webStoryView {
	views := make([]webStoryView, 0, len(ms))
	for i := range ms {
		views = append(views, vc.webStory(&ms[i], nil))
	}
	return views
}

func (vc viewContext) sanctuary(m *model.Sanctuary, gallery []model.GalleryImage) sanctuaryView {
	return sanctuaryView{
		ID:            m.ID,
		Name:          m.Name,
		Slug:          m.Slug,
		Description:   vc.description(m.Description),
		FeaturedImage: vc.imageURL(m.FeaturedImage),
		Gallery:       vc.gallery(gallery),
		SEO:           m.SEO,
	}
}

func (vc viewContext) sanctuaries(ms []model.Sanctuary) []sanctuaryView {
	views := make([]sanctuaryView, 0, len(ms))
	for i := range ms {
		views = append(views, vc.sanctuary(&ms[i], nil))
	}
	return views
}

func (vc viewContext) wildlifeItem(m *model.WildlifeItem, gallery []model.GalleryImage) wildlifeItemView {
	return wildlifeItemView{
		ID:            m.ID,
		SanctuaryID:   m.SanctuaryID,
		Category:      string(m.Category),
		Name:          m.Name,
		Slug:          m.Slug,
		Description:   vc.description(m.Description),
		FeaturedImage: vc.imageURL(m.FeaturedImage),
		Gallery:       vc.gallery(gallery),
	}
}

func (vc viewContext) wildlifeItems(ms []model.WildlifeItem) []wildlifeItemView {
	views := make([]wildlifeItemView, 0, len(ms))
	for i := range ms {
		views = append(views, vc.wildlifeItem(&ms[i], nil))
	}
	return views
}

func (vc viewContext) institution(m *model.Institution) institutionView {
	return institutionView{
		ID:            m.ID,
		Kind:          string(m.Kind),
		DistrictID:    m.DistrictID,
		Name:          m.Name,
		Slug:          m.Slug,
		Address:       m.Address,
		Description:   vc.description(m.Description),
		FeaturedImage: vc.imageURL(m.FeaturedImage),
		SEO:           m.SEO,
	}
}

func (vc viewContext) institutions(ms []model.Institution) []institutionView {
	views := make([]institutionView, 0, len(ms))
	for i := range ms {
		views = append(views, vc.institution(&ms[i]))
	}
	return views
}

func (vc viewContext) cultureEntry(m *model.CultureEntry) cultureView {
	return cultureView{
		ID:            m.ID,
		Category:      m.Category,
		Title:         m.Title,
		Slug:          m.Slug,
		Description:   vc.description(m.Description),
		FeaturedImage: vc.imageURL(m.FeaturedImage),
		SEO:           m.SEO,
	}
}

func (vc viewContext) cultureEntries(ms []model.CultureEntry) []cultureView {
	views := make([]cultureView, 0, len(ms))
	for i := range ms {
		views = append(views, vc.cultureEntry(&ms[i]))
	}
	return views
}
