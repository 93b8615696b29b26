package endpoints

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/trailpost/tourcms/pkg/apperr"
	"github.com/trailpost/tourcms/pkg/audit"
	"github.com/trailpost/tourcms/pkg/model"
	"github.com/trailpost/tourcms/pkg/server/store"
)

func (a *api) registerWildlife(public, admin *mux.Router) {
	public.HandleFunc("/sanctuaries", a.listSanctuaries).Methods("GET")
	public.HandleFunc("/sanctuaries/{id:[0-9]+}", a.getSanctuary).Methods("GET")
	public.HandleFunc("/sanctuaries/slug/{slug}", a.getSanctuaryBySlug).Methods("GET")
	public.HandleFunc("/sanctuaries/{id:[0-9]+}/wildlife/summary", a.wildlifeSummary).Methods("GET")

	admin.HandleFunc("/sanctuaries", a.createSanctuary).Methods("POST")
	admin.HandleFunc("/sanctuaries/{id:[0-9]+}", a.updateSanctuary).Methods("PUT")
	admin.HandleFunc("/sanctuaries/{id:[0-9]+}", a.deleteSanctuary).Methods("DELETE")

	a.registerGallery(admin, "/sanctuaries", model.KindSanctuary, a.sanctuaryExists)

	public.HandleFunc("/wildlife", a.listWildlifeItems).Methods("GET")
	public.HandleFunc("/wildlife/{id:[0-9]+}", a.getWildlifeItem).Methods("GET")
	public.HandleFunc("/wildlife/slug/{slug}", a.getWildlifeItemBySlug).Methods("GET")

	admin.HandleFunc("/wildlife", a.createWildlifeItem).Methods("POST")
	admin.HandleFunc("/wildlife/{id:[0-9]+}", a.updateWildlifeItem).Methods("PUT")
	admin.HandleFunc("/wildlife/{id:[0-9]+}", a.deleteWildlifeItem).Methods("DELETE")

	a.registerGallery(admin, "/wildlife", model.KindWildlifeItem, a.wildlifeItemExists)
}

func (a *api) sanctuaryExists(id uint) error {
	_, err := a.srv.SanctuariesStore.FindByID(id)
	return err
}

func (a *api) wildlifeItemExists(id uint) error {
	_, err := a.srv.WildlifeItemsStore.FindByID(id)
	return err
}

func (a *api) listSanctuaries(w http.ResponseWriter, r *http.Request) {
	sanctuaries, err := a.srv.SanctuariesStore.List(listFilter(r, a.srv.Config))
	if err != nil {
		respondError(w, a.srv.Logger, err)
		return
	}
	respondData(w, http.StatusOK, a.vc(r).sanctuaries(sanctuaries))
}

func (a *api) getSanctuary(w http.ResponseWriter, r *http.Request) {
	id, err := idVar(r, "id")
	if err != nil {
		respondError(w, a.srv.Logger, err)
		return
	}
	sanctuary, err := a.srv.SanctuariesStore.FindByID(id)
	if err != nil {
		respondError(w, a.srv.Logger, err)
		return
	}
	a.respondSanctuary(w, r, sanctuary)
}

func (a *api) getSanctuaryBySlug(w http.ResponseWriter, r *http.Request) {
	sanctuary, err := a.srv.SanctuariesStore.FindBySlug(mux.Vars(r)["slug"])
	if err != nil {
		respondError(w, a.srv.Logger, err)
		return
	}
	a.respondSanctuary(w, r, sanctuary)
}

func (a *api) respondSanctuary(w http.ResponseWriter, r *http.Request, sanctuary *model.Sanctuary) {
	gallery, err := a.srv.Lifecycle.GalleryFor(model.KindSanctuary, sanctuary.ID)
	if err != nil {
		respondError(w, a.srv.Logger, err)
		return
	}
	respondData(w, http.StatusOK, a.vc(r).sanctuary(sanctuary, gallery))
}

// wildlifeSummary reports per-category catalog counts for one sanctuary.
func (a *api) wildlifeSummary(w http.ResponseWriter, r *http.Request) {
	id, err := idVar(r, "id")
	if err != nil {
		respondError(w, a.srv.Logger, err)
		return
	}
	if err := a.sanctuaryExists(id); err != nil {
		respondError(w, a.srv.Logger, err)
		return
	}
	summary, err := a.srv.SanctuariesStore.Summary(id)
	if err != nil {
		respondError(w, a.srv.Logger, err)
		return
	}
	respondData(w, http.StatusOK, summary)
}

func (a *api) createSanctuary(w http.ResponseWriter, r *http.Request) {
	form, file, err := parseRequest(r, a.srv.Config.MaxUploadBytes, "featured_image")
	if err != nil {
		respondError(w, a.srv.Logger, err)
		return
	}
	if file != nil {
		defer file.Reader.Close()
	}

	fields := store.SanctuaryFields{
		Name:        form.strOr("name", ""),
		Slug:        form.strOr("slug", ""),
		Description: form.strOr("description", ""),
		SEO:         seoFrom(form),
	}

	sanctuary, err := a.srv.SanctuariesStore.Create(fields, file)
	if err != nil {
		respondError(w, a.srv.Logger, err)
		return
	}

	a.record(r, audit.ActionCreate, model.KindSanctuary, sanctuary.ID, sanctuary.Slug)
	respondData(w, http.StatusCreated, a.vc(r).sanctuary(sanctuary, nil))
}

func (a *api) updateSanctuary(w http.ResponseWriter, r *http.Request) {
	id, err := idVar(r, "id")
	if err != nil {
		respondError(w, a.srv.Logger, err)
		return
	}
	form, file, err := parseRequest(r, a.srv.Config.MaxUploadBytes, "featured_image")
	if err != nil {
		respondError(w, a.srv.Logger, err)
		return
	}
	file = keepCurrentImage(form, file, "featured_image")
	if file != nil {
		defer file.Reader.Close()
	}

	fields := store.SanctuaryUpdate{
		Name:            form.str("name"),
		Slug:            form.str("slug"),
		Description:     form.str("description"),
		MetaTitle:       form.str("meta_title"),
		MetaDescription: form.str("meta_description"),
		MetaKeywords:    form.str("meta_keywords"),
	}

	sanctuary, err := a.srv.SanctuariesStore.Update(id, fields, file)
	if err != nil {
		respondError(w, a.srv.Logger, err)
		return
	}

	a.record(r, audit.ActionUpdate, model.KindSanctuary, sanctuary.ID, sanctuary.Slug)
	a.respondSanctuary(w, r, sanctuary)
}

func (a *api) deleteSanctuary(w http.ResponseWriter, r *http.Request) {
	id, err := idVar(r, "id")
	if err != nil {
		respondError(w, a.srv.Logger, err)
		return
	}
	failed, err := a.srv.SanctuariesStore.Delete(id)
	if err != nil {
		respondError(w, a.srv.Logger, err)
		return
	}

	a.record(r, audit.ActionDelete, model.KindSanctuary, id, "")
	respondMessage(w, http.StatusOK, deleteMessage("sanctuary", failed))
}

func (a *api) listWildlifeItems(w http.ResponseWriter, r *http.Request) {
	filter, err := a.parentFilter(r, "sanctuary_id")
	if err != nil {
		respondError(w, a.srv.Logger, err)
		return
	}
	items, err := a.srv.WildlifeItemsStore.List(filter)
	if err != nil {
		respondError(w, a.srv.Logger, err)
		return
	}
	respondData(w, http.StatusOK, a.vc(r).wildlifeItems(items))
}

func (a *api) getWildlifeItem(w http.ResponseWriter, r *http.Request) {
	id, err := idVar(r, "id")
	if err != nil {
		respondError(w, a.srv.Logger, err)
		return
	}
	item, err := a.srv.WildlifeItemsStore.FindByID(id)
	if err != nil {
		respondError(w, a.srv.Logger, err)
		return
	}
	a.respondWildlifeItem(w, r, item)
}

func (a *api) getWildlifeItemBySlug(w http.ResponseWriter, r *http.Request) {
	item, err := a.srv.WildlifeItemsStore.FindBySlug(mux.Vars(r)["slug"])
	if err != nil {
		respondError(w, a.srv.Logger, err)
		return
	}
	a.respondWildlifeItem(w, r, item)
}

func (a *api) respondWildlifeItem(w http.ResponseWriter, r *http.Request, item *model.WildlifeItem) {
	gallery, err := a.srv.Lifecycle.GalleryFor(model.KindWildlifeItem, item.ID)
	if err != nil {
		respondError(w, a.srv.Logger, err)
		return
	}
	respondData(w, http.StatusOK, a.vc(r).wildlifeItem(item, gallery))
}

func wildlifeCategory(raw string) (model.WildlifeCategory, error) {
	switch model.WildlifeCategory(raw) {
	case model.WildlifeFlora, model.WildlifeFauna, model.WildlifeBird:
		return model.WildlifeCategory(raw), nil
	}
	return "", apperr.Validation("category must be flora, fauna or bird")
}

func (a *api) createWildlifeItem(w http.ResponseWriter, r *http.Request) {
	form, file, err := parseRequest(r, a.srv.Config.MaxUploadBytes, "featured_image")
	if err != nil {
		respondError(w, a.srv.Logger, err)
		return
	}
	if file != nil {
		defer file.Reader.Close()
	}

	sanctuaryID, err := form.uintField("sanctuary_id")
	if err != nil {
		respondError(w, a.srv.Logger, err)
		return
	}
	if sanctuaryID == nil {
		respondError(w, a.srv.Logger, apperr.Validation("sanctuary_id is required"))
		return
	}
	category, err := wildlifeCategory(form.strOr("category", ""))
	if err != nil {
		respondError(w, a.srv.Logger, err)
		return
	}

	fields := store.WildlifeItemFields{
		SanctuaryID: *sanctuaryID,
		Category:    category,
		Name:        form.strOr("name", ""),
		Slug:        form.strOr("slug", ""),
		Description: form.strOr("description", ""),
	}

	item, err := a.srv.WildlifeItemsStore.Create(fields, file)
	if err != nil {
		respondError(w, a.srv.Logger, err)
		return
	}

	a.record(r, audit.ActionCreate, model.KindWildlifeItem, item.ID, item.Slug)
	respondData(w, http.StatusCreated, a.vc(r).wildlifeItem(item, nil))
}

func (a *api) updateWildlifeItem(w http.ResponseWriter, r *http.Request) {
	id, err := idVar(r, "id")
	if err != nil {
		respondError(w, a.srv.Logger, err)
		return
	}
	form, file, err := parseRequest(r, a.srv.Config.MaxUploadBytes, "featured_image")
	if err != nil {
		respondError(w, a.srv.Logger, err)
		return
	}
	file = keepCurrentImage(form, file, "featured_image")
	if file != nil {
		defer file.Reader.Close()
	}

	fields := store.WildlifeItemUpdate{
		Name:        form.str("name"),
		Slug:        form.str("slug"),
		Description: form.str("description"),
	}
	if raw := form.str("category"); raw != nil {
		category, err := wildlifeCategory(*raw)
		if err != nil {
			respondError(w, a.srv.Logger, err)
			return
		}
		fields.Category = &category
	}

	item, err := a.srv.WildlifeItemsStore.Update(id, fields, file)
	if err != nil {
		respondError(w, a.srv.Logger, err)
		return
	}

	a.record(r, audit.ActionUpdate, model.KindWildlifeItem, item.ID, item.Slug)
	a.respondWildlifeItem(w, r, item)
}

func (a *api) deleteWildlifeItem(w http.ResponseWriter, r *http.Request) {
	id, err := idVar(r, "id")
	if err != nil {
		respondError(w, a.srv.Logger, err)
		return
	}
	failed, err := a.srv.WildlifeItemsStore.Delete(id)
	if err != nil {
		respondError(w, a.srv.Logger, err)
		return
	}

	a.record(r, audit.ActionDelete, model.KindWildlifeItem, id, "")
	respondMessage(w, http.StatusOK, deleteMessage("wildlife item", failed))
}
