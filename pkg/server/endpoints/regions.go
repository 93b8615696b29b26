package endpoints

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/trailpost/tourcms/pkg/apperr"
	"github.com/trailpost/tourcms/pkg/audit"
	"github.com/trailpost/tourcms/pkg/model"
	"github.com/trailpost/tourcms/pkg/server/store"
)

func (a *api) registerRegions(public, admin *mux.Router) {
	public.HandleFunc("/regions", a.listRegions).Methods("GET")
	public.HandleFunc("/regions/{id:[0-9]+}", a.getRegion).Methods("GET")
	public.HandleFunc("/regions/slug/{slug}", a.getRegionBySlug).Methods("GET")

	admin.HandleFunc("/regions", a.createRegion).Methods("POST")
	admin.HandleFunc("/regions/{id:[0-9]+}", a.updateRegion).Methods("PUT")
	admin.HandleFunc("/regions/{id:[0-9]+}", a.deleteRegion).Methods("DELETE")
}

func (a *api) listRegions(w http.ResponseWriter, r *http.Request) {
	filter := listFilter(r, a.srv.Config)
	regions, err := a.srv.RegionsStore.List(filter)
	if err != nil {
		respondError(w, a.srv.Logger, err)
		return
	}
	total, err := a.srv.RegionsStore.Count(filter)
	if err != nil {
		respondError(w, a.srv.Logger, err)
		return
	}
	respondData(w, http.StatusOK, map[string]interface{}{
		"items": a.vc(r).regions(regions),
		"total": total,
	})
}

func (a *api) getRegion(w http.ResponseWriter, r *http.Request) {
	id, err := idVar(r, "id")
	if err != nil {
		respondError(w, a.srv.Logger, err)
		return
	}
	region, err := a.srv.RegionsStore.FindByID(id)
	if err != nil {
		respondError(w, a.srv.Logger, err)
		return
	}
	respondData(w, http.StatusOK, a.vc(r).region(region))
}

func (a *api) getRegionBySlug(w http.ResponseWriter, r *http.Request) {
	region, err := a.srv.RegionsStore.FindBySlug(mux.Vars(r)["slug"])
	if err != nil {
		respondError(w, a.srv.Logger, err)
		return
	}
	respondData(w, http.StatusOK, a.vc(r).region(region))
}

func (a *api) createRegion(w http.ResponseWriter, r *http.Request) {
	form, file, err := parseRequest(r, a.srv.Config.MaxUploadBytes, "featured_image")
	if err != nil {
		respondError(w, a.srv.Logger, err)
		return
	}
	if file != nil {
		defer file.Reader.Close()
	}

	kind := model.RegionKind(form.strOr("kind", string(model.RegionState)))
	if kind != model.RegionState && kind != model.RegionTerritory {
		respondError(w, a.srv.Logger, apperr.Validation("kind must be state or territory"))
		return
	}

	fields := store.RegionFields{
		Kind:        kind,
		Name:        form.strOr("name", ""),
		Slug:        form.strOr("slug", ""),
		Capital:     form.strOr("capital", ""),
		Description: form.strOr("description", ""),
		SEO:         seoFrom(form),
	}

	region, err := a.srv.RegionsStore.Create(fields, file)
	if err != nil {
		respondError(w, a.srv.Logger, err)
		return
	}

	a.record(r, audit.ActionCreate, model.KindRegion, region.ID, region.Slug)
	respondData(w, http.StatusCreated, a.vc(r).region(region))
}

func (a *api) updateRegion(w http.ResponseWriter, r *http.Request) {
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

	fields := store.RegionUpdate{
		Name:            form.str("name"),
		Slug:            form.str("slug"),
		Capital:         form.str("capital"),
		Description:     form.str("description"),
		MetaTitle:       form.str("meta_title"),
		MetaDescription: form.str("meta_description"),
		MetaKeywords:    form.str("meta_keywords"),
	}

	region, err := a.srv.RegionsStore.Update(id, fields, file)
	if err != nil {
		respondError(w, a.srv.Logger, err)
		return
	}

	a.record(r, audit.ActionUpdate, model.KindRegion, region.ID, region.Slug)
	respondData(w, http.StatusOK, a.vc(r).region(region))
}

func (a *api) deleteRegion(w http.ResponseWriter, r *http.Request) {
	id, err := idVar(r, "id")
	if err != nil {
		respondError(w, a.srv.Logger, err)
		return
	}
	failed, err := a.srv.RegionsStore.Delete(id)
	if err != nil {
		respondError(w, a.srv.Logger, err)
		return
	}

	a.record(r, audit.ActionDelete, model.KindRegion, id, "")
	respondMessage(w, http.StatusOK, deleteMessage("region", failed))
}
