package endpoints

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/trailpost/tourcms/pkg/apperr"
	"github.com/trailpost/tourcms/pkg/audit"
	"github.com/trailpost/tourcms/pkg/model"
	"github.com/trailpost/tourcms/pkg/server/store"
)

func (a *api) registerDistricts(public, admin *mux.Router) {
	public.HandleFunc("/districts", a.listDistricts).Methods("GET")
	public.HandleFunc("/districts/{id:[0-9]+}", a.getDistrict).Methods("GET")
	public.HandleFunc("/districts/slug/{slug}", a.getDistrictBySlug).Methods("GET")

	admin.HandleFunc("/districts", a.createDistrict).Methods("POST")
	admin.HandleFunc("/districts/{id:[0-9]+}", a.updateDistrict).Methods("PUT")
	admin.HandleFunc("/districts/{id:[0-9]+}", a.deleteDistrict).Methods("DELETE")
}

func (a *api) listDistricts(w http.ResponseWriter, r *http.Request) {
	filter, err := a.parentFilter(r, "region_id")
	if err != nil {
		respondError(w, a.srv.Logger, err)
		return
	}
	districts, err := a.srv.DistrictsStore.List(filter)
	if err != nil {
		respondError(w, a.srv.Logger, err)
		return
	}
	respondData(w, http.StatusOK, a.vc(r).districts(districts))
}

func (a *api) getDistrict(w http.ResponseWriter, r *http.Request) {
	id, err := idVar(r, "id")
	if err != nil {
		respondError(w, a.srv.Logger, err)
		return
	}
	district, err := a.srv.DistrictsStore.FindByID(id)
	if err != nil {
		respondError(w, a.srv.Logger, err)
		return
	}
	respondData(w, http.StatusOK, a.vc(r).district(district))
}

func (a *api) getDistrictBySlug(w http.ResponseWriter, r *http.Request) {
	district, err := a.srv.DistrictsStore.FindBySlug(mux.Vars(r)["slug"])
	if err != nil {
		respondError(w, a.srv.Logger, err)
		return
	}
	respondData(w, http.StatusOK, a.vc(r).district(district))
}

func (a *api) createDistrict(w http.ResponseWriter, r *http.Request) {
	form, file, err := parseRequest(r, a.srv.Config.MaxUploadBytes, "featured_image")
	if err != nil {
		respondError(w, a.srv.Logger, err)
		return
	}
	if file != nil {
		defer file.Reader.Close()
	}

	regionID, err := form.uintField("region_id")
	if err != nil {
		respondError(w, a.srv.Logger, err)
		return
	}
	if regionID == nil {
		respondError(w, a.srv.Logger, apperr.Validation("region_id is required"))
		return
	}

	fields := store.DistrictFields{
		RegionID:    *regionID,
		Name:        form.strOr("name", ""),
		Slug:        form.strOr("slug", ""),
		Description: form.strOr("description", ""),
		SEO:         seoFrom(form),
	}

	district, err := a.srv.DistrictsStore.Create(fields, file)
	if err != nil {
		respondError(w, a.srv.Logger, err)
		return
	}

	a.record(r, audit.ActionCreate, model.KindDistrict, district.ID, district.Slug)
	respondData(w, http.StatusCreated, a.vc(r).district(district))
}

func (a *api) updateDistrict(w http.ResponseWriter, r *http.Request) {
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

	regionID, err := form.uintField("region_id")
	if err != nil {
		respondError(w, a.srv.Logger, err)
		return
	}

	fields := store.DistrictUpdate{
		RegionID:        regionID,
		Name:            form.str("name"),
		Slug:            form.str("slug"),
		Description:     form.str("description"),
		MetaTitle:       form.str("meta_title"),
		MetaDescription: form.str("meta_description"),
		MetaKeywords:    form.str("meta_keywords"),
	}

	district, err := a.srv.DistrictsStore.Update(id, fields, file)
	if err != nil {
		respondError(w, a.srv.Logger, err)
		return
	}

	a.record(r, audit.ActionUpdate, model.KindDistrict, district.ID, district.Slug)
	respondData(w, http.StatusOK, a.vc(r).district(district))
}

func (a *api) deleteDistrict(w http.ResponseWriter, r *http.Request) {
	id, err := idVar(r, "id")
	if err != nil {
		respondError(w, a.srv.Logger, err)
		return
	}
	failed, err := a.srv.DistrictsStore.Delete(id)
	if err != nil {
		respondError(w, a.srv.Logger, err)
		return
	}

	a.record(r, audit.ActionDelete, model.KindDistrict, id, "")
	respondMessage(w, http.StatusOK, deleteMessage("district", failed))
}
