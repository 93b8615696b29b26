package endpoints

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/trailpost/tourcms/pkg/apperr"
	"github.com/trailpost/tourcms/pkg/audit"
	"github.com/trailpost/tourcms/pkg/model"
	"github.com/trailpost/tourcms/pkg/server/store"
)

func (a *api) registerVillages(public, admin *mux.Router) {
	public.HandleFunc("/villages", a.listVillages).Methods("GET")
	public.HandleFunc("/villages/{id:[0-9]+}", a.getVillage).Methods("GET")
	public.HandleFunc("/villages/slug/{slug}", a.getVillageBySlug).Methods("GET")

	admin.HandleFunc("/villages", a.createVillage).Methods("POST")
	admin.HandleFunc("/villages/{id:[0-9]+}", a.updateVillage).Methods("PUT")
	admin.HandleFunc("/villages/{id:[0-9]+}", a.deleteVillage).Methods("DELETE")

	a.registerGallery(admin, "/villages", model.KindVillage, a.villageExists)
}

func (a *api) villageExists(id uint) error {
	_, err := a.srv.VillagesStore.FindByID(id)
	return err
}

func (a *api) listVillages(w http.ResponseWriter, r *http.Request) {
	filter, err := a.parentFilter(r, "district_id")
	if err != nil {
		respondError(w, a.srv.Logger, err)
		return
	}
	villages, err := a.srv.VillagesStore.List(filter)
	if err != nil {
		respondError(w, a.srv.Logger, err)
		return
	}
	respondData(w, http.StatusOK, a.vc(r).villages(villages))
}

func (a *api) getVillage(w http.ResponseWriter, r *http.Request) {
	id, err := idVar(r, "id")
	if err != nil {
		respondError(w, a.srv.Logger, err)
		return
	}
	village, err := a.srv.VillagesStore.FindByID(id)
	if err != nil {
		respondError(w, a.srv.Logger, err)
		return
	}
	a.respondVillage(w, r, village)
}

func (a *api) getVillageBySlug(w http.ResponseWriter, r *http.Request) {
	village, err := a.srv.VillagesStore.FindBySlug(mux.Vars(r)["slug"])
	if err != nil {
		respondError(w, a.srv.Logger, err)
		return
	}
	a.respondVillage(w, r, village)
}

// respondVillage renders a village detail with its gallery attached.
func (a *api) respondVillage(w http.ResponseWriter, r *http.Request, village *model.Village) {
	gallery, err := a.srv.Lifecycle.GalleryFor(model.KindVillage, village.ID)
	if err != nil {
		respondError(w, a.srv.Logger, err)
		return
	}
	respondData(w, http.StatusOK, a.vc(r).village(village, gallery))
}

func (a *api) createVillage(w http.ResponseWriter, r *http.Request) {
	form, file, err := parseRequest(r, a.srv.Config.MaxUploadBytes, "featured_image")
	if err != nil {
		respondError(w, a.srv.Logger, err)
		return
	}
	if file != nil {
		defer file.Reader.Close()
	}

	districtID, err := form.uintField("district_id")
	if err != nil {
		respondError(w, a.srv.Logger, err)
		return
	}
	if districtID == nil {
		respondError(w, a.srv.Logger, apperr.Validation("district_id is required"))
		return
	}

	fields := store.VillageFields{
		DistrictID:  *districtID,
		Name:        form.strOr("name", ""),
		Slug:        form.strOr("slug", ""),
		Description: form.strOr("description", ""),
		SEO:         seoFrom(form),
	}

	village, err := a.srv.VillagesStore.Create(fields, file)
	if err != nil {
		respondError(w, a.srv.Logger, err)
		return
	}

	a.record(r, audit.ActionCreate, model.KindVillage, village.ID, village.Slug)
	respondData(w, http.StatusCreated, a.vc(r).village(village, nil))
}

func (a *api) updateVillage(w http.ResponseWriter, r *http.Request) {
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

	districtID, err := form.uintField("district_id")
	if err != nil {
		respondError(w, a.srv.Logger, err)
		return
	}

	fields := store.VillageUpdate{
		DistrictID:      districtID,
		Name:            form.str("name"),
		Slug:            form.str("slug"),
		Description:     form.str("description"),
		MetaTitle:       form.str("meta_title"),
		MetaDescription: form.str("meta_description"),
		MetaKeywords:    form.str("meta_keywords"),
	}

	village, err := a.srv.VillagesStore.Update(id, fields, file)
	if err != nil {
		respondError(w, a.srv.Logger, err)
		return
	}

	a.record(r, audit.ActionUpdate, model.KindVillage, village.ID, village.Slug)
	a.respondVillage(w, r, village)
}

func (a *api) deleteVillage(w http.ResponseWriter, r *http.Request) {
	id, err := idVar(r, "id")
	if err != nil {
		respondError(w, a.srv.Logger, err)
		return
	}
	failed, err := a.srv.VillagesStore.Delete(id)
	if err != nil {
		respondError(w, a.srv.Logger, err)
		return
	}

	a.record(r, audit.ActionDelete, model.KindVillage, id, "")
	respondMessage(w, http.StatusOK, deleteMessage("village", failed))
}
