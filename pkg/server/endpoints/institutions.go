package endpoints

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/trailpost/tourcms/pkg/apperr"
	"github.com/trailpost/tourcms/pkg/audit"
	"github.com/trailpost/tourcms/pkg/model"
	"github.com/trailpost/tourcms/pkg/server/store"
)

func (a *api) registerInstitutions(public, admin *mux.Router) {
	public.HandleFunc("/institutions", a.listInstitutions).Methods("GET")
	public.HandleFunc("/institutions/{id:[0-9]+}", a.getInstitution).Methods("GET")
	public.HandleFunc("/institutions/slug/{slug}", a.getInstitutionBySlug).Methods("GET")

	admin.HandleFunc("/institutions", a.createInstitution).Methods("POST")
	admin.HandleFunc("/institutions/{id:[0-9]+}", a.updateInstitution).Methods("PUT")
	admin.HandleFunc("/institutions/{id:[0-9]+}", a.deleteInstitution).Methods("DELETE")
}

func institutionKind(raw string) (model.InstitutionKind, error) {
	switch model.InstitutionKind(raw) {
	case model.InstitutionEducation, model.InstitutionHealthcare:
		return model.InstitutionKind(raw), nil
	}
	return "", apperr.Validation("kind must be education or healthcare")
}

func (a *api) listInstitutions(w http.ResponseWriter, r *http.Request) {
	filter, err := a.parentFilter(r, "district_id")
	if err != nil {
		respondError(w, a.srv.Logger, err)
		return
	}
	institutions, err := a.srv.InstitutionsStore.List(filter)
	if err != nil {
		respondError(w, a.srv.Logger, err)
		return
	}
	respondData(w, http.StatusOK, a.vc(r).institutions(institutions))
}

func (a *api) getInstitution(w http.ResponseWriter, r *http.Request) {
	id, err := idVar(r, "id")
	if err != nil {
		respondError(w, a.srv.Logger, err)
		return
	}
	institution, err := a.srv.InstitutionsStore.FindByID(id)
	if err != nil {
		respondError(w, a.srv.Logger, err)
		return
	}
	respondData(w, http.StatusOK, a.vc(r).institution(institution))
}

func (a *api) getInstitutionBySlug(w http.ResponseWriter, r *http.Request) {
	institution, err := a.srv.InstitutionsStore.FindBySlug(mux.Vars(r)["slug"])
	if err != nil {
		respondError(w, a.srv.Logger, err)
		return
	}
	respondData(w, http.StatusOK, a.vc(r).institution(institution))
}

func (a *api) createInstitution(w http.ResponseWriter, r *http.Request) {
	form, file, err := parseRequest(r, a.srv.Config.MaxUploadBytes, "featured_image")
	if err != nil {
		respondError(w, a.srv.Logger, err)
		return
	}
	if file != nil {
		defer file.Reader.Close()
	}

	kind, err := institutionKind(form.strOr("kind", ""))
	if err != nil {
		respondError(w, a.srv.Logger, err)
		return
	}
	districtID, err := form.uintField("district_id")
	if err != nil {
		respondError(w, a.srv.Logger, err)
		return
	}

	fields := store.InstitutionFields{
		Kind:        kind,
		DistrictID:  districtID,
		Name:        form.strOr("name", ""),
		Slug:        form.strOr("slug", ""),
		Address:     form.strOr("address", ""),
		Description: form.strOr("description", ""),
		SEO:         seoFrom(form),
	}

	institution, err := a.srv.InstitutionsStore.Create(fields, file)
	if err != nil {
		respondError(w, a.srv.Logger, err)
		return
	}

	a.record(r, audit.ActionCreate, model.KindInstitution, institution.ID, institution.Slug)
	respondData(w, http.StatusCreated, a.vc(r).institution(institution))
}

func (a *api) updateInstitution(w http.ResponseWriter, r *http.Request) {
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

	fields := store.InstitutionUpdate{
		DistrictID:      districtID,
		Name:            form.str("name"),
		Slug:            form.str("slug"),
		Address:         form.str("address"),
		Description:     form.str("description"),
		MetaTitle:       form.str("meta_title"),
		MetaDescription: form.str("meta_description"),
		MetaKeywords:    form.str("meta_keywords"),
	}

	institution, err := a.srv.InstitutionsStore.Update(id, fields, file)
	if err != nil {
		respondError(w, a.srv.Logger, err)
		return
	}

	a.record(r, audit.ActionUpdate, model.KindInstitution, institution.ID, institution.Slug)
	respondData(w, http.StatusOK, a.vc(r).institution(institution))
}

func (a *api) deleteInstitution(w http.ResponseWriter, r *http.Request) {
	id, err := idVar(r, "id")
	if err != nil {
		respondError(w, a.srv.Logger, err)
		return
	}
	failed, err := a.srv.InstitutionsStore.Delete(id)
	if err != nil {
		respondError(w, a.srv.Logger, err)
		return
	}

	a.record(r, audit.ActionDelete, model.KindInstitution, id, "")
	respondMessage(w, http.StatusOK, deleteMessage("institution", failed))
}
