package endpoints

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/trailpost/tourcms/pkg/audit"
	"github.com/trailpost/tourcms/pkg/model"
	"github.com/trailpost/tourcms/pkg/server/store"
)

func (a *api) registerCulture(public, admin *mux.Router) {
	public.HandleFunc("/culture", a.listCulture).Methods("GET")
	public.HandleFunc("/culture/{id:[0-9]+}", a.getCulture).Methods("GET")
	public.HandleFunc("/culture/slug/{slug}", a.getCultureBySlug).Methods("GET")

	admin.HandleFunc("/culture", a.createCulture).Methods("POST")
	admin.HandleFunc("/culture/{id:[0-9]+}", a.updateCulture).Methods("PUT")
	admin.HandleFunc("/culture/{id:[0-9]+}", a.deleteCulture).Methods("DELETE")
}

func (a *api) listCulture(w http.ResponseWriter, r *http.Request) {
	entries, err := a.srv.CultureStore.List(listFilter(r, a.srv.Config))
	if err != nil {
		respondError(w, a.srv.Logger, err)
		return
	}
	respondData(w, http.StatusOK, a.vc(r).cultureEntries(entries))
}

func (a *api) getCulture(w http.ResponseWriter, r *http.Request) {
	id, err := idVar(r, "id")
	if err != nil {
		respondError(w, a.srv.Logger, err)
		return
	}
	entry, err := a.srv.CultureStore.FindByID(id)
	if err != nil {
		respondError(w, a.srv.Logger, err)
		return
	}
	respondData(w, http.StatusOK, a.vc(r).cultureEntry(entry))
}

func (a *api) getCultureBySlug(w http.ResponseWriter, r *http.Request) {
	entry, err := a.srv.CultureStore.FindBySlug(mux.Vars(r)["slug"])
	if err != nil {
		respondError(w, a.srv.Logger, err)
		return
	}
	respondData(w, http.StatusOK, a.vc(r).cultureEntry(entry))
}

func (a *api) createCulture(w http.ResponseWriter, r *http.Request) {
	form, file, err := parseRequest(r, a.srv.Config.MaxUploadBytes, "featured_image")
	if err != nil {
		respondError(w, a.srv.Logger, err)
		return
	}
	if file != nil {
		defer file.Reader.Close()
	}

	fields := store.CultureFields{
		Category:    form.strOr("category", ""),
		Title:       form.strOr("title", ""),
		Slug:        form.strOr("slug", ""),
		Description: form.strOr("description", ""),
		SEO:         seoFrom(form),
	}

	entry, err := a.srv.CultureStore.Create(fields, file)
	if err != nil {
		respondError(w, a.srv.Logger, err)
		return
	}

	a.record(r, audit.ActionCreate, model.KindCulture, entry.ID, entry.Slug)
	respondData(w, http.StatusCreated, a.vc(r).cultureEntry(entry))
}

func (a *api) updateCulture(w http.ResponseWriter, r *http.Request) {
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

	fields := store.CultureUpdate{
		Category:        form.str("category"),
		Title:           form.str("title"),
		Slug:            form.str("slug"),
		Description:     form.str("description"),
		MetaTitle:       form.str("meta_title"),
		MetaDescription: form.str("meta_description"),
		MetaKeywords:    form.str("meta_keywords"),
	}

	entry, err := a.srv.CultureStore.Update(id, fields, file)
	if err != nil {
		respondError(w, a.srv.Logger, err)
		return
	}

	a.record(r, audit.ActionUpdate, model.KindCulture, entry.ID, entry.Slug)
	respondData(w, http.StatusOK, a.vc(r).cultureEntry(entry))
}

func (a *api) deleteCulture(w http.ResponseWriter, r *http.Request) {
	id, err := idVar(r, "id")
	if err != nil {
		respondError(w, a.srv.Logger, err)
		return
	}
	failed, err := a.srv.CultureStore.Delete(id)
	if err != nil {
		respondError(w, a.srv.Logger, err)
		return
	}

	a.record(r, audit.ActionDelete, model.KindCulture, id, "")
	respondMessage(w, http.StatusOK, deleteMessage("culture entry", failed))
}
