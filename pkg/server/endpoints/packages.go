package endpoints

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/trailpost/tourcms/pkg/audit"
	"github.com/trailpost/tourcms/pkg/model"
	"github.com/trailpost/tourcms/pkg/server/store"
)

func (a *api) registerPackages(public, admin *mux.Router) {
	public.HandleFunc("/packages", a.listPackages).Methods("GET")
	public.HandleFunc("/packages/{id:[0-9]+}", a.getPackage).Methods("GET")
	public.HandleFunc("/packages/slug/{slug}", a.getPackageBySlug).Methods("GET")

	admin.HandleFunc("/packages", a.createPackage).Methods("POST")
	admin.HandleFunc("/packages/{id:[0-9]+}", a.updatePackage).Methods("PUT")
	admin.HandleFunc("/packages/{id:[0-9]+}", a.deletePackage).Methods("DELETE")

	a.registerGallery(admin, "/packages", model.KindPackage, a.packageExists)
}

func (a *api) packageExists(id uint) error {
	_, err := a.srv.PackagesStore.FindByID(id)
	return err
}

func (a *api) listPackages(w http.ResponseWriter, r *http.Request) {
	pkgs, err := a.srv.PackagesStore.List(listFilter(r, a.srv.Config))
	if err != nil {
		respondError(w, a.srv.Logger, err)
		return
	}
	respondData(w, http.StatusOK, a.vc(r).tourPackages(pkgs))
}

func (a *api) getPackage(w http.ResponseWriter, r *http.Request) {
	id, err := idVar(r, "id")
	if err != nil {
		respondError(w, a.srv.Logger, err)
		return
	}
	pkg, err := a.srv.PackagesStore.FindByID(id)
	if err != nil {
		respondError(w, a.srv.Logger, err)
		return
	}
	a.respondPackage(w, r, pkg)
}

func (a *api) getPackageBySlug(w http.ResponseWriter, r *http.Request) {
	pkg, err := a.srv.PackagesStore.FindBySlug(mux.Vars(r)["slug"])
	if err != nil {
		respondError(w, a.srv.Logger, err)
		return
	}
	a.respondPackage(w, r, pkg)
}

func (a *api) respondPackage(w http.ResponseWriter, r *http.Request, pkg *model.TourPackage) {
	gallery, err := a.srv.Lifecycle.GalleryFor(model.KindPackage, pkg.ID)
	if err != nil {
		respondError(w, a.srv.Logger, err)
		return
	}
	respondData(w, http.StatusOK, a.vc(r).tourPackage(pkg, gallery))
}

func (a *api) createPackage(w http.ResponseWriter, r *http.Request) {
	form, file, err := parseRequest(r, a.srv.Config.MaxUploadBytes, "featured_image")
	if err != nil {
		respondError(w, a.srv.Logger, err)
		return
	}
	if file != nil {
		defer file.Reader.Close()
	}

	duration, err := form.intField("duration_days")
	if err != nil {
		respondError(w, a.srv.Logger, err)
		return
	}
	price, err := form.floatField("price")
	if err != nil {
		respondError(w, a.srv.Logger, err)
		return
	}

	fields := store.PackageFields{
		Title:       form.strOr("title", ""),
		Slug:        form.strOr("slug", ""),
		Description: form.strOr("description", ""),
		SEO:         seoFrom(form),
	}
	if duration != nil {
		fields.DurationDays = *duration
	}
	if price != nil {
		fields.Price = *price
	}

	pkg, err := a.srv.PackagesStore.Create(fields, file)
	if err != nil {
		respondError(w, a.srv.Logger, err)
		return
	}

	a.record(r, audit.ActionCreate, model.KindPackage, pkg.ID, pkg.Slug)
	respondData(w, http.StatusCreated, a.vc(r).tourPackage(pkg, nil))
}

func (a *api) updatePackage(w http.ResponseWriter, r *http.Request) {
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

	duration, err := form.intField("duration_days")
	if err != nil {
		respondError(w, a.srv.Logger, err)
		return
	}
	price, err := form.floatField("price")
	if err != nil {
		respondError(w, a.srv.Logger, err)
		return
	}

	fields := store.PackageUpdate{
		Title:           form.str("title"),
		Slug:            form.str("slug"),
		Description:     form.str("description"),
		DurationDays:    duration,
		Price:           price,
		MetaTitle:       form.str("meta_title"),
		MetaDescription: form.str("meta_description"),
		MetaKeywords:    form.str("meta_keywords"),
	}

	pkg, err := a.srv.PackagesStore.Update(id, fields, file)
	if err != nil {
		respondError(w, a.srv.Logger, err)
		return
	}

	a.record(r, audit.ActionUpdate, model.KindPackage, pkg.ID, pkg.Slug)
	a.respondPackage(w, r, pkg)
}

func (a *api) deletePackage(w http.ResponseWriter, r *http.Request) {
	id, err := idVar(r, "id")
	if err != nil {
		respondError(w, a.srv.Logger, err)
		return
	}
	failed, err := a.srv.PackagesStore.Delete(id)
	if err != nil {
		respondError(w, a.srv.Logger, err)
		return
	}

	a.record(r, audit.ActionDelete, model.KindPackage, id, "")
	respondMessage(w, http.StatusOK, deleteMessage("package", failed))
}
