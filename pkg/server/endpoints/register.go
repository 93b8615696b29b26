package endpoints

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/trailpost/tourcms/pkg/apperr"
	"github.com/trailpost/tourcms/pkg/audit"
	"github.com/trailpost/tourcms/pkg/model"
	"github.com/trailpost/tourcms/pkg/server"
	"github.com/trailpost/tourcms/pkg/server/middleware"
	"github.com/trailpost/tourcms/pkg/server/store"
)

// api carries the server wiring into the HTTP handlers.
type api struct {
	srv *server.Server
}

// RegisterAll mounts every route on the server's router. Reads are public;
// mutations sit behind the admin token middleware.
func RegisterAll(s *server.Server) {
	a := &api{srv: s}
	r := s.Router

	r.HandleFunc("/status", a.status).Methods("GET")
	r.PathPrefix("/uploads/").Handler(a.uploads()).Methods("GET")

	public := r.PathPrefix("/api").Subrouter()
	admin := r.PathPrefix("/api").Subrouter()
	admin.Use(s.Auth.Middleware)

	public.HandleFunc("/auth/login", a.login).Methods("POST")

	a.registerRegions(public, admin)
	a.registerDistricts(public, admin)
	a.registerVillages(public, admin)
	a.registerPackages(public, admin)
	a.registerWebStories(public, admin)
	a.registerWildlife(public, admin)
	a.registerInstitutions(public, admin)
	a.registerCulture(public, admin)
}

func (a *api) vc(r *http.Request) viewContext {
	return newViewContext(r, a.srv.Images, a.srv.Logger)
}

// record writes an audit event attributed to the authenticated admin.
func (a *api) record(r *http.Request, action string, kind model.EntityKind, id uint, detail string) {
	actor := middleware.Actor(r.Context())
	if actor == "" {
		actor = "unknown"
	}
	a.srv.Audit.Record(audit.Event{
		Actor:      actor,
		Action:     action,
		EntityKind: string(kind),
		EntityID:   id,
		Detail:     detail,
	})
}

// seoFrom reads the meta fields shared by every public-facing record.
func seoFrom(form *requestForm) model.SEO {
	return model.SEO{
		MetaTitle:       form.strOr("meta_title", ""),
		MetaDescription: form.strOr("meta_description", ""),
		MetaKeywords:    form.strOr("meta_keywords", ""),
	}
}

// parentFilter augments the common filter with a parent scope taken from
// the named query parameter.
func (a *api) parentFilter(r *http.Request, param string) (store.ListFilter, error) {
	filter := listFilter(r, a.srv.Config)
	if v := r.URL.Query().Get(param); v != "" {
		id, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			return filter, apperr.Validation(fmt.Sprintf("%s must be a number", param))
		}
		filter.ParentID = uint(id)
	}
	return filter, nil
}
