package endpoints

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/trailpost/tourcms/pkg/audit"
	"github.com/trailpost/tourcms/pkg/model"
	"github.com/trailpost/tourcms/pkg/server/store"
)

func (a *api) registerWebStories(public, admin *mux.Router) {
	public.HandleFunc("/web-stories", a.listWebStories).Methods("GET")
	public.HandleFunc("/web-stories/{id:[0-9]+}", a.getWebStory).Methods("GET")
	public.HandleFunc("/web-stories/slug/{slug}", a.getWebStoryBySlug).Methods("GET")

	admin.HandleFunc("/web-stories", a.createWebStory).Methods("POST")
	admin.HandleFunc("/web-stories/{id:[0-9]+}", a.updateWebStory).Methods("PUT")
	admin.HandleFunc("/web-stories/{id:[0-9]+}", a.deleteWebStory).Methods("DELETE")

	a.registerGallery(admin, "/web-stories", model.KindWebStory, a.webStoryExists)
}

func (a *api) webStoryExists(id uint) error {
	_, err := a.srv.WebStoriesStore.FindByID(id)
	return err
}

func (a *api) listWebStories(w http.ResponseWriter, r *http.Request) {
	stories, err := a.srv.WebStoriesStore.List(listFilter(r, a.srv.Config))
	if err != nil {
		respondError(w, a.srv.Logger, err)
		return
	}
	respondData(w, http.StatusOK, a.vc(r).webStories(stories))
}

func (a *api) getWebStory(w http.ResponseWriter, r *http.Request) {
	id, err := idVar(r, "id")
	if err != nil {
		respondError(w, a.srv.Logger, err)
		return
	}
	story, err := a.srv.WebStoriesStore.FindByID(id)
	if err != nil {
		respondError(w, a.srv.Logger, err)
		return
	}
	a.respondWebStory(w, r, story)
}

func (a *api) getWebStoryBySlug(w http.ResponseWriter, r *http.Request) {
	story, err := a.srv.WebStoriesStore.FindBySlug(mux.Vars(r)["slug"])
	if err != nil {
		respondError(w, a.srv.Logger, err)
		return
	}
	a.respondWebStory(w, r, story)
}

// respondWebStory renders a story detail with its slides in display order.
func (a *api) respondWebStory(w http.ResponseWriter, r *http.Request, story *model.WebStory) {
	slides, err := a.srv.Lifecycle.GalleryFor(model.KindWebStory, story.ID)
	if err != nil {
		respondError(w, a.srv.Logger, err)
		return
	}
	respondData(w, http.StatusOK, a.vc(r).webStory(story, slides))
}

func (a *api) createWebStory(w http.ResponseWriter, r *http.Request) {
	form, file, err := parseRequest(r, a.srv.Config.MaxUploadBytes, "cover_image", "featured_image")
	if err != nil {
		respondError(w, a.srv.Logger, err)
		return
	}
	if file != nil {
		defer file.Reader.Close()
	}

	fields := store.WebStoryFields{
		Title: form.strOr("title", ""),
		Slug:  form.strOr("slug", ""),
		SEO:   seoFrom(form),
	}

	story, err := a.srv.WebStoriesStore.Create(fields, file)
	if err != nil {
		respondError(w, a.srv.Logger, err)
		return
	}

	a.record(r, audit.ActionCreate, model.KindWebStory, story.ID, story.Slug)
	respondData(w, http.StatusCreated, a.vc(r).webStory(story, nil))
}

func (a *api) updateWebStory(w http.ResponseWriter, r *http.Request) {
	id, err := idVar(r, "id")
	if err != nil {
		respondError(w, a.srv.Logger, err)
		return
	}
	form, file, err := parseRequest(r, a.srv.Config.MaxUploadBytes, "cover_image", "featured_image")
	if err != nil {
		respondError(w, a.srv.Logger, err)
		return
	}
	file = keepCurrentImage(form, file, "cover_image", "featured_image")
	if file != nil {
		defer file.Reader.Close()
	}

	fields := store.WebStoryUpdate{
		Title:           form.str("title"),
		Slug:            form.str("slug"),
		MetaTitle:       form.str("meta_title"),
		MetaDescription: form.str("meta_description"),
		MetaKeywords:    form.str("meta_keywords"),
	}

	story, err := a.srv.WebStoriesStore.Update(id, fields, file)
	if err != nil {
		respondError(w, a.srv.Logger, err)
		return
	}

	a.record(r, audit.ActionUpdate, model.KindWebStory, story.ID, story.Slug)
	a.respondWebStory(w, r, story)
}

func (a *api) deleteWebStory(w http.ResponseWriter, r *http.Request) {
	id, err := idVar(r, "id")
	if err != nil {
		respondError(w, a.srv.Logger, err)
		return
	}
	failed, err := a.srv.WebStoriesStore.Delete(id)
	if err != nil {
		respondError(w, a.srv.Logger, err)
		return
	}

	a.record(r, audit.ActionDelete, model.KindWebStory, id, "")
	respondMessage(w, http.StatusOK, deleteMessage("web story", failed))
}
