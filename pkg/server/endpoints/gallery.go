package endpoints

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/trailpost/tourcms/pkg/apperr"
	"github.com/trailpost/tourcms/pkg/audit"
	"github.com/trailpost/tourcms/pkg/lifecycle"
	"github.com/trailpost/tourcms/pkg/model"
)

// registerGallery mounts the shared secondary-image sub-resource under an
// owner route. exists is consulted first so a missing owner is a 404, not a
// silently orphaned image row.
func (a *api) registerGallery(admin *mux.Router, base string, kind model.EntityKind, exists func(id uint) error) {
	admin.HandleFunc(base+"/{id}/images", a.galleryAttach(kind, exists)).Methods("POST")
	admin.HandleFunc(base+"/{id}/images/{imageId}", a.galleryDetach(kind, exists)).Methods("DELETE")
	admin.HandleFunc(base+"/{id}/images/reorder", a.galleryReorder(kind, exists)).Methods("PUT")
}

func (a *api) galleryAttach(kind model.EntityKind, exists func(id uint) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idVar(r, "id")
		if err != nil {
			respondError(w, a.srv.Logger, err)
			return
		}
		if err := exists(id); err != nil {
			respondError(w, a.srv.Logger, err)
			return
		}

		form, file, err := parseRequest(r, a.srv.Config.MaxUploadBytes, "image", "featured_image")
		if err != nil {
			respondError(w, a.srv.Logger, err)
			return
		}
		if file == nil {
			respondError(w, a.srv.Logger, apperr.Validation("an image file is required"))
			return
		}
		defer file.Reader.Close()

		img, err := a.srv.Lifecycle.AttachGalleryImage(kind, id, *file, lifecycleMeta(form))
		if err != nil {
			respondError(w, a.srv.Logger, err)
			return
		}

		a.record(r, audit.ActionImageAttach, kind, id, fmt.Sprintf("image %d", img.ID))
		respondData(w, http.StatusCreated, a.vc(r).gallery([]model.GalleryImage{*img})[0])
	}
}

func (a *api) galleryDetach(kind model.EntityKind, exists func(id uint) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idVar(r, "id")
		if err != nil {
			respondError(w, a.srv.Logger, err)
			return
		}
		imageID, err := idVar(r, "imageId")
		if err != nil {
			respondError(w, a.srv.Logger, err)
			return
		}
		if err := exists(id); err != nil {
			respondError(w, a.srv.Logger, err)
			return
		}

		if err := a.srv.Lifecycle.DetachGalleryImage(kind, id, imageID); err != nil {
			respondError(w, a.srv.Logger, err)
			return
		}

		a.record(r, audit.ActionImageDetach, kind, id, fmt.Sprintf("image %d", imageID))
		respondMessage(w, http.StatusOK, "image deleted")
	}
}

func (a *api) galleryReorder(kind model.EntityKind, exists func(id uint) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idVar(r, "id")
		if err != nil {
			respondError(w, a.srv.Logger, err)
			return
		}
		if err := exists(id); err != nil {
			respondError(w, a.srv.Logger, err)
			return
		}

		form, _, err := parseRequest(r, a.srv.Config.MaxUploadBytes)
		if err != nil {
			respondError(w, a.srv.Logger, err)
			return
		}
		ids, err := form.uintList("image_ids")
		if err != nil {
			respondError(w, a.srv.Logger, err)
			return
		}

		if err := a.srv.Lifecycle.ReorderGallery(kind, id, ids); err != nil {
			respondError(w, a.srv.Logger, err)
			return
		}

		a.record(r, audit.ActionImageReorder, kind, id, fmt.Sprintf("%d images", len(ids)))

		images, err := a.srv.Lifecycle.GalleryFor(kind, id)
		if err != nil {
			respondError(w, a.srv.Logger, err)
			return
		}
		respondData(w, http.StatusOK, a.vc(r).gallery(images))
	}
}

func lifecycleMeta(form *requestForm) lifecycle.GalleryMeta {
	return lifecycle.GalleryMeta{
		AltText: form.strOr("alt_text", ""),
		Caption: form.strOr("caption", ""),
	}
}
