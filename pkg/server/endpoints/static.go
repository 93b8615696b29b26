package endpoints

import (
	"net/http"
)

// uploads serves stored images directly from disk. Directory listings are
// refused; path traversal is blocked by http.FileServer's own cleaning plus
// the flat layout the image store writes.
func (a *api) uploads() http.Handler {
	fileServer := http.StripPrefix("/uploads/",
		http.FileServer(http.Dir(a.srv.Images.Root())))

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/uploads/" {
			http.NotFound(w, r)
			return
		}
		fileServer.ServeHTTP(w, r)
	})
}
