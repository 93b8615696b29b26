package endpoints

import (
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"github.com/trailpost/tourcms/pkg/apperr"
)

// login exchanges admin credentials for a signed token. Unknown usernames
// and wrong passwords produce the same response.
func (a *api) login(w http.ResponseWriter, r *http.Request) {
	form, _, err := parseRequest(r, a.srv.Config.MaxUploadBytes)
	if err != nil {
		respondError(w, a.srv.Logger, err)
		return
	}

	username := form.strOr("username", "")
	password := form.strOr("password", "")
	if username == "" || password == "" {
		respondError(w, a.srv.Logger, apperr.Validation("username and password are required"))
		return
	}

	admin, err := a.srv.AuthStore.FindAdmin(username)
	if err != nil {
		if apperr.IsKind(err, apperr.KindNotFound) {
			respondWithJSON(w, http.StatusUnauthorized,
				envelope{Success: false, Error: "invalid credentials"})
			return
		}
		respondError(w, a.srv.Logger, err)
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)) != nil {
		respondWithJSON(w, http.StatusUnauthorized,
			envelope{Success: false, Error: "invalid credentials"})
		return
	}

	token, err := a.srv.Auth.Issue(admin.Username)
	if err != nil {
		respondError(w, a.srv.Logger, err)
		return
	}

	respondData(w, http.StatusOK, map[string]string{
		"token":    token,
		"username": admin.Username,
	})
}
