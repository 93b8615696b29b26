package endpoints

import (
	"net/http"
	"os"
)

// status reports whether the database and the uploads directory are usable.
// It responds 200 with per-check results, or 503 when any check fails.
func (a *api) status(w http.ResponseWriter, r *http.Request) {
	checks := map[string]string{
		"database": "ok",
		"uploads":  "ok",
	}
	healthy := true

	if err := a.srv.HealthStore.Ping(); err != nil {
		checks["database"] = err.Error()
		healthy = false
	}

	if info, err := os.Stat(a.srv.Images.Root()); err != nil || !info.IsDir() {
		checks["uploads"] = "uploads directory is not available"
		healthy = false
	}

	code := http.StatusOK
	if !healthy {
		code = http.StatusServiceUnavailable
	}
	respondData(w, code, checks)
}
