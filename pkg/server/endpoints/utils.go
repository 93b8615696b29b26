package endpoints

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/trailpost/tourcms/pkg/apperr"
	"github.com/trailpost/tourcms/pkg/config"
	"github.com/trailpost/tourcms/pkg/imagestore"
	"github.com/trailpost/tourcms/pkg/lifecycle"
	"github.com/trailpost/tourcms/pkg/server/store"
)

// envelope is the uniform response shape.
type envelope struct {
	Success bool                `json:"success"`
	Data    interface{}         `json:"data,omitempty"`
	Message string              `json:"message,omitempty"`
	Error   string              `json:"error,omitempty"`
	Errors  []apperr.FieldError `json:"errors,omitempty"`
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, _ := json.Marshal(payload)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(response)
}

func respondData(w http.ResponseWriter, code int, data interface{}) {
	respondWithJSON(w, code, envelope{Success: true, Data: data})
}

func respondMessage(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, envelope{Success: true, Message: message})
}

// respondError maps the application error taxonomy to HTTP statuses.
// Storage and database failures surface a generic message unless running
// in development mode.
func respondError(w http.ResponseWriter, logger zerolog.Logger, err error) {
	var appErr *apperr.Error
	if !errors.As(err, &appErr) {
		logger.Error().Err(err).Msg("unhandled error")
		respondWithJSON(w, http.StatusInternalServerError,
			envelope{Success: false, Error: internalMessage(err)})
		return
	}

	switch appErr.Kind {
	case apperr.KindValidation:
		respondWithJSON(w, http.StatusBadRequest,
			envelope{Success: false, Error: appErr.Message, Errors: appErr.Fields})
	case apperr.KindNotFound:
		respondWithJSON(w, http.StatusNotFound, envelope{Success: false, Error: appErr.Message})
	case apperr.KindConflict:
		respondWithJSON(w, http.StatusConflict, envelope{Success: false, Error: appErr.Message})
	case apperr.KindUnsupportedMedia:
		respondWithJSON(w, http.StatusUnsupportedMediaType, envelope{Success: false, Error: appErr.Message})
	case apperr.KindPayloadTooLarge:
		respondWithJSON(w, http.StatusRequestEntityTooLarge, envelope{Success: false, Error: appErr.Message})
	default:
		logger.Error().Err(err).Str("kind", appErr.Kind.String()).Msg("operation failed")
		respondWithJSON(w, http.StatusInternalServerError,
			envelope{Success: false, Error: internalMessage(err)})
	}
}

func internalMessage(err error) string {
	if os.Getenv("TOURCMS_ENV") == "development" {
		return err.Error()
	}
	return "internal server error"
}

// deleteMessage reports the outcome of a delete including any files that
// could not be removed, so an operator can reconcile manually.
func deleteMessage(entity string, failedFiles []string) string {
	if len(failedFiles) == 0 {
		return entity + " deleted"
	}
	return fmt.Sprintf("%s deleted; %d file(s) could not be removed: %s",
		entity, len(failedFiles), strings.Join(failedFiles, ", "))
}

// idVar extracts a numeric path variable.
func idVar(r *http.Request, name string) (uint, error) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, apperr.Validation(fmt.Sprintf("invalid %s %q", name, raw))
	}
	return uint(id), nil
}

// listFilter builds the common list filter from query parameters, capping
// limit at the configured maximum.
func listFilter(r *http.Request, cfg *config.Config) store.ListFilter {
	q := r.URL.Query()
	filter := store.ListFilter{
		Search:   q.Get("search"),
		Kind:     q.Get("kind"),
		Category: q.Get("category"),
	}
	if v := q.Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			filter.Limit = n
		}
	}
	if cfg != nil && cfg.ListLimitMax > 0 && (filter.Limit == 0 || filter.Limit > cfg.ListLimitMax) {
		filter.Limit = cfg.ListLimitMax
	}
	if v := q.Get("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			filter.Offset = n
		}
	}
	return filter
}

// requestForm is a uniform accessor over the two request encodings: JSON
// bodies and multipart forms. Each handler reads exactly the fields it
// allows; nothing else reaches the stores.
type requestForm struct {
	values map[string]string
	json   map[string]interface{}
}

// parseRequest decodes the body and, for multipart requests, extracts the
// upload from the first of fileFields that is present. Returns a nil file
// when no upload was sent.
func parseRequest(r *http.Request, maxUpload int64, fileFields ...string) (*requestForm, *lifecycle.File, error) {
	contentType := r.Header.Get("Content-Type")

	if strings.HasPrefix(contentType, "multipart/form-data") {
		if err := r.ParseMultipartForm(32 << 20); err != nil {
			return nil, nil, apperr.Validation("malformed multipart form")
		}
		form := &requestForm{values: map[string]string{}}
		for key, vals := range r.MultipartForm.Value {
			if len(vals) > 0 {
				form.values[key] = vals[0]
			}
		}

		for _, field := range fileFields {
			headers := r.MultipartForm.File[field]
			if len(headers) == 0 {
				continue
			}
			header := headers[0]
			if maxUpload > 0 && header.Size > maxUpload {
				return nil, nil, apperr.New(apperr.KindPayloadTooLarge,
					fmt.Sprintf("file exceeds the %d byte upload limit", maxUpload))
			}
			f, err := header.Open()
			if err != nil {
				return nil, nil, apperr.Wrap(apperr.KindStorage, "failed to read upload", err)
			}
			// Closed by the handler completing; multipart cleanup removes temp files.
			file := &lifecycle.File{
				Reader: f,
				Info: imagestore.Upload{
					OriginalName: header.Filename,
					ContentType:  header.Header.Get("Content-Type"),
					Size:         header.Size,
				},
			}
			return form, file, nil
		}
		return form, nil, nil
	}

	form := &requestForm{json: map[string]interface{}{}}
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&form.json); err != nil {
			return nil, nil, apperr.Validation("malformed JSON body")
		}
	}
	return form, nil, nil
}

// keepCurrentImage drops an upload when the form's text value for the image
// field asks to keep the current one. Form clients resubmit the field as a
// sentinel string when the image was not changed; the sentinel wins over a
// stray file part. The dropped upload is closed here.
func keepCurrentImage(form *requestForm, file *lifecycle.File, fields ...string) *lifecycle.File {
	if file == nil {
		return nil
	}
	for _, field := range fields {
		if lifecycle.KeepExisting(form.strOr(field, "")) {
			_ = file.Reader.Close()
			return nil
		}
	}
	return file
}

// str returns the field value if it was supplied, nil otherwise.
func (f *requestForm) str(key string) *string {
	if f.values != nil {
		if v, ok := f.values[key]; ok {
			return &v
		}
		return nil
	}
	if raw, ok := f.json[key]; ok {
		if s, ok := raw.(string); ok {
			return &s
		}
	}
	return nil
}

func (f *requestForm) strOr(key, fallback string) string {
	if v := f.str(key); v != nil {
		return *v
	}
	return fallback
}

func (f *requestForm) uintField(key string) (*uint, error) {
	if f.values != nil {
		v, ok := f.values[key]
		if !ok || v == "" {
			return nil, nil
		}
		n, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			return nil, apperr.Validation(fmt.Sprintf("%s must be a number", key))
		}
		u := uint(n)
		return &u, nil
	}
	raw, ok := f.json[key]
	if !ok {
		return nil, nil
	}
	n, ok := raw.(float64)
	if !ok || n < 0 {
		return nil, apperr.Validation(fmt.Sprintf("%s must be a number", key))
	}
	u := uint(n)
	return &u, nil
}

func (f *requestForm) intField(key string) (*int, error) {
	if f.values != nil {
		v, ok := f.values[key]
		if !ok || v == "" {
			return nil, nil
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, apperr.Validation(fmt.Sprintf("%s must be a number", key))
		}
		return &n, nil
	}
	raw, ok := f.json[key]
	if !ok {
		return nil, nil
	}
	n, ok := raw.(float64)
	if !ok {
		return nil, apperr.Validation(fmt.Sprintf("%s must be a number", key))
	}
	i := int(n)
	return &i, nil
}

func (f *requestForm) floatField(key string) (*float64, error) {
	if f.values != nil {
		v, ok := f.values[key]
		if !ok || v == "" {
			return nil, nil
		}
		n, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, apperr.Validation(fmt.Sprintf("%s must be a number", key))
		}
		return &n, nil
	}
	raw, ok := f.json[key]
	if !ok {
		return nil, nil
	}
	n, ok := raw.(float64)
	if !ok {
		return nil, apperr.Validation(fmt.Sprintf("%s must be a number", key))
	}
	return &n, nil
}

// uintList reads an id list: a JSON array, or a comma-separated form value.
func (f *requestForm) uintList(key string) ([]uint, error) {
	if f.values != nil {
		v, ok := f.values[key]
		if !ok || v == "" {
			return nil, nil
		}
		parts := strings.Split(v, ",")
		ids := make([]uint, 0, len(parts))
		for _, part := range parts {
			n, err := strconv.ParseUint(strings.TrimSpace(part), 10, 32)
			if err != nil {
				return nil, apperr.Validation(fmt.Sprintf("%s must be a list of numbers", key))
			}
			ids = append(ids, uint(n))
		}
		return ids, nil
	}
	raw, ok := f.json[key]
	if !ok {
		return nil, nil
	}
	arr, ok := raw.([]interface{})
	if !ok {
		return nil, apperr.Validation(fmt.Sprintf("%s must be a list of numbers", key))
	}
	ids := make([]uint, 0, len(arr))
	for _, item := range arr {
		n, ok := item.(float64)
		if !ok || n < 0 {
			return nil, apperr.Validation(fmt.Sprintf("%s must be a list of numbers", key))
		}
		ids = append(ids, uint(n))
	}
	return ids, nil
}
