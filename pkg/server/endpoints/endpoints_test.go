package endpoints

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/trailpost/tourcms/pkg/apperr"
	"github.com/trailpost/tourcms/pkg/audit"
	"github.com/trailpost/tourcms/pkg/config"
	"github.com/trailpost/tourcms/pkg/model"
	"github.com/trailpost/tourcms/pkg/server"
	gormstore "github.com/trailpost/tourcms/pkg/server/store/gorm"
)

type testEnv struct {
	srv   *server.Server
	token string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&model.Region{}, &model.District{}, &model.Village{},
		&model.TourPackage{}, &model.WebStory{},
		&model.Sanctuary{}, &model.WildlifeItem{},
		&model.Institution{}, &model.CultureEntry{},
		&model.GalleryImage{}, &model.AdminUser{},
		&audit.Event{},
	))

	cfg := &config.Config{
		BindAddress:          "127.0.0.1",
		Port:                 0,
		UploadsRoot:          t.TempDir(),
		PublicBaseURL:        "http://localhost:8000",
		MaxUploadBytes:       1 << 20,
		ListLimitMax:         100,
		AdminTokenSecret:     "test-secret",
		AdminTokenTTLMinutes: 60,
	}

	s, err := server.NewServer(cfg, db, zerolog.Nop())
	require.NoError(t, err)
	RegisterAll(s)

	token, err := s.Auth.Issue("tester")
	require.NoError(t, err)

	return &testEnv{srv: s, token: token}
}

func (e *testEnv) do(t *testing.T, method, path string, body interface{}, authed bool) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if authed {
		req.Header.Set("Authorization", "Bearer "+e.token)
	}

	w := httptest.NewRecorder()
	e.srv.Router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) doMultipart(t *testing.T, method, path string, fields map[string]string, fileField, fileName string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for key, value := range fields {
		require.NoError(t, mw.WriteField(key, value))
	}
	if fileField != "" {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition",
			fmt.Sprintf(`form-data; name=%q; filename=%q`, fileField, fileName))
		header.Set("Content-Type", "image/png")
		part, err := mw.CreatePart(header)
		require.NoError(t, err)
		_, err = part.Write([]byte("png bytes for testing"))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+e.token)

	w := httptest.NewRecorder()
	e.srv.Router.ServeHTTP(w, req)
	return w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), "body: %s", w.Body.String())
	return body
}

func dataOf(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	data, ok := decodeEnvelope(t, w)["data"].(map[string]interface{})
	require.True(t, ok, "body: %s", w.Body.String())
	return data
}

func (e *testEnv) createRegion(t *testing.T, name, slug string) uint {
	t.Helper()
	w := e.do(t, "POST", "/api/regions", map[string]interface{}{
		"kind": "state", "name": name, "slug": slug, "capital": "Capital City",
	}, true)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return uint(dataOf(t, w)["id"].(float64))
}

func (e *testEnv) createDistrict(t *testing.T, regionID uint, name, slug string) uint {
	t.Helper()
	w := e.do(t, "POST", "/api/districts", map[string]interface{}{
		"region_id": regionID, "name": name, "slug": slug,
	}, true)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return uint(dataOf(t, w)["id"].(float64))
}

func (e *testEnv) createVillage(t *testing.T, districtID uint, name, slug string) uint {
	t.Helper()
	w := e.do(t, "POST", "/api/villages", map[string]interface{}{
		"district_id": districtID, "name": name, "slug": slug,
	}, true)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return uint(dataOf(t, w)["id"].(float64))
}

func TestRegionCRUD(t *testing.T) {
	env := newTestEnv(t)

	t.Run("mutations require a token", func(t *testing.T) {
		w := env.do(t, "POST", "/api/regions", map[string]interface{}{
			"kind": "state", "name": "Test", "slug": "test",
		}, false)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("create and fetch", func(t *testing.T) {
		id := env.createRegion(t, "Andhra Pradesh", "andhra-pradesh")

		w := env.do(t, "GET", fmt.Sprintf("/api/regions/%d", id), nil, false)
		require.Equal(t, http.StatusOK, w.Code)
		data := dataOf(t, w)
		assert.Equal(t, "Andhra Pradesh", data["name"])
		assert.Equal(t, "state", data["kind"])

		w = env.do(t, "GET", "/api/regions/slug/andhra-pradesh", nil, false)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "andhra-pradesh", dataOf(t, w)["slug"])
	})

	t.Run("missing required fields", func(t *testing.T) {
		w := env.do(t, "POST", "/api/regions", map[string]interface{}{"kind": "state"}, true)
		require.Equal(t, http.StatusBadRequest, w.Code)
		body := decodeEnvelope(t, w)
		assert.Equal(t, false, body["success"])
		assert.NotEmpty(t, body["errors"])
	})

	t.Run("duplicate slug conflicts", func(t *testing.T) {
		env.createRegion(t, "Kerala", "kerala")
		w := env.do(t, "POST", "/api/regions", map[string]interface{}{
			"kind": "state", "name": "Kerala Again", "slug": "kerala", "capital": "X",
		}, true)
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("partial update leaves other fields alone", func(t *testing.T) {
		id := env.createRegion(t, "Goa", "goa")

		w := env.do(t, "PUT", fmt.Sprintf("/api/regions/%d", id), map[string]interface{}{
			"description": "Smallest state",
		}, true)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		data := dataOf(t, w)
		assert.Equal(t, "Smallest state", data["description"])
		assert.Equal(t, "Goa", data["name"], "untouched field must survive a partial update")
		assert.Equal(t, "goa", data["slug"])
	})

	t.Run("update to taken slug conflicts", func(t *testing.T) {
		env.createRegion(t, "Odisha", "odisha")
		id := env.createRegion(t, "Assam", "assam")

		w := env.do(t, "PUT", fmt.Sprintf("/api/regions/%d", id), map[string]interface{}{
			"slug": "odisha",
		}, true)
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("not found", func(t *testing.T) {
		w := env.do(t, "GET", "/api/regions/99999", nil, false)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("list with total", func(t *testing.T) {
		w := env.do(t, "GET", "/api/regions", nil, false)
		require.Equal(t, http.StatusOK, w.Code)
		data := dataOf(t, w)
		assert.NotEmpty(t, data["items"])
		assert.GreaterOrEqual(t, data["total"].(float64), float64(1))
	})

	t.Run("delete", func(t *testing.T) {
		id := env.createRegion(t, "Sikkim", "sikkim")

		w := env.do(t, "DELETE", fmt.Sprintf("/api/regions/%d", id), nil, true)
		require.Equal(t, http.StatusOK, w.Code)

		w = env.do(t, "GET", fmt.Sprintf("/api/regions/%d", id), nil, false)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestFeaturedImageLifecycle(t *testing.T) {
	env := newTestEnv(t)

	w := env.doMultipart(t, "POST", "/api/regions", map[string]string{
		"kind": "state", "name": "Telangana", "slug": "telangana", "capital": "Hyderabad",
	}, "featured_image", "charminar.png")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	data := dataOf(t, w)
	id := uint(data["id"].(float64))
	firstURL, _ := data["featured_image"].(string)
	require.NotEmpty(t, firstURL)
	assert.True(t, strings.Contains(firstURL, "/uploads/"), "got %q", firstURL)

	firstKey := firstURL[strings.LastIndex(firstURL, "/")+1:]
	assert.True(t, env.srv.Images.Exists(firstKey))

	t.Run("replace stores new file and removes old", func(t *testing.T) {
		w := env.doMultipart(t, "PUT", fmt.Sprintf("/api/regions/%d", id),
			map[string]string{}, "featured_image", "golconda.png")
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		newURL, _ := dataOf(t, w)["featured_image"].(string)
		require.NotEmpty(t, newURL)
		require.NotEqual(t, firstURL, newURL)

		newKey := newURL[strings.LastIndex(newURL, "/")+1:]
		assert.True(t, env.srv.Images.Exists(newKey))
		assert.False(t, env.srv.Images.Exists(firstKey), "replaced file must be removed")
	})

	t.Run("update without file keeps current image", func(t *testing.T) {
		w := env.do(t, "PUT", fmt.Sprintf("/api/regions/%d", id), map[string]interface{}{
			"description": "City of pearls",
		}, true)
		require.Equal(t, http.StatusOK, w.Code)
		url, _ := dataOf(t, w)["featured_image"].(string)
		assert.NotEmpty(t, url)
	})

	t.Run("keep sentinel wins over a stray upload", func(t *testing.T) {
		w := env.do(t, "GET", fmt.Sprintf("/api/regions/%d", id), nil, false)
		require.Equal(t, http.StatusOK, w.Code)
		before, _ := dataOf(t, w)["featured_image"].(string)
		require.NotEmpty(t, before)

		w = env.doMultipart(t, "PUT", fmt.Sprintf("/api/regions/%d", id),
			map[string]string{"featured_image": "existing_featured_image"},
			"featured_image", "stray.png")
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		after, _ := dataOf(t, w)["featured_image"].(string)
		assert.Equal(t, before, after)
	})

	t.Run("delete removes the file with the row", func(t *testing.T) {
		w := env.do(t, "GET", fmt.Sprintf("/api/regions/%d", id), nil, false)
		require.Equal(t, http.StatusOK, w.Code)
		url, _ := dataOf(t, w)["featured_image"].(string)
		key := url[strings.LastIndex(url, "/")+1:]
		require.True(t, env.srv.Images.Exists(key))

		w = env.do(t, "DELETE", fmt.Sprintf("/api/regions/%d", id), nil, true)
		require.Equal(t, http.StatusOK, w.Code)
		assert.False(t, env.srv.Images.Exists(key))
	})

	t.Run("unsupported upload type is a 415", func(t *testing.T) {
		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		require.NoError(t, mw.WriteField("kind", "state"))
		require.NoError(t, mw.WriteField("name", "Punjab"))
		require.NoError(t, mw.WriteField("slug", "punjab"))
		require.NoError(t, mw.WriteField("capital", "Chandigarh"))
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", `form-data; name="featured_image"; filename="doc.pdf"`)
		header.Set("Content-Type", "application/pdf")
		part, err := mw.CreatePart(header)
		require.NoError(t, err)
		_, _ = part.Write([]byte("%PDF-1.4"))
		require.NoError(t, mw.Close())

		req := httptest.NewRequest("POST", "/api/regions", &buf)
		req.Header.Set("Content-Type", mw.FormDataContentType())
		req.Header.Set("Authorization", "Bearer "+env.token)
		w := httptest.NewRecorder()
		env.srv.Router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnsupportedMediaType, w.Code)

		// The aborted create must not leave a row behind.
		check := env.do(t, "GET", "/api/regions/slug/punjab", nil, false)
		assert.Equal(t, http.StatusNotFound, check.Code)
	})
}

func TestGeographyCascadeDelete(t *testing.T) {
	env := newTestEnv(t)

	regionID := env.createRegion(t, "Madhya Pradesh", "madhya-pradesh")
	districtID := env.createDistrict(t, regionID, "Bhopal", "bhopal")
	villageID := env.createVillage(t, districtID, "Bhimbetka", "bhimbetka")

	w := env.doMultipart(t, "POST", fmt.Sprintf("/api/villages/%d/images", villageID),
		map[string]string{"alt_text": "rock shelters"}, "image", "caves.png")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = env.do(t, "POST", "/api/institutions", map[string]interface{}{
		"kind": "healthcare", "name": "District Hospital", "slug": "district-hospital",
		"district_id": districtID,
	}, true)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	institutionID := uint(dataOf(t, w)["id"].(float64))

	w = env.do(t, "DELETE", fmt.Sprintf("/api/regions/%d", regionID), nil, true)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	assert.Equal(t, http.StatusNotFound,
		env.do(t, "GET", fmt.Sprintf("/api/districts/%d", districtID), nil, false).Code)
	assert.Equal(t, http.StatusNotFound,
		env.do(t, "GET", fmt.Sprintf("/api/villages/%d", villageID), nil, false).Code)

	var galleryCount int64
	env.srv.DB.Model(&model.GalleryImage{}).Count(&galleryCount)
	assert.Zero(t, galleryCount, "cascade must take gallery rows with it")

	// Institutions outlive the subtree with their district reference cleared.
	var institution model.Institution
	require.NoError(t, env.srv.DB.First(&institution, institutionID).Error)
	assert.Nil(t, institution.DistrictID)
}

func TestDistrictDeleteDetachesInstitutions(t *testing.T) {
	env := newTestEnv(t)

	regionID := env.createRegion(t, "Karnataka", "karnataka")
	districtID := env.createDistrict(t, regionID, "Mysuru", "mysuru")

	w := env.do(t, "POST", "/api/institutions", map[string]interface{}{
		"kind": "education", "name": "Sanskrit College", "slug": "sanskrit-college",
		"district_id": districtID,
	}, true)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	institutionID := uint(dataOf(t, w)["id"].(float64))

	w = env.do(t, "DELETE", fmt.Sprintf("/api/districts/%d", districtID), nil, true)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var institution model.Institution
	require.NoError(t, env.srv.DB.First(&institution, institutionID).Error)
	assert.Nil(t, institution.DistrictID)
}

func TestVillageGallery(t *testing.T) {
	env := newTestEnv(t)

	regionID := env.createRegion(t, "Nagaland", "nagaland")
	districtID := env.createDistrict(t, regionID, "Kohima", "kohima")
	villageID := env.createVillage(t, districtID, "Khonoma", "khonoma")

	attachOne := func(name string) uint {
		w := env.doMultipart(t, "POST", fmt.Sprintf("/api/villages/%d/images", villageID),
			map[string]string{"alt_text": name, "caption": "terrace fields"}, "image", name)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		return uint(dataOf(t, w)["id"].(float64))
	}

	first := attachOne("one.png")
	second := attachOne("two.png")
	third := attachOne("three.png")

	t.Run("attach requires a file", func(t *testing.T) {
		w := env.doMultipart(t, "POST", fmt.Sprintf("/api/villages/%d/images", villageID),
			map[string]string{"alt_text": "no file"}, "", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("attach to missing owner is a 404", func(t *testing.T) {
		w := env.doMultipart(t, "POST", "/api/villages/99999/images",
			map[string]string{}, "image", "x.png")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("detail carries ordered gallery", func(t *testing.T) {
		w := env.do(t, "GET", fmt.Sprintf("/api/villages/%d", villageID), nil, false)
		require.Equal(t, http.StatusOK, w.Code)
		gallery, ok := dataOf(t, w)["gallery"].([]interface{})
		require.True(t, ok)
		require.Len(t, gallery, 3)
		firstImg := gallery[0].(map[string]interface{})
		assert.EqualValues(t, 0, firstImg["display_order"])
		assert.Contains(t, firstImg["url"], "/uploads/")
	})

	t.Run("reorder", func(t *testing.T) {
		w := env.do(t, "PUT", fmt.Sprintf("/api/villages/%d/images/reorder", villageID),
			map[string]interface{}{"image_ids": []uint{third, first, second}}, true)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		ordered := body["data"].([]interface{})
		require.Len(t, ordered, 3)
		assert.EqualValues(t, third, ordered[0].(map[string]interface{})["id"])
		assert.EqualValues(t, first, ordered[1].(map[string]interface{})["id"])
	})

	t.Run("reorder rejects foreign ids", func(t *testing.T) {
		otherVillage := env.createVillage(t, districtID, "Dzuleke", "dzuleke")
		w := env.doMultipart(t, "POST", fmt.Sprintf("/api/villages/%d/images", otherVillage),
			map[string]string{}, "image", "foreign.png")
		require.Equal(t, http.StatusCreated, w.Code)
		foreign := uint(dataOf(t, w)["id"].(float64))

		resp := env.do(t, "PUT", fmt.Sprintf("/api/villages/%d/images/reorder", villageID),
			map[string]interface{}{"image_ids": []uint{first, foreign}}, true)
		assert.Equal(t, http.StatusBadRequest, resp.Code)
	})

	t.Run("detach", func(t *testing.T) {
		w := env.do(t, "DELETE", fmt.Sprintf("/api/villages/%d/images/%d", villageID, second), nil, true)
		require.Equal(t, http.StatusOK, w.Code)

		w = env.do(t, "GET", fmt.Sprintf("/api/villages/%d", villageID), nil, false)
		gallery := dataOf(t, w)["gallery"].([]interface{})
		assert.Len(t, gallery, 2)
	})
}

func TestWildlifeSummary(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, "POST", "/api/sanctuaries", map[string]interface{}{
		"name": "Papikonda", "slug": "papikonda",
	}, true)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	sanctuaryID := uint(dataOf(t, w)["id"].(float64))

	addItem := func(name, slug, category string) {
		w := env.do(t, "POST", "/api/wildlife", map[string]interface{}{
			"sanctuary_id": sanctuaryID, "category": category, "name": name, "slug": slug,
		}, true)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	}
	addItem("Indian Bison", "indian-bison", "fauna")
	addItem("King Cobra", "king-cobra", "fauna")
	addItem("Red Sanders", "red-sanders", "flora")

	w = env.do(t, "GET", fmt.Sprintf("/api/sanctuaries/%d/wildlife/summary", sanctuaryID), nil, false)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var body struct {
		Data []struct {
			Category string `json:"category"`
			Count    int64  `json:"count"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))

	counts := map[string]int64{}
	for _, row := range body.Data {
		counts[row.Category] = row.Count
	}
	assert.EqualValues(t, 2, counts["fauna"])
	assert.EqualValues(t, 1, counts["flora"])
	_, hasBird := counts["bird"]
	assert.False(t, hasBird, "categories without items must not appear")

	t.Run("invalid category rejected", func(t *testing.T) {
		w := env.do(t, "POST", "/api/wildlife", map[string]interface{}{
			"sanctuary_id": sanctuaryID, "category": "mineral", "name": "Quartz", "slug": "quartz",
		}, true)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestLogin(t *testing.T) {
	env := newTestEnv(t)

	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)
	_, err = gormstore.NewAuthStore(env.srv.DB).CreateAdmin("editor", string(hash))
	require.NoError(t, err)

	t.Run("valid credentials issue a token", func(t *testing.T) {
		w := env.do(t, "POST", "/api/auth/login", map[string]interface{}{
			"username": "editor", "password": "s3cret",
		}, false)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		data := dataOf(t, w)
		token, _ := data["token"].(string)
		require.NotEmpty(t, token)

		username, err := env.srv.Auth.Verify(token)
		require.NoError(t, err)
		assert.Equal(t, "editor", username)
	})

	t.Run("wrong password", func(t *testing.T) {
		w := env.do(t, "POST", "/api/auth/login", map[string]interface{}{
			"username": "editor", "password": "wrong",
		}, false)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("unknown user gets the same answer", func(t *testing.T) {
		w := env.do(t, "POST", "/api/auth/login", map[string]interface{}{
			"username": "ghost", "password": "whatever",
		}, false)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("missing fields", func(t *testing.T) {
		w := env.do(t, "POST", "/api/auth/login", map[string]interface{}{}, false)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestStatus(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, "GET", "/status", nil, false)
	require.Equal(t, http.StatusOK, w.Code)

	data := dataOf(t, w)
	assert.Equal(t, "ok", data["database"])
	assert.Equal(t, "ok", data["uploads"])
}

func TestReloadedListLimitTakesEffect(t *testing.T) {
	env := newTestEnv(t)

	env.createRegion(t, "Bihar", "bihar")
	env.createRegion(t, "Haryana", "haryana")
	env.createRegion(t, "Mizoram", "mizoram")

	w := env.do(t, "GET", "/api/regions?limit=50", nil, false)
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, dataOf(t, w)["items"], 3)

	env.srv.ApplyReload(&config.Config{ListLimitMax: 2, MaxUploadBytes: 1 << 20})

	w = env.do(t, "GET", "/api/regions?limit=50", nil, false)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, dataOf(t, w)["items"], 2, "reloaded limit cap must apply to new requests")
}

func TestParseRequestUploadLimit(t *testing.T) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="featured_image"; filename="big.png"`)
	header.Set("Content-Type", "image/png")
	part, err := mw.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(bytes.Repeat([]byte("x"), 64))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest("POST", "/api/regions", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	_, file, err := parseRequest(req, 16, "featured_image")
	require.Error(t, err)
	assert.Nil(t, file)
	assert.True(t, apperr.IsKind(err, apperr.KindPayloadTooLarge))
}

func TestAuditTrail(t *testing.T) {
	env := newTestEnv(t)

	env.createRegion(t, "Tripura", "tripura")

	events, err := env.srv.Audit.Recent(string(model.KindRegion), 10)
	require.NoError(t, err)
	require.NotEmpty(t, events)
	assert.Equal(t, audit.ActionCreate, events[0].Action)
	assert.Equal(t, "tester", events[0].Actor)
	assert.Equal(t, "tripura", events[0].Detail)
}
