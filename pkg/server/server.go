package server

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/trailpost/tourcms/pkg/audit"
	"github.com/trailpost/tourcms/pkg/config"
	"github.com/trailpost/tourcms/pkg/imagestore"
	"github.com/trailpost/tourcms/pkg/lifecycle"
	"github.com/trailpost/tourcms/pkg/server/middleware"
	"github.com/trailpost/tourcms/pkg/server/store"
	gormstore "github.com/trailpost/tourcms/pkg/server/store/gorm"
)

// Server wires the stores, lifecycle manager and router together.
type Server struct {
	Config    *config.Config
	DB        *gorm.DB
	Router    *mux.Router
	Logger    zerolog.Logger
	Images    *imagestore.Store
	Lifecycle *lifecycle.Manager
	Audit     *audit.Recorder
	Auth      *middleware.TokenAuthenticator

	RegionsStore       store.RegionsStore
	DistrictsStore     store.DistrictsStore
	VillagesStore      store.VillagesStore
	PackagesStore      store.PackagesStore
	WebStoriesStore    store.WebStoriesStore
	SanctuariesStore   store.SanctuariesStore
	WildlifeItemsStore store.WildlifeItemsStore
	InstitutionsStore  store.InstitutionsStore
	CultureStore       store.CultureStore
	AuthStore          store.AuthStore
	HealthStore        store.HealthStore

	srv *http.Server
}

// NewServer builds a fully-wired server from configuration. Nothing is
// ambient: the image store, lifecycle manager and every store receive their
// dependencies here so tests can substitute any of them.
func NewServer(cfg *config.Config, db *gorm.DB, logger zerolog.Logger) (*Server, error) {
	images, err := imagestore.New(cfg.UploadsRoot, cfg.PublicBaseURL, cfg.MaxUploadBytes, logger)
	if err != nil {
		return nil, err
	}

	lc := lifecycle.NewManager(db, images, logger)
	recorder := audit.NewRecorder(db, logger)
	auth := middleware.NewTokenAuthenticator(
		cfg.AdminTokenSecret,
		time.Duration(cfg.AdminTokenTTLMinutes)*time.Minute,
	)

	router := mux.NewRouter().UseEncodedPath()
	srv := &http.Server{
		Handler: handlers.LoggingHandler(os.Stdout, handlers.CORS(
			handlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
			handlers.AllowedHeaders([]string{"Authorization", "Content-Type"}),
		)(router)),
		Addr: cfg.Addr(),
		// Good practice: enforce timeouts for servers you create!
		WriteTimeout: 30 * time.Second,
		ReadTimeout:  30 * time.Second,
	}

	return &Server{
		Config:    cfg,
		DB:        db,
		Router:    router,
		Logger:    logger,
		Images:    images,
		Lifecycle: lc,
		Audit:     recorder,
		Auth:      auth,

		RegionsStore:       gormstore.NewRegionsStore(db, lc),
		DistrictsStore:     gormstore.NewDistrictsStore(db, lc),
		VillagesStore:      gormstore.NewVillagesStore(db, lc),
		PackagesStore:      gormstore.NewPackagesStore(db, lc),
		WebStoriesStore:    gormstore.NewWebStoriesStore(db, lc),
		SanctuariesStore:   gormstore.NewSanctuariesStore(db, lc),
		WildlifeItemsStore: gormstore.NewWildlifeItemsStore(db, lc),
		InstitutionsStore:  gormstore.NewInstitutionsStore(db, lc),
		CultureStore:       gormstore.NewCultureStore(db, lc),
		AuthStore:          gormstore.NewAuthStore(db),
		HealthStore:        gormstore.NewHealthStore(db),

		srv: srv,
	}, nil
}

// ApplyReload copies the reloaded attributes that are read per request onto
// the live configuration. The bind address, database, uploads root and token
// secret are fixed at startup and need a restart to change.
func (s *Server) ApplyReload(c *config.Config) {
	s.Config.ListLimitMax = c.ListLimitMax
	s.Config.MaxUploadBytes = c.MaxUploadBytes
}

func (s *Server) Start() error {
	return s.srv.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
