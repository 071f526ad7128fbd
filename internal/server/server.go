package server

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"aquiestoy/internal/cases"
	"aquiestoy/internal/recognition"
	"aquiestoy/internal/storage"
	"aquiestoy/internal/store"
	"aquiestoy/pkg/types"

	"github.com/alexedwards/flow"
	"github.com/go-playground/form/v4"
	"github.com/gorilla/securecookie"
	"github.com/sirupsen/logrus"
)

var decoder = form.NewDecoder()

type Service struct {
	logger *logrus.Logger
	config *types.Config

	cases          *cases.Workflow
	usersRepo      *store.UserRepository
	categoriesRepo *store.CategoryRepository
	blobs          *storage.S3Storage
	recognizer     *recognition.Rekognition

	cookie *securecookie.SecureCookie

	server *http.Server
}

func New(
	config *types.Config,
	logger *logrus.Logger,
	caseFlow *cases.Workflow,
	usersRepo *store.UserRepository,
	categoriesRepo *store.CategoryRepository,
	blobs *storage.S3Storage,
	recognizer *recognition.Rekognition,
) (*Service, error) {
	mux := flow.New()

	hashKey, _ := base64.StdEncoding.DecodeString(config.CookieHashKey)
	blockKey, _ := base64.StdEncoding.DecodeString(config.CookieBlockKey)

	s := &Service{
		logger: logger,
		config: config,
		cookie: securecookie.New(hashKey, blockKey),

		cases:          caseFlow,
		usersRepo:      usersRepo,
		categoriesRepo: categoriesRepo,
		blobs:          blobs,
		recognizer:     recognizer,

		server: &http.Server{
			Addr:              fmt.Sprintf(":%d", config.ServerPort),
			Handler:           mux,
			ReadTimeout:       time.Duration(config.ReadTimeoutSec) * time.Second,
			ReadHeaderTimeout: time.Duration(config.ReadTimeoutSec) * time.Second,
			WriteTimeout:      time.Duration(config.WriteTimeoutSec) * time.Second,
			MaxHeaderBytes:    1 << 20,
		},
	}

	s.buildRouter(mux)

	return s, nil
}

func (s *Service) Start() error {
	return s.server.ListenAndServe()
}

func (s *Service) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// Handler exposes the routed mux, mainly for httptest.
func (s *Service) Handler() http.Handler {
	return s.server.Handler
}

func (s *Service) buildRouter(r *flow.Mux) {
	r.Use(s.StripTrailingSlash)
	r.Use(s.LoggingMiddleware)

	r.HandleFunc("/healthz", s.handleHealth, http.MethodGet)

	r.HandleFunc("/casos/crear", s.handleCreateCaso, http.MethodPost)
	r.HandleFunc("/casos/listar", s.handleListCasos, http.MethodGet)
	r.HandleFunc("/casos/obtener/:id", s.handleGetCaso, http.MethodGet)
	r.HandleFunc("/casos/actualizar/:id", s.handleUpdateCaso, http.MethodPut)
	r.HandleFunc("/casos/eliminar/:id", s.handleDeleteCaso, http.MethodDelete)

	r.HandleFunc("/categorias/listar", s.handleListCategorias, http.MethodGet)

	r.HandleFunc("/auth/register", s.handleRegister, http.MethodPost)
	r.HandleFunc("/auth/login", s.handleLogin, http.MethodPost)
	r.HandleFunc("/auth/logout", s.handleLogout, http.MethodPost)

	r.HandleFunc("/usuarios/listar", s.handleListUsuarios, http.MethodGet)
	r.HandleFunc("/usuarios/obtener/:id", s.handleGetUsuario, http.MethodGet)
	r.HandleFunc("/usuarios/actualizar/:id", s.handleUpdateUsuario, http.MethodPut)
	r.HandleFunc("/usuarios/eliminar/:id", s.handleDeleteUsuario, http.MethodDelete)

	r.HandleFunc("/s3/upload", s.handleUploadObject, http.MethodPost)
	r.HandleFunc("/rekognition/detect-faces", s.handleDetectFaces, http.MethodPost)
}

func (s *Service) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// pathID parses the :id route segment. A zero return means the response has
// already been written.
func (s *Service) pathID(w http.ResponseWriter, r *http.Request) int64 {
	id, err := strconv.ParseInt(flow.Param(r.Context(), "id"), 10, 64)
	if err != nil || id < 1 {
		s.respondError(w, http.StatusBadRequest, "El id debe ser un entero positivo")
		return 0
	}
	return id
}
