package mockserver

import (
	"errors"
	"net/http"
	"sync/atomic"

	"birdbook/internal/bird"
	"birdbook/internal/jsonutil"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

const maxRequestBody = 1 << 20

// Server serves the bird collection over HTTP.
type Server struct {
	store    *Store
	log      *zap.Logger
	requests atomic.Int64
	router   chi.Router
}

// New builds a server over store. A nil logger disables logging.
func New(store *Store, log *zap.Logger) *Server {
	if store == nil {
		store = NewStore()
	}
	if log == nil {
		log = zap.NewNop()
	}
	s := &Server{store: store, log: log}

	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Use(s.countRequests)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Route("/bird", func(br chi.Router) {
		br.Get("/", s.list)
		br.Post("/", s.create)
		br.Get("/{id}", s.get)
		br.Put("/{id}", s.update)
		br.Delete("/{id}", s.delete)
	})
	s.router = r
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Store exposes the backing store.
func (s *Server) Store() *Store {
	return s.store
}

// Requests returns how many bird requests have been served.
func (s *Server) Requests() int64 {
	return s.requests.Load()
}

func (s *Server) countRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/health" {
			s.requests.Add(1)
		}
		s.log.Debug("request", zap.String("method", r.Method), zap.String("path", r.URL.Path))
		next.ServeHTTP(w, r)
	})
}

func (s *Server) list(w http.ResponseWriter, _ *http.Request) {
	jsonutil.WriteJSON(w, http.StatusOK, s.store.List())
}

func (s *Server) get(w http.ResponseWriter, r *http.Request) {
	b, err := s.store.Get(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	jsonutil.WriteJSON(w, http.StatusOK, b)
}

func (s *Server) create(w http.ResponseWriter, r *http.Request) {
	var in bird.Input
	if err := jsonutil.DecodeBody(r.Body, maxRequestBody, &in, "invalid bird"); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	b := s.store.Create(in)
	s.log.Info("bird created", zap.String("id", b.ID), zap.String("common_name", b.CommonName))
	jsonutil.WriteJSON(w, http.StatusCreated, b)
}

func (s *Server) update(w http.ResponseWriter, r *http.Request) {
	var in bird.Input
	if err := jsonutil.DecodeBody(r.Body, maxRequestBody, &in, "invalid bird"); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	b, err := s.store.Update(chi.URLParam(r, "id"), in)
	if err != nil {
		writeError(w, err)
		return
	}
	s.log.Info("bird updated", zap.String("id", b.ID))
	jsonutil.WriteJSON(w, http.StatusOK, b)
}

func (s *Server) delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.store.Delete(id); err != nil {
		writeError(w, err)
		return
	}
	s.log.Info("bird deleted", zap.String("id", id))
	w.WriteHeader(http.StatusNoContent)
}

func writeError(w http.ResponseWriter, err error) {
	if errors.Is(err, ErrNotFound) {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	http.Error(w, err.Error(), http.StatusInternalServerError)
}
