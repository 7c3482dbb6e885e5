package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/radieske/betting-backoffice/internal/backoffice/screen"
)

// Server é o console HTML: uma aba por tela registrada mais o proxy /api
type Server struct {
	log    *zap.Logger
	rd     *renderer
	proxy  http.Handler
	tabs   []Tab
	routes []func(chi.Router)
}

// NewServer prepara templates e proxy; backendURL vazio desliga o /api
func NewServer(log *zap.Logger, backendURL string) (*Server, error) {
	rd, err := newRenderer()
	if err != nil {
		return nil, err
	}
	s := &Server{log: log, rd: rd}
	if backendURL != "" {
		if s.proxy, err = apiProxy(backendURL, log); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Register adiciona a tela do controlador em /{entidade}, na ordem das abas
func Register[T any](s *Server, ctl *screen.Controller[T]) {
	h := &screenHandler[T]{
		srv:  s,
		ctl:  ctl,
		base: "/" + ctl.S.Entity,
		log:  s.log.With(zap.String("screen", ctl.S.Entity)),
	}
	s.tabs = append(s.tabs, Tab{Title: ctl.S.Title, Path: h.base})
	s.routes = append(s.routes, func(r chi.Router) { r.Route(h.base, h.mount) })
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(s.log))

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		if len(s.tabs) == 0 {
			http.NotFound(w, r)
			return
		}
		http.Redirect(w, r, s.tabs[0].Path, http.StatusFound)
	})
	for _, mount := range s.routes {
		mount(r)
	}
	if s.proxy != nil {
		r.Handle("/api/*", s.proxy)
	}
	return r
}
