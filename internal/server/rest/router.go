package rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/unrolled/secure"
)

// Handler builds the routing tree. All routes live under opts.RootPath.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	for _, mw := range s.middlewareStack() {
		r.Use(mw)
	}

	api := chi.NewRouter()
	api.Get("/ping", s.handlePing)
	api.Post("/login", s.handleLogin)

	api.Group(func(r chi.Router) {
		r.Use(s.requireIdentity)

		r.Get("/me", s.handleMe)
		r.Route("/items", func(r chi.Router) {
			r.Get("/", s.handleListItems)
			r.Post("/", s.handleCreateItem)
			r.Put("/{id}", s.handleUpdateItem)
			r.Delete("/{id}", s.handleDeleteItem)
		})
	})

	api.NotFound(func(w http.ResponseWriter, r *http.Request) {
		problem(w, http.StatusNotFound, "Not Found", "")
	})
	api.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		problem(w, http.StatusMethodNotAllowed, "Method Not Allowed", "")
	})

	root := s.opts.RootPath
	if root == "" {
		root = "/"
	}
	r.Mount(root, api)

	return r
}

func (s *Server) middlewareStack() []func(http.Handler) http.Handler {
	secureMiddleware := secure.New(secure.Options{
		FrameDeny:          true,
		ContentTypeNosniff: true,
		ReferrerPolicy:     "strict-origin-when-cross-origin",
		SSLRedirect:        s.opts.Production,
		SSLProxyHeaders:    map[string]string{"X-Forwarded-Proto": "https"},
	})

	corsMiddleware := cors.Handler(cors.Options{
		AllowedOrigins:   s.opts.CORSOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
		MaxAge:           300,
	})

	middlewares := []func(http.Handler) http.Handler{
		middleware.RealIP,
		requestID,
		s.accessLog,
		middleware.Recoverer,
		corsMiddleware,
		secureMiddleware.Handler,
	}
	if s.opts.RequestTimeout > 0 {
		middlewares = append(middlewares, middleware.Timeout(s.opts.RequestTimeout))
	}
	return middlewares
}
