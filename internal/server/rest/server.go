// Package rest exposes the login, identity and item operations over HTTP.
package rest

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/cloudstack/internal/logging"
	"github.com/dmitrijs2005/cloudstack/internal/server/models"
	"github.com/go-playground/validator/v10"
)

const shutdownTimeout = 10 * time.Second

// Authenticator exchanges credentials for an access token.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (string, error)
}

// ItemStore is the owner-scoped item API the handlers call.
type ItemStore interface {
	Create(ctx context.Context, owner, name, description string) (*models.Item, error)
	List(ctx context.Context, owner string) ([]*models.Item, error)
	Update(ctx context.Context, owner string, id int64, name, description string) (*models.Item, error)
	Delete(ctx context.Context, owner string, id int64) error
}

// IdentityResolver maps an Authorization header to the caller's email.
type IdentityResolver interface {
	Resolve(header string) (string, error)
}

// Options configure the HTTP surface.
type Options struct {
	Address        string
	RootPath       string
	RequestTimeout time.Duration
	CORSOrigins    []string
	Production     bool
}

type Server struct {
	opts     Options
	logger   logging.Logger
	users    Authenticator
	items    ItemStore
	resolver IdentityResolver
	validate *validator.Validate
}

func NewServer(opts Options, l logging.Logger, users Authenticator, items ItemStore, resolver IdentityResolver) *Server {
	return &Server{
		opts:     opts,
		logger:   l.With("module", "http_server"),
		users:    users,
		items:    items,
		resolver: resolver,
		validate: newValidator(),
	}
}

// Run serves until ctx is cancelled, then shuts down gracefully and
// returns nil. Listen and serve errors are returned as is.
func (s *Server) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.opts.Address)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	stopped := make(chan struct{})
	serveDone := make(chan struct{})
	go func() {
		defer close(stopped)
		select {
		case <-ctx.Done():
		case <-serveDone:
			return
		}
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "HTTP server shutdown error", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String(), "root_path", s.opts.RootPath)

	err = srv.Serve(listen)
	close(serveDone)
	<-stopped

	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
