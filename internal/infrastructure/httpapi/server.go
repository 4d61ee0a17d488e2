// Package httpapi exposes the message contract, the settings event stream
// and the host page surface over HTTP.
package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/bnema/legible/internal/application/port"
	"github.com/bnema/legible/internal/application/usecase"
	"github.com/bnema/legible/internal/infrastructure/messaging"
	"github.com/bnema/legible/internal/infrastructure/page"
	"github.com/bnema/legible/internal/infrastructure/tabs"
	"github.com/bnema/legible/internal/logging"
)

const (
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 5 * time.Second
	maxBodyBytes      = 4 << 20
)

// PagePusher sends the effective style to a page that finished loading.
type PagePusher interface {
	PushToPage(ctx context.Context, id port.PageID) (*usecase.PageOutcome, error)
}

// Dependencies are the components the API drives.
type Dependencies struct {
	Router   *messaging.Router
	Hub      *messaging.Hub
	Registry *tabs.Registry
	Settings page.SettingsSource
	Pusher   PagePusher
}

// NewHandler builds the chi router. baseCtx carries the logger.
func NewHandler(baseCtx context.Context, deps Dependencies) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(withLogger(baseCtx))

	api := &api{deps: deps}

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", api.health)
		r.Post("/messages", api.postMessage)
		r.Get("/events", api.streamEvents)
		r.Post("/commands/toggle-font", api.toggleFont)

		r.Route("/pages", func(r chi.Router) {
			r.Get("/", api.listPages)
			r.Post("/", api.openPage)
			r.Route("/{id}", func(r chi.Router) {
				r.Delete("/", api.closePage)
				r.Post("/navigate", api.navigatePage)
				r.Post("/load", api.loadPage)
				r.Post("/mutations", api.mutatePage)
				r.Get("/document", api.pageDocument)
			})
		})
	})

	return r
}

// withLogger puts the base logger, tagged with the request ID, in every
// request context.
func withLogger(baseCtx context.Context) func(http.Handler) http.Handler {
	base := logging.FromContext(baseCtx)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			logger := base.With().
				Str("component", "httpapi").
				Str("request_id", middleware.GetReqID(req.Context())).
				Logger()
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, req.ProtoMajor)

			next.ServeHTTP(ww, req.WithContext(logging.WithContext(req.Context(), logger)))

			logger.Debug().
				Str("method", req.Method).
				Str("path", req.URL.Path).
				Int("status", ww.Status()).
				Dur("duration", time.Since(start)).
				Msg("request handled")
		})
	}
}

// Server is the daemon's HTTP listener.
type Server struct {
	srv *http.Server
	ln  net.Listener
}

// Listen binds addr. Use "127.0.0.1:0" for an ephemeral port.
func Listen(ctx context.Context, addr string, handler http.Handler) (*Server, error) {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	return &Server{
		srv: &http.Server{
			Handler:           handler,
			ReadHeaderTimeout: readHeaderTimeout,
			BaseContext:       func(net.Listener) context.Context { return ctx },
		},
		ln: ln,
	}, nil
}

// Addr returns the bound address.
func (s *Server) Addr() string {
	return s.ln.Addr().String()
}

// Serve blocks until the server stops. A clean shutdown returns nil.
func (s *Server) Serve() error {
	if err := s.srv.Serve(s.ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server failed: %w", err)
	}
	return nil
}

// Shutdown stops accepting requests and waits for in-flight ones.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()
	err := s.srv.Shutdown(ctx)
	// Serve may never have run, in which case the listener is still ours.
	if cerr := s.ln.Close(); cerr != nil && !errors.Is(cerr, net.ErrClosed) && err == nil {
		err = cerr
	}
	return err
}
