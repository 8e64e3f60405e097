// Package statushttp serves a local read-only view of the watcher.
package statushttp

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v2"
	"github.com/programme-lv/cfwatch/httpjson"
	"github.com/programme-lv/cfwatch/notify"
	"github.com/programme-lv/cfwatch/srvcerror"
	"github.com/programme-lv/cfwatch/watcher"
)

type SnapshotSource interface {
	Snapshot() watcher.Snapshot
}

type NotificationSource interface {
	Recent() []notify.Message
}

type Server struct {
	router  *chi.Mux
	watcher SnapshotSource
	notifs  NotificationSource
	log     *slog.Logger
}

func NewServer(w SnapshotSource, notifs NotificationSource, logLevel slog.Level) *Server {
	router := chi.NewRouter()

	logger := httplog.NewLogger("cfwatch", httplog.Options{
		LogLevel:         logLevel,
		Concise:          true,
		MessageFieldName: "message",
		QuietDownRoutes:  []string{"/status"},
		QuietDownPeriod:  time.Minute,
	})
	router.Use(httplog.RequestLogger(logger))

	corsMiddleware := cors.New(cors.Options{
		AllowedOrigins: []string{"http://localhost:*", "http://127.0.0.1:*"},
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         3000,
	})
	router.Use(corsMiddleware.Handler)

	s := &Server{
		router:  router,
		watcher: w,
		notifs:  notifs,
		log:     logger.Logger,
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.router.Get("/status", s.getStatus)
	s.router.Get("/notifications", s.listNotifications)
	s.router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		httpjson.HandleError(s.log, w, newErrRouteNotFound(r.URL.Path))
	})
	s.router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		httpjson.HandleError(s.log, w, newErrMethodNotAllowed(r.Method))
	})
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) getStatus(w http.ResponseWriter, r *http.Request) {
	httpjson.WriteSuccessJson(w, s.watcher.Snapshot())
}

func (s *Server) listNotifications(w http.ResponseWriter, r *http.Request) {
	httpjson.WriteSuccessJson(w, s.notifs.Recent())
}

// Serve listens on addr until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.serve(ctx, ln)
}

func (s *Server) serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()
	s.log.Info("status server listening", slog.String("addr", ln.Addr().String()))

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

const ErrCodeRouteNotFound = "route_not_found"

func newErrRouteNotFound(path string) *srvcerror.Error {
	return srvcerror.New(
		ErrCodeRouteNotFound,
		"no such route: "+path,
	).SetHttpStatusCode(http.StatusNotFound)
}

const ErrCodeMethodNotAllowed = "method_not_allowed"

func newErrMethodNotAllowed(method string) *srvcerror.Error {
	return srvcerror.New(
		ErrCodeMethodNotAllowed,
		"method not allowed: "+method,
	).SetHttpStatusCode(http.StatusMethodNotAllowed)
}
