package web

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/liut/finai/pkg/models/bot"
	"github.com/liut/finai/pkg/services/sessions"
	"github.com/liut/finai/pkg/services/stores"
)

type Service interface {
	Serve(ctx context.Context) error
	Stop(ctx context.Context) error
	Handler() http.Handler
}

// Replier answers an inbound message, it never fails.
type Replier interface {
	Reply(ctx context.Context, query string, bc *bot.Context) *bot.Reply
}

// SessionKeeper exposes the in-memory sessions.
type SessionKeeper interface {
	Get(id string) (sessions.Session, bool)
	Clear(id string)
}

// ObjectStore is the blob storage, optional.
type ObjectStore interface {
	Get(ctx context.Context, objectName string) ([]byte, error)
	PutReader(ctx context.Context, objectName string, r io.Reader, size int64, contentType string) error
}

type Config struct {
	Addr      string
	Debug     bool
	RateLimit string // like "20-M", empty means unlimited

	Redis stores.RedisClient // optional, shared limiter counters
}

type server struct {
	Addr string
	cfg  Config

	bot  Replier
	sess SessionKeeper
	oss  ObjectStore

	ar *chi.Mux     // app router
	hs *http.Server // http server

	limitMw func(http.Handler) http.Handler
}

// New return new web server, oss may be nil
func New(cfg Config, rp Replier, sk SessionKeeper, ost ObjectStore) (Service, error) {
	ar := chi.NewMux()
	if cfg.Debug {
		ar.Use(middleware.Logger)
	}
	ar.Use(middleware.Recoverer, middleware.RealIP)

	s := &server{
		Addr: cfg.Addr, ar: ar,
		cfg:  cfg,
		bot:  rp,
		sess: sk,
		oss:  ost,
	}
	if s.oss == nil {
		logger().Infow("object store not configured, skip /api/objects")
	}

	var err error
	s.limitMw, err = newRateLimiter(cfg.RateLimit, cfg.Redis)
	if err != nil {
		return nil, err
	}
	s.strapRouter()

	s.hs = &http.Server{
		Addr:              s.Addr,
		Handler:           s.ar,
		ReadHeaderTimeout: 5 * time.Second,
	}

	if cfg.Debug {
		logger().Infow("routes:")
		walkFunc := func(method string, route string, handler http.Handler, middlewares ...func(http.Handler) http.Handler) error {
			route = strings.Replace(route, "/*/", "/", -1)
			fmt.Fprintf(os.Stderr, "DEBUG: %-6s %-24s --> %s (%d mw)\n", method, route, nameOfFunction(handler), len(middlewares))
			return nil
		}

		if err := chi.Walk(ar, walkFunc); err != nil {
			logger().Infow("router walk fail", "err", err)
		}
	}
	return s, nil
}

func (s *server) Handler() http.Handler {
	return s.ar
}

func (s *server) Serve(ctx context.Context) error {
	runErrChan := make(chan error, 1)
	go func() {
		runErrChan <- s.hs.ListenAndServe()
	}()

	logger().Infow("Listen on", "addr", s.hs.Addr)

	select {
	case runErr := <-runErrChan:
		if runErr != nil && runErr != http.ErrServerClosed {
			logger().Infow("run http server failed", "err", runErr)
			return runErr
		}
		return nil
	case <-ctx.Done():
		logger().Info("http server has been stopped")
		return ctx.Err()
	}
}

func (s *server) Stop(ctx context.Context) error {
	if err := s.hs.Shutdown(ctx); err != nil {
		logger().Infow("Server Shutdown", "err", err)
		return err
	}
	return nil
}
