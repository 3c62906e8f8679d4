// Package server implements the web dashboard: a JSON API over the market
// store plus an embedded single-page frontend.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/etnz/investilearn/market"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v2"
	"golang.org/x/sync/errgroup"
)

// DefaultPort is the port the dashboard listens on.
const DefaultPort = 8501

// GuideFunc answers a one-shot learning question about a ratio of a
// company. A nil GuideFunc means the learning guide is disabled.
type GuideFunc func(ctx context.Context, symbol, ratio string) (string, error)

// Server is the dashboard server.
type Server struct {
	store    *market.Store
	guide    GuideFunc
	feedback *FeedbackLog
	port     int
	logger   *slog.Logger
}

// Config holds configuration for the dashboard server.
type Config struct {
	Store  *market.Store
	Guide  GuideFunc // nil disables the learning guide endpoint
	Port   int       // 0 means DefaultPort
	Logger *slog.Logger
}

// New creates a new dashboard server.
func New(cfg Config) *Server {
	port := cfg.Port
	if port == 0 {
		port = DefaultPort
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		store:    cfg.Store,
		guide:    cfg.Guide,
		feedback: NewFeedbackLog(),
		port:     port,
		logger:   logger,
	}
}

// Routes builds the dashboard router.
func (s *Server) Routes() http.Handler {
	requestLogger := httplog.NewLogger("investilearn", httplog.Options{
		LogLevel:         slog.LevelInfo,
		Concise:          true,
		MessageFieldName: "msg",
	})

	r := chi.NewMux()
	r.Use(middleware.RealIP)
	r.Use(middleware.Compress(5))
	r.Use(httplog.RequestLogger(requestLogger))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Accept"},
		MaxAge:         300,
	}))

	r.Route("/api", func(r chi.Router) {
		r.Get("/quote/{symbol}", s.handleQuote)
		r.Get("/ratios/{symbol}", s.handleRatios)
		r.Get("/statements/{symbol}", s.handleStatements)
		r.Get("/sankey/{symbol}/{statement}", s.handleSankey)
		r.Get("/history/{symbol}", s.handleHistory)
		r.Get("/news/{symbol}", s.handleNews)
		r.Get("/guide/{symbol}/{ratio}", s.handleGuide)
		r.Post("/feedback", s.handleFeedback)
		r.Get("/feedback/summary", s.handleFeedbackSummary)
	})
	r.Get("/report/{symbol}", s.handleReport)
	r.Get("/", s.handleIndex)

	return r
}

// Serve starts the dashboard server and blocks until the context is
// cancelled.
func (s *Server) Serve(ctx context.Context) error {
	addr := fmt.Sprintf(":%d", s.port)
	s.logger.Info("starting dashboard", "addr", fmt.Sprintf("http://localhost:%d", s.port))

	eg, egctx := errgroup.WithContext(ctx)

	srv := &http.Server{
		Addr:    addr,
		Handler: s.Routes(),
		BaseContext: func(_ net.Listener) context.Context {
			return egctx
		},
		ReadHeaderTimeout: 10 * time.Second,
	}

	eg.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	// Graceful shutdown
	eg.Go(func() error {
		<-egctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Debug("shutting down dashboard...")
		return srv.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}
