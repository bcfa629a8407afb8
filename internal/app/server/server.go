package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"

	"kpi/internal/domain/kpi"
	"kpi/internal/domain/reports"
	"kpi/internal/platform/config"
	"kpi/internal/platform/db"
	"kpi/internal/platform/metrics"
	"kpi/internal/platform/reportclient"
	"kpi/internal/platform/snapshot"
	kpihandler "kpi/internal/transport/http/handlers/kpi"
	reportshandler "kpi/internal/transport/http/handlers/reports"
	"kpi/internal/transport/http/middleware"
)

type App struct {
	Config  config.Config
	DB      *pgxpool.Pool
	Board   *kpi.Service
	Reports *reports.Service
	Metrics *metrics.Collector
	Router  http.Handler
}

func Run() error {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return err
	}
	level, _ := cfg.SlogLevel()
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := New(ctx, cfg)
	if err != nil {
		return err
	}
	defer app.Close()

	return app.Serve(ctx)
}

func New(ctx context.Context, cfg config.Config) (*App, error) {
	app := &App{Config: cfg}
	if cfg.MetricsEnabled {
		app.Metrics = metrics.New()
	}

	var store reports.StoreAPI
	if cfg.DatabaseURL != "" {
		pool, err := db.Connect(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("db connect: %w", err)
		}
		app.DB = pool
		if cfg.RunMigrations {
			if err := db.Migrate(ctx, pool); err != nil {
				pool.Close()
				return nil, fmt.Errorf("migrations: %w", err)
			}
		}
		store = reports.NewStore(pool)
	}

	app.Board = kpi.NewService(kpi.NewBoard(), app.Metrics)
	if err := seed(app.Board, cfg); err != nil {
		app.Close()
		return nil, err
	}

	generator := reportclient.New(cfg)
	if generator == nil {
		slog.Warn("REPORT_SERVICE_URL not set; report export disabled")
	}
	app.Reports = reports.NewService(generator, store, app.Metrics)
	app.Router = app.routes()
	return app, nil
}

func (a *App) Close() {
	if a.DB != nil {
		a.DB.Close()
	}
}

// Serve runs the listener until ctx is cancelled, then drains in-flight
// requests within the configured shutdown timeout.
func (a *App) Serve(ctx context.Context) error {
	srv := &http.Server{
		Addr:              a.Config.Addr,
		Handler:           a.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("KPI server listening", "addr", a.Config.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		slog.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.Config.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func seed(board *kpi.Service, cfg config.Config) error {
	switch {
	case cfg.SeedFile != "":
		snap, err := snapshot.Load(cfg.SeedFile)
		if err != nil {
			return fmt.Errorf("seed file: %w", err)
		}
		state, err := snap.Apply(board)
		if err != nil {
			return fmt.Errorf("seed file: %w", err)
		}
		slog.Info("board seeded from file", "path", cfg.SeedFile, "employees", len(state.Employees), "metrics", len(state.Metrics))
	case cfg.SeedDemo:
		if _, err := snapshot.Demo().Apply(board); err != nil {
			return fmt.Errorf("demo seed: %w", err)
		}
	}
	return nil
}

func (a *App) routes() http.Handler {
	router := chi.NewRouter()
	if a.Config.TrustProxyHeaders {
		router.Use(chimw.RealIP)
	}
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(a.Metrics))
	router.Use(chimw.Recoverer)
	router.Use(middleware.SecureHeaders(a.Config.IsProduction()))
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: a.Config.CORSAllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"Content-Disposition", "X-Request-ID"},
		MaxAge:         300,
	}))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if a.DB != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := a.DB.Ping(ctx); err != nil {
				http.Error(w, "db not ready", http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	if a.Metrics != nil {
		router.Method(http.MethodGet, "/metrics", a.Metrics.Handler())
	}

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.BodyLimit(a.Config.MaxBodyBytes))

		kpihandler.NewHandler(a.Board).RegisterRoutes(r)

		exportLimit := middleware.RateLimit(a.Config.ExportRatePerMinute, time.Minute)
		reportshandler.NewHandler(a.Board, a.Reports, exportLimit).RegisterRoutes(r)
	})

	router.Mount("/", spaHandler{staticPath: a.Config.FrontendDir, indexPath: "index.html"})
	return router
}

type spaHandler struct {
	staticPath string
	indexPath  string
}

func (h spaHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	path := filepath.Join(h.staticPath, filepath.Clean("/"+r.URL.Path))
	_, err := os.Stat(path)
	if err == nil {
		http.FileServer(http.Dir(h.staticPath)).ServeHTTP(w, r)
		return
	}

	if os.IsNotExist(err) {
		http.ServeFile(w, r, filepath.Join(h.staticPath, h.indexPath))
		return
	}

	http.NotFound(w, r)
}
