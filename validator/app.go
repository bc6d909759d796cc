package validator

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"sync"

	"github.com/alovak/cardcheck/internal/middleware"
	cardcheck8583 "github.com/alovak/cardcheck/validator/iso8583"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"golang.org/x/exp/slog"
)

// App is the main application, it contains all the components of the
// validation service and is responsible for starting and stopping them.
type App struct {
	srv               *http.Server
	wg                *sync.WaitGroup
	Addr              string
	ISO8583ServerAddr string
	logger            *slog.Logger
	iso8583Server     io.Closer
	config            *Config
	validator         *Validator
	metrics           *Metrics
}

func NewApp(logger *slog.Logger, config *Config) *App {
	logger = logger.With(slog.String("app", "cardcheck"))

	if config == nil {
		config = DefaultConfig()
	}

	return &App{
		wg:     &sync.WaitGroup{},
		logger: logger,
		config: config,
	}
}

func (a *App) Start() error {
	a.logger.Info("starting app...")

	v, err := a.config.Build()
	if err != nil {
		return fmt.Errorf("building validator: %w", err)
	}
	a.validator = v
	a.metrics = NewMetrics()

	a.logger.Info("registry loaded",
		slog.Int("card_types", v.Registry().Len()),
		slog.String("accepted_mii", v.AcceptedMII().String()),
	)

	router := chi.NewRouter()
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.NewStructuredLogger(a.logger))

	if a.config.ISO8583Addr != "" {
		iso8583Server := cardcheck8583.NewServer(a.logger, a.config.ISO8583Addr, v, a.metrics)
		err := iso8583Server.Start()
		if err != nil {
			return fmt.Errorf("starting iso8583 server: %w", err)
		}
		a.ISO8583ServerAddr = iso8583Server.Addr
		a.iso8583Server = iso8583Server
	}

	api := NewAPI(v, a.metrics, a.logger)
	api.AppendRoutes(router)

	router.Get("/-/live", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	router.Get("/-/ready", func(w http.ResponseWriter, r *http.Request) {
		if a.validator == nil || a.validator.Registry().Len() == 0 {
			http.Error(w, "registry not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	})
	router.Method(http.MethodGet, "/metrics", a.metrics.Handler())

	l, err := net.Listen("tcp", a.config.HTTPAddr)
	if err != nil {
		a.closeISO8583()
		return fmt.Errorf("listening tcp port: %w", err)
	}

	a.Addr = l.Addr().String()

	a.srv = &http.Server{
		Handler: router,
	}

	a.wg.Add(1)
	go func() {
		a.logger.Info("http server started", slog.String("addr", a.Addr))

		if err := a.srv.Serve(l); err != nil {
			if err != http.ErrServerClosed {
				a.logger.Error("starting http server", "err", err)
			}

			a.logger.Info("http server stopped")
		}

		a.wg.Done()
	}()

	return nil
}

// Validator returns the pipeline built by Start.
func (a *App) Validator() *Validator {
	return a.validator
}

func (a *App) Shutdown() {
	a.logger.Info("shutting down app...")

	if a.srv != nil {
		a.srv.Shutdown(context.Background())
	}

	a.closeISO8583()

	a.wg.Wait()

	a.logger.Info("app stopped")
}

func (a *App) closeISO8583() {
	if a.iso8583Server == nil {
		return
	}
	err := a.iso8583Server.Close()
	if err != nil {
		a.logger.Error("closing iso8583 server", "err", err)
	}
	a.iso8583Server = nil
}
