package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/samber/do"
	"golang.org/x/sync/errgroup"

	"github.com/julianlk522/stylize/config"
	h "github.com/julianlk522/stylize/handler"
	util "github.com/julianlk522/stylize/handler/util"
	"github.com/julianlk522/stylize/inject"
	m "github.com/julianlk522/stylize/middleware"
)

const (
	READ_HEADER_TIMEOUT = 10 * time.Second
	SHUTDOWN_TIMEOUT    = 15 * time.Second
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	if err := util.EnsureStagingDir(cfg.UploadDir); err != nil {
		log.Fatalf("could not create upload dir %s: %s", cfg.UploadDir, err)
	}

	injector := inject.Setup(cfg)
	relay := do.MustInvoke[*h.Relay](injector)
	log_formatter := do.MustInvoke[*m.SplitLogFormatter](injector)

	r := NewRouter(cfg, relay, log_formatter)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: READ_HEADER_TIMEOUT,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, g_ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Printf("listening on %s", srv.Addr)

		var err error
		if cfg.UsesTLS() {
			err = srv.ListenAndServeTLS(cfg.TLSCertFile, cfg.TLSKeyFile)
		} else {
			err = srv.ListenAndServe()
		}
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	})
	g.Go(func() error {
		<-g_ctx.Done()
		log.Print("shutting down")

		shutdown_ctx, cancel := context.WithTimeout(context.Background(), SHUTDOWN_TIMEOUT)
		defer cancel()
		return srv.Shutdown(shutdown_ctx)
	})

	err = g.Wait()
	if shutdown_err := injector.Shutdown(); shutdown_err != nil {
		log.Print(shutdown_err)
	}
	if err != nil {
		log.Fatal(err)
	}
}

func NewRouter(cfg *config.Config, relay *h.Relay, log_formatter *m.SplitLogFormatter) chi.Router {
	r := chi.NewRouter()

	// ROUTER-WIDE MIDDLEWARE
	// LOGGER
	// should go before any other middleware that may change
	// the response, such as middleware.Recoverer
	// (https://github.com/go-chi/chi/blob/6fedde2a70dc2adce0a3dc41b8aebc0b2bec8185/middleware/logger.go#L32C20-L33C46)

	// split logger used to "tee" info from requests with status code 300+
	// to err log file in addition to stdout
	r.Use(m.SplitRequestLogger(log_formatter))
	r.Use(middleware.Recoverer)

	// RATE LIMIT
	// per minute (IP), off unless configured
	if cfg.RateLimitPerMin > 0 {
		r.Use(httprate.Limit(
			cfg.RateLimitPerMin,
			time.Minute,
			httprate.WithKeyFuncs(httprate.KeyByIP),
			httprate.WithLimitHandler(h.TooManyRequests),
		))
	}

	// CORS
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
		// Debug: true,
	}))

	r.NotFound(h.NotFound)

	// ROUTES
	// Upload client
	r.Get("/", h.GetUploadPage)
	r.Get("/health", h.Health)

	// Relay
	r.
		With(middleware.RequestSize(cfg.MaxUploadBytes)).
		Post("/generate-image", relay.GenerateImg)

	return r
}
