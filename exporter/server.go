// Package exporter serves the scrape endpoints. Every GET of /metrics
// triggers one bounded scrape cycle and renders the retained state, so the
// response always carries the full catalog once a cycle has succeeded.
package exporter

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/swoga/tplink-exporter/api"
	"github.com/swoga/tplink-exporter/cache"
	"github.com/swoga/tplink-exporter/collector"
	"github.com/swoga/tplink-exporter/config"
	"github.com/swoga/tplink-exporter/session"
)

const metricPrefix = "tplink_"

// Server wires the collector to HTTP. The retained metric state survives
// config reloads; only the router client, session, and collector are
// swapped.
type Server struct {
	mu        sync.RWMutex
	cfg       *config.Config
	sessions  *session.Manager
	collector *collector.Collector
	srv       *http.Server

	store  *cache.Store
	reload func() error
	log    zerolog.Logger
}

// New builds a server for cfg. reload is invoked by the /-/reload endpoint.
func New(cfg *config.Config, reload func() error, logger zerolog.Logger) *Server {
	s := &Server{
		store:  cache.New(),
		reload: reload,
		log:    logger,
	}
	s.ApplyConfig(cfg)
	return s
}

// ApplyConfig swaps the router client, session, and collector for cfg. The
// previous session is released in the background so a held admin slot is
// freed for the new one.
func (s *Server) ApplyConfig(cfg *config.Config) {
	client := api.New(api.Options{
		Host:      cfg.Router.Host,
		Username:  cfg.Router.Username,
		Password:  cfg.Router.Password,
		HTTPS:     cfg.Router.HTTPS,
		VerifySSL: cfg.Router.VerifySSL,
	}, s.log.With().Str("component", "api").Logger())
	sessions := session.New(client, s.log.With().Str("component", "session").Logger())
	coll := collector.New(client, sessions, s.store, collector.Options{
		ResolveHostnames:  cfg.ResolveHostnames,
		LogoutAfterScrape: cfg.LogoutAfterScrape,
	}, s.log.With().Str("component", "collector").Logger())

	s.mu.Lock()
	old := s.sessions
	s.cfg = cfg
	s.sessions = sessions
	s.collector = coll
	s.mu.Unlock()

	if old != nil {
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := old.Release(ctx); err != nil {
				s.log.Warn().Err(err).Msg("failed to release previous session")
			}
		}()
	}
}

// Handler returns the HTTP routes, also usable under a test server.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/metrics", s.handleMetrics)
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/-/reload", s.handleReload)
	return mux
}

// Start serves until the listener is closed. A graceful Stop makes it
// return nil.
func (s *Server) Start(addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.mu.Lock()
	s.srv = srv
	s.mu.Unlock()

	s.log.Info().Str("listen", addr).Msg("starting http server")
	err := srv.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Stop shuts the listener down gracefully and logs out of the router so the
// admin slot is not left dangling.
func (s *Server) Stop(ctx context.Context) error {
	s.mu.RLock()
	srv := s.srv
	sessions := s.sessions
	s.mu.RUnlock()

	var err error
	if srv != nil {
		err = srv.Shutdown(ctx)
	}
	if rerr := sessions.Release(ctx); rerr != nil {
		s.log.Warn().Err(rerr).Msg("failed to release session on shutdown")
		if err == nil {
			err = rerr
		}
	}
	return err
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	cfg := s.cfg
	coll := s.collector
	s.mu.RUnlock()

	timeout := getTimeout(cfg, r)
	ctx, cancel := context.WithTimeout(r.Context(), time.Duration(timeout*float64(time.Second)))
	defer cancel()

	coll.Scrape(ctx)

	registry := prometheus.NewRegistry()
	exporterRegistry := prometheus.WrapRegistererWithPrefix(metricPrefix, registry)

	snap := s.store.Snapshot()
	if snap.Status != nil {
		collector.AddMetricsRouter(exporterRegistry, snap.Status)
		collector.AddMetricsDevices(exporterRegistry, snap.Devices)
	}
	collector.AddMetricsOutcome(exporterRegistry, snap.Outcome)

	// the default gatherer contributes build info, config reload state, and
	// process metrics
	h := promhttp.HandlerFor(prometheus.Gatherers{registry, prometheus.DefaultGatherer}, promhttp.HandlerOpts{})
	h.ServeHTTP(w, r.WithContext(ctx))
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, `<html>
<head><title>TP-Link Router Exporter</title></head>
<body>
<h1>TP-Link Router Exporter</h1>
<p><a href="/metrics">Metrics</a></p>
<p><a href="/health">Health</a></p>
</body>
</html>
`)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	fmt.Fprintln(w, "OK")
}

func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	if err := s.reload(); err != nil {
		http.Error(w, fmt.Sprintf("failed to reload config: %s", err), http.StatusInternalServerError)
	}
}

// getTimeout prefers the scrape timeout Prometheus announces in its request
// header over the configured default.
func getTimeout(cfg *config.Config, r *http.Request) float64 {
	value := r.Header.Get("X-Prometheus-Scrape-Timeout-Seconds")
	if value != "" {
		timeout, err := strconv.ParseFloat(value, 64)
		if err == nil {
			return timeout
		}
	}
	return cfg.Timeout
}
