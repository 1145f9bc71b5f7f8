package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	promversion "github.com/prometheus/common/version"
	"github.com/rs/zerolog"

	"github.com/swoga/tplink-exporter/config"
	"github.com/swoga/tplink-exporter/exporter"
	"github.com/swoga/tplink-exporter/version"
)

func main() {
	// parse command line args, flags win over config file values
	configFile := flag.String("config.file", "", "path to the optional YAML config file")
	listen := flag.String("listen", "0.0.0.0", "address to listen on")
	port := flag.Int("port", 9120, "port to serve metrics on")
	host := flag.String("host", "192.168.0.1", "router address")
	username := flag.String("username", "admin", "router admin username")
	password := flag.String("password", "", "router admin password (or TPLINK_PASSWORD)")
	https := flag.Bool("https", false, "use HTTPS towards the router")
	verifySSL := flag.Bool("verify-ssl", false, "verify the router TLS certificate")
	timeout := flag.Float64("timeout", 30, "default scrape timeout in seconds")
	resolveHostnames := flag.Bool("resolve-hostnames", true, "resolve generic device hostnames via reverse DNS")
	logoutAfterScrape := flag.Bool("logout-after-scrape", false, "release the router session after every scrape")
	debug := flag.Bool("debug", false, "enable debug logging")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	var overrides config.Overrides
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "listen":
			overrides.Listen = listen
		case "port":
			overrides.Port = port
		case "timeout":
			overrides.Timeout = timeout
		case "resolve-hostnames":
			overrides.ResolveHostnames = resolveHostnames
		case "logout-after-scrape":
			overrides.LogoutAfterScrape = logoutAfterScrape
		case "host":
			overrides.Host = host
		case "username":
			overrides.Username = username
		case "password":
			overrides.Password = password
		case "https":
			overrides.HTTPS = https
		case "verify-ssl":
			overrides.VerifySSL = verifySSL
		}
	})

	promversion.Version = version.Version
	promversion.Revision = version.Revision
	promversion.Branch = version.Branch
	promversion.BuildDate = version.BuildDate

	if *showVersion {
		fmt.Println(promversion.Print("tplink-exporter"))
		os.Exit(0)
	}

	level := zerolog.InfoLevel
	if *debug {
		level = zerolog.DebugLevel
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		Level(level).With().Timestamp().Logger()

	log.Info().Str("version", version.Version).Str("revision", version.Revision).Msg("starting tplink-exporter")
	prometheus.MustRegister(promversion.NewCollector("tplink_exporter"))

	// initial config load
	sc := config.New(*configFile, overrides)
	if err := sc.LoadConfig(); err != nil {
		log.Fatal().Err(err).Msg("error loading config")
	}

	// setup config reload, every path funnels through one loop
	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	reloadRequest := make(chan chan error)

	reload := func() error {
		result := make(chan error)
		reloadRequest <- result
		return <-result
	}

	srv := exporter.New(sc.Get(), reload, log.With().Str("component", "exporter").Logger())

	go func() {
		for {
			var err error
			select {
			case <-hup:
				log.Debug().Msg("config reload triggered by SIGHUP")
				err = reloadConfig(&sc, srv)
			case result := <-reloadRequest:
				log.Debug().Msg("config reload triggered by API")
				err = reloadConfig(&sc, srv)
				result <- err
			}
			if err != nil {
				log.Error().Err(err).Msg("error reloading config")
			} else {
				log.Info().Msg("reloaded config file")
			}
		}
	}()

	watchCtx, stopWatch := context.WithCancel(context.Background())
	defer stopWatch()
	if *configFile != "" {
		go func() {
			err := config.Watch(watchCtx, *configFile, log.With().Str("component", "config").Logger(), func() {
				_ = reload()
			})
			if err != nil {
				log.Error().Err(err).Msg("config watcher failed")
			}
		}()
	}

	// start http server
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start(sc.Get().Address())
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			log.Fatal().Err(err).Msg("error starting http server")
		}
	case sig := <-stop:
		log.Info().Str("signal", sig.String()).Msg("shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Stop(ctx); err != nil {
			log.Error().Err(err).Msg("error during shutdown")
		}
	}
}

func reloadConfig(sc *config.SafeConfig, srv *exporter.Server) error {
	if err := sc.LoadConfig(); err != nil {
		return err
	}
	srv.ApplyConfig(sc.Get())
	return nil
}
