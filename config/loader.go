package config

import (
	"fmt"
	"os"
	"sync"

	"github.com/goccy/go-yaml"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	configReloadSuccess = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "tplink_exporter",
		Name:      "config_last_reload_successful",
		Help:      "TP-Link exporter config loaded successfully.",
	})

	configReloadSeconds = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "tplink_exporter",
		Name:      "config_last_reload_success_timestamp_seconds",
		Help:      "Timestamp of the last successful configuration reload.",
	})
)

func init() {
	prometheus.MustRegister(configReloadSuccess)
	prometheus.MustRegister(configReloadSeconds)
}

// Overrides carries flag values that take precedence over the config file.
// Nil fields were not set on the command line.
type Overrides struct {
	Listen            *string
	Port              *int
	Timeout           *float64
	ResolveHostnames  *bool
	LogoutAfterScrape *bool
	Host              *string
	Username          *string
	Password          *string
	HTTPS             *bool
	VerifySSL         *bool
}

func (o Overrides) apply(c *Config) {
	if o.Listen != nil {
		c.Listen = *o.Listen
	}
	if o.Port != nil {
		c.Port = *o.Port
	}
	if o.Timeout != nil {
		c.Timeout = *o.Timeout
	}
	if o.ResolveHostnames != nil {
		c.ResolveHostnames = *o.ResolveHostnames
	}
	if o.LogoutAfterScrape != nil {
		c.LogoutAfterScrape = *o.LogoutAfterScrape
	}
	if o.Host != nil {
		c.Router.Host = *o.Host
	}
	if o.Username != nil {
		c.Router.Username = *o.Username
	}
	if o.Password != nil {
		c.Router.Password = *o.Password
	}
	if o.HTTPS != nil {
		c.Router.HTTPS = *o.HTTPS
	}
	if o.VerifySSL != nil {
		c.Router.VerifySSL = *o.VerifySSL
	}
}

type SafeConfig struct {
	sync.RWMutex
	configFile string
	overrides  Overrides
	c          *Config
}

func New(configFile string, overrides Overrides) SafeConfig {
	c := DefaultConfig()
	return SafeConfig{
		c:          &c,
		configFile: configFile,
		overrides:  overrides,
	}
}

func (sc *SafeConfig) Get() *Config {
	sc.RLock()
	defer sc.RUnlock()
	return sc.c
}

// LoadConfig re-reads the config file when one is set, applies flag
// overrides and the TPLINK_PASSWORD fallback, and validates the result.
// The active config is only replaced on success.
func (sc *SafeConfig) LoadConfig() (err error) {
	defer func() {
		if err != nil {
			configReloadSuccess.Set(0)
		} else {
			configReloadSuccess.Set(1)
			configReloadSeconds.SetToCurrentTime()
		}
	}()

	c := DefaultConfig()
	if sc.configFile != "" {
		data, readErr := os.ReadFile(sc.configFile)
		if readErr != nil {
			return fmt.Errorf("error reading config file: %s", readErr)
		}
		if parseErr := yaml.UnmarshalWithOptions(data, &c, yaml.Strict()); parseErr != nil {
			return fmt.Errorf("error parsing config file: %s", parseErr)
		}
	}

	sc.overrides.apply(&c)
	if c.Router.Password == "" {
		c.Router.Password = os.Getenv("TPLINK_PASSWORD")
	}
	if err = c.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %s", err)
	}

	sc.Lock()
	sc.c = &c
	sc.Unlock()

	return nil
}
