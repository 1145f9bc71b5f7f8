package config

import (
	"fmt"
	"net"
	"strconv"
)

// Config is the effective exporter configuration, merged from the optional
// YAML file, command-line flags (which win), and the TPLINK_PASSWORD
// environment variable.
type Config struct {
	Listen            string  `yaml:"listen"`
	Port              int     `yaml:"port"`
	Timeout           float64 `yaml:"timeout"`
	ResolveHostnames  bool    `yaml:"resolve_hostnames"`
	LogoutAfterScrape bool    `yaml:"logout_after_scrape"`
	Router            Router  `yaml:"router"`
}

// Router describes how to reach the router admin interface.
type Router struct {
	Host      string `yaml:"host"`
	Username  string `yaml:"username"`
	Password  string `yaml:"password"`
	HTTPS     bool   `yaml:"https"`
	VerifySSL bool   `yaml:"verify_ssl"`
}

func DefaultConfig() Config {
	return Config{
		Listen:           "0.0.0.0",
		Port:             9120,
		Timeout:          30,
		ResolveHostnames: true,
		Router: Router{
			Host:     "192.168.0.1",
			Username: "admin",
		},
	}
}

// Address is the host:port the HTTP server binds to.
func (c *Config) Address() string {
	return net.JoinHostPort(c.Listen, strconv.Itoa(c.Port))
}

func (c *Config) Validate() error {
	if c.Router.Host == "" {
		return fmt.Errorf("router host must not be empty")
	}
	if c.Router.Password == "" {
		return fmt.Errorf("router password must be set via -password, the config file, or TPLINK_PASSWORD")
	}
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %v", c.Timeout)
	}
	return nil
}
