// Package collector runs the scrape cycle: ensure an admin session, fetch
// router state, retain it, and emit it onto per-render registries.
package collector

import (
	"context"
	"errors"
	"net"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/swoga/tplink-exporter/api"
	"github.com/swoga/tplink-exporter/cache"
	"github.com/swoga/tplink-exporter/model"
	"github.com/swoga/tplink-exporter/session"
)

// API is the slice of the router client the collector fetches with.
type API interface {
	Status(ctx context.Context, token string) (*model.RouterStatus, error)
	Clients(ctx context.Context, token string) ([]model.Device, error)
}

// Options tune a Collector beyond its collaborators.
type Options struct {
	// ResolveHostnames enriches generic device hostnames via reverse DNS
	// after each successful fetch.
	ResolveHostnames bool
	// LogoutAfterScrape releases the admin session at the end of every
	// cycle instead of holding it.
	LogoutAfterScrape bool
	// Resolver overrides the DNS resolver, nil means net.DefaultResolver.
	Resolver Resolver
}

type Collector struct {
	client  API
	session *session.Manager
	store   *cache.Store
	opts    Options
	log     zerolog.Logger
	group   singleflight.Group
}

func New(client API, sessions *session.Manager, store *cache.Store, opts Options, logger zerolog.Logger) *Collector {
	if opts.Resolver == nil {
		opts.Resolver = net.DefaultResolver
	}
	return &Collector{
		client:  client,
		session: sessions,
		store:   store,
		opts:    opts,
		log:     logger,
	}
}

// Scrape runs one scrape cycle, or joins the cycle already in flight: a
// second concurrent call waits for the first and shares its outcome rather
// than contending for the router's single admin session. The outcome is
// recorded in the store either way.
func (c *Collector) Scrape(ctx context.Context) model.ScrapeOutcome {
	v, _, _ := c.group.Do("scrape", func() (interface{}, error) {
		return c.runCycle(ctx), nil
	})
	return v.(model.ScrapeOutcome)
}

func (c *Collector) runCycle(ctx context.Context) model.ScrapeOutcome {
	start := time.Now()

	status, devices, err := c.fetch(ctx)
	if err == nil && c.opts.ResolveHostnames {
		resolveHostnames(ctx, c.opts.Resolver, devices)
	}

	if c.opts.LogoutAfterScrape {
		if rerr := c.session.Release(ctx); rerr != nil {
			c.log.Warn().Err(rerr).Msg("logout after scrape failed")
		}
	}

	outcome := model.ScrapeOutcome{Success: err == nil, Duration: time.Since(start)}
	if err != nil {
		c.log.Error().Err(err).Dur("duration", outcome.Duration).Msg("scrape failed")
	} else {
		c.store.Update(status, devices)
		c.log.Debug().Dur("duration", outcome.Duration).Int("devices", len(devices)).Msg("scrape succeeded")
	}
	c.store.SetOutcome(outcome)

	return outcome
}

// fetch pulls status and client list with the current session. When a data
// call comes back auth-shaped the cached token went stale (expired or
// displaced by another admin login): invalidate it, log in again, and retry
// once within the same cycle. Transport timeouts keep the session. A failed
// login is not retried.
func (c *Collector) fetch(ctx context.Context) (*model.RouterStatus, []model.Device, error) {
	token, err := c.session.Ensure(ctx)
	if err != nil {
		return nil, nil, err
	}

	status, devices, err := c.fetchWith(ctx, token)
	if err == nil {
		return status, devices, nil
	}
	var authErr *api.AuthError
	if !errors.As(err, &authErr) {
		return nil, nil, err
	}

	c.log.Info().Msg("session rejected, logging in again")
	c.session.Invalidate()
	token, err = c.session.Ensure(ctx)
	if err != nil {
		return nil, nil, err
	}
	return c.fetchWith(ctx, token)
}

func (c *Collector) fetchWith(ctx context.Context, token string) (*model.RouterStatus, []model.Device, error) {
	status, err := c.client.Status(ctx, token)
	if err != nil {
		return nil, nil, err
	}
	devices, err := c.client.Clients(ctx, token)
	if err != nil {
		return nil, nil, err
	}
	return status, devices, nil
}
