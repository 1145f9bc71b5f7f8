package collector

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/swoga/tplink-exporter/model"
)

// Resolver is the reverse-DNS lookup used to enrich device hostnames.
// net.DefaultResolver satisfies it.
type Resolver interface {
	LookupAddr(ctx context.Context, addr string) ([]string, error)
}

const lookupTimeout = 100 * time.Millisecond

// resolveHostnames fills in generic device hostnames via reverse DNS.
// Lookups run in parallel with a 100ms timeout each; a failed or slow lookup
// leaves the hostname as reported by the router.
func resolveHostnames(ctx context.Context, resolver Resolver, devices []model.Device) {
	var wg sync.WaitGroup
	for i := range devices {
		device := &devices[i]
		if !genericHostname(device.Hostname) {
			continue
		}
		if device.IP == "" || device.IP == "0.0.0.0" {
			continue
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			lookupCtx, cancel := context.WithTimeout(ctx, lookupTimeout)
			defer cancel()

			names, err := resolver.LookupAddr(lookupCtx, device.IP)
			if err != nil || len(names) == 0 {
				return
			}
			device.Hostname = strings.TrimSuffix(names[0], ".")
		}()
	}
	wg.Wait()
}

// genericHostname reports whether the router-reported name carries no
// information. Routers hand out "network device" or "unknown" for clients
// that do not announce a name.
func genericHostname(name string) bool {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "unknown", "network device":
		return true
	}
	return false
}
