// Package cache retains the most recent router state across scrape cycles.
package cache

import (
	"sync"

	"github.com/swoga/tplink-exporter/model"
)

// Snapshot is everything a render needs: the last successfully fetched
// router state plus the outcome of the most recent cycle.
type Snapshot struct {
	Status  *model.RouterStatus
	Devices []model.Device
	Outcome model.ScrapeOutcome
}

// Store keeps the last successful snapshot. A failed cycle updates only the
// outcome; everything else stays until the next success replaces it
// wholesale.
type Store struct {
	mutex   sync.RWMutex
	status  *model.RouterStatus
	devices []model.Device
	outcome model.ScrapeOutcome
}

func New() *Store {
	return &Store{}
}

// Update replaces the retained state with the result of a successful cycle.
// Devices absent from the new list drop out of the exposition with this
// call.
func (s *Store) Update(status *model.RouterStatus, devices []model.Device) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.status = status
	s.devices = devices
}

// SetOutcome records the result of a cycle, successful or not.
func (s *Store) SetOutcome(outcome model.ScrapeOutcome) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.outcome = outcome
}

// Snapshot returns the retained state. Status is nil until the first
// successful cycle. Callers must not mutate the device slice.
func (s *Store) Snapshot() Snapshot {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return Snapshot{
		Status:  s.status,
		Devices: s.devices,
		Outcome: s.outcome,
	}
}
