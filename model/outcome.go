package model

import "time"

// ScrapeOutcome describes one scrape cycle. An outcome is recorded on every
// cycle, success or not.
type ScrapeOutcome struct {
	Success  bool
	Duration time.Duration
}
