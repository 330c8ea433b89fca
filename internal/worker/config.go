// Package worker provides background job processing for PawMatch.
package worker

import (
	"time"
)

// ScanConfig holds configuration for the match scan job.
type ScanConfig struct {
	// Concurrency is the number of adopters scored concurrently.
	// Default: 3
	Concurrency int

	// Timeout is the timeout for scanning one animal.
	// Default: 30 seconds
	Timeout time.Duration

	// NotifyThreshold is the minimum overall score that triggers a
	// new-match notification. Default: 0.6
	NotifyThreshold float64
}

// DefaultScanConfig returns the default scan configuration.
func DefaultScanConfig() ScanConfig {
	return ScanConfig{
		Concurrency:     3,
		Timeout:         30 * time.Second,
		NotifyThreshold: 0.6,
	}
}

// withDefaults fills in zero values.
func (c ScanConfig) withDefaults() ScanConfig {
	if c.Concurrency <= 0 {
		c.Concurrency = 3
	}
	if c.Timeout <= 0 {
		c.Timeout = 30 * time.Second
	}
	if c.NotifyThreshold <= 0 {
		c.NotifyThreshold = 0.6
	}
	return c
}
