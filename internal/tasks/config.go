package tasks

import "time"

// Queue defaults. A generation run over the whole sheet makes one SpeechKit
// call per missing cue, so it is sized in tens of minutes, not seconds.
const (
	DefaultWorkers           = 1
	DefaultMaxRetries        = 1
	DefaultRetryDelay        = time.Minute
	DefaultTaskTimeout       = 60 * time.Minute
	DefaultReleaseAfter      = 90 * time.Minute
	DefaultCleanupInterval   = time.Hour
	DefaultRetentionDuration = 24 * time.Hour

	// releaseMargin is the minimum gap between the task timeout and the
	// point where backlite hands a claimed task to another worker.
	releaseMargin = 15 * time.Minute
)

// Config holds configuration for the task queue system.
type Config struct {
	// Workers is the number of concurrent task workers. Default: 1
	Workers int

	// MaxRetries is the maximum attempts for a failed task. Default: 1
	MaxRetries int

	// RetryDelay is the backoff between attempts. Default: 1m
	RetryDelay time.Duration

	// TaskTimeout bounds a single generation run. Default: 60m
	TaskTimeout time.Duration

	// ReleaseAfter is when a claimed task is handed back to the queue.
	// Always later than TaskTimeout. Default: 90m
	ReleaseAfter time.Duration

	// CleanupInterval is how often finished tasks are purged. Default: 1h
	CleanupInterval time.Duration

	// RetentionDuration is how long finished tasks are kept. Default: 24h
	RetentionDuration time.Duration
}

// DefaultConfig returns the queue settings used when nothing is configured.
func DefaultConfig() Config {
	return Config{
		Workers:           DefaultWorkers,
		MaxRetries:        DefaultMaxRetries,
		RetryDelay:        DefaultRetryDelay,
		TaskTimeout:       DefaultTaskTimeout,
		ReleaseAfter:      DefaultReleaseAfter,
		CleanupInterval:   DefaultCleanupInterval,
		RetentionDuration: DefaultRetentionDuration,
	}
}

// withDefaults fills unset fields and pushes ReleaseAfter past the longest
// task timeout, so a running generation is never released to a second worker.
func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.Workers <= 0 {
		c.Workers = def.Workers
	}
	if c.MaxRetries <= 0 {
		c.MaxRetries = def.MaxRetries
	}
	if c.RetryDelay <= 0 {
		c.RetryDelay = def.RetryDelay
	}
	if c.TaskTimeout <= 0 {
		c.TaskTimeout = def.TaskTimeout
	}
	if c.CleanupInterval <= 0 {
		c.CleanupInterval = def.CleanupInterval
	}
	if c.RetentionDuration <= 0 {
		c.RetentionDuration = def.RetentionDuration
	}

	longest := max(c.TaskTimeout, generateAudioTimeout)
	if c.ReleaseAfter < longest+releaseMargin {
		c.ReleaseAfter = max(def.ReleaseAfter, longest+releaseMargin)
	}
	return c
}
