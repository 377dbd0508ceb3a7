package utils

import (
	"time"

	"github.com/rs/zerolog"
)

// Timer measures the duration of one operation and logs it on Stop
type Timer struct {
	start time.Time
	name  string
	log   zerolog.Logger
}

// NewTimer starts a timer for the named operation
func NewTimer(name string, log zerolog.Logger) *Timer {
	return &Timer{
		start: time.Now(),
		name:  name,
		log:   log,
	}
}

// Stop logs the elapsed duration and returns it. Ingestion and bulk
// writes are expected to finish within seconds on a local database;
// anything slower gets a louder log line.
func (t *Timer) Stop() time.Duration {
	duration := time.Since(t.start)

	event := t.log.Debug()
	if duration > 10*time.Second {
		event = t.log.Warn()
	}
	event.
		Str("operation", t.name).
		Dur("duration", duration).
		Msg("Operation timed")

	return duration
}
