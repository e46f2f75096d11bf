// Package diag provides the warning sink threaded through the scanner and
// the integration engine. Anomalies are collected per run so callers can
// inspect them without capturing process-wide log output; each warning is
// also mirrored to the standard logger.
package diag

import (
	"fmt"
	"log"
)

// Sink collects warnings for one conversion run. A run is single-threaded;
// Sink is not safe for concurrent use.
type Sink struct {
	warnings []string
}

// NewSink creates an empty warning sink.
func NewSink() *Sink {
	return &Sink{}
}

// Warnf records a warning and mirrors it to the process logger.
func (s *Sink) Warnf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	s.warnings = append(s.warnings, msg)
	log.Printf("warning: %s", msg)
}

// Warnings returns the collected warnings in order of occurrence.
func (s *Sink) Warnings() []string {
	return s.warnings
}

// Count returns the number of collected warnings.
func (s *Sink) Count() int {
	return len(s.warnings)
}
