// Package metrics records content resolution and build metrics.
//
// Components take a Recorder and default to NoopRecorder, so metrics stay
// optional. PrometheusRecorder is swapped in when the server or the build is
// started with metrics enabled.
package metrics

import "time"

// Outcome labels a resolution result.
type Outcome string

const (
	OutcomeFound    Outcome = "found"
	OutcomeNotFound Outcome = "not_found"
)

// Recorder receives observations from the resolver, server and build.
type Recorder interface {
	IncResolve(collection string, outcome Outcome)
	AddRoutes(collection string, n int)
	ObserveBuildDuration(d time.Duration)
}

// NoopRecorder discards every observation.
type NoopRecorder struct{}

func (NoopRecorder) IncResolve(string, Outcome)         {}
func (NoopRecorder) AddRoutes(string, int)              {}
func (NoopRecorder) ObserveBuildDuration(time.Duration) {}
