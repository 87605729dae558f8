package similarity

import "time"

// Config defines the gates, weights and thresholds for multi-signal report
// similarity. The defaults are operational tuning knobs, not derived
// optima; deployments may override them via environment configuration.
type Config struct {
	// Text signals: a signal only contributes when it clears its gate, so
	// a weak signal can never dilute the combined score.
	TitleGate   float64
	TitleWeight float64
	DescGate    float64
	DescWeight  float64

	// Flat signals.
	CategoryWeight float64
	SeverityWeight float64

	// Geospatial proximity.
	ProximityRadiusKm float64
	ProximityWeight   float64

	// Temporal proximity.
	TemporalWindow time.Duration
	TemporalGate   float64
	TemporalWeight float64

	// Acceptance thresholds used by the duplicate detector and the
	// cluster builder.
	SimilarThreshold   float64
	DuplicateThreshold float64
	MinReasons         int
}

// DefaultConfig is the production tuning.
var DefaultConfig = Config{
	TitleGate:   0.5,
	TitleWeight: 2.5,
	DescGate:    0.4,
	DescWeight:  2.0,

	CategoryWeight: 1.5,
	SeverityWeight: 0.5,

	ProximityRadiusKm: 5.0,
	ProximityWeight:   2.0,

	TemporalWindow: 24 * time.Hour,
	TemporalGate:   0.3,
	TemporalWeight: 1.0,

	SimilarThreshold:   0.70,
	DuplicateThreshold: 0.85,
	MinReasons:         2,
}
