// Package similarity scores incident report pairs across text, category,
// severity, geospatial and temporal signals.
package similarity

import (
	"fmt"

	"go-lifeline/geoutil"
	"go-lifeline/textsim"
	"go-lifeline/types"
)

// Score computes the weighted multi-signal similarity between two reports.
// Each signal that clears its gate contributes weight*strength to the
// total and weight to the denominator, plus one reason string; the final
// score is the weighted average over included signals only. Comparing only
// attribute pairs keeps the function symmetric in its arguments.
func Score(cfg Config, a, b types.IncidentReport) types.SimilarityResult {
	var total, denom float64
	var reasons []string

	if ts := textsim.Similarity(a.Title, b.Title); ts > cfg.TitleGate {
		total += cfg.TitleWeight * ts
		denom += cfg.TitleWeight
		reasons = append(reasons, fmt.Sprintf("Similar title (%.0f%% match)", ts*100))
	}

	if ds := textsim.Similarity(a.Description, b.Description); ds > cfg.DescGate {
		total += cfg.DescWeight * ds
		denom += cfg.DescWeight
		reasons = append(reasons, fmt.Sprintf("Similar description (%.0f%% match)", ds*100))
	}

	if a.Category == b.Category {
		total += cfg.CategoryWeight
		denom += cfg.CategoryWeight
		reasons = append(reasons, fmt.Sprintf("Same category: %s", a.Category))
	}

	if a.Severity == b.Severity {
		total += cfg.SeverityWeight
		denom += cfg.SeverityWeight
		reasons = append(reasons, fmt.Sprintf("Same severity: %s", a.Severity))
	}

	if a.HasCoordinates() && b.HasCoordinates() {
		dist := geoutil.DistanceKm(*a.Lat, *a.Long, *b.Lat, *b.Long)
		if dist <= cfg.ProximityRadiusKm {
			strength := 1.0 - dist/cfg.ProximityRadiusKm
			total += cfg.ProximityWeight * strength
			denom += cfg.ProximityWeight
			reasons = append(reasons, fmt.Sprintf("Nearby locations (%.1f km apart)", dist))
		}
	}

	if !a.CreatedAt.IsZero() && !b.CreatedAt.IsZero() {
		dt := a.CreatedAt.Sub(b.CreatedAt)
		if dt < 0 {
			dt = -dt
		}
		if dt <= cfg.TemporalWindow {
			strength := 1.0 - dt.Hours()/cfg.TemporalWindow.Hours()
			if strength > cfg.TemporalGate {
				total += cfg.TemporalWeight * strength
				denom += cfg.TemporalWeight
				reasons = append(reasons, fmt.Sprintf("Reported %.1f hours apart", dt.Hours()))
			}
		}
	}

	score := 0.0
	if denom > 0 {
		score = total / denom
	}
	if score < 0 {
		score = 0
	}
	if score > 1 {
		score = 1
	}

	return types.SimilarityResult{
		ReportID: b.ID,
		Score:    score,
		Reasons:  reasons,
	}
}
