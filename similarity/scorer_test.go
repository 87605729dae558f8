package similarity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-lifeline/types"
)

func ptr(f float64) *float64 { return &f }

func baseReport(id string, created time.Time) types.IncidentReport {
	return types.IncidentReport{
		ID:          id,
		Title:       "Wildfire spreading near Ridge Road",
		Description: "Large wildfire moving east, heavy smoke over the valley",
		Category:    types.Wildfire,
		Severity:    types.High,
		Lat:         ptr(34.0522),
		Long:        ptr(-118.2437),
		CreatedAt:   created,
	}
}

func TestScoreNearIdenticalReports(t *testing.T) {
	now := time.Now()
	a := baseReport("r1", now)
	b := baseReport("r2", now.Add(90*time.Second))

	result := Score(DefaultConfig, a, b)

	assert.GreaterOrEqual(t, result.Score, DefaultConfig.DuplicateThreshold)
	assert.GreaterOrEqual(t, len(result.Reasons), 2)
	assert.Equal(t, "r2", result.ReportID)
}

func TestScoreSymmetric(t *testing.T) {
	now := time.Now()
	a := baseReport("r1", now)
	b := baseReport("r2", now.Add(3*time.Hour))
	b.Title = "Fire reported near Ridge Road area"
	b.Description = "Smoke visible across the valley, fire moving east"
	b.Lat = ptr(34.06)
	b.Long = ptr(-118.25)

	ab := Score(DefaultConfig, a, b)
	ba := Score(DefaultConfig, b, a)

	assert.InDelta(t, ab.Score, ba.Score, 1e-9)
	assert.Equal(t, len(ab.Reasons), len(ba.Reasons))
}

func TestScoreCategoryOnly(t *testing.T) {
	// Two reports sharing nothing but category and severity should score
	// low: flat signals alone average out without text/geo/time support.
	a := types.IncidentReport{
		ID:          "r1",
		Title:       "Downed power lines on Elm Street",
		Description: "sparking wires hanging over the sidewalk",
		Category:    types.Other,
		Severity:    types.Low,
		CreatedAt:   time.Now().Add(-72 * time.Hour),
	}
	b := types.IncidentReport{
		ID:          "r2",
		Title:       "Water main break flooding basement garages",
		Description: "residents report knee-deep water in garage levels",
		Category:    types.Other,
		Severity:    types.Critical,
		CreatedAt:   time.Now(),
	}

	result := Score(DefaultConfig, a, b)

	// only the category signal clears its gate
	require.Len(t, result.Reasons, 1)
	assert.InDelta(t, 1.0, result.Score, 1e-9) // flat signal scores full strength alone
}

func TestScoreNoSignals(t *testing.T) {
	a := types.IncidentReport{
		ID:          "r1",
		Title:       "Downed power lines on Elm Street",
		Description: "sparking wires hanging over the sidewalk",
		Category:    types.Other,
		Severity:    types.Low,
		CreatedAt:   time.Now().Add(-80 * time.Hour),
	}
	b := types.IncidentReport{
		ID:          "r2",
		Title:       "Brush fire visible from highway",
		Description: "flames moving uphill toward the radio towers",
		Category:    types.Wildfire,
		Severity:    types.High,
		CreatedAt:   time.Now(),
	}

	result := Score(DefaultConfig, a, b)

	assert.Zero(t, result.Score)
	assert.Empty(t, result.Reasons)
}

func TestScoreProximityGate(t *testing.T) {
	now := time.Now()
	a := baseReport("r1", now)
	b := baseReport("r2", now)

	// ~111 km north: outside the 5 km radius, geo signal excluded
	b.Lat = ptr(*a.Lat + 1.0)

	far := Score(DefaultConfig, a, b)
	for _, reason := range far.Reasons {
		assert.NotContains(t, reason, "Nearby")
	}

	// back within ~1.1 km: the geo signal now clears its gate
	b.Lat = ptr(*a.Lat + 0.01)
	near := Score(DefaultConfig, a, b)
	assert.Len(t, near.Reasons, len(far.Reasons)+1)
	assert.GreaterOrEqual(t, near.Score, DefaultConfig.DuplicateThreshold)
}

func TestScoreMissingCoordinatesSkipsGeoSignal(t *testing.T) {
	now := time.Now()
	a := baseReport("r1", now)
	b := baseReport("r2", now)
	b.Lat = nil
	b.Long = nil

	result := Score(DefaultConfig, a, b)
	for _, reason := range result.Reasons {
		assert.NotContains(t, reason, "Nearby")
	}
	// text, category, severity and time still corroborate
	assert.GreaterOrEqual(t, len(result.Reasons), 2)
}

func TestScoreBounds(t *testing.T) {
	now := time.Now()
	reports := []types.IncidentReport{
		baseReport("r1", now),
		baseReport("r2", now.Add(23*time.Hour)),
		{ID: "r3", Title: "x", Category: types.Flood, CreatedAt: now},
		{ID: "r4"},
	}

	for _, a := range reports {
		for _, b := range reports {
			s := Score(DefaultConfig, a, b).Score
			assert.GreaterOrEqual(t, s, 0.0)
			assert.LessOrEqual(t, s, 1.0)
		}
	}
}

func TestScoreTwoFireReportsExample(t *testing.T) {
	// Two fire reports 2 hours and ~1.2 km apart with overlapping
	// descriptions: category + proximity + time must clear 0.7 together.
	now := time.Now()
	a := types.IncidentReport{
		ID:          "r1",
		Title:       "Brush fire on the north ridge",
		Description: "fire spreading fast near the ridge trail, smoke everywhere",
		Category:    types.Wildfire,
		Severity:    types.High,
		Lat:         ptr(34.0000),
		Long:        ptr(-118.0000),
		CreatedAt:   now,
	}
	b := types.IncidentReport{
		ID:          "r2",
		Title:       "Smoke column above ridge trail",
		Description: "fire spreading fast near the ridge trail, lots of smoke",
		Category:    types.Wildfire,
		Severity:    types.Medium,
		Lat:         ptr(34.0108),
		Long:        ptr(-118.0000),
		CreatedAt:   now.Add(2 * time.Hour),
	}

	result := Score(DefaultConfig, a, b)

	assert.Greater(t, result.Score, 0.7)
	assert.GreaterOrEqual(t, len(result.Reasons), 3)
}
