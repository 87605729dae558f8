// Package processor runs the report intake pipeline: geocode enrichment,
// duplicate detection against the recent pool, persistence, and
// bidirectional similarity-link writes.
package processor

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"

	"go-lifeline/db"
	"go-lifeline/detection"
	"go-lifeline/geocode"
	"go-lifeline/logger"
	"go-lifeline/types"
)

// PoolLimit bounds the recent-report candidate pool handed to the
// correlation engine, capping the O(n^2) comparison cost.
const PoolLimit = 200

// IntakeResult is what a report submission produces: the stored report,
// the advisory duplicate verdict, and the similar reports that were linked.
type IntakeResult struct {
	Report  types.IncidentReport     `json:"report"`
	Verdict types.DuplicateVerdict   `json:"verdict"`
	Similar []types.SimilarityResult `json:"similar"`
}

// ProcessIncomingReport runs the full intake pipeline for a new report.
// Geocoding failures degrade to a coordinate-less report; similarity-link
// write failures are logged but do not fail the intake, since the report
// itself is already persisted and links can be rebuilt from a re-run.
func ProcessIncomingReport(
	ctx context.Context,
	client *firestore.Client,
	detector *detection.Detector,
	report types.IncidentReport,
) (IntakeResult, error) {
	if report.ID == "" {
		report.ID = uuid.NewString()
	}
	if report.CreatedAt.IsZero() {
		report.CreatedAt = time.Now().UTC()
	}
	if report.Severity == "" {
		report.Severity = types.Low
	}

	// 1. Enrich with coordinates when only a free-text location was given.
	if !report.HasCoordinates() && report.Location != "" {
		if lat, long, ok := geocode.ResolveCoordinates(ctx, report.Location); ok {
			report.Lat = &lat
			report.Long = &long
		}
	}

	// 2. Score against the bounded recent pool.
	pool, err := db.GetRecentReports(ctx, client, PoolLimit)
	if err != nil {
		return IntakeResult{}, fmt.Errorf("failed to load report pool: %w", err)
	}

	verdict := detector.DetectDuplicate(report, pool)
	similar := detector.FindSimilar(report, pool)

	// 3. Persist the report.
	if _, err := db.SaveReport(ctx, client, report); err != nil {
		return IntakeResult{}, err
	}

	// 4. Persist proposed similarity edges, both directions.
	for _, match := range similar {
		if err := db.AddSimilarLink(ctx, client, report.ID, match.ReportID); err != nil {
			logger.Warn().Err(err).
				Str("reportId", report.ID).
				Str("similarId", match.ReportID).
				Msg("failed to persist similarity link")
			continue
		}
		report.SimilarReportIDs = append(report.SimilarReportIDs, match.ReportID)
	}

	if verdict.IsDuplicate {
		logger.Info().
			Str("reportId", report.ID).
			Str("duplicateOf", verdict.DuplicateOfID).
			Float64("confidence", verdict.Confidence).
			Msg("likely duplicate report detected")
	}

	return IntakeResult{Report: report, Verdict: verdict, Similar: similar}, nil
}
