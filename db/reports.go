package db

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"go-lifeline/types"
)

// SaveReport persists a report, assigning an id when absent, and returns
// the stored id.
func SaveReport(ctx context.Context, client *firestore.Client, report types.IncidentReport) (string, error) {
	if report.ID == "" {
		report.ID = uuid.NewString()
	}
	if report.SimilarReportIDs == nil {
		report.SimilarReportIDs = []string{}
	}

	_, err := client.Collection(reportsCollection).Doc(report.ID).Set(ctx, report)
	if err != nil {
		return "", fmt.Errorf("failed to save report %s: %w", report.ID, err)
	}
	return report.ID, nil
}

// GetReport loads a single report by id.
func GetReport(ctx context.Context, client *firestore.Client, id string) (types.IncidentReport, error) {
	doc, err := client.Collection(reportsCollection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return types.IncidentReport{}, fmt.Errorf("report %s not found", id)
		}
		return types.IncidentReport{}, fmt.Errorf("failed to get report %s: %w", id, err)
	}

	var report types.IncidentReport
	if err := doc.DataTo(&report); err != nil {
		return types.IncidentReport{}, fmt.Errorf("failed to decode report %s: %w", id, err)
	}
	report.ID = doc.Ref.ID
	return report, nil
}

// GetRecentReports returns up to limit reports, newest first. This is the
// bounded candidate pool handed to the correlation engine; capping it here
// keeps the pairwise comparison cost predictable.
func GetRecentReports(ctx context.Context, client *firestore.Client, limit int) ([]types.IncidentReport, error) {
	docs, err := client.Collection(reportsCollection).
		OrderBy("createdAt", firestore.Desc).
		Limit(limit).
		Documents(ctx).
		GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to query recent reports: %w", err)
	}

	reports := make([]types.IncidentReport, 0, len(docs))
	for _, doc := range docs {
		var report types.IncidentReport
		if err := doc.DataTo(&report); err != nil {
			return nil, fmt.Errorf("failed to decode report %s: %w", doc.Ref.ID, err)
		}
		report.ID = doc.Ref.ID
		reports = append(reports, report)
	}

	return reports, nil
}

// AddSimilarLink records a proposed similarity edge on both endpoints in a
// single transaction. Similarity is an undirected relation, so storage must
// stay symmetric: linking A to B without B to A would corrupt the graph.
func AddSimilarLink(ctx context.Context, client *firestore.Client, reportID, similarID string) error {
	if reportID == similarID {
		return nil
	}

	refA := client.Collection(reportsCollection).Doc(reportID)
	refB := client.Collection(reportsCollection).Doc(similarID)

	err := client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		// transactions require all reads before any write
		if _, err := tx.Get(refA); err != nil {
			return fmt.Errorf("error getting report %s: %w", reportID, err)
		}
		if _, err := tx.Get(refB); err != nil {
			return fmt.Errorf("error getting report %s: %w", similarID, err)
		}

		if err := tx.Update(refA, []firestore.Update{
			{Path: "similarReportIds", Value: firestore.ArrayUnion(similarID)},
		}); err != nil {
			return fmt.Errorf("failed to link %s -> %s: %w", reportID, similarID, err)
		}
		if err := tx.Update(refB, []firestore.Update{
			{Path: "similarReportIds", Value: firestore.ArrayUnion(reportID)},
		}); err != nil {
			return fmt.Errorf("failed to link %s -> %s: %w", similarID, reportID, err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("similar-link transaction failed: %w", err)
	}
	return nil
}
