package handlers

import (
	"net/http"

	"cloud.google.com/go/firestore"
	"github.com/gin-gonic/gin"

	"go-lifeline/db"
	"go-lifeline/detection"
	"go-lifeline/logger"
	"go-lifeline/processor"
	"go-lifeline/types"
)

// SubmitReport runs the intake pipeline for a citizen-submitted report and
// returns the stored report together with the duplicate verdict and
// similar-report proposals.
func SubmitReport(c *gin.Context, firestoreClient *firestore.Client, detector *detection.Detector) {
	var report types.IncidentReport
	if err := c.ShouldBindJSON(&report); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := processor.ProcessIncomingReport(c.Request.Context(), firestoreClient, detector, report)
	if err != nil {
		logger.Error().Err(err).Msg("report intake failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process report"})
		return
	}

	c.JSON(http.StatusCreated, result)
}

// GetSimilarReports recomputes the similar-report ranking for an existing
// report against the current recent pool.
func GetSimilarReports(c *gin.Context, firestoreClient *firestore.Client, detector *detection.Detector) {
	ctx := c.Request.Context()

	report, err := db.GetReport(ctx, firestoreClient, c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	pool, err := db.GetRecentReports(ctx, firestoreClient, processor.PoolLimit)
	if err != nil {
		logger.Error().Err(err).Msg("failed to load report pool")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve reports for analysis"})
		return
	}

	similar := detector.FindSimilar(report, pool)
	c.JSON(http.StatusOK, gin.H{
		"reportId": report.ID,
		"similar":  similar,
		"count":    len(similar),
	})
}
