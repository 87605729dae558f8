package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	"cloud.google.com/go/firestore"
	"github.com/gin-gonic/gin"

	"go-lifeline/db"
	"go-lifeline/logger"
	"go-lifeline/processor"
)

// ExportReports fetches the recent report pool and saves it to a local
// JSON file for offline analysis.
func ExportReports(c *gin.Context, firestoreClient *firestore.Client) {
	reports, err := db.GetRecentReports(c.Request.Context(), firestoreClient, processor.PoolLimit)
	if err != nil {
		logger.Error().Err(err).Msg("failed to fetch reports for export")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to fetch report data",
			"details": err.Error(),
		})
		return
	}

	if len(reports) == 0 {
		c.JSON(http.StatusOK, gin.H{
			"message": "No reports found to export.",
			"count":   0,
		})
		return
	}

	jsonData, err := json.MarshalIndent(reports, "", "  ")
	if err != nil {
		logger.Error().Err(err).Msg("failed to marshal report data")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to format report data",
			"details": err.Error(),
		})
		return
	}

	filename := "reports_export.json"
	if err := os.WriteFile(filename, jsonData, 0o644); err != nil {
		logger.Error().Err(err).Str("filename", filename).Msg("failed to write export file")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to write export file",
			"details": err.Error(),
		})
		return
	}

	logger.Info().Int("count", len(reports)).Str("filename", filename).Msg("exported reports")

	c.JSON(http.StatusOK, gin.H{
		"message":  fmt.Sprintf("Successfully exported %d reports.", len(reports)),
		"filename": filename,
		"count":    len(reports),
	})
}
