package handlers

import (
	"context"
	"net/http"
	"os"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/gin-gonic/gin"
	"github.com/sashabaranov/go-openai"

	"go-lifeline/db"
	"go-lifeline/detection"
	"go-lifeline/logger"
	"go-lifeline/processor"
	"go-lifeline/summarization"
	"go-lifeline/types"
)

// RunClustering fetches the recent report pool, runs cluster detection,
// generates summaries, and saves results.
func RunClustering(c *gin.Context, firestoreClient *firestore.Client, detector *detection.Detector) {
	ctx := c.Request.Context()

	pool, err := db.GetRecentReports(ctx, firestoreClient, processor.PoolLimit)
	if err != nil {
		logger.Error().Err(err).Msg("failed to fetch report pool for clustering")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve reports for analysis"})
		return
	}
	if len(pool) == 0 {
		c.JSON(http.StatusOK, gin.H{"message": "No reports to cluster", "clusters": []types.Cluster{}})
		return
	}

	clusters := detector.ClusterReports(pool)
	if len(clusters) == 0 {
		c.JSON(http.StatusOK, gin.H{"message": "No incident clusters identified", "clusters": []types.Cluster{}})
		return
	}

	// Summaries are best-effort: skipped entirely without an API key,
	// individually skipped on failure.
	if apiKey := os.Getenv("OPENAI_API_KEY"); apiKey != "" {
		openaiClient := openai.NewClient(apiKey)
		ctxSummarize, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		if err := summarization.GenerateSummaries(ctxSummarize, clusters, firestoreClient, openaiClient); err != nil {
			logger.Warn().Err(err).Msg("cluster summary generation incomplete")
		}
	}

	if err := db.SaveClusters(ctx, firestoreClient, clusters); err != nil {
		logger.Error().Err(err).Msg("failed to save clusters")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":    "Failed to save detected clusters",
			"clusters": clusters,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Clustering complete",
		"pooled":   len(pool),
		"clusters": clusters,
	})
}

// MergeClusters reconciles two stored clusters into one. The merged result
// replaces the earlier cluster; the later one is deleted.
func MergeClusters(c *gin.Context, firestoreClient *firestore.Client) {
	var body struct {
		ClusterID1 string `json:"clusterId1" binding:"required"`
		ClusterID2 string `json:"clusterId2" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	stored, err := db.GetClusters(ctx, firestoreClient)
	if err != nil {
		logger.Error().Err(err).Msg("failed to load clusters for merge")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load clusters"})
		return
	}

	var c1, c2 *types.Cluster
	for i := range stored {
		switch stored[i].ClusterID {
		case body.ClusterID1:
			c1 = &stored[i]
		case body.ClusterID2:
			c2 = &stored[i]
		}
	}
	if c1 == nil || c2 == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "One or both clusters not found"})
		return
	}

	merged := detection.MergeClusters(*c1, *c2)

	if err := db.SaveClusters(ctx, firestoreClient, []types.Cluster{merged}); err != nil {
		logger.Error().Err(err).Msg("failed to save merged cluster")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save merged cluster"})
		return
	}
	for _, old := range []*types.Cluster{c1, c2} {
		if old.ClusterID != merged.ClusterID {
			if err := db.DeleteCluster(ctx, firestoreClient, old.ClusterID); err != nil {
				logger.Warn().Err(err).Str("clusterId", old.ClusterID).Msg("failed to delete superseded cluster")
			}
		}
	}

	c.JSON(http.StatusOK, gin.H{"cluster": merged})
}

// ListClusters returns every stored cluster.
func ListClusters(c *gin.Context, firestoreClient *firestore.Client) {
	clusters, err := db.GetClusters(c.Request.Context(), firestoreClient)
	if err != nil {
		logger.Error().Err(err).Msg("failed to list clusters")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load clusters"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"clusters": clusters, "count": len(clusters)})
}
