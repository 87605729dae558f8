package routes

import (
	"cloud.google.com/go/firestore"
	"github.com/gin-gonic/gin"

	"go-lifeline/detection"
	"go-lifeline/handlers"
	"go-lifeline/matching"
)

func SetupRouter(firestoreClient *firestore.Client, detector *detection.Detector, scorer *matching.Scorer) *gin.Engine {
	r := gin.Default()

	r.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "Hello, welcome to Lifeline!",
		})
	})

	// api routes
	api := r.Group("/api/lifeline")
	{
		api.POST("/reports", func(c *gin.Context) {
			handlers.SubmitReport(c, firestoreClient, detector)
		})
		api.GET("/reports/:id/similar", func(c *gin.Context) {
			handlers.GetSimilarReports(c, firestoreClient, detector)
		})
		api.GET("/export/reports", func(c *gin.Context) {
			handlers.ExportReports(c, firestoreClient)
		})

		api.POST("/clusters/run", func(c *gin.Context) {
			handlers.RunClustering(c, firestoreClient, detector)
		})
		api.GET("/clusters", func(c *gin.Context) {
			handlers.ListClusters(c, firestoreClient)
		})
		api.POST("/clusters/merge", func(c *gin.Context) {
			handlers.MergeClusters(c, firestoreClient)
		})

		api.POST("/requests", func(c *gin.Context) {
			handlers.SubmitResourceRequest(c, firestoreClient, scorer)
		})
		api.GET("/requests/:id/matches", func(c *gin.Context) {
			handlers.MatchRequest(c, firestoreClient, scorer)
		})
		api.POST("/offers", func(c *gin.Context) {
			handlers.SubmitAidOffer(c, firestoreClient, scorer)
		})
		api.GET("/offers/:id/matches", func(c *gin.Context) {
			handlers.MatchOffer(c, firestoreClient, scorer)
		})
	}

	return r
}
