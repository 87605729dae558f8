package cronjobs

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/robfig/cron/v3"

	"go-lifeline/db"
	"go-lifeline/detection"
	"go-lifeline/logger"
	"go-lifeline/processor"
)

// InitCronJobs schedules the periodic clustering sweep over the recent
// report pool. The sweep is idempotent: clustering is deterministic and
// cluster documents are keyed by primary report id.
func InitCronJobs(firestoreClient *firestore.Client, detector *detection.Detector) *cron.Cron {
	logger.Info().Msg("starting cron jobs")
	c := cron.New()

	// Clustering sweep: every 30 minutes
	_, err := c.AddFunc("*/30 * * * *", func() {
		runClusteringSweep(firestoreClient, detector)
	})
	if err != nil {
		logger.Error().Err(err).Msg("error scheduling clustering sweep")
	}

	c.Start()
	return c
}

func runClusteringSweep(firestoreClient *firestore.Client, detector *detection.Detector) {
	logger.Info().Msg("cronjob: clustering sweep running")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	pool, err := db.GetRecentReports(ctx, firestoreClient, processor.PoolLimit)
	if err != nil {
		logger.Error().Err(err).Msg("clustering sweep: failed to fetch report pool")
		return
	}
	// reports older than three days carry no clustering signal anymore
	pool = detection.PoolWindow(pool, 72*time.Hour)
	if len(pool) == 0 {
		logger.Debug().Msg("clustering sweep: no reports in pool")
		return
	}

	clusters := detector.ClusterReports(pool)
	if len(clusters) == 0 {
		logger.Info().Int("pooled", len(pool)).Msg("clustering sweep: no clusters identified")
		return
	}

	if err := db.SaveClusters(ctx, firestoreClient, clusters); err != nil {
		logger.Error().Err(err).Msg("clustering sweep: failed to save clusters")
		return
	}

	logger.Info().
		Int("pooled", len(pool)).
		Int("clusters", len(clusters)).
		Msg("clustering sweep complete")
}
