package main

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"go-lifeline/aiscorer"
	"go-lifeline/cronjobs"
	"go-lifeline/db"
	"go-lifeline/detection"
	"go-lifeline/logger"
	"go-lifeline/matching"
	"go-lifeline/mlscorer"
	"go-lifeline/routes"
	"go-lifeline/similarity"
)

// similarityConfig starts from the defaults and applies any threshold
// overrides from the environment. The thresholds are operational tuning
// knobs, so deployments can adjust them without a rebuild.
func similarityConfig() similarity.Config {
	cfg := similarity.DefaultConfig
	if v, err := strconv.ParseFloat(os.Getenv("SIMILAR_THRESHOLD"), 64); err == nil {
		cfg.SimilarThreshold = v
	}
	if v, err := strconv.ParseFloat(os.Getenv("DUPLICATE_THRESHOLD"), 64); err == nil {
		cfg.DuplicateThreshold = v
	}
	if v, err := strconv.Atoi(os.Getenv("MIN_REASONS")); err == nil && v > 0 {
		cfg.MinReasons = v
	}
	return cfg
}

// matchStrategy picks the external scoring strategy from the environment:
// a hosted model endpoint wins over the OpenAI assistant, and neither being
// configured just means the deterministic fallback handles everything.
func matchStrategy() matching.Strategy {
	if url := os.Getenv("MATCH_MODEL_URL"); url != "" {
		logger.Info().Str("url", url).Msg("using hosted model match scorer")
		return mlscorer.New(url)
	}
	if apiKey := os.Getenv("OPENAI_API_KEY"); apiKey != "" {
		logger.Info().Msg("using OpenAI match scorer")
		return aiscorer.New(apiKey)
	}
	logger.Info().Msg("no external match scorer configured, using deterministic scoring only")
	return nil
}

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		logger.Warn().Msg("no .env file found, relying on environment")
	}
	logger.Init()

	// Init firestore
	firestoreClient, err := db.InitFirestore()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize Firestore")
	}
	defer db.CloseFirestore() // Firestore client is closed on exit

	detector := detection.NewDetector(similarityConfig())
	scorer := matching.NewScorer(matchStrategy(), 10*time.Second)

	// Initialize cron jobs
	cronjobs.InitCronJobs(firestoreClient, detector)

	r := routes.SetupRouter(firestoreClient, detector, scorer)
	if err := r.Run(":8080"); err != nil {
		logger.Fatal().Err(err).Msg("failed to start server")
	}
}
