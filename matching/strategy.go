package matching

import (
	"context"

	"go-lifeline/types"
)

// StrategyScore is one scored candidate returned by an external scoring
// strategy. Scores are clamped to [0,100] by the engine regardless of what
// the strategy returns.
type StrategyScore struct {
	OfferID   string  `json:"offerId"`
	Score     float64 `json:"score"`
	Reasoning string  `json:"reasoning"`
}

// Strategy is an optional external scorer for request/offer candidates.
// Implementations may call out to an AI assistant or a hosted model; the
// engine bounds every call with a timeout and falls back to its
// deterministic heuristic on any error, so matching never depends on the
// strategy being available.
type Strategy interface {
	Score(ctx context.Context, request types.ResourceRequest, offers []types.AidOffer) ([]StrategyScore, error)
}
