package matching

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-lifeline/types"
)

func ptr(f float64) *float64 { return &f }

func waterRequest() types.ResourceRequest {
	return types.ResourceRequest{
		ID:           "req-1",
		ResourceType: "water",
		Quantity:     100,
		Urgency:      types.UrgencyHigh,
		Lat:          ptr(10.00),
		Long:         ptr(10.00),
		Status:       types.RequestOpen,
	}
}

func waterOffer(id string, quantity int, lat, long float64) types.AidOffer {
	return types.AidOffer{
		ID:           id,
		ResourceType: "water",
		Quantity:     quantity,
		Lat:          ptr(lat),
		Long:         ptr(long),
		Status:       types.OfferAvailable,
	}
}

type stubStrategy struct {
	scores []StrategyScore
	err    error
	called bool
}

func (s *stubStrategy) Score(_ context.Context, _ types.ResourceRequest, _ []types.AidOffer) ([]StrategyScore, error) {
	s.called = true
	return s.scores, s.err
}

type hangingStrategy struct{}

func (hangingStrategy) Score(ctx context.Context, _ types.ResourceRequest, _ []types.AidOffer) ([]StrategyScore, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func TestFallbackFullSufficiencyCloseProximity(t *testing.T) {
	// 150/100 quantity at ~4.7 km: 50 + 20 + 30 = 100
	s := NewScorer(nil, 0)
	request := waterRequest()
	offer := waterOffer("offer-1", 150, 10.03, 10.03)

	matches := s.ScoreRequestAgainstOffers(context.Background(), request, []types.AidOffer{offer})

	require.Len(t, matches, 1)
	m := matches[0]
	assert.Equal(t, 100.0, m.Score)
	assert.Equal(t, "req-1", m.RequestID)
	assert.Equal(t, "offer-1", m.OfferID)
	require.NotNil(t, m.DistanceKm)
	assert.InDelta(t, 4.7, *m.DistanceKm, 0.1)
	assert.Contains(t, m.Reasoning, "water")
	assert.Contains(t, m.Reasoning, "km")
	assert.Contains(t, m.Reasoning, "100%")
}

func TestFallbackPartialSufficiency(t *testing.T) {
	// 30/100 quantity gives floor(20*0.3)=6; same location gives +30
	s := NewScorer(nil, 0)
	matches := s.ScoreRequestAgainstOffers(context.Background(), waterRequest(),
		[]types.AidOffer{waterOffer("offer-1", 30, 10.00, 10.00)})

	require.Len(t, matches, 1)
	assert.Equal(t, 86.0, matches[0].Score)
}

func TestFallbackNoCoordinates(t *testing.T) {
	// flat proximity bonus keeps type-matched offers in play: 50+20+10
	s := NewScorer(nil, 0)
	offer := types.AidOffer{ID: "offer-1", ResourceType: "water", Quantity: 200}

	matches := s.ScoreRequestAgainstOffers(context.Background(), waterRequest(), []types.AidOffer{offer})

	require.Len(t, matches, 1)
	assert.Equal(t, 80.0, matches[0].Score)
	assert.Nil(t, matches[0].DistanceKm)
	assert.Contains(t, matches[0].Reasoning, "distance unknown")
}

func TestResourceTypeGating(t *testing.T) {
	s := NewScorer(nil, 0)
	offers := []types.AidOffer{
		waterOffer("water-offer", 100, 10.00, 10.00),
		{ID: "blanket-offer", ResourceType: "blankets", Quantity: 500, Lat: ptr(10.00), Long: ptr(10.00)},
	}

	matches := s.ScoreRequestAgainstOffers(context.Background(), waterRequest(), offers)

	require.Len(t, matches, 1)
	assert.Equal(t, "water-offer", matches[0].OfferID)
}

func TestTopFiveRanked(t *testing.T) {
	s := NewScorer(nil, 0)
	var offers []types.AidOffer
	// decreasing quantity, same spot: strictly decreasing scores
	offers = append(offers,
		waterOffer("o1", 100, 10.00, 10.00),
		waterOffer("o2", 90, 10.00, 10.00),
		waterOffer("o3", 80, 10.00, 10.00),
		waterOffer("o4", 70, 10.00, 10.00),
		waterOffer("o5", 60, 10.00, 10.00),
		waterOffer("o6", 50, 10.00, 10.00),
		waterOffer("o7", 40, 10.00, 10.00),
	)

	matches := s.ScoreRequestAgainstOffers(context.Background(), waterRequest(), offers)

	require.Len(t, matches, 5)
	for i := 1; i < len(matches); i++ {
		assert.GreaterOrEqual(t, matches[i-1].Score, matches[i].Score)
	}
	assert.Equal(t, "o1", matches[0].OfferID)
}

func TestScoreBounds(t *testing.T) {
	s := NewScorer(nil, 0)
	requests := []types.ResourceRequest{
		waterRequest(),
		{ID: "zero", ResourceType: "water", Quantity: 0},
		{ID: "tiny", ResourceType: "water", Quantity: 1, Urgency: types.UrgencyCritical},
	}
	offers := []types.AidOffer{
		waterOffer("big", 1000000, 10.00, 10.00),
		{ID: "bare", ResourceType: "water", Quantity: 0},
	}

	for _, req := range requests {
		for _, m := range s.ScoreRequestAgainstOffers(context.Background(), req, offers) {
			assert.GreaterOrEqual(t, m.Score, 0.0)
			assert.LessOrEqual(t, m.Score, 100.0)
		}
	}
	for _, offer := range offers {
		for _, m := range s.ScoreOfferAgainstRequests(context.Background(), offer, requests) {
			assert.GreaterOrEqual(t, m.Score, 0.0)
			assert.LessOrEqual(t, m.Score, 100.0)
		}
	}
}

func TestOfferAgainstRequestsUrgencyWeighting(t *testing.T) {
	s := NewScorer(nil, 0)
	// half sufficiency ~11 km out, so neither score hits the 100 clamp
	offer := waterOffer("offer-1", 50, 10.10, 10.00)

	critical := waterRequest()
	critical.ID = "critical"
	critical.Urgency = types.UrgencyCritical
	low := waterRequest()
	low.ID = "low"
	low.Urgency = types.UrgencyLow

	matches := s.ScoreOfferAgainstRequests(context.Background(), offer, []types.ResourceRequest{low, critical})

	require.Len(t, matches, 2)
	assert.Equal(t, "critical", matches[0].RequestID)
	assert.Equal(t, "low", matches[1].RequestID)
	assert.Equal(t, matches[1].Score+15, matches[0].Score)
	assert.Contains(t, matches[0].Reasoning, "critical urgency")
}

func TestStrategyResultsUsedWhenAvailable(t *testing.T) {
	strategy := &stubStrategy{scores: []StrategyScore{
		{OfferID: "offer-1", Score: 420, Reasoning: "assistant liked it"},
		{OfferID: "ghost", Score: 99, Reasoning: "not a real candidate"},
	}}
	s := NewScorer(strategy, time.Second)

	matches := s.ScoreRequestAgainstOffers(context.Background(), waterRequest(),
		[]types.AidOffer{waterOffer("offer-1", 150, 10.03, 10.03)})

	require.True(t, strategy.called)
	require.Len(t, matches, 1)
	assert.Equal(t, 100.0, matches[0].Score, "strategy scores are clamped to [0,100]")
	assert.Equal(t, "assistant liked it", matches[0].Reasoning)
	require.NotNil(t, matches[0].DistanceKm)
}

func TestStrategyErrorFallsBack(t *testing.T) {
	strategy := &stubStrategy{err: errors.New("assistant unavailable")}
	s := NewScorer(strategy, time.Second)

	matches := s.ScoreRequestAgainstOffers(context.Background(), waterRequest(),
		[]types.AidOffer{waterOffer("offer-1", 150, 10.03, 10.03)})

	require.True(t, strategy.called)
	require.Len(t, matches, 1)
	assert.Equal(t, 100.0, matches[0].Score, "deterministic fallback must produce the heuristic score")
}

func TestStrategyTimeoutFallsBack(t *testing.T) {
	s := NewScorer(hangingStrategy{}, 20*time.Millisecond)

	start := time.Now()
	matches := s.ScoreRequestAgainstOffers(context.Background(), waterRequest(),
		[]types.AidOffer{waterOffer("offer-1", 150, 10.03, 10.03)})

	assert.Less(t, time.Since(start), time.Second)
	require.Len(t, matches, 1)
	assert.Equal(t, 100.0, matches[0].Score)
}

func TestStrategyUnknownOfferIDsFallBack(t *testing.T) {
	strategy := &stubStrategy{scores: []StrategyScore{{OfferID: "ghost", Score: 90}}}
	s := NewScorer(strategy, time.Second)

	matches := s.ScoreRequestAgainstOffers(context.Background(), waterRequest(),
		[]types.AidOffer{waterOffer("offer-1", 150, 10.03, 10.03)})

	require.Len(t, matches, 1)
	assert.Equal(t, "offer-1", matches[0].OfferID)
}

func TestNoTypeMatches(t *testing.T) {
	s := NewScorer(nil, 0)
	offers := []types.AidOffer{{ID: "o1", ResourceType: "fuel", Quantity: 10}}

	assert.Nil(t, s.ScoreRequestAgainstOffers(context.Background(), waterRequest(), offers))
}
