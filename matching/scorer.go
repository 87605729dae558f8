// Package matching pairs resource requests with aid offers. Matches are
// advisory and require human approval; the scorer never mutates request or
// offer state.
package matching

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"go-lifeline/geoutil"
	"go-lifeline/logger"
	"go-lifeline/types"
)

const (
	baseScore          = 50.0
	maxSufficiencyBump = 20.0
	minMatchScore      = 40.0
	maxMatches         = 5

	closeRadiusKm = 5.0
	nearRadiusKm  = 20.0
	farRadiusKm   = 50.0

	closeBonus = 30.0
	nearBonus  = 20.0
	farBonus   = 10.0
	// flat bonus when there is no geo signal or the pair is distant, so a
	// type-matched offer is never fully disqualified on geography alone
	flatBonus = 10.0
)

var urgencyBonus = map[types.Urgency]float64{
	types.UrgencyCritical: 15,
	types.UrgencyHigh:     10,
	types.UrgencyMedium:   5,
	types.UrgencyLow:      0,
}

// Scorer ranks request/offer pairings. The strategy is optional; when nil,
// or whenever a strategy call fails or times out, the deterministic
// heuristic is used instead. Scorer holds no mutable state and is safe for
// concurrent use.
type Scorer struct {
	strategy Strategy
	timeout  time.Duration
}

// NewScorer builds a Scorer. strategy may be nil; timeout bounds every
// strategy call and defaults to 10 seconds when unset.
func NewScorer(strategy Strategy, timeout time.Duration) *Scorer {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Scorer{strategy: strategy, timeout: timeout}
}

// ScoreRequestAgainstOffers ranks type-matching offers for a request and
// returns at most five matches scoring 40 or better, best first.
func (s *Scorer) ScoreRequestAgainstOffers(ctx context.Context, request types.ResourceRequest, offers []types.AidOffer) []types.Match {
	candidates := filterByType(request.ResourceType, offers)
	if len(candidates) == 0 {
		return nil
	}

	matches := s.strategyMatches(ctx, request, candidates)
	if matches == nil {
		matches = make([]types.Match, 0, len(candidates))
		for _, offer := range candidates {
			matches = append(matches, fallbackMatch(request, offer, 0))
		}
	}

	return rank(matches)
}

// ScoreOfferAgainstRequests ranks pending requests for a new offer. On top
// of the base sufficiency/proximity heuristic it weights each request's
// urgency, so offer-initiated matching favors the most urgent unmet need.
func (s *Scorer) ScoreOfferAgainstRequests(ctx context.Context, offer types.AidOffer, requests []types.ResourceRequest) []types.Match {
	matches := make([]types.Match, 0, len(requests))
	for _, request := range requests {
		if !strings.EqualFold(request.ResourceType, offer.ResourceType) {
			continue
		}
		matches = append(matches, fallbackMatch(request, offer, urgencyBonus[request.Urgency]))
	}

	return rank(matches)
}

// strategyMatches runs the external strategy under the scorer's timeout.
// A nil return means "use the fallback": absence, error and timeout are
// all converted into degraded mode here, never surfaced to the caller.
func (s *Scorer) strategyMatches(ctx context.Context, request types.ResourceRequest, candidates []types.AidOffer) []types.Match {
	if s.strategy == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	scores, err := s.strategy.Score(ctx, request, candidates)
	if err != nil {
		logger.Warn().Err(err).Str("requestId", request.ID).
			Msg("external scoring strategy failed, using deterministic fallback")
		return nil
	}
	if len(scores) == 0 {
		logger.Warn().Str("requestId", request.ID).
			Msg("external scoring strategy returned no candidates, using deterministic fallback")
		return nil
	}

	byID := make(map[string]types.AidOffer, len(candidates))
	for _, offer := range candidates {
		byID[offer.ID] = offer
	}

	var matches []types.Match
	for _, sc := range scores {
		offer, ok := byID[sc.OfferID]
		if !ok {
			continue
		}
		match := types.Match{
			RequestID: request.ID,
			OfferID:   offer.ID,
			Score:     clampScore(sc.Score),
			Reasoning: sc.Reasoning,
		}
		if request.HasCoordinates() && offer.HasCoordinates() {
			dist := geoutil.DistanceKm(*request.Lat, *request.Long, *offer.Lat, *offer.Long)
			match.DistanceKm = &dist
		}
		matches = append(matches, match)
	}
	if len(matches) == 0 {
		return nil
	}
	return matches
}

// fallbackMatch is the deterministic heuristic: a base of 50 for the type
// match, up to 20 for quantity sufficiency, and a proximity bonus.
func fallbackMatch(request types.ResourceRequest, offer types.AidOffer, extraBonus float64) types.Match {
	score := baseScore

	sufficiency := 0.0
	if request.Quantity > 0 {
		ratio := float64(offer.Quantity) / float64(request.Quantity)
		sufficiency = math.Min(maxSufficiencyBump, math.Floor(maxSufficiencyBump*ratio))
	}
	score += sufficiency

	var distKm *float64
	proximity := flatBonus
	var distancePhrase string
	if request.HasCoordinates() && offer.HasCoordinates() {
		dist := geoutil.DistanceKm(*request.Lat, *request.Long, *offer.Lat, *offer.Long)
		distKm = &dist
		distancePhrase = fmt.Sprintf("%.1f km away", dist)
		switch {
		case dist < closeRadiusKm:
			proximity = closeBonus
		case dist < nearRadiusKm:
			proximity = nearBonus
		case dist < farRadiusKm:
			proximity = farBonus
		default:
			proximity = flatBonus
		}
	} else {
		distancePhrase = "distance unknown"
	}
	score += proximity + extraBonus

	coverage := "quantity requested is zero"
	if request.Quantity > 0 {
		coverage = fmt.Sprintf("offer covers %.0f%% of the requested quantity",
			math.Min(100, 100*float64(offer.Quantity)/float64(request.Quantity)))
	}

	reasoning := fmt.Sprintf("Resource type %q matches; %s; %s", offer.ResourceType, distancePhrase, coverage)
	if extraBonus > 0 {
		reasoning += fmt.Sprintf("; %s urgency prioritized", request.Urgency)
	}

	return types.Match{
		RequestID:  request.ID,
		OfferID:    offer.ID,
		Score:      clampScore(score),
		DistanceKm: distKm,
		Reasoning:  reasoning,
	}
}

func filterByType(resourceType string, offers []types.AidOffer) []types.AidOffer {
	var out []types.AidOffer
	for _, offer := range offers {
		if strings.EqualFold(offer.ResourceType, resourceType) {
			out = append(out, offer)
		}
	}
	return out
}

// rank clamps, filters below the acceptance floor, sorts best-first with a
// deterministic id tie-break, and keeps the top five.
func rank(matches []types.Match) []types.Match {
	kept := matches[:0]
	for _, m := range matches {
		m.Score = clampScore(m.Score)
		if m.Score >= minMatchScore {
			kept = append(kept, m)
		}
	}

	sort.Slice(kept, func(i, j int) bool {
		if kept[i].Score != kept[j].Score {
			return kept[i].Score > kept[j].Score
		}
		if kept[i].OfferID != kept[j].OfferID {
			return kept[i].OfferID < kept[j].OfferID
		}
		return kept[i].RequestID < kept[j].RequestID
	})

	if len(kept) > maxMatches {
		kept = kept[:maxMatches]
	}
	if len(kept) == 0 {
		return nil
	}
	return kept
}

func clampScore(s float64) float64 {
	if s < 0 {
		return 0
	}
	if s > 100 {
		return 100
	}
	return s
}
