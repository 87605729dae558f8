// Package mlscorer implements the external match-scoring strategy against
// a hosted scoring model over plain HTTP. Configure the endpoint with
// MATCH_MODEL_URL; like the AI scorer, the matching engine treats any
// failure here as a signal to use its deterministic fallback.
package mlscorer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"go-lifeline/matching"
	"go-lifeline/types"
)

type Scorer struct {
	url    string
	client *http.Client
}

func New(url string) *Scorer {
	return &Scorer{url: url, client: http.DefaultClient}
}

type scoreRequest struct {
	Request types.ResourceRequest `json:"request"`
	Offers  []types.AidOffer      `json:"offers"`
}

type scoreResponse struct {
	Scores []matching.StrategyScore `json:"scores"`
}

func (s *Scorer) Score(ctx context.Context, request types.ResourceRequest, offers []types.AidOffer) ([]matching.StrategyScore, error) {
	payloadBytes, err := json.Marshal(scoreRequest{Request: request, Offers: offers})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewBuffer(payloadBytes))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.New("scoring model returned status: " + resp.Status)
	}

	var out scoreResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}

	return out.Scores, nil
}
