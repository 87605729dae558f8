// Package aiscorer implements the external match-scoring strategy with an
// OpenAI assistant. It is strictly optional: the matching engine falls
// back to its deterministic heuristic whenever this scorer errors or times
// out.
package aiscorer

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"

	"go-lifeline/matching"
	"go-lifeline/types"
)

const systemPrompt = "You are an assistant that scores how well aid offers satisfy a disaster-relief resource request. " +
	"Score each offer from 0 to 100 considering quantity sufficiency, distance, and practicality. " +
	"Respond with a JSON array only, one entry per offer: " +
	`[{"offerId": "...", "score": 0, "reasoning": "..."}]`

type Scorer struct {
	client *openai.Client
	model  string
}

func New(apiKey string) *Scorer {
	return &Scorer{
		client: openai.NewClient(apiKey),
		model:  openai.GPT4oMini,
	}
}

// Score asks the assistant to rank the candidate offers for the request.
// The returned scores are raw; clamping and filtering happen in the
// matching engine.
func (s *Scorer) Score(ctx context.Context, request types.ResourceRequest, offers []types.AidOffer) ([]matching.StrategyScore, error) {
	payload := struct {
		Request types.ResourceRequest `json:"request"`
		Offers  []types.AidOffer      `json:"offers"`
	}{request, offers}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode scoring context: %w", err)
	}

	resp, err := s.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: s.model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleSystem,
					Content: systemPrompt,
				},
				{
					Role:    openai.ChatMessageRoleUser,
					Content: "Score the following offers for this request:\n\n" + string(body),
				},
			},
			MaxTokens:   600,
			Temperature: 0.2,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("openai chat completion error: %w", err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return nil, fmt.Errorf("openai returned empty response or choices")
	}

	return parseScores(resp.Choices[0].Message.Content)
}

// parseScores decodes the assistant's JSON array, tolerating markdown code
// fences around it.
func parseScores(content string) ([]matching.StrategyScore, error) {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	content = strings.TrimSpace(content)

	var scores []matching.StrategyScore
	if err := json.Unmarshal([]byte(content), &scores); err != nil {
		return nil, fmt.Errorf("failed to parse assistant scores: %w", err)
	}
	return scores, nil
}
