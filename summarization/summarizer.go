package summarization

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"cloud.google.com/go/firestore"
	"github.com/sashabaranov/go-openai"

	"go-lifeline/db"
	"go-lifeline/logger"
	"go-lifeline/types"
)

const maxReportsForSummary = 25
const maxPromptLength = 15000 // Rough character limit for prompt

// GenerateSummaries fetches member reports for each cluster and asks
// OpenAI for a concise situation summary. It modifies the input slice
// directly; clusters whose summary fails are skipped, never fatal.
func GenerateSummaries(
	ctx context.Context,
	clusters []types.Cluster,
	firestoreClient *firestore.Client,
	openaiClient *openai.Client,
) error {
	logger.Info().Int("clusters", len(clusters)).Msg("starting cluster summary generation")

	var wg sync.WaitGroup

	for i := range clusters {
		wg.Add(1)
		go func(clusterIndex int) {
			defer wg.Done()
			cluster := &clusters[clusterIndex]

			combinedText, err := fetchReportsForCluster(ctx, cluster, firestoreClient)
			if err != nil {
				logger.Warn().Err(err).Str("clusterId", cluster.ClusterID).
					Msg("failed to fetch member reports, skipping summary")
				return
			}
			if combinedText == "" {
				logger.Debug().Str("clusterId", cluster.ClusterID).
					Msg("no report text available, skipping summary")
				return
			}

			summary, err := callOpenAISummary(ctx, combinedText, openaiClient)
			if err != nil {
				logger.Warn().Err(err).Str("clusterId", cluster.ClusterID).
					Msg("summary request failed, skipping")
				return
			}

			cluster.Summary = summary
		}(i)
	}

	wg.Wait()

	logger.Info().Msg("cluster summary generation finished")
	return nil
}

// fetchReportsForCluster combines the titles and descriptions of a
// cluster's member reports into one prompt body.
func fetchReportsForCluster(
	ctx context.Context,
	cluster *types.Cluster,
	firestoreClient *firestore.Client,
) (string, error) {
	var parts []string

	for _, reportID := range cluster.MemberIDs {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		default:
		}

		if len(parts) >= maxReportsForSummary {
			break
		}

		report, err := db.GetReport(ctx, firestoreClient, reportID)
		if err != nil {
			logger.Warn().Err(err).Str("reportId", reportID).
				Str("clusterId", cluster.ClusterID).Msg("failed to get member report")
			continue
		}

		text := report.Title
		if report.Description != "" {
			text += ": " + report.Description
		}
		if report.Location != "" {
			text += " (" + report.Location + ")"
		}
		parts = append(parts, text)
	}

	if len(parts) == 0 {
		return "", nil
	}

	combined := strings.Join(parts, "\n---\n")
	if len(combined) > maxPromptLength {
		combined = combined[:maxPromptLength]
	}

	return combined, nil
}

// callOpenAISummary sends the combined report text to OpenAI and requests
// a summary.
func callOpenAISummary(ctx context.Context, reportText string, client *openai.Client) (string, error) {
	prompt := fmt.Sprintf("Summarize the following collection of incident reports describing one disaster event. Focus on the key impacts, locations mentioned, and overall situation described. Provide a concise summary (2-3 sentences maximum):\n\n---\n%s\n---\n\nSummary:", reportText)

	resp, err := client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: openai.GPT4oMini,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleSystem,
					Content: "You are an assistant that summarizes disaster incident reports concisely.",
				},
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			MaxTokens:   150,
			N:           1,
			Temperature: 0.5, // Lower temperature for more focused summary
		},
	)
	if err != nil {
		return "", fmt.Errorf("openai chat completion error: %w", err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("openai returned empty response or choices")
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
