package aiscorer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseScores(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantLen int
		wantErr bool
	}{
		{
			name:    "plain array",
			content: `[{"offerId": "o1", "score": 88, "reasoning": "close and sufficient"}]`,
			wantLen: 1,
		},
		{
			name: "fenced json",
			content: "```json\n[{\"offerId\": \"o1\", \"score\": 70, \"reasoning\": \"ok\"}," +
				"{\"offerId\": \"o2\", \"score\": 45, \"reasoning\": \"far\"}]\n```",
			wantLen: 2,
		},
		{
			name:    "prose instead of json",
			content: "I think offer o1 is the best match.",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scores, err := parseScores(tt.content)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Len(t, scores, tt.wantLen)
		})
	}
}
