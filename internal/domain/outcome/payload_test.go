package outcome

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecodePayload(t *testing.T) {
	var raw map[string]any
	require.NoError(t, json.Unmarshal([]byte(
		`{"submission_id":"s1","history_id":1234567890123,"fee":5,"idempotency_key":"submission-fee:s1"}`,
	), &raw))

	payload, err := DecodePayload(raw)
	require.NoError(t, err)
	require.Equal(t, "s1", payload.SubmissionID)
	require.Equal(t, int64(1234567890123), payload.HistoryID)
	require.Equal(t, int64(5), payload.Fee)
	require.Contains(t, payload.Hint(), "submission s1 is missing")
}

func TestPayload_Hint(t *testing.T) {
	require.Contains(t, Payload{EngagementID: "e1", Points: 3}.Hint(), "engagement e1")
	require.Contains(t, Payload{AchievementID: "a1", Points: 5}.Hint(), "achievement a1")
	require.Contains(t, Payload{}.Hint(), "inspect")
}
