package domain

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNearbyDoneEvent_Failed(t *testing.T) {
	assert.False(t, (&NearbyDoneEvent{RequestID: uuid.New()}).Failed())
	assert.True(t, (&NearbyDoneEvent{RequestID: uuid.New(), Error: "boom"}).Failed())
}

func TestNearbyRequestEvent_JSON(t *testing.T) {
	id := uuid.MustParse("5b3c1c2e-9f7a-4a43-8d2b-0b5c3f1e9d11")
	data := `{"request_id":"5b3c1c2e-9f7a-4a43-8d2b-0b5c3f1e9d11","category":"museums","lng":-0.1276,"lat":51.5072}`

	var event NearbyRequestEvent
	require.NoError(t, json.Unmarshal([]byte(data), &event))

	assert.Equal(t, id, event.RequestID)
	assert.Equal(t, "museums", event.Category)
	assert.InDelta(t, -0.1276, event.Lng, 1e-9)
	assert.InDelta(t, 51.5072, event.Lat, 1e-9)
}

func TestNearbyDoneEvent_JSON(t *testing.T) {
	id := uuid.MustParse("5b3c1c2e-9f7a-4a43-8d2b-0b5c3f1e9d11")

	t.Run("empty grouping keeps result", func(t *testing.T) {
		data, err := json.Marshal(NearbyDoneEvent{RequestID: id, Category: "museums", Result: GroupedResult{}})
		require.NoError(t, err)
		assert.Contains(t, string(data), `"result":{}`)
		assert.NotContains(t, string(data), `"error"`)
	})

	t.Run("failure has null result and error", func(t *testing.T) {
		data, err := json.Marshal(NearbyDoneEvent{RequestID: id, Category: "museums", Error: "provider unavailable"})
		require.NoError(t, err)
		assert.Contains(t, string(data), `"result":null`)
		assert.Contains(t, string(data), `"error":"provider unavailable"`)
	})
}
