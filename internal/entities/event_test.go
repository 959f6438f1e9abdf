package entities

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEventType(t *testing.T) {
	assert.Equal(t, EventEntry, ParseEventType("ENTRY"))
	assert.Equal(t, EventParked, ParseEventType("PARKED"))
	assert.Equal(t, EventExit, ParseEventType("EXIT"))
	assert.Equal(t, EventUnknown, ParseEventType("entry"))
	assert.Equal(t, EventUnknown, ParseEventType(""))
	assert.Equal(t, EventUnknown, ParseEventType("TELEPORTED"))
}

func TestWebhookEventDecoding(t *testing.T) {
	payload := `{"license_plate":"ZUL0001","lat":-23.561684,"lng":-46.655981,"event_type":"PARKED"}`

	var event WebhookEvent
	require.NoError(t, json.Unmarshal([]byte(payload), &event))

	assert.Equal(t, "ZUL0001", event.LicensePlate)
	assert.Equal(t, EventParked, event.Type())
	require.NotNil(t, event.Lat)
	assert.InDelta(t, -23.561684, *event.Lat, 1e-9)
	assert.Empty(t, event.EntryTime)
}
