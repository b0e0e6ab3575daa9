package stream

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type ratePayload struct {
	From string  `json:"from"`
	To   string  `json:"to"`
	Rate float64 `json:"rate"`
}

func TestEventEnvelope(t *testing.T) {
	event, err := NewEvent("exchange_rate.updated", "USD-INR", ratePayload{From: "USD", To: "INR", Rate: 83.5})
	require.NoError(t, err)

	_, err = uuid.Parse(event.ID)
	require.NoError(t, err)
	assert.False(t, event.OccurredAt.IsZero())

	data, err := event.Encode()
	require.NoError(t, err)

	decoded, err := DecodeEvent(data)
	require.NoError(t, err)
	assert.Equal(t, event.ID, decoded.ID)
	assert.Equal(t, "exchange_rate.updated", decoded.Type)
	assert.Equal(t, "USD-INR", decoded.Subject)

	var payload ratePayload
	require.NoError(t, decoded.DecodePayload(&payload))
	assert.Equal(t, ratePayload{From: "USD", To: "INR", Rate: 83.5}, payload)
}

func TestNewEventIDsAreUnique(t *testing.T) {
	a, err := NewEvent("profile.updated", "u-1", map[string]string{})
	require.NoError(t, err)
	b, err := NewEvent("profile.updated", "u-1", map[string]string{})
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestDecodeEventErrors(t *testing.T) {
	_, err := DecodeEvent([]byte("not json"))
	assert.Error(t, err)

	_, err = DecodeEvent([]byte(`{"id":"x"}`))
	assert.EqualError(t, err, "decode event: missing type")

	e := &Event{Type: "profile.updated", Payload: []byte(`[1,2]`)}
	var dst struct{ Name string }
	assert.Error(t, e.DecodePayload(&dst))
}
