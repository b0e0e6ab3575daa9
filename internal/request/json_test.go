package request

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

func decode(body string, strict bool) (payload, error) {
	var dst payload
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	w := httptest.NewRecorder()
	if strict {
		return dst, DecodeJSONStrict(w, r, &dst)
	}
	return dst, DecodeJSON(w, r, &dst)
}

func TestDecodeJSON(t *testing.T) {
	dst, err := decode(`{"amount": 12.5, "currency": "USD"}`, false)
	require.NoError(t, err)
	assert.Equal(t, payload{Amount: 12.5, Currency: "USD"}, dst)

	_, err = decode(`{"amount": 1, "extra": true}`, false)
	assert.NoError(t, err)
}

func TestDecodeJSONSyntaxError(t *testing.T) {
	_, err := decode(`{"amount": }`, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "body contains badly-formed JSON (at character")
}

func TestDecodeJSONErrors(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		strict bool
		want   string
	}{
		{"empty", ``, false, "body must not be empty"},
		{"truncated", `{"amount": 1`, false, "body contains badly-formed JSON"},
		{"wrong type", `{"amount": "ten"}`, false, `body contains incorrect JSON type for field "amount"`},
		{"two values", `{} {}`, false, "body must only contain a single JSON value"},
		{"unknown key strict", `{"extra": 1}`, true, `body contains unknown key "extra"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := decode(tt.body, tt.strict)
			assert.EqualError(t, err, tt.want)
		})
	}
}
