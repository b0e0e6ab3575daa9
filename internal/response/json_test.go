package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONOkResponseSnakeCasesMapKeys(t *testing.T) {
	rr := httptest.NewRecorder()

	err := JSONOkResponse(rr, map[string]any{"ReverseRate": "0.011976", "Nested": map[string]any{"FromCurrency": "USD"}}, "", nil)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var body map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "Request successful", body["message"])
	assert.Equal(t, true, body["success"])
	assert.Equal(t, map[string]any{
		"reverse_rate": "0.011976",
		"nested":       map[string]any{"from_currency": "USD"},
	}, body["data"])
}

func TestJSONErrorResponseDefaults(t *testing.T) {
	rr := httptest.NewRecorder()

	headers := http.Header{"X-Request-Id": []string{"abc"}}
	require.NoError(t, JSONErrorResponse(rr, nil, "", 0, headers))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, "abc", rr.Header().Get("X-Request-Id"))

	var body map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "Request failed", body["message"])
	assert.Equal(t, false, body["success"])
}

func TestMetricsResponseWriter(t *testing.T) {
	rr := httptest.NewRecorder()
	mw := NewMetricsResponseWriter(rr)

	mw.WriteHeader(http.StatusCreated)
	mw.WriteHeader(http.StatusTeapot)
	n, err := mw.Write([]byte("hello"))
	require.NoError(t, err)

	assert.Equal(t, 5, n)
	assert.Equal(t, http.StatusCreated, mw.StatusCode)
	assert.Equal(t, 5, mw.BytesCount)
	assert.Same(t, rr, mw.Unwrap())
}

func TestMetricsResponseWriterDefaultsToOK(t *testing.T) {
	mw := NewMetricsResponseWriter(httptest.NewRecorder())
	_, _ = mw.Write([]byte("{}"))
	assert.Equal(t, http.StatusOK, mw.StatusCode)
}

func TestJSONAcceptedResponseOmitsData(t *testing.T) {
	rr := httptest.NewRecorder()

	require.NoError(t, JSONAcceptedResponse(rr, nil, "Queued"))

	assert.Equal(t, http.StatusAccepted, rr.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "Queued", body["message"])
	assert.NotContains(t, body, "data")
}
