package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cradoe/peoplepay/internal/context"
	"github.com/cradoe/peoplepay/internal/errHandler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func newMiddleware(logger *slog.Logger, defaultLocale string) *Middleware {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return New(errHandler.New("", "", nil, logger), logger, defaultLocale)
}

func TestRecoverPanic(t *testing.T) {
	mid := newMiddleware(nil, "en")

	h := mid.RecoverPanic(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("unexpected nil profile")
	}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/v1/currencies", nil))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}

func TestLogAccess(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	mid := newMiddleware(logger, "en")

	h := mid.LogAccess(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
		_, _ = w.Write([]byte("queued"))
	}))

	r := httptest.NewRequest(http.MethodPost, "/v1/currencies/convert", nil)
	r.Header.Set("X-Forwarded-For", "203.0.113.7")
	h.ServeHTTP(httptest.NewRecorder(), r)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "access", entry["msg"])
	assert.Equal(t, map[string]any{"ip": "203.0.113.7"}, entry["user"])
	assert.Equal(t, map[string]any{"status": float64(http.StatusAccepted), "size": float64(6)}, entry["response"])
	assert.Equal(t, "POST", entry["request"].(map[string]any)["method"])
}

func TestDetectLocale(t *testing.T) {
	tests := []struct {
		name          string
		header        string
		defaultLocale string
		want          language.Tag
	}{
		{"no header uses default", "", "en-GB", language.BritishEnglish},
		{"exact match", "en-IN", "en", language.MustParse("en-IN")},
		{"quality ordering", "fr;q=0.4, en-PH;q=0.9", "en", language.MustParse("en-PH")},
		{"unsupported uses default", "ja-JP", "en-GB", language.BritishEnglish},
		{"garbage uses default", ";;;", "en", language.English},
		{"bad default falls back to english", "", "not a locale", language.English},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mid := newMiddleware(nil, tt.defaultLocale)

			var got language.Tag
			h := mid.DetectLocale(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got = context.ContextGetLocale(r)
			}))

			r := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				r.Header.Set("Accept-Language", tt.header)
			}
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, r)

			assert.Equal(t, tt.want, got)
			assert.Equal(t, "Accept-Language", rr.Header().Get("Vary"))
		})
	}
}

func TestMatchLocale(t *testing.T) {
	tests := []struct {
		tag  string
		want language.Tag
		ok   bool
	}{
		{"de", language.German, true},
		{"fr-FR", language.French, true},
		{"en-IN", language.MustParse("en-IN"), true},
		{"es", language.Und, false},
		{"ja", language.Und, false},
	}

	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			got, ok := MatchLocale(language.MustParse(tt.tag))
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
