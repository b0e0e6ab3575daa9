package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/cradoe/peoplepay/internal/errHandler"
	"github.com/cradoe/peoplepay/internal/response"
	"github.com/cradoe/peoplepay/internal/version"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type healthCheckHandler struct {
	err      *errHandler.ErrorRepository
	checks   map[string]Pinger
	timeout  time.Duration
	revision string
}

func NewHealthCheckHandler(err *errHandler.ErrorRepository, checks map[string]Pinger) *healthCheckHandler {
	return &healthCheckHandler{
		err:      err,
		checks:   checks,
		timeout:  2 * time.Second,
		revision: version.Get(),
	}
}

func (h *healthCheckHandler) HandleHealthCheck(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	dependencies := map[string]string{}
	healthy := true

	for name, check := range h.checks {
		if err := check.Ping(ctx); err != nil {
			dependencies[name] = "unavailable"
			healthy = false
			continue
		}
		dependencies[name] = "ok"
	}

	data := map[string]any{
		"Version":      h.revision,
		"Dependencies": dependencies,
	}

	message := "Up and grateful"
	if !healthy {
		message = "Running with degraded dependencies"
	}

	err := response.JSONOkResponse(w, data, message, nil)
	if err != nil {
		h.err.ServerError(w, r, err)
	}
}
