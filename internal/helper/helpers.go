package helper

import (
	"fmt"
	"net/http"
	"sync"
)

type ErrorReporter interface {
	ReportServerError(r *http.Request, err error)
}

type HelperRepository struct {
	WG       *sync.WaitGroup
	reporter ErrorReporter
}

func New(wg *sync.WaitGroup, reporter ErrorReporter) *HelperRepository {
	return &HelperRepository{
		WG:       wg,
		reporter: reporter,
	}
}

// BackgroundTask runs fn on its own goroutine, tracked by WG so shutdown can
// wait for it. Errors and panics are reported, not propagated.
func (h *HelperRepository) BackgroundTask(r *http.Request, fn func() error) {
	h.WG.Add(1)

	go func() {
		defer h.WG.Done()

		defer func() {
			err := recover()
			if err != nil {
				h.reporter.ReportServerError(r, fmt.Errorf("%s", err))
			}
		}()

		err := fn()
		if err != nil {
			h.reporter.ReportServerError(r, err)
		}
	}()
}
