package helper

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/cradoe/peoplepay/internal/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type recordingReporter struct {
	mu   sync.Mutex
	errs []error
}

func (r *recordingReporter) ReportServerError(_ *http.Request, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errs = append(r.errs, err)
}

func TestBackgroundTask(t *testing.T) {
	var wg sync.WaitGroup
	reporter := &recordingReporter{}
	h := New(&wg, reporter)

	ran := false
	h.BackgroundTask(nil, func() error {
		ran = true
		return nil
	})
	h.BackgroundTask(nil, func() error { return errors.New("send failed") })
	h.BackgroundTask(nil, func() error { panic("boom") })

	wg.Wait()

	assert.True(t, ran)
	assert.Len(t, reporter.errs, 2)
	assert.ElementsMatch(t, []string{"send failed", "boom"}, []string{reporter.errs[0].Error(), reporter.errs[1].Error()})
}

func TestBackgroundTaskReportsWithRequest(t *testing.T) {
	var wg sync.WaitGroup
	reporter := new(mocks.MockErrorReporter)
	req := httptest.NewRequest(http.MethodPost, "/v1/exchange-rates", nil)

	reporter.On("ReportServerError", req, mock.MatchedBy(func(err error) bool {
		return err.Error() == "publish failed"
	})).Once()

	New(&wg, reporter).BackgroundTask(req, func() error {
		return errors.New("publish failed")
	})
	wg.Wait()

	reporter.AssertExpectations(t)
}
