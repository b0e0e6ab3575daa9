package mocks

import (
	"net/http"

	"github.com/stretchr/testify/mock"
)

type MockErrorReporter struct {
	mock.Mock
}

func (m *MockErrorReporter) ReportServerError(r *http.Request, err error) {
	m.Called(r, err)
}
