package mocks

import (
	"github.com/cradoe/peoplepay/internal/stream"
	"github.com/stretchr/testify/mock"
)

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(topic string, event *stream.Event) error {
	args := m.Called(topic, event)
	return args.Error(0)
}
