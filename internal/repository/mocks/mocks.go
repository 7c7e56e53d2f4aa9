package mocks

import (
	"context"

	"github.com/mergington/activities/internal/domain/journal"
	"github.com/mergington/activities/internal/domain/registry"
	"github.com/stretchr/testify/mock"
)

// JournalRepository is a mock for journal.Repository.
type JournalRepository struct {
	mock.Mock
}

func (m *JournalRepository) Log(ctx context.Context, entry *journal.Entry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *JournalRepository) List(ctx context.Context, opts journal.ListOptions) ([]journal.Entry, error) {
	args := m.Called(ctx, opts)
	if list, ok := args.Get(0).([]journal.Entry); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// Journal is a mock for registry.Journal.
type Journal struct {
	mock.Mock
}

func (m *Journal) Record(ctx context.Context, entry *journal.Entry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

// Observer is a mock for registry.Observer.
type Observer struct {
	mock.Mock
}

func (m *Observer) ObserveOperation(op registry.Operation, err error) {
	m.Called(op, err)
}

func (m *Observer) ObserveRoster(activity string, participants int) {
	m.Called(activity, participants)
}
