package iocache

import (
	"github.com/huangsam/coauthor/internal/contract"
	"github.com/huangsam/coauthor/schema"
	"github.com/stretchr/testify/mock"
)

// MockJournalStore is a mock implementation of JournalStore for testing.
type MockJournalStore struct {
	mock.Mock
}

var _ contract.JournalStore = &MockJournalStore{} // Compile-time check

// Record implements the JournalStore interface.
func (m *MockJournalStore) Record(entry schema.JournalEntry) error {
	args := m.Called(entry)
	return args.Error(0)
}

// List implements the JournalStore interface.
func (m *MockJournalStore) List(limit int) ([]schema.JournalEntry, error) {
	args := m.Called(limit)
	entries, _ := args.Get(0).([]schema.JournalEntry)
	return entries, args.Error(1)
}

// GetStatus implements the JournalStore interface.
func (m *MockJournalStore) GetStatus() (schema.JournalStatus, error) {
	args := m.Called()
	return args.Get(0).(schema.JournalStatus), args.Error(1)
}

// Close implements the JournalStore interface.
func (m *MockJournalStore) Close() error {
	args := m.Called()
	return args.Error(0)
}
