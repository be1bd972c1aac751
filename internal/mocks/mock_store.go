package mocks

import (
	"context"

	"github.com/you/learnsphere/domain"
)

// MockStore implements domain.Store with injectable behavior, for failure
// paths the in-memory store cannot produce.
type MockStore struct {
	LoadFunc   func(ctx context.Context, key string, v interface{}) error
	SaveFunc   func(ctx context.Context, key string, v interface{}) error
	DeleteFunc func(ctx context.Context, key string) error
}

// Load defers to LoadFunc, defaulting to not-found.
func (m *MockStore) Load(ctx context.Context, key string, v interface{}) error {
	if m.LoadFunc != nil {
		return m.LoadFunc(ctx, key, v)
	}
	return domain.ErrRecordNotFound
}

// Save defers to SaveFunc, defaulting to success.
func (m *MockStore) Save(ctx context.Context, key string, v interface{}) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, key, v)
	}
	return nil
}

// Delete defers to DeleteFunc, defaulting to success.
func (m *MockStore) Delete(ctx context.Context, key string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, key)
	}
	return nil
}

var _ domain.Store = (*MockStore)(nil)
