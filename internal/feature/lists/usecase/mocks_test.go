package usecase

import (
	"context"
	"errors"

	"skinfolio_backend/internal/feature/lists/domain/entity"
)

var ErrDB = errors.New("database error")

// mockListRepository is a mock implementation of the ListRepository interface.
type mockListRepository struct {
	FindByURLFunc  func(ctx context.Context, url string) (*entity.List, error)
	ListByUserFunc func(ctx context.Context, userID uint) ([]entity.List, error)
	CreateFunc     func(ctx context.Context, l *entity.List) error
	UpdateFunc     func(ctx context.Context, l *entity.List) error
}

func (m *mockListRepository) FindByURL(ctx context.Context, url string) (*entity.List, error) {
	return m.FindByURLFunc(ctx, url)
}

func (m *mockListRepository) ListByUser(ctx context.Context, userID uint) ([]entity.List, error) {
	return m.ListByUserFunc(ctx, userID)
}

func (m *mockListRepository) Create(ctx context.Context, l *entity.List) error {
	if m.CreateFunc == nil {
		return nil
	}
	return m.CreateFunc(ctx, l)
}

func (m *mockListRepository) Update(ctx context.Context, l *entity.List) error {
	if m.UpdateFunc == nil {
		return nil
	}
	return m.UpdateFunc(ctx, l)
}

// mockActionRepository is a mock implementation of the ActionRepository interface.
type mockActionRepository struct {
	WithListLockFunc func(ctx context.Context, listID int64, fn func(ctx context.Context) error) error
	FindByListFunc   func(ctx context.Context, listID int64) ([]entity.ItemAction, error)
	CreateFunc       func(ctx context.Context, a *entity.ItemAction) error
	DeleteFunc       func(ctx context.Context, listID, actionID int64) error
}

func (m *mockActionRepository) WithListLock(ctx context.Context, listID int64, fn func(ctx context.Context) error) error {
	if m.WithListLockFunc == nil {
		return fn(ctx)
	}
	return m.WithListLockFunc(ctx, listID, fn)
}

func (m *mockActionRepository) FindByList(ctx context.Context, listID int64) ([]entity.ItemAction, error) {
	if m.FindByListFunc == nil {
		return nil, nil
	}
	return m.FindByListFunc(ctx, listID)
}

func (m *mockActionRepository) Create(ctx context.Context, a *entity.ItemAction) error {
	if m.CreateFunc == nil {
		return nil
	}
	return m.CreateFunc(ctx, a)
}

func (m *mockActionRepository) Delete(ctx context.Context, listID, actionID int64) error {
	if m.DeleteFunc == nil {
		return nil
	}
	return m.DeleteFunc(ctx, listID, actionID)
}

type mockValuator struct {
	ValuationByURLFunc func(ctx context.Context, url string, windowDays int) (*entity.ListValuation, error)
}

func (m *mockValuator) ValuationByURL(ctx context.Context, url string, windowDays int) (*entity.ListValuation, error) {
	return m.ValuationByURLFunc(ctx, url, windowDays)
}

type mockCatalog map[int64]bool

func (m mockCatalog) Has(id int64) bool { return m[id] }

// mockNotifier records the urls it was told about.
type mockNotifier struct {
	changed []string
	all     int
}

func (m *mockNotifier) ListChanged(ctx context.Context, url string) {
	m.changed = append(m.changed, url)
}
func (m *mockNotifier) AllListsChanged(ctx context.Context) { m.all++ }

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }
