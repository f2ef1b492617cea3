// Package usecase はlistsフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"

	"skinfolio_backend/internal/feature/lists/domain/entity"
)

// ListRepository はリストの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type ListRepository interface {
	FindByURL(ctx context.Context, url string) (*entity.List, error)
	ListByUser(ctx context.Context, userID uint) ([]entity.List, error)
	Create(ctx context.Context, l *entity.List) error
	Update(ctx context.Context, l *entity.List) error
}

// ActionRepository はアイテムアクションの永続化層を抽象化します。
// WithListLock runs fn while the list is locked against concurrent action
// writes; calls made with the ctx given to fn join the same transaction.
type ActionRepository interface {
	WithListLock(ctx context.Context, listID int64, fn func(ctx context.Context) error) error
	FindByList(ctx context.Context, listID int64) ([]entity.ItemAction, error)
	Create(ctx context.Context, a *entity.ItemAction) error
	Delete(ctx context.Context, listID, actionID int64) error
}

// ItemCatalog tells whether an item id exists.
type ItemCatalog interface {
	Has(id int64) bool
}

// Valuator computes the valuation of a list identified by its url.
type Valuator interface {
	ValuationByURL(ctx context.Context, url string, windowDays int) (*entity.ListValuation, error)
}

// ChangeNotifier is told when cached valuations become stale.
// Notifications are best effort and never fail the write that caused them.
type ChangeNotifier interface {
	ListChanged(ctx context.Context, url string)
	AllListsChanged(ctx context.Context)
}

// NopNotifier is the ChangeNotifier used when no cache is configured.
type NopNotifier struct{}

func (NopNotifier) ListChanged(context.Context, string) {}
func (NopNotifier) AllListsChanged(context.Context)     {}
