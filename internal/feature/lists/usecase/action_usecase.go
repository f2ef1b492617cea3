package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"skinfolio_backend/internal/feature/lists/domain"
	"skinfolio_backend/internal/feature/lists/domain/entity"
	"skinfolio_backend/internal/feature/lists/valuation"
)

// ActionUsecase records buys and sells in lists.
type ActionUsecase struct {
	lists    ListRepository
	actions  ActionRepository
	catalog  ItemCatalog
	notifier ChangeNotifier
	now      func() time.Time
}

// NewActionUsecase は新しい ActionUsecase を作成します。
func NewActionUsecase(lists ListRepository, actions ActionRepository, catalog ItemCatalog, notifier ChangeNotifier) *ActionUsecase {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &ActionUsecase{lists: lists, actions: actions, catalog: catalog, notifier: notifier, now: time.Now}
}

// NewAction is the input of Add.
type NewAction struct {
	ItemID    int64
	Kind      entity.ActionKind
	UnitPrice int64
	Amount    int64
}

// Add appends an action to a list of the caller. A sell is refused when the
// item history would not hold enough units. The check and the insert run
// under the list lock.
func (u *ActionUsecase) Add(ctx context.Context, userID uint, url string, in NewAction) (*entity.ItemAction, error) {
	if in.Amount <= 0 || in.Amount > entity.MaxActionAmount {
		return nil, fmt.Errorf("%w: amount must be between 1 and %d", domain.ErrInvalidInput, entity.MaxActionAmount)
	}
	if in.UnitPrice < 0 || in.UnitPrice > entity.MaxUnitPrice {
		return nil, fmt.Errorf("%w: unit price must be between 0 and %d", domain.ErrInvalidInput, entity.MaxUnitPrice)
	}
	if in.Kind != entity.Buy && in.Kind != entity.Sell {
		return nil, fmt.Errorf("%w: unknown action kind", domain.ErrInvalidInput)
	}
	l, err := loadOwnedList(ctx, u.lists, userID, url)
	if err != nil {
		return nil, err
	}
	if !u.catalog.Has(in.ItemID) {
		return nil, fmt.Errorf("%w: %d", domain.ErrItemNotFound, in.ItemID)
	}

	a := &entity.ItemAction{
		ListID:    l.ID,
		ItemID:    in.ItemID,
		Kind:      in.Kind,
		UnitPrice: in.UnitPrice,
		Amount:    in.Amount,
	}
	err = u.actions.WithListLock(ctx, l.ID, func(ctx context.Context) error {
		// stamped under the lock so the new action sorts after every stored one
		a.CreatedUTC = u.now().UTC()
		if a.Kind == entity.Sell {
			all, err := u.actions.FindByList(ctx, l.ID)
			if err != nil {
				return err
			}
			if err := checkReplay(append(itemHistory(all, a.ItemID, 0), *a)); err != nil {
				return err
			}
		}
		return u.actions.Create(ctx, a)
	})
	if err != nil {
		return nil, err
	}
	u.notifier.ListChanged(ctx, l.URL)
	return a, nil
}

// Delete removes an action from a list of the caller. The delete is refused
// when the remaining history would sell more than it bought.
func (u *ActionUsecase) Delete(ctx context.Context, userID uint, url string, actionID int64) error {
	l, err := loadOwnedList(ctx, u.lists, userID, url)
	if err != nil {
		return err
	}
	err = u.actions.WithListLock(ctx, l.ID, func(ctx context.Context) error {
		all, err := u.actions.FindByList(ctx, l.ID)
		if err != nil {
			return err
		}
		var target *entity.ItemAction
		for i := range all {
			if all[i].ID == actionID {
				target = &all[i]
				break
			}
		}
		if target == nil {
			return domain.ErrActionNotFound
		}
		if err := checkReplay(itemHistory(all, target.ItemID, actionID)); err != nil {
			return err
		}
		return u.actions.Delete(ctx, l.ID, actionID)
	})
	if err != nil {
		return err
	}
	u.notifier.ListChanged(ctx, l.URL)
	return nil
}

// itemHistory returns the ordered actions of one item, without the action excluded (0 = none).
func itemHistory(all []entity.ItemAction, itemID, excluded int64) []entity.ItemAction {
	out := make([]entity.ItemAction, 0, len(all))
	for _, a := range all {
		if a.ItemID == itemID && a.ID != excluded {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}

// checkReplay maps a ledger that cannot be replayed to ErrInsufficientAmount.
func checkReplay(actions []entity.ItemAction) error {
	_, err := valuation.Replay(actions)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, domain.ErrNegativeItemCount), errors.Is(err, domain.ErrEmptyLedger):
		return domain.ErrInsufficientAmount
	default:
		return err
	}
}
