package valuation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	catalogentity "skinfolio_backend/internal/feature/catalog/domain/entity"
	"skinfolio_backend/internal/feature/lists/domain"
	"skinfolio_backend/internal/feature/lists/domain/entity"
	priceentity "skinfolio_backend/internal/feature/prices/domain/entity"
)

// ListReader loads list metadata.
type ListReader interface {
	FindByID(ctx context.Context, id int64) (*entity.List, error)
	FindByURL(ctx context.Context, url string) (*entity.List, error)
}

// ActionReader loads the actions of a list in no particular order.
type ActionReader interface {
	FindByList(ctx context.Context, listID int64) ([]entity.ItemAction, error)
}

// PriceReader loads price refreshes and price rows. FindPrice and
// LatestRefresh return nil without error when nothing matches.
// Implementations must be safe for concurrent use.
type PriceReader interface {
	RefreshesSince(ctx context.Context, since time.Time) ([]priceentity.PriceRefresh, error)
	LatestRefresh(ctx context.Context) (*priceentity.PriceRefresh, error)
	FindPrice(ctx context.Context, refreshID, itemID int64) (*priceentity.Price, error)
}

// ItemCatalog resolves catalog items by id.
type ItemCatalog interface {
	ItemByID(id int64) (catalogentity.Item, bool)
}

// Engine computes list valuations. It is read-only and safe for concurrent use.
type Engine struct {
	lists   ListReader
	actions ActionReader
	prices  PriceReader
	catalog ItemCatalog
	now     func() time.Time
}

// NewEngine creates an Engine reading from the given stores.
func NewEngine(lists ListReader, actions ActionReader, prices PriceReader, catalog ItemCatalog) *Engine {
	return &Engine{lists: lists, actions: actions, prices: prices, catalog: catalog, now: time.Now}
}

// WithClock replaces the wall clock, for tests.
func (e *Engine) WithClock(now func() time.Time) *Engine {
	e.now = now
	return e
}

// ComputeListValuation values the list with the given id over a rolling
// window of windowDays (DefaultWindowDays when <= 0).
func (e *Engine) ComputeListValuation(ctx context.Context, listID int64, windowDays int) (*entity.ListValuation, error) {
	list, err := e.lists.FindByID(ctx, listID)
	if err != nil {
		return nil, err
	}
	return e.compute(ctx, list, windowDays)
}

// ValuationByURL values the list with the given url.
func (e *Engine) ValuationByURL(ctx context.Context, url string, windowDays int) (*entity.ListValuation, error) {
	list, err := e.lists.FindByURL(ctx, url)
	if err != nil {
		return nil, err
	}
	return e.compute(ctx, list, windowDays)
}

func (e *Engine) compute(ctx context.Context, list *entity.List, windowDays int) (*entity.ListValuation, error) {
	if list.Deleted {
		return nil, domain.ErrListDeleted
	}
	if windowDays <= 0 {
		windowDays = DefaultWindowDays
	}
	if err := checkCurrency(list.Currency); err != nil {
		slog.Error("list valuation failed", "list_id", list.ID, "currency", list.Currency, "error", err)
		return nil, err
	}

	actions, err := e.actions.FindByList(ctx, list.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load actions: %w", err)
	}
	groups := groupByItem(actions)

	now := e.now().UTC()
	refreshes, latest, err := e.loadRefreshes(ctx, now, windowDays)
	if err != nil {
		return nil, err
	}

	inputs := make([]itemInput, 0, len(groups))
	for _, g := range groups {
		item, ok := e.catalog.ItemByID(g.itemID)
		if !ok {
			err := fmt.Errorf("%w: %d", domain.ErrUnknownItem, g.itemID)
			slog.Error("list valuation failed", "list_id", list.ID, "item_id", g.itemID, "error", err)
			return nil, err
		}
		inputs = append(inputs, itemInput{
			Item:        item,
			Actions:     g.actions,
			Currency:    list.Currency,
			ListCreated: list.CreatedUTC,
			WindowDays:  windowDays,
			Today:       now,
			Refreshes:   refreshes,
			Latest:      latest,
			Prices:      e.prices,
		})
	}

	results := make([]itemResult, len(inputs))
	eg, egCtx := errgroup.WithContext(ctx)
	for i, in := range inputs {
		eg.Go(func() error {
			r, err := buildItem(egCtx, in)
			if err != nil {
				return fmt.Errorf("item %d: %w", in.Item.ID, err)
			}
			results[i] = r
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		if errors.Is(err, domain.ErrInternal) {
			slog.Error("list valuation failed", "list_id", list.ID, "error", err)
		}
		return nil, err
	}

	return aggregate(list, results), nil
}

// loadRefreshes returns the refreshes of the window (or only the latest one
// when the window is empty) together with the latest refresh.
func (e *Engine) loadRefreshes(ctx context.Context, now time.Time, windowDays int) ([]priceentity.PriceRefresh, *priceentity.PriceRefresh, error) {
	latest, err := e.prices.LatestRefresh(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load latest price refresh: %w", err)
	}
	refreshes, err := e.prices.RefreshesSince(ctx, now.AddDate(0, 0, -windowDays))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load price refreshes: %w", err)
	}
	if len(refreshes) == 0 && latest != nil {
		refreshes = []priceentity.PriceRefresh{*latest}
	}
	sort.Slice(refreshes, func(i, j int) bool {
		return refreshes[i].CreatedUTC.Before(refreshes[j].CreatedUTC)
	})
	return refreshes, latest, nil
}

type itemGroup struct {
	itemID  int64
	actions []entity.ItemAction
}

// groupByItem partitions actions by item, ordered by item id, each group
// sorted by (CreatedUTC, ID).
func groupByItem(actions []entity.ItemAction) []itemGroup {
	byItem := map[int64][]entity.ItemAction{}
	for _, a := range actions {
		byItem[a.ItemID] = append(byItem[a.ItemID], a)
	}
	groups := make([]itemGroup, 0, len(byItem))
	for id, as := range byItem {
		sort.Slice(as, func(i, j int) bool { return as[i].Less(as[j]) })
		groups = append(groups, itemGroup{itemID: id, actions: as})
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].itemID < groups[j].itemID })
	return groups
}
