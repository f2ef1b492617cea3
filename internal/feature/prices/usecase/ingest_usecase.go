// Package usecase implements the daily price refresh.
package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"skinfolio_backend/internal/feature/prices/domain/entity"
)

// ErrInvalidDump is returned when a dump cannot be stored as a refresh.
var ErrInvalidDump = errors.New("invalid price dump")

// DumpSource は価格ダンプの取得元です。
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type DumpSource interface {
	Load(ctx context.Context) (*entity.Dump, error)
}

// RefreshStore persists a refresh together with its prices atomically.
type RefreshStore interface {
	SaveRefresh(ctx context.Context, refresh *entity.PriceRefresh, prices []entity.Price) error
}

// ItemCatalog tells whether an item id exists.
type ItemCatalog interface {
	Has(id int64) bool
}

// ChangeNotifier receives the signal that every list valuation is stale.
type ChangeNotifier interface {
	AllListsChanged(ctx context.Context)
}

// IngestResult summarizes one refresh.
type IngestResult struct {
	RefreshID int64
	Stored    int
	Skipped   int
}

// IngestUsecase は価格ダンプを1つのPriceRefreshとして永続化します。
type IngestUsecase struct {
	source   DumpSource
	store    RefreshStore
	catalog  ItemCatalog
	notifier ChangeNotifier
	now      func() time.Time
}

// NewIngestUsecase は新しい IngestUsecase を作成します。
func NewIngestUsecase(source DumpSource, store RefreshStore, catalog ItemCatalog, notifier ChangeNotifier) *IngestUsecase {
	return &IngestUsecase{source: source, store: store, catalog: catalog, notifier: notifier, now: time.Now}
}

// Ingest loads the dump, stores it and signals that all lists changed.
// Entries for unknown items, duplicated items and negative prices are skipped
// and logged; they never fail the refresh.
func (iu *IngestUsecase) Ingest(ctx context.Context) (*IngestResult, error) {
	dump, err := iu.source.Load(ctx)
	if err != nil {
		return nil, err
	}
	if dump.UsdToEurExchangeRate <= 0 {
		return nil, fmt.Errorf("%w: exchange rate %v", ErrInvalidDump, dump.UsdToEurExchangeRate)
	}

	prices := make([]entity.Price, 0, len(dump.Prices))
	seen := make(map[int64]struct{}, len(dump.Prices))
	skipped := 0
	for _, p := range dump.Prices {
		reason := ""
		switch _, dup := seen[p.ItemID]; {
		case !iu.catalog.Has(p.ItemID):
			reason = "unknown item"
		case dup:
			reason = "duplicate item"
		case negative(p.SteamPriceCentsUsd) || negative(p.Buff163PriceCentsUsd):
			reason = "negative price"
		}
		if reason != "" {
			// 1件の不正データで更新全体を止めずにログに出力し、次へ進む
			slog.Warn("skipping price entry", "item_id", p.ItemID, "reason", reason)
			skipped++
			continue
		}
		seen[p.ItemID] = struct{}{}
		prices = append(prices, p)
	}

	refresh := &entity.PriceRefresh{
		CreatedUTC:           iu.now().UTC(),
		UsdToEurExchangeRate: dump.UsdToEurExchangeRate,
		SteamUpdatedUTC:      dump.SteamUpdatedUTC,
		Buff163UpdatedUTC:    dump.Buff163UpdatedUTC,
	}
	if err := iu.store.SaveRefresh(ctx, refresh, prices); err != nil {
		return nil, err
	}

	iu.notifier.AllListsChanged(ctx)
	slog.Info("price refresh stored", "refresh_id", refresh.ID, "stored", len(prices), "skipped", skipped)
	return &IngestResult{RefreshID: refresh.ID, Stored: len(prices), Skipped: skipped}, nil
}

func negative(v *int64) bool {
	return v != nil && *v < 0
}
