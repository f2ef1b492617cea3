package adapters

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skinfolio_backend/internal/feature/lists/domain"
	"skinfolio_backend/internal/feature/lists/domain/entity"
	"skinfolio_backend/internal/feature/lists/usecase"
)

func TestActionPostgres_CreateFindDelete(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewActionRepository(db)
	ctx := context.Background()

	buy := &entity.ItemAction{ListID: 1, ItemID: 7, Kind: entity.Buy, UnitPrice: 150, Amount: 3, CreatedUTC: created}
	sell := &entity.ItemAction{ListID: 1, ItemID: 7, Kind: entity.Sell, UnitPrice: 200, Amount: 1, CreatedUTC: created.Add(time.Minute)}
	foreign := &entity.ItemAction{ListID: 2, ItemID: 7, Kind: entity.Buy, UnitPrice: 1, Amount: 1, CreatedUTC: created}
	for _, a := range []*entity.ItemAction{sell, buy, foreign} {
		require.NoError(t, repo.Create(ctx, a))
		require.NotZero(t, a.ID)
	}

	actions, err := repo.FindByList(ctx, 1)
	require.NoError(t, err)
	require.Len(t, actions, 2)
	assert.Equal(t, buy.ID, actions[0].ID)
	assert.Equal(t, entity.Buy, actions[0].Kind)
	assert.Equal(t, int64(150), actions[0].UnitPrice)
	assert.Equal(t, int64(3), actions[0].Amount)
	assert.True(t, actions[0].CreatedUTC.Equal(created))
	assert.Equal(t, entity.Sell, actions[1].Kind)

	// an action of another list cannot be deleted through this list
	assert.ErrorIs(t, repo.Delete(ctx, 1, foreign.ID), domain.ErrActionNotFound)

	require.NoError(t, repo.Delete(ctx, 1, sell.ID))
	assert.ErrorIs(t, repo.Delete(ctx, 1, sell.ID), domain.ErrNotFound)

	actions, err = repo.FindByList(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, actions, 1)
}

func TestActionPostgres_FindByList_CorruptKind(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewActionRepository(db)

	require.NoError(t, db.Create(&ItemActionModel{ListID: 1, ItemID: 1, Kind: "X", UnitPrice: 1, Amount: 1, CreatedUTC: created}).Error)

	_, err := repo.FindByList(context.Background(), 1)
	assert.ErrorIs(t, err, domain.ErrInternal)
}

func TestActionPostgres_WithListLock(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	ctx := context.Background()
	l := newList(1, "Knives", "abc", created)
	require.NoError(t, NewListRepository(db).Create(ctx, l))
	repo := NewActionRepository(db)

	t.Run("commit", func(t *testing.T) {
		err := repo.WithListLock(ctx, l.ID, func(ctx context.Context) error {
			return repo.Create(ctx, &entity.ItemAction{ListID: l.ID, ItemID: 7, Kind: entity.Buy, UnitPrice: 1, Amount: 1, CreatedUTC: created})
		})
		require.NoError(t, err)
		actions, err := repo.FindByList(ctx, l.ID)
		require.NoError(t, err)
		assert.Len(t, actions, 1)
	})

	t.Run("rollback on error", func(t *testing.T) {
		errAbort := errors.New("abort")
		err := repo.WithListLock(ctx, l.ID, func(ctx context.Context) error {
			require.NoError(t, repo.Create(ctx, &entity.ItemAction{ListID: l.ID, ItemID: 8, Kind: entity.Buy, UnitPrice: 1, Amount: 1, CreatedUTC: created}))
			return errAbort
		})
		assert.ErrorIs(t, err, errAbort)
		actions, err := repo.FindByList(ctx, l.ID)
		require.NoError(t, err)
		assert.Len(t, actions, 1)
	})

	t.Run("unknown list", func(t *testing.T) {
		called := false
		err := repo.WithListLock(ctx, 999, func(ctx context.Context) error {
			called = true
			return nil
		})
		assert.ErrorIs(t, err, domain.ErrListNotFound)
		assert.False(t, called)
	})
}

type anyItem struct{}

func (anyItem) Has(int64) bool { return true }

func TestActionPostgres_ConcurrentSellsCannotOversell(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	ctx := context.Background()
	lists := NewListRepository(db)
	actions := NewActionRepository(db)
	l := newList(1, "Knives", "abc", created)
	require.NoError(t, lists.Create(ctx, l))

	uc := usecase.NewActionUsecase(lists, actions, anyItem{}, nil)
	_, err := uc.Add(ctx, 1, "abc", usecase.NewAction{ItemID: 7, Kind: entity.Buy, UnitPrice: 100, Amount: 1})
	require.NoError(t, err)

	const sellers = 4
	errs := make([]error, sellers)
	var wg sync.WaitGroup
	for i := range sellers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = uc.Add(ctx, 1, "abc", usecase.NewAction{ItemID: 7, Kind: entity.Sell, UnitPrice: 120, Amount: 1})
		}()
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.ErrorIs(t, err, domain.ErrInsufficientAmount)
	}
	assert.Equal(t, 1, succeeded)

	stored, err := actions.FindByList(ctx, l.ID)
	require.NoError(t, err)
	assert.Len(t, stored, 2)
}
