package usecase

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skinfolio_backend/internal/feature/lists/domain"
	"skinfolio_backend/internal/feature/lists/domain/entity"
)

var fixedNow = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func ownedList() *entity.List {
	return &entity.List{ID: 5, UserID: 1, Name: "Knives", URL: "abc", Currency: entity.CurrencyEUR}
}

func findReturning(l *entity.List, err error) func(ctx context.Context, url string) (*entity.List, error) {
	return func(ctx context.Context, url string) (*entity.List, error) { return l, err }
}

func TestListUsecase_Create(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		listName    string
		description *string
		currency    string
		createErr   error
		expectedErr error
	}{
		{name: "success", listName: "  Knives ", description: strPtr("mine"), currency: "EUR"},
		{name: "success: blank description dropped", listName: "Cases", description: strPtr("   "), currency: "USD"},
		{name: "error: empty name", listName: "   ", currency: "EUR", expectedErr: domain.ErrInvalidInput},
		{name: "error: name too long", listName: strings.Repeat("a", 101), currency: "EUR", expectedErr: domain.ErrInvalidInput},
		{name: "error: unsupported currency", listName: "x", currency: "GBP", expectedErr: domain.ErrInvalidInput},
		{name: "error: duplicate name", listName: "x", currency: "EUR", createErr: domain.ErrDuplicateListName, expectedErr: domain.ErrConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var stored *entity.List
			repo := &mockListRepository{CreateFunc: func(ctx context.Context, l *entity.List) error {
				if tt.createErr != nil {
					return tt.createErr
				}
				l.ID = 9
				stored = l
				return nil
			}}
			uc := NewListUsecase(repo, nil, nil, 30)
			uc.now = func() time.Time { return fixedNow }
			uc.newURL = func() string { return "slug" }

			l, err := uc.Create(context.Background(), 1, tt.listName, tt.description, tt.currency, true)
			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				assert.Nil(t, l)
				return
			}
			require.NoError(t, err)
			assert.Same(t, stored, l)
			assert.Equal(t, int64(9), l.ID)
			assert.Equal(t, strings.TrimSpace(tt.listName), l.Name)
			assert.Equal(t, "slug", l.URL)
			assert.Equal(t, entity.Currency(tt.currency), l.Currency)
			assert.True(t, l.Public)
			assert.Equal(t, fixedNow, l.CreatedUTC)
			if strings.TrimSpace(*tt.description) == "" {
				assert.Nil(t, l.Description)
			} else {
				assert.Equal(t, "mine", *l.Description)
			}
		})
	}
}

func TestNewListURL(t *testing.T) {
	t.Parallel()

	a, b := newListURL(), newListURL()
	assert.Len(t, a, 32)
	assert.NotContains(t, a, "-")
	assert.NotEqual(t, a, b)
}

func TestListUsecase_Update(t *testing.T) {
	t.Parallel()

	deleted := ownedList()
	deleted.Deleted = true

	tests := []struct {
		name        string
		userID      uint
		list        *entity.List
		findErr     error
		patch       ListPatch
		expectedErr error
	}{
		{name: "success", userID: 1, list: ownedList(), patch: ListPatch{Name: strPtr("Gloves"), Description: strPtr("new"), Public: boolPtr(true)}},
		{name: "error: not owner", userID: 2, list: ownedList(), expectedErr: domain.ErrUnauthorized},
		{name: "error: anonymous", userID: 0, list: ownedList(), expectedErr: domain.ErrNotOwner},
		{name: "error: deleted", userID: 1, list: deleted, expectedErr: domain.ErrConflict},
		{name: "error: not found", userID: 1, findErr: domain.ErrListNotFound, expectedErr: domain.ErrNotFound},
		{name: "error: invalid name", userID: 1, list: ownedList(), patch: ListPatch{Name: strPtr("")}, expectedErr: domain.ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var updated *entity.List
			repo := &mockListRepository{
				FindByURLFunc: findReturning(tt.list, tt.findErr),
				UpdateFunc: func(ctx context.Context, l *entity.List) error {
					updated = l
					return nil
				},
			}
			notifier := &mockNotifier{}
			uc := NewListUsecase(repo, nil, notifier, 30)
			uc.now = func() time.Time { return fixedNow }

			l, err := uc.Update(context.Background(), tt.userID, "abc", tt.patch)
			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				assert.Nil(t, updated)
				assert.Empty(t, notifier.changed)
				return
			}
			require.NoError(t, err)
			assert.Same(t, updated, l)
			assert.Equal(t, "Gloves", l.Name)
			assert.Equal(t, "new", *l.Description)
			assert.True(t, l.Public)
			assert.Equal(t, fixedNow, l.UpdatedUTC)
			assert.Equal(t, []string{"abc"}, notifier.changed)
		})
	}
}

func TestListUsecase_Delete(t *testing.T) {
	t.Parallel()

	var updated *entity.List
	repo := &mockListRepository{
		FindByURLFunc: findReturning(ownedList(), nil),
		UpdateFunc: func(ctx context.Context, l *entity.List) error {
			updated = l
			return nil
		},
	}
	notifier := &mockNotifier{}
	uc := NewListUsecase(repo, nil, notifier, 30)

	require.NoError(t, uc.Delete(context.Background(), 1, "abc"))
	require.NotNil(t, updated)
	assert.True(t, updated.Deleted)
	assert.Equal(t, []string{"abc"}, notifier.changed)

	// storage failure is returned and nothing is signalled
	failing := NewListUsecase(&mockListRepository{
		FindByURLFunc: findReturning(ownedList(), nil),
		UpdateFunc:    func(ctx context.Context, l *entity.List) error { return ErrDB },
	}, nil, notifier, 30)
	assert.ErrorIs(t, failing.Delete(context.Background(), 1, "abc"), ErrDB)
	assert.Len(t, notifier.changed, 1)
}

func TestListUsecase_ListByUser(t *testing.T) {
	t.Parallel()

	repo := &mockListRepository{ListByUserFunc: func(ctx context.Context, userID uint) ([]entity.List, error) {
		assert.Equal(t, uint(3), userID)
		return []entity.List{{Name: "a"}, {Name: "b"}}, nil
	}}
	lists, err := NewListUsecase(repo, nil, nil, 30).ListByUser(context.Background(), 3)
	require.NoError(t, err)
	assert.Len(t, lists, 2)
}

func TestListUsecase_Valuation(t *testing.T) {
	t.Parallel()

	public := ownedList()
	public.Public = true
	deleted := ownedList()
	deleted.Deleted = true

	tests := []struct {
		name        string
		requester   uint
		list        *entity.List
		expectedErr error
	}{
		{name: "success: owner reads private list", requester: 1, list: ownedList()},
		{name: "success: anonymous reads public list", requester: 0, list: public},
		{name: "success: other user reads public list", requester: 2, list: public},
		{name: "error: anonymous reads private list", requester: 0, list: ownedList(), expectedErr: domain.ErrUnauthorized},
		{name: "error: other user reads private list", requester: 2, list: ownedList(), expectedErr: domain.ErrNotOwner},
		{name: "error: deleted list", requester: 1, list: deleted, expectedErr: domain.ErrListDeleted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			valuator := &mockValuator{ValuationByURLFunc: func(ctx context.Context, url string, windowDays int) (*entity.ListValuation, error) {
				assert.Equal(t, "abc", url)
				assert.Equal(t, 14, windowDays)
				return &entity.ListValuation{ListID: 5}, nil
			}}
			uc := NewListUsecase(&mockListRepository{FindByURLFunc: findReturning(tt.list, nil)}, valuator, nil, 14)

			v, err := uc.Valuation(context.Background(), tt.requester, "abc")
			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				assert.Nil(t, v)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, int64(5), v.ListID)
		})
	}
}
