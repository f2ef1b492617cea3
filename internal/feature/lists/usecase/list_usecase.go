package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"skinfolio_backend/internal/feature/lists/domain"
	"skinfolio_backend/internal/feature/lists/domain/entity"
)

const (
	maxNameLength        = 100
	maxDescriptionLength = 1000
)

// ListPatch holds the optional fields of an update. Nil fields are left unchanged;
// an empty Description clears it.
type ListPatch struct {
	Name        *string
	Description *string
	Public      *bool
}

// ListUsecase manages list metadata and serves valuations.
type ListUsecase struct {
	lists      ListRepository
	valuator   Valuator
	notifier   ChangeNotifier
	windowDays int
	now        func() time.Time
	newURL     func() string
}

// NewListUsecase は新しい ListUsecase を作成します。
// windowDays is the snapshot window used for valuations.
func NewListUsecase(lists ListRepository, valuator Valuator, notifier ChangeNotifier, windowDays int) *ListUsecase {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &ListUsecase{
		lists:      lists,
		valuator:   valuator,
		notifier:   notifier,
		windowDays: windowDays,
		now:        time.Now,
		newURL:     newListURL,
	}
}

// newListURL returns a 32 character URL-safe slug.
func newListURL() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

func normalizeName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if n := utf8.RuneCountInString(name); n == 0 || n > maxNameLength {
		return "", fmt.Errorf("%w: name must be 1 to %d characters", domain.ErrInvalidInput, maxNameLength)
	}
	return name, nil
}

func normalizeDescription(desc *string) (*string, error) {
	if desc == nil {
		return nil, nil
	}
	d := strings.TrimSpace(*desc)
	if d == "" {
		return nil, nil
	}
	if utf8.RuneCountInString(d) > maxDescriptionLength {
		return nil, fmt.Errorf("%w: description must be at most %d characters", domain.ErrInvalidInput, maxDescriptionLength)
	}
	return &d, nil
}

// Create は新しいリストを作成します。
func (u *ListUsecase) Create(ctx context.Context, userID uint, name string, description *string, currency string, public bool) (*entity.List, error) {
	name, err := normalizeName(name)
	if err != nil {
		return nil, err
	}
	description, err = normalizeDescription(description)
	if err != nil {
		return nil, err
	}
	cur, err := entity.ParseCurrency(currency)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	now := u.now().UTC()
	l := &entity.List{
		UserID:      userID,
		Name:        name,
		Description: description,
		URL:         u.newURL(),
		Currency:    cur,
		Public:      public,
		CreatedUTC:  now,
		UpdatedUTC:  now,
	}
	if err := u.lists.Create(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

// ownedList loads a live list of the caller.
func (u *ListUsecase) ownedList(ctx context.Context, userID uint, url string) (*entity.List, error) {
	return loadOwnedList(ctx, u.lists, userID, url)
}

func loadOwnedList(ctx context.Context, lists ListRepository, userID uint, url string) (*entity.List, error) {
	l, err := lists.FindByURL(ctx, url)
	if err != nil {
		return nil, err
	}
	if !l.IsOwnedBy(userID) {
		return nil, domain.ErrNotOwner
	}
	if l.Deleted {
		return nil, domain.ErrListDeleted
	}
	return l, nil
}

// Update applies the patch to a list of the caller.
func (u *ListUsecase) Update(ctx context.Context, userID uint, url string, patch ListPatch) (*entity.List, error) {
	l, err := u.ownedList(ctx, userID, url)
	if err != nil {
		return nil, err
	}
	if patch.Name != nil {
		if l.Name, err = normalizeName(*patch.Name); err != nil {
			return nil, err
		}
	}
	if patch.Description != nil {
		if l.Description, err = normalizeDescription(patch.Description); err != nil {
			return nil, err
		}
	}
	if patch.Public != nil {
		l.Public = *patch.Public
	}
	l.UpdatedUTC = u.now().UTC()

	if err := u.lists.Update(ctx, l); err != nil {
		return nil, err
	}
	u.notifier.ListChanged(ctx, l.URL)
	return l, nil
}

// Delete はリストを論理削除します。アクションは保持されます。
func (u *ListUsecase) Delete(ctx context.Context, userID uint, url string) error {
	l, err := u.ownedList(ctx, userID, url)
	if err != nil {
		return err
	}
	l.Deleted = true
	l.UpdatedUTC = u.now().UTC()
	if err := u.lists.Update(ctx, l); err != nil {
		return err
	}
	u.notifier.ListChanged(ctx, l.URL)
	return nil
}

// ListByUser returns the live lists of the user, newest first.
func (u *ListUsecase) ListByUser(ctx context.Context, userID uint) ([]entity.List, error) {
	return u.lists.ListByUser(ctx, userID)
}

// Valuation returns the valuation of the list for requesterID (0 = anonymous).
// Private lists are only visible to their owner.
func (u *ListUsecase) Valuation(ctx context.Context, requesterID uint, url string) (*entity.ListValuation, error) {
	l, err := u.lists.FindByURL(ctx, url)
	if err != nil {
		return nil, err
	}
	if !l.VisibleTo(requesterID) {
		return nil, domain.ErrNotOwner
	}
	if l.Deleted {
		return nil, domain.ErrListDeleted
	}
	return u.valuator.ValuationByURL(ctx, url, u.windowDays)
}
