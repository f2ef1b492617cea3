// Package adapters はlistsフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"time"

	"skinfolio_backend/internal/feature/lists/domain/entity"
)

// ListModel is the GORM model for the lists table.
// A user cannot own two non-deleted lists with the same name.
type ListModel struct {
	ID          int64     `gorm:"primaryKey"`
	UserID      uint      `gorm:"not null;uniqueIndex:idx_lists_user_name,where:NOT deleted"`
	Name        string    `gorm:"size:100;not null;uniqueIndex:idx_lists_user_name"`
	Description *string   `gorm:"size:1000"`
	URL         string    `gorm:"size:64;not null;uniqueIndex"`
	Currency    string    `gorm:"size:3;not null"`
	Public      bool      `gorm:"not null;default:false"`
	Deleted     bool      `gorm:"not null;default:false"`
	CreatedUTC  time.Time `gorm:"not null"`
	UpdatedUTC  time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM.
func (ListModel) TableName() string {
	return "lists"
}

func (m *ListModel) toEntity() *entity.List {
	return &entity.List{
		ID:          m.ID,
		UserID:      m.UserID,
		Name:        m.Name,
		Description: m.Description,
		URL:         m.URL,
		Currency:    entity.Currency(m.Currency),
		Public:      m.Public,
		Deleted:     m.Deleted,
		CreatedUTC:  m.CreatedUTC.UTC(),
		UpdatedUTC:  m.UpdatedUTC.UTC(),
	}
}

func toListModel(l *entity.List) *ListModel {
	return &ListModel{
		ID:          l.ID,
		UserID:      l.UserID,
		Name:        l.Name,
		Description: l.Description,
		URL:         l.URL,
		Currency:    string(l.Currency),
		Public:      l.Public,
		Deleted:     l.Deleted,
		CreatedUTC:  l.CreatedUTC,
		UpdatedUTC:  l.UpdatedUTC,
	}
}

// ItemActionModel is the GORM model for the item_actions table.
// Kind is stored as its wire tag ("B" or "S").
type ItemActionModel struct {
	ID         int64     `gorm:"primaryKey"`
	ListID     int64     `gorm:"not null;index"`
	ItemID     int64     `gorm:"not null"`
	Kind       string    `gorm:"size:1;not null"`
	UnitPrice  int64     `gorm:"not null"`
	Amount     int64     `gorm:"not null"`
	CreatedUTC time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM.
func (ItemActionModel) TableName() string {
	return "item_actions"
}

func (m *ItemActionModel) toEntity() (entity.ItemAction, error) {
	kind, err := entity.ParseActionKind(m.Kind)
	if err != nil {
		return entity.ItemAction{}, err
	}
	return entity.ItemAction{
		ID:         m.ID,
		ListID:     m.ListID,
		ItemID:     m.ItemID,
		Kind:       kind,
		UnitPrice:  m.UnitPrice,
		Amount:     m.Amount,
		CreatedUTC: m.CreatedUTC.UTC(),
	}, nil
}

func toItemActionModel(a *entity.ItemAction) *ItemActionModel {
	return &ItemActionModel{
		ID:         a.ID,
		ListID:     a.ListID,
		ItemID:     a.ItemID,
		Kind:       a.Kind.String(),
		UnitPrice:  a.UnitPrice,
		Amount:     a.Amount,
		CreatedUTC: a.CreatedUTC,
	}
}
