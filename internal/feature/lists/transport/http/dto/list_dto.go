// Package dto はlistsフィーチャーのHTTPトランスポート層のデータ転送オブジェクトを定義します。
package dto

import (
	"time"

	"skinfolio_backend/internal/feature/lists/domain/entity"
)

// CreateListReq は POST /lists のリクエストボディです。
type CreateListReq struct {
	Name        string  `json:"name" binding:"required,max=100"`
	Description *string `json:"description" binding:"omitempty,max=1000"`
	Currency    string  `json:"currency" binding:"required,oneof=EUR USD"`
	Public      bool    `json:"public"`
}

// UpdateListReq は PATCH /lists/:url のリクエストボディです。省略したフィールドは変更されません。
type UpdateListReq struct {
	Name        *string `json:"name" binding:"omitempty,max=100"`
	Description *string `json:"description" binding:"omitempty,max=1000"`
	Public      *bool   `json:"public"`
}

// AddActionReq は POST /lists/:url/actions のリクエストボディです。
// 上限は entity.MaxUnitPrice と entity.MaxActionAmount に合わせています。
type AddActionReq struct {
	ItemID    int64  `json:"item_id" binding:"required,gt=0"`
	Kind      string `json:"kind" binding:"required"`
	UnitPrice *int64 `json:"unit_price" binding:"required,gte=0,lte=100000000000"`
	Amount    int64  `json:"amount" binding:"required,gt=0,lte=1000000"`
}

// ListRes is the metadata of a list.
type ListRes struct {
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	URL         string    `json:"url"`
	Currency    string    `json:"currency"`
	Public      bool      `json:"public"`
	UserID      uint      `json:"user_id"`
	CreatedUTC  time.Time `json:"created_utc"`
}

// NewListRes converts a list for the response.
func NewListRes(l *entity.List) ListRes {
	return ListRes{
		Name:        l.Name,
		Description: l.Description,
		URL:         l.URL,
		Currency:    string(l.Currency),
		Public:      l.Public,
		UserID:      l.UserID,
		CreatedUTC:  l.CreatedUTC,
	}
}

// ActionRes is one item action.
type ActionRes struct {
	ID         int64     `json:"id"`
	ItemID     int64     `json:"item_id"`
	Kind       string    `json:"kind"`
	UnitPrice  int64     `json:"unit_price"`
	Amount     int64     `json:"amount"`
	CreatedUTC time.Time `json:"created_utc"`
}

// NewActionRes converts an action for the response.
func NewActionRes(a *entity.ItemAction) ActionRes {
	return ActionRes{
		ID:         a.ID,
		ItemID:     a.ItemID,
		Kind:       a.Kind.String(),
		UnitPrice:  a.UnitPrice,
		Amount:     a.Amount,
		CreatedUTC: a.CreatedUTC,
	}
}
