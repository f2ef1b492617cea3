package adapters

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"skinfolio_backend/internal/feature/lists/domain"
	"skinfolio_backend/internal/feature/lists/domain/entity"
)

// actionPostgres はアイテムアクションのPostgreSQL実装です。
type actionPostgres struct {
	db *gorm.DB
}

// NewActionRepository は指定されたgorm.DB接続でactionPostgresを生成します。
func NewActionRepository(db *gorm.DB) *actionPostgres {
	return &actionPostgres{db: db}
}

// txKey carries the transaction opened by WithListLock.
type txKey struct{}

// conn returns the transaction of ctx when called inside WithListLock.
func (r *actionPostgres) conn(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx.WithContext(ctx)
	}
	return r.db.WithContext(ctx)
}

// WithListLock はリスト行を SELECT ... FOR UPDATE でロックしたトランザクション内で fn を実行します。
// fn に渡される ctx で呼ばれたリポジトリ操作は同じトランザクションを使用します。
// fn がエラーを返した場合はロールバックされます。
func (r *actionPostgres) WithListLock(ctx context.Context, listID int64, fn func(ctx context.Context) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var l ListModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id").
			Where("id = ?", listID).
			Take(&l).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrListNotFound
			}
			return err
		}
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}

// FindByList returns all actions of the list.
func (r *actionPostgres) FindByList(ctx context.Context, listID int64) ([]entity.ItemAction, error) {
	var models []ItemActionModel
	if err := r.conn(ctx).
		Where("list_id = ?", listID).
		Order("created_utc, id").
		Find(&models).Error; err != nil {
		return nil, err
	}
	actions := make([]entity.ItemAction, 0, len(models))
	for i := range models {
		a, err := models[i].toEntity()
		if err != nil {
			return nil, fmt.Errorf("%w: action %d: %v", domain.ErrInternal, models[i].ID, err)
		}
		actions = append(actions, a)
	}
	return actions, nil
}

// Create inserts the action and sets its ID.
func (r *actionPostgres) Create(ctx context.Context, a *entity.ItemAction) error {
	m := toItemActionModel(a)
	if err := r.conn(ctx).Create(m).Error; err != nil {
		return err
	}
	a.ID = m.ID
	return nil
}

// Delete removes one action of the list. Returns domain.ErrActionNotFound when
// the action does not exist or belongs to another list.
func (r *actionPostgres) Delete(ctx context.Context, listID, actionID int64) error {
	res := r.conn(ctx).Where("id = ? AND list_id = ?", actionID, listID).Delete(&ItemActionModel{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrActionNotFound
	}
	return nil
}
