package adapters

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"skinfolio_backend/internal/feature/lists/domain"
	"skinfolio_backend/internal/feature/lists/domain/entity"
)

// pgUniqueViolation is the PostgreSQL SQLSTATE for a unique constraint violation.
const pgUniqueViolation = "23505"

// isDuplicateKey reports whether err is a unique constraint violation, either
// translated by GORM or as a raw pgx error.
func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

// listPostgres はリストのPostgreSQL実装です。
type listPostgres struct {
	db *gorm.DB
}

// NewListRepository は指定されたgorm.DB接続でlistPostgresを生成します。
func NewListRepository(db *gorm.DB) *listPostgres {
	return &listPostgres{db: db}
}

// FindByID returns domain.ErrListNotFound when no list has the id.
func (r *listPostgres) FindByID(ctx context.Context, id int64) (*entity.List, error) {
	return r.first(ctx, "id = ?", id)
}

// FindByURL returns domain.ErrListNotFound when no list has the url.
func (r *listPostgres) FindByURL(ctx context.Context, url string) (*entity.List, error) {
	return r.first(ctx, "url = ?", url)
}

func (r *listPostgres) first(ctx context.Context, query string, arg any) (*entity.List, error) {
	var m ListModel
	if err := r.db.WithContext(ctx).Where(query, arg).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrListNotFound
		}
		return nil, err
	}
	return m.toEntity(), nil
}

// ListByUser は削除されていないユーザーのリストを新しい順で返します。
func (r *listPostgres) ListByUser(ctx context.Context, userID uint) ([]entity.List, error) {
	var models []ListModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND deleted = ?", userID, false).
		Order("created_utc DESC, id DESC").
		Find(&models).Error; err != nil {
		return nil, err
	}
	lists := make([]entity.List, 0, len(models))
	for i := range models {
		lists = append(lists, *models[i].toEntity())
	}
	return lists, nil
}

// Create inserts the list and sets its ID.
// A name already used by another non-deleted list of the user yields domain.ErrDuplicateListName.
func (r *listPostgres) Create(ctx context.Context, l *entity.List) error {
	m := toListModel(l)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		if isDuplicateKey(err) {
			return domain.ErrDuplicateListName
		}
		return err
	}
	l.ID = m.ID
	return nil
}

// Update saves every mutable column of the list.
func (r *listPostgres) Update(ctx context.Context, l *entity.List) error {
	res := r.db.WithContext(ctx).Model(&ListModel{}).Where("id = ?", l.ID).Updates(map[string]any{
		"name":        l.Name,
		"description": l.Description,
		"public":      l.Public,
		"deleted":     l.Deleted,
		"updated_utc": l.UpdatedUTC,
	})
	if res.Error != nil {
		if isDuplicateKey(res.Error) {
			return domain.ErrDuplicateListName
		}
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrListNotFound
	}
	return nil
}
