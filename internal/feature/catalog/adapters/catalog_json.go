// Package adapters はcatalogフィーチャーのデータソース実装を提供します。
package adapters

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"skinfolio_backend/internal/feature/catalog/domain/entity"
)

// itemRecord はカタログJSONファイルの1要素です。
type itemRecord struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Image string `json:"image"`
}

// JSONCatalog は起動時に一度だけ読み込まれる読み取り専用のアイテム索引です。
// 構築後は変更されないため、複数のgoroutineから同時に利用できます。
type JSONCatalog struct {
	byID  map[int64]entity.Item
	items []entity.Item // sorted by name
	lower []string      // lower-cased names, parallel to items
}

// LoadJSONCatalog はpathのJSON配列からカタログを構築します。
func LoadJSONCatalog(path string) (*JSONCatalog, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	var records []itemRecord
	if err := json.Unmarshal(b, &records); err != nil {
		return nil, fmt.Errorf("failed to decode catalog %s: %w", path, err)
	}

	items := make([]entity.Item, len(records))
	for i, r := range records {
		items[i] = entity.Item{ID: r.ID, Name: r.Name, Image: r.Image}
	}
	return NewCatalog(items)
}

// NewCatalog はIDと名前の一意性を検証して索引を構築します。
func NewCatalog(items []entity.Item) (*JSONCatalog, error) {
	c := &JSONCatalog{byID: make(map[int64]entity.Item, len(items))}
	names := make(map[string]struct{}, len(items))

	for _, it := range items {
		if it.ID <= 0 || strings.TrimSpace(it.Name) == "" {
			return nil, fmt.Errorf("invalid catalog item %d %q", it.ID, it.Name)
		}
		if _, ok := c.byID[it.ID]; ok {
			return nil, fmt.Errorf("duplicate catalog item id %d", it.ID)
		}
		if _, ok := names[it.Name]; ok {
			return nil, fmt.Errorf("duplicate catalog item name %q", it.Name)
		}
		c.byID[it.ID] = it
		names[it.Name] = struct{}{}
		c.items = append(c.items, it)
	}

	sort.Slice(c.items, func(i, j int) bool { return c.items[i].Name < c.items[j].Name })
	c.lower = make([]string, len(c.items))
	for i, it := range c.items {
		c.lower[i] = strings.ToLower(it.Name)
	}
	return c, nil
}

// ItemByID はIDでアイテムを取得します。
func (c *JSONCatalog) ItemByID(id int64) (entity.Item, bool) {
	it, ok := c.byID[id]
	return it, ok
}

// Search は名前に大文字小文字を区別せずqを含むアイテムを名前順で最大limit件返します。
func (c *JSONCatalog) Search(q string, limit int) []entity.Item {
	q = strings.ToLower(strings.TrimSpace(q))
	out := make([]entity.Item, 0, min(limit, len(c.items)))
	for i, name := range c.lower {
		if len(out) == limit {
			break
		}
		if strings.Contains(name, q) {
			out = append(out, c.items[i])
		}
	}
	return out
}

// Len はアイテム数を返します。
func (c *JSONCatalog) Len() int {
	return len(c.items)
}

// Has reports whether id is a known item.
func (c *JSONCatalog) Has(id int64) bool {
	_, ok := c.byID[id]
	return ok
}
