package adapters

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skinfolio_backend/internal/feature/catalog/domain/entity"
)

func writeCatalog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "items.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadJSONCatalog(t *testing.T) {
	t.Parallel()

	path := writeCatalog(t, `[
		{"id": 2, "name": "AWP | Asiimov (Field-Tested)", "image": "https://img/2.png"},
		{"id": 1, "name": "AK-47 | Redline (Field-Tested)", "image": "https://img/1.png"}
	]`)

	c, err := LoadJSONCatalog(path)
	require.NoError(t, err)

	assert.Equal(t, 2, c.Len())
	it, ok := c.ItemByID(2)
	require.True(t, ok)
	assert.Equal(t, entity.Item{ID: 2, Name: "AWP | Asiimov (Field-Tested)", Image: "https://img/2.png"}, it)

	_, ok = c.ItemByID(3)
	assert.False(t, ok)
	assert.True(t, c.Has(1))
	assert.False(t, c.Has(3))
}

func TestLoadJSONCatalog_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
	}{
		{"malformed json", `[{"id": 1,`},
		{"duplicate id", `[{"id": 1, "name": "a"}, {"id": 1, "name": "b"}]`},
		{"duplicate name", `[{"id": 1, "name": "a"}, {"id": 2, "name": "a"}]`},
		{"missing name", `[{"id": 1, "name": " "}]`},
		{"non positive id", `[{"id": 0, "name": "a"}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := LoadJSONCatalog(writeCatalog(t, tt.content))
			assert.Error(t, err)
		})
	}

	_, err := LoadJSONCatalog(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestJSONCatalog_Search(t *testing.T) {
	t.Parallel()

	c, err := NewCatalog([]entity.Item{
		{ID: 1, Name: "AK-47 | Redline (Field-Tested)"},
		{ID: 2, Name: "AWP | Asiimov (Field-Tested)"},
		{ID: 3, Name: "AK-47 | Vulcan (Minimal Wear)"},
		{ID: 4, Name: "Recoil Case"},
	})
	require.NoError(t, err)

	ids := func(items []entity.Item) []int64 {
		out := []int64{}
		for _, it := range items {
			out = append(out, it.ID)
		}
		return out
	}

	tests := []struct {
		name     string
		q        string
		limit    int
		expected []int64
	}{
		{"case insensitive, ordered by name", "ak-47", 50, []int64{1, 3}},
		{"field tested", "FIELD-TESTED", 50, []int64{1, 2}},
		{"limit", "a", 2, []int64{1, 3}},
		{"empty query matches all", "", 50, []int64{1, 3, 2, 4}},
		{"no match", "knife", 50, []int64{}},
		{"zero limit", "a", 0, []int64{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, ids(c.Search(tt.q, tt.limit)))
		})
	}
}
