package table

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/asaidimu/go-datagrid/core/record"
	"github.com/asaidimu/go-datagrid/core/rules"
)

func newSearchStage(t *testing.T) *SearchStage {
	t.Helper()
	stage, err := NewSearchStage(rules.NewCatalog(nil), rules.SearchConfig{
		QueryField: "q",
		Fields:     []string{"customer", "date"},
	})
	assert.NoError(t, err)
	return stage
}

func searchData() []record.Record {
	return []record.Record{
		{"customer": "Ann", "date": "2024-01-01", "total": 100},
		{"customer": "Bob", "date": "2024-02-01", "total": 50},
		{"customer": "Annabel", "date": "2023-12-24", "total": 75},
	}
}

func TestSearchStage_EmptyQueryIsIdentity(t *testing.T) {
	stage := newSearchStage(t)
	data := searchData()

	rows, err := stage.Apply(data, record.Criteria{"q": ""})
	assert.NoError(t, err)
	assert.Equal(t, data, rows, "order and membership preserved")
}

func TestSearchStage_MultiFieldMatch(t *testing.T) {
	stage := newSearchStage(t)
	data := searchData()

	t.Run("case-insensitive substring in any configured field", func(t *testing.T) {
		rows, err := stage.Apply(data, record.Criteria{"q": "ann"})
		assert.NoError(t, err)
		assert.Len(t, rows, 2)
		assert.Equal(t, "Ann", rows[0]["customer"])
		assert.Equal(t, "Annabel", rows[1]["customer"])
	})

	t.Run("match on a non-customer field", func(t *testing.T) {
		rows, err := stage.Apply(data, record.Criteria{"q": "2023"})
		assert.NoError(t, err)
		assert.Len(t, rows, 1)
		assert.Equal(t, "Annabel", rows[0]["customer"])
	})

	t.Run("absent from all fields excludes the record", func(t *testing.T) {
		rows, err := stage.Apply(data, record.Criteria{"q": "zzz"})
		assert.NoError(t, err)
		assert.Empty(t, rows)
	})

	t.Run("query matches as a whole, not word by word", func(t *testing.T) {
		rows, err := stage.Apply(data, record.Criteria{"q": "zzz anna"})
		assert.NoError(t, err)
		assert.Empty(t, rows, "no field contains the full query")

		rows, err = stage.Apply(data, record.Criteria{"q": "nnabe"})
		assert.NoError(t, err)
		assert.Len(t, rows, 1)
		assert.Equal(t, "Annabel", rows[0]["customer"])
	})

	t.Run("unconfigured fields are not searched", func(t *testing.T) {
		rows, err := stage.Apply(data, record.Criteria{"q": "100"})
		assert.NoError(t, err)
		assert.Empty(t, rows)
	})
}

func TestSearchStage_IgnoresFilterCriteria(t *testing.T) {
	stage := newSearchStage(t)
	data := searchData()

	rows, err := stage.Apply(data, record.Criteria{"q": "", "customer": "Bob", "total": []any{10, 20}})
	assert.NoError(t, err)
	assert.Len(t, rows, 3, "search never rejects rows on filter input")
}
