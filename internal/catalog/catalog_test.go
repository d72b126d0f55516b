package catalog

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCatalog = `{
	"categories": {
		"seasonal": {
			"name": "季节热点",
			"icon": "🌸",
			"topics": [
				{
					"id": "spring_sunscreen",
					"name": "春季防晒",
					"keywords": ["防晒", "春季"],
					"heat": 80,
					"suitable_industries": ["beauty"],
					"start_date": "2000-01-01",
					"end_date": "2099-12-31",
					"angles": ["春季防晒误区大盘点", "防晒产品横评"]
				}
			]
		},
		"festival": {
			"name": "节日热点",
			"icon": "🎉",
			"topics": [
				{
					"id": "double11",
					"name": "双11购物节",
					"keywords": ["双11", "购物"],
					"heat": 95,
					"suitable_industries": ["beauty", "fashion", "tech"],
					"start_date": "2000-10-20",
					"end_date": "2099-11-15",
					"angles": ["双11必买清单"]
				}
			]
		}
	}
}`

func TestParse(t *testing.T) {
	cat, err := Parse([]byte(sampleCatalog))
	require.NoError(t, err)

	require.Len(t, cat.Categories, 2)
	// Document order must survive the parse
	assert.Equal(t, "seasonal", cat.Categories[0].ID)
	assert.Equal(t, "festival", cat.Categories[1].ID)
	assert.Equal(t, "季节热点", cat.Categories[0].Name)
	assert.Equal(t, "🎉", cat.Categories[1].Icon)

	topics := cat.Categories[0].Topics
	require.Len(t, topics, 1)
	assert.Equal(t, "spring_sunscreen", topics[0].ID)
	assert.Equal(t, []string{"防晒", "春季"}, topics[0].Keywords)
	assert.Equal(t, 80, topics[0].Heat)
	assert.Equal(t, 2, cat.TopicCount())
}

func TestParse_UnknownTopLevelFields(t *testing.T) {
	doc := `{"version": 2, "meta": {"a": 1}, "categories": {"c1": {"name": "n", "icon": "i", "topics": []}}}`
	cat, err := Parse([]byte(doc))
	require.NoError(t, err)
	require.Len(t, cat.Categories, 1)
	assert.Equal(t, "c1", cat.Categories[0].ID)
}

func TestLoad(t *testing.T) {
	t.Run("valid file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "topics.json")
		require.NoError(t, os.WriteFile(path, []byte(sampleCatalog), 0644))

		cat := Load(path)
		assert.Equal(t, 2, cat.TopicCount())
	})

	t.Run("missing file yields empty catalog", func(t *testing.T) {
		cat := Load(filepath.Join(t.TempDir(), "nope.json"))
		require.NotNil(t, cat)
		assert.Empty(t, cat.Categories)
		assert.Equal(t, 0, cat.TopicCount())
	})

	t.Run("malformed file yields empty catalog", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.json")
		require.NoError(t, os.WriteFile(path, []byte("{{{"), 0644))

		cat := Load(path)
		require.NotNil(t, cat)
		assert.Empty(t, cat.Categories)
	})
}

func TestProjections(t *testing.T) {
	cat, err := Parse([]byte(sampleCatalog))
	require.NoError(t, err)

	t.Run("summaries", func(t *testing.T) {
		sums := cat.Summaries()
		require.Len(t, sums, 2)
		assert.Equal(t, CategorySummary{ID: "seasonal", Name: "季节热点", Icon: "🌸"}, sums[0])
	})

	t.Run("topics by category", func(t *testing.T) {
		topics := cat.TopicsByCategory("festival")
		require.Len(t, topics, 1)
		assert.Equal(t, "double11", topics[0].ID)

		assert.Nil(t, cat.TopicsByCategory("unknown"))
	})

	t.Run("angles", func(t *testing.T) {
		angles := cat.Angles("spring_sunscreen")
		assert.Equal(t, []string{"春季防晒误区大盘点", "防晒产品横评"}, angles)

		assert.Empty(t, cat.Angles("unknown"))
	})
}

func TestActiveAt(t *testing.T) {
	now := time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		topic  Topic
		active bool
	}{
		{
			name:   "inside window",
			topic:  Topic{StartDate: "2026-01-01", EndDate: "2026-12-31"},
			active: true,
		},
		{
			name:   "before window",
			topic:  Topic{StartDate: "2026-07-01", EndDate: "2026-12-31"},
			active: false,
		},
		{
			name:   "after window",
			topic:  Topic{StartDate: "2026-01-01", EndDate: "2026-06-01"},
			active: false,
		},
		{
			name:   "missing bounds default wide",
			topic:  Topic{},
			active: true,
		},
		{
			name:   "unparsable start fails open",
			topic:  Topic{StartDate: "soon", EndDate: "2020-01-01"},
			active: true,
		},
		{
			name:   "unparsable end fails open",
			topic:  Topic{StartDate: "2030-01-01", EndDate: "later"},
			active: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.active, tt.topic.ActiveAt(now))
		})
	}
}
