package wordlist

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("valid file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "words.json")
		content := `{
			"extreme_words": ["最", "第一"],
			"medical_claims": ["治愈"],
			"false_promises": ["绝对"],
			"platform_violations": ["加微信"]
		}`
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))

		set := Load(path)
		assert.Equal(t, []string{"最", "第一"}, set.ExtremeWords)
		assert.Equal(t, []string{"治愈"}, set.MedicalClaims)
		assert.Equal(t, []string{"绝对"}, set.FalsePromises)
		assert.Equal(t, []string{"加微信"}, set.PlatformViolations)
		assert.False(t, set.Empty())
	})

	t.Run("missing file returns empty set", func(t *testing.T) {
		set := Load(filepath.Join(t.TempDir(), "nope.json"))
		require.NotNil(t, set)
		assert.True(t, set.Empty())
	})

	t.Run("malformed file returns empty set", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.json")
		require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

		set := Load(path)
		require.NotNil(t, set)
		assert.True(t, set.Empty())
	})

	t.Run("missing categories default to empty", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "partial.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"extreme_words": ["最"]}`), 0644))

		set := Load(path)
		assert.Len(t, set.ExtremeWords, 1)
		assert.Empty(t, set.MedicalClaims)
		assert.Empty(t, set.PlatformViolations)
	})
}

func TestCategory(t *testing.T) {
	set := &Set{
		ExtremeWords:       []string{"a"},
		MedicalClaims:      []string{"b"},
		FalsePromises:      []string{"c"},
		PlatformViolations: []string{"d"},
	}

	assert.Equal(t, []string{"a"}, set.Category(CategoryExtreme))
	assert.Equal(t, []string{"b"}, set.Category(CategoryMedical))
	assert.Equal(t, []string{"c"}, set.Category(CategoryFalse))
	assert.Equal(t, []string{"d"}, set.Category(CategoryPlatform))
	assert.Nil(t, set.Category("unknown"))
}
