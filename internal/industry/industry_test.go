package industry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeIndustry(t *testing.T, dir, file, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, file), []byte(content), 0644))
}

func testDirectory(t *testing.T) *Directory {
	t.Helper()
	dir := t.TempDir()
	writeIndustry(t, dir, "beauty.json", `{
		"id": "beauty",
		"name": "美妆",
		"icon": "💄",
		"keywords": ["口红", "防晒", "粉底", "精华"],
		"hashtags": ["#美妆分享", "#护肤"],
		"emojis": ["💄", "✨"],
		"formulas": ["number_list"]
	}`)
	writeIndustry(t, dir, "tech.json", `{
		"id": "tech",
		"name": "数码科技",
		"icon": "📱",
		"keywords": ["手机", "电脑", "耳机"],
		"hashtags": ["#数码"],
		"emojis": ["📱"]
	}`)
	writeIndustry(t, dir, "template.json", `{"id": "SHOULD_NOT_LOAD"}`)
	return LoadDirectory(dir, "beauty")
}

func TestLoadDirectory(t *testing.T) {
	d := testDirectory(t)

	assert.Equal(t, 2, d.Len())

	ind, ok := d.Get("beauty")
	require.True(t, ok)
	assert.Equal(t, "美妆", ind.Name)
	assert.Len(t, ind.Keywords, 4)

	_, ok = d.Get("SHOULD_NOT_LOAD")
	assert.False(t, ok, "template.json must be skipped")

	// Stable filename order
	all := d.All()
	require.Len(t, all, 2)
	assert.Equal(t, "beauty", all[0].ID)
	assert.Equal(t, "tech", all[1].ID)
}

func TestLoadDirectory_MissingDir(t *testing.T) {
	d := LoadDirectory(filepath.Join(t.TempDir(), "nope"), "beauty")
	require.NotNil(t, d)
	assert.Equal(t, 0, d.Len())
	assert.Nil(t, d.Keywords("beauty"))
}

func TestLoadDirectory_BadFiles(t *testing.T) {
	dir := t.TempDir()
	writeIndustry(t, dir, "bad.json", `{broken`)
	writeIndustry(t, dir, "noid.json", `{"name": "无ID"}`)
	writeIndustry(t, dir, "ok.json", `{"id": "food", "name": "美食"}`)

	d := LoadDirectory(dir, "food")
	assert.Equal(t, 1, d.Len())
	_, ok := d.Get("food")
	assert.True(t, ok)
}

func TestKeywords(t *testing.T) {
	d := testDirectory(t)

	assert.Equal(t, []string{"口红", "防晒", "粉底", "精华"}, d.Keywords("beauty"))
	assert.Empty(t, d.Keywords("unknown"), "unknown industry yields empty keywords")
}

func TestDefault(t *testing.T) {
	d := testDirectory(t)
	assert.Equal(t, "beauty", d.Default())

	dir := t.TempDir()
	writeIndustry(t, dir, "tech.json", `{"id": "tech", "name": "数码"}`)
	d2 := LoadDirectory(dir, "missing")
	assert.Equal(t, "beauty", d2.Default(), "unloaded default falls back to beauty")
}

func TestResolveHint(t *testing.T) {
	d := testDirectory(t)

	tests := []struct {
		hint string
		want string
	}{
		{"beauty", "beauty"},
		{"BEAUTY", "beauty"},
		{"美妆", "beauty"},
		{"护肤", "beauty"},
		{"数码", "tech"},
		{"手机", "tech"},
		{"数码科技", "tech"}, // name match
		{"美食", ""},         // alias target not loaded
		{"nonsense", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.hint, func(t *testing.T) {
			assert.Equal(t, tt.want, d.ResolveHint(tt.hint))
		})
	}
}

func TestAutoDetect(t *testing.T) {
	d := testDirectory(t)

	assert.Equal(t, "tech", d.AutoDetect("新手机和耳机怎么选"))
	assert.Equal(t, "beauty", d.AutoDetect("春季防晒口红推荐"))
	assert.Equal(t, "beauty", d.AutoDetect("完全无关的主题"), "zero hits falls back to default")
	assert.Equal(t, "beauty", d.AutoDetect("  "), "blank input falls back to default")
}
