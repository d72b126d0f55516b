package diagnosis

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yimeji/redcopy/internal/wordlist"
)

type stubKeywords map[string][]string

func (s stubKeywords) Keywords(industryID string) []string {
	return s[industryID]
}

func testEngine(set *wordlist.Set, keywords stubKeywords) *Engine {
	return New(Config{
		Words:    func() *wordlist.Set { return set },
		Keywords: keywords,
	})
}

func TestDiagnose(t *testing.T) {
	engine := testEngine(
		&wordlist.Set{ExtremeWords: []string{"绝对"}},
		stubKeywords{"beauty": {"口红", "防晒", "粉底"}},
	)

	t.Run("empty title is rejected", func(t *testing.T) {
		_, err := engine.Diagnose("", "anything", "beauty")
		assert.ErrorIs(t, err, ErrEmptyTitle)

		_, err = engine.Diagnose("   ", "anything", "beauty")
		assert.ErrorIs(t, err, ErrEmptyTitle)
	})

	t.Run("empty body still produces a report", func(t *testing.T) {
		report, err := engine.Diagnose("标题", "", "beauty")
		require.NoError(t, err)
		assert.Len(t, report.Dimensions, 5)
	})

	t.Run("report has the five fixed dimensions", func(t *testing.T) {
		report, err := engine.Diagnose("3支口红测评", "正文内容", "beauty")
		require.NoError(t, err)

		for _, name := range DimensionOrder {
			_, ok := report.Dimensions[name]
			assert.True(t, ok, "missing dimension %s", name)
		}
	})

	t.Run("overall is the floored mean", func(t *testing.T) {
		report, err := engine.Diagnose("3支口红测评", "姐妹们，点赞收藏\n\n亲测分享\n\n送福利", "beauty")
		require.NoError(t, err)

		total := 0
		for _, d := range report.Dimensions {
			total += d.Score
		}
		assert.Equal(t, total/5, report.OverallScore)
	})

	t.Run("scores stay within bounds", func(t *testing.T) {
		inputs := []struct{ title, body, industry string }{
			{"t", "", ""},
			{"3支黄皮素颜口红！显白不挑皮", "姐妹们好\n\n技巧分享\n\n点赞收藏 #美妆 #口红 #测评 #分享 #护肤", "beauty"},
			{strings.Repeat("超长标题", 20), strings.Repeat("绝对", 50), "beauty"},
			{"plain", "plain body", "unknown-industry"},
		}

		for _, in := range inputs {
			report, err := engine.Diagnose(in.title, in.body, in.industry)
			require.NoError(t, err)

			assert.GreaterOrEqual(t, report.OverallScore, 0)
			assert.LessOrEqual(t, report.OverallScore, 100)
			for name, d := range report.Dimensions {
				assert.GreaterOrEqual(t, d.Score, 0, "dimension %s", name)
				assert.LessOrEqual(t, d.Score, 100, "dimension %s", name)
			}
		}
	})

	t.Run("unknown industry means no seo keywords", func(t *testing.T) {
		report, err := engine.Diagnose("标题", "正文", "does-not-exist")
		require.NoError(t, err)
		// No keyword suggestions, only the hashtag one on the base score
		assert.Equal(t, 70, report.Dimensions["seo"].Score)
	})

	t.Run("sensitive words hit compliance via title and body", func(t *testing.T) {
		report, err := engine.Diagnose("绝对好用", "正文", "beauty")
		require.NoError(t, err)
		assert.Equal(t, 85, report.Dimensions["compliance"].Score)
	})
}

func TestImprovedVersion(t *testing.T) {
	t.Run("caps at five numbered items", func(t *testing.T) {
		dims := map[string]Dimension{}
		for _, name := range DimensionOrder {
			dims[name] = Dimension{Suggestions: []string{name + "-1", name + "-2", name + "-3"}}
		}

		note := improvedVersion(dims)
		assert.True(t, strings.HasPrefix(note, "优化建议："))
		assert.Contains(t, note, "1. click_rate-1")
		assert.Contains(t, note, "5. conversion-1")
		assert.NotContains(t, note, "click_rate-3", "at most two per dimension")
		assert.NotContains(t, note, "6. ")
	})

	t.Run("fixed dimension order", func(t *testing.T) {
		dims := map[string]Dimension{
			"seo":             {Suggestions: []string{"seo-s"}},
			"click_rate":      {Suggestions: []string{"click-s"}},
			"completion_rate": {},
			"conversion":      {},
			"compliance":      {},
		}

		note := improvedVersion(dims)
		assert.Equal(t, "优化建议：\n1. click-s\n2. seo-s", note)
	})

	t.Run("no suggestions yields the all-clear message", func(t *testing.T) {
		dims := map[string]Dimension{}
		for _, name := range DimensionOrder {
			dims[name] = Dimension{}
		}
		assert.Equal(t, "文案质量良好，暂无优化建议", improvedVersion(dims))
	})
}

func TestReload(t *testing.T) {
	current := &wordlist.Set{}
	engine := New(Config{
		Words: func() *wordlist.Set { return current },
	})

	report, err := engine.Diagnose("标题内容", "绝对有效", "any")
	require.NoError(t, err)
	assert.Equal(t, 95, report.Dimensions["compliance"].Score)

	current = &wordlist.Set{ExtremeWords: []string{"绝对"}}
	engine.Reload()

	report, err = engine.Diagnose("标题内容", "绝对有效", "any")
	require.NoError(t, err)
	assert.Equal(t, 85, report.Dimensions["compliance"].Score)
}

func TestNewWithNilProviders(t *testing.T) {
	engine := New(Config{})
	report, err := engine.Diagnose("标题", "正文", "beauty")
	require.NoError(t, err)
	assert.Equal(t, 95, report.Dimensions["compliance"].Score)
	assert.Equal(t, 70, report.Dimensions["seo"].Score)
}
