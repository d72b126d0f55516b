package diagnosis

import (
	"errors"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/yimeji/redcopy/internal/wordlist"
)

// ErrEmptyTitle is returned when the trimmed title is empty. It is the
// only input condition Diagnose refuses; everything else produces a
// (possibly low-scoring) report.
var ErrEmptyTitle = errors.New("title is empty")

// DimensionOrder is the fixed order dimensions are reported and their
// suggestions aggregated in.
var DimensionOrder = []string{
	"click_rate",
	"completion_rate",
	"conversion",
	"compliance",
	"seo",
}

// Report is a full five-dimension diagnosis.
type Report struct {
	OverallScore    int                  `json:"overall_score"`
	Dimensions      map[string]Dimension `json:"dimensions"`
	ImprovedVersion string               `json:"improved_version"`
}

// KeywordSource supplies SEO keywords per industry. Unknown industry ids
// must yield an empty list, not an error.
type KeywordSource interface {
	Keywords(industryID string) []string
}

// Config wires the engine's data providers.
type Config struct {
	// Words supplies the sensitive-word set. Invoked once at
	// construction and again on every Reload. Nil means an empty set.
	Words func() *wordlist.Set

	// Keywords supplies industry SEO keywords. Nil means no keywords
	// for any industry.
	Keywords KeywordSource
}

// Engine runs the five dimension scorers over loaded, immutable data.
// Diagnose is safe for concurrent use; Reload swaps the word snapshot
// atomically so in-flight calls keep a consistent view.
type Engine struct {
	cfg   Config
	words atomic.Pointer[wordlist.Set]
}

// New creates an engine and loads the initial snapshot.
func New(cfg Config) *Engine {
	e := &Engine{cfg: cfg}
	e.Reload()
	return e
}

// Reload re-invokes the word provider and swaps in the fresh set.
func (e *Engine) Reload() {
	var set *wordlist.Set
	if e.cfg.Words != nil {
		set = e.cfg.Words()
	}
	if set == nil {
		set = &wordlist.Set{}
	}
	e.words.Store(set)
}

// Diagnose scores title and body on all five dimensions.
func (e *Engine) Diagnose(title, body, industryID string) (*Report, error) {
	if strings.TrimSpace(title) == "" {
		return nil, ErrEmptyTitle
	}

	fullText := title + " " + body

	var keywords []string
	if e.cfg.Keywords != nil {
		keywords = e.cfg.Keywords.Keywords(industryID)
	}

	dimensions := map[string]Dimension{
		"click_rate":      scoreClickRate(title),
		"completion_rate": scoreCompletion(body),
		"conversion":      scoreConversion(body),
		"compliance":      scoreCompliance(fullText, e.words.Load()),
		"seo":             scoreSEO(fullText, keywords),
	}

	total := 0
	for _, d := range dimensions {
		total += d.Score
	}

	return &Report{
		OverallScore:    total / len(dimensions),
		Dimensions:      dimensions,
		ImprovedVersion: improvedVersion(dimensions),
	}, nil
}

// improvedVersion condenses up to two suggestions per dimension, in
// fixed dimension order, into a numbered note capped at five items.
func improvedVersion(dimensions map[string]Dimension) string {
	var suggestions []string
	for _, name := range DimensionOrder {
		dim := dimensions[name]
		take := dim.Suggestions
		if len(take) > 2 {
			take = take[:2]
		}
		suggestions = append(suggestions, take...)
	}

	if len(suggestions) == 0 {
		return "文案质量良好，暂无优化建议"
	}
	if len(suggestions) > 5 {
		suggestions = suggestions[:5]
	}

	var b strings.Builder
	b.WriteString("优化建议：")
	for i, s := range suggestions {
		b.WriteString(fmt.Sprintf("\n%d. %s", i+1, s))
	}
	return b.String()
}
