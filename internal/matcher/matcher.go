package matcher

import (
	"sort"
	"strings"
	"sync/atomic"
	"time"

	"github.com/yimeji/redcopy/internal/catalog"
)

const (
	// maxMatchedKeywords caps the keywords reported per result.
	maxMatchedKeywords = 8

	// perKeywordScore is the relevance contribution of one matched
	// keyword, capped at baseScoreCap before the heat bonus.
	perKeywordScore = 22.0
	baseScoreCap    = 70.0

	// heatBonusWeight scales the topic's 0-100 heat into the score.
	heatBonusWeight = 30.0
)

// industryAliases folds legacy industry tags in topic data onto the
// canonical industry ids.
var industryAliases = map[string]string{
	"skincare":      "beauty",
	"health":        "fitness",
	"lifestyle":     "home",
	"entertainment": "fashion",
}

// Result is one ranked topic match.
type Result struct {
	Topic           catalog.Topic `json:"topic"`
	RelevanceScore  float64       `json:"relevance_score"`
	MatchedKeywords []string      `json:"matched_keywords"`
	SuggestedAngle  string        `json:"suggested_angle"`
}

// Config holds configuration for the matcher.
type Config struct {
	// Catalog supplies the hot-topic catalog. Invoked once at
	// construction and again on every Reload. Nil means an empty
	// catalog.
	Catalog func() *catalog.Catalog

	// Now is the clock used for validity windows (default: time.Now).
	Now func() time.Time
}

// Matcher ranks catalogued hot topics against free-text input. Match is
// a pure read over an immutable snapshot and safe for concurrent use;
// Reload swaps the snapshot atomically.
type Matcher struct {
	cfg  Config
	now  func() time.Time
	snap atomic.Pointer[catalog.Catalog]
}

// New creates a matcher and loads the initial catalog snapshot.
func New(cfg Config) *Matcher {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	m := &Matcher{cfg: cfg, now: now}
	m.Reload()
	return m
}

// Reload re-invokes the catalog provider and swaps in the fresh catalog.
func (m *Matcher) Reload() {
	var cat *catalog.Catalog
	if m.cfg.Catalog != nil {
		cat = m.cfg.Catalog()
	}
	if cat == nil {
		cat = &catalog.Catalog{}
	}
	m.snap.Store(cat)
}

// Catalog returns the current catalog snapshot.
func (m *Matcher) Catalog() *catalog.Catalog {
	return m.snap.Load()
}

// Match returns up to topK topics relevant to the input, ranked by
// relevance descending. Ties keep catalog order. Topics with no keyword
// overlap are excluded entirely, so an unmatched input yields an empty
// list, never an error.
func (m *Matcher) Match(input, industryID string, topK int) []Result {
	if topK <= 0 {
		return nil
	}

	text := strings.ToLower(strings.TrimSpace(input))
	now := m.now()

	var results []Result
	for _, cat := range m.snap.Load().Categories {
		for _, topic := range cat.Topics {
			if !suitableFor(topic.SuitableIndustries, industryID) {
				continue
			}
			if !topic.ActiveAt(now) {
				continue
			}

			matched, score := relevance(text, topic.Keywords, topic.Heat)
			if score <= 0 {
				continue
			}

			results = append(results, Result{
				Topic:           topic,
				RelevanceScore:  score,
				MatchedKeywords: matched,
				SuggestedAngle:  firstAngle(topic),
			})
		}
	}

	// Stable sort keeps catalog encounter order on equal scores.
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].RelevanceScore > results[j].RelevanceScore
	})

	if len(results) > topK {
		results = results[:topK]
	}
	return results
}

// suitableFor reports whether industryID is in the topic's normalized
// industry allowlist. An empty allowlist matches no industry.
func suitableFor(industries []string, industryID string) bool {
	for _, raw := range industries {
		s := strings.ToLower(strings.TrimSpace(raw))
		if s == "" {
			continue
		}
		if alias, ok := industryAliases[s]; ok {
			s = alias
		}
		if s == industryID {
			return true
		}
	}
	return false
}

// relevance scores keyword overlap between the normalized input and a
// topic's keywords. Matched keywords keep their configured case and are
// capped at maxMatchedKeywords; zero matches score zero.
func relevance(text string, keywords []string, heat int) ([]string, float64) {
	if text == "" || len(keywords) == 0 {
		return nil, 0
	}

	var matched []string
	for _, kw := range keywords {
		k := strings.ToLower(strings.TrimSpace(kw))
		if k == "" {
			continue
		}
		if strings.Contains(text, k) {
			matched = append(matched, kw)
		}
	}

	if len(matched) == 0 {
		return nil, 0
	}

	base := float64(len(matched)) * perKeywordScore
	if base > baseScoreCap {
		base = baseScoreCap
	}
	heatBonus := float64(heat) / 100.0 * heatBonusWeight

	score := base + heatBonus
	if score > 100 {
		score = 100
	}

	if len(matched) > maxMatchedKeywords {
		matched = matched[:maxMatchedKeywords]
	}
	return matched, score
}

func firstAngle(topic catalog.Topic) string {
	if len(topic.Angles) == 0 {
		return ""
	}
	return topic.Angles[0]
}
