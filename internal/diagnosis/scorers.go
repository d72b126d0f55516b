package diagnosis

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Dimension is the outcome of one scoring axis.
type Dimension struct {
	Score       int      `json:"score"`
	Analysis    string   `json:"analysis"`
	Suggestions []string `json:"suggestions"`
	Warnings    []string `json:"warnings,omitempty"`
}

// hashtagPattern matches hashtag-shaped tokens. \p{L}\p{N} rather than
// \w so CJK tags like #美妆分享 count.
var hashtagPattern = regexp.MustCompile(`#[\p{L}\p{N}_]+`)

// scoreClickRate rates how likely the title is to earn a click.
func scoreClickRate(title string) Dimension {
	score := 70
	var suggestions []string

	titleLen := utf8.RuneCountInString(title)
	if titleLen <= 20 {
		score += 10
	} else {
		suggestions = append(suggestions, "标题建议控制在20字以内，避免被截断")
	}

	// Non-ASCII stands in for emoji/visual markers; it also fires on
	// CJK text, which is the historical behavior scores are calibrated to.
	if hasNonASCII(title) {
		score += 10
	} else {
		suggestions = append(suggestions, "建议添加emoji增强视觉吸引力")
	}

	if containsDigit(title) {
		score += 5
	}

	if containsAny(title, emotionWords) {
		score += 5
	} else {
		suggestions = append(suggestions, "可以尝试加入情绪化词汇提升点击欲")
	}

	lengthVerdict := "符合"
	if titleLen > 20 {
		lengthVerdict = "超出"
	}

	if len(suggestions) == 0 {
		suggestions = []string{"标题吸引力良好，可尝试A/B测试不同版本"}
	}

	return Dimension{
		Score:       clampScore(score),
		Analysis:    fmt.Sprintf("标题长度%d字，%s推荐范围", titleLen, lengthVerdict),
		Suggestions: suggestions,
	}
}

// scoreCompletion rates how likely readers are to finish the body.
func scoreCompletion(body string) Dimension {
	score := 65
	var suggestions []string

	greeted := false
	for _, prefix := range greetingPrefixes {
		if strings.HasPrefix(body, prefix) {
			greeted = true
			break
		}
	}
	if greeted {
		score += 10
	} else {
		suggestions = append(suggestions, "开头建议用亲切的称呼拉近距离")
	}

	paragraphs := splitParagraphs(body)
	switch {
	case len(paragraphs) >= 3 && len(paragraphs) <= 6:
		score += 10
	case len(paragraphs) < 3:
		suggestions = append(suggestions, "正文建议分3-6段，当前段落数偏少")
	default:
		suggestions = append(suggestions, "段落数较多，建议精简内容")
	}

	emojiCount := countNonASCII(body)
	if emojiCount >= 3 {
		score += 10
	} else {
		suggestions = append(suggestions, "建议增加emoji使用，提升阅读体验")
	}

	if containsAny(body, hookWords) {
		score += 5
	} else {
		suggestions = append(suggestions, "正文建议包含具体的技巧或方法")
	}

	if len(suggestions) == 0 {
		suggestions = []string{"正文结构良好，信息密度适中"}
	}

	return Dimension{
		Score:       clampScore(score),
		Analysis:    fmt.Sprintf("正文共%d段，emoji使用%d个", len(paragraphs), emojiCount),
		Suggestions: suggestions,
	}
}

// scoreConversion rates how well the body steers readers to act.
func scoreConversion(body string) Dimension {
	score := 60
	var suggestions []string

	hasCTA := containsAny(body, ctaWords)
	if hasCTA {
		score += 15
	} else {
		suggestions = append(suggestions, "结尾添加明确的行动号召（点赞/收藏/关注）")
	}

	if containsAny(body, trustWords) {
		score += 10
	} else {
		suggestions = append(suggestions, "可以加入信任背书（亲测/真实体验）")
	}

	if containsAny(body, benefitWords) {
		score += 10
	} else {
		suggestions = append(suggestions, "可以加入福利承诺提升转化")
	}

	if containsAny(body, urgencyWords) {
		score += 5
	}

	ctaVerdict := "无"
	if hasCTA {
		ctaVerdict = "有"
	}
	guideVerdict := "需加强"
	if score > 70 {
		guideVerdict = "良好"
	}

	if len(suggestions) == 0 {
		suggestions = []string{"转化引导较好，可测试不同CTA效果"}
	}

	return Dimension{
		Score:       clampScore(score),
		Analysis:    fmt.Sprintf("%s明确CTA，转化引导%s", ctaVerdict, guideVerdict),
		Suggestions: suggestions,
	}
}

// complianceCheck pairs a sensitive-word category with its warning label.
type complianceCheck struct {
	category string
	label    string
}

var complianceChecks = []complianceCheck{
	{"extreme_words", "发现极限词"},
	{"medical_claims", "发现医疗相关词汇"},
	{"false_promises", "发现绝对化用语"},
	{"platform_violations", "发现平台违规词"},
}

// wordSource supplies banned phrases by category name.
type wordSource interface {
	Category(name string) []string
}

// scoreCompliance deducts per banned phrase found, floored at zero.
func scoreCompliance(text string, words wordSource) Dimension {
	score := 95
	var warnings []string

	for _, check := range complianceChecks {
		var found []string
		for _, w := range words.Category(check.category) {
			if w != "" && strings.Contains(text, w) {
				found = append(found, w)
			}
		}
		if len(found) == 0 {
			continue
		}

		score -= len(found) * compliancePenalties[check.category]

		sample := found
		if len(sample) > 3 {
			sample = sample[:3]
		}
		warnings = append(warnings, fmt.Sprintf("%s: %s", check.label, strings.Join(sample, ", ")))
	}

	if score < 0 {
		score = 0
	}

	hit := len(warnings) > 0

	analysisPrefix := "未发现"
	analysisVerdict := "良好"
	if hit {
		analysisPrefix = "发现"
		analysisVerdict = "需优化"
	}

	suggestions := []string{}
	if hit {
		suggestions = []string{"建议替换敏感词，使用更温和的表达"}
	} else {
		warnings = []string{"未发现敏感词，可放心发布"}
	}

	return Dimension{
		Score:       score,
		Analysis:    fmt.Sprintf("%s敏感词，合规性%s", analysisPrefix, analysisVerdict),
		Warnings:    warnings,
		Suggestions: suggestions,
	}
}

// scoreSEO rates keyword coverage and hashtag usage. An empty keyword
// list keeps the neutral base score instead of computing coverage.
func scoreSEO(text string, keywords []string) Dimension {
	score := 70
	var suggestions []string

	if len(keywords) > 0 {
		var matched []string
		for _, k := range keywords {
			if k != "" && strings.Contains(text, k) {
				matched = append(matched, k)
			}
		}

		denom := len(keywords)
		if denom > 10 {
			denom = 10
		}
		coverage := float64(len(matched)) / float64(denom) * 100
		score = int(coverage)

		if coverage < 30 {
			suggestions = append(suggestions, fmt.Sprintf("关键词覆盖率%.0f%%，建议添加更多行业关键词", coverage))
		}

		pool := keywords
		if len(pool) > 20 {
			pool = pool[:20]
		}
		var unused []string
		for _, k := range pool {
			if k != "" && !strings.Contains(text, k) {
				unused = append(unused, k)
			}
		}
		if len(unused) > 0 {
			if len(unused) > 5 {
				unused = unused[:5]
			}
			suggestions = append(suggestions, fmt.Sprintf("推荐添加关键词: %s", strings.Join(unused, ", ")))
		}
	}

	hashtags := hashtagPattern.FindAllString(text, -1)
	if len(hashtags) >= 5 {
		score += 10
	} else {
		suggestions = append(suggestions, fmt.Sprintf("当前话题标签%d个，建议添加至5-8个", len(hashtags)))
	}

	if len(suggestions) == 0 {
		suggestions = []string{"SEO优化良好，搜索可见度高"}
	}

	return Dimension{
		Score:       clampScore(score),
		Analysis:    fmt.Sprintf("关键词覆盖率%d%%，话题标签%d个", score, len(hashtags)),
		Suggestions: suggestions,
	}
}

func clampScore(score int) int {
	if score > 100 {
		return 100
	}
	if score < 0 {
		return 0
	}
	return score
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if w != "" && strings.Contains(s, w) {
			return true
		}
	}
	return false
}

func containsDigit(s string) bool {
	for _, r := range s {
		if unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

func hasNonASCII(s string) bool {
	for _, r := range s {
		if r > 127 {
			return true
		}
	}
	return false
}

func countNonASCII(s string) int {
	n := 0
	for _, r := range s {
		if r > 127 {
			n++
		}
	}
	return n
}

// splitParagraphs splits on blank-line boundaries and drops empty chunks.
func splitParagraphs(body string) []string {
	var out []string
	for _, p := range strings.Split(body, "\n\n") {
		if strings.TrimSpace(p) != "" {
			out = append(out, p)
		}
	}
	return out
}
