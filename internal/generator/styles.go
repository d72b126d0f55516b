package generator

import "strings"

// Style ids. A style is the persona the copy is written in.
const (
	StyleBestie = "bestie" // 闺蜜分享
	StylePro    = "pro"    // 专业测评
	StyleNotes  = "notes"  // 学霸笔记
	StyleRoast  = "roast"  // 吐槽避雷
	StyleWarm   = "warm"   // 温柔治愈
	StyleCoach  = "coach"  // 自律教练
)

var styleLabels = map[string]string{
	StyleBestie: "闺蜜分享",
	StylePro:    "专业测评",
	StyleNotes:  "学霸笔记",
	StyleRoast:  "吐槽避雷",
	StyleWarm:   "温柔治愈",
	StyleCoach:  "自律教练",
}

// defaultStyles maps each industry to its house persona.
var defaultStyles = map[string]string{
	"beauty":    StyleBestie,
	"fashion":   StyleBestie,
	"food":      StyleBestie,
	"travel":    StyleNotes,
	"education": StyleNotes,
	"career":    StylePro,
	"parenting": StyleWarm,
	"home":      StyleWarm,
	"fitness":   StyleCoach,
	"tech":      StylePro,
}

// styleHints maps literal hint strings to style ids.
var styleHints = map[string]string{
	"bestie":     StyleBestie,
	"girlfriend": StyleBestie,
	"pro":        StylePro,
	"review":     StylePro,
	"notes":      StyleNotes,
	"study":      StyleNotes,
	"roast":      StyleRoast,
	"warm":       StyleWarm,
	"coach":      StyleCoach,
	"闺蜜":         StyleBestie,
	"闺蜜风":        StyleBestie,
	"专业":         StylePro,
	"专业测评":       StylePro,
	"测评":         StylePro,
	"学霸":         StyleNotes,
	"笔记":         StyleNotes,
	"学霸笔记":       StyleNotes,
	"吐槽":         StyleRoast,
	"吐槽避雷":       StyleRoast,
	"避雷":         StyleRoast,
	"温柔":         StyleWarm,
	"治愈":         StyleWarm,
	"教练":         StyleCoach,
	"打卡":         StyleCoach,
}

// styleKeywordGroups fall back on fuzzy hint matching when no literal
// hint applies. Order matters: first group with a hit wins.
var styleKeywordGroups = []struct {
	style    string
	keywords []string
}{
	{StylePro, []string{"专业", "测评", "理性", "参数", "对比"}},
	{StyleNotes, []string{"学霸", "笔记", "干货", "公式", "步骤"}},
	{StyleRoast, []string{"吐槽", "避雷", "别买", "千万别", "坑"}},
	{StyleWarm, []string{"温柔", "治愈", "松弛", "生活感"}},
	{StyleCoach, []string{"教练", "打卡", "训练", "自律", "坚持"}},
	{StyleBestie, []string{"闺蜜", "姐妹", "安利", "种草"}},
}

// DefaultStyle returns the house persona for an industry.
func DefaultStyle(industryID string) string {
	if s, ok := defaultStyles[industryID]; ok {
		return s
	}
	return StyleBestie
}

// ResolveStyle maps a user hint to a style id, or "" when nothing
// matches.
func ResolveStyle(hint string) string {
	raw := strings.TrimSpace(hint)
	if raw == "" {
		return ""
	}

	lower := strings.ToLower(raw)
	if s, ok := styleHints[lower]; ok {
		return s
	}
	if s, ok := styleHints[raw]; ok {
		return s
	}

	for _, group := range styleKeywordGroups {
		for _, kw := range group.keywords {
			if strings.Contains(raw, kw) {
				return group.style
			}
		}
	}

	return ""
}

// StyleLabel returns the human label for a style id, falling back to
// the id itself.
func StyleLabel(styleID string) string {
	if label, ok := styleLabels[styleID]; ok {
		return label
	}
	return styleID
}
