package generator

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/yimeji/redcopy/internal/industry"
)

var (
	leftoverPlaceholders = regexp.MustCompile(`\{[^}]+\}`)
	multiPipe            = regexp.MustCompile(`\|{2,}`)
	multiFullPipe        = regexp.MustCompile(`｜{2,}`)
)

// titleAudiences names the reader a title should speak to, per
// industry.
var titleAudiences = map[string]string{
	"beauty":    "黄皮",
	"fashion":   "小个子",
	"food":      "吃货",
	"travel":    "第一次去的你",
	"education": "零基础",
	"career":    "打工人",
	"parenting": "新手爸妈",
	"home":      "租房党",
	"fitness":   "小基数",
	"tech":      "新手",
}

// renderTitle fills a formula template's {placeholder} slots. Slots
// with no known value are stripped, then pipe separators are
// normalized to the full-width ｜ the platform favors.
func (g *Generator) renderTitle(template string, idea Idea, ind industry.Industry, industryID, topic string) string {
	audience, ok := titleAudiences[industryID]
	if !ok {
		audience = "新手"
	}

	snippet := firstRunes(idea.Title, 6)
	if snippet == "" {
		snippet = firstRunes(topic, 6)
	}

	// Ordered so nested braces never bite and output stays stable for
	// a given random source.
	replacements := []struct{ key, value string }{
		{"稀缺身份", g.pick([]string{"内部员工", "柜姐", "教练", "HR", "本地人", "过来人"})},
		{"秘密", g.pick([]string{"技巧", "清单", "秘诀", "方法", "避坑"})},
		{"数字", strconv.Itoa(3 + g.rng.Intn(8))},
		{"内容类型", snippet},
		{"内容", snippet},
		{"价值点", "超实用"},
		{"价值", "超实用"},
		{"痛点", "困扰很久"},
		{"解决方案", "这套方法"},
		{"效果", "真的有用"},
		{"Before", "月薪3k"},
		{"After", "月薪3w"},
		{"转折内容", "我的实操方法"},
		{"疑问词", "为什么"},
		{"人群", audience},
		{"秘密行为", fmt.Sprintf("都在用%s", topic)},
		{"警示词", "千万别"},
		{"产品", topic},
		{"时间", g.pick([]string{"3分钟", "5分钟", "10分钟", "7天"})},
		{"技能", topic},
		{"年龄", g.pick([]string{"25岁", "30岁", "35岁"})},
		{"真相", g.pick([]string{"干货", "套路", "真相", "方法"})},
		{"测评类型", g.pick([]string{"横向测评", "真实测评", "深度测评"})},
		{"年份", strconv.Itoa(time.Now().Year())},
		{"时间跨度", g.pick([]string{"7天", "30天", "一周"})},
		{"转折", g.pick([]string{"第3天就破功了", "结果出乎意料", "我真的震惊了"})},
		{"福利提示", g.pick([]string{"免费领取", "限时分享", "福利整理"})},
		{"方向", g.pick([]string{"穿搭", "妆容", "效率", "拍照"})},
		{"趋势", g.pick([]string{"真的回潮了", "太适合通勤了", "普通人也能学"})},
		{"热点IP", "热播剧"},
	}

	t := template
	for _, r := range replacements {
		t = strings.ReplaceAll(t, "{"+r.key+"}", r.value)
	}

	t = leftoverPlaceholders.ReplaceAllString(t, "")
	t = strings.TrimSpace(strings.ReplaceAll(t, "  ", " "))
	t = multiPipe.ReplaceAllString(t, "|")
	t = strings.ReplaceAll(t, "|", "｜")
	t = multiFullPipe.ReplaceAllString(t, "｜")
	t = strings.Trim(t, "｜ ")

	if t == "" {
		t = fmt.Sprintf("%s｜%s干货", topic, ind.Name)
	}

	return t
}

func firstRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
