package enhancer

import (
	"fmt"
	"strings"
)

const promptHeader = `你是中文小红书（XHS）爆款文案编辑。
任务：在不改变主题与人设风格的前提下，提升点击/完读/收藏/转化。

【硬性要求】
- 只输出一个 JSON 对象（不要任何解释、不要 markdown）。
- JSON 键：title, full_content, hashtags。
- title：<=20字，避免空泛词与占位符。
- full_content：只写正文（不含标题行），结构为：开头1段 + 正文3-6段 + CTA1段 + 最后一行话题标签。
- emoji：适中，只放在段首；不要每句都加。
- 合规：避免绝对化/虚假功效/医疗承诺/引战。
- hashtags：数组，3-10个，元素形如 '#xxx'；full_content 最后一行把这些 hashtags 用空格拼起来。

`

// buildPrompt assembles the single-turn editing prompt. Optional meta
// lines are only emitted when present.
func buildPrompt(draft Draft, meta Meta) string {
	var sb strings.Builder
	sb.WriteString(promptHeader)

	industryName := meta.IndustryName
	if industryName == "" {
		industryName = meta.IndustryID
	}
	fmt.Fprintf(&sb, "【元信息】\n行业: %s (%s)\n主题: %s\n风格人设: %s\n",
		industryName, meta.IndustryID, meta.Topic, meta.StyleLabel)
	if angle := strings.TrimSpace(meta.HotAngle); angle != "" {
		fmt.Fprintf(&sb, "借势角度: %s\n", angle)
	}
	if angle := strings.TrimSpace(meta.IdeaAngle); angle != "" {
		fmt.Fprintf(&sb, "选题角度: %s\n", angle)
	}
	if title := strings.TrimSpace(meta.IdeaTitle); title != "" {
		fmt.Fprintf(&sb, "选题标题: %s\n", title)
	}
	sb.WriteString("\n【草稿（请优化）】\n")

	if title := strings.TrimSpace(draft.Title); title != "" {
		fmt.Fprintf(&sb, "草稿标题: %s\n", title)
	}
	if tags := joinHashtags(draft.Hashtags); tags != "" {
		fmt.Fprintf(&sb, "草稿标签: %s\n", tags)
	}
	sb.WriteString("草稿正文:\n")
	sb.WriteString(draft.FullContent)

	return sb.String()
}

func joinHashtags(tags []string) string {
	parts := make([]string, 0, len(tags))
	for _, tag := range tags {
		if ts := strings.TrimSpace(tag); ts != "" {
			parts = append(parts, ts)
		}
	}
	return strings.Join(parts, " ")
}
