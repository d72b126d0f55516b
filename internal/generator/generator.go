// Package generator produces complete Xiaohongshu-style drafts offline.
// It walks the same three steps a human copywriter would: pick an
// angle, render a title from a formula, then assemble the post body in
// a chosen persona. All randomness flows through one injectable source
// so callers (and tests) can pin the output.
package generator

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/yimeji/redcopy/internal/industry"
)

// Idea is a content angle proposed for a topic.
type Idea struct {
	ID             int    `json:"id"`
	Title          string `json:"title"`
	Angle          string `json:"angle"`
	TargetAudience string `json:"target_audience"`
	Hook           string `json:"hook"`
}

// TitleOption is one rendered title candidate.
type TitleOption struct {
	ID          int    `json:"id"`
	Text        string `json:"text"`
	Formula     string `json:"formula"`
	FormulaName string `json:"formula_name"`
	Score       int    `json:"score"`
	Why         string `json:"why"`
}

// Copy is a fully assembled post.
type Copy struct {
	Title       string   `json:"title"`
	Opening     string   `json:"opening"`
	Body        string   `json:"body"`
	CTA         string   `json:"cta"`
	Hashtags    []string `json:"hashtags"`
	FullContent string   `json:"full_content"`
}

// Config carries the dependencies for a Generator.
type Config struct {
	Industries *industry.Directory
	Formulas   map[string]Formula
	// Rand is optional. When nil the generator seeds its own source.
	Rand *rand.Rand
}

// Generator assembles drafts from industry profiles and title formulas.
type Generator struct {
	industries *industry.Directory
	formulas   map[string]Formula
	rng        *rand.Rand
}

func New(cfg Config) *Generator {
	rng := cfg.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	formulas := cfg.Formulas
	if formulas == nil {
		formulas = map[string]Formula{}
	}
	return &Generator{
		industries: cfg.Industries,
		formulas:   formulas,
		rng:        rng,
	}
}

// Ideas proposes five angles for a topic: a checklist, a pitfall
// guide, a comparison, a quick tutorial, and a first-hand report.
func (g *Generator) Ideas(topic, industryID string) []Idea {
	keywords := g.industries.Keywords(industryID)

	return []Idea{
		{
			ID:             1,
			Title:          fmt.Sprintf("%s必看清单｜%s推荐", topic, g.pickKeyword(keywords, 10, "精选")),
			Angle:          "清单盘点",
			TargetAudience: "新手入门",
			Hook:           "全面整理，一次搞定",
		},
		{
			ID:             2,
			Title:          fmt.Sprintf("%s避坑指南｜这5个错误千万别犯", topic),
			Angle:          "避坑指南",
			TargetAudience: "避免踩坑",
			Hook:           "血泪教训，帮你省钱",
		},
		{
			ID:             3,
			Title:          fmt.Sprintf("%s对比测评｜%s产品怎么选", topic, g.pickKeyword(keywords, 10, "热门")),
			Angle:          "对比测评",
			TargetAudience: "选择困难症",
			Hook:           "真实测评，不吹不黑",
		},
		{
			ID:             4,
			Title:          fmt.Sprintf("3分钟学会%s｜%s也能快速上手", topic, g.pickKeyword(keywords, 10, "新手")),
			Angle:          "速成教程",
			TargetAudience: "零基础",
			Hook:           "简单易学，快速见效",
		},
		{
			ID:             5,
			Title:          fmt.Sprintf("%s真实体验｜用了一个月后的感受", topic),
			Angle:          "真实体验",
			TargetAudience: "想了解真实效果",
			Hook:           "亲测分享，真实可靠",
		},
	}
}

// Titles renders up to count title candidates from the industry's
// formula pool. Templates whose placeholders cannot all be filled are
// skipped, so fewer than count titles may come back.
func (g *Generator) Titles(idea Idea, industryID string, count int) []TitleOption {
	ind, _ := g.industries.Get(industryID)
	emojis := ind.Emojis
	if len(emojis) == 0 {
		emojis = []string{"✨"}
	}

	pool := dedupe(ind.Formulas)
	if len(pool) == 0 {
		pool = []string{"number_list"}
	}
	g.rng.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})

	titles := make([]TitleOption, 0, count)
	for attempt := 0; len(titles) < count && attempt < len(pool)*2; attempt++ {
		formulaID := pool[attempt%len(pool)]

		formula, ok := g.formulas[formulaID]
		template := formula.Template
		if !ok || template == "" {
			template = "{内容}｜{价值}"
		}

		rendered := g.renderTitle(template, idea, ind, industryID, idea.Title)
		if strings.ContainsAny(rendered, "{}") {
			continue
		}

		if g.rng.Float64() > 0.3 {
			rendered = g.pick(head(emojis, 5)) + rendered
		}

		rendered = strings.TrimSpace(rendered)
		if runes := []rune(rendered); len(runes) > 20 {
			rendered = strings.TrimRight(string(runes[:20]), "｜ ")
		}
		if rendered == "" {
			continue
		}

		titles = append(titles, TitleOption{
			ID:          len(titles) + 1,
			Text:        rendered,
			Formula:     formulaID,
			FormulaName: formula.Name,
			Score:       70 + g.rng.Intn(26),
			Why:         fmt.Sprintf("使用%s，符合%s行业特点", formula.Name, ind.Name),
		})
	}

	return titles
}

// Content assembles the full post for a chosen title and angle.
func (g *Generator) Content(title string, idea Idea, industryID, styleID string) Copy {
	ind, _ := g.industries.Get(industryID)
	emojis := ind.Emojis
	if len(emojis) == 0 {
		emojis = []string{"✨"}
	}
	hashtags := ind.Hashtags
	if len(hashtags) == 0 {
		hashtags = []string{"#分享"}
	}
	keywords := ind.Keywords

	if styleID == "" {
		styleID = DefaultStyle(industryID)
	}

	// Restrained personas use fewer emoji.
	var emojiPool []string
	switch styleID {
	case StylePro, StyleNotes:
		emojiPool = head(emojis, 2)
	case StyleCoach:
		emojiPool = head(emojis, 4)
	default:
		emojiPool = emojis
	}

	ideaTitle := idea.Title
	if ideaTitle == "" {
		ideaTitle = title
	}

	opening := g.pick(g.openings(styleID, ideaTitle, emojiPool))

	k1 := g.pickKeyword(keywords, 30, "重点")
	k2 := g.pickKeyword(keywords, 30, "细节")
	k3 := g.pickKeyword(keywords, 30, "方法")
	paragraphs := g.bodyParagraphs(idea.Angle, title, k1, k2, k3, emojiPool)

	cta := g.pick(g.ctas(styleID, ind.Name, emojiPool))

	selected := g.sample(hashtags, 8)

	body := strings.Join(paragraphs, "\n\n")
	full := fmt.Sprintf("%s\n\n%s\n\n%s\n\n%s", opening, body, cta, strings.Join(selected, " "))

	return Copy{
		Title:       title,
		Opening:     opening,
		Body:        body,
		CTA:         cta,
		Hashtags:    selected,
		FullContent: full,
	}
}

func (g *Generator) openings(styleID, ideaTitle string, emojiPool []string) []string {
	switch styleID {
	case StylePro:
		return []string{
			fmt.Sprintf("%s结论先行：关于「%s」怎么选/怎么做更省心。", g.pick(emojiPool), ideaTitle),
			fmt.Sprintf("%s先说结论：这篇把「%s」按维度讲透。", g.pick(emojiPool), ideaTitle),
			fmt.Sprintf("%s理性测评：围绕「%s」给你可执行的建议。", g.pick(emojiPool), ideaTitle),
		}
	case StyleNotes:
		return []string{
			fmt.Sprintf("%s一页笔记：%s（建议收藏）。", g.pick(emojiPool), ideaTitle),
			fmt.Sprintf("%s干货笔记：%s，照着做就行。", g.pick(emojiPool), ideaTitle),
			fmt.Sprintf("%s学习笔记整理：%s（少走弯路版）。", g.pick(emojiPool), ideaTitle),
		}
	case StyleRoast:
		return []string{
			fmt.Sprintf("%s拜托，%s别再这样做了…真的容易踩雷。", g.pick(emojiPool), ideaTitle),
			fmt.Sprintf("%s我忍不住了：%s这几个坑太多人中招。", g.pick(emojiPool), ideaTitle),
			fmt.Sprintf("%s吐槽归吐槽，但%s按这套做更稳。", g.pick(emojiPool), ideaTitle),
		}
	case StyleWarm:
		return []string{
			fmt.Sprintf("%s温柔提醒：%s其实可以更轻松一点。", g.pick(emojiPool), ideaTitle),
			fmt.Sprintf("%s慢慢来：关于%s，把关键点做好就够了。", g.pick(emojiPool), ideaTitle),
			fmt.Sprintf("%s今天分享一个更不焦虑的版本：%s。", g.pick(emojiPool), ideaTitle),
		}
	case StyleCoach:
		return []string{
			fmt.Sprintf("%s打卡式攻略：%s，按这几步执行。", g.pick(emojiPool), ideaTitle),
			fmt.Sprintf("%s自律但不苦：%s用更稳的方式做。", g.pick(emojiPool), ideaTitle),
			fmt.Sprintf("%s训练思路：关于%s，先把基础做对。", g.pick(emojiPool), ideaTitle),
		}
	default:
		return []string{
			fmt.Sprintf("%s姐妹们，今天把「%s」说清楚！", g.pick(emojiPool), ideaTitle),
			fmt.Sprintf("%s被问爆的「%s」我整理成一篇了！", g.pick(emojiPool), ideaTitle),
			fmt.Sprintf("%s亲测总结：关于「%s」别再乱试了！", g.pick(emojiPool), ideaTitle),
		}
	}
}

func (g *Generator) bodyParagraphs(angle, title, k1, k2, k3 string, emojiPool []string) []string {
	switch angle {
	case "清单盘点":
		return []string{
			fmt.Sprintf("%s1）先看%s：适合什么人、什么场景，一句话就能判断要不要买/做。", g.pick(emojiPool), k1),
			fmt.Sprintf("%s2）再看%s：避开最容易踩雷的点（比如过度/不适合/不匹配）。", g.pick(emojiPool), k2),
			fmt.Sprintf("%s3）最后看%s：用最省事的方式落地（我更推荐先从基础款开始）。", g.pick(emojiPool), k3),
		}
	case "避坑指南":
		return []string{
			fmt.Sprintf("%s坑1：只看热门不看%s → 很容易不适合自己。", g.pick(emojiPool), k1),
			fmt.Sprintf("%s坑2：忽略%s这个条件 → 结果不是没效果就是体验差。", g.pick(emojiPool), k2),
			fmt.Sprintf("%s坑3：步骤顺序错了（先做A再做B）→ 直接白忙。", g.pick(emojiPool)),
			fmt.Sprintf("%s✅正确做法：先确定需求（你最在意什么）→ 再选方案 → 最后复盘调整。", g.pick(emojiPool)),
		}
	case "对比测评":
		return []string{
			fmt.Sprintf("%s对比维度：%s / %s / %s（这3个最影响体验）。", g.pick(emojiPool), k1, k2, k3),
			fmt.Sprintf("%s适合A的人：追求稳定省心；适合B的人：追求强效果但愿意多折腾。", g.pick(emojiPool)),
			fmt.Sprintf("%s我的建议：先选更匹配你的场景（通勤/日常/特殊场合），别被营销带跑。", g.pick(emojiPool)),
		}
	case "速成教程":
		return []string{
			fmt.Sprintf("%sStep 1：先搞清楚你的目标（想要更%s还是更%s）。", g.pick(emojiPool), k1, k2),
			fmt.Sprintf("%sStep 2：只做关键动作：先做1个最有效的步骤，再加1个加分步骤。", g.pick(emojiPool)),
			fmt.Sprintf("%sStep 3：做完立刻验证：看结果/看体感，不对就把变量收窄（别一次改太多）。", g.pick(emojiPool)),
		}
	default:
		return []string{
			fmt.Sprintf("%s使用前：我最困扰的是「%s」相关的问题（反复踩雷）。", g.pick(emojiPool), title),
			fmt.Sprintf("%s第3天：开始有变化，尤其在%s这块更明显。", g.pick(emojiPool), k1),
			fmt.Sprintf("%s第7天：稳定下来，%s的体验更好，整体更省事。", g.pick(emojiPool), k2),
			fmt.Sprintf("%s一个月后：我更在意%s的长期效果，所以会继续按这个思路迭代。", g.pick(emojiPool), k3),
		}
	}
}

func (g *Generator) ctas(styleID, industryName string, emojiPool []string) []string {
	switch styleID {
	case StylePro:
		return []string{
			fmt.Sprintf("%s如果你告诉我你的需求/预算/肤质(或场景)，我可以给更精准的建议。", g.pick(emojiPool)),
			fmt.Sprintf("%s收藏这篇，下次选的时候直接对照维度看。", g.pick(emojiPool)),
			fmt.Sprintf("%s想看同类对比我再补一篇（评论区告诉我）。", g.pick(emojiPool)),
		}
	case StyleNotes:
		return []string{
			fmt.Sprintf("%s建议收藏：下次直接按这张清单执行。", g.pick(emojiPool)),
			fmt.Sprintf("%s想要模板/清单版，我可以再整理一份。", g.pick(emojiPool)),
			fmt.Sprintf("%s如果你需要更细的步骤，我可以按你的场景补充。", g.pick(emojiPool)),
		}
	case StyleRoast:
		return []string{
			fmt.Sprintf("%s别再踩坑了…收藏一下，真的能省很多钱和时间。", g.pick(emojiPool)),
			fmt.Sprintf("%s你踩过哪个坑？评论区让我避雷也避你雷。", g.pick(emojiPool)),
			fmt.Sprintf("%s想看更狠的避雷清单？我继续更。", g.pick(emojiPool)),
		}
	case StyleWarm:
		return []string{
			fmt.Sprintf("%s慢慢来就好，收藏一下，哪天需要再翻出来看。", g.pick(emojiPool)),
			fmt.Sprintf("%s如果你愿意说说你的情况，我可以帮你更温柔地调整方案。", g.pick(emojiPool)),
			fmt.Sprintf("%s希望这篇能让你轻松一点。", g.pick(emojiPool)),
		}
	case StyleCoach:
		return []string{
			fmt.Sprintf("%s建议先坚持7天，别追求一次到位。", g.pick(emojiPool)),
			fmt.Sprintf("%s收藏打卡：照着做，稳定比爆发更重要。", g.pick(emojiPool)),
			fmt.Sprintf("%s想要更细的计划，我可以按你的时间表拆解。", g.pick(emojiPool)),
		}
	default:
		return []string{
			fmt.Sprintf("%s觉得有用的话记得点赞收藏哦！", g.pick(emojiPool)),
			fmt.Sprintf("%s有问题评论区问我，看到都会回复！", g.pick(emojiPool)),
			fmt.Sprintf("%s关注我，分享更多%s干货！", g.pick(emojiPool), industryName),
		}
	}
}

func (g *Generator) pick(options []string) string {
	if len(options) == 0 {
		return ""
	}
	return options[g.rng.Intn(len(options))]
}

// pickKeyword picks a random keyword from the first limit entries,
// falling back when the industry has none.
func (g *Generator) pickKeyword(keywords []string, limit int, fallback string) string {
	pool := head(keywords, limit)
	if len(pool) == 0 {
		return fallback
	}
	return pool[g.rng.Intn(len(pool))]
}

// sample returns up to n elements without replacement, order
// randomized.
func (g *Generator) sample(options []string, n int) []string {
	if n > len(options) {
		n = len(options)
	}
	perm := g.rng.Perm(len(options))
	out := make([]string, 0, n)
	for _, idx := range perm[:n] {
		out = append(out, options[idx])
	}
	return out
}

func head(list []string, n int) []string {
	if len(list) <= n {
		return list
	}
	return list[:n]
}

func dedupe(list []string) []string {
	seen := make(map[string]struct{}, len(list))
	out := make([]string, 0, len(list))
	for _, v := range list {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
