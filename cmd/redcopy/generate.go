package main

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yimeji/redcopy/internal/app"
	"github.com/yimeji/redcopy/internal/config"
	"github.com/yimeji/redcopy/internal/enhancer"
	"github.com/yimeji/redcopy/internal/generator"
	"github.com/yimeji/redcopy/internal/history"
	"github.com/yimeji/redcopy/internal/matcher"
)

const (
	maxVariants    = 10
	titlesPerIdea  = 5
	defaultTopic   = "好物推荐"
	hotAngleFloor  = 60.0
	titlePickDepth = 3
)

var (
	generateVariants int
	generateStyle    string
	generateSave     bool
	generateAI       bool
)

var generateCmd = &cobra.Command{
	Use:   "generate [text]",
	Short: "Generate copy from a one-line brief",
	Long: `Generate complete copy from a one-line brief.

The brief is "industry|topic" or just a topic (the industry is then
detected from the topic). A third segment picks the persona, and a
trailing xN generates N variants.

Examples:
  redcopy generate "美妆|春季防晒"
  redcopy generate "春季防晒 x3"
  redcopy generate "美妆|春季防晒|专业测评" --save
  redcopy generate "美妆|春季防晒" --ai`,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().IntVar(&generateVariants, "variants", 1, "Number of variants to generate (1-10)")
	generateCmd.Flags().StringVar(&generateStyle, "style", "", "Persona override (e.g. 专业测评, 学霸笔记, 吐槽避雷)")
	generateCmd.Flags().BoolVar(&generateSave, "save", false, "Save generated copy to history")
	generateCmd.Flags().BoolVar(&generateAI, "ai", false, "Polish the draft through the configured LLM provider")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("validate config: %w", err)
	}

	a, err := app.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("init app: %w", err)
	}
	defer a.Close()

	raw, hintVariants := extractVariantsHint(strings.Join(args, " "))
	variants := generateVariants
	if hintVariants > variants {
		variants = hintVariants
	}
	if variants < 1 {
		variants = 1
	}
	if variants > maxVariants {
		variants = maxVariants
	}

	industryID, topic, styleHint := parseQuickText(a, raw)
	styleID := generator.ResolveStyle(generateStyle)
	if styleID == "" {
		styleID = generator.ResolveStyle(styleHint)
	}
	if styleID == "" {
		styleID = generator.DefaultStyle(industryID)
	}

	hot := suggestHotAngle(a, topic, industryID)

	ind, _ := a.Industries.Get(industryID)
	fmt.Println(strings.Repeat("=", 50))
	fmt.Println("📝 小红书爆款文案生成器")
	if ind.Name != "" {
		fmt.Printf("🏭 行业: %s %s\n", ind.Icon, ind.Name)
	}
	fmt.Printf("💭 主题: %s\n", topic)
	fmt.Printf("🎭 风格: %s\n", generator.StyleLabel(styleID))
	fmt.Println(strings.Repeat("=", 50))

	for i := 0; i < variants; i++ {
		ideas := a.Generator.Ideas(topic, industryID)
		idea := ideas[i%len(ideas)]

		if hot != nil && hot.SuggestedAngle != "" {
			prefix := strings.TrimSpace(strings.SplitN(hot.SuggestedAngle, "｜", 2)[0])
			if prefix != "" && !strings.Contains(idea.Title, prefix) {
				idea.Title = prefix + "｜" + idea.Title
			}
		}

		titleText, formulaID, score := pickTitle(a, idea, industryID, topic, i)

		draft := a.Generator.Content(titleText, idea, industryID, styleID)

		output := draft
		if generateAI {
			output = enhanceDraft(ctx, a, draft, enhancer.Meta{
				Topic:        topic,
				IndustryID:   industryID,
				IndustryName: ind.Name,
				StyleLabel:   generator.StyleLabel(styleID),
				HotAngle:     hotAngle(hot),
				IdeaTitle:    idea.Title,
				IdeaAngle:    idea.Angle,
			})
		}

		if variants > 1 {
			fmt.Printf("\n--- 文案 %d/%d ---\n", i+1, variants)
		}
		if angle := hotAngle(hot); angle != "" {
			fmt.Printf("🔥 借势热点: %s\n", angle)
		}

		fmt.Println(strings.Repeat("=", 50))
		fmt.Println(output.FullContent)
		fmt.Println(strings.Repeat("=", 50))

		if generateSave {
			id, err := a.Store.SaveCopy(ctx, saveParams(output, industryID, formulaID, score))
			if err != nil {
				return fmt.Errorf("save copy: %w", err)
			}
			fmt.Printf("💾 已保存: %s\n", id)
		}
	}

	return nil
}

// pickTitle renders candidates, ranks them, and rotates through the top
// few so variants don't share a title.
func pickTitle(a *app.App, idea generator.Idea, industryID, topic string, variant int) (text, formulaID string, score int) {
	titles := a.Generator.Titles(idea, industryID, titlesPerIdea)
	if len(titles) == 0 {
		return topic, "", 0
	}

	sort.SliceStable(titles, func(i, j int) bool {
		return titles[i].Score > titles[j].Score
	})
	depth := titlePickDepth
	if depth > len(titles) {
		depth = len(titles)
	}
	picked := titles[variant%depth]
	return picked.Text, picked.Formula, picked.Score
}

// enhanceDraft runs the draft through the LLM provider, falling back to
// the offline draft on any failure.
func enhanceDraft(ctx context.Context, a *app.App, draft generator.Copy, meta enhancer.Meta) generator.Copy {
	if a.Enhancer == nil {
		slog.Warn("no provider API key configured, skipping enhancement")
		return draft
	}

	result, err := a.Enhancer.Enhance(ctx, enhancer.Draft{
		Title:       draft.Title,
		FullContent: draft.FullContent,
		Hashtags:    draft.Hashtags,
	}, meta)
	if err != nil {
		slog.Warn("enhancement failed, using offline draft", "error", err)
		return draft
	}

	draft.Title = result.Title
	draft.FullContent = result.FullContent
	draft.Hashtags = result.Hashtags
	return draft
}

func saveParams(c generator.Copy, industryID, formulaID string, score int) (p history.SaveCopyParams) {
	p.Title = c.Title
	p.Body = c.FullContent
	p.Industry = industryID
	p.Hashtags = c.Hashtags
	p.Formula = formulaID
	p.Score = score
	return p
}

// parseQuickText splits "industry|topic[|style]" (half or full width
// pipes), resolving the industry from the hint or, failing that, from
// the topic itself.
func parseQuickText(a *app.App, text string) (industryID, topic, styleHint string) {
	raw := strings.TrimSpace(text)
	if raw == "" {
		return a.Industries.Default(), defaultTopic, ""
	}

	sep := ""
	if strings.Contains(raw, "|") {
		sep = "|"
	} else if strings.Contains(raw, "｜") {
		sep = "｜"
	}

	if sep == "" {
		return a.Industries.AutoDetect(raw), raw, ""
	}

	var parts []string
	for _, p := range strings.Split(raw, sep) {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}

	var left string
	switch {
	case len(parts) >= 2:
		left, topic = parts[0], parts[1]
	case len(parts) == 1:
		topic = parts[0]
	}
	if len(parts) >= 3 {
		styleHint = parts[2]
	}
	if topic == "" {
		topic = defaultTopic
	}

	industryID = a.Industries.ResolveHint(left)
	if industryID == "" {
		industryID = a.Industries.AutoDetect(topic)
	}
	return industryID, topic, styleHint
}

var variantsHintPattern = regexp.MustCompile(`(?i)\s*[x×]\s*(\d+)\s*$`)

// extractVariantsHint strips a trailing "xN" from the brief and returns
// N clamped to 1-10.
func extractVariantsHint(text string) (string, int) {
	raw := strings.TrimSpace(text)
	if raw == "" {
		return raw, 1
	}

	m := variantsHintPattern.FindStringSubmatchIndex(raw)
	if m == nil {
		return raw, 1
	}

	n, err := strconv.Atoi(raw[m[2]:m[3]])
	if err != nil {
		return raw, 1
	}
	if n < 1 {
		n = 1
	}
	if n > maxVariants {
		n = maxVariants
	}
	return strings.TrimSpace(raw[:m[0]]), n
}

// suggestHotAngle returns the best topic match when it clears the
// relevance floor, or nil.
func suggestHotAngle(a *app.App, topic, industryID string) *matcher.Result {
	results := a.Matcher.Match(topic, industryID, 1)
	if len(results) == 0 || results[0].RelevanceScore < hotAngleFloor {
		return nil
	}
	return &results[0]
}

func hotAngle(hot *matcher.Result) string {
	if hot == nil || hot.SuggestedAngle == "" {
		return ""
	}
	name := strings.TrimSpace(hot.Topic.Name)
	angle := strings.TrimSpace(hot.SuggestedAngle)
	if name == "" || strings.HasPrefix(angle, name) {
		return angle
	}
	return strings.Trim(name+"｜"+angle, "｜")
}
