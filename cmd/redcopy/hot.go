package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yimeji/redcopy/internal/app"
	"github.com/yimeji/redcopy/internal/config"
	"github.com/yimeji/redcopy/internal/matcher"
)

var (
	hotIndustry string
	hotLimit    int
	hotJSON     bool
)

var hotCmd = &cobra.Command{
	Use:   "hot <topic>",
	Short: "Match a topic against the hot-topic catalog",
	Long: `Rank catalogued hot topics by relevance to a topic and suggest
angles to ride them.

Examples:
  redcopy hot "春季防晒"
  redcopy hot "春季防晒" --industry 美妆 --limit 3 --json`,
	Args: cobra.MinimumNArgs(1),
	RunE: runHot,
}

func init() {
	hotCmd.Flags().StringVar(&hotIndustry, "industry", "", "Industry id or Chinese hint")
	hotCmd.Flags().IntVar(&hotLimit, "limit", 5, "Maximum number of matches")
	hotCmd.Flags().BoolVar(&hotJSON, "json", false, "Emit machine-readable JSON")
	rootCmd.AddCommand(hotCmd)
}

func runHot(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	a, err := app.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("init app: %w", err)
	}
	defer a.Close()

	topic := strings.TrimSpace(strings.Join(args, " "))
	if topic == "" {
		return fmt.Errorf("empty topic")
	}

	industryID := a.Industries.ResolveHint(hotIndustry)
	if industryID == "" {
		industryID = a.Industries.AutoDetect(topic)
	}

	results := a.Matcher.Match(topic, industryID, hotLimit)

	if hotJSON {
		if results == nil {
			results = []matcher.Result{}
		}
		return printJSON(struct {
			IndustryID string           `json:"industry_id"`
			Topic      string           `json:"topic"`
			Results    []matcher.Result `json:"results"`
		}{industryID, topic, results})
	}

	ind, _ := a.Industries.Get(industryID)
	fmt.Println(strings.Repeat("=", 50))
	fmt.Println("🔥 热点推荐")
	fmt.Printf("🏭 行业: %s %s\n", ind.Icon, ind.Name)
	fmt.Printf("💭 主题: %s\n", topic)
	fmt.Println(strings.Repeat("=", 50))

	if len(results) == 0 {
		fmt.Println("未匹配到热点（可以换个更具体的关键词试试）")
		return nil
	}

	for i, r := range results {
		fmt.Printf("%d. %s  (相关度: %.1f/100  热度: %d)\n", i+1, r.Topic.Name, r.RelevanceScore, r.Topic.Heat)
		if len(r.MatchedKeywords) > 0 {
			fmt.Printf("   匹配词: %s\n", strings.Join(r.MatchedKeywords, ", "))
		}
		if r.SuggestedAngle != "" {
			fmt.Printf("   借势角度: %s\n", r.SuggestedAngle)
		}
		fmt.Println()
	}

	return nil
}
