package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yimeji/redcopy/internal/app"
	"github.com/yimeji/redcopy/internal/config"
)

var topicsCategory string

var topicsCmd = &cobra.Command{
	Use:   "topics",
	Short: "Browse the hot-topic catalog",
	Long: `List hot-topic categories, or the topics of one category.

Examples:
  redcopy topics
  redcopy topics --category seasonal`,
	RunE: runTopics,
}

func init() {
	topicsCmd.Flags().StringVar(&topicsCategory, "category", "", "Show the topics of one category")
	rootCmd.AddCommand(topicsCmd)
}

func runTopics(cmd *cobra.Command, args []string) error {
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

	cat := a.Matcher.Catalog()

	if topicsCategory != "" {
		topics := cat.TopicsByCategory(topicsCategory)
		if len(topics) == 0 {
			return fmt.Errorf("unknown category: %q", topicsCategory)
		}

		fmt.Println(strings.Repeat("=", 50))
		fmt.Printf("📂 %s\n", topicsCategory)
		fmt.Println(strings.Repeat("=", 50))
		for _, topic := range topics {
			fmt.Printf("- %s (热度: %d)\n", topic.Name, topic.Heat)
			if len(topic.Keywords) > 0 {
				fmt.Printf("  关键词: %s\n", strings.Join(topic.Keywords, ", "))
			}
			if len(topic.Angles) > 0 {
				fmt.Printf("  角度: %s\n", strings.Join(topic.Angles, " / "))
			}
		}
		return nil
	}

	summaries := cat.Summaries()
	if len(summaries) == 0 {
		fmt.Println("（热点目录为空）")
		return nil
	}

	fmt.Println(strings.Repeat("=", 50))
	fmt.Printf("📚 热点目录（%d个话题）\n", cat.TopicCount())
	fmt.Println(strings.Repeat("=", 50))
	for _, s := range summaries {
		fmt.Printf("%s %s (%s)  话题数: %d\n", s.Icon, s.Name, s.ID, len(cat.TopicsByCategory(s.ID)))
	}
	fmt.Println("\n提示：redcopy topics --category <id> 查看具体话题")

	return nil
}
