package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yimeji/redcopy/internal/app"
	"github.com/yimeji/redcopy/internal/config"
	"github.com/yimeji/redcopy/internal/diagnosis"
)

var (
	diagnoseTitle    string
	diagnoseBody     string
	diagnoseIndustry string
	diagnoseJSON     bool
)

var diagnoseCmd = &cobra.Command{
	Use:   "diagnose",
	Short: "Score an existing copy",
	Long: `Score an existing copy on click rate, completion rate, conversion,
compliance, and SEO.

Examples:
  redcopy diagnose --title "标题" --body "正文"
  redcopy diagnose --title "标题" --body "正文" --industry 美妆 --json`,
	RunE: runDiagnose,
}

func init() {
	diagnoseCmd.Flags().StringVar(&diagnoseTitle, "title", "", "Copy title (required)")
	diagnoseCmd.Flags().StringVar(&diagnoseBody, "body", "", "Copy body")
	diagnoseCmd.Flags().StringVar(&diagnoseIndustry, "industry", "", "Industry id or Chinese hint")
	diagnoseCmd.Flags().BoolVar(&diagnoseJSON, "json", false, "Emit machine-readable JSON")
	diagnoseCmd.MarkFlagRequired("title")
	rootCmd.AddCommand(diagnoseCmd)
}

func runDiagnose(cmd *cobra.Command, args []string) error {
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

	industryID := a.Industries.ResolveHint(diagnoseIndustry)
	if industryID == "" {
		industryID = a.Industries.AutoDetect(diagnoseTitle + " " + diagnoseBody)
	}

	report, err := a.Engine.Diagnose(diagnoseTitle, diagnoseBody, industryID)
	if err != nil {
		return fmt.Errorf("diagnose: %w", err)
	}

	if diagnoseJSON {
		return printJSON(struct {
			IndustryID string            `json:"industry_id"`
			Result     *diagnosis.Report `json:"result"`
		}{industryID, report})
	}

	ind, _ := a.Industries.Get(industryID)
	fmt.Println(strings.Repeat("=", 50))
	fmt.Println("🔍 文案诊断")
	fmt.Printf("🏭 行业: %s %s\n", ind.Icon, ind.Name)
	fmt.Printf("🧾 标题: %s\n", diagnoseTitle)
	fmt.Println(strings.Repeat("=", 50))
	fmt.Printf("总评分: %d/100\n\n", report.OverallScore)

	for _, name := range diagnosis.DimensionOrder {
		dim, ok := report.Dimensions[name]
		if !ok {
			continue
		}
		fmt.Printf("- %s: %d/100\n", name, dim.Score)
		if dim.Analysis != "" {
			fmt.Printf("  %s\n", dim.Analysis)
		}
		if len(dim.Warnings) > 0 {
			fmt.Printf("  warnings: %s\n", strings.Join(dim.Warnings, ", "))
		}
		if len(dim.Suggestions) > 0 {
			fmt.Printf("  suggestions: %s\n", strings.Join(dim.Suggestions, ", "))
		}
	}

	if report.ImprovedVersion != "" {
		fmt.Println()
		fmt.Println(report.ImprovedVersion)
	}

	return nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
