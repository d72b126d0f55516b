package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/yimeji/redcopy/internal/app"
	"github.com/yimeji/redcopy/internal/config"
	"github.com/yimeji/redcopy/internal/history"
)

var (
	historyLimit    int
	historyIndustry string
	historyShow     string
	historyDelete   string
	historyJSON     bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Browse saved copies",
	Long: `Browse copies saved with generate --save.

Examples:
  redcopy history
  redcopy history --industry 美妆 --limit 10
  redcopy history --show copy_20260410_120000
  redcopy history --delete copy_20260410_120000`,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "Maximum number of records")
	historyCmd.Flags().StringVar(&historyIndustry, "industry", "", "Filter by industry id or Chinese hint")
	historyCmd.Flags().StringVar(&historyShow, "show", "", "Show one record by id")
	historyCmd.Flags().StringVar(&historyDelete, "delete", "", "Delete one record by id")
	historyCmd.Flags().BoolVar(&historyJSON, "json", false, "Emit machine-readable JSON")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := cfg.ValidateForHistory(); err != nil {
		return fmt.Errorf("validate config: %w", err)
	}

	a, err := app.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("init app: %w", err)
	}
	defer a.Close()

	if historyDelete != "" {
		if err := a.Store.DeleteCopy(ctx, historyDelete); err != nil {
			if errors.Is(err, history.ErrNotFound) {
				return fmt.Errorf("no record with id %q", historyDelete)
			}
			return fmt.Errorf("delete copy: %w", err)
		}
		fmt.Println("✅ 已删除")
		return nil
	}

	if historyShow != "" {
		rec, err := a.Store.GetCopy(ctx, historyShow)
		if err != nil {
			if errors.Is(err, history.ErrNotFound) {
				return fmt.Errorf("no record with id %q", historyShow)
			}
			return fmt.Errorf("get copy: %w", err)
		}

		if historyJSON {
			return printJSON(rec)
		}

		fmt.Println(strings.Repeat("=", 50))
		fmt.Printf("🧾 %s\n", rec.ID)
		fmt.Printf("🏭 %s  %s\n", rec.Industry, rec.CreatedAt.Format(time.RFC3339))
		fmt.Printf("标题: %s\n", rec.Title)
		fmt.Println(strings.Repeat("=", 50))
		fmt.Println(rec.Body)
		return nil
	}

	industryID := a.Industries.ResolveHint(historyIndustry)

	records, err := a.Store.ListCopies(ctx, historyLimit, industryID)
	if err != nil {
		return fmt.Errorf("list copies: %w", err)
	}

	if historyJSON {
		if records == nil {
			records = []history.Copy{}
		}
		return printJSON(records)
	}

	if len(records) == 0 {
		fmt.Println("（暂无历史记录）")
		return nil
	}

	fmt.Println(strings.Repeat("=", 50))
	fmt.Println("📚 历史记录")
	if industryID != "" {
		ind, _ := a.Industries.Get(industryID)
		fmt.Printf("筛选行业: %s %s\n", ind.Icon, ind.Name)
	}
	fmt.Println(strings.Repeat("=", 50))

	for i, rec := range records {
		fmt.Printf("%d. %s  [%s]  %s\n", i+1, rec.ID, rec.Industry, rec.CreatedAt.Format(time.RFC3339))
		if rec.Title != "" {
			fmt.Printf("   %s\n", rec.Title)
		}
	}
	fmt.Println("\n提示：redcopy history --show <id> 查看详情")

	return nil
}
