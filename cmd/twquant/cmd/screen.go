package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/dazetsai/stock-trading-2026/internal/domain/scoring"
	"github.com/dazetsai/stock-trading-2026/internal/infra/database/postgres"
	"github.com/dazetsai/stock-trading-2026/internal/service/screener"
)

var (
	screenDate string
	screenJSON bool
	screenSave bool
)

// screenCmd 每日選股指令
var screenCmd = &cobra.Command{
	Use:   "screen",
	Short: "執行每日選股, 產出分層快照",
	RunE:  runScreen,
}

func init() {
	screenCmd.Flags().StringVar(&screenDate, "date", "", "交易日 (YYYY-MM-DD, 預設今日)")
	screenCmd.Flags().BoolVar(&screenJSON, "json", false, "輸出完整 JSON 快照")
	screenCmd.Flags().BoolVar(&screenSave, "save", true, "將快照寫入資料庫")
}

func runScreen(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	date := time.Now()
	if screenDate != "" {
		parsed, err := time.Parse("2006-01-02", screenDate)
		if err != nil {
			return fmt.Errorf("invalid --date: %w", err)
		}
		date = parsed
	}

	pool, err := postgres.NewPool(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pool.Close()

	priceRepo := postgres.NewPriceRepository(pool.Pool)
	flowRepo := postgres.NewFlowRepository(pool.Pool)
	fundamentalRepo := postgres.NewFundamentalRepository(pool.Pool)
	stockRepo := postgres.NewStockRepository(pool.Pool)

	criteria := scoring.DefaultScreenerCriteria()
	criteria.MinAvgVolume5D = cfg.Screener.MinAvgVolume5D
	criteria.MinPrice = cfg.Screener.MinPrice
	criteria.TopN = cfg.Screener.TopN

	svc := screener.NewService(
		priceRepo,
		flowRepo,
		fundamentalRepo,
		stockRepo,
		scoring.DefaultScoringCriteria(),
		criteria,
	)

	snapshot, err := svc.Run(ctx, date)
	if err != nil {
		return fmt.Errorf("screener run failed: %w", err)
	}

	if screenSave {
		snapshotRepo := postgres.NewSnapshotRepository(pool.Pool)
		if err := snapshotRepo.Save(ctx, snapshot); err != nil {
			return fmt.Errorf("failed to persist snapshot: %w", err)
		}
		log.Info().Str("snapshot_id", snapshot.SnapshotID).Msg("Snapshot saved")
	}

	if screenJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(snapshot)
	}

	printSnapshot(snapshot)
	return nil
}

func printSnapshot(snapshot *scoring.ScreenerSnapshot) {
	fmt.Printf("Snapshot %s (%s)\n", snapshot.SnapshotID, snapshot.TradeDate.Format("2006-01-02"))
	fmt.Printf("Universe %d -> filtered %d -> scored %d (skipped %d)\n\n",
		snapshot.Summary.UniverseCount,
		snapshot.Summary.FilteredCount,
		snapshot.Summary.ScoredCount,
		snapshot.Summary.SkippedCount,
	)

	printTier := func(name string, scores []scoring.StockScore) {
		fmt.Printf("%s (%d)\n", name, len(scores))
		for _, s := range scores {
			fmt.Printf("  %-6s %-12s total=%5.1f T=%5.1f I=%5.1f F=%5.1f %s\n",
				s.Symbol, s.Name,
				s.Composite.TotalScore,
				s.Dimensions.Technical,
				s.Dimensions.Institutional,
				s.Dimensions.Fundamental,
				s.Composite.Recommendation,
			)
		}
		fmt.Println()
	}

	printTier("TIER1", snapshot.Tier1)
	printTier("TIER2", snapshot.Tier2)
	printTier("TIER3", snapshot.Tier3)
}
