package screener

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/dazetsai/stock-trading-2026/internal/domain/market"
	"github.com/dazetsai/stock-trading-2026/internal/domain/scoring"
	scorer "github.com/dazetsai/stock-trading-2026/internal/service/scoring"
)

// Service 篩選引擎 (每日選股)
// 流程: 股票池 → 流動性過濾 → 三維度評分 → 綜合評分 → 排序 → 分級
// 單一股票評分失敗只記錄並略過, 不會中止整次執行
type Service struct {
	priceReader       market.PriceReader
	flowReader        market.FlowReader
	fundamentalReader market.FundamentalReader
	universeReader    market.UniverseReader

	technical     *scorer.TechnicalScorer
	institutional *scorer.InstitutionalScorer
	fundamental   *scorer.FundamentalScorer
	composite     *scorer.CompositeScorer

	criteria scoring.ScreenerCriteria
}

// NewService 建立篩選引擎
func NewService(
	priceReader market.PriceReader,
	flowReader market.FlowReader,
	fundamentalReader market.FundamentalReader,
	universeReader market.UniverseReader,
	scoringCriteria scoring.ScoringCriteria,
	criteria scoring.ScreenerCriteria,
) *Service {
	return &Service{
		priceReader:       priceReader,
		flowReader:        flowReader,
		fundamentalReader: fundamentalReader,
		universeReader:    universeReader,
		technical:         scorer.NewTechnicalScorer(),
		institutional:     scorer.NewInstitutionalScorer(),
		fundamental:       scorer.NewFundamentalScorer(),
		composite:         scorer.NewCompositeScorer(scoringCriteria),
		criteria:          criteria,
	}
}

// Run 執行單次篩選
func (s *Service) Run(ctx context.Context, date time.Time) (*scoring.ScreenerSnapshot, error) {
	log.Info().
		Time("date", date).
		Msg("Starting screener run")

	universe, err := s.universeReader.GetUniverse(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("load universe: %w", err)
	}
	if len(universe) == 0 {
		return nil, scoring.ErrEmptyUniverse
	}

	summary := scoring.RunSummary{UniverseCount: len(universe)}
	scores := make([]scoring.StockScore, 0, len(universe))

	for _, stock := range universe {
		if !isEquitySymbol(stock.Symbol) {
			continue
		}

		bars, err := s.priceReader.GetPriceHistory(ctx, stock.Symbol, date, s.criteria.LookbackBars)
		if err != nil {
			log.Warn().Err(err).Str("symbol", stock.Symbol).Msg("Failed to fetch price history")
			summary.SkippedCount++
			continue
		}
		if len(bars) < 5 {
			summary.SkippedCount++
			continue
		}
		if !s.passesLiquidityFilter(bars) {
			continue
		}
		summary.FilteredCount++

		score, ok := s.scoreSymbol(ctx, stock, date, bars)
		if !ok {
			summary.SkippedCount++
			continue
		}
		summary.ScoredCount++
		scores = append(scores, score)
	}

	s.rank(scores)
	snapshot := s.buildSnapshot(date, scores, summary)

	log.Info().
		Str("snapshot_id", snapshot.SnapshotID).
		Int("universe", summary.UniverseCount).
		Int("filtered", summary.FilteredCount).
		Int("scored", summary.ScoredCount).
		Int("skipped", summary.SkippedCount).
		Int("tier1", len(snapshot.Tier1)).
		Int("tier2", len(snapshot.Tier2)).
		Int("tier3", len(snapshot.Tier3)).
		Msg("Screener run completed")

	return snapshot, nil
}

// scoreSymbol 單一股票的三維度 + 綜合評分
// 任何評分失敗回傳 ok=false, 由呼叫端略過
func (s *Service) scoreSymbol(ctx context.Context, stock market.StockInfo, date time.Time, bars []market.PriceBar) (scoring.StockScore, bool) {
	score := scoring.StockScore{Symbol: stock.Symbol, Name: stock.Name}

	if len(bars) < s.criteria.MinBars {
		log.Debug().
			Str("symbol", stock.Symbol).
			Int("bars", len(bars)).
			Msg("Not enough bars for scoring, skipping")
		return score, false
	}

	technical, techDetail, err := s.technical.Calculate(ctx, stock.Symbol, bars, stock.SharesOutstanding)
	if err != nil {
		log.Warn().Err(err).Str("symbol", stock.Symbol).Msg("Technical scoring failed, skipping")
		return score, false
	}

	flows, err := s.flowReader.GetFlowHistory(ctx, stock.Symbol, date, s.criteria.FlowLookback)
	if err != nil {
		log.Warn().Err(err).Str("symbol", stock.Symbol).Msg("Failed to fetch flow history, skipping")
		return score, false
	}
	institutional, instDetail, err := s.institutional.Calculate(ctx, stock.Symbol, flows)
	if err != nil {
		log.Warn().Err(err).Str("symbol", stock.Symbol).Msg("Institutional scoring failed, skipping")
		return score, false
	}

	// 基本面缺漏不是錯誤, 退化為中性分數
	fundamentalData, err := s.fundamentalReader.GetLatestFundamental(ctx, stock.Symbol)
	if err != nil {
		log.Warn().Err(err).Str("symbol", stock.Symbol).Msg("Failed to fetch fundamentals, using neutral")
		fundamentalData = nil
	}
	fundamental, fundDetail := s.fundamental.Calculate(ctx, stock.Symbol, fundamentalData)

	score.Dimensions = scoring.DimensionScore{
		Technical:     technical,
		Institutional: institutional,
		Fundamental:   fundamental,
	}
	score.Composite = s.composite.Calculate(score.Dimensions)
	score.Technical = techDetail
	score.Institutional = instDetail
	score.Fundamental = fundDetail

	return score, true
}

// rank 依總分排序並編排名 (同分以代號決勝, 保證結果可重現)
func (s *Service) rank(scores []scoring.StockScore) {
	sort.SliceStable(scores, func(i, j int) bool {
		if scores[i].Composite.TotalScore != scores[j].Composite.TotalScore {
			return scores[i].Composite.TotalScore > scores[j].Composite.TotalScore
		}
		return scores[i].Symbol < scores[j].Symbol
	})
	for i := range scores {
		scores[i].Rank = i + 1
	}
}

// buildSnapshot 分級與快照組裝
func (s *Service) buildSnapshot(date time.Time, scores []scoring.StockScore, summary scoring.RunSummary) *scoring.ScreenerSnapshot {
	snapshot := &scoring.ScreenerSnapshot{
		SnapshotID:  generateSnapshotID(date),
		TradeDate:   date,
		GeneratedAt: time.Now(),
		Summary:     summary,
	}

	for _, score := range scores {
		switch score.Composite.Tier {
		case scoring.Tier1:
			if len(snapshot.Tier1) < s.criteria.Tier1Limit {
				snapshot.Tier1 = append(snapshot.Tier1, score)
			}
		case scoring.Tier2:
			if len(snapshot.Tier2) < s.criteria.Tier2Limit {
				snapshot.Tier2 = append(snapshot.Tier2, score)
			}
		case scoring.Tier3:
			if len(snapshot.Tier3) < s.criteria.Tier3Limit {
				snapshot.Tier3 = append(snapshot.Tier3, score)
			}
		}
		if len(snapshot.TopN) < s.criteria.TopN {
			snapshot.TopN = append(snapshot.TopN, score)
		}
	}

	return snapshot
}

// generateSnapshotID 快照 ID: YYYYMMDD-<uuid8>
func generateSnapshotID(date time.Time) string {
	return fmt.Sprintf("%s-%s", date.Format("20060102"), uuid.New().String()[:8])
}
