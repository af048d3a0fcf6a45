package screener

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/dazetsai/stock-trading-2026/internal/domain/market"
	"github.com/dazetsai/stock-trading-2026/internal/domain/scoring"
)

// ---------------------------------------------------------------------------
// in-memory fakes
// ---------------------------------------------------------------------------

type fakePriceReader struct {
	data map[string][]market.PriceBar
}

func (f *fakePriceReader) GetPriceHistory(ctx context.Context, symbol string, until time.Time, limit int) ([]market.PriceBar, error) {
	bars := f.data[symbol]
	if limit > 0 && len(bars) > limit {
		bars = bars[:limit]
	}
	return bars, nil
}

type fakeFlowReader struct {
	data map[string][]market.InstitutionalFlow
}

func (f *fakeFlowReader) GetFlowHistory(ctx context.Context, symbol string, until time.Time, limit int) ([]market.InstitutionalFlow, error) {
	flows := f.data[symbol]
	if limit > 0 && len(flows) > limit {
		flows = flows[:limit]
	}
	return flows, nil
}

type fakeFundamentalReader struct {
	data map[string]*market.FundamentalSnapshot
}

func (f *fakeFundamentalReader) GetLatestFundamental(ctx context.Context, symbol string) (*market.FundamentalSnapshot, error) {
	return f.data[symbol], nil
}

type fakeUniverseReader struct {
	stocks []market.StockInfo
}

func (f *fakeUniverseReader) GetUniverse(ctx context.Context, until time.Time) ([]market.StockInfo, error) {
	return f.stocks, nil
}

// ---------------------------------------------------------------------------
// fixtures
// ---------------------------------------------------------------------------

// seriesBars 由時間順序的收盤/成交量建立最近在前的日線
func seriesBars(closes []float64, volumes []int64) []market.PriceBar {
	n := len(closes)
	bars := make([]market.PriceBar, n)
	for i := 0; i < n; i++ {
		open := closes[i]
		if i > 0 {
			open = closes[i-1]
		}
		bars[n-1-i] = market.PriceBar{
			Date:   time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC).AddDate(0, 0, i),
			Open:   open,
			High:   closes[i] * 1.01,
			Low:    closes[i] * 0.99,
			Close:  closes[i],
			Volume: volumes[i],
		}
	}
	return bars
}

func strongBars() []market.PriceBar {
	closes := make([]float64, 65)
	volumes := make([]int64, 65)
	for i := range closes {
		closes[i] = 100 + float64(i)*0.5
		volumes[i] = 2_000_000
	}
	closes[64] = closes[63] * 1.06
	volumes[64] = 20_000_000
	return seriesBars(closes, volumes)
}

func flatBars() []market.PriceBar {
	closes := make([]float64, 65)
	volumes := make([]int64, 65)
	for i := range closes {
		closes[i] = 50
		volumes[i] = 2_000_000
	}
	return seriesBars(closes, volumes)
}

func buyingFlows() []market.InstitutionalFlow {
	flows := make([]market.InstitutionalFlow, 10)
	for i := range flows {
		flows[i] = market.InstitutionalFlow{
			Date:             time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -i),
			ForeignNet:       600_000,
			TrustNet:         200_000,
			DealerNet:        50_000,
			FinancingBalance: 1_000,
			ShortBalance:     100,
		}
	}
	return flows
}

func quietFlows() []market.InstitutionalFlow {
	flows := make([]market.InstitutionalFlow, 10)
	for i := range flows {
		flows[i] = market.InstitutionalFlow{
			Date: time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -i),
		}
	}
	return flows
}

func newTestService() *Service {
	yoy := 25.0
	mom := 12.0
	eps := 9.0
	prevEPS := 6.0
	per := 12.0

	return NewService(
		&fakePriceReader{data: map[string][]market.PriceBar{
			"2330": strongBars(),
			"2317": flatBars(),
		}},
		&fakeFlowReader{data: map[string][]market.InstitutionalFlow{
			"2330": buyingFlows(),
			"2317": quietFlows(),
		}},
		&fakeFundamentalReader{data: map[string]*market.FundamentalSnapshot{
			"2330": {
				Symbol:      "2330",
				RevenueYoY:  &yoy,
				RevenueMoM:  &mom,
				EPS:         &eps,
				PrevYearEPS: &prevEPS,
				PER:         &per,
			},
		}},
		&fakeUniverseReader{stocks: []market.StockInfo{
			{Symbol: "00878", Name: "ETF"},       // 非普通股, 直接排除
			{Symbol: "2317", Name: "鴻海"},
			{Symbol: "2330", Name: "台積電"},
			{Symbol: "9999", Name: "下市股"},      // 無價格資料
		}},
		scoring.DefaultScoringCriteria(),
		scoring.DefaultScreenerCriteria(),
	)
}

// ---------------------------------------------------------------------------
// tests
// ---------------------------------------------------------------------------

func TestScreenerRun(t *testing.T) {
	ctx := context.Background()
	date := time.Date(2025, 5, 6, 0, 0, 0, 0, time.UTC)

	t.Run("empty universe", func(t *testing.T) {
		svc := NewService(
			&fakePriceReader{}, &fakeFlowReader{}, &fakeFundamentalReader{},
			&fakeUniverseReader{},
			scoring.DefaultScoringCriteria(), scoring.DefaultScreenerCriteria(),
		)
		_, err := svc.Run(ctx, date)
		if !errors.Is(err, scoring.ErrEmptyUniverse) {
			t.Fatalf("expected ErrEmptyUniverse, got %v", err)
		}
	})

	t.Run("full run tiers and summary", func(t *testing.T) {
		svc := newTestService()
		snapshot, err := svc.Run(ctx, date)
		if err != nil {
			t.Fatal(err)
		}

		if snapshot.Summary.UniverseCount != 4 {
			t.Errorf("expected universe 4, got %d", snapshot.Summary.UniverseCount)
		}
		if snapshot.Summary.FilteredCount != 2 {
			t.Errorf("expected filtered 2, got %d", snapshot.Summary.FilteredCount)
		}
		if snapshot.Summary.ScoredCount != 2 {
			t.Errorf("expected scored 2, got %d", snapshot.Summary.ScoredCount)
		}
		if snapshot.Summary.SkippedCount != 1 {
			t.Errorf("expected skipped 1, got %d", snapshot.Summary.SkippedCount)
		}

		if len(snapshot.Tier1) != 1 || snapshot.Tier1[0].Symbol != "2330" {
			t.Fatalf("expected 2330 in tier1, got %+v", snapshot.Tier1)
		}
		if snapshot.Tier1[0].Composite.Recommendation != scoring.RecommendBuy {
			t.Errorf("expected BUY, got %s", snapshot.Tier1[0].Composite.Recommendation)
		}

		if len(snapshot.TopN) != 2 {
			t.Fatalf("expected top_n 2, got %d", len(snapshot.TopN))
		}
		if snapshot.TopN[0].Symbol != "2330" || snapshot.TopN[0].Rank != 1 {
			t.Errorf("expected 2330 ranked 1, got %s rank %d",
				snapshot.TopN[0].Symbol, snapshot.TopN[0].Rank)
		}
		if snapshot.TopN[1].Symbol != "2317" || snapshot.TopN[1].Rank != 2 {
			t.Errorf("expected 2317 ranked 2, got %s rank %d",
				snapshot.TopN[1].Symbol, snapshot.TopN[1].Rank)
		}
	})

	t.Run("runs are deterministic", func(t *testing.T) {
		svc := newTestService()

		first, err := svc.Run(ctx, date)
		if err != nil {
			t.Fatal(err)
		}
		second, err := svc.Run(ctx, date)
		if err != nil {
			t.Fatal(err)
		}

		// 快照 ID 與產生時間以外的內容必須完全一致
		if !reflect.DeepEqual(first.Tier1, second.Tier1) ||
			!reflect.DeepEqual(first.Tier2, second.Tier2) ||
			!reflect.DeepEqual(first.Tier3, second.Tier3) ||
			!reflect.DeepEqual(first.TopN, second.TopN) {
			t.Error("expected identical tiers across runs")
		}
		if first.Summary != second.Summary {
			t.Errorf("expected identical summary: %+v vs %+v", first.Summary, second.Summary)
		}
	})
}
