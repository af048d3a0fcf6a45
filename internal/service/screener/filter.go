package screener

import (
	"regexp"

	"github.com/dazetsai/stock-trading-2026/internal/domain/market"
)

// 台股普通股代號為 4 碼數字, 排除 ETF/權證等
var equitySymbolPattern = regexp.MustCompile(`^\d{4}$`)

// isEquitySymbol 是否為普通股代號
func isEquitySymbol(symbol string) bool {
	return equitySymbolPattern.MatchString(symbol)
}

// passesLiquidityFilter 流動性與價格過濾
// 條件: 5 日均量 (張) 與最新收盤價皆達下限
func (s *Service) passesLiquidityFilter(bars []market.PriceBar) bool {
	var sum int64
	for i := 0; i < 5; i++ {
		sum += bars[i].Volume
	}
	avgVolumeLots := float64(sum) / 5 / float64(lotShares)

	if avgVolumeLots < float64(s.criteria.MinAvgVolume5D) {
		return false
	}
	if bars[0].Close < s.criteria.MinPrice {
		return false
	}
	return true
}

// 一張 = 1000 股
const lotShares = 1000
