package models

// DateParam 代表已解析的查詢日期，格式固定為 YYYYMMDD。
// 每個請求解析一次，解析後不再變動。
type DateParam string

func (d DateParam) String() string {
	return string(d)
}

// ChipSummaryRecord 代表單一法人類別在某個交易日的買賣金額統計 (單位: 元)
type ChipSummaryRecord struct {
	Date DateParam `json:"date"`
	Name string    `json:"name"`
	Buy  int64     `json:"buy"`
	Sell int64     `json:"sell"`
	Diff int64     `json:"diff"`
}

// StockChipRecord 代表單一個股在某個交易日的三大法人買賣超 (單位: 股)
type StockChipRecord struct {
	Date        DateParam `json:"date"`
	Code        string    `json:"code"`
	Name        string    `json:"name"`
	ForeignBuy  int64     `json:"foreign_buy"`
	ForeignSell int64     `json:"foreign_sell"`
	ForeignDiff int64     `json:"foreign_diff"`
	TrustBuy    int64     `json:"trust_buy"`
	TrustSell   int64     `json:"trust_sell"`
	TrustDiff   int64     `json:"trust_diff"`
	DealerDiff  int64     `json:"dealer_diff"`
	TotalDiff   int64     `json:"total_diff"`
}

// StockChipDetail 代表單一個股的籌碼詳情，比列表多出自營商的細項
type StockChipDetail struct {
	StockChipRecord
	DealerSelfDiff  int64 `json:"dealer_self_diff"`
	DealerHedgeDiff int64 `json:"dealer_hedge_diff"`
}

// TopMovers 代表某個交易日的法人買賣超排行
type TopMovers struct {
	Date           DateParam         `json:"date"`
	TopForeignBuy  []StockChipRecord `json:"top_foreign_buy"`
	TopForeignSell []StockChipRecord `json:"top_foreign_sell"`
	TopTrustBuy    []StockChipRecord `json:"top_trust_buy"`
	TopTrustSell   []StockChipRecord `json:"top_trust_sell"`
}

// ErrorResponse 定義所有端點共用的錯誤回應格式
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
