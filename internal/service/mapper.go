package service

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/novis10813/twse-api/internal/models"
	"github.com/novis10813/twse-api/internal/twse"
)

// T86 回應的欄位位置，以實際回應的 fixture 釘住。
// 上游欄位順序改變時只需調整這裡。
const (
	t86ColCode        = 0
	t86ColName        = 1
	t86ColForeignBuy  = 2
	t86ColForeignSell = 3
	t86ColForeignDiff = 4
	t86ColTrustBuy    = 8
	t86ColTrustSell   = 9
	t86ColTrustDiff   = 10
	t86ColDealerSelf  = 11
	t86ColDealerHedge = 14
	t86ColTotalDiff   = 17

	t86MinColumns = 15
)

// mapChipSummary 將 BFI82U 回應逐列轉換為統計紀錄。
// 每一列對應一個法人類別 (含合計列)，任何一列解析失敗即視為上游格式異常。
func mapChipSummary(date models.DateParam, payload *twse.Payload) ([]models.ChipSummaryRecord, error) {
	records := make([]models.ChipSummaryRecord, 0, len(payload.Data))

	for i, row := range payload.Data {
		if len(row) < 4 {
			return nil, models.NewMalformedUpstreamData(
				fmt.Sprintf("BFI82U 第 %d 列只有 %d 欄", i, len(row)))
		}

		buy, err := parseAmount(row[1])
		if err != nil {
			return nil, malformedAmount("BFI82U", i, "買進金額", row[1])
		}
		sell, err := parseAmount(row[2])
		if err != nil {
			return nil, malformedAmount("BFI82U", i, "賣出金額", row[2])
		}
		diff, err := parseAmount(row[3])
		if err != nil {
			return nil, malformedAmount("BFI82U", i, "買賣差額", row[3])
		}

		records = append(records, models.ChipSummaryRecord{
			Date: date,
			Name: strings.TrimSpace(row[0]),
			Buy:  buy,
			Sell: sell,
			Diff: diff,
		})
	}

	return records, nil
}

// mapStockChips 將 T86 回應逐列轉換為個股詳情。
// 同一回應中股票代碼必須唯一，重複視為上游格式異常。
func mapStockChips(date models.DateParam, payload *twse.Payload) ([]models.StockChipDetail, error) {
	details := make([]models.StockChipDetail, 0, len(payload.Data))
	seen := make(map[string]bool, len(payload.Data))

	for i, row := range payload.Data {
		if len(row) < t86MinColumns {
			return nil, models.NewMalformedUpstreamData(
				fmt.Sprintf("T86 第 %d 列只有 %d 欄", i, len(row)))
		}

		code := strings.TrimSpace(row[t86ColCode])
		if seen[code] {
			return nil, models.NewMalformedUpstreamData("T86 出現重複的股票代碼 " + code)
		}
		seen[code] = true

		var (
			parseErr error
			errField string
			errValue string
		)
		parse := func(col int, field string) int64 {
			if parseErr != nil {
				return 0
			}
			v, err := parseAmount(row[col])
			if err != nil {
				parseErr, errField, errValue = err, field, row[col]
			}
			return v
		}

		foreignBuy := parse(t86ColForeignBuy, "外資買進股數")
		foreignSell := parse(t86ColForeignSell, "外資賣出股數")
		foreignDiff := parse(t86ColForeignDiff, "外資買賣超股數")
		trustBuy := parse(t86ColTrustBuy, "投信買進股數")
		trustSell := parse(t86ColTrustSell, "投信賣出股數")
		trustDiff := parse(t86ColTrustDiff, "投信買賣超股數")
		dealerSelf := parse(t86ColDealerSelf, "自營商買賣超股數(自行買賣)")
		dealerHedge := parse(t86ColDealerHedge, "自營商買賣超股數(避險)")

		dealerDiff := dealerSelf + dealerHedge

		// 舊版回應沒有合計欄，改由各法人買賣超加總
		totalDiff := foreignDiff + trustDiff + dealerDiff
		if len(row) > t86ColTotalDiff {
			totalDiff = parse(t86ColTotalDiff, "三大法人買賣超股數")
		}

		if parseErr != nil {
			return nil, malformedAmount("T86", i, errField, errValue)
		}

		details = append(details, models.StockChipDetail{
			StockChipRecord: models.StockChipRecord{
				Date:        date,
				Code:        code,
				Name:        strings.TrimSpace(row[t86ColName]),
				ForeignBuy:  foreignBuy,
				ForeignSell: foreignSell,
				ForeignDiff: foreignDiff,
				TrustBuy:    trustBuy,
				TrustSell:   trustSell,
				TrustDiff:   trustDiff,
				DealerDiff:  dealerDiff,
				TotalDiff:   totalDiff,
			},
			DealerSelfDiff:  dealerSelf,
			DealerHedgeDiff: dealerHedge,
		})
	}

	return details, nil
}

// parseAmount 解析 TWSE 的數值字串，例如 "1,234,567" 或 "-8,910"。
// 空字串代表零。
func parseAmount(s string) (int64, error) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	if s == "" {
		return 0, nil
	}
	return strconv.ParseInt(s, 10, 64)
}

func malformedAmount(source string, row int, field, value string) *models.ChipError {
	return models.NewMalformedUpstreamData(
		fmt.Sprintf("%s 第 %d 列的%s無法解析: %q", source, row, field, value))
}
