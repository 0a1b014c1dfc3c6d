package service

import (
	"context"
	"errors"
	"log"
	"sort"

	"github.com/novis10813/twse-api/internal/models"
	"github.com/novis10813/twse-api/internal/twse"
)

const defaultTopN = 10

// Fetcher 定義 ChipService 對上游的依賴，測試時以 stub 替換
type Fetcher interface {
	FetchChipSummary(ctx context.Context, date models.DateParam) (*twse.Payload, error)
	FetchStockChips(ctx context.Context, date models.DateParam) (*twse.Payload, error)
}

// ChipService 負責取得並轉換籌碼資料
type ChipService struct {
	fetcher Fetcher
}

func NewChipService(fetcher Fetcher) *ChipService {
	return &ChipService{fetcher: fetcher}
}

// GetChipSummary 取得三大法人買賣金額統計
func (s *ChipService) GetChipSummary(ctx context.Context, date models.DateParam) ([]models.ChipSummaryRecord, error) {
	payload, err := s.fetcher.FetchChipSummary(ctx, date)
	if err != nil {
		return nil, err
	}

	records, err := mapChipSummary(date, payload)
	if err != nil {
		logMalformed(err)
		return nil, err
	}

	return records, nil
}

// GetStockChips 取得個股三大法人買賣超列表
func (s *ChipService) GetStockChips(ctx context.Context, date models.DateParam) ([]models.StockChipRecord, error) {
	details, err := s.fetchStockDetails(ctx, date)
	if err != nil {
		return nil, err
	}

	records := make([]models.StockChipRecord, len(details))
	for i, d := range details {
		records[i] = d.StockChipRecord
	}

	return records, nil
}

// GetStockDetail 取得單一個股的籌碼詳情
func (s *ChipService) GetStockDetail(ctx context.Context, date models.DateParam, code string) (*models.StockChipDetail, error) {
	details, err := s.fetchStockDetails(ctx, date)
	if err != nil {
		return nil, err
	}

	for i := range details {
		if details[i].Code == code {
			return &details[i], nil
		}
	}

	return nil, models.NewStockNotFound(code, date)
}

// GetTopMovers 取得外資與投信的買賣超排行
func (s *ChipService) GetTopMovers(ctx context.Context, date models.DateParam, n int) (*models.TopMovers, error) {
	if n <= 0 {
		n = defaultTopN
	}

	records, err := s.GetStockChips(ctx, date)
	if err != nil {
		return nil, err
	}

	return &models.TopMovers{
		Date:           date,
		TopForeignBuy:  topBy(records, n, func(a, b models.StockChipRecord) bool { return a.ForeignDiff > b.ForeignDiff }),
		TopForeignSell: topBy(records, n, func(a, b models.StockChipRecord) bool { return a.ForeignDiff < b.ForeignDiff }),
		TopTrustBuy:    topBy(records, n, func(a, b models.StockChipRecord) bool { return a.TrustDiff > b.TrustDiff }),
		TopTrustSell:   topBy(records, n, func(a, b models.StockChipRecord) bool { return a.TrustDiff < b.TrustDiff }),
	}, nil
}

func (s *ChipService) fetchStockDetails(ctx context.Context, date models.DateParam) ([]models.StockChipDetail, error) {
	payload, err := s.fetcher.FetchStockChips(ctx, date)
	if err != nil {
		return nil, err
	}

	details, err := mapStockChips(date, payload)
	if err != nil {
		logMalformed(err)
		return nil, err
	}

	return details, nil
}

func topBy(records []models.StockChipRecord, n int, less func(a, b models.StockChipRecord) bool) []models.StockChipRecord {
	sorted := make([]models.StockChipRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool { return less(sorted[i], sorted[j]) })

	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// 上游格式異常代表 schema 可能已變動，留下紀錄供追查
func logMalformed(err error) {
	var cerr *models.ChipError
	if errors.As(err, &cerr) && cerr.Kind == models.ErrKindMalformedUpstreamData {
		log.Printf("Malformed TWSE response: %v", err)
	}
}
