package twse

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/novis10813/twse-api/internal/models"
)

const (
	chipSummaryPath = "/rwd/zh/fund/BFI82U"
	stockChipPath   = "/rwd/zh/fund/T86"
)

// Payload 是 TWSE RWD 端點的回應格式。
// 數值欄位是帶千分位逗號的字串，由 service 層負責解析。
type Payload struct {
	Stat   string     `json:"stat"`
	Date   string     `json:"date"`
	Title  string     `json:"title"`
	Fields []string   `json:"fields"`
	Data   [][]string `json:"data"`
}

// Client 負責對 TWSE 公開資料端點發出請求
type Client struct {
	http *resty.Client
}

// NewClient 創建一個新的 TWSE client
func NewClient(baseURL string, timeout time.Duration) *Client {
	client := resty.New()
	client.SetBaseURL(baseURL)
	client.SetTimeout(timeout)

	return &Client{http: client}
}

// FetchChipSummary 取得三大法人買賣金額統計表 (BFI82U)
func (c *Client) FetchChipSummary(ctx context.Context, date models.DateParam) (*Payload, error) {
	return c.fetch(ctx, chipSummaryPath, map[string]string{
		"response": "json",
		"date":     date.String(),
	})
}

// FetchStockChips 取得個股三大法人買賣超 (T86)
func (c *Client) FetchStockChips(ctx context.Context, date models.DateParam) (*Payload, error) {
	return c.fetch(ctx, stockChipPath, map[string]string{
		"response":   "json",
		"date":       date.String(),
		"selectType": "ALLBUT0999",
	})
}

// fetch 發出單次請求，不重試也不快取。
// 非交易日 TWSE 會回 200 並帶 stat "很抱歉，沒有符合條件的資料!"，
// 這裡統一視為查無資料。
func (c *Client) fetch(ctx context.Context, path string, params map[string]string) (*Payload, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(params).
		Get(path)
	if err != nil {
		return nil, models.NewUpstreamUnavailable(err.Error(), isTimeout(err))
	}

	if resp.StatusCode() != http.StatusOK {
		return nil, models.NewUpstreamUnavailable(
			fmt.Sprintf("TWSE 回應狀態碼 %d", resp.StatusCode()), false)
	}

	var payload Payload
	if err := json.Unmarshal(resp.Body(), &payload); err != nil {
		return nil, models.NewMalformedUpstreamData("無法解析回應 JSON: " + err.Error())
	}

	if payload.Stat != "OK" || len(payload.Data) == 0 {
		return nil, models.NewUpstreamDataMissing(models.DateParam(params["date"]))
	}

	return &payload, nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
