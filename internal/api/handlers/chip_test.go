package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/novis10813/twse-api/internal/models"
	"github.com/novis10813/twse-api/internal/service"
	"github.com/novis10813/twse-api/internal/twse"
	"github.com/novis10813/twse-api/internal/utils"
)

type stubFetcher struct {
	summary    *twse.Payload
	summaryErr error
	stocks     *twse.Payload
	stocksErr  error
}

func (s *stubFetcher) FetchChipSummary(ctx context.Context, date models.DateParam) (*twse.Payload, error) {
	return s.summary, s.summaryErr
}

func (s *stubFetcher) FetchStockChips(ctx context.Context, date models.DateParam) (*twse.Payload, error) {
	return s.stocks, s.stocksErr
}

func summaryFixture() *twse.Payload {
	return &twse.Payload{
		Stat: "OK",
		Data: [][]string{
			{"自營商", "1,000", "400", "600"},
			{"投信", "2,000", "500", "1,500"},
			{"外資及陸資", "9,000", "8,000", "1,000"},
		},
	}
}

func stockFixture() *twse.Payload {
	row := make([]string, 18)
	row[0], row[1] = "2330", "台積電"
	row[2], row[3], row[4] = "500", "200", "300"
	row[8], row[9], row[10] = "80", "30", "50"
	row[11], row[14] = "20", "-10"
	row[17] = "360"
	return &twse.Payload{Stat: "OK", Data: [][]string{row}}
}

func newTestRouter(fetcher service.Fetcher, now time.Time) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	handler := NewChipHandler(
		service.NewChipService(fetcher),
		utils.NewDateResolverWithClock(func() time.Time { return now }),
	)

	chip := r.Group("/api/v1/chip")
	chip.GET("/summary", handler.GetChipSummary)
	chip.GET("/stocks", handler.GetStockChips)
	chip.GET("/stocks/top", handler.GetTopMovers)
	chip.GET("/stock/:code", handler.GetStockDetail)

	return r
}

func doRequest(t *testing.T, r *gin.Engine, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) models.ErrorResponse {
	t.Helper()
	var resp models.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding error body %q: %v", w.Body.String(), err)
	}
	return resp
}

func TestGetChipSummaryOK(t *testing.T) {
	r := newTestRouter(&stubFetcher{summary: summaryFixture()}, time.Now())

	w := doRequest(t, r, "/api/v1/chip/summary?date=20240105")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", w.Code, w.Body.String())
	}

	var records []models.ChipSummaryRecord
	if err := json.Unmarshal(w.Body.Bytes(), &records); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3-element array, got %d", len(records))
	}
	if records[0].Name != "自營商" || records[0].Buy != 1000 || records[0].Sell != 400 || records[0].Diff != 600 {
		t.Errorf("first record mismatch: %+v", records[0])
	}
	if records[2].Diff != 1000 {
		t.Errorf("third record diff = %d, want 1000", records[2].Diff)
	}
}

func TestGetChipSummaryDefaultsDateToToday(t *testing.T) {
	fetcher := &stubFetcher{summary: summaryFixture()}
	now := time.Date(2024, 1, 5, 10, 0, 0, 0, time.FixedZone("Asia/Taipei", 8*3600))
	r := newTestRouter(fetcher, now)

	w := doRequest(t, r, "/api/v1/chip/summary")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var records []models.ChipSummaryRecord
	if err := json.Unmarshal(w.Body.Bytes(), &records); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if records[0].Date != "20240105" {
		t.Errorf("record date = %s, want mocked today 20240105", records[0].Date)
	}
}

func TestGetChipSummaryInvalidDate(t *testing.T) {
	r := newTestRouter(&stubFetcher{summary: summaryFixture()}, time.Now())

	for _, path := range []string{
		"/api/v1/chip/summary?date=20240231",
		"/api/v1/chip/summary?date=abc",
		"/api/v1/chip/stocks?date=20241332",
		"/api/v1/chip/stock/2330?date=2024",
	} {
		w := doRequest(t, r, path)
		if w.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", path, w.Code)
			continue
		}
		if resp := decodeError(t, w); resp.Error != models.ErrKindInvalidDateFormat {
			t.Errorf("%s: error kind = %q, want InvalidDateFormat", path, resp.Error)
		}
	}
}

func TestGetStockDetailOnHoliday(t *testing.T) {
	r := newTestRouter(&stubFetcher{
		stocksErr: models.NewUpstreamDataMissing("20240101"),
	}, time.Now())

	w := doRequest(t, r, "/api/v1/chip/stock/2330?date=20240101")
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
	if resp := decodeError(t, w); resp.Error != models.ErrKindUpstreamDataMissing {
		t.Errorf("error kind = %q, want UpstreamDataMissing", resp.Error)
	}
}

func TestGetStockDetailUnknownCode(t *testing.T) {
	r := newTestRouter(&stubFetcher{stocks: stockFixture()}, time.Now())

	w := doRequest(t, r, "/api/v1/chip/stock/9999?date=20240105")
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
	if resp := decodeError(t, w); resp.Error != models.ErrKindStockNotFound {
		t.Errorf("error kind = %q, want StockNotFound", resp.Error)
	}
}

func TestGetStockDetailOK(t *testing.T) {
	r := newTestRouter(&stubFetcher{stocks: stockFixture()}, time.Now())

	w := doRequest(t, r, "/api/v1/chip/stock/2330?date=20240105")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", w.Code, w.Body.String())
	}

	var detail models.StockChipDetail
	if err := json.Unmarshal(w.Body.Bytes(), &detail); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if detail.Code != "2330" || detail.Date != "20240105" {
		t.Errorf("detail scope mismatch: %+v", detail)
	}
	if detail.DealerSelfDiff != 20 || detail.DealerHedgeDiff != -10 || detail.DealerDiff != 10 {
		t.Errorf("dealer breakdown mismatch: %+v", detail)
	}
}

func TestGetStockChipsMalformedUpstream(t *testing.T) {
	payload := stockFixture()
	payload.Data[0][4] = "not-a-number"
	r := newTestRouter(&stubFetcher{stocks: payload}, time.Now())

	w := doRequest(t, r, "/api/v1/chip/stocks?date=20240105")
	if w.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", w.Code)
	}
	if resp := decodeError(t, w); resp.Error != models.ErrKindMalformedUpstreamData {
		t.Errorf("error kind = %q, want MalformedUpstreamData", resp.Error)
	}
}

func TestUpstreamTimeoutMapsTo504(t *testing.T) {
	r := newTestRouter(&stubFetcher{
		summaryErr: models.NewUpstreamUnavailable("timeout", true),
	}, time.Now())

	w := doRequest(t, r, "/api/v1/chip/summary?date=20240105")
	if w.Code != http.StatusGatewayTimeout {
		t.Fatalf("status = %d, want 504", w.Code)
	}
	if resp := decodeError(t, w); resp.Error != models.ErrKindUpstreamUnavailable {
		t.Errorf("error kind = %q, want UpstreamUnavailable", resp.Error)
	}
}

func TestUpstreamConnectionErrorMapsTo502(t *testing.T) {
	r := newTestRouter(&stubFetcher{
		summaryErr: models.NewUpstreamUnavailable("connection refused", false),
	}, time.Now())

	w := doRequest(t, r, "/api/v1/chip/summary?date=20240105")
	if w.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", w.Code)
	}
}

func TestGetTopMovers(t *testing.T) {
	r := newTestRouter(&stubFetcher{stocks: stockFixture()}, time.Now())

	w := doRequest(t, r, "/api/v1/chip/stocks/top?date=20240105&n=1")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", w.Code, w.Body.String())
	}

	var movers models.TopMovers
	if err := json.Unmarshal(w.Body.Bytes(), &movers); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if movers.Date != "20240105" {
		t.Errorf("date = %s, want 20240105", movers.Date)
	}
	if len(movers.TopForeignBuy) != 1 || movers.TopForeignBuy[0].Code != "2330" {
		t.Errorf("top foreign buy mismatch: %+v", movers.TopForeignBuy)
	}
}
