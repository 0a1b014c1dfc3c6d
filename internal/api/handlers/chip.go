package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/novis10813/twse-api/internal/models"
	"github.com/novis10813/twse-api/internal/service"
	"github.com/novis10813/twse-api/internal/utils"
)

// ChipHandler 處理與籌碼資料相關的請求
type ChipHandler struct {
	chipService *service.ChipService
	dates       *utils.DateResolver
}

// NewChipHandler 創建一個新的 ChipHandler 實例
func NewChipHandler(chipService *service.ChipService, dates *utils.DateResolver) *ChipHandler {
	return &ChipHandler{chipService: chipService, dates: dates}
}

// GetChipSummary 處理三大法人買賣金額統計的請求
func (h *ChipHandler) GetChipSummary(c *gin.Context) {
	date, err := h.dates.Resolve(c.Query("date"))
	if err != nil {
		h.writeError(c, err)
		return
	}

	records, err := h.chipService.GetChipSummary(c.Request.Context(), date)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, records)
}

// GetStockChips 處理個股三大法人買賣超列表的請求
func (h *ChipHandler) GetStockChips(c *gin.Context) {
	date, err := h.dates.Resolve(c.Query("date"))
	if err != nil {
		h.writeError(c, err)
		return
	}

	records, err := h.chipService.GetStockChips(c.Request.Context(), date)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, records)
}

// GetTopMovers 處理買賣超排行的請求
func (h *ChipHandler) GetTopMovers(c *gin.Context) {
	date, err := h.dates.Resolve(c.Query("date"))
	if err != nil {
		h.writeError(c, err)
		return
	}

	// n 無法解析時回退到預設筆數
	n, err := strconv.Atoi(c.DefaultQuery("n", "10"))
	if err != nil || n <= 0 {
		n = 10
	}

	movers, err := h.chipService.GetTopMovers(c.Request.Context(), date, n)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, movers)
}

// GetStockDetail 處理單一個股籌碼詳情的請求
func (h *ChipHandler) GetStockDetail(c *gin.Context) {
	date, err := h.dates.Resolve(c.Query("date"))
	if err != nil {
		h.writeError(c, err)
		return
	}

	detail, err := h.chipService.GetStockDetail(c.Request.Context(), date, c.Param("code"))
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, detail)
}

// writeError 將業務錯誤轉換為結構化的 JSON 錯誤回應。
// 上游的原始內容與內部細節不會外洩給呼叫端。
func (h *ChipHandler) writeError(c *gin.Context, err error) {
	var cerr *models.ChipError
	if !errors.As(err, &cerr) {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "InternalError",
			Message: "內部錯誤",
		})
		return
	}

	c.JSON(statusFor(cerr), models.ErrorResponse{
		Error:   cerr.Kind,
		Message: cerr.Message,
	})
}

func statusFor(err *models.ChipError) int {
	switch err.Kind {
	case models.ErrKindInvalidDateFormat:
		return http.StatusBadRequest
	case models.ErrKindUpstreamDataMissing, models.ErrKindStockNotFound:
		return http.StatusNotFound
	case models.ErrKindUpstreamUnavailable:
		if err.Timeout {
			return http.StatusGatewayTimeout
		}
		return http.StatusBadGateway
	case models.ErrKindMalformedUpstreamData:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
