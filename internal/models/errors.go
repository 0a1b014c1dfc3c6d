package models

import "fmt"

// 錯誤類別，route 層依此對應 HTTP 狀態碼
const (
	ErrKindInvalidDateFormat     = "InvalidDateFormat"
	ErrKindUpstreamUnavailable   = "UpstreamUnavailable"
	ErrKindUpstreamDataMissing   = "UpstreamDataMissing"
	ErrKindStockNotFound         = "StockNotFound"
	ErrKindMalformedUpstreamData = "MalformedUpstreamData"
)

// ChipError 代表一個帶有機器可讀類別的業務錯誤
type ChipError struct {
	Kind    string
	Message string
	// Timeout 區分 UpstreamUnavailable 要回 504 還是 502
	Timeout bool
}

func (e *ChipError) Error() string {
	return e.Kind + ": " + e.Message
}

// NewInvalidDateFormat 建立日期格式錯誤，保留原始輸入供錯誤回應使用
func NewInvalidDateFormat(raw string) *ChipError {
	return &ChipError{
		Kind:    ErrKindInvalidDateFormat,
		Message: fmt.Sprintf("無效的日期格式: %q，須為 YYYYMMDD", raw),
	}
}

// NewUpstreamUnavailable 建立上游連線失敗錯誤
func NewUpstreamUnavailable(reason string, timeout bool) *ChipError {
	return &ChipError{
		Kind:    ErrKindUpstreamUnavailable,
		Message: "無法連線至 TWSE: " + reason,
		Timeout: timeout,
	}
}

// NewUpstreamDataMissing 建立查無資料錯誤 (非交易日、未來日期等)
func NewUpstreamDataMissing(date DateParam) *ChipError {
	return &ChipError{
		Kind:    ErrKindUpstreamDataMissing,
		Message: fmt.Sprintf("日期 %s 查無資料", date),
	}
}

// NewStockNotFound 建立個股不存在錯誤
func NewStockNotFound(code string, date DateParam) *ChipError {
	return &ChipError{
		Kind:    ErrKindStockNotFound,
		Message: fmt.Sprintf("日期 %s 查無股票 %s 的資料", date, code),
	}
}

// NewMalformedUpstreamData 建立上游資料格式異常錯誤
func NewMalformedUpstreamData(reason string) *ChipError {
	return &ChipError{
		Kind:    ErrKindMalformedUpstreamData,
		Message: "TWSE 回應格式異常: " + reason,
	}
}
