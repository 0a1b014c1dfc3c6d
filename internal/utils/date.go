package utils

import (
	"time"

	"github.com/novis10813/twse-api/internal/models"
)

const dateLayout = "20060102"

// TWSE 的資料以台灣交易日為準，與伺服器所在時區無關
var taipeiTZ = time.FixedZone("Asia/Taipei", 8*60*60)

// DateResolver 負責解析請求中的日期參數
type DateResolver struct {
	now func() time.Time
}

// NewDateResolver 創建一個使用系統時鐘的 DateResolver
func NewDateResolver() *DateResolver {
	return &DateResolver{now: time.Now}
}

// NewDateResolverWithClock 創建一個使用自訂時鐘的 DateResolver，供測試使用
func NewDateResolverWithClock(now func() time.Time) *DateResolver {
	return &DateResolver{now: now}
}

// Resolve 解析日期字串。空字串回傳台灣時區的今天，
// 否則必須是合法的 YYYYMMDD 日曆日期。
func (r *DateResolver) Resolve(raw string) (models.DateParam, error) {
	if raw == "" {
		return models.DateParam(r.now().In(taipeiTZ).Format(dateLayout)), nil
	}

	if len(raw) != 8 || !allDigits(raw) {
		return "", models.NewInvalidDateFormat(raw)
	}

	// time.Parse 會驗證月份與日期範圍，包含閏年規則
	parsed, err := time.Parse(dateLayout, raw)
	if err != nil || parsed.Format(dateLayout) != raw {
		return "", models.NewInvalidDateFormat(raw)
	}

	return models.DateParam(raw), nil
}

func allDigits(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
