package tripclient

import (
	"errors"

	"github.com/FACorreiaa/go-itinerary-generator/internal/types"
)

const (
	MsgRequiredFields   = "城市和日期為必填欄位。"
	MsgEndBeforeStart   = "結束日期不能早於開始日期。"
	MsgStartInPast      = "開始日期不能早於今天。"
	MsgGenerationFailed = "生成行程時發生錯誤。"
	MsgUnknownCity      = "無法識別輸入的目的地，請確認城市或國家名稱是否正確。"
	MsgNoActivities     = "（本日尚無安排活動）"
)

// FormMessage returns the message shown to the user for a local form validation error.
func FormMessage(err error) string {
	switch {
	case errors.Is(err, types.ErrMissingFields):
		return MsgRequiredFields
	case errors.Is(err, types.ErrInvalidDateRange):
		return MsgEndBeforeStart
	case errors.Is(err, types.ErrStartDateInPast):
		return MsgStartInPast
	default:
		return err.Error()
	}
}

// GenerationMessage wraps a failed generation the way the form reports it.
func GenerationMessage(err error) string {
	detail := err.Error()
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		detail = apiErr.Message
	}
	return MsgGenerationFailed + " 詳細資訊: " + detail
}
