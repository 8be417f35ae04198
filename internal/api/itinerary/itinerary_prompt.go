package itinerary

import (
	"fmt"
	"strings"

	"github.com/FACorreiaa/go-itinerary-generator/internal/types"
)

const (
	preferenceSeparator = "； "
	defaultPreferences  = "無特別偏好，請規劃包含經典景點與當地美食的均衡行程。"
)

// preferenceDetails lists the non-empty preference fields in form order.
func preferenceDetails(req types.TripRequest) []string {
	fields := []struct {
		label string
		value string
	}{
		{"旅行目的", req.TripPurpose},
		{"旅行節奏", req.Pace},
		{"同行者", req.Companions},
		{"預算範圍", req.Budget},
		{"其他偏好", req.Preferences},
	}
	var details []string
	for _, f := range fields {
		if f.value != "" {
			details = append(details, fmt.Sprintf("%s: %s", f.label, f.value))
		}
	}
	return details
}

func flightDetails(req types.TripRequest) []string {
	var lines []string
	if req.ArrivalTime != "" {
		lines = append(lines, fmt.Sprintf("第一天的航班抵達時間是 %s。請將此時間納入考量，第一天的行程應從抵達後開始，並包含從機場到住宿地點的交通時間建議。", req.ArrivalTime))
	}
	if req.DepartureTime != "" {
		lines = append(lines, fmt.Sprintf("最後一天的航班離開時間是 %s。請將此時間納入考量，最後一天的行程應在班機起飛前至少3-4小時結束，並包含從市區到機場的交通時間建議。", req.DepartureTime))
	}
	return lines
}

// itineraryPrompt builds the planner instructions sent alongside the format_itinerary tool.
func itineraryPrompt(req types.TripRequest) string {
	requirements := strings.Join(preferenceDetails(req), preferenceSeparator)
	if requirements == "" {
		requirements = defaultPreferences
	}

	var b strings.Builder
	fmt.Fprintf(&b, "請為我規劃一份在多個城市「%s」的旅遊行程，日期從 %s 到 %s。\n", req.City, req.StartDate, req.EndDate)
	fmt.Fprintf(&b, "這是一趟多城市之旅，請嚴格按照使用者輸入的順序來規劃行程：%s。\n", req.City)
	b.WriteString("請根據總旅遊天數，智慧地為每個城市分配停留時間，並在行程中規劃城市間的交通方式與時間。\n\n")
	fmt.Fprintf(&b, "我的旅行需求如下：\n%s\n", requirements)

	if flights := flightDetails(req); len(flights) > 0 {
		b.WriteString("\n重要航班資訊：\n")
		b.WriteString(strings.Join(flights, "\n"))
		b.WriteString("\n")
	}

	b.WriteString("\n請以一個專業旅遊規劃師的身份，提供一份詳細、流暢且合理的每日行程。\n")
	b.WriteString("請根據上述的旅行需求（尤其是預算、節奏和同行者）來推薦合適的景點、餐廳和活動。\n")
	b.WriteString("行程總標題應能反映這是一趟多城市之旅。\n")
	b.WriteString("每日計畫應包含日期（YYYY-MM-DD 格式）和當天是第幾天。\n")
	b.WriteString("每個活動應包含建議時間、活動標題（標題請盡量註明所在城市，例如 '[東京] 參觀淺草寺'），以及簡短描述。\n")
	b.WriteString("請以繁體中文回覆，並嚴格遵循指定的 JSON schema 格式。")
	return b.String()
}
