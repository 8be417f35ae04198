package tripclient

import (
	"fmt"
	"io"
	"strings"

	"github.com/FACorreiaa/go-itinerary-generator/internal/types"
)

// Render writes the itinerary as plain text: the title, then each day with its
// numbered activities.
func Render(w io.Writer, it types.Itinerary) error {
	var b strings.Builder
	b.WriteString(it.TripTitle)
	b.WriteString("\n")
	b.WriteString(strings.Repeat("=", max(len([]rune(it.TripTitle)), 1)*2))
	b.WriteString("\n")

	for _, day := range it.DailyPlans {
		fmt.Fprintf(&b, "\n%s  %s\n", day.Day, day.Date)
		if len(day.Activities) == 0 {
			fmt.Fprintf(&b, "  %s\n", MsgNoActivities)
			continue
		}
		for i, act := range day.Activities {
			fmt.Fprintf(&b, "  %d. %s  %s\n", i+1, act.Time, act.Title)
			if act.Description != "" {
				fmt.Fprintf(&b, "     %s\n", act.Description)
			}
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}
