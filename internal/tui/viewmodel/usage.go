package viewmodel

import (
	"strings"

	"github.com/michaelpawlus/990-beacon/internal/model"
)

// UsageItem is one counter card on the usage screen.
type UsageItem struct {
	Label string
	Value int
}

// UsageItems lists the usage counters in display order.
func UsageItems(u model.UsageSummary) []UsageItem {
	return []UsageItem{
		{Label: "Searches today", Value: u.SearchesToday},
		{Label: "Searches this month", Value: u.SearchesThisMonth},
		{Label: "Profile views today", Value: u.ProfileViewsToday},
		{Label: "Profile views this month", Value: u.ProfileViewsThisMonth},
	}
}

// PlanLabel capitalizes a plan tier for display ("free" -> "Free").
func PlanLabel(tier string) string {
	if tier == "" {
		return "Unknown"
	}
	r := []rune(tier)
	return strings.ToUpper(string(r[0])) + string(r[1:])
}

// HealthLine summarizes the backend health response.
func HealthLine(h model.Health) string {
	line := "API " + h.Status + " · database " + h.DB
	if h.Version != "" {
		line += " · v" + strings.TrimPrefix(h.Version, "v")
	}
	return line
}
