package viewmodel

import (
	"slices"
	"strings"

	"github.com/michaelpawlus/990-beacon/internal/model"
)

// ProfileTab identifies a tab of the organization profile.
type ProfileTab int

const (
	// TabOverview shows financials and metrics.
	TabOverview ProfileTab = iota
	// TabPeople shows officers, directors and key employees.
	TabPeople
	// TabGrants shows grants awarded.
	TabGrants
)

// String returns the tab caption.
func (t ProfileTab) String() string {
	switch t {
	case TabOverview:
		return "Overview"
	case TabPeople:
		return "People"
	case TabGrants:
		return "Grants"
	default:
		return "Unknown"
	}
}

// AvailableTabs lists the tabs for a profile; Grants only appears when
// some filing reports grants.
func AvailableTabs(p model.OrganizationProfile) []ProfileTab {
	tabs := []ProfileTab{TabOverview, TabPeople}
	if len(p.Grants()) > 0 {
		tabs = append(tabs, TabGrants)
	}
	return tabs
}

// ProfileSubtitle renders "EIN: x | City, ST | Ruling Date: d".
func ProfileSubtitle(p model.OrganizationProfile) string {
	s := ResultSubtitle(p.EIN, p.Location())
	if p.RulingDate != nil && *p.RulingDate != "" {
		s += " | Ruling Date: " + *p.RulingDate
	}
	return s
}

// LabeledAmount is one card of the financial overview.
type LabeledAmount struct {
	Value *int64
	Label string
}

// FinancialOverview lists the headline figures of a filing.
func FinancialOverview(f model.Filing) []LabeledAmount {
	return []LabeledAmount{
		{Label: "Total Revenue", Value: f.TotalRevenue},
		{Label: "Total Expenses", Value: f.TotalExpenses},
		{Label: "Net Assets", Value: f.NetAssets},
		{Label: "Contributions & Grants", Value: f.ContributionsAndGrants},
		{Label: "Program Service Revenue", Value: f.ProgramServiceRevenue},
		{Label: "Investment Income", Value: f.InvestmentIncome},
	}
}

// MetricItem is one card of the key metrics section.
type MetricItem struct {
	Value       *float64
	Label       string
	Description string
}

// Metrics lists the computed metrics with their explanations.
func Metrics(m model.ComputedMetrics) []MetricItem {
	return []MetricItem{
		{
			Label:       "Program Expense Ratio",
			Value:       m.ProgramExpenseRatio,
			Description: "Percentage of expenses spent on programs",
		},
		{
			Label:       "Fundraising Efficiency",
			Value:       m.FundraisingEfficiency,
			Description: "Fundraising costs as a share of total expenses",
		},
		{
			Label:       "Revenue Growth Rate",
			Value:       m.RevenueGrowthRate,
			Description: "Year-over-year revenue growth",
		},
	}
}

// TrendRow is one year of the financial trend.
type TrendRow struct {
	Revenue   *int64
	Expenses  *int64
	NetAssets *int64
	Year      int
}

// Trend orders filings by tax year ascending. It returns nil when fewer
// than two filings exist, since a single point is not a trend.
func Trend(filings []model.Filing) []TrendRow {
	if len(filings) < 2 {
		return nil
	}

	rows := make([]TrendRow, 0, len(filings))
	for _, f := range filings {
		rows = append(rows, TrendRow{
			Year:      f.TaxYear,
			Revenue:   f.TotalRevenue,
			Expenses:  f.TotalExpenses,
			NetAssets: f.NetAssets,
		})
	}
	slices.SortStableFunc(rows, func(a, b TrendRow) int {
		return a.Year - b.Year
	})
	return rows
}

// PersonRoles renders the role flags of a person, or "N/A".
func PersonRoles(p model.FilingPerson) string {
	var roles []string
	if p.IsOfficer {
		roles = append(roles, "Officer")
	}
	if p.IsDirector {
		roles = append(roles, "Director")
	}
	if p.IsKeyEmployee {
		roles = append(roles, "Key Employee")
	}
	if p.IsHighestCompensated {
		roles = append(roles, "Highest Compensated")
	}
	if len(roles) == 0 {
		return "N/A"
	}
	return strings.Join(roles, ", ")
}

// SortByCompensation returns a copy of people ordered by compensation.
// Missing compensation sorts as zero.
func SortByCompensation(people []model.FilingPerson, ascending bool) []model.FilingPerson {
	sorted := slices.Clone(people)
	slices.SortStableFunc(sorted, func(a, b model.FilingPerson) int {
		ac, bc := compensation(a), compensation(b)
		if !ascending {
			ac, bc = bc, ac
		}
		switch {
		case ac < bc:
			return -1
		case ac > bc:
			return 1
		default:
			return 0
		}
	})
	return sorted
}

func compensation(p model.FilingPerson) int64 {
	if p.Compensation == nil {
		return 0
	}
	return *p.Compensation
}

// SortIndicator renders the arrow shown next to the compensation header.
func SortIndicator(ascending bool) string {
	if ascending {
		return "↑"
	}
	return "↓"
}

// OrNA returns s, or "N/A" when it is nil or empty.
func OrNA(s *string) string {
	if s == nil || *s == "" {
		return "N/A"
	}
	return *s
}
