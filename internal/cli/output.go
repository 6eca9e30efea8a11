package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/michaelpawlus/990-beacon/internal/format"
	"github.com/michaelpawlus/990-beacon/internal/model"
	"github.com/michaelpawlus/990-beacon/internal/tui/viewmodel"
)

// WriteJSON writes v as indented JSON followed by a newline.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	return nil
}

// RenderSearchResults renders one page of search results.
func RenderSearchResults(r model.PaginatedResults[model.OrganizationSearchResult]) string {
	if len(r.Items) == 0 {
		return FormatInfo("No results found. Try adjusting your search terms or filters.")
	}

	lines := []string{BoldStyle.Render(viewmodel.ResultCountLabel(r.Total))}
	lines = append(lines, RenderTable(
		[]string{"Name", "EIN", "Location", "NTEE", "Year", "Revenue", "ID"},
		searchRows(r.Items),
		5,
	))

	if pv := viewmodel.NewPaginationView(r); pv.Visible() {
		lines = append(lines, SubtleStyle.Render(pv.Label()))
	}
	return strings.Join(lines, "\n")
}

func searchRows(items []model.OrganizationSearchResult) [][]string {
	rows := make([][]string, 0, len(items))
	for _, it := range items {
		year := ""
		if it.LatestTaxYear != nil {
			year = strconv.Itoa(*it.LatestTaxYear)
		}
		rows = append(rows, []string{
			viewmodel.TruncateString(viewmodel.SanitizeForDisplay(it.Name), 40),
			it.EIN,
			it.Location(),
			model.Deref(it.NTEECode),
			year,
			format.CompactNumber(it.LatestRevenue),
			it.ID,
		})
	}
	return rows
}

// RenderSuggestions renders typeahead suggestions.
func RenderSuggestions(results []model.TypeaheadResult) string {
	if len(results) == 0 {
		return FormatInfo("No suggestions.")
	}

	rows := make([][]string, 0, len(results))
	for _, r := range results {
		rows = append(rows, []string{viewmodel.SanitizeForDisplay(r.Name), r.EIN, r.Location(), r.ID})
	}
	return RenderTable([]string{"Name", "EIN", "Location", "ID"}, rows)
}

// RenderOrganization renders a full organization profile: header, latest
// financials, trends, metrics, people and grants.
func RenderOrganization(p model.OrganizationProfile) string {
	title := FormatTitle(viewmodel.SanitizeForDisplay(p.Name))
	if p.NTEECode != nil && *p.NTEECode != "" {
		title += " " + BadgeStyle.Render(*p.NTEECode)
	}
	sections := []string{title, SubtitleStyle.Render(viewmodel.ProfileSubtitle(p))}

	latest, ok := p.LatestFiling()
	if !ok {
		sections = append(sections, "", FormatInfo("No 990 filings on record."))
		return strings.Join(sections, "\n")
	}

	if latest.MissionDescription != nil && *latest.MissionDescription != "" {
		sections = append(sections, "", viewmodel.SanitizeForDisplay(*latest.MissionDescription))
	}

	var overview [][]string
	for _, a := range viewmodel.FinancialOverview(latest) {
		overview = append(overview, []string{a.Label, format.Currency(a.Value)})
	}
	sections = append(sections, "",
		TitleStyle.Render(fmt.Sprintf("Financial Overview (%d)", latest.TaxYear)),
		RenderTable([]string{"Item", "Amount"}, overview, 1))

	if trend := viewmodel.Trend(p.Filings); trend != nil {
		var rows [][]string
		for _, r := range trend {
			rows = append(rows, []string{
				strconv.Itoa(r.Year),
				format.CompactNumber(r.Revenue),
				format.CompactNumber(r.Expenses),
				format.CompactNumber(r.NetAssets),
			})
		}
		sections = append(sections, "", TitleStyle.Render("Financial Trends"),
			RenderTable([]string{"Year", "Revenue", "Expenses", "Net Assets"}, rows, 1, 2, 3))
	}

	var metrics [][]string
	for _, m := range viewmodel.Metrics(p.Metrics) {
		metrics = append(metrics, []string{m.Label, format.Percent(m.Value)})
	}
	sections = append(sections, "", TitleStyle.Render("Key Metrics"),
		RenderTable([]string{"Metric", "Value"}, metrics, 1))

	people := viewmodel.SortByCompensation(p.People(), false)
	sections = append(sections, "", TitleStyle.Render("People"))
	if len(people) == 0 {
		sections = append(sections, SubtleStyle.Render("No personnel data available."))
	} else {
		rows := make([][]string, 0, len(people))
		for _, person := range people {
			rows = append(rows, []string{
				viewmodel.SanitizeForDisplay(person.Name),
				viewmodel.OrNA(person.Title),
				viewmodel.PersonRoles(person),
				format.Currency(person.Compensation),
			})
		}
		sections = append(sections, RenderTable([]string{"Name", "Title", "Role", "Compensation"}, rows, 3))
	}

	if grants := p.Grants(); len(grants) > 0 {
		rows := make([][]string, 0, len(grants))
		for _, g := range grants {
			rows = append(rows, []string{
				viewmodel.SanitizeForDisplay(g.RecipientName),
				viewmodel.OrNA(g.RecipientEIN),
				g.RecipientLocation(),
				viewmodel.TruncateString(viewmodel.OrNA(g.Purpose), 40),
				format.Currency(g.Amount),
			})
		}
		sections = append(sections, "", TitleStyle.Render("Grants"),
			RenderTable([]string{"Recipient", "EIN", "Location", "Purpose", "Amount"}, rows, 4))
	}

	return strings.Join(sections, "\n")
}

// RenderUsage renders the usage counters.
func RenderUsage(u model.UsageSummary) string {
	var rows [][]string
	for _, item := range viewmodel.UsageItems(u) {
		rows = append(rows, []string{item.Label, format.Count(item.Value)})
	}
	return FormatTitle("Usage") + "\n" + RenderTable([]string{"Counter", "Value"}, rows, 1)
}

// RenderUser renders the signed-in account.
func RenderUser(u model.User) string {
	lines := []string{
		BoldStyle.Render(u.DisplayName()),
		u.Email,
		"Plan: " + viewmodel.PlanLabel(u.PlanTier),
	}
	return RenderBox("Account", strings.Join(lines, "\n"))
}

// RenderHealth renders the backend health line.
func RenderHealth(h model.Health) string {
	if h.OK() {
		return FormatSuccess(viewmodel.HealthLine(h))
	}
	return FormatWarning(viewmodel.HealthLine(h))
}
