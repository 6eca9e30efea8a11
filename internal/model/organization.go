package model

// OrganizationSearchResult is a single row of a search response.
type OrganizationSearchResult struct {
	City            *string `json:"city"`
	State           *string `json:"state"`
	NTEECode        *string `json:"ntee_code"`
	LatestRevenue   *int64  `json:"latest_revenue"`
	LatestExpenses  *int64  `json:"latest_expenses"`
	LatestNetAssets *int64  `json:"latest_net_assets"`
	LatestTaxYear   *int    `json:"latest_tax_year"`
	ID              string  `json:"id"`
	EIN             string  `json:"ein"`
	Name            string  `json:"name"`
}

// Location returns "City, ST" when both parts are known.
func (r OrganizationSearchResult) Location() string {
	return location(r.City, r.State)
}

// TypeaheadResult is a lightweight suggestion used by the search dropdown.
type TypeaheadResult struct {
	City  *string `json:"city"`
	State *string `json:"state"`
	ID    string  `json:"id"`
	EIN   string  `json:"ein"`
	Name  string  `json:"name"`
}

// Location returns "City, ST" when both parts are known.
func (r TypeaheadResult) Location() string {
	return location(r.City, r.State)
}

// OrganizationProfile is the full profile of one organization.
// Filings are ordered most recent first by backend convention.
type OrganizationProfile struct {
	City       *string         `json:"city"`
	State      *string         `json:"state"`
	NTEECode   *string         `json:"ntee_code"`
	RulingDate *string         `json:"ruling_date"`
	ID         string          `json:"id"`
	EIN        string          `json:"ein"`
	Name       string          `json:"name"`
	Filings    []Filing        `json:"filings"`
	Metrics    ComputedMetrics `json:"metrics"`
}

// Location returns "City, ST" when both parts are known.
func (p OrganizationProfile) Location() string {
	return location(p.City, p.State)
}

// LatestFiling returns the first filing, which the backend sends as the most recent.
func (p OrganizationProfile) LatestFiling() (Filing, bool) {
	if len(p.Filings) == 0 {
		return Filing{}, false
	}
	return p.Filings[0], true
}

// People flattens the people of every filing, preserving filing order.
func (p OrganizationProfile) People() []FilingPerson {
	var people []FilingPerson
	for _, f := range p.Filings {
		people = append(people, f.People...)
	}
	return people
}

// Grants flattens the grants of every filing, preserving filing order.
func (p OrganizationProfile) Grants() []FilingGrant {
	var grants []FilingGrant
	for _, f := range p.Filings {
		grants = append(grants, f.Grants...)
	}
	return grants
}

// Filing is one tax year's return for an organization.
type Filing struct {
	FilingDate             *string        `json:"filing_date"`
	TotalRevenue           *int64         `json:"total_revenue"`
	TotalExpenses          *int64         `json:"total_expenses"`
	NetAssets              *int64         `json:"net_assets"`
	ContributionsAndGrants *int64         `json:"contributions_and_grants"`
	ProgramServiceRevenue  *int64         `json:"program_service_revenue"`
	InvestmentIncome       *int64         `json:"investment_income"`
	ProgramExpenses        *int64         `json:"program_expenses"`
	ManagementExpenses     *int64         `json:"management_expenses"`
	FundraisingExpenses    *int64         `json:"fundraising_expenses"`
	NumEmployees           *int64         `json:"num_employees"`
	NumVolunteers          *int64         `json:"num_volunteers"`
	MissionDescription     *string        `json:"mission_description"`
	RawXMLURL              *string        `json:"raw_xml_url"`
	ID                     string         `json:"id"`
	ObjectID               string         `json:"object_id"`
	FilingType             string         `json:"filing_type"`
	People                 []FilingPerson `json:"people"`
	Grants                 []FilingGrant  `json:"grants"`
	TaxYear                int            `json:"tax_year"`
}

// FilingPerson is an officer, director or employee listed on a filing.
type FilingPerson struct {
	Title                *string `json:"title"`
	Compensation         *int64  `json:"compensation"`
	ID                   string  `json:"id"`
	Name                 string  `json:"name"`
	IsOfficer            bool    `json:"is_officer"`
	IsDirector           bool    `json:"is_director"`
	IsKeyEmployee        bool    `json:"is_key_employee"`
	IsHighestCompensated bool    `json:"is_highest_compensated"`
}

// FilingGrant is a grant awarded by the filing organization.
type FilingGrant struct {
	RecipientEIN   *string `json:"recipient_ein"`
	RecipientCity  *string `json:"recipient_city"`
	RecipientState *string `json:"recipient_state"`
	Amount         *int64  `json:"amount"`
	Purpose        *string `json:"purpose"`
	ID             string  `json:"id"`
	RecipientName  string  `json:"recipient_name"`
}

// RecipientLocation returns "City, ST" when both parts are known.
func (g FilingGrant) RecipientLocation() string {
	return location(g.RecipientCity, g.RecipientState)
}

// ComputedMetrics are ratios precomputed by the backend.
type ComputedMetrics struct {
	ProgramExpenseRatio   *float64 `json:"program_expense_ratio"`
	FundraisingEfficiency *float64 `json:"fundraising_efficiency"`
	RevenueGrowthRate     *float64 `json:"revenue_growth_rate"`
}

func location(city, state *string) string {
	if city == nil || state == nil || *city == "" || *state == "" {
		return ""
	}
	return *city + ", " + *state
}

// Deref returns the pointed-to string or "".
func Deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
