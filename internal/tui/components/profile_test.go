package components

import (
	"context"
	"errors"
	"testing"

	"github.com/michaelpawlus/990-beacon/internal/api"
	"github.com/michaelpawlus/990-beacon/internal/model"
	tuitest "github.com/michaelpawlus/990-beacon/internal/tui/testing"
	"github.com/michaelpawlus/990-beacon/internal/tui/themes"
	"github.com/michaelpawlus/990-beacon/internal/tui/viewmodel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleProfile() model.OrganizationProfile {
	ratio := 0.823
	return model.OrganizationProfile{
		ID:         "org-1",
		EIN:        "530196605",
		Name:       "American Red Cross",
		City:       strp("Washington"),
		State:      strp("DC"),
		NTEECode:   strp("P20"),
		RulingDate: strp("1946-05"),
		Metrics:    model.ComputedMetrics{ProgramExpenseRatio: &ratio},
		Filings: []model.Filing{
			{
				TaxYear:            2022,
				TotalRevenue:       int64p(3_000_000),
				TotalExpenses:      int64p(2_500_000),
				MissionDescription: strp("Prevent and alleviate\nhuman suffering."),
				People: []model.FilingPerson{
					{Name: "Low Paid", Compensation: int64p(10), IsDirector: true},
					{Name: "High Paid", Compensation: int64p(900_000), IsOfficer: true, Title: strp("CEO")},
				},
			},
			{
				TaxYear:      2021,
				TotalRevenue: int64p(2_000_000),
				Grants: []model.FilingGrant{
					{RecipientName: "Food Bank", Amount: int64p(5000)},
				},
			},
		},
	}
}

func loadedProfile(t *testing.T, p model.OrganizationProfile) (ProfileModel, *fakeBackend) {
	t.Helper()
	svc := &fakeBackend{
		organization: func(string) (model.OrganizationProfile, error) { return p, nil },
	}
	m := NewProfileModel(context.Background(), svc, p.ID, themes.Default)
	m.Resize(120, 60)
	msg, ok := tuitest.Find[profileLoadedMsg](m.Init())
	require.True(t, ok)
	m, _ = m.Update(msg)
	require.False(t, m.Loading())
	return m, svc
}

func TestProfile_LoadsOnInit(t *testing.T) {
	m, svc := loadedProfile(t, sampleProfile())

	assert.Equal(t, []string{"org-1"}, svc.orgCalls)
	require.NotNil(t, m.Profile())
	assert.Equal(t, viewmodel.TabOverview, m.ActiveTab())

	view := tuitest.PlainView(m.View())
	assert.Contains(t, view, "American Red Cross")
	assert.Contains(t, view, "EIN: 530196605 | Washington, DC | Ruling Date: 1946-05")
	assert.Contains(t, view, "Prevent and alleviate human suffering.")
	assert.Contains(t, view, "Financial Overview (2022)")
	assert.Contains(t, view, "$3,000,000")
	assert.Contains(t, view, "Financial Trends")
	assert.Contains(t, view, "82.3%")
	assert.Contains(t, view, "Percentage of expenses spent on")
	assert.True(t, tuitest.ContainsInOrder(view, "Overview", "People", "Grants"))
}

func TestProfile_LoadingView(t *testing.T) {
	m := NewProfileModel(context.Background(), &fakeBackend{}, "org-1", themes.Default)

	assert.True(t, m.Loading())
	assert.Contains(t, tuitest.PlainView(m.View()), "Loading organization...")
}

func TestProfile_NotFound(t *testing.T) {
	svc := &fakeBackend{
		organization: func(string) (model.OrganizationProfile, error) {
			return model.OrganizationProfile{}, &api.Error{Status: 404, StatusText: "Not Found"}
		},
	}
	m := NewProfileModel(context.Background(), svc, "missing", themes.Default)
	msg, _ := tuitest.Find[profileLoadedMsg](m.Init())
	m, _ = m.Update(msg)

	view := tuitest.PlainView(m.View())
	assert.Contains(t, view, "Organization not found.")
	assert.Contains(t, view, "may not have any 990 filings.")
	assert.NotContains(t, view, "Failed to load")
}

func TestProfile_OtherErrorAndRetry(t *testing.T) {
	fail := true
	svc := &fakeBackend{
		organization: func(string) (model.OrganizationProfile, error) {
			if fail {
				return model.OrganizationProfile{}, errors.New("Network error")
			}
			return sampleProfile(), nil
		},
	}
	m := NewProfileModel(context.Background(), svc, "org-1", themes.Default)
	msg, _ := tuitest.Find[profileLoadedMsg](m.Init())
	m, _ = m.Update(msg)

	assert.Contains(t, tuitest.PlainView(m.View()), "Failed to load organization data.")

	fail = false
	m, cmd := m.Update(tuitest.KeyPress("r"))
	assert.True(t, m.Loading())
	msg, ok := tuitest.Find[profileLoadedMsg](cmd)
	require.True(t, ok)
	m, _ = m.Update(msg)

	assert.NoError(t, m.Err())
	assert.Len(t, svc.orgCalls, 2)
	assert.Contains(t, tuitest.PlainView(m.View()), "American Red Cross")
}

func TestProfile_IgnoresOtherOrganizationsResponse(t *testing.T) {
	m := NewProfileModel(context.Background(), &fakeBackend{}, "org-1", themes.Default)

	m, _ = m.Update(profileLoadedMsg{id: "org-2", profile: model.OrganizationProfile{Name: "Other"}})
	assert.True(t, m.Loading())
}

func TestProfile_Tabs(t *testing.T) {
	m, _ := loadedProfile(t, sampleProfile())

	m, _ = m.Update(tuitest.KeyTab())
	assert.Equal(t, viewmodel.TabPeople, m.ActiveTab())

	m, _ = m.Update(tuitest.KeyPress("3"))
	assert.Equal(t, viewmodel.TabGrants, m.ActiveTab())
	view := tuitest.PlainView(m.View())
	assert.Contains(t, view, "Grants Awarded")
	assert.Contains(t, view, "Food Bank")
	assert.Contains(t, view, "$5,000")

	m, _ = m.Update(tuitest.KeyTab())
	assert.Equal(t, viewmodel.TabOverview, m.ActiveTab(), "tabs wrap around")

	m, _ = m.Update(tuitest.KeyShiftTab())
	assert.Equal(t, viewmodel.TabGrants, m.ActiveTab())
}

func TestProfile_NoGrantsTab(t *testing.T) {
	p := sampleProfile()
	p.Filings[1].Grants = nil
	m, _ := loadedProfile(t, p)

	m, _ = m.Update(tuitest.KeyPress("3"))
	assert.Equal(t, viewmodel.TabOverview, m.ActiveTab(), "there is no third tab")
	assert.NotContains(t, tuitest.PlainView(m.View()), "3 Grants")
}

func TestProfile_PeopleSortToggle(t *testing.T) {
	m, _ := loadedProfile(t, sampleProfile())
	m, _ = m.Update(tuitest.KeyPress("2"))

	view := tuitest.PlainView(m.View())
	assert.Contains(t, view, "Compensation ↓")
	assert.True(t, tuitest.ContainsInOrder(view, "High Paid", "Low Paid"))
	assert.Contains(t, view, "Officer")
	assert.Contains(t, view, "CEO")

	m, _ = m.Update(tuitest.KeyPress("s"))
	assert.True(t, m.SortAscending())
	view = tuitest.PlainView(m.View())
	assert.Contains(t, view, "Compensation ↑")
	assert.True(t, tuitest.ContainsInOrder(view, "Low Paid", "High Paid"))
}

func TestProfile_SortOnlyOnPeopleTab(t *testing.T) {
	m, _ := loadedProfile(t, sampleProfile())

	m, _ = m.Update(tuitest.KeyPress("s"))
	assert.False(t, m.SortAscending())
}

func TestProfile_NoPeople(t *testing.T) {
	p := sampleProfile()
	p.Filings[0].People = nil
	m, _ := loadedProfile(t, p)

	m, _ = m.Update(tuitest.KeyPress("2"))
	assert.Contains(t, tuitest.PlainView(m.View()), "No personnel data available.")
}

func TestProfile_SingleFilingHasNoTrend(t *testing.T) {
	p := sampleProfile()
	p.Filings = p.Filings[:1]
	m, _ := loadedProfile(t, p)

	assert.NotContains(t, tuitest.PlainView(m.View()), "Financial Trends")
}

func TestProfile_Back(t *testing.T) {
	m, _ := loadedProfile(t, sampleProfile())

	_, cmd := m.Update(tuitest.KeyEsc())
	_, ok := tuitest.Find[BackMsg](cmd)
	assert.True(t, ok)
}
