package components

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	ltable "github.com/charmbracelet/lipgloss/table"
	"github.com/michaelpawlus/990-beacon/internal/api"
	"github.com/michaelpawlus/990-beacon/internal/format"
	"github.com/michaelpawlus/990-beacon/internal/model"
	"github.com/michaelpawlus/990-beacon/internal/tui/themes"
	"github.com/michaelpawlus/990-beacon/internal/tui/viewmodel"
)

const (
	profileNotFoundTitle = "Organization not found."
	profileFailedTitle   = "Failed to load organization data."
	profileErrorBody     = "The organization you are looking for may not exist or may not have any 990 filings."
	noPeopleText         = "No personnel data available."
)

type profileKeyMap struct {
	NextTab key.Binding
	PrevTab key.Binding
	JumpTab key.Binding
	Sort    key.Binding
	Retry   key.Binding
	Back    key.Binding
	Scroll  key.Binding
}

var profileKeys = profileKeyMap{
	NextTab: key.NewBinding(
		key.WithKeys("tab", "right", "l"),
		key.WithHelp("tab/→", "next tab"),
	),
	PrevTab: key.NewBinding(
		key.WithKeys("shift+tab", "left", "h"),
		key.WithHelp("shift+tab/←", "previous tab"),
	),
	JumpTab: key.NewBinding(
		key.WithKeys("1", "2", "3"),
		key.WithHelp("1-3", "jump to tab"),
	),
	Sort: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "sort by compensation"),
	),
	Retry: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "retry"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc", "backspace"),
		key.WithHelp("esc", "back"),
	),
	Scroll: key.NewBinding(
		key.WithKeys("up", "down", "pgup", "pgdown"),
		key.WithHelp("↑/↓", "scroll"),
	),
}

// ProfileModel shows one organization. It loads the profile when initialized.
type ProfileModel struct {
	ctx      context.Context
	service  OrganizationService
	err      error
	profile  *model.OrganizationProfile
	theme    themes.Theme
	tabs     []viewmodel.ProfileTab
	spinner  spinner.Model
	overview viewport.Model
	people   table.Model
	grants   table.Model
	id       string
	tab      int
	width    int
	height   int
	loading  bool
	sortAsc  bool
}

// NewProfileModel creates a profile screen for the organization with the given id.
func NewProfileModel(ctx context.Context, service OrganizationService, id string, theme themes.Theme) ProfileModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(theme.Primary)

	return ProfileModel{
		ctx:      ctx,
		service:  service,
		theme:    theme,
		spinner:  s,
		overview: viewport.New(80, 10),
		people:   newProfileTable(theme),
		grants:   newProfileTable(theme),
		id:       id,
		width:    80,
		height:   24,
		loading:  true,
	}
}

func newProfileTable(theme themes.Theme) table.Model {
	t := table.New(table.WithFocused(true), table.WithHeight(10))
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(theme.Border).
		BorderBottom(true).
		Bold(true)
	s.Selected = theme.Highlighted
	t.SetStyles(s)
	return t
}

// Init starts loading the profile.
func (m ProfileModel) Init() tea.Cmd {
	return tea.Batch(m.load(), m.spinner.Tick)
}

// ID returns the organization id this screen shows.
func (m ProfileModel) ID() string {
	return m.id
}

// Loading reports whether the profile request is outstanding.
func (m ProfileModel) Loading() bool {
	return m.loading
}

// Err returns the load failure, if any.
func (m ProfileModel) Err() error {
	return m.err
}

// Profile returns the loaded profile, or nil.
func (m ProfileModel) Profile() *model.OrganizationProfile {
	return m.profile
}

// ActiveTab returns the selected tab.
func (m ProfileModel) ActiveTab() viewmodel.ProfileTab {
	if m.tab < len(m.tabs) {
		return m.tabs[m.tab]
	}
	return viewmodel.TabOverview
}

// SortAscending reports the compensation sort direction of the people table.
func (m ProfileModel) SortAscending() bool {
	return m.sortAsc
}

// KeyBindings returns the bindings that currently apply.
func (m ProfileModel) KeyBindings() []key.Binding {
	switch {
	case m.loading:
		return []key.Binding{profileKeys.Back}
	case m.err != nil:
		return []key.Binding{profileKeys.Retry, profileKeys.Back}
	}

	bindings := []key.Binding{profileKeys.NextTab, profileKeys.JumpTab, profileKeys.Scroll}
	if m.ActiveTab() == viewmodel.TabPeople {
		bindings = append(bindings, profileKeys.Sort)
	}
	return append(bindings, profileKeys.Back)
}

func (m ProfileModel) load() tea.Cmd {
	ctx, svc, id := m.ctx, m.service, m.id
	return func() tea.Msg {
		profile, err := svc.Organization(ctx, id)
		return profileLoadedMsg{id: id, profile: profile, err: err}
	}
}

// Resize sets the available area.
func (m *ProfileModel) Resize(width, height int) {
	m.width = width
	m.height = height
	m.layout()
}

// Update handles messages.
func (m ProfileModel) Update(msg tea.Msg) (ProfileModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Resize(msg.Width, msg.Height)
		return m, nil

	case profileLoadedMsg:
		if msg.id != m.id {
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			m.profile = nil
			return m, nil
		}
		profile := msg.profile
		m.err = nil
		m.profile = &profile
		m.tabs = viewmodel.AvailableTabs(profile)
		m.tab = 0
		m.layout()
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m ProfileModel) handleKey(msg tea.KeyMsg) (ProfileModel, tea.Cmd) {
	if key.Matches(msg, profileKeys.Back) {
		return m, func() tea.Msg { return BackMsg{} }
	}

	if m.loading {
		return m, nil
	}
	if m.err != nil {
		if key.Matches(msg, profileKeys.Retry) {
			m.loading = true
			m.err = nil
			return m, tea.Batch(m.load(), m.spinner.Tick)
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, profileKeys.NextTab):
		m.tab = (m.tab + 1) % len(m.tabs)
		return m, nil

	case key.Matches(msg, profileKeys.PrevTab):
		m.tab = (m.tab + len(m.tabs) - 1) % len(m.tabs)
		return m, nil

	case key.Matches(msg, profileKeys.JumpTab):
		if i, err := strconv.Atoi(msg.String()); err == nil && i >= 1 && i <= len(m.tabs) {
			m.tab = i - 1
		}
		return m, nil

	case key.Matches(msg, profileKeys.Sort):
		if m.ActiveTab() == viewmodel.TabPeople {
			m.sortAsc = !m.sortAsc
			m.fillPeople()
		}
		return m, nil
	}

	var cmd tea.Cmd
	switch m.ActiveTab() {
	case viewmodel.TabOverview:
		m.overview, cmd = m.overview.Update(msg)
	case viewmodel.TabPeople:
		m.people, cmd = m.people.Update(msg)
	case viewmodel.TabGrants:
		m.grants, cmd = m.grants.Update(msg)
	}
	return m, cmd
}

// layout sizes the scrollable areas and refills them from the profile.
func (m *ProfileModel) layout() {
	if m.profile == nil {
		return
	}

	bodyHeight := max(m.height-lipgloss.Height(m.headerView())-lipgloss.Height(m.tabsView())-2, 5)
	m.overview.Width = m.width
	m.overview.Height = bodyHeight
	m.overview.SetContent(m.overviewContent())

	m.people.SetWidth(m.width)
	m.people.SetHeight(bodyHeight - 2)
	m.fillPeople()

	m.grants.SetWidth(m.width)
	m.grants.SetHeight(bodyHeight - 2)
	m.fillGrants()
}

func (m *ProfileModel) fillPeople() {
	if m.profile == nil {
		return
	}

	w := max(m.width-10, 40)
	m.people.SetRows(nil)
	m.people.SetColumns([]table.Column{
		{Title: "Name", Width: w * 30 / 100},
		{Title: "Title", Width: w * 25 / 100},
		{Title: "Role", Width: w * 25 / 100},
		{Title: "Compensation " + viewmodel.SortIndicator(m.sortAsc), Width: w * 20 / 100},
	})

	people := viewmodel.SortByCompensation(m.profile.People(), m.sortAsc)
	rows := make([]table.Row, 0, len(people))
	for _, p := range people {
		rows = append(rows, table.Row{
			p.Name,
			viewmodel.OrNA(p.Title),
			viewmodel.PersonRoles(p),
			format.Currency(p.Compensation),
		})
	}
	m.people.SetRows(rows)
}

func (m *ProfileModel) fillGrants() {
	if m.profile == nil {
		return
	}

	w := max(m.width-12, 50)
	m.grants.SetRows(nil)
	m.grants.SetColumns([]table.Column{
		{Title: "Recipient", Width: w * 28 / 100},
		{Title: "EIN", Width: w * 12 / 100},
		{Title: "Location", Width: w * 18 / 100},
		{Title: "Purpose", Width: w * 27 / 100},
		{Title: "Amount", Width: w * 15 / 100},
	})

	grants := m.profile.Grants()
	rows := make([]table.Row, 0, len(grants))
	for _, g := range grants {
		location := g.RecipientLocation()
		if location == "" {
			location = format.NotAvailable
		}
		rows = append(rows, table.Row{
			g.RecipientName,
			model.Deref(g.RecipientEIN),
			location,
			viewmodel.SanitizeForDisplay(viewmodel.OrNA(g.Purpose)),
			format.Currency(g.Amount),
		})
	}
	m.grants.SetRows(rows)
}

// View renders the profile screen.
func (m ProfileModel) View() string {
	if m.loading {
		return m.loadingView()
	}
	if m.err != nil {
		return m.errorView()
	}

	var body string
	switch m.ActiveTab() {
	case viewmodel.TabOverview:
		body = m.overview.View()
	case viewmodel.TabPeople:
		body = m.peopleView()
	case viewmodel.TabGrants:
		body = m.theme.Subtitle.Render("Grants Awarded") + "\n" + m.grants.View()
	}

	return strings.Join([]string{m.headerView(), m.tabsView(), "", body}, "\n")
}

func (m ProfileModel) loadingView() string {
	lines := []string{m.spinner.View() + " " + m.theme.Muted.Render("Loading organization...")}
	lines = append(lines,
		m.theme.Skeleton.Render(strings.Repeat("░", max(m.width/2, 10))),
		m.theme.Skeleton.Render(strings.Repeat("░", max(m.width/3, 8))),
		"",
	)
	block := m.theme.Skeleton.Render(strings.Repeat("░", max(m.width/3-2, 6)))
	row := lipgloss.JoinHorizontal(lipgloss.Top, block, "  ", block, "  ", block)
	lines = append(lines, row, row, row)
	return strings.Join(lines, "\n")
}

func (m ProfileModel) errorView() string {
	title := profileFailedTitle
	if api.IsNotFound(m.err) {
		title = profileNotFoundTitle
	}

	box := lipgloss.NewStyle().Width(m.width).Align(lipgloss.Center).Padding(2, 0)
	return box.Render(strings.Join([]string{
		m.theme.Title.Render(title),
		m.theme.Subtitle.Render(profileErrorBody),
		"",
		m.theme.Muted.Render("Press r to retry or esc to go back."),
	}, "\n"))
}

func (m ProfileModel) headerView() string {
	p := m.profile
	name := m.theme.Title.Render(p.Name)
	if p.NTEECode != nil && *p.NTEECode != "" {
		badge := m.theme.Badge.Render(*p.NTEECode)
		gap := max(m.width-lipgloss.Width(name)-lipgloss.Width(badge), 1)
		name += strings.Repeat(" ", gap) + badge
	}

	lines := []string{name, m.theme.Muted.Render(viewmodel.ProfileSubtitle(*p))}
	if f, ok := p.LatestFiling(); ok && f.MissionDescription != nil && *f.MissionDescription != "" {
		mission := viewmodel.SanitizeForDisplay(*f.MissionDescription)
		lines = append(lines, "", m.theme.Subtitle.Width(m.width).Render(mission))
	}
	return strings.Join(lines, "\n")
}

func (m ProfileModel) tabsView() string {
	parts := make([]string, 0, len(m.tabs))
	for i, t := range m.tabs {
		caption := fmt.Sprintf("%d %s", i+1, t)
		if i == m.tab {
			parts = append(parts, m.theme.TabActive.Render(caption))
		} else {
			parts = append(parts, m.theme.TabInactive.Render(caption))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m ProfileModel) peopleView() string {
	if len(m.profile.People()) == 0 {
		return lipgloss.NewStyle().Width(m.width).Align(lipgloss.Center).Padding(1, 0).
			Render(m.theme.Muted.Render(noPeopleText))
	}
	return m.theme.Subtitle.Render("Officers, Directors & Key Employees") + "\n" + m.people.View()
}

func (m ProfileModel) overviewContent() string {
	p := m.profile
	var sections []string

	if f, ok := p.LatestFiling(); ok {
		items := viewmodel.FinancialOverview(f)
		cards := make([]string, len(items))
		for i, it := range items {
			cards[i] = m.card(it.Label, format.Currency(it.Value), "")
		}
		sections = append(sections,
			m.theme.Bold.Render(fmt.Sprintf("Financial Overview (%d)", f.TaxYear)),
			m.grid(cards, 3),
		)
	}

	if rows := viewmodel.Trend(p.Filings); rows != nil {
		sections = append(sections, "", m.theme.Bold.Render("Financial Trends"), m.trendTable(rows))
	}

	metrics := viewmodel.Metrics(p.Metrics)
	cards := make([]string, len(metrics))
	for i, it := range metrics {
		cards[i] = m.card(it.Label, format.Percent(it.Value), it.Description)
	}
	sections = append(sections, "", m.theme.Bold.Render("Key Metrics"), m.grid(cards, 3))

	return strings.Join(sections, "\n")
}

func (m ProfileModel) card(label, value, description string) string {
	w := max(m.width/3-2, 18)
	lines := []string{m.theme.CardLabel.Render(label), m.theme.CardValue.Render(value)}
	if description != "" {
		lines = append(lines, m.theme.Muted.Render(description))
	}
	return m.theme.Card.Width(w).Render(strings.Join(lines, "\n"))
}

func (m ProfileModel) grid(cards []string, perRow int) string {
	var rows []string
	for i := 0; i < len(cards); i += perRow {
		end := min(i+perRow, len(cards))
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards[i:end]...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m ProfileModel) trendTable(rows []viewmodel.TrendRow) string {
	t := ltable.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(m.theme.Border)).
		Headers("Year", "Revenue", "Expenses", "Net Assets").
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == ltable.HeaderRow {
				return m.theme.Bold.Padding(0, 1)
			}
			return m.theme.Normal.Padding(0, 1)
		})
	for _, r := range rows {
		t.Row(
			strconv.Itoa(r.Year),
			format.CompactNumber(r.Revenue),
			format.CompactNumber(r.Expenses),
			format.CompactNumber(r.NetAssets),
		)
	}
	return t.Render()
}
