package viewmodel

// Screen identifies the top-level screen of the application.
type Screen int

const (
	// ScreenDashboard is the landing screen with the account card.
	ScreenDashboard Screen = iota
	// ScreenSearch is the organization search screen.
	ScreenSearch
	// ScreenProfile is the organization profile screen.
	ScreenProfile
	// ScreenUsage is the usage summary screen.
	ScreenUsage
)

// String returns the screen title used in the header.
func (s Screen) String() string {
	switch s {
	case ScreenDashboard:
		return "Dashboard"
	case ScreenSearch:
		return "Search"
	case ScreenProfile:
		return "Organization"
	case ScreenUsage:
		return "Usage"
	default:
		return "Unknown"
	}
}

// NavItem is one entry of the dashboard menu.
type NavItem struct {
	Key         string
	Label       string
	Description string
	Screen      Screen
}

// NavItems lists the screens reachable from the dashboard.
func NavItems() []NavItem {
	return []NavItem{
		{
			Key:         "s",
			Label:       "Search Organizations",
			Description: "Find nonprofits by name, EIN, or location.",
			Screen:      ScreenSearch,
		},
		{
			Key:         "u",
			Label:       "Usage",
			Description: "Searches and profile views on your account.",
			Screen:      ScreenUsage,
		},
	}
}
