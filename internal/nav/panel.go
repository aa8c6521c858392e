package nav

type PanelKind string

const (
	PanelStats       PanelKind = "stats"
	PanelPlaceholder PanelKind = "placeholder"
)

// Panel is what the guard hands back to the shell for rendering.
type Panel struct {
	Screen      Screen    `json:"screen"`
	Kind        PanelKind `json:"kind"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Stats       []Stat    `json:"stats,omitempty"`
}

type Stat struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// dashboardPanel carries the platform-wide demo stats shown on the live
// dashboard.
func dashboardPanel() Panel {
	return Panel{
		Screen: ScreenDashboard,
		Kind:   PanelStats,
		Title:  Label(ScreenDashboard),
		Stats: []Stat{
			{Label: "Total Service Centers", Value: "45"},
			{Label: "Active Vehicles", Value: "6,000"},
			{Label: "Monthly Revenue", Value: "₹25L"},
			{Label: "Green Coins Issued", Value: "125K"},
		},
	}
}
