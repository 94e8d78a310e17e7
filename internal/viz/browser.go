package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"icebody/internal/storage"
)

// Browser is a bubbletea model for paging through the columns of a
// persisted interior profile.
type Browser struct {
	meta     *storage.RunMetadata
	profile  *storage.Profile
	columns  []string
	selected int
	showHelp bool
}

// NewBrowser builds a browser over the loaded run. Columns missing from
// the profile are skipped.
func NewBrowser(meta *storage.RunMetadata, profile *storage.Profile) Browser {
	columns := make([]string, 0, len(PlotOrder))
	for _, name := range PlotOrder {
		if len(profile.Columns[name]) > 0 {
			columns = append(columns, name)
		}
	}
	return Browser{meta: meta, profile: profile, columns: columns}
}

func (b Browser) Init() tea.Cmd { return nil }

func (b Browser) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return b, tea.Quit
		case "tab", "right", "l":
			b.selected = (b.selected + 1) % len(b.columns)
		case "shift+tab", "left", "h":
			b.selected = (b.selected - 1 + len(b.columns)) % len(b.columns)
		case "?":
			b.showHelp = !b.showHelp
		}
	}
	return b, nil
}

func (b Browser) View() string {
	if len(b.columns) == 0 {
		return "no profile columns to display\n"
	}
	name := b.columns[b.selected]
	caption := ColumnCaptions[name]
	if caption == "" {
		caption = name
	}

	var out strings.Builder
	out.WriteString(headerStyle.Render(fmt.Sprintf("%s (%d shells)", b.meta.Body, b.profile.Shells())))
	out.WriteString("\n\n")
	out.WriteString(ProfilePlot(b.profile.Columns[name], caption+" vs shell index"))
	out.WriteString("\n\n")

	tabs := make([]string, len(b.columns))
	for i, c := range b.columns {
		if i == b.selected {
			tabs[i] = headerStyle.Render("[" + c + "]")
		} else {
			tabs[i] = valueStyle.Render(" " + c + " ")
		}
	}
	out.WriteString(strings.Join(tabs, " "))
	out.WriteString("\n")

	if b.showHelp {
		out.WriteString("\n")
		out.WriteString(RegimePanel(b.meta.Regimes))
	}
	out.WriteString(helpStyle.Render("tab/←→ switch column · ? regimes · q quit"))
	out.WriteString("\n")
	return out.String()
}
