package viz

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"icebody/internal/storage"
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(14)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	panelStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("240")).Padding(0, 2)
	helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

// ColumnCaptions maps profile column names to plot captions.
var ColumnCaptions = map[string]string{
	"depth_m":    "depth (m)",
	"radius_m":   "radius (m)",
	"P_MPa":      "pressure (MPa)",
	"T_K":        "temperature (K)",
	"rho_kgm3":   "density (kg/m3)",
	"Cp_JkgK":    "heat capacity (J/kg/K)",
	"alpha_pK":   "expansivity (1/K)",
	"kTherm_WmK": "conductivity (W/m/K)",
	"g_ms2":      "gravity (m/s2)",
	"MLayer_kg":  "shell mass (kg)",
}

// PlotOrder is the column sequence used by the plot command and browser.
var PlotOrder = []string{
	"T_K", "P_MPa", "rho_kgm3", "g_ms2", "kTherm_WmK", "alpha_pK",
}

// ProfilePlot renders one profile column against shell index.
func ProfilePlot(data []float64, caption string) string {
	return asciigraph.Plot(data,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption(caption),
	)
}

// RegimePanel renders the per-phase convection summaries as a styled
// block for terminal output.
func RegimePanel(regimes []storage.RegimeSummary) string {
	var b strings.Builder
	for i, r := range regimes {
		if i > 0 {
			b.WriteString("\n")
		}
		title := fmt.Sprintf("ice %s (%s)", r.Phase, r.Mode)
		rows := []string{
			row("T_convect", fmt.Sprintf("%.3f K", r.ConvectedTemp)),
			row("viscosity", fmt.Sprintf("%.3e Pa*s", r.Viscosity)),
			row("lid", fmt.Sprintf("%.1f km", r.LidThickness/1e3)),
			row("lower TBL", fmt.Sprintf("%.1f km", r.TBLThickness/1e3)),
			row("Rayleigh", fmt.Sprintf("%.3e", r.Rayleigh)),
			row("Q from below", fmt.Sprintf("%.3e W", r.HeatFlow)),
		}
		b.WriteString(headerStyle.Render(title))
		b.WriteString("\n")
		b.WriteString(panelStyle.Render(strings.Join(rows, "\n")))
		b.WriteString("\n")
	}
	return b.String()
}

func row(label, value string) string {
	return labelStyle.Render(label) + valueStyle.Render(value)
}
