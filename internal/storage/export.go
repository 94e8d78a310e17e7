package storage

import (
	"encoding/json"
	"io"
	"os"

	"icebody/internal/body"
)

// ExportData is the full JSON export of one integrated model.
type ExportData struct {
	Body    string               `json:"body"`
	Shells  int                  `json:"shells"`
	EquilQ  bool                 `json:"equil_q"`
	Regimes []RegimeSummary      `json:"regimes"`
	Profile map[string][]float64 `json:"profile"`
	Phases  []string             `json:"phases"`
}

// FromResult builds the export form of a freshly integrated model.
func FromResult(res *body.Result) ExportData {
	st := res.Stack
	phases := make([]string, st.Len())
	for i := range phases {
		phases[i] = st.Phase[i].String()
	}
	return ExportData{
		Body:    res.Body.Name,
		Shells:  st.Len(),
		EquilQ:  res.Body.EquilibriumHeat,
		Regimes: Summarize(res),
		Profile: map[string][]float64{
			"depth_m":    st.Depth,
			"radius_m":   st.Radius,
			"P_MPa":      st.P,
			"T_K":        st.T,
			"rho_kgm3":   st.Rho,
			"Cp_JkgK":    st.Cp,
			"alpha_pK":   st.Alpha,
			"kTherm_WmK": st.KTherm,
			"g_ms2":      st.G,
			"MLayer_kg":  st.MLayer,
		},
		Phases: phases,
	}
}

// FromStored builds the export form from persisted metadata and profile.
func FromStored(meta *RunMetadata, profile *Profile) ExportData {
	return ExportData{
		Body:    meta.Body,
		Shells:  profile.Shells(),
		EquilQ:  meta.EquilQ,
		Regimes: meta.Regimes,
		Profile: profile.Columns,
		Phases:  profile.Phases,
	}
}

// WriteJSON writes the export as indented JSON.
func (d ExportData) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(d)
}

// ExportJSONStdout writes a result to standard output.
func ExportJSONStdout(res *body.Result) error {
	return FromResult(res).WriteJSON(os.Stdout)
}
