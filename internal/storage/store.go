package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"icebody/internal/body"
)

// Store persists integrated interior models under a base directory, one
// run directory per solve: metadata.json with the body summary and
// per-phase regimes, profile.csv with the shell columns.
type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// RegimeSummary is the persisted form of one phase's convection regime.
type RegimeSummary struct {
	Phase         string  `json:"phase"`
	Mode          string  `json:"mode"`
	ConvectedTemp float64 `json:"tconv_k"`
	Viscosity     float64 `json:"eta_pas"`
	LidThickness  float64 `json:"lid_m"`
	TBLThickness  float64 `json:"tbl_m"`
	HeatFlow      float64 `json:"q_w"`
	Rayleigh      float64 `json:"rayleigh"`
}

type RunMetadata struct {
	ID        string          `json:"id"`
	Body      string          `json:"body"`
	Timestamp time.Time       `json:"timestamp"`
	Shells    int             `json:"shells"`
	RadiusM   float64         `json:"radius_m"`
	MassKg    float64         `json:"mass_kg"`
	EquilQ    bool            `json:"equil_q"`
	Regimes   []RegimeSummary `json:"regimes"`
}

// profileColumns is the fixed column order of profile.csv.
var profileColumns = []string{
	"depth_m", "radius_m", "P_MPa", "T_K", "rho_kgm3",
	"Cp_JkgK", "alpha_pK", "kTherm_WmK", "g_ms2", "MLayer_kg", "phase",
}

// Summarize flattens the per-phase regimes for persistence and display.
func Summarize(res *body.Result) []RegimeSummary {
	regimes := make([]RegimeSummary, 0, len(res.Phases))
	for _, pr := range res.Phases {
		regimes = append(regimes, RegimeSummary{
			Phase:         pr.Phase.String(),
			Mode:          pr.Regime.Mode.String(),
			ConvectedTemp: pr.Regime.ConvectedTemp,
			Viscosity:     pr.Regime.Viscosity,
			LidThickness:  pr.Regime.LidThickness,
			TBLThickness:  pr.Regime.TBLThickness,
			HeatFlow:      pr.Regime.HeatFlow,
			Rayleigh:      pr.Regime.Rayleigh,
		})
	}
	return regimes
}

func (s *Store) Save(res *body.Result) (string, error) {
	runID := fmt.Sprintf("%s_%d", res.Body.Name, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Body:      res.Body.Name,
		Timestamp: time.Now(),
		Shells:    res.Stack.Len(),
		RadiusM:   res.Body.Bulk.Radius,
		MassKg:    res.Body.Bulk.Mass,
		EquilQ:    res.Body.EquilibriumHeat,
		Regimes:   Summarize(res),
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "profile.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if err := w.Write(profileColumns); err != nil {
		return "", err
	}

	st := res.Stack
	for i := 0; i < st.Len(); i++ {
		row := []string{
			fmtF(st.Depth[i]),
			fmtF(st.Radius[i]),
			fmtF(st.P[i]),
			fmtF(st.T[i]),
			fmtF(st.Rho[i]),
			fmtF(st.Cp[i]),
			fmtF(st.Alpha[i]),
			fmtF(st.KTherm[i]),
			fmtF(st.G[i]),
			fmtF(st.MLayer[i]),
			st.Phase[i].String(),
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	return runID, nil
}

// fmtF uses the shortest representation that parses back to the same
// float, so profiles round-trip exactly through the CSV.
func fmtF(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.baseDir, entry.Name(), "metadata.json"))
		if err != nil {
			continue
		}
		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}
		runs = append(runs, meta)
	}

	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}
	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// Profile is the column-oriented form of a persisted shell stack.
type Profile struct {
	Columns map[string][]float64
	Phases  []string
}

// Shells returns the number of rows.
func (p *Profile) Shells() int { return len(p.Phases) }

// LoadProfile reads profile.csv back into columns.
func (s *Store) LoadProfile(runID string) (*Profile, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "profile.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("profile for %s is empty", runID)
	}

	header := records[0]
	prof := &Profile{Columns: make(map[string][]float64)}
	for _, rec := range records[1:] {
		for j, name := range header {
			if j >= len(rec) {
				continue
			}
			if name == "phase" {
				prof.Phases = append(prof.Phases, rec[j])
				continue
			}
			v, err := strconv.ParseFloat(rec[j], 64)
			if err != nil {
				return nil, fmt.Errorf("profile for %s: column %s row %d: %w",
					runID, name, len(prof.Columns[name]), err)
			}
			prof.Columns[name] = append(prof.Columns[name], v)
		}
	}

	return prof, nil
}
