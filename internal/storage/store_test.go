package storage

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"icebody/internal/body"
	"icebody/internal/convect"
	"icebody/internal/ice"
	"icebody/internal/shell"
)

func testResult() *body.Result {
	b := &body.Body{
		Name: "test",
		Bulk: body.Bulk{
			Radius: 252.1e3,
			Mass:   1.08022e20,
			TSurf:  75.0,
		},
		Layers:          []body.PhaseSetup{{Phase: ice.I, Steps: 2, TBot: 272.356, PBot: 20.0}},
		EquilibriumHeat: true,
	}

	st := shell.New(3, b.Bulk.Radius, b.Bulk.Mass)
	for i := 0; i < 3; i++ {
		st.P[i] = 10.0 * float64(i)
		st.T[i] = 75.0 + 100.0*float64(i)
		st.Rho[i] = 920.0
		st.Cp[i] = 2100.0
		st.Alpha[i] = 1.6e-4
		st.KTherm[i] = 2.3
		st.Phase[i] = ice.I
	}
	mAbove := 0.0
	for i := 1; i < 3; i++ {
		mAbove = st.Descend(i, mAbove)
	}

	return &body.Result{
		Body:  b,
		Stack: st,
		Phases: []body.PhaseResult{{
			Phase: ice.I,
			Regime: convect.Regime{
				Mode:          convect.ThreeZone,
				ConvectedTemp: 260.0,
				Viscosity:     2e14,
				LidThickness:  25e3,
				TBLThickness:  1.5e3,
				HeatFlow:      3e9,
				Rayleigh:      1.2e8,
			},
		}},
	}
}

func TestStoreSaveLoad(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runID, err := st.Save(testResult())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if runID == "" {
		t.Error("expected non-empty run id")
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if meta.Body != "test" {
		t.Errorf("expected body 'test', got '%s'", meta.Body)
	}
	if meta.Shells != 3 {
		t.Errorf("expected 3 shells, got %d", meta.Shells)
	}
	if !meta.EquilQ {
		t.Error("expected equil_q true")
	}
	if len(meta.Regimes) != 1 {
		t.Fatalf("expected 1 regime, got %d", len(meta.Regimes))
	}
	if meta.Regimes[0].Phase != "Ih" || meta.Regimes[0].Mode != "convective" {
		t.Errorf("unexpected regime summary %+v", meta.Regimes[0])
	}
	if meta.Regimes[0].Rayleigh != 1.2e8 {
		t.Errorf("expected Rayleigh 1.2e8, got %g", meta.Regimes[0].Rayleigh)
	}

	profile, err := st.LoadProfile(runID)
	if err != nil {
		t.Fatalf("load profile failed: %v", err)
	}

	if profile.Shells() != 3 {
		t.Errorf("expected 3 profile rows, got %d", profile.Shells())
	}
	if got := profile.Columns["T_K"]; len(got) != 3 || got[2] != 275.0 {
		t.Errorf("unexpected T_K column %v", got)
	}
	if got := profile.Columns["P_MPa"]; len(got) != 3 || got[1] != 10.0 {
		t.Errorf("unexpected P_MPa column %v", got)
	}
	for i, p := range profile.Phases {
		if p != "Ih" {
			t.Errorf("row %d: expected phase Ih, got %s", i, p)
		}
	}
}

func TestStoreList(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected 0 runs, got %d", len(runs))
	}

	if _, err := st.Save(testResult()); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	runs, err = st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 1 {
		t.Errorf("expected 1 run, got %d", len(runs))
	}
}

func TestStoreListMissingDir(t *testing.T) {
	st := New(filepath.Join(t.TempDir(), "never-created"))

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected 0 runs, got %d", len(runs))
	}
}

func TestStoreFileStructure(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runID, err := st.Save(testResult())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	runDir := filepath.Join(tmpDir, runID)
	metaPath := filepath.Join(runDir, "metadata.json")
	csvPath := filepath.Join(runDir, "profile.csv")

	if _, err := os.Stat(metaPath); os.IsNotExist(err) {
		t.Error("metadata.json not created")
	}
	if _, err := os.Stat(csvPath); os.IsNotExist(err) {
		t.Error("profile.csv not created")
	}
}

func TestExportJSON(t *testing.T) {
	res := testResult()

	var buf bytes.Buffer
	if err := FromResult(res).WriteJSON(&buf); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	var data ExportData
	if err := json.Unmarshal(buf.Bytes(), &data); err != nil {
		t.Fatalf("export is not valid JSON: %v", err)
	}
	if data.Body != "test" {
		t.Errorf("expected body 'test', got '%s'", data.Body)
	}
	if data.Shells != 3 {
		t.Errorf("expected 3 shells, got %d", data.Shells)
	}
	if len(data.Profile["rho_kgm3"]) != 3 {
		t.Errorf("expected density column of 3, got %v", data.Profile["rho_kgm3"])
	}
	if len(data.Phases) != 3 || data.Phases[0] != "Ih" {
		t.Errorf("unexpected phase tags %v", data.Phases)
	}
}

func TestExportFromStoredMatchesResult(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	res := testResult()
	runID, err := st.Save(res)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	profile, err := st.LoadProfile(runID)
	if err != nil {
		t.Fatalf("load profile failed: %v", err)
	}

	fresh := FromResult(res)
	stored := FromStored(meta, profile)

	if stored.Body != fresh.Body || stored.Shells != fresh.Shells || stored.EquilQ != fresh.EquilQ {
		t.Errorf("stored export header %+v does not match fresh %+v", stored, fresh)
	}
	for _, col := range []string{"T_K", "P_MPa", "rho_kgm3", "g_ms2"} {
		a, b := fresh.Profile[col], stored.Profile[col]
		if len(a) != len(b) {
			t.Fatalf("column %s: length %d vs %d", col, len(a), len(b))
		}
		for i := range a {
			if a[i] != b[i] {
				t.Errorf("column %s row %d: %g round-tripped to %g", col, i, a[i], b[i])
			}
		}
	}
}
