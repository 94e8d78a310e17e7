package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"icebody/internal/body"
	"icebody/internal/config"
	"icebody/internal/storage"
	"icebody/internal/viz"
)

var (
	dataDir    string
	configFile string
	equilQ     bool
	verbose    bool
	asJSON     bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "icebody",
		Short: "icy-body interior structure and convection modeling",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".icebody", "data directory")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "per-shell diagnostic output")

	runCmd := &cobra.Command{
		Use:   "run [body]",
		Short: "integrate a body's interior model",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runBody,
	}
	runCmd.Flags().StringVar(&configFile, "config", "", "body config file (yaml)")
	runCmd.Flags().BoolVar(&equilQ, "equil-q", true, "hold radiogenic/tidal heat production in equilibrium")
	runCmd.Flags().BoolVar(&asJSON, "json", false, "print full profile JSON instead of the summary")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot saved interior profiles",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export the full profile as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSONRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export the profile as CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [body]",
		Short: "list built-in test bodies, or show one as yaml",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				for _, name := range config.ListPresets() {
					fmt.Println(name)
				}
				return nil
			}
			preset := config.GetPreset(args[0])
			if preset == nil {
				return fmt.Errorf("unknown body %q (available: %v)", args[0], config.ListPresets())
			}
			data, err := yaml.Marshal(preset)
			if err != nil {
				return err
			}
			fmt.Print(string(data))
			return nil
		},
	}

	browseCmd := &cobra.Command{
		Use:   "browse [run_id]",
		Short: "interactively browse a saved profile",
		Args:  cobra.ExactArgs(1),
		RunE:  browseRun,
	}

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, exportCmd, exportJSONCmd, exportCSVCmd, presetsCmd, browseCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newLogger() *zap.Logger {
	if !verbose {
		return zap.NewNop()
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

func resolveConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if len(args) > 0 {
		preset := config.GetPreset(args[0])
		if preset == nil {
			return nil, fmt.Errorf("unknown body %q (available: %v)", args[0], config.ListPresets())
		}
		cfg = preset
	}
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}
	if cmd.Flags().Changed("equil-q") {
		cfg.EquilQ = equilQ
	}
	return cfg, nil
}

func runBody(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}

	b, err := cfg.Body()
	if err != nil {
		return err
	}
	oracles, err := cfg.Oracles()
	if err != nil {
		return err
	}

	logger := newLogger()
	defer logger.Sync()

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	fmt.Printf("integrating %s (%d shells)...\n", b.Name, b.ShellCount())
	start := time.Now()

	solver := body.NewSolver(oracles, logger)
	res, err := solver.Solve(b)
	if err != nil {
		return err
	}

	elapsed := time.Since(start)

	runID, err := st.Save(res)
	if err != nil {
		return err
	}

	if asJSON {
		return storage.ExportJSONStdout(res)
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n\n", runID)
	fmt.Println(viz.RegimePanel(storage.Summarize(res)))

	stack := res.Stack
	last := stack.Len() - 1
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "\tSURFACE\tBOTTOM")
	fmt.Fprintf(w, "depth\t%.1f km\t%.1f km\n", stack.Depth[0]/1e3, stack.Depth[last]/1e3)
	fmt.Fprintf(w, "pressure\t%.3f MPa\t%.3f MPa\n", stack.P[0], stack.P[last])
	fmt.Fprintf(w, "temperature\t%.3f K\t%.3f K\n", stack.T[0], stack.T[last])
	fmt.Fprintf(w, "gravity\t%.4f m/s2\t%.4f m/s2\n", stack.G[0], stack.G[last])
	return w.Flush()
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tBODY\tTIME\tSHELLS\tPHASES")

	for _, run := range runs {
		phases := ""
		for i, r := range run.Regimes {
			if i > 0 {
				phases += ","
			}
			phases += r.Phase
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n",
			run.ID,
			run.Body,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Shells,
			phases,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	profile, err := st.LoadProfile(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("body: %s\n", meta.Body)
	fmt.Printf("shells: %d\n\n", profile.Shells())

	for _, name := range viz.PlotOrder {
		data := profile.Columns[name]
		if len(data) == 0 {
			continue
		}
		fmt.Println(viz.ProfilePlot(data, viz.ColumnCaptions[name]+" vs shell index"))
		fmt.Println()
	}

	fmt.Println(viz.RegimePanel(meta.Regimes))
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func exportJSONRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	profile, err := st.LoadProfile(args[0])
	if err != nil {
		return err
	}
	return storage.FromStored(meta, profile).WriteJSON(os.Stdout)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	file, err := os.Open(filepath.Join(dataDir, args[0], "profile.csv"))
	if err != nil {
		return err
	}
	defer file.Close()
	_, err = io.Copy(os.Stdout, file)
	return err
}

func browseRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	profile, err := st.LoadProfile(args[0])
	if err != nil {
		return err
	}

	p := tea.NewProgram(viz.NewBrowser(meta, profile))
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}
