package main

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/pendlab/pendsim/analysis"
	"github.com/pendlab/pendsim/dynamo"
	"github.com/pendlab/pendsim/internal/config"
	"github.com/pendlab/pendsim/internal/storage"
	"github.com/pendlab/pendsim/internal/viz"
)

var (
	dataDir    string
	gridFrom   float64
	gridTo     float64
	samples    int
	theta      float64
	omega      float64
	theta1     float64 // double pendulum second angle
	omega1     float64 // double pendulum second angular velocity
	length     float64
	length1    float64
	mass       float64
	mass1      float64
	gravity    float64
	damping    float64
	integrator string
	adaptive   bool
	tolerance  float64
	maxStep    float64
	pivotKind  string
	pivotAmp   float64
	pivotFreq  float64
	pivotSpeed float64
	pivotAX    float64
	pivotAY    float64
	configFile string
	preset     string
	// Phase plot axes
	xAxis int
	yAxis int
	// Live view step
	liveDt float64
	// Lyapunov settings
	perturbation float64
	horizon      float64
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "pendsim",
		Short: "non-inertial pendulum simulation lab",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".pendsim", "data directory")

	runCmd := &cobra.Command{
		Use:   "run [model]",
		Short: "run simulation",
		Args:  cobra.ExactArgs(1),
		RunE:  runSimulation,
	}
	addSimFlags(runCmd)
	runCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	runCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot run results",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	phaseCmd := &cobra.Command{
		Use:   "phase [run_id]",
		Short: "phase space plot",
		Args:  cobra.ExactArgs(1),
		RunE:  phasePlot,
	}
	phaseCmd.Flags().IntVar(&xAxis, "x-axis", 0, "state index for x-axis")
	phaseCmd.Flags().IntVar(&yAxis, "y-axis", 1, "state index for y-axis")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "oscillation analysis (period, peak envelope)",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	lyapunovCmd := &cobra.Command{
		Use:   "lyapunov [model]",
		Short: "estimate the largest Lyapunov exponent",
		Args:  cobra.ExactArgs(1),
		RunE:  lyapunovRun,
	}
	addSimFlags(lyapunovCmd)
	lyapunovCmd.Flags().Float64Var(&perturbation, "perturbation", 1e-8, "initial separation")
	lyapunovCmd.Flags().Float64Var(&horizon, "horizon", 30.0, "estimation horizon (s)")

	compareCmd := &cobra.Command{
		Use:   "compare [model] [integrator1] [integrator2] ...",
		Short: "compare integrators on the same model",
		Args:  cobra.MinimumNArgs(2),
		RunE:  compareIntegrators,
	}
	addSimFlags(compareCmd)

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run data to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	liveCmd := &cobra.Command{
		Use:   "live [model]",
		Short: "run simulation with live visualization",
		Args:  cobra.ExactArgs(1),
		RunE:  runLive,
	}
	addSimFlags(liveCmd)
	liveCmd.Flags().Float64Var(&liveDt, "dt", 0.005, "live view timestep")

	presetsCmd := &cobra.Command{
		Use:   "presets [model]",
		Short: "list available presets for a model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			names := config.ListPresets(args[0])
			if len(names) == 0 {
				fmt.Printf("no presets for model: %s\n", args[0])
				return nil
			}
			fmt.Printf("presets for %s:\n", args[0])
			for _, p := range names {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, phaseCmd, analyzeCmd, lyapunovCmd,
		compareCmd, exportCSVCmd, exportJSONCmd, liveCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addSimFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&gridFrom, "from", 0.0, "grid start time")
	cmd.Flags().Float64Var(&gridTo, "to", 10.0, "grid end time")
	cmd.Flags().IntVar(&samples, "samples", 1000, "number of output samples")
	cmd.Flags().Float64Var(&theta, "theta", 0.5, "initial angle")
	cmd.Flags().Float64Var(&omega, "omega", 0.0, "initial angular velocity")
	cmd.Flags().Float64Var(&theta1, "theta1", 0.5, "second angle (double_pendulum)")
	cmd.Flags().Float64Var(&omega1, "omega1", 0.0, "second angular velocity (double_pendulum)")
	cmd.Flags().Float64Var(&length, "length", 1.0, "rod length")
	cmd.Flags().Float64Var(&length1, "length1", 1.0, "second rod length (double_pendulum)")
	cmd.Flags().Float64Var(&mass, "mass", 1.0, "first mass (double_pendulum)")
	cmd.Flags().Float64Var(&mass1, "mass1", 1.0, "second mass (double_pendulum)")
	cmd.Flags().Float64Var(&gravity, "gravity", 9.8, "gravitational acceleration")
	cmd.Flags().Float64Var(&damping, "damping", 0.0, "damping coefficient (pendulum)")
	cmd.Flags().StringVar(&integrator, "integrator", "rk4", "integrator")
	cmd.Flags().BoolVar(&adaptive, "adaptive", false, "adaptive sub-stepping")
	cmd.Flags().Float64Var(&tolerance, "tol", 1e-6, "adaptive tolerance")
	cmd.Flags().Float64Var(&maxStep, "max-step", 0.01, "internal step cap")
	cmd.Flags().StringVar(&pivotKind, "pivot", "stationary", "pivot motion: stationary|harmonic|step|freefall|constant")
	cmd.Flags().Float64Var(&pivotAmp, "pivot-amp", 0.2, "pivot motion amplitude")
	cmd.Flags().Float64Var(&pivotFreq, "pivot-freq", 1.0, "pivot motion frequency (harmonic)")
	cmd.Flags().Float64Var(&pivotSpeed, "pivot-speed", 5.0, "pivot step steepness (step)")
	cmd.Flags().Float64Var(&pivotAX, "pivot-ax", 0.0, "pivot horizontal acceleration (constant)")
	cmd.Flags().Float64Var(&pivotAY, "pivot-ay", 0.0, "pivot vertical acceleration (constant)")
}

// assembleConfig merges preset, config file and flags, in ascending
// precedence.
func assembleConfig(cmd *cobra.Command, model string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	cfg.Model = model

	if preset != "" {
		p := config.GetPreset(model, preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(model))
		}
		*cfg = *p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		*cfg = *loaded
		cfg.Model = model
	}

	flags := cmd.Flags()
	if flags.Changed("from") {
		cfg.Grid.From = gridFrom
	}
	if flags.Changed("to") {
		cfg.Grid.To = gridTo
	}
	if flags.Changed("samples") {
		cfg.Grid.Samples = samples
	}
	if flags.Changed("theta") {
		cfg.InitState.Theta = theta
	}
	if flags.Changed("omega") {
		cfg.InitState.Omega = omega
	}
	if flags.Changed("theta1") {
		cfg.InitState.Theta1 = theta1
	}
	if flags.Changed("omega1") {
		cfg.InitState.Omega1 = omega1
	}
	if flags.Changed("length") {
		cfg.Params.Length = length
	}
	if flags.Changed("length1") {
		cfg.Params.Length1 = length1
	}
	if flags.Changed("mass") {
		cfg.Params.Mass = mass
	}
	if flags.Changed("mass1") {
		cfg.Params.Mass1 = mass1
	}
	if flags.Changed("gravity") {
		cfg.Params.Gravity = gravity
	}
	if flags.Changed("damping") {
		cfg.Params.Damping = damping
	}
	if flags.Changed("integrator") {
		cfg.Integrator = integrator
	}
	if flags.Changed("adaptive") {
		cfg.Adaptive = adaptive
	}
	if flags.Changed("tol") {
		cfg.Tolerance = tolerance
	}
	if flags.Changed("max-step") {
		cfg.MaxStep = maxStep
	}
	if flags.Changed("pivot") {
		cfg.Pivot.Kind = pivotKind
	}
	if flags.Changed("pivot-amp") {
		cfg.Pivot.Amplitude = pivotAmp
	}
	if flags.Changed("pivot-freq") {
		cfg.Pivot.Frequency = pivotFreq
	}
	if flags.Changed("pivot-speed") {
		cfg.Pivot.Speed = pivotSpeed
	}
	if flags.Changed("pivot-ax") {
		cfg.Pivot.AX = pivotAX
	}
	if flags.Changed("pivot-ay") {
		cfg.Pivot.AY = pivotAY
	}

	return cfg, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := assembleConfig(cmd, args[0])
	if err != nil {
		return err
	}

	dyn, err := buildModel(cfg)
	if err != nil {
		return err
	}
	integ, err := buildIntegrator(cfg.Integrator)
	if err != nil {
		return err
	}

	solverCfg := cfg.SolverConfig()
	solverCfg.ValidateState = true
	solver := dynamo.NewSolver(integ, solverCfg)
	for _, m := range defaultMetrics(dyn) {
		solver.AddMetric(m)
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	fmt.Printf("running %s simulation...\n", cfg.Model)
	start := time.Now()

	tr, err := solver.Solve(context.Background(), dyn, cfg.GetInitState(), cfg.BuildTimes())
	if err != nil {
		return err
	}

	elapsed := time.Since(start)

	runID, err := st.Save(cfg.Model, cfg.Integrator, solver.MetricValues(), tr)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("samples: %d\n", tr.Len())
	fmt.Println("\nmetrics:")
	for name, val := range solver.MetricValues() {
		fmt.Printf("  %s: %.6f\n", name, val)
	}

	return nil
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
	fmt.Fprintln(w, "ID\tMODEL\tTIME\tGRID\tSAMPLES\tINTEG")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t[%.2f, %.2f]\t%d\t%s\n",
			run.ID,
			run.Model,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.From,
			run.To,
			run.Samples,
			run.Integrator,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	tr, err := st.LoadTrajectory(runID)
	if err != nil {
		return err
	}

	if tr.Len() == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("model: %s\n", meta.Model)
	fmt.Printf("samples: %d\n\n", tr.Len())

	captions := map[string][]string{
		"pendulum":        {"theta (angle)", "omega (angular velocity)"},
		"double_pendulum": {"theta0", "omega0", "theta1", "omega1"},
	}

	for j := 0; j < tr.Dim(); j++ {
		caption := fmt.Sprintf("x%d vs time", j)
		if names, ok := captions[meta.Model]; ok && j < len(names) {
			caption = names[j]
		}

		graph := asciigraph.Plot(tr.Col(j),
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(caption),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	return nil
}

func phasePlot(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	tr, err := st.LoadTrajectory(args[0])
	if err != nil {
		return err
	}

	states := make([][]float64, len(tr.States))
	for i, x := range tr.States {
		states[i] = x
	}

	portrait := analysis.PhasePortrait(states, xAxis, yAxis)
	if portrait == nil {
		return fmt.Errorf("state index out of range (dim %d)", tr.Dim())
	}

	fmt.Printf("phase portrait: x%d vs x%d\n\n", xAxis, yAxis)
	fmt.Print(portrait.ASCII(70, 25))
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	tr, err := st.LoadTrajectory(args[0])
	if err != nil {
		return err
	}
	if tr.Len() < 3 {
		return fmt.Errorf("not enough samples to analyze")
	}

	angle := tr.Col(0)
	period := analysis.EstimatePeriod(tr.Times, angle)
	peakTimes, peakValues := analysis.Peaks(tr.Times, angle)

	fmt.Printf("run: %s (%s)\n\n", meta.ID, meta.Model)
	if period > 0 {
		fmt.Printf("estimated period: %.4f s (%.4f rad/s)\n", period, 2*math.Pi/period)
	} else {
		fmt.Println("estimated period: n/a (fewer than two zero crossings)")
	}
	fmt.Printf("oscillation peaks: %d\n", len(peakValues))

	if len(peakValues) >= 2 {
		first, last := peakValues[0], peakValues[len(peakValues)-1]
		fmt.Printf("peak envelope: %.4f -> %.4f over %.2fs\n",
			first, last, peakTimes[len(peakTimes)-1]-peakTimes[0])
	}

	for name, val := range meta.Metrics {
		fmt.Printf("%s: %.6g\n", name, val)
	}

	return nil
}

func lyapunovRun(cmd *cobra.Command, args []string) error {
	cfg, err := assembleConfig(cmd, args[0])
	if err != nil {
		return err
	}

	dyn, err := buildModel(cfg)
	if err != nil {
		return err
	}
	integ, err := buildIntegrator(cfg.Integrator)
	if err != nil {
		return err
	}

	lambda := analysis.LyapunovExponent(dyn, integ, cfg.GetInitState(), cfg.MaxStep, horizon, perturbation)

	fmt.Printf("largest Lyapunov exponent: %.6f\n", lambda)
	if lambda > 0.1 {
		fmt.Println("verdict: chaotic (nearby trajectories diverge exponentially)")
	} else {
		fmt.Println("verdict: regular")
	}
	return nil
}

func compareIntegrators(cmd *cobra.Command, args []string) error {
	cfg, err := assembleConfig(cmd, args[0])
	if err != nil {
		return err
	}

	dyn, err := buildModel(cfg)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "INTEGRATOR\tELAPSED\tENERGY DRIFT\tFINAL STATE")

	for _, name := range args[1:] {
		integ, err := buildIntegrator(name)
		if err != nil {
			return err
		}

		solverCfg := cfg.SolverConfig()
		solver := dynamo.NewSolver(integ, solverCfg)
		for _, m := range defaultMetrics(dyn) {
			solver.AddMetric(m)
		}

		start := time.Now()
		tr, err := solver.Solve(context.Background(), dyn, cfg.GetInitState(), cfg.BuildTimes())
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		elapsed := time.Since(start)

		drift := solver.MetricValues()["energy_drift"]
		fmt.Fprintf(w, "%s\t%v\t%.3g\t%.6v\n", name, elapsed, drift, tr.Last())
	}

	return w.Flush()
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	tr, err := st.LoadTrajectory(args[0])
	if err != nil {
		return err
	}

	fmt.Print("time")
	for j := 0; j < tr.Dim(); j++ {
		fmt.Printf(",x%d", j)
	}
	fmt.Println()
	for i, x := range tr.States {
		fmt.Printf("%g", tr.Times[i])
		for _, v := range x {
			fmt.Printf(",%g", v)
		}
		fmt.Println()
	}
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	tr, err := st.LoadTrajectory(args[0])
	if err != nil {
		return err
	}

	out := struct {
		Meta   *storage.RunMetadata `json:"meta"`
		Times  []float64            `json:"times"`
		States []dynamo.State       `json:"states"`
	}{meta, tr.Times, tr.States}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := assembleConfig(cmd, args[0])
	if err != nil {
		return err
	}

	dyn, err := buildModel(cfg)
	if err != nil {
		return err
	}
	integ, err := buildIntegrator(cfg.Integrator)
	if err != nil {
		return err
	}

	return viz.RunLive(dyn, integ, cfg.GetInitState(), liveDt, cfg.Model)
}
