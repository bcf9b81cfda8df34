package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"

	"github.com/san-kum/hookeslaw/internal/config"
	"github.com/san-kum/hookeslaw/internal/export"
	"github.com/san-kum/hookeslaw/internal/physics"
	"github.com/san-kum/hookeslaw/internal/scene"
	"github.com/san-kum/hookeslaw/internal/storage"
	"github.com/san-kum/hookeslaw/internal/sweep"
	"github.com/san-kum/hookeslaw/internal/viz"
)

var (
	dataDir    string
	configFile string
	preset     string
	verbose    bool
	// set
	force        float64
	constant     float64
	displacement float64
	target       string
	// sweep
	quantity string
	steps    int
	// plot
	column string
	// svg, export-json
	output  string
	braille bool

	logger = slog.Default()
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "hookeslaw",
		Short: "hooke's law spring lab",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}
			logger = slog.New(tint.NewHandler(os.Stderr, &tint.Options{
				Level:      level,
				TimeFormat: time.Kitchen,
			}))
			slog.SetDefault(logger)
		},
		RunE: runTUI,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".hookeslaw", "data directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "use preset configuration")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	tuiCmd := &cobra.Command{
		Use:   "tui [scene]",
		Short: "interactive spring lab",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runTUI,
	}

	setCmd := &cobra.Command{
		Use:   "set [scene]",
		Short: "apply a value to a spring and print the settled state",
		Args:  cobra.ExactArgs(1),
		RunE:  runSet,
	}
	setCmd.Flags().Float64Var(&force, "force", 0, "applied force (N)")
	setCmd.Flags().Float64Var(&constant, "k", 0, "spring constant (N/m)")
	setCmd.Flags().Float64Var(&displacement, "x", 0, "displacement (m)")
	setCmd.Flags().StringVar(&target, "target", "", "target spring (1, 2, equivalent, top, bottom)")

	sweepCmd := &cobra.Command{
		Use:   "sweep [scene]",
		Short: "sweep a quantity across its range and record the result",
		Args:  cobra.ExactArgs(1),
		RunE:  runSweep,
	}
	sweepCmd.Flags().StringVar(&quantity, "quantity", config.DefaultQuantity, "force, displacement or constant")
	sweepCmd.Flags().IntVar(&steps, "steps", config.DefaultSteps, "number of samples")
	sweepCmd.Flags().StringVar(&target, "target", "", "target spring (1, 2, equivalent, top, bottom)")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list recorded sweeps",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a recorded sweep",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&column, "column", "", "plot a single column, e.g. top_displacement")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export a recorded sweep to JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return storage.New(dataDir, logger).ExportJSON(args[0], output)
		},
	}
	exportJSONCmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")

	svgCmd := &cobra.Command{
		Use:   "svg [scene]",
		Short: "render a scene to SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  renderSVG,
	}
	svgCmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	svgCmd.Flags().BoolVar(&braille, "braille", false, "export the terminal canvas instead of the coil geometry")

	presetsCmd := &cobra.Command{
		Use:   "presets [scene]",
		Short: "list available presets",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			names := scene.Names()
			if len(args) > 0 {
				names = args
			}
			for _, name := range names {
				presets := config.ListPresets(name)
				if len(presets) == 0 {
					fmt.Printf("no presets for scene: %s\n", name)
					continue
				}
				fmt.Printf("presets for %s:\n", name)
				for _, p := range presets {
					fmt.Printf("  %s\n", p)
				}
			}
			return nil
		},
	}

	rootCmd.AddCommand(tuiCmd, setCmd, sweepCmd, listCmd, plotCmd, exportJSONCmd, svgCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig resolves the configuration for a scene: a preset wins over a
// config file, which wins over the defaults.
func loadConfig(sceneName string) (*config.Config, error) {
	if preset != "" {
		cfg := config.GetPreset(sceneName, preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset %q for scene %s", preset, sceneName)
		}
		return cfg, nil
	}
	if configFile != "" {
		cfg, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		return cfg, nil
	}
	return config.DefaultConfig(), nil
}

func newScene(name string) (scene.Scene, *config.Config, error) {
	cfg, err := loadConfig(name)
	if err != nil {
		return nil, nil, err
	}
	sc, err := scene.New(name, cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("build scene: %w", err)
	}
	return sc, cfg, nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	name := config.DefaultScene
	if len(args) > 0 {
		name = args[0]
	}
	cfg, err := loadConfig(name)
	if err != nil {
		return err
	}
	if len(args) == 0 && (preset != "" || configFile != "") {
		name = cfg.Scene
	}
	return viz.Run(cfg, name)
}

func runSet(cmd *cobra.Command, args []string) error {
	sc, _, err := newScene(args[0])
	if err != nil {
		return err
	}
	spring, err := sc.Target(target)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if !flags.Changed("force") && !flags.Changed("k") && !flags.Changed("x") {
		return errors.New("nothing to set: pass --force, --k or --x")
	}
	if flags.Changed("k") {
		if err := spring.SetSpringConstant(constant); err != nil {
			return fmt.Errorf("set spring constant: %w", err)
		}
	}
	if flags.Changed("force") {
		if err := spring.SetAppliedForce(force); err != nil {
			return fmt.Errorf("set applied force: %w", err)
		}
	}
	if flags.Changed("x") {
		if err := spring.SetDisplacement(displacement); err != nil {
			return fmt.Errorf("set displacement: %w", err)
		}
	}

	return printSystems(sc)
}

func printSystems(sc scene.Scene) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SYSTEM\tSPRING\tF (N)\tk (N/m)\tx (m)\tLENGTH (m)\tFs (N)\tPE (J)")

	for i, sys := range sc.Systems() {
		rows := []*physics.Spring{sys.EquivalentSpring()}
		names := []string{"spring"}
		if sys.Kind() != physics.KindSingle {
			rows = append(rows, sys.Springs()...)
			names = []string{"equivalent", "top", "bottom"}
		}
		for j, s := range rows {
			snap := s.Snapshot()
			fmt.Fprintf(w, "%d:%s\t%s\t%.2f\t%.1f\t%.4f\t%.4f\t%.2f\t%.4f\n",
				i+1, sys.Kind(), names[j],
				snap.AppliedForce,
				snap.SpringConstant,
				snap.Displacement,
				snap.Length,
				snap.SpringForce,
				snap.PotentialEnergy,
			)
		}
	}

	return w.Flush()
}

func runSweep(cmd *cobra.Command, args []string) error {
	sc, cfg, err := newScene(args[0])
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("quantity") {
		cfg.Sweep.Quantity = quantity
	}
	if cmd.Flags().Changed("steps") {
		cfg.Sweep.Steps = steps
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	q, err := sweep.ParseQuantity(cfg.Sweep.Quantity)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	start := time.Now()
	result, err := sweep.NewRunner(logger).Run(ctx, sc, target, q, cfg.Sweep.Steps)
	if err != nil {
		return fmt.Errorf("sweep: %w", err)
	}

	st := storage.New(dataDir, logger)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(result)
	if err != nil {
		return fmt.Errorf("save run: %w", err)
	}

	fmt.Printf("run: %s\n", runID)
	fmt.Printf("samples: %d (skipped %d)\n", len(result.Samples), result.Skipped)
	fmt.Printf("elapsed: %v\n", time.Since(start))
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir, logger)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSCENE\tTIME\tSYSTEM\tTARGET\tQUANTITY\tSAMPLES\tSKIPPED")

	for _, run := range runs {
		t := run.Target
		if t == "" {
			t = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%d\t%d\n",
			run.ID,
			run.Scene,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.System,
			t,
			run.Quantity,
			run.Samples,
			run.Skipped,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir, logger)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	samples, err := st.LoadSamples(runID)
	if err != nil {
		return err
	}
	if len(samples.Rows) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("scene: %s (%s)\n", meta.Scene, meta.System)
	fmt.Printf("samples: %d\n\n", len(samples.Rows))

	columns := []string{column}
	if column == "" && len(meta.Labels) > 0 {
		label := meta.Labels[0]
		columns = []string{label + "_displacement", label + "_spring_force", label + "_potential_energy"}
	}

	for _, name := range columns {
		data, ok := samples.Column(name)
		if !ok {
			return fmt.Errorf("no column %q in run %s", name, meta.ID)
		}
		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(fmt.Sprintf("%s vs %s", name, meta.Quantity)),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	return nil
}

func renderSVG(cmd *cobra.Command, args []string) error {
	sc, _, err := newScene(args[0])
	if err != nil {
		return err
	}

	var svg string
	if braille {
		r := viz.NewRenderer(80, 20)
		r.Render(sc, nil)
		svg = export.CanvasToSVG(r.Canvas(), 4)
	} else {
		svg = export.SceneToSVG(sc, viz.DefaultCoil())
	}

	if output == "" {
		fmt.Println(svg)
		return nil
	}
	if err := os.WriteFile(output, []byte(svg), 0644); err != nil {
		return err
	}
	logger.Info("svg written", "path", output, "scene", sc.Name())
	return nil
}
