package viz

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/harmonica"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/hookeslaw/internal/config"
	"github.com/san-kum/hookeslaw/internal/physics"
	"github.com/san-kum/hookeslaw/internal/reactive"
	"github.com/san-kum/hookeslaw/internal/scene"
)

const (
	canvasWidth     = 60
	canvasHeight    = 20
	historyCapacity = 300

	// grip animation
	gripFrequency = 8.0
	gripDamping   = 0.9
)

type control int

const (
	controlForce control = iota
	controlConstant
	controlDisplacement
)

func (c control) String() string {
	switch c {
	case controlConstant:
		return "spring constant"
	case controlDisplacement:
		return "displacement"
	}
	return "applied force"
}

type tickMsg time.Time

var sceneKeys = map[string]string{"1": "intro", "2": "systems", "3": "energy"}

// App is the interactive terminal front end. It owns one scene at a time
// and redraws it every frame; the grips ease toward the model with a
// damped spring so jumps in displacement are animated.
type App struct {
	cfg      *config.Config
	sc       scene.Scene
	renderer *Renderer
	theme    Theme
	styles   styles

	motion harmonica.Spring
	grips  []float64
	vels   []float64

	control control
	target  int
	status  string
	failed  bool

	energy map[*physics.Spring][]float64 // history per watched spring
	unsubs []func()

	width, height int
	showHelp      bool
}

func NewApp(cfg *config.Config, name string) (*App, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	a := &App{
		cfg:      cfg,
		renderer: NewRenderer(canvasWidth, canvasHeight),
		theme:    GetTheme(cfg.Display.Theme),
		styles:   newStyles(GetTheme(cfg.Display.Theme)),
		motion:   harmonica.NewSpring(harmonica.FPS(cfg.Display.FrameRate), gripFrequency, gripDamping),
		width:    120,
		height:   30,
	}
	if err := a.load(name); err != nil {
		return nil, err
	}
	return a, nil
}

// load replaces the current scene and rewires its listeners.
func (a *App) load(name string) error {
	sc, err := scene.New(name, a.cfg)
	if err != nil {
		return err
	}
	for _, unsub := range a.unsubs {
		unsub()
	}
	a.unsubs = nil
	a.sc, a.target = sc, 0
	a.energy = make(map[*physics.Spring][]float64)

	for _, s := range watched(sc) {
		a.unsubs = append(a.unsubs, s.PotentialEnergy().Subscribe(func(e, _ float64) { a.record(s, e) }))
	}
	a.snapGrips()
	a.setStatus("scene "+name, false)
	return nil
}

// watched lists every spring a scene can show, hidden ones included.
func watched(sc scene.Scene) []*physics.Spring {
	switch s := sc.(type) {
	case *scene.Intro:
		return []*physics.Spring{s.System1.Spring(), s.System2.Spring()}
	case *scene.Systems:
		return []*physics.Spring{s.Series.EquivalentSpring(), s.Parallel.EquivalentSpring()}
	case *scene.Energy:
		return []*physics.Spring{s.System.Spring()}
	}
	return nil
}

func (a *App) record(s *physics.Spring, e float64) {
	h := append(a.energy[s], e)
	if len(h) > historyCapacity {
		h = h[len(h)-historyCapacity:]
	}
	a.energy[s] = h
}

// snapGrips puts every grip on its spring end without animating.
func (a *App) snapGrips() {
	arms := a.sc.Arms()
	a.grips = make([]float64, len(arms))
	a.vels = make([]float64, len(arms))
	for i, arm := range arms {
		a.grips[i] = arm.Left().Get()
	}
}

func (a *App) setStatus(msg string, failed bool) {
	a.status, a.failed = msg, failed
}

func (a *App) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(a.cfg.Display.FrameRate), func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (a *App) Init() tea.Cmd { return a.tick() }

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return a, a.handleKey(msg)
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		a.renderer.Resize(max(msg.Width-56, 20), max(msg.Height-6, 8))
	case tickMsg:
		a.step()
		return a, a.tick()
	}
	return a, nil
}

// step eases the grips toward the arms.
func (a *App) step() {
	arms := a.sc.Arms()
	if len(arms) != len(a.grips) {
		a.snapGrips()
		return
	}
	for i, arm := range arms {
		a.grips[i], a.vels[i] = a.motion.Update(a.grips[i], a.vels[i], arm.Left().Get())
	}
}

func (a *App) handleKey(msg tea.KeyMsg) tea.Cmd {
	vis := a.sc.Visibility()
	switch msg.String() {
	case "q", "ctrl+c":
		return tea.Quit
	case "1", "2", "3":
		if err := a.load(sceneKeys[msg.String()]); err != nil {
			a.setStatus(err.Error(), true)
		}
	case "tab":
		a.control = (a.control + 1) % 3
		a.setStatus("controlling "+a.control.String(), false)
	case "s":
		targets := a.targets()
		a.target = (a.target + 1) % len(targets)
		a.setStatus("target "+display(targets[a.target]), false)
	case "up", "k", "right", "l", "+", "=":
		a.adjust(1)
	case "down", "j", "left", "h", "-", "_":
		a.adjust(-1)
	case "c":
		if s, ok := a.sc.(*scene.Systems); ok {
			a.report(s.Toggle())
			a.target = 0
			a.snapGrips()
		}
	case "n":
		if s, ok := a.sc.(*scene.Intro); ok {
			a.report(s.NumberOfSystems.Set(3 - s.NumberOfSystems.Get()))
			a.target = 0
		}
	case "o":
		if s, ok := a.sc.(*scene.Systems); ok {
			next := scene.RepresentationComponents
			if s.SpringForceRepresentation.Get() == next {
				next = scene.RepresentationTotal
			}
			a.report(s.SpringForceRepresentation.Set(next))
		}
	case "g":
		if s, ok := a.sc.(*scene.Energy); ok {
			a.report(s.GraphVisible.Set(!s.GraphVisible.Get()))
		}
	case "p":
		if s, ok := a.sc.(*scene.Energy); ok {
			next := scene.GraphForce
			if s.Graph.Get() == next {
				next = scene.GraphBar
			}
			a.report(s.Graph.Set(next))
		}
	case "v":
		a.report(toggle(vis.Values))
	case "a":
		a.report(toggle(vis.AppliedForceVector))
	case "f":
		a.report(toggle(vis.SpringForceVector))
	case "d":
		a.report(toggle(vis.DisplacementVector))
	case "e":
		a.report(toggle(vis.EquilibriumPosition))
	case "r":
		a.sc.Reset()
		a.target = 0
		clear(a.energy)
		a.setStatus("reset", false)
	case "T":
		a.theme = a.theme.next()
		a.styles = newStyles(a.theme)
	case "?":
		a.showHelp = !a.showHelp
	}
	return nil
}

func toggle(v *reactive.Value[bool]) error { return v.Set(!v.Get()) }

func (a *App) report(err error) {
	if err != nil {
		a.setStatus(err.Error(), true)
	}
}

func (a *App) targets() []string {
	switch s := a.sc.(type) {
	case *scene.Intro:
		return []string{"1", "2"}[:s.NumberOfSystems.Get()]
	case *scene.Systems:
		return []string{"equivalent", "top", "bottom"}
	}
	return []string{""}
}

func display(target string) string {
	if target == "" {
		return "spring"
	}
	return target
}

func (a *App) current() (*physics.Spring, error) {
	targets := a.targets()
	if a.target >= len(targets) {
		a.target = 0
	}
	return a.sc.Target(targets[a.target])
}

// adjust nudges the controlled quantity one step, staying on the step grid
// and inside what the spring can currently reach.
func (a *App) adjust(dir float64) {
	s, err := a.current()
	if err != nil {
		a.setStatus(err.Error(), true)
		return
	}

	var (
		v, delta float64
		span     reactive.Range[float64]
		set      func(float64) error
	)
	switch a.control {
	case controlConstant:
		v, delta, span, set = s.SpringConstant().Get(), config.SpringConstantDelta, s.SpringConstantRange(), s.SetSpringConstant
	case controlDisplacement:
		v, delta, set = s.Displacement().Get(), config.DisplacementDelta, s.SetDisplacement
		span = reactive.NewRange(s.MinDisplacement(), s.MaxDisplacement())
	default:
		v, delta, span, set = s.AppliedForce().Get(), config.AppliedForceDelta, s.AppliedForceRange(), s.SetAppliedForce
	}

	next := span.Constrain(math.Round((v+dir*delta)/delta) * delta)
	if err := set(next); err != nil {
		switch {
		case errors.Is(err, physics.ErrReadOnly):
			a.setStatus("the equivalent spring constant follows its components", true)
		default:
			a.setStatus(err.Error(), true)
		}
		return
	}
	a.setStatus(fmt.Sprintf("%s = %.3f", a.control, next), false)
}

func (a *App) View() string {
	st := a.styles
	canvasView := st.canvas.Render(a.renderer.Render(a.sc, a.grips))

	var b strings.Builder
	b.WriteString(st.header.Render(strings.ToUpper(a.sc.Name())) + "\n")

	s, err := a.current()
	if err == nil {
		b.WriteString(st.label.Render("target") + st.value.Render(display(a.targets()[a.target])) + "\n")
		b.WriteString(st.label.Render("control") + st.active.Render(a.control.String()) + "\n\n")
		b.WriteString(a.gauges(s))
	}

	if a.sc.Visibility().Values.Get() {
		b.WriteString("\nVALUES\n")
		for _, sys := range a.sc.Systems() {
			b.WriteString(a.values(sys))
		}
	}

	if e, ok := a.sc.(*scene.Energy); ok && e.GraphVisible.Get() {
		b.WriteString(a.energyGraph(e))
	}

	if a.failed {
		b.WriteString("\n" + st.err.Render(a.status) + "\n")
	} else {
		b.WriteString("\n" + st.value.Render(a.status) + "\n")
	}
	b.WriteString(st.help.Render(st.keyHints("tab", "control", "↑↓", "adjust", "s", "target", "r", "reset", "?", "help", "q", "quit")))

	panel := st.panel.Render(b.String())
	main := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, panel)
	if a.showHelp {
		return a.help() + "\n\n" + main
	}
	return main
}

func (a *App) gauges(s *physics.Spring) string {
	st := a.styles
	var b strings.Builder
	row := func(name string, v float64, r reactive.Range[float64], unit string) {
		line := fmt.Sprintf("%s %8.3f %s", Gauge(v, r.Min, r.Max, 12), v, unit)
		b.WriteString(st.label.Render(name) + st.value.Render(line) + "\n")
	}
	row("applied force", s.AppliedForce().Get(), s.AppliedForceRange(), "N")
	row("spring const", s.SpringConstant().Get(), s.SpringConstantRange(), "N/m")
	row("displacement", s.Displacement().Get(), s.DisplacementRange(), "m")
	return b.String()
}

func (a *App) values(sys physics.System) string {
	st := a.styles
	var b strings.Builder
	springs := []*physics.Spring{sys.EquivalentSpring()}
	names := []string{string(sys.Kind())}
	if sys.Kind() != physics.KindSingle {
		springs = append(springs, sys.Springs()...)
		names = []string{"equivalent", "top", "bottom"}
	}
	for i, s := range springs {
		snap := s.Snapshot()
		b.WriteString(st.active.Render(names[i]) + "\n")
		b.WriteString(st.label.Render("  F / k") + st.force.Render(fmt.Sprintf("%7.2f N  %6.1f N/m", snap.AppliedForce, snap.SpringConstant)) + "\n")
		b.WriteString(st.label.Render("  x / length") + st.value.Render(fmt.Sprintf("%7.3f m  %6.3f m", snap.Displacement, snap.Length)) + "\n")
		b.WriteString(st.label.Render("  spring F / E") + st.value.Render(fmt.Sprintf("%7.2f N  %6.2f J", snap.SpringForce, snap.PotentialEnergy)) + "\n")
	}
	return b.String()
}

func (a *App) energyGraph(e *scene.Energy) string {
	st := a.styles
	s := e.System.Spring()
	if e.Graph.Get() == scene.GraphBar {
		// Most energy the spring can hold at its current stiffness.
		fMax := s.AppliedForceRange().Max
		limit := 0.5 * fMax * fMax / s.SpringConstant().Get()
		pe := s.PotentialEnergy().Get()
		return "\n" + st.label.Render("energy") + st.value.Render(fmt.Sprintf("%s %6.2f J", Gauge(pe, 0, limit, 12), pe)) + "\n"
	}
	history := a.energy[s]
	if len(history) < 2 {
		return "\n" + st.label.Render("energy") + st.value.Render("adjust the spring to plot") + "\n"
	}
	chart := asciigraph.Plot(history, asciigraph.Height(5), asciigraph.Width(30), asciigraph.Caption("potential energy (J)"))
	return st.graph.Render(chart) + "\n"
}

func (a *App) help() string {
	return `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  1 2 3   - Intro / Systems / Energy  ║
║  Tab     - Cycle force, k, x         ║
║  Up/Down - Adjust controlled value   ║
║  S       - Cycle target spring       ║
║  C       - Series / parallel         ║
║  N       - One or two springs        ║
║  O       - Total / component forces  ║
║  G P     - Energy graph, graph type  ║
║  V       - Values                    ║
║  A F D E - Applied force, spring     ║
║            force, displacement,      ║
║            equilibrium overlays      ║
║  R       - Reset scene               ║
║  Shift+T - Cycle themes              ║
║  Q       - Quit                      ║
╚══════════════════════════════════════╝`
}

// Run starts the interactive app on the named scene.
func Run(cfg *config.Config, name string) error {
	app, err := NewApp(cfg, name)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(app, tea.WithAltScreen()).Run()
	return err
}
