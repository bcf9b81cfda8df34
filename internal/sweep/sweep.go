package sweep

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/san-kum/hookeslaw/internal/physics"
	"github.com/san-kum/hookeslaw/internal/reactive"
	"github.com/san-kum/hookeslaw/internal/scene"
)

type Quantity string

const (
	Force        Quantity = "force"
	Displacement Quantity = "displacement"
	Constant     Quantity = "constant"
)

func ParseQuantity(s string) (Quantity, error) {
	switch q := Quantity(s); q {
	case Force, Displacement, Constant:
		return q, nil
	}
	return "", fmt.Errorf("unknown quantity %q (want force, displacement or constant)", s)
}

// Sample is the settled state of every spring in a system after one step.
// Springs lines up with Result.Labels.
type Sample struct {
	Step    int                `json:"step"`
	Input   float64            `json:"input"`
	Springs []physics.Snapshot `json:"springs"`
}

type Result struct {
	Scene    string       `json:"scene"`
	Target   string       `json:"target"`
	System   physics.Kind `json:"system"`
	Quantity Quantity     `json:"quantity"`
	Steps    int          `json:"steps"`
	Labels   []string     `json:"labels"`
	Samples  []Sample     `json:"samples"`
	// Skipped counts steps whose settled state fell outside a range.
	Skipped int `json:"skipped"`
}

// Runner drives one controllable quantity of a scene across its range.
type Runner struct {
	logger *slog.Logger
}

func NewRunner(logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{logger: logger}
}

// Run resets the scene and then writes steps evenly spaced values of q to
// the target spring, recording every spring of the system after each
// write. Steps the physics rejects with a range error are skipped and
// counted; any other error aborts the sweep.
func (r *Runner) Run(ctx context.Context, sc scene.Scene, target string, q Quantity, steps int) (*Result, error) {
	if steps < 2 {
		return nil, fmt.Errorf("sweep needs at least 2 steps, got %d", steps)
	}

	sc.Reset()
	spring, err := sc.Target(target)
	if err != nil {
		return nil, err
	}
	sys, err := systemOf(sc, spring)
	if err != nil {
		return nil, err
	}

	labels, springs := members(sys)
	set, span := controls(spring, q)

	result := &Result{
		Scene:    sc.Name(),
		Target:   target,
		System:   sys.Kind(),
		Quantity: q,
		Steps:    steps,
		Labels:   labels,
		Samples:  make([]Sample, 0, steps),
	}

	r.logger.Debug("sweep started", "scene", sc.Name(), "target", target, "quantity", q, "range", span.String(), "steps", steps)

	stride := reactive.Length(span) / float64(steps-1)
	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		v := span.Min + float64(i)*stride
		if i == steps-1 {
			v = span.Max
		}

		if err := set(v); err != nil {
			var rerr *physics.RangeError
			if errors.As(err, &rerr) {
				r.logger.Debug("step skipped", "step", i, "input", v, "quantity", rerr.Quantity, "value", rerr.Value)
				result.Skipped++
				continue
			}
			return result, fmt.Errorf("step %d: %w", i, err)
		}

		sample := Sample{Step: i, Input: v, Springs: make([]physics.Snapshot, len(springs))}
		for j, s := range springs {
			sample.Springs[j] = s.Snapshot()
		}
		result.Samples = append(result.Samples, sample)
	}

	r.logger.Info("sweep finished", "scene", sc.Name(), "samples", len(result.Samples), "skipped", result.Skipped)
	return result, nil
}

func systemOf(sc scene.Scene, s *physics.Spring) (physics.System, error) {
	for _, sys := range sc.Systems() {
		if sys.EquivalentSpring() == s {
			return sys, nil
		}
		for _, c := range sys.Springs() {
			if c == s {
				return sys, nil
			}
		}
	}
	return nil, fmt.Errorf("target spring is not on screen in %s", sc.Name())
}

// members lists the springs recorded for a system, the equivalent spring
// first.
func members(sys physics.System) ([]string, []*physics.Spring) {
	if sys.Kind() == physics.KindSingle {
		return []string{"spring"}, []*physics.Spring{sys.EquivalentSpring()}
	}
	c := sys.Springs()
	return []string{"equivalent", "top", "bottom"}, []*physics.Spring{sys.EquivalentSpring(), c[0], c[1]}
}

// controls returns the setter for q and the interval it is swept over.
// Displacement uses the limits reachable at the current stiffness.
func controls(s *physics.Spring, q Quantity) (func(float64) error, reactive.Range[float64]) {
	switch q {
	case Displacement:
		return s.SetDisplacement, reactive.NewRange(s.MinDisplacement(), s.MaxDisplacement())
	case Constant:
		return s.SetSpringConstant, s.SpringConstantRange()
	default:
		return s.SetAppliedForce, s.AppliedForceRange()
	}
}
