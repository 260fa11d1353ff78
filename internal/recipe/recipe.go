// Package recipe reads edit recipes: an ordered list of actions with a
// shared interpolation setting, stored as YAML or JSON.
package recipe

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"facewarp/internal/action"
	"facewarp/internal/displacement"
	"facewarp/internal/landmark"
	"facewarp/internal/reference"

	"gopkg.in/yaml.v3"
)

// Step types besides the registered presets.
const (
	TypeLambda   = "lambda"
	TypeLinear   = "linear"
	TypeAbsolute = "absolute"
	TypeMirror   = "mirror"
)

// ErrEmpty is returned by Build for a recipe without actions.
var ErrEmpty = errors.New("recipe: no actions")

// Interpolation selects the displacement kernel for every step.
type Interpolation struct {
	Function    string  `yaml:"function"`
	Epsilon     float64 `yaml:"epsilon"`
	Smooth      float64 `yaml:"smooth"`
	EdgeAnchors int     `yaml:"edge_anchors"`
}

// Options converts the recipe setting into displacement options.
func (i Interpolation) Options() displacement.Options {
	fn := i.Function
	if fn == "" {
		fn = displacement.Linear
	}
	return displacement.Options{
		Function:    fn,
		Epsilon:     i.Epsilon,
		Smooth:      i.Smooth,
		AnchorEdges: true,
		EdgeAnchors: i.EdgeAnchors,
	}
}

// SpecEntry is one lambda entry. Landmark is an index or a name.
type SpecEntry struct {
	Landmark   string  `yaml:"landmark"`
	Angle      float64 `yaml:"angle"`
	Proportion float64 `yaml:"proportion"`
}

// Step is one action of a recipe. Which fields matter depends on Type.
type Step struct {
	Type  string   `yaml:"type"`
	Scale *float64 `yaml:"scale"`

	// raise_eyebrow
	Side string `yaml:"side"`

	// lambda
	Specs []SpecEntry `yaml:"specs"`

	// linear; rotation and shear in radians
	ScaleX       *float64 `yaml:"scale_x"`
	ScaleY       *float64 `yaml:"scale_y"`
	Rotation     float64  `yaml:"rotation"`
	Shear        float64  `yaml:"shear"`
	TranslationX float64  `yaml:"translation_x"`
	TranslationY float64  `yaml:"translation_y"`

	// absolute; keys are indices or names, values pixels
	XShifts map[string]float64 `yaml:"x_shifts"`
	YShifts map[string]float64 `yaml:"y_shifts"`
}

// Recipe is a parsed recipe file.
type Recipe struct {
	Interpolation Interpolation `yaml:"interpolation"`
	Actions       []Step        `yaml:"actions"`
}

// Parse decodes a YAML or JSON recipe.
func Parse(data []byte) (*Recipe, error) {
	var r Recipe
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("recipe: parse: %w", err)
	}
	return &r, nil
}

// Load reads and parses a recipe file.
func Load(path string) (*Recipe, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("recipe: read %s: %w", path, err)
	}
	r, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return r, nil
}

// Single wraps one step as a recipe.
func Single(step Step) *Recipe {
	return &Recipe{Actions: []Step{step}}
}

// DefaultInterpolation fills the kernel and the edge anchor count where the
// recipe left them unset. Each field is filled on its own.
func (r *Recipe) DefaultInterpolation(function string, edgeAnchors int) {
	if r.Interpolation.Function == "" {
		r.Interpolation.Function = function
	}
	if r.Interpolation.EdgeAnchors == 0 {
		r.Interpolation.EdgeAnchors = edgeAnchors
	}
}

// Build turns the recipe into an action. One step yields that step's
// action; more steps yield an action.Pipeline.
func (r *Recipe) Build() (action.Action, error) {
	if len(r.Actions) == 0 {
		return nil, ErrEmpty
	}
	if err := checkKernel(r.Interpolation.Function); err != nil {
		return nil, err
	}

	opts := r.Interpolation.Options()
	steps := make([]action.Action, len(r.Actions))
	for i, s := range r.Actions {
		a, err := s.build(opts)
		if err != nil {
			return nil, fmt.Errorf("recipe: step %d (%s): %w", i, s.Type, err)
		}
		steps[i] = a
	}
	if len(steps) == 1 {
		return steps[0], nil
	}
	return &action.Pipeline{Steps: steps}, nil
}

func checkKernel(name string) error {
	if name == "" {
		return nil
	}
	for _, k := range displacement.Kernels {
		if k == name {
			return nil
		}
	}
	return fmt.Errorf("recipe: unknown interpolation function %q", name)
}

func (s Step) scaleOr(def float64) float64 {
	if s.Scale == nil {
		return def
	}
	return *s.Scale
}

func (s Step) build(opts displacement.Options) (action.Action, error) {
	typ := strings.ToLower(strings.TrimSpace(s.Type))
	switch typ {
	case TypeLambda:
		if s.Scale == nil {
			return nil, errors.New("lambda needs a scale")
		}
		if len(s.Specs) == 0 {
			return nil, errors.New("lambda needs at least one spec")
		}
		specs := make([]action.Spec, len(s.Specs))
		for i, e := range s.Specs {
			id := landmark.ParseID(e.Landmark)
			if _, err := id.Resolve(); err != nil {
				return nil, fmt.Errorf("spec %d: %w", i, err)
			}
			specs[i] = action.Spec{Landmark: id, Angle: e.Angle, Proportion: e.Proportion}
		}
		l := action.NewLambda(*s.Scale, specs, reference.DefaultFactory)
		l.Interpolation = opts
		return l, nil

	case TypeLinear:
		t := action.NewLinearTransform(reference.DefaultFactory)
		if s.ScaleX != nil {
			t.ScaleX = *s.ScaleX
		}
		if s.ScaleY != nil {
			t.ScaleY = *s.ScaleY
		}
		t.Rotation = s.Rotation
		t.Shear = s.Shear
		t.TranslationX = s.TranslationX
		t.TranslationY = s.TranslationY
		t.Interpolation = opts
		return t, nil

	case TypeAbsolute:
		xs, err := shifts(s.XShifts)
		if err != nil {
			return nil, fmt.Errorf("x_shifts: %w", err)
		}
		ys, err := shifts(s.YShifts)
		if err != nil {
			return nil, fmt.Errorf("y_shifts: %w", err)
		}
		return &action.AbsoluteMove{XShifts: xs, YShifts: ys, Interpolation: opts}, nil

	case TypeMirror:
		return action.Mirror{}, nil

	case "raise_eyebrow":
		info, _ := action.LookupPreset(typ)
		p, err := action.RaiseEyebrow(s.scaleOr(info.DefaultScale), s.Side)
		if err != nil {
			return nil, err
		}
		p.Interpolation = opts
		return p, nil
	}

	info, ok := action.LookupPreset(typ)
	if !ok {
		return nil, fmt.Errorf("unknown action type %q", s.Type)
	}
	p := info.Build(s.scaleOr(info.DefaultScale))
	p.Interpolation = opts
	return p, nil
}

func shifts(in map[string]float64) (map[int]float64, error) {
	out := make(map[int]float64, len(in))
	for k, v := range in {
		i, err := landmark.ParseID(k).Resolve()
		if err != nil {
			return nil, err
		}
		out[i] += v
	}
	return out, nil
}
