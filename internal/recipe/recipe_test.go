package recipe

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"facewarp/internal/action"
	"facewarp/internal/displacement"
	"facewarp/internal/landmark"
	"facewarp/internal/testutil"
)

const sample = `
interpolation: {function: multiquadric, edge_anchors: 2}
actions:
  - {type: smile, scale: 0.15}
  - type: lambda
    scale: 0.2
    specs:
      - {landmark: CHIN, angle: 90, proportion: 1}
      - {landmark: "57", angle: 90, proportion: 0.5}
  - {type: linear, scale_x: 1.05, rotation: 0.02}
  - {type: absolute, x_shifts: {48: -3, outside_mouth_corner_r: 3}, y_shifts: {48: 1}}
  - {type: raise_eyebrow, side: left}
  - {type: chubbify}
`

func TestParseAndBuild(t *testing.T) {
	r, err := Parse([]byte(sample))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(r.Actions) != 6 {
		t.Fatalf("len(Actions) = %d, want 6", len(r.Actions))
	}

	a, err := r.Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	p, ok := a.(*action.Pipeline)
	if !ok {
		t.Fatalf("Build() = %T, want *action.Pipeline", a)
	}

	want := displacement.Options{Function: displacement.Multiquadric, AnchorEdges: true, EdgeAnchors: 2}

	smile := p.Steps[0].(*action.Preset)
	if smile.Name != "smile" || smile.Scale != 0.15 || smile.Interpolation != want {
		t.Errorf("step 0 = %s/%v/%+v", smile.Name, smile.Scale, smile.Interpolation)
	}

	l := p.Steps[1].(*action.Lambda)
	if l.Scale != 0.2 || len(l.Specs) != 2 {
		t.Errorf("step 1 = %+v", l)
	}
	if i, _ := l.Specs[1].Landmark.Resolve(); i != 57 {
		t.Errorf("step 1 spec 1 landmark = %d, want 57", i)
	}

	lt := p.Steps[2].(*action.LinearTransform)
	if lt.ScaleX != 1.05 || lt.ScaleY != 1 || lt.Rotation != 0.02 {
		t.Errorf("step 2 = %+v", lt)
	}

	m := p.Steps[3].(*action.AbsoluteMove)
	if m.XShifts[48] != -3 || m.XShifts[54] != 3 || m.YShifts[48] != 1 {
		t.Errorf("step 3 shifts = %v / %v", m.XShifts, m.YShifts)
	}

	brow := p.Steps[4].(*action.Preset)
	if brow.Name != "raise_eyebrow" || len(brow.Specs) != 5 || brow.Scale != action.DefaultRaiseEyebrowScale {
		t.Errorf("step 4 = %s/%d/%v", brow.Name, len(brow.Specs), brow.Scale)
	}

	chub := p.Steps[5].(*action.Preset)
	if chub.Scale != action.DefaultChubbifyScale {
		t.Errorf("step 5 scale = %v, want default", chub.Scale)
	}
}

func TestBuildSingleStep(t *testing.T) {
	scale := 0.05
	a, err := Single(Step{Type: "open_eyes", Scale: &scale}).Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	p, ok := a.(*action.Preset)
	if !ok || p.Name != "open_eyes" || p.Scale != 0.05 {
		t.Fatalf("Build() = %#v", a)
	}
	if p.Interpolation != displacement.DefaultOptions() {
		t.Errorf("Interpolation = %+v, want defaults", p.Interpolation)
	}
}

func TestDefaultInterpolation(t *testing.T) {
	r := Single(Step{Type: "smile"})
	r.DefaultInterpolation(displacement.Gaussian, 3)
	if r.Interpolation.Function != displacement.Gaussian || r.Interpolation.EdgeAnchors != 3 {
		t.Errorf("Interpolation = %+v", r.Interpolation)
	}

	r = &Recipe{Interpolation: Interpolation{Function: displacement.Cubic}}
	r.DefaultInterpolation(displacement.Gaussian, 3)
	if r.Interpolation.Function != displacement.Cubic || r.Interpolation.EdgeAnchors != 3 {
		t.Errorf("recipe kernel overridden: %+v", r.Interpolation)
	}
}

func TestDefaultInterpolationKeepsEdgeAnchors(t *testing.T) {
	r, err := Parse([]byte("interpolation: {edge_anchors: 3}\nactions: [{type: smile}]"))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	r.DefaultInterpolation("", 0)
	a, err := r.Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	p, ok := a.(*action.Preset)
	if !ok {
		t.Fatalf("Build() = %T, want *action.Preset", a)
	}
	if p.Interpolation.EdgeAnchors != 3 {
		t.Errorf("EdgeAnchors = %d, want 3", p.Interpolation.EdgeAnchors)
	}
	if p.Interpolation.Function != displacement.Linear {
		t.Errorf("Function = %q, want %q", p.Interpolation.Function, displacement.Linear)
	}

	r, err = Parse([]byte("interpolation: {edge_anchors: 3}\nactions: [{type: smile}]"))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	r.DefaultInterpolation(displacement.Gaussian, 5)
	if r.Interpolation.Function != displacement.Gaussian || r.Interpolation.EdgeAnchors != 3 {
		t.Errorf("Interpolation = %+v", r.Interpolation)
	}
}

func TestBuildMirror(t *testing.T) {
	a, err := Single(Step{Type: "mirror"}).Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if _, ok := a.(action.Mirror); !ok {
		t.Errorf("Build() = %T, want action.Mirror", a)
	}
}

func TestBuildErrors(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantMsg string
		wantAs  any
	}{
		{name: "empty", doc: `actions: []`, wantMsg: "no actions"},
		{name: "unknown type", doc: `actions: [{type: frown}]`, wantMsg: `step 0 (frown): unknown action type`},
		{name: "bad kernel", doc: "interpolation: {function: spline}\nactions: [{type: smile}]", wantMsg: "unknown interpolation function"},
		{name: "bad name", doc: `actions: [{type: smile}, {type: lambda, scale: 1, specs: [{landmark: NOSE_TIP, angle: 0, proportion: 1}]}]`, wantMsg: "step 1 (lambda)", wantAs: new(*landmark.UnknownNameError)},
		{name: "bad index", doc: `actions: [{type: absolute, x_shifts: {70: 1}}]`, wantMsg: "step 0 (absolute): x_shifts", wantAs: new(*landmark.IndexError)},
		{name: "lambda without scale", doc: `actions: [{type: lambda, specs: [{landmark: 48, angle: 0, proportion: 1}]}]`, wantMsg: "step 0 (lambda): lambda needs a scale"},
		{name: "lambda without specs", doc: `actions: [{type: lambda, scale: 1}]`, wantMsg: "at least one spec"},
		{name: "bad side", doc: `actions: [{type: raise_eyebrow, side: up}]`, wantMsg: "unknown side"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := Parse([]byte(tt.doc))
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			_, err = r.Build()
			if err == nil {
				t.Fatal("Build() error = nil")
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("Build() error = %q, want it to contain %q", err, tt.wantMsg)
			}
			switch target := tt.wantAs.(type) {
			case **landmark.UnknownNameError:
				if !errors.As(err, target) {
					t.Errorf("error %v is not UnknownNameError", err)
				}
			case **landmark.IndexError:
				if !errors.As(err, target) {
					t.Errorf("error %v is not IndexError", err)
				}
			}
		})
	}
}

func TestLoadJSONRecipeAndPerform(t *testing.T) {
	path := filepath.Join(t.TempDir(), "recipe.json")
	doc := `{"actions": [{"type": "smile", "scale": 0.1}, {"type": "absolute", "x_shifts": {"8": 1}}]}`
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		t.Fatal(err)
	}

	r, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	a, err := r.Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	f := testutil.Layout{Size: 96, Scale: 24}.Face(t)
	out, _, err := a.Perform(f)
	if err != nil {
		t.Fatalf("Perform() error = %v", err)
	}
	chin, _ := out.At(8)
	orig, _ := f.At(8)
	if chin.X != orig.X+1 || chin.Y != orig.Y {
		t.Errorf("chin = %v, want %v shifted by 1px", chin, orig)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Load() error = %v, want ErrNotExist", err)
	}
}
