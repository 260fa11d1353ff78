package action

import (
	"errors"
	"strings"
	"testing"

	"facewarp/internal/landmark"
	"facewarp/internal/testutil"
)

func TestPipelineEmpty(t *testing.T) {
	f := testutil.DefaultLayout().Face(t)
	out, field, err := (&Pipeline{}).Perform(f)
	if err != nil {
		t.Fatalf("Perform() error = %v", err)
	}
	testutil.AssertPointsNear(t, out.Points(), f.Points(), 0)
	if field.MaxNorm() != 0 {
		t.Errorf("field MaxNorm = %v, want 0", field.MaxNorm())
	}
	if &out.Pixels().Pix[0] == &f.Pixels().Pix[0] {
		t.Error("output image aliases input image")
	}
}

func TestPipelineMatchesSequentialLandmarks(t *testing.T) {
	f := testutil.Layout{Size: 96, Scale: 24}.Face(t)
	steps := []Action{
		Smile(DefaultSmileScale),
		&AbsoluteMove{XShifts: map[int]float64{8: 1.5}},
		Chubbify(DefaultChubbifyScale),
	}

	cur := f
	for _, s := range steps {
		next, _, err := s.Perform(cur)
		if err != nil {
			t.Fatal(err)
		}
		cur = next
	}

	out, field, err := (&Pipeline{Steps: steps}).Perform(f)
	if err != nil {
		t.Fatalf("Perform() error = %v", err)
	}
	testutil.AssertPointsNear(t, out.Points(), cur.Points(), 0)
	assertFieldMatchesImage(t, f, out, field)
}

func TestPipelineReportsFailingStep(t *testing.T) {
	f := testutil.DefaultLayout().Face(t)
	p := &Pipeline{Steps: []Action{
		Smile(DefaultSmileScale),
		&AbsoluteMove{XShifts: map[int]float64{99: 1}},
	}}
	_, _, err := p.Perform(f)
	var ie *landmark.IndexError
	if !errors.As(err, &ie) {
		t.Fatalf("Perform() error = %v, want IndexError", err)
	}
	if !strings.HasPrefix(err.Error(), "action: pipeline step 1:") {
		t.Errorf("error %q does not name step 1", err)
	}
}
