package batch

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"facewarp/internal/action"
	"facewarp/internal/face"
	"facewarp/internal/testutil"

	"github.com/google/uuid"
)

func writeFace(t *testing.T, dir, name string, withLandmarks bool) {
	t.Helper()
	layout := testutil.DefaultLayout()
	img := filepath.Join(dir, name+".png")
	if err := face.SaveImage(img, testutil.Gradient(layout.Size, layout.Size)); err != nil {
		t.Fatal(err)
	}
	if withLandmarks {
		if err := face.SaveLandmarks(filepath.Join(dir, name+".landmarks.json"), layout.InputPoints()); err != nil {
			t.Fatal(err)
		}
	}
}

func TestScan(t *testing.T) {
	in := t.TempDir()
	writeFace(t, in, "a", true)
	writeFace(t, in, filepath.Join("sub", "b"), true)
	writeFace(t, in, "c", false)
	writeFace(t, in, filepath.Join("warped", "old"), true)
	if err := os.WriteFile(filepath.Join(in, "notes.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	jobs, missing, err := Scan(in, ".landmarks.json", filepath.Join(in, "warped"))
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}

	var names []string
	for _, j := range jobs {
		names = append(names, j.Name)
	}
	if want := []string{"a", "sub/b"}; !slices.Equal(names, want) {
		t.Errorf("job names = %v, want %v", names, want)
	}
	if len(missing) != 1 || filepath.Base(missing[0]) != "c.png" {
		t.Errorf("missing = %v, want [c.png]", missing)
	}
	if jobs[1].LandmarksPath != filepath.Join(in, "sub", "b.landmarks.json") {
		t.Errorf("LandmarksPath = %q", jobs[1].LandmarksPath)
	}
}

func TestScanMissingDir(t *testing.T) {
	if _, _, err := Scan(filepath.Join(t.TempDir(), "nope"), ".landmarks.json"); err == nil {
		t.Error("Scan() error = nil")
	}
}

func TestRun(t *testing.T) {
	in, out := t.TempDir(), t.TempDir()
	writeFace(t, in, "a", true)
	writeFace(t, in, "b", true)
	if err := os.WriteFile(filepath.Join(in, "broken.png"), []byte("not a png"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := face.SaveLandmarks(filepath.Join(in, "broken.landmarks.json"), testutil.DefaultLayout().InputPoints()); err != nil {
		t.Fatal(err)
	}

	jobs, _, err := Scan(in, ".landmarks.json")
	if err != nil {
		t.Fatal(err)
	}

	var progress bytes.Buffer
	cfg := Config{
		Action:         &action.AbsoluteMove{XShifts: map[int]float64{8: 2}},
		OutputDir:      out,
		Format:         "png",
		WriteLandmarks: true,
		LandmarkSuffix: ".landmarks.json",
		MaxSize:        32,
		Workers:        2,
		Progress:       &progress,
	}
	results := Run(cfg, jobs)

	if len(results) != 3 {
		t.Fatalf("len(results) = %d, want 3", len(results))
	}
	byName := make(map[string]Result)
	for _, r := range results {
		byName[r.Name] = r
	}
	if r := byName["broken"]; r.Success || r.Error == "" {
		t.Errorf("broken result = %+v, want failure", r)
	}

	for _, name := range []string{"a", "b"} {
		r := byName[name]
		if !r.Success {
			t.Fatalf("%s failed: %s", name, r.Error)
		}
		if r.MaxShift <= 0 {
			t.Errorf("%s MaxShift = %v, want > 0", name, r.MaxShift)
		}
		img, err := face.LoadImage(r.Output)
		if err != nil {
			t.Fatalf("load output: %v", err)
		}
		if b := img.Bounds(); b.Dx() != 32 || b.Dy() != 32 {
			t.Errorf("%s output size = %v, want 32x32", name, b.Size())
		}
		pts, err := face.LoadLandmarks(r.OutputLandmarks)
		if err != nil {
			t.Fatalf("load output landmarks: %v", err)
		}
		want := testutil.DefaultLayout().InputPoints()
		if got := pts[8].X; got != (want[8].X+2)/2 {
			t.Errorf("%s chin x = %v, want %v", name, got, (want[8].X+2)/2)
		}
	}

	if progress.Len() == 0 {
		t.Error("no progress output")
	}
}

func TestRunWithoutAction(t *testing.T) {
	results := Run(Config{Workers: 1}, []Job{{Name: "x"}})
	if results[0].Success || results[0].Error == "" {
		t.Errorf("result = %+v, want failure", results[0])
	}
}

func TestWriteManifest(t *testing.T) {
	runID := NewRunID()
	if _, err := uuid.Parse(runID); err != nil {
		t.Fatalf("NewRunID() = %q: %v", runID, err)
	}

	results := []Result{
		{Name: "a", Success: true, Output: "a.webp"},
		{Name: "b", Error: "boom"},
		{Name: "c", Success: true, Output: "c.webp"},
	}
	m := Summarize(runID, results)
	if m.Total != 3 || m.Succeeded != 2 || m.Failed != 1 {
		t.Errorf("Summarize() counts = %d/%d/%d", m.Total, m.Succeeded, m.Failed)
	}

	path := filepath.Join(t.TempDir(), "out", "manifest.json")
	if err := WriteManifest(path, m); err != nil {
		t.Fatalf("WriteManifest() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var got Manifest
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatal(err)
	}
	if got.RunID != runID || len(got.Results) != 3 || got.Results[1].Error != "boom" {
		t.Errorf("manifest = %+v", got)
	}
}
