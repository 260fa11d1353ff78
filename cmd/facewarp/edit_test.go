package main

import (
	"os"
	"path/filepath"
	"testing"

	"facewarp/internal/action"

	"github.com/spf13/cobra"
)

func newEditCmd(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{Use: "test"}
	addEditFlags(cmd)
	if err := cmd.ParseFlags(args); err != nil {
		t.Fatal(err)
	}
	return cmd
}

func TestBuildEditPreset(t *testing.T) {
	cmd := newEditCmd(t, "--scale", "0.3")
	a, err := buildEdit(cmd, "", "smile", "", 0)
	if err != nil {
		t.Fatalf("buildEdit() error = %v", err)
	}
	p, ok := a.(*action.Preset)
	if !ok || p.Name != "smile" || p.Scale != 0.3 {
		t.Errorf("buildEdit() = %#v", a)
	}
}

func TestBuildEditPresetDefaultScale(t *testing.T) {
	cmd := newEditCmd(t, "--side", "right")
	a, err := buildEdit(cmd, "", "raise_eyebrow", "gaussian", 1)
	if err != nil {
		t.Fatalf("buildEdit() error = %v", err)
	}
	p := a.(*action.Preset)
	if p.Scale != action.DefaultRaiseEyebrowScale || len(p.Specs) != 5 {
		t.Errorf("preset = %s/%v/%d specs", p.Name, p.Scale, len(p.Specs))
	}
	if p.Interpolation.Function != "gaussian" || p.Interpolation.EdgeAnchors != 1 {
		t.Errorf("Interpolation = %+v", p.Interpolation)
	}
}

func TestBuildEditRecipe(t *testing.T) {
	path := filepath.Join(t.TempDir(), "r.yaml")
	doc := "actions:\n  - {type: chubbify}\n  - {type: mirror}\n"
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		t.Fatal(err)
	}
	a, err := buildEdit(newEditCmd(t), path, "smile", "", 0)
	if err != nil {
		t.Fatalf("buildEdit() error = %v", err)
	}
	if p, ok := a.(*action.Pipeline); !ok || len(p.Steps) != 2 {
		t.Errorf("buildEdit() = %#v, want two-step pipeline", a)
	}
}

func TestBuildEditNeedsSomething(t *testing.T) {
	if _, err := buildEdit(newEditCmd(t), "", "", "", 0); err == nil {
		t.Error("buildEdit() error = nil")
	}
}
