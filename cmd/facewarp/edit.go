package main

import (
	"errors"
	"fmt"
	"strings"

	"facewarp/internal/action"
	"facewarp/internal/recipe"

	"github.com/spf13/cobra"
)

// addEditFlags registers the flags that choose an edit.
func addEditFlags(cmd *cobra.Command) {
	cmd.Flags().String("recipe", "", "Recipe file (YAML or JSON)")
	cmd.Flags().String("action", "", "Preset to apply when no recipe is given: "+presetList())
	cmd.Flags().Float64("scale", 0, "Preset strength (default: the preset's own)")
	cmd.Flags().String("side", "", "Eyebrow side for raise_eyebrow: left, right, both")
	cmd.Flags().String("interpolation", "", "Warp kernel for recipes that set none (default linear)")
	cmd.Flags().Int("edge-anchors", 0, "Extra zero-displacement anchors per image edge")
}

func presetList() string {
	return strings.Join(append(action.PresetNames(), recipe.TypeMirror), ", ")
}

// buildEdit turns --recipe or --action into an action. recipePath and
// preset come from flags or config; interpolation is the fallback kernel.
func buildEdit(cmd *cobra.Command, recipePath, preset, interpolation string, edgeAnchors int) (action.Action, error) {
	var r *recipe.Recipe
	switch {
	case recipePath != "":
		var err error
		if r, err = recipe.Load(recipePath); err != nil {
			return nil, err
		}
	case preset != "":
		step := recipe.Step{Type: preset, Side: mustGetString(cmd, "side")}
		if cmd.Flags().Changed("scale") {
			scale := mustGetFloat64(cmd, "scale")
			step.Scale = &scale
		}
		r = recipe.Single(step)
	default:
		return nil, errors.New("either --recipe or --action is required")
	}

	r.DefaultInterpolation(interpolation, edgeAnchors)
	a, err := r.Build()
	if err != nil {
		return nil, fmt.Errorf("build edit: %w", err)
	}
	return a, nil
}
