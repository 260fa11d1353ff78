package main

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"facewarp/internal/face"
	"facewarp/internal/logging"
	"facewarp/internal/postprocess"

	"github.com/spf13/cobra"
)

const defaultLandmarkSuffix = ".landmarks.json"

var applyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Edit a single face",
	Long: `Edit one image. Landmarks are read from --landmarks, or from the file next
to the image named <image stem>.landmarks.json.

Examples:
  facewarp apply --image me.jpg --action smile --out me-smile.webp
  facewarp apply --image me.jpg --recipe party.yaml --out me.png --out-landmarks me.landmarks.json`,
	RunE: runApply,
}

func init() {
	applyCmd.Flags().String("image", "", "Input image")
	applyCmd.Flags().String("landmarks", "", "Input landmark file (default: next to the image)")
	applyCmd.Flags().String("out", "", "Output image (.webp, .png, .jpg)")
	applyCmd.Flags().String("out-landmarks", "", "Also write the edited landmarks here")
	applyCmd.Flags().Int("max-size", 0, "Downscale the output so neither side exceeds this")
	addEditFlags(applyCmd)
	_ = applyCmd.MarkFlagRequired("image")
	_ = applyCmd.MarkFlagRequired("out")
	rootCmd.AddCommand(applyCmd)
}

func runApply(cmd *cobra.Command, args []string) error {
	imagePath := mustGetString(cmd, "image")
	landmarksPath := mustGetString(cmd, "landmarks")
	if landmarksPath == "" {
		landmarksPath = strings.TrimSuffix(imagePath, filepath.Ext(imagePath)) + defaultLandmarkSuffix
	}
	outPath := mustGetString(cmd, "out")

	interpolation := mustGetString(cmd, "interpolation")
	if interpolation == "" {
		interpolation = envCfg.Interpolation
	}
	edit, err := buildEdit(cmd, mustGetString(cmd, "recipe"), mustGetString(cmd, "action"),
		interpolation, mustGetInt(cmd, "edge-anchors"))
	if err != nil {
		return err
	}

	f, err := face.Load(imagePath, landmarksPath)
	if err != nil {
		return err
	}

	start := time.Now()
	edited, field, err := edit.Perform(f)
	if err != nil {
		return err
	}
	edited, err = postprocess.Fit(edited, mustGetInt(cmd, "max-size"))
	if err != nil {
		return err
	}

	if err := face.SaveImage(outPath, edited.Pixels()); err != nil {
		return err
	}
	if lm := mustGetString(cmd, "out-landmarks"); lm != "" {
		if err := face.SaveLandmarks(lm, edited.Points()); err != nil {
			return err
		}
	}

	log.WithFields(logging.Fields{
		"image":       imagePath,
		"out":         outPath,
		"mean_shift":  fmt.Sprintf("%.2fpx", field.MeanNorm()),
		"max_shift":   fmt.Sprintf("%.2fpx", field.MaxNorm()),
		"duration_ms": time.Since(start).Milliseconds(),
	}).Info("face edited")
	return nil
}
