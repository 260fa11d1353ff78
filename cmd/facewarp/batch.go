package main

import (
	"fmt"
	"os"
	"time"

	"facewarp/internal/batch"
	"facewarp/internal/config"
	"facewarp/internal/logging"

	"github.com/spf13/cobra"
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Edit every face in a directory",
	Long: `Edit every image under --input that has a landmark file next to it and
write the results, plus a manifest.json, to --output.

Settings come from flags, then --config (JSON, TOML or YAML), then
FACEWARP_* environment variables (a .env file is read if present).`,
	RunE: runBatch,
}

func init() {
	batchCmd.Flags().String("config", "", "Config file (.json, .toml, .yaml)")
	batchCmd.Flags().String("input", "", "Input directory")
	batchCmd.Flags().String("output", "", "Output directory (default: <input>/warped)")
	batchCmd.Flags().String("format", "", "Output format: webp, png, jpg (default webp)")
	batchCmd.Flags().Int("workers", 0, "Number of worker goroutines (default: NumCPU)")
	batchCmd.Flags().Int("max-size", 0, "Downscale outputs so neither side exceeds this")
	batchCmd.Flags().Bool("write-landmarks", false, "Write edited landmarks next to each output")
	batchCmd.Flags().Bool("no-progress", false, "Hide the progress bar")
	addEditFlags(batchCmd)
	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, args []string) error {
	var cfg config.Config
	if path := mustGetString(cmd, "config"); path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return err
		}
	}

	cfg.Resolve(config.Flags{
		InputDir:      mustGetString(cmd, "input"),
		OutputDir:     mustGetString(cmd, "output"),
		Recipe:        mustGetString(cmd, "recipe"),
		Action:        mustGetString(cmd, "action"),
		Format:        mustGetString(cmd, "format"),
		Interpolation: mustGetString(cmd, "interpolation"),
		Workers:       mustGetInt(cmd, "workers"),
		MaxSize:       mustGetInt(cmd, "max-size"),
	}, envCfg)
	if mustGetBool(cmd, "write-landmarks") {
		cfg.WriteLandmarks = true
	}
	if cmd.Flags().Changed("edge-anchors") {
		cfg.EdgeAnchors = mustGetInt(cmd, "edge-anchors")
	}
	if cfg.InputDir == "" {
		return fmt.Errorf("no input directory: use --input or input_dir in the config file")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	edit, err := buildEdit(cmd, cfg.Recipe, cfg.Action, cfg.Interpolation, cfg.EdgeAnchors)
	if err != nil {
		return err
	}

	jobs, missing, err := batch.Scan(cfg.InputDir, cfg.LandmarkSuffix, cfg.OutputDir)
	if err != nil {
		return err
	}
	for _, m := range missing {
		log.WithField("image", m).Warn("no landmark file, skipping")
	}
	if len(jobs) == 0 {
		log.WithField("input", cfg.InputDir).Info("no faces to edit")
		return nil
	}

	runID := batch.NewRunID()
	log.WithFields(logging.Fields{
		"run_id":  runID,
		"faces":   len(jobs),
		"workers": cfg.Workers,
		"output":  cfg.OutputDir,
	}).Info("batch started")

	bcfg := batch.Config{
		Action:         edit,
		OutputDir:      cfg.OutputDir,
		Format:         cfg.Format,
		WriteLandmarks: cfg.WriteLandmarks,
		LandmarkSuffix: cfg.LandmarkSuffix,
		MaxSize:        cfg.MaxSize,
		Workers:        cfg.Workers,
		Logger:         log,
	}
	if !mustGetBool(cmd, "no-progress") {
		bcfg.Progress = os.Stderr
	}

	start := time.Now()
	results := batch.Run(bcfg, jobs)
	m := batch.Summarize(runID, results)

	if err := batch.WriteManifest(cfg.Manifest, m); err != nil {
		log.WithError(err).Warn("manifest write failed")
	}
	log.WithFields(logging.Fields{
		"run_id":    runID,
		"succeeded": m.Succeeded,
		"failed":    m.Failed,
		"manifest":  cfg.Manifest,
		"elapsed":   time.Since(start).Round(time.Millisecond).String(),
	}).Info("batch finished")

	if m.Failed > 0 {
		return fmt.Errorf("%d of %d faces failed, see %s", m.Failed, m.Total, cfg.Manifest)
	}
	return nil
}
