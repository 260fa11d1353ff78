package main

import (
	"fmt"
	"os"

	"facewarp/internal/config"
	"facewarp/internal/logging"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	envCfg config.Config
	log    *logrus.Logger
)

var rootCmd = &cobra.Command{
	Use:   "facewarp",
	Short: "Edit faces in photos by moving their landmarks",
	Long: `facewarp edits faces in photos. Every edit moves some of the 68 facial
landmarks and warps the image smoothly so that it follows them: presets like
smile or chubbify, free-form moves in a face-aligned frame, or plain pixel
offsets, alone or chained in a recipe file.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		envCfg, err = config.LoadEnv()
		if err != nil {
			return err
		}

		level := mustGetString(cmd, "log-level")
		if level == "" {
			level = envCfg.LogLevel
		}
		file := mustGetString(cmd, "log-file")
		if file == "" {
			file = envCfg.LogFile
		}
		log = logging.New(logging.Options{Level: level, File: file})
		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("log-level", "", "Log level: trace, debug, info, warn, error, off (default info)")
	rootCmd.PersistentFlags().String("log-file", "", "Also write logs to this rotated file")
}
