package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"facewarp/internal/action"
	"facewarp/internal/landmark"

	"github.com/spf13/cobra"
)

// Build metadata variables, set by -ldflags at compile time.
var (
	Version   = "dev"
	CommitSHA = "unknown"
	BuildDate = "unknown"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("facewarp %s\n", Version)
		fmt.Printf("  Commit: %s\n", CommitSHA)
		fmt.Printf("  Built:  %s\n", BuildDate)
	},
}

var landmarksCmd = &cobra.Command{
	Use:   "landmarks",
	Short: "List landmark indices and names",
	Run: func(cmd *cobra.Command, args []string) {
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "INDEX\tNAME")
		for i := 0; i < landmark.Count; i++ {
			fmt.Fprintf(w, "%d\t%s\n", i, landmark.NameOf(i))
		}
		w.Flush()
	},
}

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List edit presets",
	Run: func(cmd *cobra.Command, args []string) {
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tSCALE\tDESCRIPTION")
		for _, name := range action.PresetNames() {
			info, _ := action.LookupPreset(name)
			fmt.Fprintf(w, "%s\t%g\t%s\n", info.Name, info.DefaultScale, info.Description)
		}
		fmt.Fprintf(w, "mirror\t-\tflip horizontally, swapping left and right landmarks\n")
		w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(versionCmd, landmarksCmd, presetsCmd)
}
