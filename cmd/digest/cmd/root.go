package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"meeting-digest/cmd/digest/cmd/cleanup"
	"meeting-digest/cmd/digest/cmd/serve"
	"meeting-digest/cmd/digest/cmd/version"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "digest",
	Short: "Turn meeting recordings into transcripts and summaries",
	Long: `Turn meeting recordings into transcripts and summaries.

- POST a video to /extract-audio to get an MP3
- POST audio (or the extracted audio id) to /transcribe for a transcript
- POST text to /summarize for a short summary, or use /process for all three`,
	SilenceUsage:     true,
	TraverseChildren: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serve.Cmd)
	rootCmd.AddCommand(cleanup.Cmd)
	rootCmd.AddCommand(version.Cmd)

	rootCmd.PersistentFlags().StringP("config", "c", "", "YAML config file (default $DIGEST_CONFIG)")
	rootCmd.PersistentFlags().BoolP("verbose", "V", false, "debug logging")
}
