package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"ecohspeech/cmd/a2t/cmd/export"
	"ecohspeech/cmd/a2t/cmd/serve"
	"ecohspeech/cmd/a2t/cmd/transcribe"
	"ecohspeech/cmd/a2t/cmd/version"
)

var Verbose bool

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "a2t",
	Short: "An application for batch converting audio files to text, tolerant of broken voice notes",
	Long: `An application for batch converting audio files to text.
- Point a2t at a directory of audio files (mp3, wav, ogg, opus, m4a, flac, aac)
- Each file is normalized to a mono 16 kHz WAV through an ordered chain of
  conversion strategies, so partially corrupt voice notes still get through
- The normalized audio is sent to a remote recognizer and every file yields
  exactly one result row, success or a classified failure
- The processed records are saved to sqlite.`,
	TraverseChildren: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(transcribe.Cmd)
	rootCmd.AddCommand(export.Cmd)
	rootCmd.AddCommand(serve.Cmd)
	rootCmd.AddCommand(version.Cmd)

	rootCmd.PersistentFlags().BoolVarP(&Verbose, "verbose", "V", false, "verbose output")
}
