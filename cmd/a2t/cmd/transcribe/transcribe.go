package transcribe

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"

	"ecohspeech/internal/app"
	"ecohspeech/internal/app/model"
)

var audioDir string
var language string
var retainArtifacts bool

func init() {
	Cmd.Flags().StringVarP(&audioDir, "audioDir", "d", "",
		"audioDir specifies the directory of audio files to transcribe, example: ./recordings")
	Cmd.Flags().StringVarP(&language, "language", "l", model.SupportedLanguages[0],
		"recognizer language tag, one of: "+strings.Join(model.SupportedLanguages, " "))
	Cmd.Flags().BoolVar(&retainArtifacts, "retain", false,
		"keep the converted WAV of each file for debugging instead of deleting it")

	Cmd.MarkFlagRequired("audioDir")
}

// Cmd represents the transcribe command
var Cmd = &cobra.Command{
	Use:   "transcribe",
	Short: "Transcribe every audio file in the specified directory",
	Long: `Transcribe every audio file in the specified directory

- Iterate through the audio files in the specified directory in name order
- Normalize each one to a mono 16 kHz WAV, falling back through permissive
  decoding strategies when a file is corrupt or exotic
- Send the normalized audio to the configured recognizer
- Print one result row per file and a final tally`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !model.IsSupportedLanguage(language) {
			return fmt.Errorf("unsupported language %q, expected one of: %s",
				language, strings.Join(model.SupportedLanguages, " "))
		}

		jobs, err := collectJobs(audioDir, language)
		if err != nil {
			return err
		}
		if len(jobs) == 0 {
			return fmt.Errorf("no audio files found in %s", audioDir)
		}

		a := app.InitializeApp()
		defer a.Close()
		a.Runner.RetainArtifacts = retainArtifacts

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		progress := mpb.New(
			mpb.WithOutput(os.Stderr),
			mpb.WithRefreshRate(120*time.Millisecond),
		)
		bar := progress.AddBar(int64(len(jobs)),
			mpb.PrependDecorators(
				decor.Name("transcribing ", decor.WC{C: decor.DindentRight}),
				decor.CountersNoUnit("(%d/%d)", decor.WCSyncWidth),
			),
			mpb.AppendDecorators(
				decor.NewPercentage("%.1f", decor.WCSyncSpace),
			),
		)

		results, summary, runErr := a.Orchestrator.RunBatch(ctx, jobs, language,
			func(completed, total int, filename string) {
				bar.Increment()
			})
		bar.Abort(false)
		progress.Wait()

		for _, r := range results {
			fmt.Printf("[%s] %s: %s\n", r.Status, r.Filename, firstLine(r.Transcript))
		}
		fmt.Printf("finished: %d total, %d successful, %d failed\n",
			summary.Total, summary.Successful, summary.Failed)

		if runErr != nil {
			return fmt.Errorf("batch interrupted: %w", runErr)
		}
		return nil
	},
}

func collectJobs(dir, languageCode string) ([]model.AudioJob, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read directory %s: %w", dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !model.IsAcceptedFilename(e.Name()) {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	jobs := make([]model.AudioJob, 0, len(names))
	for _, name := range names {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			log.Printf("skipping unreadable file %s: %v", name, err)
			continue
		}
		jobs = append(jobs, model.AudioJob{
			SourceBytes:      data,
			Filename:         name,
			ClaimedExtension: strings.ToLower(filepath.Ext(name)),
			LanguageCode:     languageCode,
		})
	}
	return jobs, nil
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
