// Package provider selects the configured transcription backend.
package provider

import (
	"fmt"
	"time"

	goopenai "github.com/sashabaranov/go-openai"

	"ecohspeech/internal/app/api"
	"ecohspeech/internal/app/api/openai/whisper"
	"ecohspeech/internal/app/api/speechserver"
)

// Options configures recognizer construction.
type Options struct {
	// Name is the provider key: "openai" or "speech_server".
	Name string
	// APIKey is required when Name is "openai".
	APIKey string
	// SpeechServerURL is required when Name is "speech_server".
	SpeechServerURL string
	// Timeout bounds one remote call for HTTP providers.
	Timeout time.Duration
}

// NewRecognizer creates the recognizer named in opts.
func NewRecognizer(opts Options) (api.Recognizer, error) {
	switch opts.Name {
	case "", "openai":
		if opts.APIKey == "" {
			return nil, fmt.Errorf("openai provider requires OPENAI_API_KEY")
		}
		return whisper.NewRemoteRecognizer(goopenai.NewClient(opts.APIKey)), nil
	case "speech_server":
		if opts.SpeechServerURL == "" {
			return nil, fmt.Errorf("speech_server provider requires a base URL")
		}
		return speechserver.NewProvider(speechserver.Config{
			BaseURL: opts.SpeechServerURL,
			Timeout: opts.Timeout,
		}), nil
	default:
		return nil, fmt.Errorf("unknown provider type: %s", opts.Name)
	}
}
