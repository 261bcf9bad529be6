package whisper

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/sashabaranov/go-openai"

	"ecohspeech/internal/app/api"
	apperrors "ecohspeech/internal/app/errors"
)

// RemoteRecognizer implements remote transcription using the OpenAI API.
type RemoteRecognizer struct {
	client *openai.Client
}

// NewRemoteRecognizer creates a new RemoteRecognizer instance.
func NewRemoteRecognizer(client *openai.Client) *RemoteRecognizer {
	return &RemoteRecognizer{client: client}
}

// Recognize uses the OpenAI API for remote transcription. The energy
// threshold is unused here: Whisper does its own segmentation.
func (r *RemoteRecognizer) Recognize(ctx context.Context, req api.RecognizeRequest) (string, error) {
	resp, err := r.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    openai.Whisper1,
		FilePath: req.AudioPath,
		Language: baseLanguage(req.LanguageCode),
	})
	if err != nil {
		return "", mapAPIError(err)
	}

	return resp.Text, nil
}

// baseLanguage trims a BCP-47 tag like "es-CL" down to the ISO-639-1 code
// the API expects.
func baseLanguage(tag string) string {
	if i := strings.IndexByte(tag, '-'); i > 0 {
		return tag[:i]
	}
	return tag
}

func mapAPIError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.HTTPStatusCode == http.StatusTooManyRequests:
			return apperrors.Wrap(apperrors.ErrQuotaExceeded, apiErr.Message)
		case apiErr.HTTPStatusCode >= 500:
			return apperrors.Wrap(apperrors.ErrServiceUnavailable, apiErr.Message)
		}
	}
	return apperrors.Wrap(apperrors.ErrServiceUnavailable, err.Error())
}
