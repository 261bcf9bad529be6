// Package speechserver talks to a self-hosted speech-recognition HTTP
// endpoint. Unlike Whisper, these servers report "could not understand
// audio" explicitly, which maps straight onto the unrecognized status.
package speechserver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"ecohspeech/internal/app/api"
	apperrors "ecohspeech/internal/app/errors"
)

// Config represents configuration for the speech-server HTTP API.
type Config struct {
	BaseURL       string        `yaml:"base_url"`
	RecognizePath string        `yaml:"recognize_path"` // default "/recognize"
	Timeout       time.Duration `yaml:"timeout"`
}

// Response is the server's JSON reply.
type Response struct {
	Text  string `json:"text,omitempty"`
	Error string `json:"error,omitempty"`
}

// Provider implements api.Recognizer over HTTP.
type Provider struct {
	config Config
	client *http.Client
}

func NewProvider(config Config) *Provider {
	if config.RecognizePath == "" {
		config.RecognizePath = "/recognize"
	}
	if config.Timeout == 0 {
		config.Timeout = 60 * time.Second
	}
	return &Provider{
		config: config,
		client: &http.Client{Timeout: config.Timeout},
	}
}

// Recognize posts the artifact as multipart form data together with the
// language code and calibrated energy threshold.
func (p *Provider) Recognize(ctx context.Context, req api.RecognizeRequest) (string, error) {
	body, contentType, err := p.buildForm(req)
	if err != nil {
		return "", err
	}

	url := strings.TrimSuffix(p.config.BaseURL, "/") + p.config.RecognizePath
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, body)
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", contentType)

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return "", apperrors.Wrap(apperrors.ErrServiceUnavailable, err.Error())
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", apperrors.Wrap(apperrors.ErrServiceUnavailable, err.Error())
	}

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return "", apperrors.Wrap(apperrors.ErrQuotaExceeded, strings.TrimSpace(string(data)))
	case resp.StatusCode >= 500:
		return "", apperrors.Wrapf(apperrors.ErrServiceUnavailable, "server returned %d", resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		return "", apperrors.Newf("speech server rejected request: %d %s", resp.StatusCode, strings.TrimSpace(string(data)))
	}

	var parsed Response
	if err := json.Unmarshal(data, &parsed); err != nil {
		return "", apperrors.Wrap(apperrors.ErrServiceUnavailable, "malformed server response")
	}
	if parsed.Error != "" {
		if strings.Contains(strings.ToLower(parsed.Error), "could not understand") {
			return "", apperrors.Wrap(apperrors.ErrUnrecognized, parsed.Error)
		}
		return "", apperrors.Wrap(apperrors.ErrServiceUnavailable, parsed.Error)
	}

	return parsed.Text, nil
}

func (p *Provider) buildForm(req api.RecognizeRequest) (*bytes.Buffer, string, error) {
	file, err := os.Open(req.AudioPath)
	if err != nil {
		return nil, "", fmt.Errorf("open artifact: %w", err)
	}
	defer file.Close()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("file", filepath.Base(req.AudioPath))
	if err != nil {
		return nil, "", err
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, "", err
	}

	writer.WriteField("language", req.LanguageCode)
	writer.WriteField("energy_threshold", strconv.FormatFloat(req.EnergyThreshold, 'f', 1, 64))

	if err := writer.Close(); err != nil {
		return nil, "", err
	}
	return &buf, writer.FormDataContentType(), nil
}
