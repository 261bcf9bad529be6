package speechserver

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ecohspeech/internal/app/api"
	apperrors "ecohspeech/internal/app/errors"
	"ecohspeech/internal/app/testutil"
)

func request(t *testing.T) api.RecognizeRequest {
	t.Helper()
	path := filepath.Join(t.TempDir(), "a.wav")
	testutil.WriteTone(t, path, 16000, 0.5)
	return api.RecognizeRequest{AudioPath: path, LanguageCode: "es-MX", EnergyThreshold: 312.5}
}

func TestRecognizeSuccess(t *testing.T) {
	var gotLanguage, gotThreshold string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		gotLanguage = r.FormValue("language")
		gotThreshold = r.FormValue("energy_threshold")

		file, _, err := r.FormFile("file")
		require.NoError(t, err)
		file.Close()

		w.Write([]byte(`{"text":"buenas tardes"}`))
	}))
	defer server.Close()

	p := NewProvider(Config{BaseURL: server.URL})
	text, err := p.Recognize(context.Background(), request(t))
	require.NoError(t, err)

	assert.Equal(t, "buenas tardes", text)
	assert.Equal(t, "es-MX", gotLanguage)
	assert.Equal(t, "312.5", gotThreshold)
}

func TestRecognizeCouldNotUnderstand(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"error":"could not understand audio"}`))
	}))
	defer server.Close()

	p := NewProvider(Config{BaseURL: server.URL})
	_, err := p.Recognize(context.Background(), request(t))
	assert.ErrorIs(t, err, apperrors.ErrUnrecognized)
}

func TestRecognizeRateLimited(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	p := NewProvider(Config{BaseURL: server.URL})
	_, err := p.Recognize(context.Background(), request(t))
	assert.ErrorIs(t, err, apperrors.ErrQuotaExceeded)
}

func TestRecognizeServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	p := NewProvider(Config{BaseURL: server.URL})
	_, err := p.Recognize(context.Background(), request(t))
	assert.ErrorIs(t, err, apperrors.ErrServiceUnavailable)
}

func TestRecognizeConnectivityFailure(t *testing.T) {
	p := NewProvider(Config{BaseURL: "http://127.0.0.1:1"})
	_, err := p.Recognize(context.Background(), request(t))
	assert.ErrorIs(t, err, apperrors.ErrServiceUnavailable)
}
