package provider

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ecohspeech/internal/app/api/openai/whisper"
	"ecohspeech/internal/app/api/speechserver"
)

func TestNewRecognizerOpenAI(t *testing.T) {
	rec, err := NewRecognizer(Options{Name: "openai", APIKey: "sk-test-key-0123456789"})
	require.NoError(t, err)
	assert.IsType(t, &whisper.RemoteRecognizer{}, rec)

	// Empty name defaults to openai.
	rec, err = NewRecognizer(Options{APIKey: "sk-test-key-0123456789"})
	require.NoError(t, err)
	assert.IsType(t, &whisper.RemoteRecognizer{}, rec)
}

func TestNewRecognizerOpenAIRequiresKey(t *testing.T) {
	_, err := NewRecognizer(Options{Name: "openai"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "OPENAI_API_KEY")
}

func TestNewRecognizerSpeechServer(t *testing.T) {
	rec, err := NewRecognizer(Options{Name: "speech_server", SpeechServerURL: "http://localhost:9000"})
	require.NoError(t, err)
	assert.IsType(t, &speechserver.Provider{}, rec)

	_, err = NewRecognizer(Options{Name: "speech_server"})
	assert.Error(t, err)
}

func TestNewRecognizerUnknown(t *testing.T) {
	_, err := NewRecognizer(Options{Name: "carrier_pigeon"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown provider")
}
