package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

// Env holds all process-level configuration resolved from the environment.
type Env struct {
	Provider        string
	OpenAIKey       string
	SpeechServerURL string
	FFmpegPath      string
	FFprobePath     string
	DatabasePath    string
	PostgresURL     string
	TuningPath      string
}

// LoadEnv loads environment variables from a .env file if one exists.
// A missing file is not an error; variables may be set system-wide.
func LoadEnv() error {
	envPaths := []string{
		".env",
		".env.local",
		"../.env",
		"../../.env",
	}

	for _, envPath := range envPaths {
		if _, err := os.Stat(envPath); err == nil {
			if err := godotenv.Load(envPath); err != nil {
				return fmt.Errorf("error loading %s file: %w", envPath, err)
			}
			break
		}
	}

	return nil
}

// GetEnv reads the current process environment into an Env.
func GetEnv() (*Env, error) {
	env := &Env{
		Provider:        strings.TrimSpace(os.Getenv("ECOHSPEECH_PROVIDER")),
		OpenAIKey:       strings.TrimSpace(os.Getenv("OPENAI_API_KEY")),
		SpeechServerURL: strings.TrimSpace(os.Getenv("SPEECH_SERVER_URL")),
		FFmpegPath:      strings.TrimSpace(os.Getenv("FFMPEG_PATH")),
		FFprobePath:     strings.TrimSpace(os.Getenv("FFPROBE_PATH")),
		DatabasePath:    strings.TrimSpace(os.Getenv("ECOHSPEECH_DB")),
		PostgresURL:     strings.TrimSpace(os.Getenv("ECOHSPEECH_PG_URL")),
		TuningPath:      strings.TrimSpace(os.Getenv("ECOHSPEECH_TUNING")),
	}

	if env.OpenAIKey != "" {
		if !strings.HasPrefix(env.OpenAIKey, "sk-") {
			return nil, fmt.Errorf("invalid OPENAI_API_KEY format: must start with 'sk-'")
		}
		if len(env.OpenAIKey) < 20 {
			return nil, fmt.Errorf("invalid OPENAI_API_KEY format: too short")
		}
	}

	if env.Provider == "speech_server" && env.SpeechServerURL == "" {
		return nil, fmt.Errorf("ECOHSPEECH_PROVIDER=speech_server requires SPEECH_SERVER_URL")
	}

	return env, nil
}

// DefaultDatabasePath returns the sqlite file under the user's data
// directory, creating the parent directory on first use.
func DefaultDatabasePath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	dir := filepath.Join(home, ".ecohspeech")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create data directory: %w", err)
	}
	return filepath.Join(dir, "transcriptions.db"), nil
}

// InitializeConfig loads the .env file and reads the environment.
// This is the main entry point for configuration loading.
func InitializeConfig() (*Env, error) {
	if err := LoadEnv(); err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}
	return GetEnv()
}
