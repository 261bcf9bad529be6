package app

import (
	"log"

	"go.uber.org/zap"

	"ecohspeech/internal/app/api"
	"ecohspeech/internal/app/api/provider"
	"ecohspeech/internal/app/audio"
	"ecohspeech/internal/app/batch"
	"ecohspeech/internal/app/convert"
	"ecohspeech/internal/app/repository"
	"ecohspeech/internal/app/repository/pg"
	"ecohspeech/internal/app/repository/sqlite"
	"ecohspeech/internal/app/session"
	"ecohspeech/internal/config"
)

func provideLogger() *zap.Logger {
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to build logger: %v\n", err)
	}
	return logger
}

func provideEnv() *config.Env {
	env, err := config.InitializeConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v\n", err)
	}
	return env
}

func provideTuning(env *config.Env) config.Tuning {
	tuning, err := config.LoadTuning(env.TuningPath)
	if err != nil {
		log.Fatalf("Failed to load tuning: %v\n", err)
	}
	return tuning
}

func provideFFmpeg(env *config.Env) *audio.FFmpeg {
	return audio.NewFFmpeg(env.FFmpegPath, env.FFprobePath, nil)
}

func provideValidator(ffmpeg *audio.FFmpeg, tuning config.Tuning) *convert.Validator {
	return convert.NewValidator(ffmpeg, tuning.Limits())
}

func provideChain(ffmpeg *audio.FFmpeg, validator *convert.Validator, tuning config.Tuning) *convert.Chain {
	return convert.NewChain(ffmpeg, validator, tuning.AttemptTimeout.Std())
}

// provideRecognizer selects the remote transcription backend. The default is
// openai whisper, which requires OPENAI_API_KEY.
func provideRecognizer(env *config.Env) api.Recognizer {
	recognizer, err := provider.NewRecognizer(provider.Options{
		Name:            env.Provider,
		APIKey:          env.OpenAIKey,
		SpeechServerURL: env.SpeechServerURL,
	})
	if err != nil {
		log.Fatalf("Failed to initialize transcription provider: %v\n", err)
	}
	return recognizer
}

func provideClient(recognizer api.Recognizer, logger *zap.Logger) *api.Client {
	return api.NewClient(recognizer, logger)
}

// provideHistory prefers postgres when ECOHSPEECH_PG_URL is set, falling
// back to a per-user sqlite file.
func provideHistory(env *config.Env) repository.TranscriptionDAO {
	if env.PostgresURL != "" {
		db, err := pg.NewPostgresDB(env.PostgresURL)
		if err != nil {
			log.Fatalf("Failed to connect to postgres: %v\n", err)
		}
		return db
	}

	dbPath := env.DatabasePath
	if dbPath == "" {
		resolved, err := config.DefaultDatabasePath()
		if err != nil {
			log.Fatalf("Failed to resolve database path: %v\n", err)
		}
		dbPath = resolved
	}
	return sqlite.NewSQLiteDB(dbPath)
}

func provideStore() *session.Store {
	return session.NewStore()
}

func provideRunner(chain *convert.Chain, client *api.Client, store *session.Store, logger *zap.Logger) *batch.JobRunner {
	return batch.NewJobRunner(chain, client, store, logger)
}

func provideOrchestrator(runner *batch.JobRunner, store *session.Store, history repository.TranscriptionDAO, logger *zap.Logger) *batch.Orchestrator {
	return batch.NewOrchestrator(runner, store, history, logger)
}
