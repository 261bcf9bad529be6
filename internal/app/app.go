// Package app assembles the transcription pipeline for the CLI and the web
// server.
package app

import (
	"go.uber.org/zap"

	"ecohspeech/internal/app/batch"
	"ecohspeech/internal/app/repository"
	"ecohspeech/internal/app/session"
)

// App bundles the wired pipeline with the session state it operates on.
type App struct {
	Orchestrator *batch.Orchestrator
	Runner       *batch.JobRunner
	Store        *session.Store
	History      repository.TranscriptionDAO
	Logger       *zap.Logger
}

func NewApp(orchestrator *batch.Orchestrator, runner *batch.JobRunner, store *session.Store, history repository.TranscriptionDAO, logger *zap.Logger) *App {
	return &App{
		Orchestrator: orchestrator,
		Runner:       runner,
		Store:        store,
		History:      history,
		Logger:       logger,
	}
}

// Close releases the session store, the history database and the logger.
func (a *App) Close() {
	if a.Store != nil {
		a.Store.Close()
	}
	if a.History != nil {
		a.History.Close()
	}
	if a.Logger != nil {
		a.Logger.Sync()
	}
}
