//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"
)

// InitializeApp assembles the full pipeline behind a single entry point.
func InitializeApp() *App {
	wire.Build(
		NewApp,
		provideLogger,
		provideEnv,
		provideTuning,
		provideFFmpeg,
		provideValidator,
		provideChain,
		provideRecognizer,
		provideClient,
		provideHistory,
		provideStore,
		provideRunner,
		provideOrchestrator,
	)
	return &App{}
}
