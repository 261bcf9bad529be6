package serve

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"ecohspeech/internal/app"
	"ecohspeech/web"
)

var addr string
var environment string

func init() {
	Cmd.Flags().StringVarP(&addr, "addr", "a", ":8080", "listen address")
	Cmd.Flags().StringVarP(&environment, "env", "e", "production", "gin environment, production or development")
}

// Cmd represents the serve command
var Cmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API for uploading and transcribing audio files",
	Long: `Start the HTTP API for uploading and transcribing audio files

- POST audio files to /api/transcriptions and read results back as JSON
- Download the whole session as a zip from /api/export/zip
- Prometheus metrics are exposed on /metrics`,
	Run: func(cmd *cobra.Command, args []string) {
		a := app.InitializeApp()
		defer a.Close()

		server := web.NewServer(web.Config{
			Addr:         addr,
			Environment:  environment,
			ReadTimeout:  5 * time.Minute,
			WriteTimeout: 10 * time.Minute,
		}, a.Orchestrator, a.Store, a.History, a.Logger)

		go func() {
			if err := server.Start(); err != nil {
				log.Fatalf("server failed: %v\n", err)
			}
		}()

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			log.Printf("shutdown error: %v", err)
		}
	},
}
