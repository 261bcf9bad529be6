package export

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"ecohspeech/internal/app/export"
	"ecohspeech/internal/app/repository/sqlite"
	"ecohspeech/internal/config"
)

var outputFilePath string
var limit int

func init() {
	Cmd.Flags().StringVarP(&outputFilePath, "outputFilePath", "o", "", "set outputFilePath")
	Cmd.Flags().IntVarP(&limit, "limit", "n", 0, "maximum number of records to export, 0 means all")

	Cmd.MarkFlagRequired("outputFilePath")
}

// Cmd represents the export command
var Cmd = &cobra.Command{
	Use:   "export",
	Short: "Export the transcription history to excel",
	Long: `Export the transcription history to excel

- Exports the most recent records first, one row per transcribed file`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := config.LoadEnv(); err != nil {
			log.Fatalf("Failed to load environment: %v\n", err)
		}

		dbPath := ""
		if env, err := config.GetEnv(); err == nil {
			dbPath = env.DatabasePath
		}
		if dbPath == "" {
			resolved, err := config.DefaultDatabasePath()
			if err != nil {
				log.Fatalf("Failed to resolve database path: %v\n", err)
			}
			dbPath = resolved
		}

		db := sqlite.NewSQLiteDB(dbPath)
		defer db.Close()

		results, err := db.List(limit)
		if err != nil {
			log.Fatal(err)
		}

		if err := export.ToExcel(results, outputFilePath); err != nil {
			log.Fatal(err)
		}
		fmt.Printf("export finished, exported file path: %v\n", outputFilePath)
	},
}
