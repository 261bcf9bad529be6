package export

import (
	"fmt"
	"time"

	"github.com/tealeg/xlsx"

	"ecohspeech/internal/app/model"
)

// ToExcel writes the result history as a spreadsheet, one row per result.
func ToExcel(results []model.TranscriptionResult, outputFilePath string) error {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Transcriptions")
	if err != nil {
		return fmt.Errorf("add sheet: %w", err)
	}

	headerRow := sheet.AddRow()
	headerRow.AddCell().Value = "File"
	headerRow.AddCell().Value = "Language"
	headerRow.AddCell().Value = "Format"
	headerRow.AddCell().Value = "Date"
	headerRow.AddCell().Value = "Status"
	headerRow.AddCell().Value = "Transcript"

	for _, r := range results {
		row := sheet.AddRow()
		row.AddCell().Value = r.Filename
		row.AddCell().Value = r.LanguageCode
		row.AddCell().Value = string(r.DetectedFormat)
		row.AddCell().Value = r.Timestamp.Format(time.RFC3339)
		row.AddCell().Value = string(r.Status)
		row.AddCell().Value = r.Transcript
	}

	if err := file.Save(outputFilePath); err != nil {
		return fmt.Errorf("save %s: %w", outputFilePath, err)
	}
	return nil
}
