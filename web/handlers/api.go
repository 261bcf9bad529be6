// Package handlers implements the HTTP API over a running session.
package handlers

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"ecohspeech/internal/app/batch"
	"ecohspeech/internal/app/export"
	"ecohspeech/internal/app/model"
	"ecohspeech/internal/app/repository"
	"ecohspeech/internal/app/session"
)

// BatchRunner is satisfied by *batch.Orchestrator.
type BatchRunner interface {
	RunBatch(ctx context.Context, jobs []model.AudioJob, languageCode string, onProgress batch.ProgressFunc) ([]model.TranscriptionResult, batch.Summary, error)
}

// APIHandler serves the session-scoped transcription API.
type APIHandler struct {
	runner  BatchRunner
	store   *session.Store
	history repository.TranscriptionDAO
	logger  *zap.Logger
}

// NewAPIHandler creates the handler set. history may be nil when persistence
// is disabled.
func NewAPIHandler(runner BatchRunner, store *session.Store, history repository.TranscriptionDAO, logger *zap.Logger) *APIHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &APIHandler{runner: runner, store: store, history: history, logger: logger}
}

// BatchRequest carries the non-file fields of a transcription upload.
type BatchRequest struct {
	Language string `form:"language" binding:"omitempty,oneof=es-CL es-ES es-MX es-AR en-US en-GB fr-FR de-DE it-IT pt-BR"`
}

// BatchResponse is the reply to a completed upload batch.
type BatchResponse struct {
	Results []model.TranscriptionResult `json:"results"`
	Summary batch.Summary               `json:"summary"`
}

// CreateBatch handles POST /api/transcriptions. It accepts a multipart form
// with one or more "files" parts plus an optional "language" field, runs the
// whole batch synchronously, and returns every result.
func (h *APIHandler) CreateBatch(c *gin.Context) {
	var req BatchRequest
	if err := bindForm(c, &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid request: %v", err)})
		return
	}
	if req.Language == "" {
		req.Language = model.SupportedLanguages[0]
	}

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid multipart form: %v", err)})
		return
	}
	files := form.File["files"]
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no files uploaded"})
		return
	}

	jobs := make([]model.AudioJob, 0, len(files))
	for _, fh := range files {
		name := filepath.Base(fh.Filename)
		if !model.IsAcceptedFilename(name) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": fmt.Sprintf("unsupported file type: %s (accepted: %s)",
					name, strings.Join(model.AcceptedExtensions, " ")),
			})
			return
		}

		src, err := fh.Open()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("read upload %s: %v", name, err)})
			return
		}
		data, err := io.ReadAll(src)
		src.Close()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("read upload %s: %v", name, err)})
			return
		}

		jobs = append(jobs, model.AudioJob{
			SourceBytes:      data,
			Filename:         name,
			ClaimedExtension: strings.ToLower(filepath.Ext(name)),
			LanguageCode:     req.Language,
		})
	}

	results, summary, err := h.runner.RunBatch(c.Request.Context(), jobs, req.Language, nil)
	if err != nil {
		// Cancellation mid-batch still produced results for completed jobs.
		h.logger.Warn("batch interrupted", zap.Error(err))
	}

	c.JSON(http.StatusOK, BatchResponse{Results: results, Summary: summary})
}

// ListResults handles GET /api/results.
func (h *APIHandler) ListResults(c *gin.Context) {
	results := h.store.Results()
	if results == nil {
		results = []model.TranscriptionResult{}
	}
	c.JSON(http.StatusOK, gin.H{"results": results})
}

// GetStats handles GET /api/stats.
func (h *APIHandler) GetStats(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.Stats())
}

// ClearSession handles DELETE /api/results. It wipes the history and
// releases any retained debug artifacts.
func (h *APIHandler) ClearSession(c *gin.Context) {
	if err := h.store.Clear(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("clear session: %v", err)})
		return
	}
	c.JSON(http.StatusOK, gin.H{"cleared": true})
}

// DownloadZip handles GET /api/export/zip.
func (h *APIHandler) DownloadZip(c *gin.Context) {
	results := h.store.Results()
	if len(results) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "no results to export"})
		return
	}

	filename := fmt.Sprintf("transcriptions_%s.zip", time.Now().Format("20060102_150405"))
	c.Header("Content-Type", "application/zip")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	if err := export.ToZip(c.Writer, results); err != nil {
		h.logger.Error("zip export failed", zap.Error(err))
	}
}

// ListHistory handles GET /api/history with an optional limit query param.
func (h *APIHandler) ListHistory(c *gin.Context) {
	if h.history == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "persistence is disabled"})
		return
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a non-negative integer"})
			return
		}
		limit = parsed
	}

	rows, err := h.history.List(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("load history: %v", err)})
		return
	}
	if rows == nil {
		rows = []model.TranscriptionResult{}
	}
	c.JSON(http.StatusOK, gin.H{"history": rows})
}

// ListDebugArtifacts handles GET /api/debug/artifacts.
func (h *APIHandler) ListDebugArtifacts(c *gin.Context) {
	paths := h.store.DebugArtifacts()
	names := make([]string, 0, len(paths))
	for _, p := range paths {
		names = append(names, filepath.Base(p))
	}
	c.JSON(http.StatusOK, gin.H{"artifacts": names})
}

// DownloadDebugArtifact handles GET /api/debug/artifacts/:name.
func (h *APIHandler) DownloadDebugArtifact(c *gin.Context) {
	name := c.Param("name")
	for _, p := range h.store.DebugArtifacts() {
		if filepath.Base(p) == name {
			c.FileAttachment(p, name)
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "artifact not found"})
}

// ListLanguages handles GET /api/languages.
func (h *APIHandler) ListLanguages(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"languages": model.SupportedLanguages,
		"default":   model.SupportedLanguages[0],
	})
}
