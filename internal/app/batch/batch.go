package batch

import (
	"context"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"ecohspeech/internal/app/metrics"
	"ecohspeech/internal/app/model"
	"ecohspeech/internal/app/repository"
	"ecohspeech/internal/app/session"
)

// ProgressFunc is invoked synchronously after each job completes and before
// the next one starts. completed is 1-based.
type ProgressFunc func(completed, total int, filename string)

// Summary is the per-batch tally.
type Summary struct {
	Total      int `json:"total"`
	Successful int `json:"successful"`
	Failed     int `json:"failed"`
}

// Orchestrator runs jobs strictly sequentially in input order. The external
// tool and the rate-limited remote API are the bottlenecks, so there is no
// fan-out; sequencing keeps progress reporting and temp-file accounting
// trivially correct.
type Orchestrator struct {
	runner  *JobRunner
	store   *session.Store
	history repository.TranscriptionDAO
	logger  *zap.Logger
}

// NewOrchestrator wires the runner to the session store. history may be nil
// when persistence is disabled.
func NewOrchestrator(runner *JobRunner, store *session.Store, history repository.TranscriptionDAO, logger *zap.Logger) *Orchestrator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Orchestrator{runner: runner, store: store, history: history, logger: logger}
}

// RunBatch processes jobs in order and returns the session delta: exactly
// one result per job started. A job's CriticalError never aborts the batch.
// Cancellation is cooperative and takes effect between jobs; the context is
// also passed into every external invocation so a stuck tool dies with it.
func (o *Orchestrator) RunBatch(ctx context.Context, jobs []model.AudioJob, languageCode string, onProgress ProgressFunc) ([]model.TranscriptionResult, Summary, error) {
	metrics.ObserveBatch()
	total := len(jobs)
	delta := make([]model.TranscriptionResult, 0, total)

	for i, job := range jobs {
		if err := ctx.Err(); err != nil {
			o.logger.Info("batch cancelled",
				zap.Int("completed", i),
				zap.Int("total", total))
			return delta, o.summarize(delta), err
		}

		if job.LanguageCode == "" {
			job.LanguageCode = languageCode
		}

		result := o.runner.Run(ctx, job)
		delta = append(delta, result)
		o.store.Append(result)
		metrics.ObserveJob(string(result.Status))

		if o.history != nil {
			if err := o.history.Record(result); err != nil {
				o.logger.Warn("failed to persist result",
					zap.String("filename", result.Filename),
					zap.Error(err))
			}
		}

		o.logger.Info("job finished",
			zap.String("filename", result.Filename),
			zap.String("status", string(result.Status)))

		if onProgress != nil {
			onProgress(i+1, total, job.Filename)
		}
	}

	return delta, o.summarize(delta), nil
}

func (o *Orchestrator) summarize(results []model.TranscriptionResult) Summary {
	successful := lo.CountBy(results, func(r model.TranscriptionResult) bool {
		return r.Status == model.StatusSuccess
	})
	return Summary{
		Total:      len(results),
		Successful: successful,
		Failed:     len(results) - successful,
	}
}
