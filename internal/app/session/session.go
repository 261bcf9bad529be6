// Package session holds the per-session result history and the debug
// artifact store. One Store per interactive session, passed explicitly to
// whoever needs it; there is no process-wide state.
package session

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"ecohspeech/internal/app/model"
)

// Stats summarizes a session's history.
type Stats struct {
	Total      int `json:"total"`
	Successful int `json:"successful"`
	Failed     int `json:"failed"`
}

// Store is the ordered, append-only collection of transcription results for
// one session, plus any canonical artifacts retained for debugging. Safe for
// concurrent use; the batch itself is sequential but the web layer reads
// while a batch runs.
type Store struct {
	mu sync.Mutex

	id       string
	results  []model.TranscriptionResult
	debugDir string
}

func NewStore() *Store {
	return &Store{id: uuid.NewString()}
}

// ID returns the session identifier.
func (s *Store) ID() string {
	return s.id
}

// Append adds one result. Insertion order is processing order; entries are
// never mutated afterwards.
func (s *Store) Append(r model.TranscriptionResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results = append(s.results, r)
}

// Results returns a copy of the history in insertion order.
func (s *Store) Results() []model.TranscriptionResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.TranscriptionResult, len(s.results))
	copy(out, s.results)
	return out
}

// Len returns the number of accumulated results.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.results)
}

// Stats tallies successes and failures over the whole history.
func (s *Store) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	failed := lo.CountBy(s.results, func(r model.TranscriptionResult) bool {
		return r.Status.IsFailure()
	})
	return Stats{
		Total:      len(s.results),
		Successful: len(s.results) - failed,
		Failed:     failed,
	}
}

// RetainForDebug takes ownership of a canonical artifact instead of letting
// the job delete it, so the user can download what was actually sent to the
// recognizer. Returns the new path inside the session debug store.
func (s *Store) RetainForDebug(artifactPath, originalFilename string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.debugDir == "" {
		dir, err := os.MkdirTemp("", "ecohspeech-debug-"+s.id[:8]+"-*")
		if err != nil {
			return "", fmt.Errorf("create debug store: %w", err)
		}
		s.debugDir = dir
	}

	dest := filepath.Join(s.debugDir, fmt.Sprintf("%s.wav", sanitizeName(originalFilename)))
	if err := os.Rename(artifactPath, dest); err != nil {
		return "", fmt.Errorf("retain artifact: %w", err)
	}
	return dest, nil
}

// DebugArtifacts lists retained artifact paths.
func (s *Store) DebugArtifacts() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.debugDir == "" {
		return nil
	}
	entries, err := os.ReadDir(s.debugDir)
	if err != nil {
		return nil
	}
	paths := make([]string, 0, len(entries))
	for _, e := range entries {
		paths = append(paths, filepath.Join(s.debugDir, e.Name()))
	}
	return paths
}

// Clear wipes the history wholesale and releases every retained debug
// artifact. This is the single explicit reset operation; there is no partial
// mutation.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.results = nil
	if s.debugDir != "" {
		if err := os.RemoveAll(s.debugDir); err != nil {
			return err
		}
		s.debugDir = ""
	}
	return nil
}

// Close destroys the store at session end.
func (s *Store) Close() error {
	return s.Clear()
}

func sanitizeName(name string) string {
	out := make([]rune, 0, len(name))
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == ' ', r == '-', r == '_':
			out = append(out, r)
		}
	}
	if len(out) == 0 {
		return "artifact"
	}
	return string(out)
}
