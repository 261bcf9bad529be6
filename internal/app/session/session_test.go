package session

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ecohspeech/internal/app/model"
)

func result(name string, status model.ResultStatus) model.TranscriptionResult {
	return model.TranscriptionResult{
		Filename:  name,
		Status:    status,
		Timestamp: time.Now(),
	}
}

func TestAppendPreservesOrder(t *testing.T) {
	s := NewStore()
	defer s.Close()

	s.Append(result("a.ogg", model.StatusSuccess))
	s.Append(result("b.ogg", model.StatusUnrecognized))
	s.Append(result("c.ogg", model.StatusSuccess))

	got := s.Results()
	require.Len(t, got, 3)
	assert.Equal(t, "a.ogg", got[0].Filename)
	assert.Equal(t, "b.ogg", got[1].Filename)
	assert.Equal(t, "c.ogg", got[2].Filename)
}

func TestResultsReturnsCopy(t *testing.T) {
	s := NewStore()
	defer s.Close()

	s.Append(result("a.ogg", model.StatusSuccess))
	snapshot := s.Results()
	snapshot[0].Filename = "mutated"

	assert.Equal(t, "a.ogg", s.Results()[0].Filename)
}

func TestStats(t *testing.T) {
	s := NewStore()
	defer s.Close()

	s.Append(result("a.ogg", model.StatusSuccess))
	s.Append(result("b.ogg", model.StatusConversionError))
	s.Append(result("c.ogg", model.StatusServiceError))

	assert.Equal(t, Stats{Total: 3, Successful: 1, Failed: 2}, s.Stats())
}

func TestClearReleasesEverything(t *testing.T) {
	s := NewStore()
	defer s.Close()

	s.Append(result("a.ogg", model.StatusSuccess))

	artifact := filepath.Join(t.TempDir(), "artifact.wav")
	require.NoError(t, os.WriteFile(artifact, []byte("RIFF fake"), 0o644))

	retained, err := s.RetainForDebug(artifact, "Voz de Ana (1).ogg")
	require.NoError(t, err)
	assert.FileExists(t, retained)
	assert.NoFileExists(t, artifact)

	require.NoError(t, s.Clear())
	assert.Zero(t, s.Len())
	assert.Empty(t, s.DebugArtifacts())
	assert.NoFileExists(t, retained)

	// Cleared store keeps working.
	s.Append(result("d.ogg", model.StatusSuccess))
	assert.Equal(t, 1, s.Len())
}

func TestRetainSanitizesNames(t *testing.T) {
	s := NewStore()
	defer s.Close()

	artifact := filepath.Join(t.TempDir(), "artifact.wav")
	require.NoError(t, os.WriteFile(artifact, []byte("x"), 0o644))

	retained, err := s.RetainForDebug(artifact, "../../etc/passwd#?.ogg")
	require.NoError(t, err)
	base := filepath.Base(retained)
	assert.NotContains(t, base, "/")
	assert.NotContains(t, base, "#")
	assert.NotContains(t, base, "?")
}

func TestSessionIDsAreUnique(t *testing.T) {
	a, b := NewStore(), NewStore()
	defer a.Close()
	defer b.Close()
	assert.NotEqual(t, a.ID(), b.ID())
	assert.NotEmpty(t, a.ID())
}
