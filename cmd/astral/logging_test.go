package main

import (
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var rotatedName = regexp.MustCompile(`^astral_\d{8}_\d{6}\.log$`)

// isolateLogging runs the test in an empty directory and restores the global loggers afterwards
func isolateLogging(t *testing.T) {
	t.Helper()
	t.Chdir(t.TempDir())

	prevSlog, prevWriter, prevFlags := slog.Default(), log.Writer(), log.Flags()
	t.Cleanup(func() {
		slog.SetDefault(prevSlog)
		log.SetOutput(prevWriter)
		log.SetFlags(prevFlags)
	})
}

func readLog(t *testing.T) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(logDir, logFileName))
	require.NoError(t, err)
	return string(data)
}

func TestSetupLoggingDisabledDiscardsEverything(t *testing.T) {
	isolateLogging(t)

	require.Nil(t, setupLogging(false))
	assert.Equal(t, io.Discard, log.Writer())

	slog.Error("should go nowhere")
	log.Println("should go nowhere either")

	_, err := os.Stat(logDir)
	assert.True(t, os.IsNotExist(err), "no log directory without debug")
}

func TestSetupLoggingDebugWritesBothLoggers(t *testing.T) {
	isolateLogging(t)

	f := setupLogging(true)
	require.NotNil(t, f)
	defer f.Close()

	assert.NotEqual(t, os.Stderr, log.Writer())
	assert.True(t, slog.Default().Enabled(t.Context(), slog.LevelDebug))

	slog.Debug("search finished", "found", true)
	log.Println("legacy line")

	content := readLog(t)
	assert.Contains(t, content, "level=DEBUG")
	assert.Contains(t, content, `msg="search finished" found=true`)
	assert.Contains(t, content, "legacy line")
}

func TestSetupLoggingAppendsToSmallFile(t *testing.T) {
	isolateLogging(t)
	require.NoError(t, os.MkdirAll(logDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(logDir, logFileName), []byte("previous run\n"), 0o644))

	f := setupLogging(true)
	require.NotNil(t, f)
	defer f.Close()
	slog.Info("next run")

	content := readLog(t)
	assert.Contains(t, content, "previous run\n")
	assert.Contains(t, content, "next run")

	entries, err := os.ReadDir(logDir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "small files are not rotated")
}

func TestSetupLoggingRotatesOversizedFile(t *testing.T) {
	isolateLogging(t)
	require.NoError(t, os.MkdirAll(logDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(logDir, logFileName), make([]byte, maxLogSize+1), 0o644))

	f := setupLogging(true)
	require.NotNil(t, f)
	defer f.Close()

	entries, err := os.ReadDir(logDir)
	require.NoError(t, err)

	var rotated []string
	for _, e := range entries {
		if e.Name() != logFileName {
			rotated = append(rotated, e.Name())
		}
	}
	require.Len(t, rotated, 1)
	assert.Regexp(t, rotatedName, rotated[0])

	info, err := os.Stat(filepath.Join(logDir, rotated[0]))
	require.NoError(t, err)
	assert.EqualValues(t, maxLogSize+1, info.Size(), "rotated file keeps the old content")

	info, err = os.Stat(filepath.Join(logDir, logFileName))
	require.NoError(t, err)
	assert.Less(t, info.Size(), int64(maxLogSize))
}
