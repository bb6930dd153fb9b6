package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitRejectsUnknownLevel(t *testing.T) {
	assert.Error(t, Init(Config{Level: "loud"}))
}

func TestInitWritesFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Init(Config{Level: "info", FileEnabled: true, FilePath: dir, RotationSize: 1, RetentionDays: 1}))
	defer zerolog.SetGlobalLevel(zerolog.InfoLevel)

	log.Info().Msg("scan started")
	log.Error().Msg("chain fetch failed")

	app, err := os.ReadFile(filepath.Join(dir, "sentinel.log"))
	require.NoError(t, err)
	assert.Contains(t, string(app), "scan started")
	assert.Contains(t, string(app), "chain fetch failed")

	errs, err := os.ReadFile(filepath.Join(dir, "error.log"))
	require.NoError(t, err)
	assert.NotContains(t, string(errs), "scan started")
	assert.Contains(t, string(errs), "chain fetch failed")
}

func TestMinLevelWriter(t *testing.T) {
	var buf bytes.Buffer
	w := &minLevelWriter{w: &buf, min: zerolog.WarnLevel}

	n, err := w.WriteLevel(zerolog.InfoLevel, []byte("info"))
	require.NoError(t, err)
	assert.Equal(t, 4, n)
	assert.Empty(t, buf.String())

	_, err = w.WriteLevel(zerolog.ErrorLevel, []byte("error"))
	require.NoError(t, err)
	assert.Equal(t, "error", buf.String())
}
