// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/addnotespace/pkg/types"
)

func TestNew_Levels(t *testing.T) {
	tests := []struct {
		level   string
		want    logrus.Level
		wantErr bool
	}{
		{"", logrus.WarnLevel, false},
		{"debug", logrus.DebugLevel, false},
		{" info ", logrus.InfoLevel, false},
		{"loud", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			logger, closer, err := New(types.LogConfig{Level: tt.level}, &bytes.Buffer{})
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			defer closer.Close()
			assert.Equal(t, tt.want, logger.GetLevel())
		})
	}
}

func TestNew_WritesFileAndStderr(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", FileName)
	var stderr bytes.Buffer

	logger, closer, err := New(types.LogConfig{Level: "info", File: path}, &stderr)
	require.NoError(t, err)
	logger.WithField("input", "a.pdf").Info("file done")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "file done")
	assert.Contains(t, string(data), "input=a.pdf")
	assert.Contains(t, stderr.String(), "file done")
}

func TestRotatingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	rf, err := OpenRotating(path, 10)
	require.NoError(t, err)

	_, err = rf.Write([]byte("12345678\n"))
	require.NoError(t, err)
	_, err = rf.Write([]byte("abc\n"))
	require.NoError(t, err)
	_, err = rf.Write([]byte("def\n"))
	require.NoError(t, err)
	require.NoError(t, rf.Close())

	backup, err := os.ReadFile(path + ".1")
	require.NoError(t, err)
	assert.Equal(t, "12345678\n", string(backup))

	current, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "abc\ndef\n", string(current))
}

func TestRotatingFile_OversizedLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	rf, err := OpenRotating(path, 4)
	require.NoError(t, err)
	defer rf.Close()

	long := strings.Repeat("x", 20)
	_, err = rf.Write([]byte(long))
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, long, string(data))
	_, err = os.Stat(path + ".1")
	assert.True(t, os.IsNotExist(err))
}
