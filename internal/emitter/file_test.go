package emitter

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/GabrielNunesIT/iis-log-parser/internal/config"
	"github.com/GabrielNunesIT/iis-log-parser/internal/testutil"
)

func TestFileEmitter_Start(t *testing.T) {
	cfg := config.FileEmitterConfig{
		Enabled: true,
		Path:    "/tmp/test.log",
	}

	t.Run("success", func(t *testing.T) {
		mockWriter := testutil.NewMockWriteCloser(t)
		factory := func(c config.FileEmitterConfig) (io.WriteCloser, error) {
			return mockWriter, nil
		}

		e := NewFileEmitter(cfg, testutil.NewTestLogger(), WithWriterFactory(factory))
		err := e.Start(context.Background())
		assert.NoError(t, err)
	})

	t.Run("factory error", func(t *testing.T) {
		factory := func(c config.FileEmitterConfig) (io.WriteCloser, error) {
			return nil, errors.New("factory error")
		}

		e := NewFileEmitter(cfg, testutil.NewTestLogger(), WithWriterFactory(factory))
		err := e.Start(context.Background())
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "factory error")
	})
}

func TestFileEmitter_Emit(t *testing.T) {
	cfg := config.FileEmitterConfig{Enabled: true}
	event := testEvent()

	t.Run("success", func(t *testing.T) {
		mockWriter := testutil.NewMockWriteCloser(t)
		factory := func(c config.FileEmitterConfig) (io.WriteCloser, error) {
			return mockWriter, nil
		}

		mockWriter.On("Write", mock.MatchedBy(func(p []byte) bool {
			var output map[string]any
			err := json.Unmarshal(p, &output)
			return err == nil &&
				output["cs-method"] == "GET" &&
				output["cs-uri-stem"] == "/index.html" &&
				p[len(p)-1] == '\n'
		})).Return(10, nil)

		e := NewFileEmitter(cfg, testutil.NewTestLogger(), WithWriterFactory(factory))
		_ = e.Start(context.Background())

		err := e.Emit(context.Background(), event)
		assert.NoError(t, err)
	})

	t.Run("write error", func(t *testing.T) {
		mockWriter := testutil.NewMockWriteCloser(t)
		factory := func(c config.FileEmitterConfig) (io.WriteCloser, error) {
			return mockWriter, nil
		}

		mockWriter.On("Write", mock.Anything).Return(0, errors.New("disk full"))

		e := NewFileEmitter(cfg, testutil.NewTestLogger(), WithWriterFactory(factory))
		_ = e.Start(context.Background())

		err := e.Emit(context.Background(), event)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "disk full")
	})

	t.Run("not started", func(t *testing.T) {
		e := NewFileEmitter(cfg, testutil.NewTestLogger())
		assert.NoError(t, e.Emit(context.Background(), event))
	})
}

func TestFileEmitter_Stop(t *testing.T) {
	mockWriter := testutil.NewMockWriteCloser(t)
	factory := func(c config.FileEmitterConfig) (io.WriteCloser, error) {
		return mockWriter, nil
	}

	mockWriter.On("Close").Return(nil).Once()

	e := NewFileEmitter(config.FileEmitterConfig{}, testutil.NewTestLogger(), WithWriterFactory(factory))
	_ = e.Start(context.Background())

	assert.NoError(t, e.Stop(context.Background()))
	// A second stop has nothing left to close
	assert.NoError(t, e.Stop(context.Background()))
}

func TestFileEmitter_Lumberjack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.jsonl")
	cfg := config.FileEmitterConfig{Enabled: true, Path: path, MaxSizeMB: 1}

	e := NewFileEmitter(cfg, testutil.NewTestLogger())
	require.NoError(t, e.Start(context.Background()))
	require.NoError(t, e.Emit(context.Background(), testEvent()))
	require.NoError(t, e.Stop(context.Background()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var output map[string]any
	require.NoError(t, json.Unmarshal(data, &output))
	assert.Equal(t, "10.0.0.1", output["s-ip"])
}
