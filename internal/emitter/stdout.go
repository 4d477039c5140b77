package emitter

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/GabrielNunesIT/go-libs/logger"

	"github.com/GabrielNunesIT/iis-log-parser/internal/config"
	"github.com/GabrielNunesIT/iis-log-parser/internal/model"
	"github.com/GabrielNunesIT/iis-log-parser/internal/w3c"
)

// StdoutEmitter writes events to standard output.
type StdoutEmitter struct {
	cfg    config.StdoutEmitterConfig
	writer io.Writer
	header *w3c.Header
	mu     sync.Mutex
	logger logger.ILogger
}

// NewStdoutEmitter creates a new stdout emitter.
func NewStdoutEmitter(cfg config.StdoutEmitterConfig, log logger.ILogger) *StdoutEmitter {
	return NewStdoutEmitterWithWriter(cfg, os.Stdout, log)
}

// NewStdoutEmitterWithWriter creates a stdout emitter with a custom writer (for testing).
func NewStdoutEmitterWithWriter(cfg config.StdoutEmitterConfig, w io.Writer, log logger.ILogger) *StdoutEmitter {
	return &StdoutEmitter{
		cfg:    cfg,
		writer: w,
		header: w3c.NewHeader(w3c.StandardFields),
		logger: log.SubLogger("StdoutEmitter"),
	}
}

// Name returns the emitter identifier.
func (s *StdoutEmitter) Name() string {
	return "stdout"
}

// Start writes the #Fields: directive in w3c format.
func (s *StdoutEmitter) Start(ctx context.Context) error {
	s.logger.Debugf("stdout emitter started: format=%s", s.cfg.Format)
	if s.cfg.Format != config.FormatW3C {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := fmt.Fprintln(s.writer, w3c.FormatDirective(s.header))
	return err
}

// Stop gracefully shuts down the emitter (no-op for stdout).
func (s *StdoutEmitter) Stop(ctx context.Context) error {
	s.logger.Debug("stdout emitter stopped")
	return nil
}

// Emit writes an event to stdout.
func (s *StdoutEmitter) Emit(ctx context.Context, event *model.LogEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var output []byte
	var err error

	switch s.cfg.Format {
	case config.FormatText:
		output = s.formatText(event)
	case config.FormatW3C:
		output = []byte(w3c.FormatEvent(event, s.header) + "\n")
	default:
		output, err = marshalLine(event)
	}

	if err != nil {
		return err
	}

	_, err = s.writer.Write(output)
	return err
}

// formatText formats the event as a short human readable line.
func (s *StdoutEmitter) formatText(event *model.LogEvent) []byte {
	ts := event.Timestamp.Format(time.RFC3339)
	output := fmt.Sprintf("[%s] %s %s %s %s",
		ts, orDash(event.ClientIP), orDash(event.Method), orDash(event.URIStem), statusText(event))
	return []byte(output + "\n")
}

func orDash(v *string) string {
	if v == nil {
		return "-"
	}
	return *v
}

func statusText(event *model.LogEvent) string {
	if event.Status == nil {
		return "-"
	}
	if event.Substatus != nil {
		return fmt.Sprintf("%d.%d", *event.Status, *event.Substatus)
	}
	return fmt.Sprintf("%d", *event.Status)
}
