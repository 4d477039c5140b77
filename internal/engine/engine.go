// Package engine turns a W3C extended log line source into batches of
// typed events.
package engine

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/GabrielNunesIT/go-libs/logger"

	"github.com/GabrielNunesIT/iis-log-parser/internal/config"
	"github.com/GabrielNunesIT/iis-log-parser/internal/ingestor"
	"github.com/GabrielNunesIT/iis-log-parser/internal/model"
	"github.com/GabrielNunesIT/iis-log-parser/internal/w3c"
)

var (
	// ErrExhausted is returned by Next once the source has been fully read.
	ErrExhausted = errors.New("engine exhausted: no more data")
	// ErrClosed is returned by Next after Close.
	ErrClosed = errors.New("engine closed")
)

// Batch is the result of one Next call.
type Batch struct {
	// Events are in file order.
	Events []*model.LogEvent
	// More reports that the source still has unread data.
	More bool
}

// Engine reads a line source and produces LogEvents in batches.
// An Engine is not safe for concurrent use.
type Engine struct {
	cfg    config.ParserConfig
	src    ingestor.LineSource
	mode   Mode
	loc    *time.Location
	logger logger.ILogger

	header  *w3c.Header
	state   State
	total   int
	skipped int
	line    int
	err     error
	closed  bool
}

// New creates an engine over src. size is the source length in bytes, or
// negative when unknown. The engine takes ownership of src.
func New(src ingestor.LineSource, size int64, cfg config.ParserConfig, log logger.ILogger) (*Engine, error) {
	if cfg.BatchSize == 0 {
		cfg.BatchSize = config.DefaultBatchSize
	}
	if cfg.OnMalformed == "" {
		cfg.OnMalformed = config.PolicyAbort
	}
	if cfg.MaxLineSize == 0 {
		cfg.MaxLineSize = config.DefaultMaxLineSize
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid parser config: %w", err)
	}
	loc, _ := cfg.TimeLocation()

	e := &Engine{
		cfg:    cfg,
		src:    src,
		mode:   SelectMode(size, cfg.ThresholdBytes()),
		loc:    loc,
		logger: log.SubLogger("Engine"),
		state:  StateIdle,
	}

	e.logger.Debugf("mode selected: mode=%s, size=%d, threshold=%d, batch_size=%d",
		e.mode, size, cfg.ThresholdBytes(), cfg.BatchSize)
	return e, nil
}

// Open opens the log file at path and creates an engine over it. It fails
// immediately when the file does not exist or cannot be read.
func Open(path string, cfg config.ParserConfig, log logger.ILogger) (*Engine, error) {
	src, err := ingestor.OpenFile(path, ingestor.WithMaxLineSize(cfg.MaxLineSize))
	if err != nil {
		return nil, err
	}

	e, err := New(src, src.Size(), cfg, log)
	if err != nil {
		_ = src.Close()
		return nil, err
	}
	return e, nil
}

// With opens path, passes the engine to fn and closes it afterwards, also
// when fn fails or panics.
func With(path string, cfg config.ParserConfig, log logger.ILogger, fn func(*Engine) error) (err error) {
	e, err := Open(path, cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := e.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing engine: %w", cerr)
		}
	}()
	return fn(e)
}

// Next produces the next batch of events.
//
// In full-buffer mode the first call drains the source and reports
// More=false. In bounded mode a call stops once it has produced BatchSize
// records and reports More=true; the next call continues where it left off.
// A blank line ends the input. Calling Next after the engine is exhausted
// returns ErrExhausted; after a failure it keeps returning that failure.
func (e *Engine) Next() (Batch, error) {
	switch {
	case e.closed:
		return Batch{}, ErrClosed
	case e.err != nil:
		return Batch{}, e.err
	case e.state == StateExhausted:
		return Batch{}, ErrExhausted
	}

	var (
		batch Batch
		err   error
	)
	if e.mode == ModeFullBuffer {
		batch, err = e.drain()
	} else {
		batch, err = e.bounded()
	}
	if err != nil {
		e.err = err
		e.state = StateExhausted
		return Batch{}, err
	}

	e.total += len(batch.Events)
	if batch.More {
		e.state = StateActive
	} else {
		e.state = StateExhausted
	}

	e.logger.Debugf("batch produced: events=%d, more=%t, total=%d", len(batch.Events), batch.More, e.total)
	return batch, nil
}

// drain reads every remaining line before classifying any of them.
func (e *Engine) drain() (Batch, error) {
	first := e.line + 1
	var lines []string
	for {
		line, ok, err := e.readLine()
		if err != nil {
			return Batch{}, err
		}
		if !ok {
			break
		}
		lines = append(lines, line)
	}

	events := make([]*model.LogEvent, 0, len(lines))
	for i, line := range lines {
		event, err := e.processLine(first+i, line)
		if err != nil {
			return Batch{}, err
		}
		if event != nil {
			events = append(events, event)
		}
	}
	return Batch{Events: events}, nil
}

func (e *Engine) bounded() (Batch, error) {
	var events []*model.LogEvent
	for {
		line, ok, err := e.readLine()
		if err != nil {
			return Batch{}, err
		}
		if !ok {
			return Batch{Events: events}, nil
		}

		event, err := e.processLine(e.line, line)
		if err != nil {
			return Batch{}, err
		}
		if event == nil {
			continue
		}

		events = append(events, event)
		if len(events)%e.cfg.BatchSize == 0 {
			return Batch{Events: events, More: true}, nil
		}
	}
}

// readLine returns ok=false at end of input, which is either EOF or a blank line.
func (e *Engine) readLine() (string, bool, error) {
	line, err := e.src.ReadLine()
	if err == io.EOF {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("reading line %d: %w", e.line+1, err)
	}
	e.line++
	if line == "" {
		e.logger.Debugf("blank line ends input: line=%d", e.line)
		return "", false, nil
	}
	return line, true, nil
}

// processLine classifies a line and returns the event it produced, if any.
func (e *Engine) processLine(n int, line string) (*model.LogEvent, error) {
	if w3c.IsDirective(line) {
		h, err := w3c.ParseHeader(line)
		if err != nil {
			return nil, e.malformed(n, err)
		}
		e.header = h
		e.logger.Debugf("header directive: line=%d, columns=%d, ignored=%v", n, h.Len(), h.Unknown())
		return nil, nil
	}
	if w3c.IsComment(line) {
		return nil, nil
	}

	if e.header == nil {
		if e.cfg.Strict {
			return nil, e.malformed(n, w3c.ErrNoHeader)
		}
		return nil, nil
	}

	row, err := e.header.Map(line)
	if err != nil {
		return nil, e.malformed(n, err)
	}

	event, err := w3c.BuildEvent(row, e.loc)
	if err != nil {
		return nil, e.malformed(n, err)
	}
	return event, nil
}

// malformed applies the configured policy. It returns nil when the line is skipped.
func (e *Engine) malformed(n int, cause error) error {
	err := &w3c.LineError{Line: n, Err: cause}
	if e.cfg.OnMalformed == config.PolicySkip {
		e.skipped++
		e.logger.Warningf("skipping malformed line: %v", err)
		return nil
	}
	return err
}

// Close releases the source. It is safe to call more than once.
func (e *Engine) Close() error {
	if e.closed {
		return nil
	}
	e.closed = true
	return e.src.Close()
}

// Mode returns the reading strategy chosen at construction.
func (e *Engine) Mode() Mode { return e.mode }

// State returns the current protocol state.
func (e *Engine) State() State { return e.state }

// Total returns the number of events produced across all calls.
func (e *Engine) Total() int { return e.total }

// Skipped returns the number of malformed lines dropped under the skip policy.
func (e *Engine) Skipped() int { return e.skipped }

// LinesRead returns the number of lines consumed from the source.
func (e *Engine) LinesRead() int { return e.line }

// Header returns the active header, or nil before the first directive.
func (e *Engine) Header() *w3c.Header { return e.header }
