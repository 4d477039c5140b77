// Package pipeline drives the parsing engine and fans its batches out to emitters.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/GabrielNunesIT/go-libs/logger"
	"github.com/GabrielNunesIT/iis-log-parser/internal/config"
	"github.com/GabrielNunesIT/iis-log-parser/internal/emitter"
	"github.com/GabrielNunesIT/iis-log-parser/internal/engine"
	"github.com/GabrielNunesIT/iis-log-parser/internal/ingestor"
	"github.com/GabrielNunesIT/iis-log-parser/internal/model"
)

// StdinPath selects standard input instead of a file.
const StdinPath = "-"

// Summary describes one parsed source.
type Summary struct {
	RunID    string
	File     string
	Mode     engine.Mode
	Batches  int
	Events   int
	Skipped  int
	Duration time.Duration
}

// Pipeline coordinates the engine and the emitters.
type Pipeline struct {
	cfg      *config.Config
	logger   logger.ILogger
	emitters []emitter.Emitter
}

// New creates a new pipeline from configuration.
func New(cfg *config.Config, log logger.ILogger) (*Pipeline, error) {
	p := &Pipeline{
		cfg:    cfg,
		logger: log.SubLogger("Pipeline"),
	}

	if err := p.buildEmitters(); err != nil {
		return nil, fmt.Errorf("building emitters: %w", err)
	}

	return p, nil
}

// NewWithEmitters creates a pipeline with the given emitters instead of the configured ones.
func NewWithEmitters(cfg *config.Config, log logger.ILogger, emitters ...emitter.Emitter) (*Pipeline, error) {
	if len(emitters) == 0 {
		return nil, fmt.Errorf("no emitters enabled")
	}
	return &Pipeline{
		cfg:      cfg,
		logger:   log.SubLogger("Pipeline"),
		emitters: emitters,
	}, nil
}

// buildEmitters creates enabled emitters.
func (p *Pipeline) buildEmitters() error {
	if p.cfg.Emitters.Stdout.Enabled {
		p.emitters = append(p.emitters, emitter.NewStdoutEmitter(p.cfg.Emitters.Stdout, p.logger))
	}

	if p.cfg.Emitters.File.Enabled {
		if p.cfg.Emitters.File.Path == "" {
			return fmt.Errorf("file emitter enabled without a path")
		}
		p.emitters = append(p.emitters, emitter.NewFileEmitter(p.cfg.Emitters.File, p.logger))
	}

	if len(p.emitters) == 0 {
		return fmt.Errorf("no emitters enabled")
	}

	p.logger.Debugf("built %d emitters", len(p.emitters))
	return nil
}

// EmitterCount returns the number of enabled emitters.
func (p *Pipeline) EmitterCount() int {
	return len(p.emitters)
}

// Run parses each path in turn and sends its events to every emitter.
// A failing source does not stop the others; cancelling ctx does, between
// batches. Errors from all sources are joined.
func (p *Pipeline) Run(ctx context.Context, paths ...string) ([]Summary, error) {
	for _, em := range p.emitters {
		if err := em.Start(ctx); err != nil {
			p.shutdown()
			return nil, fmt.Errorf("starting emitter %s: %w", em.Name(), err)
		}
		p.logger.Debugf("started emitter: %s", em.Name())
	}
	defer p.shutdown()

	var (
		summaries []Summary
		errs      []error
	)
	for _, path := range paths {
		summary, err := p.runSource(ctx, path)
		if err != nil {
			p.logger.Errorf("parse failed: file=%s, error=%v", path, err)
			errs = append(errs, fmt.Errorf("%s: %w", path, err))
			if ctx.Err() != nil {
				break
			}
			continue
		}
		summaries = append(summaries, summary)
	}

	return summaries, errors.Join(errs...)
}

// runSource parses a single file, or stdin for StdinPath.
func (p *Pipeline) runSource(ctx context.Context, path string) (Summary, error) {
	summary := Summary{RunID: uuid.NewString(), File: path}
	start := time.Now()

	consume := func(e *engine.Engine) error {
		summary.Mode = e.Mode()
		p.logger.Infof("parsing: run_id=%s, file=%s, mode=%s", summary.RunID, path, e.Mode())

		err := p.consume(ctx, e, &summary)
		summary.Events = e.Total()
		summary.Skipped = e.Skipped()
		return err
	}

	var err error
	if path == StdinPath {
		err = p.runStdin(consume)
	} else {
		err = engine.With(path, p.cfg.Parser, p.logger, consume)
	}
	summary.Duration = time.Since(start)
	if err != nil {
		return summary, err
	}

	p.logger.Infof("parsed: run_id=%s, file=%s, events=%d, skipped=%d, batches=%d, duration=%s",
		summary.RunID, path, summary.Events, summary.Skipped, summary.Batches, summary.Duration)
	return summary, nil
}

func (p *Pipeline) runStdin(fn func(*engine.Engine) error) error {
	src := ingestor.NewStdinSource(ingestor.WithMaxLineSize(p.cfg.Parser.MaxLineSize))
	e, err := engine.New(src, src.Size(), p.cfg.Parser, p.logger)
	if err != nil {
		_ = src.Close()
		return err
	}
	defer e.Close()
	return fn(e)
}

// consume pulls batches until the engine reports no more data.
func (p *Pipeline) consume(ctx context.Context, e *engine.Engine, summary *Summary) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		batch, err := e.Next()
		if err != nil {
			return err
		}
		summary.Batches++

		if err := p.emitBatch(ctx, batch.Events); err != nil {
			return err
		}

		if !batch.More {
			return nil
		}
	}
}

// emitBatch sends events to all emitters concurrently. Each emitter sees
// the events in file order.
func (p *Pipeline) emitBatch(ctx context.Context, events []*model.LogEvent) error {
	if len(events) == 0 {
		return nil
	}

	g, gCtx := errgroup.WithContext(ctx)
	for _, em := range p.emitters {
		em := em
		g.Go(func() error {
			for _, event := range events {
				if err := em.Emit(gCtx, event); err != nil {
					return fmt.Errorf("emitter %s: %w", em.Name(), err)
				}
			}
			return nil
		})
	}
	return g.Wait()
}

// shutdown gracefully stops all emitters.
func (p *Pipeline) shutdown() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), p.cfg.Pipeline.ShutdownTimeout)
	defer cancel()

	for _, em := range p.emitters {
		if err := em.Stop(shutdownCtx); err != nil {
			p.logger.Warningf("emitter stop error: name=%s, error=%v", em.Name(), err)
		}
	}
	p.logger.Debug("all emitters stopped")
}
