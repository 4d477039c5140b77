// Package emitter defines the interface and implementations for event destinations.
package emitter

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/GabrielNunesIT/iis-log-parser/internal/model"
)

// Emitter defines the contract for event destinations.
// Each emitter receives parsed events and writes them to a destination.
type Emitter interface {
	// Start initializes the emitter (files, buffers, etc.).
	// Called once before Emit is called.
	Start(ctx context.Context) error

	// Emit sends an event to the destination.
	// Must be safe to call concurrently.
	Emit(ctx context.Context, event *model.LogEvent) error

	// Stop gracefully shuts down the emitter.
	// Should flush any buffered data before returning.
	Stop(ctx context.Context) error

	// Name returns a unique identifier for this emitter.
	Name() string
}

// marshalLine encodes event as a single JSON line.
func marshalLine(event *model.LogEvent) ([]byte, error) {
	output, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("encoding event: %w", err)
	}
	return append(output, '\n'), nil
}
