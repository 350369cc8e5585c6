package ingest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/pvmelo/focuserp/internal/model"
)

var (
	// ErrEmptyText rejects ingestion before any I/O happens.
	ErrEmptyText = errors.New("ingest: text is empty")
	// ErrNothingParsed means neither the remote service nor the local
	// parser could extract a single category. No state was changed.
	ErrNothingParsed = errors.New("ingest: could not extract any tasks")
)

// Extractor is the remote text-understanding service. It returns the raw
// JSON payload the service produced; the shape is untrusted and goes
// through Normalize before use.
type Extractor interface {
	ExtractPlan(ctx context.Context, text string) (json.RawMessage, error)
}

// Store is the read-modify-write cycle the ingestor owns.
type Store interface {
	Load() (model.AppData, error)
	Save(model.AppData) error
}

// Ingestor sequences one batch ingestion: remote extraction, shape
// normalization, local-parser fallback, merge, persist. Calls are
// serialized per instance; the remote call runs outside the lock, the
// read-merge-write cycle inside it.
type Ingestor struct {
	Provider Extractor // optional; nil goes straight to the local parser
	Store    Store
	Log      *slog.Logger

	mu sync.Mutex
}

// Result is the terminal status of one ingestion call.
type Result struct {
	Counts   Counts `json:"contadores"`
	Fallback bool   `json:"fallbackLocal"`
}

// Ingest runs the whole pipeline for one block of pasted text. Remote
// failures of any kind (transport error, error-shaped payload,
// unrecognizable JSON) are not surfaced: they trigger the local parser on
// the original text. Only when that also yields nothing does Ingest fail,
// with no state mutation.
func (ing *Ingestor) Ingest(ctx context.Context, rawText string) (Result, error) {
	if strings.TrimSpace(rawText) == "" {
		return Result{}, ErrEmptyText
	}

	batch := ing.extract(ctx, rawText)

	res := Result{}
	if len(batch) == 0 {
		batch = ParseText(rawText)
		res.Fallback = true
	}
	if len(batch) == 0 {
		return Result{}, ErrNothingParsed
	}

	ing.mu.Lock()
	defer ing.mu.Unlock()

	data, err := ing.Store.Load()
	if err != nil {
		return Result{}, fmt.Errorf("ingest: load state: %w", err)
	}
	res.Counts = Merge(&data, batch, time.Now().UTC())
	if err := ing.Store.Save(data); err != nil {
		return Result{}, fmt.Errorf("ingest: save state: %w", err)
	}
	return res, nil
}

// extract calls the remote service and normalizes its response. Every
// failure path collapses to an empty batch; the reason only reaches the
// log.
func (ing *Ingestor) extract(ctx context.Context, rawText string) []ParsedCategory {
	if ing.Provider == nil {
		return nil
	}
	raw, err := ing.Provider.ExtractPlan(ctx, rawText)
	if err != nil {
		ing.logger().Warn("remote extraction failed, using local parser", "error", err)
		return nil
	}

	var payload any
	if err := json.Unmarshal(raw, &payload); err != nil {
		ing.logger().Warn("remote response is not JSON, using local parser", "error", err)
		return nil
	}

	batch, err := Normalize(payload)
	if err != nil {
		ing.logger().Warn("remote response has no usable shape, using local parser", "error", err)
		return nil
	}
	return batch
}

func (ing *Ingestor) logger() *slog.Logger {
	if ing.Log != nil {
		return ing.Log
	}
	return slog.Default()
}
