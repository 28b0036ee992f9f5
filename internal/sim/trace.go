package sim

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/klauspost/compress/zstd"

	"github.com/osse101/GibLife_Go/internal/clock"
	"github.com/osse101/GibLife_Go/internal/domain"
	"github.com/osse101/GibLife_Go/internal/event"
	"github.com/osse101/GibLife_Go/internal/logger"
)

// traceSessionID tags every traced event
const traceSessionID = "sim"

// tracePresenter turns game updates into events for the trace. Per-frame
// progress and countdown updates are left out, and the capacity warning is
// recorded only when the queue first fills.
type tracePresenter struct {
	ctx      context.Context
	w        TraceWriter
	clk      clock.Clock
	capacity int
	wasFull  bool
}

func newTracePresenter(ctx context.Context, w TraceWriter, clk clock.Clock, capacity int) *tracePresenter {
	return &tracePresenter{ctx: ctx, w: w, clk: clk, capacity: capacity}
}

func (p *tracePresenter) write(e event.Event) {
	e.Timestamp = p.clk.Now()
	if err := p.w.Write(e); err != nil {
		logger.FromContext(p.ctx).Warn(LogMsgTraceFailed, "type", e.Type, "error", err)
	}
}

func (p *tracePresenter) QueueChanged(queue []domain.AvailableTask) {
	if len(queue) < p.capacity {
		p.wasFull = false
	}
}

func (p *tracePresenter) StatsChanged(player domain.PlayerState) {
	p.write(event.NewStatsUpdatedEvent(traceSessionID, player))
}

func (p *tracePresenter) Countdown(float64, time.Duration) {}

func (p *tracePresenter) MaxTasksReached() {
	if p.wasFull {
		return
	}
	p.wasFull = true
	p.write(event.NewQueueFullEvent(traceSessionID, p.capacity))
}

func (p *tracePresenter) TaskGenerated(task domain.AvailableTask) {
	p.write(event.NewTaskGeneratedEvent(traceSessionID, task))
}

func (p *tracePresenter) TaskStarted(task domain.ActiveTask) {
	p.write(event.NewTaskStartedEvent(traceSessionID, task))
}

func (p *tracePresenter) TaskProgress(domain.ActiveTask) {}

func (p *tracePresenter) TaskCompleted(done domain.CompletedTask) {
	p.write(event.NewTaskCompletedEvent(traceSessionID, done))
}

func (p *tracePresenter) InsufficientEnergy(current, required int) {
	p.write(event.NewTaskRejectedEvent(traceSessionID, current, required))
}

// JSONLZstdWriter writes one JSON event per line through a zstd encoder
type JSONLZstdWriter struct {
	closer io.Closer
	enc    *zstd.Encoder
	w      *bufio.Writer
}

// NewJSONLZstdWriter wraps w. Close flushes the encoder but leaves w open.
func NewJSONLZstdWriter(w io.Writer) (*JSONLZstdWriter, error) {
	enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd encoder: %w", err)
	}
	return &JSONLZstdWriter{enc: enc, w: bufio.NewWriter(enc)}, nil
}

// CreateTraceFile opens path for writing and returns a writer that also
// closes the file.
func CreateTraceFile(path string) (*JSONLZstdWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create trace file: %w", err)
	}
	tw, err := NewJSONLZstdWriter(f)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	tw.closer = f
	return tw, nil
}

// Write implements TraceWriter
func (t *JSONLZstdWriter) Write(e event.Event) error {
	b, err := json.Marshal(e)
	if err != nil {
		return err
	}
	if _, err := t.w.Write(b); err != nil {
		return err
	}
	return t.w.WriteByte('\n')
}

// Close flushes buffered records and finishes the zstd frame
func (t *JSONLZstdWriter) Close() error {
	if err := t.w.Flush(); err != nil {
		return err
	}
	if err := t.enc.Close(); err != nil {
		return err
	}
	if t.closer != nil {
		return t.closer.Close()
	}
	return nil
}

// ReadTrace decodes a trace written by JSONLZstdWriter
func ReadTrace(r io.Reader) ([]event.Event, error) {
	dec, err := zstd.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd decoder: %w", err)
	}
	defer dec.Close()

	var events []event.Event
	scanner := bufio.NewScanner(dec)
	for scanner.Scan() {
		var e event.Event
		if err := json.Unmarshal(scanner.Bytes(), &e); err != nil {
			return events, fmt.Errorf("failed to decode trace line %d: %w", len(events)+1, err)
		}
		events = append(events, e)
	}
	return events, scanner.Err()
}
