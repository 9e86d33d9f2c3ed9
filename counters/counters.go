// Package counters implements the observational counters sink described in
// spec §6: a CSV line per flush, fixed column order, triggered when
// num_queries reaches 1000, resetting every non-size counter afterward.
// Counters never participate in the core's algorithmic decisions.
package counters

import (
	"encoding/csv"
	"fmt"
	"os"
	"sync"

	"github.com/ivanbrykalov/lecar/internal/util"
	"github.com/ivanbrykalov/lecar/lecar"
)

// flushThreshold is the num_queries level that triggers an automatic flush.
const flushThreshold = 1000

// columns is the fixed CSV column order spec §6 mandates.
var columns = []string{
	"size", "num_queries", "hits", "misses",
	"raw_messages_size", "compressed_size", "raw_len", "encoded_len",
	"compression_time", "decompression_time", "updating_time", "memory_size",
}

// Sink accumulates query/compression counters and appends a CSV row to a
// caller-supplied path whenever num_queries reaches flushThreshold.
type Sink struct {
	path string

	mu         sync.Mutex
	headerDone bool

	size util.PaddedAtomicInt64

	numQueries        util.PaddedAtomicUint64
	hits              util.PaddedAtomicUint64
	misses            util.PaddedAtomicUint64
	rawMessagesSize   util.PaddedAtomicUint64
	compressedSize    util.PaddedAtomicUint64
	rawLen            util.PaddedAtomicUint64
	encodedLen        util.PaddedAtomicUint64
	compressionTime   util.PaddedAtomicInt64
	decompressionTime util.PaddedAtomicInt64
	updatingTime      util.PaddedAtomicInt64
	memorySize        util.PaddedAtomicUint64
}

// New constructs a Sink that appends flushed rows to path.
func New(path string) *Sink {
	return &Sink{path: path}
}

// SetSize sets the current resident-entry gauge (not reset on flush).
func (s *Sink) SetSize(n int) { s.size.Store(int64(n)) }

// RecordHit counts one query and one hit, flushing if the threshold is
// reached.
func (s *Sink) RecordHit() {
	s.hits.Add(1)
	s.recordQuery()
}

// RecordMiss counts one query and one miss, flushing if the threshold is
// reached.
func (s *Sink) RecordMiss() {
	s.misses.Add(1)
	s.recordQuery()
}

// AddCompression records a compression event's raw/compressed byte sizes
// and the time spent compressing (nanoseconds).
func (s *Sink) AddCompression(rawBytes, compressedBytes int, dur int64) {
	s.rawMessagesSize.Add(uint64(rawBytes))
	s.compressedSize.Add(uint64(compressedBytes))
	s.compressionTime.Add(dur)
}

// AddEncoding records an encode event's raw/encoded lengths and the time
// spent updating (nanoseconds).
func (s *Sink) AddEncoding(rawLen, encodedLen int, updatingDur int64) {
	s.rawLen.Add(uint64(rawLen))
	s.encodedLen.Add(uint64(encodedLen))
	s.updatingTime.Add(updatingDur)
}

// AddDecompressionTime records time spent decompressing (nanoseconds).
func (s *Sink) AddDecompressionTime(dur int64) { s.decompressionTime.Add(dur) }

// SetMemorySize sets the current memory-footprint counter (reset on flush,
// per the fixed column list).
func (s *Sink) SetMemorySize(n uint64) { s.memorySize.Store(n) }

func (s *Sink) recordQuery() {
	if s.numQueries.Add(1) >= flushThreshold {
		_ = s.Flush()
	}
}

// Flush appends one CSV row to the sink's path and resets every counter
// except size, regardless of whether num_queries reached the threshold.
// Safe for concurrent use; flushes serialize on the sink's own mutex.
func (s *Sink) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.OpenFile(s.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("counters: open %s: %w", s.path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if !s.headerDone {
		if err := w.Write(columns); err != nil {
			return fmt.Errorf("counters: write header: %w", err)
		}
		s.headerDone = true
	}

	row := []string{
		fmt.Sprint(s.size.Load()),
		fmt.Sprint(s.numQueries.Load()),
		fmt.Sprint(s.hits.Load()),
		fmt.Sprint(s.misses.Load()),
		fmt.Sprint(s.rawMessagesSize.Load()),
		fmt.Sprint(s.compressedSize.Load()),
		fmt.Sprint(s.rawLen.Load()),
		fmt.Sprint(s.encodedLen.Load()),
		fmt.Sprint(s.compressionTime.Load()),
		fmt.Sprint(s.decompressionTime.Load()),
		fmt.Sprint(s.updatingTime.Load()),
		fmt.Sprint(s.memorySize.Load()),
	}
	if err := w.Write(row); err != nil {
		return fmt.Errorf("counters: write row: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("counters: flush: %w", err)
	}

	s.resetLocked()
	return nil
}

// Adapter wraps a Sink as a lecar.Metrics, so the CSV counters can sit
// alongside (not instead of) a Prometheus adapter on the same controller.
// Only the four columns with a direct lecar.Metrics equivalent — hits,
// misses, num_queries (counted by both), and the main-store size gauge —
// are fed; ghost hits, evictions,
// and p_LFU have no column in the fixed CSV layout and are dropped here.
type Adapter struct {
	Sink *Sink
}

var _ lecar.Metrics = Adapter{}

func (a Adapter) Hit()  { a.Sink.RecordHit() }
func (a Adapter) Miss() { a.Sink.RecordMiss() }
func (a Adapter) GhostHit(lecar.Policy)  {}
func (a Adapter) Eviction(lecar.Policy)  {}
func (a Adapter) PLFU(float64)           {}
func (a Adapter) Size(main, _, _ int)    { a.Sink.SetSize(main) }

// resetLocked zeros every counter except size. Caller must hold s.mu.
func (s *Sink) resetLocked() {
	s.numQueries.Store(0)
	s.hits.Store(0)
	s.misses.Store(0)
	s.rawMessagesSize.Store(0)
	s.compressedSize.Store(0)
	s.rawLen.Store(0)
	s.encodedLen.Store(0)
	s.compressionTime.Store(0)
	s.decompressionTime.Store(0)
	s.updatingTime.Store(0)
	s.memorySize.Store(0)
}
