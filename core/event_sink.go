package core

import (
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/clawnch/ledger/ledger/types"
)

// EventSink receives committed ledger events. Emit must not block: the ledger
// never waits on, or depends on, delivery.
type EventSink interface {
	Emit(event types.Event)
}

// NopSink drops every event.
type NopSink struct{}

func (NopSink) Emit(types.Event) {}

// LogSink writes events to a logger.
type LogSink struct {
	Logger *log.Entry
}

func NewLogSink(logger *log.Entry) *LogSink {
	return &LogSink{Logger: logger}
}

func (s *LogSink) Emit(event types.Event) {
	s.Logger.WithFields(log.Fields{"event": event.EventName()}).Infof("%+v", event)
}

// ChannelSink buffers events for a consumer goroutine and drops them when the
// buffer is full.
type ChannelSink struct {
	ch      chan types.Event
	mu      sync.Mutex
	dropped uint64
}

func NewChannelSink(size int) *ChannelSink {
	return &ChannelSink{ch: make(chan types.Event, size)}
}

func (s *ChannelSink) Emit(event types.Event) {
	select {
	case s.ch <- event:
	default:
		s.mu.Lock()
		s.dropped++
		s.mu.Unlock()
	}
}

// Events returns the channel events are delivered on.
func (s *ChannelSink) Events() <-chan types.Event {
	return s.ch
}

// Dropped returns how many events were discarded on a full buffer.
func (s *ChannelSink) Dropped() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dropped
}

// MultiSink fans out to several sinks in order.
type MultiSink []EventSink

func (m MultiSink) Emit(event types.Event) {
	for _, sink := range m {
		sink.Emit(event)
	}
}
