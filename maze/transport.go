package maze

import (
	"context"
	"log"
	"sync"
)

// Transport is the narrow interface to the maze simulation. The concrete
// implementations are the MQTT Link and the in-process Simulator; solvers
// never see past this surface.
type Transport interface {
	// GetFullGrid fetches the complete maze as flattened single-letter cell
	// codes plus a [height, width] shape.
	GetFullGrid(ctx context.Context) (cells []string, shape []int, err error)

	// Move issues one move. The returned bool is the simulation's verdict;
	// false means the robot did not move.
	Move(ctx context.Context, d Direction) (bool, error)

	// Reset returns the maze to its starting state, optionally loading a
	// named map or generating a random one.
	Reset(ctx context.Context, isRandom bool, mapName string) error

	// SubscribeSensors opens a fresh sensor subscription. A subscription is
	// not restartable once closed; subscribe again after a reset when stale
	// readings must be avoided.
	SubscribeSensors() *SensorStream
}

// sensorStreamBuffer is the per-subscriber backlog. It is what makes the
// solver's drain-then-read idiom meaningful: stale readings accumulate here
// between interpretation points instead of overwriting a single slot.
const sensorStreamBuffer = 100

// SensorStream is one subscriber's view of the sensor feed. Readings are
// delivered in emission order; when a slow consumer overflows the backlog
// the oldest reading is dropped, never the newest.
type SensorStream struct {
	ch   chan SensorReadings
	done chan struct{}
	once sync.Once
}

func newSensorStream() *SensorStream {
	return &SensorStream{
		ch:   make(chan SensorReadings, sensorStreamBuffer),
		done: make(chan struct{}),
	}
}

// Recv blocks until the next reading arrives, the stream closes, or ctx is
// done. A closed stream yields ErrSensorStreamClosed; buffered readings are
// still delivered first.
func (s *SensorStream) Recv(ctx context.Context) (SensorReadings, error) {
	// Prefer buffered readings over a close that raced in behind them.
	select {
	case r := <-s.ch:
		return r, nil
	default:
	}

	select {
	case r := <-s.ch:
		return r, nil
	case <-s.done:
		// One more buffered reading may have slipped in before done.
		select {
		case r := <-s.ch:
			return r, nil
		default:
			return SensorReadings{}, ErrSensorStreamClosed
		}
	case <-ctx.Done():
		return SensorReadings{}, ctx.Err()
	}
}

// Drain discards every buffered reading without blocking and returns how
// many were dropped. It establishes a fresh baseline: everything received
// afterwards was emitted after the drain.
func (s *SensorStream) Drain() int {
	n := 0
	for {
		select {
		case <-s.ch:
			n++
		default:
			return n
		}
	}
}

// Close ends the subscription. Safe to call more than once.
func (s *SensorStream) Close() {
	s.once.Do(func() { close(s.done) })
}

func (s *SensorStream) closed() bool {
	select {
	case <-s.done:
		return true
	default:
		return false
	}
}

// sensorHub fans readings out to every live subscription. Both transports
// push into it: the MQTT link from the paho message callback, the simulator
// from its emission goroutine.
type sensorHub struct {
	mu   sync.Mutex
	subs []*SensorStream
}

func newSensorHub() *sensorHub {
	return &sensorHub{}
}

// Subscribe registers a new buffered subscription.
func (h *sensorHub) Subscribe() *SensorStream {
	s := newSensorStream()
	h.mu.Lock()
	h.subs = append(h.subs, s)
	h.mu.Unlock()
	return s
}

// Publish delivers one reading to every live subscriber, pruning closed
// ones. A full backlog drops its oldest entry to make room.
func (h *sensorHub) Publish(r SensorReadings) {
	h.mu.Lock()
	defer h.mu.Unlock()

	live := h.subs[:0]
	for _, s := range h.subs {
		if s.closed() {
			continue
		}
		live = append(live, s)
		select {
		case s.ch <- r:
		default:
			select {
			case <-s.ch:
				log.Printf("sensor stream backlog full, dropping oldest reading")
			default:
			}
			select {
			case s.ch <- r:
			default:
			}
		}
	}
	h.subs = live
}

// Close ends every subscription.
func (h *sensorHub) Close() {
	h.mu.Lock()
	subs := h.subs
	h.subs = nil
	h.mu.Unlock()
	for _, s := range subs {
		s.Close()
	}
}
