package maze

import (
	"context"
	"errors"
	"testing"
	"time"
)

func markedReadings(up SensorState) SensorReadings {
	return SensorReadings{Up: up}
}

func TestSensorStreamRecvAndDrain(t *testing.T) {
	hub := newSensorHub()
	stream := hub.Subscribe()
	defer stream.Close()

	hub.Publish(markedReadings(SensorFree))
	hub.Publish(markedReadings(SensorBlocked))
	hub.Publish(markedReadings(SensorTarget))

	if n := stream.Drain(); n != 3 {
		t.Fatalf("Drain() = %d, want 3", n)
	}

	hub.Publish(markedReadings(SensorBlocked))

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	r, err := stream.Recv(ctx)
	if err != nil {
		t.Fatalf("Recv() error: %v", err)
	}
	if r.Up != SensorBlocked {
		t.Fatalf("Recv() got pre-drain reading, Up = %v", r.Up)
	}
}

func TestSensorStreamClosed(t *testing.T) {
	hub := newSensorHub()
	stream := hub.Subscribe()

	hub.Publish(markedReadings(SensorTarget))
	stream.Close()
	stream.Close() // idempotent

	// Buffered readings survive the close.
	r, err := stream.Recv(context.Background())
	if err != nil {
		t.Fatalf("Recv() after close with backlog: %v", err)
	}
	if r.Up != SensorTarget {
		t.Fatalf("Recv() Up = %v, want target", r.Up)
	}

	if _, err := stream.Recv(context.Background()); !errors.Is(err, ErrSensorStreamClosed) {
		t.Fatalf("Recv() on drained closed stream: %v, want ErrSensorStreamClosed", err)
	}
}

func TestSensorStreamRecvContext(t *testing.T) {
	hub := newSensorHub()
	stream := hub.Subscribe()
	defer stream.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if _, err := stream.Recv(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("Recv() on empty stream: %v, want deadline exceeded", err)
	}
}

func TestSensorHubDropsOldestOnOverflow(t *testing.T) {
	hub := newSensorHub()
	stream := hub.Subscribe()
	defer stream.Close()

	// The first reading carries a marker; overflowing the backlog by one
	// must evict exactly that oldest reading.
	hub.Publish(markedReadings(SensorTarget))
	for i := 0; i < sensorStreamBuffer; i++ {
		hub.Publish(markedReadings(SensorFree))
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	r, err := stream.Recv(ctx)
	if err != nil {
		t.Fatalf("Recv() error: %v", err)
	}
	if r.Up == SensorTarget {
		t.Fatal("oldest reading survived an overflow, want it dropped")
	}
	if n := stream.Drain(); n != sensorStreamBuffer-1 {
		t.Fatalf("backlog after overflow = %d, want %d", n+1, sensorStreamBuffer)
	}
}

func TestSensorHubPrunesClosedSubscribers(t *testing.T) {
	hub := newSensorHub()
	dead := hub.Subscribe()
	live := hub.Subscribe()
	defer live.Close()

	dead.Close()
	hub.Publish(markedReadings(SensorFree))

	hub.mu.Lock()
	subs := len(hub.subs)
	hub.mu.Unlock()
	if subs != 1 {
		t.Fatalf("subscriber count after publish = %d, want 1", subs)
	}
}

func TestSensorHubCloseEndsSubscriptions(t *testing.T) {
	hub := newSensorHub()
	stream := hub.Subscribe()
	hub.Close()

	if _, err := stream.Recv(context.Background()); !errors.Is(err, ErrSensorStreamClosed) {
		t.Fatalf("Recv() after hub close: %v, want ErrSensorStreamClosed", err)
	}
}
