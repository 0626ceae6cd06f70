package maze

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// deliverResponse unmarshals the request ID out of a command payload and
// answers on the matching response topic.
func deliverResponse(t *testing.T, client *mockBrokerClient, topic string, payload []byte, build func(id string) any) {
	t.Helper()

	var envelope struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(payload, &envelope); err != nil {
		t.Fatalf("unmarshaling request on %s: %v", topic, err)
	}

	response, err := json.Marshal(build(envelope.ID))
	if err != nil {
		t.Fatalf("marshaling response: %v", err)
	}
	client.Deliver(topic, response)
}

func TestLinkGetFullGrid(t *testing.T) {
	client := newMockBrokerClient()
	client.onPublish = func(topic string, payload []byte) {
		if topic != "maze/command/map" {
			return
		}
		deliverResponse(t, client, "maze/response/map", payload, func(id string) any {
			return mapResponse{ID: id, Cells: []string{"r", "f", "t"}, Shape: []int{1, 3}}
		})
	}

	link := newLinkWithClient(client, "maze")
	defer link.Close()

	cells, shape, err := link.GetFullGrid(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, []string{"r", "f", "t"}, cells)
	assert.Equal(t, []int{1, 3}, shape)
}

func TestLinkMove(t *testing.T) {
	client := newMockBrokerClient()
	client.onPublish = func(topic string, payload []byte) {
		if topic != "maze/command/move" {
			return
		}
		var req moveRequest
		if err := json.Unmarshal(payload, &req); err != nil {
			t.Errorf("unmarshaling move request: %v", err)
			return
		}
		deliverResponse(t, client, "maze/response/move", payload, func(id string) any {
			return moveResponse{ID: id, Success: req.Direction == "right"}
		})
	}

	link := newLinkWithClient(client, "maze")
	defer link.Close()

	moved, err := link.Move(context.Background(), Right)
	assert.NoError(t, err)
	assert.True(t, moved)

	moved, err = link.Move(context.Background(), Up)
	assert.NoError(t, err)
	assert.False(t, moved, "move into a wall should be rejected")
}

func TestLinkReset(t *testing.T) {
	client := newMockBrokerClient()

	var got resetRequest
	client.onPublish = func(topic string, payload []byte) {
		if topic != "maze/command/reset" {
			return
		}
		if err := json.Unmarshal(payload, &got); err != nil {
			t.Errorf("unmarshaling reset request: %v", err)
			return
		}
		deliverResponse(t, client, "maze/response/reset", payload, func(id string) any {
			return resetResponse{ID: id}
		})
	}

	link := newLinkWithClient(client, "maze")
	defer link.Close()

	err := link.Reset(context.Background(), true, "")
	assert.NoError(t, err)
	assert.True(t, got.IsRandom)

	err = link.Reset(context.Background(), false, "ring")
	assert.NoError(t, err)
	assert.False(t, got.IsRandom)
	assert.Equal(t, "ring", got.MapName)
}

func TestLinkCallTimeout(t *testing.T) {
	// No responder: the request must time out instead of hanging.
	client := newMockBrokerClient()
	link := newLinkWithClient(client, "maze")
	defer link.Close()
	link.callTimeout = 50 * time.Millisecond

	_, err := link.Move(context.Background(), Up)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "timed out")

	// The pending table must not leak the timed-out request.
	link.mu.Lock()
	pending := len(link.pending)
	link.mu.Unlock()
	assert.Equal(t, 0, pending)
}

func TestLinkCallContextCanceled(t *testing.T) {
	client := newMockBrokerClient()
	link := newLinkWithClient(client, "maze")
	defer link.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := link.Move(ctx, Up)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLinkIgnoresUnmatchedResponses(t *testing.T) {
	client := newMockBrokerClient()
	link := newLinkWithClient(client, "maze")
	defer link.Close()

	// Neither a malformed payload nor an unknown correlation ID may panic
	// or get stuck.
	client.Deliver("maze/response/move", []byte("not json"))
	client.Deliver("maze/response/move", []byte(`{"id":"nobody-asked","success":true}`))
}

func TestLinkSensorStream(t *testing.T) {
	client := newMockBrokerClient()
	link := newLinkWithClient(client, "maze")
	defer link.Close()

	stream := link.SubscribeSensors()
	defer stream.Close()

	frame := `{"up":"f","down":"b","left":"b","right":"f","up_left":"b","up_right":"t","down_left":"b","down_right":"b"}`
	client.Deliver("maze/sensors", []byte(frame))

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	readings, err := stream.Recv(ctx)
	assert.NoError(t, err)
	assert.Equal(t, SensorFree, readings.Up)
	assert.Equal(t, SensorBlocked, readings.Down)
	assert.Equal(t, SensorTarget, readings.UpRight)

	// A malformed frame is dropped, not delivered.
	client.Deliver("maze/sensors", []byte("garbage"))
	client.Deliver("maze/sensors", []byte(frame))
	readings, err = stream.Recv(ctx)
	assert.NoError(t, err)
	assert.Equal(t, SensorFree, readings.Up)
}

func TestMockTopicMatches(t *testing.T) {
	cases := []struct {
		pattern string
		topic   string
		want    bool
	}{
		{"maze/sensors", "maze/sensors", true},
		{"maze/sensors", "maze/command/move", false},
		{"maze/response/+", "maze/response/move", true},
		{"maze/response/+", "maze/response/map", true},
		{"maze/response/+", "maze/response/a/b", false},
		{"maze/response/+", "other/response/move", false},
	}
	for _, tc := range cases {
		if got := mockTopicMatches(tc.pattern, tc.topic); got != tc.want {
			t.Errorf("mockTopicMatches(%q, %q) = %v, want %v", tc.pattern, tc.topic, got, tc.want)
		}
	}
}
