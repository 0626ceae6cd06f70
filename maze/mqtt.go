package maze

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"
)

// Link is the MQTT maze transport. The simulation's services (full map, one
// move, reset) become request/response topic pairs correlated by request ID,
// and its sensor topic feeds the broadcast hub. The paho client's network
// goroutine plays the role of the background thread that keeps the event
// loop alive; nothing in the core ever sees it.
type Link struct {
	client      mqtt.Client
	prefix      string
	hub         *sensorHub
	callTimeout time.Duration

	mu      sync.Mutex
	pending map[string]chan []byte
}

const defaultCallTimeout = 10 * time.Second

// NewLink connects to the broker from the configuration and subscribes to
// the response and sensor topics.
func NewLink(cfg *Config) (*Link, error) {
	if cfg.MQTT.Broker == "" {
		return nil, fmt.Errorf("mqtt.broker is required")
	}

	l := &Link{
		prefix:      cfg.MQTT.Prefix,
		hub:         newSensorHub(),
		callTimeout: defaultCallTimeout,
		pending:     make(map[string]chan []byte),
	}

	opts := mqtt.NewClientOptions()
	opts.AddBroker(cfg.MQTT.Broker)

	clientID := cfg.MQTT.ClientID
	if clientID == "" {
		clientID = "mazerover"
	}
	opts.SetClientID(clientID)

	if cfg.MQTT.Username != "" {
		opts.SetUsername(cfg.MQTT.Username)
		opts.SetPassword(cfg.MQTT.Password)
	}

	opts.SetAutoReconnect(true)
	opts.SetConnectRetry(true)
	opts.SetConnectRetryInterval(5 * time.Second)
	opts.SetKeepAlive(60 * time.Second)
	opts.SetPingTimeout(10 * time.Second)
	opts.SetOrderMatters(true) // sensor readings must stay in emission order

	opts.SetOnConnectHandler(l.onConnect)
	opts.SetConnectionLostHandler(func(_ mqtt.Client, err error) {
		log.Printf("maze link interrupted (%v), auto-reconnect will retry", err)
	})

	l.client = mqtt.NewClient(opts)

	token := l.client.Connect()
	if !token.WaitTimeout(30*time.Second) || token.Error() != nil {
		return nil, fmt.Errorf("connecting to maze broker %s: %w", cfg.MQTT.Broker, token.Error())
	}

	return l, nil
}

// newLinkWithClient wires a Link onto a provided client. Used in tests with
// the mock client.
func newLinkWithClient(client mqtt.Client, prefix string) *Link {
	l := &Link{
		client:      client,
		prefix:      prefix,
		hub:         newSensorHub(),
		callTimeout: defaultCallTimeout,
		pending:     make(map[string]chan []byte),
	}
	l.onConnect(client)
	return l
}

func (l *Link) onConnect(client mqtt.Client) {
	log.Printf("maze link connected, subscribing on prefix %q", l.prefix)

	responses := l.topic("response/+")
	if token := client.Subscribe(responses, 1, l.handleResponse); token.WaitTimeout(5*time.Second) && token.Error() != nil {
		log.Printf("error subscribing to %s: %v", responses, token.Error())
	}

	sensors := l.topic("sensors")
	if token := client.Subscribe(sensors, 0, l.handleSensors); token.WaitTimeout(5*time.Second) && token.Error() != nil {
		log.Printf("error subscribing to %s: %v", sensors, token.Error())
	}
}

func (l *Link) topic(suffix string) string {
	return l.prefix + "/" + suffix
}

// wire envelopes

type moveRequest struct {
	ID        string `json:"id"`
	Direction string `json:"direction"`
}

type moveResponse struct {
	ID      string `json:"id"`
	Success bool   `json:"success"`
}

type resetRequest struct {
	ID       string `json:"id"`
	IsRandom bool   `json:"is_random"`
	MapName  string `json:"map_name"`
}

type resetResponse struct {
	ID string `json:"id"`
}

type mapRequest struct {
	ID string `json:"id"`
}

type mapResponse struct {
	ID    string   `json:"id"`
	Cells []string `json:"cells"`
	Shape []int    `json:"shape"`
}

// handleResponse routes a response payload to the waiting request by ID.
func (l *Link) handleResponse(_ mqtt.Client, msg mqtt.Message) {
	var envelope struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(msg.Payload(), &envelope); err != nil || envelope.ID == "" {
		log.Printf("discarding malformed response on %s: %v", msg.Topic(), err)
		return
	}

	l.mu.Lock()
	ch, ok := l.pending[envelope.ID]
	if ok {
		delete(l.pending, envelope.ID)
	}
	l.mu.Unlock()

	if !ok {
		// A response for a request that already timed out.
		return
	}
	ch <- msg.Payload()
}

func (l *Link) handleSensors(_ mqtt.Client, msg mqtt.Message) {
	var readings SensorReadings
	if err := json.Unmarshal(msg.Payload(), &readings); err != nil {
		log.Printf("discarding malformed sensor frame: %v", err)
		return
	}
	l.hub.Publish(readings)
}

// call publishes one request and blocks until its correlated response, a
// timeout, or ctx cancellation.
func (l *Link) call(ctx context.Context, suffix, id string, request any) ([]byte, error) {
	payload, err := json.Marshal(request)
	if err != nil {
		return nil, fmt.Errorf("marshaling %s request: %w", suffix, err)
	}

	ch := make(chan []byte, 1)
	l.mu.Lock()
	l.pending[id] = ch
	l.mu.Unlock()

	cleanup := func() {
		l.mu.Lock()
		delete(l.pending, id)
		l.mu.Unlock()
	}

	token := l.client.Publish(l.topic(suffix), 1, false, payload)
	if token.WaitTimeout(l.callTimeout) && token.Error() != nil {
		cleanup()
		return nil, fmt.Errorf("publishing %s request: %w", suffix, token.Error())
	}

	select {
	case response := <-ch:
		return response, nil
	case <-time.After(l.callTimeout):
		cleanup()
		return nil, fmt.Errorf("%s request %s timed out", suffix, id)
	case <-ctx.Done():
		cleanup()
		return nil, ctx.Err()
	}
}

// GetFullGrid implements Transport.
func (l *Link) GetFullGrid(ctx context.Context) ([]string, []int, error) {
	id := uuid.NewString()
	raw, err := l.call(ctx, "command/map", id, mapRequest{ID: id})
	if err != nil {
		return nil, nil, err
	}
	var resp mapResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, nil, fmt.Errorf("parsing map response: %w", err)
	}
	return resp.Cells, resp.Shape, nil
}

// Move implements Transport.
func (l *Link) Move(ctx context.Context, d Direction) (bool, error) {
	id := uuid.NewString()
	raw, err := l.call(ctx, "command/move", id, moveRequest{ID: id, Direction: d.String()})
	if err != nil {
		return false, err
	}
	var resp moveResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return false, fmt.Errorf("parsing move response: %w", err)
	}
	return resp.Success, nil
}

// Reset implements Transport.
func (l *Link) Reset(ctx context.Context, isRandom bool, mapName string) error {
	id := uuid.NewString()
	raw, err := l.call(ctx, "command/reset", id, resetRequest{ID: id, IsRandom: isRandom, MapName: mapName})
	if err != nil {
		return err
	}
	var resp resetResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return fmt.Errorf("parsing reset response: %w", err)
	}
	return nil
}

// SubscribeSensors implements Transport.
func (l *Link) SubscribeSensors() *SensorStream {
	return l.hub.Subscribe()
}

// Close disconnects from the broker and ends every sensor subscription.
func (l *Link) Close() {
	l.hub.Close()
	if l.client != nil && l.client.IsConnected() {
		l.client.Disconnect(250)
	}
}
