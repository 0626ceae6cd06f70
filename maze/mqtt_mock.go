package maze

import (
	"strings"
	"sync"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

// mockToken implements mqtt.Token for tests; it completes immediately.
type mockToken struct {
	err error
}

func (t *mockToken) Wait() bool                       { return true }
func (t *mockToken) WaitTimeout(_ time.Duration) bool { return true }
func (t *mockToken) Error() error                     { return t.err }
func (t *mockToken) Done() <-chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}

// mockBrokerClient implements mqtt.Client against an in-memory topic table.
// Tests register handlers via Subscribe (the Link does this on connect) and
// feed inbound traffic with Deliver; published requests are captured so a
// test can script the simulator side of the protocol.
type mockBrokerClient struct {
	mu        sync.Mutex
	connected bool
	handlers  map[string]mqtt.MessageHandler
	published []mockPublished

	// onPublish, when set, is invoked synchronously for every published
	// message. Tests use it to answer command topics like the simulator
	// would.
	onPublish func(topic string, payload []byte)
}

type mockPublished struct {
	Topic   string
	Payload []byte
}

func newMockBrokerClient() *mockBrokerClient {
	return &mockBrokerClient{
		connected: true,
		handlers:  make(map[string]mqtt.MessageHandler),
	}
}

// Deliver routes a payload to the handler whose subscription matches topic,
// honoring a trailing single-level "+" wildcard.
func (c *mockBrokerClient) Deliver(topic string, payload []byte) {
	c.mu.Lock()
	var handler mqtt.MessageHandler
	for pattern, h := range c.handlers {
		if mockTopicMatches(pattern, topic) {
			handler = h
			break
		}
	}
	c.mu.Unlock()

	if handler != nil {
		handler(c, &mockInbound{topic: topic, payload: payload})
	}
}

func mockTopicMatches(pattern, topic string) bool {
	if pattern == topic {
		return true
	}
	if strings.HasSuffix(pattern, "/+") {
		base := strings.TrimSuffix(pattern, "+")
		rest := strings.TrimPrefix(topic, base)
		return strings.HasPrefix(topic, base) && !strings.Contains(rest, "/")
	}
	return false
}

func (c *mockBrokerClient) Published() []mockPublished {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]mockPublished, len(c.published))
	copy(out, c.published)
	return out
}

func (c *mockBrokerClient) IsConnected() bool      { return true }
func (c *mockBrokerClient) IsConnectionOpen() bool { return true }

func (c *mockBrokerClient) Connect() mqtt.Token {
	c.mu.Lock()
	c.connected = true
	c.mu.Unlock()
	return &mockToken{}
}

func (c *mockBrokerClient) Disconnect(_ uint) {
	c.mu.Lock()
	c.connected = false
	c.mu.Unlock()
}

func (c *mockBrokerClient) Publish(topic string, _ byte, _ bool, payload interface{}) mqtt.Token {
	var data []byte
	switch v := payload.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	}

	c.mu.Lock()
	c.published = append(c.published, mockPublished{Topic: topic, Payload: data})
	cb := c.onPublish
	c.mu.Unlock()

	if cb != nil {
		cb(topic, data)
	}
	return &mockToken{}
}

func (c *mockBrokerClient) Subscribe(topic string, _ byte, callback mqtt.MessageHandler) mqtt.Token {
	c.mu.Lock()
	c.handlers[topic] = callback
	c.mu.Unlock()
	return &mockToken{}
}

func (c *mockBrokerClient) SubscribeMultiple(filters map[string]byte, callback mqtt.MessageHandler) mqtt.Token {
	c.mu.Lock()
	for topic := range filters {
		c.handlers[topic] = callback
	}
	c.mu.Unlock()
	return &mockToken{}
}

func (c *mockBrokerClient) Unsubscribe(topics ...string) mqtt.Token {
	c.mu.Lock()
	for _, topic := range topics {
		delete(c.handlers, topic)
	}
	c.mu.Unlock()
	return &mockToken{}
}

func (c *mockBrokerClient) AddRoute(topic string, callback mqtt.MessageHandler) {
	c.mu.Lock()
	c.handlers[topic] = callback
	c.mu.Unlock()
}

func (c *mockBrokerClient) OptionsReader() mqtt.ClientOptionsReader {
	return mqtt.ClientOptionsReader{}
}

// mockInbound implements mqtt.Message.
type mockInbound struct {
	topic   string
	payload []byte
}

func (m *mockInbound) Duplicate() bool   { return false }
func (m *mockInbound) Qos() byte         { return 0 }
func (m *mockInbound) Retained() bool    { return false }
func (m *mockInbound) Topic() string     { return m.topic }
func (m *mockInbound) MessageID() uint16 { return 0 }
func (m *mockInbound) Payload() []byte   { return m.payload }
func (m *mockInbound) Ack()              {}
