package mqtt

import (
	"fmt"
	"log"
	"sync"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/sweeney/ovend/internal/logic"
)

// outboxCapacity bounds how many messages are held while disconnected.
const outboxCapacity = 256

// RealPublisher publishes to an actual MQTT broker. Connection management
// is asynchronous: the constructor returns immediately and paho retries in
// the background, while messages produced during an outage are queued and
// replayed on reconnect.
type RealPublisher struct {
	client paho.Client

	mu  sync.Mutex
	box *outbox
}

// NewRealPublisher creates a publisher for the given broker and starts
// connecting in the background.
func NewRealPublisher(broker string) *RealPublisher {
	p := &RealPublisher{box: newOutbox(outboxCapacity)}

	opts := paho.NewClientOptions().
		AddBroker(broker).
		SetClientID("ovend").
		SetAutoReconnect(true).
		SetConnectRetry(true).
		SetConnectRetryInterval(5 * time.Second).
		SetOnConnectHandler(p.onConnect).
		SetConnectionLostHandler(func(_ paho.Client, err error) {
			log.Printf("mqtt: connection lost: %v", err)
		})

	p.client = paho.NewClient(opts)
	p.client.Connect()
	return p
}

// Publish sends a cook-cycle event to the broker, or queues it while
// disconnected.
func (p *RealPublisher) Publish(event logic.Event) error {
	payload, err := FormatPayload(event)
	if err != nil {
		return fmt.Errorf("format payload: %w", err)
	}
	// QoS 0 (at-most-once), not retained
	return p.send(Topic, payload, 0, false)
}

// PublishSystem sends a system lifecycle event to the broker, or queues it
// while disconnected.
func (p *RealPublisher) PublishSystem(event SystemEvent) error {
	payload, err := FormatSystemPayload(event)
	if err != nil {
		return fmt.Errorf("format system payload: %w", err)
	}
	// QoS 1 (at-least-once) — lifecycle events should survive broker hiccups
	return p.send(TopicSystem, payload, 1, event.Retained)
}

func (p *RealPublisher) send(topic string, payload []byte, qos byte, retained bool) error {
	if !p.client.IsConnected() {
		p.mu.Lock()
		p.box.add(queuedMsg{topic: topic, payload: payload, qos: qos, retained: retained})
		n := p.box.size()
		p.mu.Unlock()
		log.Printf("mqtt: disconnected, queued message for %s (%d pending)", topic, n)
		return nil
	}

	token := p.client.Publish(topic, qos, retained, payload)
	if !token.WaitTimeout(5 * time.Second) {
		return fmt.Errorf("publish timeout")
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("publish: %w", err)
	}
	return nil
}

// onConnect replays any messages queued while disconnected.
func (p *RealPublisher) onConnect(client paho.Client) {
	p.mu.Lock()
	pending := p.box.drain()
	p.mu.Unlock()

	if len(pending) == 0 {
		log.Printf("mqtt: connected")
		return
	}

	log.Printf("mqtt: connected, replaying %d queued messages", len(pending))
	for _, msg := range pending {
		token := client.Publish(msg.topic, msg.qos, msg.retained, msg.payload)
		if !token.WaitTimeout(5 * time.Second) {
			log.Printf("mqtt: replay timeout on %s", msg.topic)
			continue
		}
		if err := token.Error(); err != nil {
			log.Printf("mqtt: replay failed on %s: %v", msg.topic, err)
		}
	}
}

// IsConnected reports whether the broker connection is up.
func (p *RealPublisher) IsConnected() bool {
	return p.client.IsConnected()
}

// Close disconnects from the broker.
func (p *RealPublisher) Close() error {
	p.client.Disconnect(1000) // 1 second timeout
	return nil
}
