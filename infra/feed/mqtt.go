package feed

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/openuam/uamd/core/logger"
	"github.com/openuam/uamd/core/model"
)

// Config describes the broker subscription carrying external trip
// requests.
type Config struct {
	Enabled  bool   `json:"enabled" yaml:"enabled"`
	Broker   string `json:"broker" yaml:"broker"`
	ClientID string `json:"client_id" yaml:"client_id"`
	Topic    string `json:"topic" yaml:"topic"`
	Username string `json:"username" yaml:"username"`
	Password string `json:"password" yaml:"password"`
	QoS      byte   `json:"qos" yaml:"qos"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.ClientID == "" {
		c.ClientID = "uamd-feed"
	}
	if c.Topic == "" {
		c.Topic = "uam/requests"
	}
}

// wireRequest is the JSON payload published by external request sources.
type wireRequest struct {
	ID          string  `json:"id"`
	OriginX     float64 `json:"origin_x"`
	OriginY     float64 `json:"origin_y"`
	DestX       float64 `json:"dest_x"`
	DestY       float64 `json:"dest_y"`
	Distance    float64 `json:"distance"`
}

// MQTTFeed buffers trip requests arriving from a broker so they can be
// handed to the dispatcher between time steps. Hook calls stay on the
// simulation goroutine; only the buffer is shared with the paho
// callback.
type MQTTFeed struct {
	client mqtt.Client
	topic  string
	log    logger.Logger

	mu  sync.Mutex
	buf []*model.Request
}

// NewMQTTFeed connects to the broker and subscribes to the request topic.
func NewMQTTFeed(cfg Config, log logger.Logger) (*MQTTFeed, error) {
	opts := mqtt.NewClientOptions().
		AddBroker(cfg.Broker).
		SetClientID(cfg.ClientID).
		SetUsername(cfg.Username).
		SetPassword(cfg.Password).
		SetConnectTimeout(5 * time.Second).
		SetAutoReconnect(true)

	client := mqtt.NewClient(opts)
	token := client.Connect()
	if token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("feed: connect %s: %w", cfg.Broker, token.Error())
	}

	f := &MQTTFeed{client: client, topic: cfg.Topic, log: log}
	sub := client.Subscribe(cfg.Topic, cfg.QoS, f.onMessage)
	if sub.Wait() && sub.Error() != nil {
		client.Disconnect(250)
		return nil, fmt.Errorf("feed: subscribe %s: %w", cfg.Topic, sub.Error())
	}
	return f, nil
}

func (f *MQTTFeed) onMessage(_ mqtt.Client, msg mqtt.Message) {
	var w wireRequest
	if err := json.Unmarshal(msg.Payload(), &w); err != nil {
		f.log.Warnf("feed: dropping malformed request payload: %v", err)
		return
	}
	req := &model.Request{
		ID:          w.ID,
		Origin:      model.Coord{X: w.OriginX, Y: w.OriginY},
		Destination: model.Coord{X: w.DestX, Y: w.DestY},
		Distance:    w.Distance,
	}
	f.mu.Lock()
	f.buf = append(f.buf, req)
	f.mu.Unlock()
}

// Drain returns the buffered requests stamped with the given simulation
// time and empties the buffer.
func (f *MQTTFeed) Drain(now float64) []*model.Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := f.buf
	f.buf = nil
	for _, r := range out {
		r.Submitted = now
	}
	return out
}

// Close disconnects from the broker.
func (f *MQTTFeed) Close() error {
	if f.client.IsConnected() {
		f.client.Disconnect(250)
	}
	return nil
}
