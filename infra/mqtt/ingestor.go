// Package mqtt ingests occupancy dumps published by the wireless
// infrastructure. Each message is one JSON-encoded dump record; valid
// records are written to the local dump store, where the prediction side
// reads them back.
package mqtt

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"

	"github.com/opendensity/density/core/model"
	"github.com/opendensity/density/infra/logger"
)

// Config defines the connection parameters for the dump subscriber.
type Config struct {
	Broker   string `json:"broker"`
	ClientID string `json:"client_id"`
	Username string `json:"username"`
	Password string `json:"password"`
	// Topic carries dump records; defaults to "density/dumps/#".
	Topic string `json:"topic"`
	QoS   byte   `json:"qos"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.ClientID == "" {
		c.ClientID = "density-ingest"
	}
	if c.Topic == "" {
		c.Topic = "density/dumps/#"
	}
}

// Validate checks mandatory fields.
func (c Config) Validate() error {
	if c.Broker == "" {
		return fmt.Errorf("broker is required")
	}
	return nil
}

// Writer persists one dump record. Implemented by the SQLite store.
type Writer interface {
	Insert(ctx context.Context, rec model.Record) error
}

type pahoClient interface {
	IsConnected() bool
	Connect() paho.Token
	Disconnect(quiesce uint)
	Subscribe(topic string, qos byte, callback paho.MessageHandler) paho.Token
}

var newMQTTClient = func(opts *paho.ClientOptions) pahoClient {
	return paho.NewClient(opts)
}

// Ingestor subscribes to the dump topic and writes each record it receives.
type Ingestor struct {
	cli    pahoClient
	writer Writer
	topic  string
	qos    byte
	log    logger.Logger
}

// NewIngestor connects to the broker and subscribes to the dump topic.
func NewIngestor(cfg Config, w Writer) (*Ingestor, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log := logger.New("mqtt-ingestor")
	ing := &Ingestor{writer: w, topic: cfg.Topic, qos: cfg.QoS, log: log}

	opts := paho.NewClientOptions().
		AddBroker(cfg.Broker).
		SetClientID(cfg.ClientID + "-" + uuid.NewString()[:8])
	opts.AutoReconnect = true
	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
		opts.SetPassword(cfg.Password)
	}
	opts.OnConnect = func(c paho.Client) {
		log.Infof("MQTT connected")
		if token := c.Subscribe(ing.topic, ing.qos, ing.onDump); token.Wait() && token.Error() != nil {
			log.Errorf("subscribe error: %v", token.Error())
		}
	}
	opts.OnConnectionLost = func(_ paho.Client, err error) {
		log.Errorf("connection lost: %v", err)
	}
	opts.OnReconnecting = func(_ paho.Client, _ *paho.ClientOptions) {
		log.Warnf("reconnecting to MQTT broker")
	}

	c := newMQTTClient(opts)
	if token := c.Connect(); token.Wait() && token.Error() != nil {
		return nil, token.Error()
	}
	ing.cli = c
	return ing, nil
}

type dumpMessage struct {
	DumpTime    time.Time `json:"dump_time"`
	GroupID     int64     `json:"group_id"`
	GroupName   string    `json:"group_name"`
	ParentID    int64     `json:"parent_id"`
	ParentName  string    `json:"parent_name"`
	ClientCount int64     `json:"client_count"`
}

func (i *Ingestor) onDump(_ paho.Client, msg paho.Message) {
	var dump dumpMessage
	if err := json.Unmarshal(msg.Payload(), &dump); err != nil {
		i.log.Errorf("malformed dump on %s: %v", msg.Topic(), err)
		return
	}
	rec := model.Record{
		DumpTime:    dump.DumpTime,
		GroupID:     dump.GroupID,
		GroupName:   dump.GroupName,
		ParentID:    dump.ParentID,
		ParentName:  dump.ParentName,
		ClientCount: dump.ClientCount,
	}
	if err := rec.Validate(); err != nil {
		i.log.Errorf("invalid dump on %s: %v", msg.Topic(), err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := i.writer.Insert(ctx, rec); err != nil {
		i.log.Errorf("store dump for %q: %v", rec.GroupName, err)
		return
	}
	i.log.Debugw("dump stored", map[string]any{
		"group":        rec.GroupName,
		"client_count": rec.ClientCount,
		"dump_time":    rec.DumpTime,
	})
}

// Run blocks until the context is cancelled, then disconnects.
func (i *Ingestor) Run(ctx context.Context) error {
	<-ctx.Done()
	i.cli.Disconnect(250)
	return nil
}
