package mq

import (
	"context"
	"encoding/json"
	"net"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"document-manager-api/config"
)

const bufferSize = 128

const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"

	EntityUser     = "user"
	EntityDocument = "document"
)

type (
	InputCh  = chan Event
	RabbitMQ struct {
		cfg   config.MQ
		log   *zap.Logger
		conn  *amqp091.Connection
		pubCh *amqp091.Channel
		in    InputCh
	}
	Event struct {
		ID          uuid.UUID `json:"event_id"`
		TS          time.Time `json:"time_stamp"`
		Action      string    `json:"action"`
		EntityClass string    `json:"entity_class"`
		EntityID    string    `json:"entity_id"`
		UserID      string    `json:"user_id"`
		Payload     any       `json:"payload,omitempty"`
	}

	UserPayload struct {
		ID       string `json:"id"`
		Username string `json:"username"`
		Email    string `json:"email,omitempty"`
	}
	DocumentPayload struct {
		ID       string `json:"id"`
		Title    string `json:"title,omitempty"`
		Language string `json:"language,omitempty"`
		OwnerID  string `json:"owner_id,omitempty"`
	}
)

// NewEvent stamps a fresh id and time on an event raised by userID.
func NewEvent(entityClass, action, entityID, userID string, payload any) Event {
	return Event{
		ID:          uuid.New(),
		TS:          time.Now(),
		Action:      action,
		EntityClass: entityClass,
		EntityID:    entityID,
		UserID:      userID,
		Payload:     payload,
	}
}

// RoutingKey is "<entity>.<action>", e.g. "document.deleted".
func (e Event) RoutingKey() string {
	return strings.ToLower(e.EntityClass) + "." + e.Action
}

// RoutingKeys lists every key the publisher emits.
func RoutingKeys() []string {
	var keys []string
	for _, entity := range []string{EntityUser, EntityDocument} {
		for _, action := range []string{ActionCreated, ActionUpdated, ActionDeleted} {
			keys = append(keys, entity+"."+action)
		}
	}
	return keys
}

func New(cfg config.MQ, logger *zap.Logger) *RabbitMQ {
	return &RabbitMQ{
		cfg: cfg,
		log: logger,
		in:  make(chan Event, bufferSize),
	}
}

func (r *RabbitMQ) Connect(ctx context.Context, dsn string) error {
	dialer := &net.Dialer{Timeout: 10 * time.Second}

	amqpCfg := amqp091.Config{
		Heartbeat: 10 * time.Second,
		Locale:    "en_US",
		Properties: amqp091.Table{
			"connection_name": "documentmanagerapi",
		},
		Dial: func(network, addr string) (net.Conn, error) {
			return dialer.DialContext(ctx, network, addr)
		},
	}

	var err error
	r.conn, err = amqp091.DialConfig(dsn, amqpCfg)
	if err != nil {
		return err
	}
	r.pubCh, err = r.conn.Channel()
	if err != nil {
		_ = r.conn.Close()
		r.conn = nil
		return err
	}

	r.log.Info("rabbitmq connected successfully")

	return nil
}

func (r *RabbitMQ) Init() error {
	if err := r.pubCh.ExchangeDeclare(
		r.cfg.Exchange,
		r.cfg.ExchangeType,
		true,
		false,
		false,
		false,
		nil,
	); err != nil {
		_ = r.pubCh.Close()
		return err
	}
	q, err := r.pubCh.QueueDeclare(
		r.cfg.QueueName,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return err
	}

	for _, rk := range RoutingKeys() {
		if err = r.pubCh.QueueBind(q.Name, rk, r.cfg.Exchange, false, nil); err != nil {
			return err
		}
	}

	return nil
}

func (r *RabbitMQ) PublisherWorker(ctx context.Context) {
	r.log.Info("starting publisher worker")

	defer func() {
		r.log.Info("publisher worker gracefully stopped")
	}()

	for {
		select {
		case e := <-r.in:
			if err := r.publish(ctx, e); err != nil {
				r.log.Error("mq publish error",
					zap.Error(err),
					zap.String("routing_key", e.RoutingKey()),
					zap.Stringer("event_id", e.ID),
				)
			}
		case <-ctx.Done():
			r.pubCh.Close()
			return
		}
	}
}

func newPublishing(e Event) (amqp091.Publishing, error) {
	b, err := json.Marshal(e)
	if err != nil {
		return amqp091.Publishing{}, err
	}

	return amqp091.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp091.Persistent,
		MessageId:    e.ID.String(),
		Timestamp:    e.TS,
		Type:         e.RoutingKey(),
		Body:         b,
	}, nil
}

func (r *RabbitMQ) publish(ctx context.Context, e Event) error {
	pub, err := newPublishing(e)
	if err != nil {
		return err
	}

	return r.pubCh.PublishWithContext(
		ctx,
		r.cfg.Exchange,
		e.RoutingKey(),
		true,
		false,
		pub,
	)
}

func (r *RabbitMQ) GetInputChan() chan Event     { return r.in }
func (r *RabbitMQ) GetConn() *amqp091.Connection { return r.conn }
