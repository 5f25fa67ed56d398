package rmqconsumer

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"document-manager-api/config"
)

const preFetchCount = 1

type Consumer struct {
	cfg         config.MQ
	log         *zap.Logger
	conn        *amqp091.Connection
	chConsume   *amqp091.Channel
	chDelivery  <-chan amqp091.Delivery
	routingKeys []string
	out         io.Writer
}

// New builds a consumer bound to routingKeys. Deliveries are written to stdout.
func New(cfg config.MQ, logger *zap.Logger, routingKeys []string) *Consumer {
	return &Consumer{
		cfg:         cfg,
		log:         logger,
		routingKeys: routingKeys,
		out:         os.Stdout,
	}
}

func (c *Consumer) Connect(dsn string) error {
	conn, err := amqp091.Dial(dsn)
	if err != nil {
		return fmt.Errorf("amqp dial: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("amqp channel: %w", err)
	}
	c.conn, c.chConsume = conn, ch

	c.log.Info("rabbitmq consumer connected successfully")

	return nil
}

func (c *Consumer) Init() error {
	if err := c.chConsume.ExchangeDeclare(
		c.cfg.Exchange,
		c.cfg.ExchangeType,
		true,
		false,
		false,
		false,
		nil,
	); err != nil {
		return fmt.Errorf("exchange declare: %w", err)
	}
	if _, err := c.chConsume.QueueDeclare(
		c.cfg.QueueName,
		true,
		false,
		false,
		false,
		nil,
	); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}
	for _, rk := range c.routingKeys {
		if err := c.chConsume.QueueBind(
			c.cfg.QueueName,
			rk,
			c.cfg.Exchange,
			false,
			nil,
		); err != nil {
			return fmt.Errorf("queue bind %s: %w", rk, err)
		}
	}

	if err := c.chConsume.Qos(preFetchCount, 0, false); err != nil {
		return fmt.Errorf("qos: %w", err)
	}

	deliveries, err := c.chConsume.Consume(
		c.cfg.QueueName,
		"",
		false,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("consume: %w", err)
	}
	c.chDelivery = deliveries

	return nil
}

func (c *Consumer) DeliveryWorker(ctx context.Context) {
	c.log.Info("starting delivery worker")

	defer func() {
		c.log.Info("delivery worker gracefully stopped")
	}()

	for {
		select {
		case msg, ok := <-c.chDelivery:
			if !ok {
				return
			}
			if err := c.delivery(msg); err != nil {
				c.log.Error("mq read message error", zap.Error(err), zap.String("routing_key", msg.RoutingKey))
				_ = msg.Nack(false, false)
				continue
			}
			_ = msg.Ack(false)
		case <-ctx.Done():
			c.chConsume.Close()
			return
		}
	}
}

func (c *Consumer) delivery(msg amqp091.Delivery) error {
	_, err := fmt.Fprintf(c.out,
		"Action=%s EventBody=%s\n",
		actionName(msg.RoutingKey),
		string(msg.Body),
	)

	return err
}

// actionName turns "document.created" into "DocumentCreated". Keys that are
// not "<entity>.<action>" map to "".
func actionName(routingKey string) string {
	entity, action, ok := strings.Cut(routingKey, ".")
	if !ok || entity == "" || action == "" {
		return ""
	}
	title := cases.Title(language.English)

	return title.String(entity) + title.String(action)
}

func (c *Consumer) Close() {
	if c.conn != nil {
		_ = c.conn.Close()
	}
}
