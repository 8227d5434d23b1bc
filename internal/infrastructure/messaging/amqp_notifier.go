package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/streadway/amqp"

	"github.com/invorya/pos-api/internal/application/inventory"
	"github.com/invorya/pos-api/pkg/config"
)

var _ inventory.LowStockNotifier = (*AMQPNotifier)(nil)

// AMQPNotifier publica alertas de stock bajo en un exchange topic de RabbitMQ.
// Los consumidores (notificaciones, reposición) se enganchan por routing key
// "inventory.low_stock.<warehouse_id>" sin acoplar este servicio a ellos.
type AMQPNotifier struct {
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
}

// NewAMQPNotifier conecta al broker y declara el exchange. El servicio funciona
// sin broker (NopNotifier); el caller decide si el fallo es fatal.
func NewAMQPNotifier(cfg config.AMQPConfig) (*AMQPNotifier, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("dial amqp: %w", err)
	}
	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open amqp channel: %w", err)
	}
	err = channel.ExchangeDeclare(
		cfg.Exchange, // name
		"topic",      // type
		true,         // durable
		false,        // auto-deleted
		false,        // internal
		false,        // no-wait
		nil,          // arguments
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}
	return &AMQPNotifier{conn: conn, channel: channel, exchange: cfg.Exchange}, nil
}

// NotifyLowStock publica la alerta como JSON persistente.
func (n *AMQPNotifier) NotifyLowStock(_ context.Context, alert inventory.LowStockAlert) error {
	body, err := json.Marshal(alert)
	if err != nil {
		return fmt.Errorf("marshal low stock alert: %w", err)
	}
	routingKey := "inventory.low_stock." + alert.WarehouseID
	err = n.channel.Publish(
		n.exchange,
		routingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
		},
	)
	if err != nil {
		return fmt.Errorf("publish low stock alert: %w", err)
	}
	return nil
}

// Close cierra el canal y la conexión.
func (n *AMQPNotifier) Close() error {
	if err := n.channel.Close(); err != nil {
		n.conn.Close()
		return err
	}
	return n.conn.Close()
}
