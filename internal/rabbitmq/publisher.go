package rabbitmq

import (
	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/course-platform/internal/services/payment"
)

// Publisher публикует события завершённых покупок в RabbitMQ.
// Реализует payment.EventPublisher.
type Publisher struct {
	ch       *amqp.Channel
	exchange string
}

// NewPublisher создает новый экземпляр Publisher.
func NewPublisher(ch *amqp.Channel, exchange string) *Publisher {
	return &Publisher{
		ch:       ch,
		exchange: exchange,
	}
}

// PublishPurchaseCompleted публикует событие завершённой покупки курса.
func (p *Publisher) PublishPurchaseCompleted(event payment.PurchaseEvent) error {
	return PublishMessage(p.ch, p.exchange, PurchaseRoutingKey, event)
}
