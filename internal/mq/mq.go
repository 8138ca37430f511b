package mq

import (
	"context"
	"encoding/json"

	"github.com/streadway/amqp"
)

const (
	QueueOrderCreated = "idrone.order_created.queue"
)

// OrderItem 订单里的一个商品和购买数量
type OrderItem struct {
	GoodsID string `json:"goods_id"`
	Amount  int    `json:"amount"`
}

// OrderCreatedMessage 订单创建成功后发出，消费者据此累加销量、扣减库存
type OrderCreatedMessage struct {
	OrderID string      `json:"order_id"`
	UserID  string      `json:"user_id"`
	Items   []OrderItem `json:"items"`
}

// Publisher 事件发布
type Publisher interface {
	PublishOrderCreated(ctx context.Context, msg OrderCreatedMessage) error
}

type amqpPublisher struct {
	conn *amqp.Connection
}

// NewPublisher 基于RabbitMQ连接的发布者，队列需要事先声明
func NewPublisher(conn *amqp.Connection) Publisher {
	return &amqpPublisher{conn: conn}
}

// 发布订单创建消息：1、序列化消息 2、每次发布单独开一个channel（channel不是并发安全的）3、持久化投递到队列
func (p *amqpPublisher) PublishOrderCreated(ctx context.Context, msg OrderCreatedMessage) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	ch, err := p.conn.Channel()
	if err != nil {
		return err
	}
	defer ch.Close()

	return ch.Publish(
		"",                // exchange
		QueueOrderCreated, // routing key
		false,             // mandatory
		false,             // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			MessageId:    msg.OrderID,
			DeliveryMode: amqp.Persistent, // 确保消息持久化
		})
}

type nopPublisher struct{}

// NewNopPublisher 未启用RabbitMQ时使用，什么都不发
func NewNopPublisher() Publisher {
	return nopPublisher{}
}

func (nopPublisher) PublishOrderCreated(context.Context, OrderCreatedMessage) error {
	return nil
}
