package main

import (
	"context"
	"encoding/json"
	"errors"

	"iDrone/internal/config"
	"iDrone/internal/data"
	"iDrone/internal/model"
	"iDrone/internal/mq"
	"iDrone/internal/repository"
	"iDrone/internal/service"
	"iDrone/pkg/logger"
	"iDrone/pkg/rabbitmq"

	"github.com/streadway/amqp"
	gorm_mysql "gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// 消费者进程：连接mysql，rabbitMQ，把订单创建消息累加到商品销量和库存上
func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Log.Fatalf("配置加载失败: %v", err)
	}
	logger.InitLogger(cfg.Log.ToLoggerOptions())

	// 连接数据库
	db, err := gorm.Open(gorm_mysql.Open(cfg.Database.DSN), &gorm.Config{TranslateError: true})
	if err != nil {
		logger.Log.Fatalf("消费者无法连接到数据库: %v", err)
	}
	if err := db.AutoMigrate(&model.SaleRecord{}); err != nil {
		logger.Log.Fatalf("数据库迁移失败: %v", err)
	}
	// 连接RabbitMQ
	rabbitMQConn, err := rabbitmq.InitRabbitMQ(cfg.RabbitMQ.URL)
	if err != nil {
		logger.Log.Fatalf("消费者无法连接到RabbitMQ: %v", err)
	}
	defer rabbitMQConn.Close()
	if err := rabbitmq.DeclareQueue(rabbitMQConn, mq.QueueOrderCreated); err != nil {
		logger.Log.Fatalf("队列声明失败: %v", err)
	}

	uow := data.NewUnitOfWork(db,
		repository.NewUserRepository(db),
		repository.NewCartRepository(db),
		repository.NewGoodsRepository(db),
		repository.NewOrderRepository(db))
	salesService := service.NewSalesService(uow)

	// 开始消费消息
	consumeOrderCreated(rabbitMQConn, salesService)
}

// 订单创建消费者：1、通过mq的TCP连接创建channel 2、通过ch注册消费者 3、持续消费消息 4、统计销量，重复投递的消息直接确认
func consumeOrderCreated(conn *amqp.Connection, sales service.SalesService) {
	ch, err := conn.Channel()
	if err != nil {
		logger.Log.Fatalf("无法打开Channel: %v", err)
	}
	defer ch.Close()

	msgs, err := ch.Consume(
		mq.QueueOrderCreated, // queue
		"",                   // consumer
		false,                // auto-ack: 处理完再手动确认
		false,                // exclusive
		false,                // no-local
		false,                // no-wait
		nil,                  // args
	)
	if err != nil {
		logger.Log.Fatalf("无法注册订单消费者: %v", err)
	}
	// 创建一个没有任何缓冲的bool类型通道
	forever := make(chan bool)

	go func() {
		// msgs不是切片，而是通道channel，如果通道为空不会结束循环，而会“阻塞”
		for d := range msgs {
			logCtx := logger.Log.WithField("message_id", d.MessageId).WithField("redelivered", d.Redelivered)
			logCtx.Info("收到一条订单创建消息")

			var msg mq.OrderCreatedMessage
			if err := json.Unmarshal(d.Body, &msg); err != nil {
				logCtx.WithError(err).Error("消息JSON解析失败")
				// 对于无法解析的“坏消息”，重试也没用，直接丢弃
				d.Nack(false, false)
				continue
			}

			err := sales.ApplyOrderCreated(context.Background(), msg)
			switch {
			case err == nil:
				d.Ack(false)
			case errors.Is(err, service.ErrSaleAlreadyApplied):
				logCtx.Warn("订单销量已统计，可能是一次重复消费，消息将被确认为成功。")
				d.Ack(false)
			default:
				// 其他类型错误，才要求重试
				logCtx.WithError(err).Error("处理消息失败，将进行重试")
				d.Nack(false, true)
			}
		}
	}()
	logger.Log.Info(" [*] 等待订单消息中. 按 CTRL+C 退出")
	// 尝试从forever通道里接收一个值，但没有发送者，这会阻止main函数退出
	<-forever
}
