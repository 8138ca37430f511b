package service

import (
	"context"

	"iDrone/internal/apperr"
	"iDrone/internal/data"
	"iDrone/internal/model"
	"iDrone/internal/mq"
	"iDrone/internal/repository"
	"iDrone/pkg/logger"

	"github.com/samber/lo"
)

// OrderItem 下单时的一个商品和数量
type OrderItem struct {
	GoodsID string
	Amount  int
}

type OrderService interface {
	Add(ctx context.Context, userID string, items []OrderItem) (*model.Order, error)
	Get(ctx context.Context, orderID string) (*model.Order, error)
	ListByUser(ctx context.Context, userID string, page, perPage int) ([]model.Order, error)
	List(ctx context.Context, page, perPage int) ([]model.Order, error)
}

type orderService struct {
	orderRepo repository.OrderRepository
	uow       data.UnitOfWork
	publisher mq.Publisher
}

func NewOrderService(orderRepo repository.OrderRepository, uow data.UnitOfWork, publisher mq.Publisher) OrderService {
	return &orderService{
		orderRepo: orderRepo,
		uow:       uow,
		publisher: publisher,
	}
}

// 下单：
// 1、在同一个事务中创建未付款订单，再为每个商品插入一条关联行，任一步失败整体回滚
// 2、提交成功后发布订单创建消息，发布失败只记日志，不影响下单结果
func (s *orderService) Add(ctx context.Context, userID string, items []OrderItem) (*model.Order, error) {
	order := &model.Order{Status: model.OrderStatusUnpaid, UserID: userID}

	err := s.uow.Execute(ctx, func(repos *data.TransactionalRepositories) error {
		if err := repos.OrderRepo.Create(ctx, order); err != nil {
			return err
		}
		for _, item := range items {
			row := model.GoodsInOrder{OrderID: order.ID, GoodsID: item.GoodsID, Amount: item.Amount}
			if err := repos.OrderRepo.AddGoods(ctx, &row); err != nil {
				return err
			}
			order.Items = append(order.Items, row)
		}
		return nil
	})
	if err != nil {
		return nil, apperr.Storage(err)
	}

	logCtx := logger.Log.WithField("order_id", order.ID).WithField("user_id", userID)
	msg := mq.OrderCreatedMessage{
		OrderID: order.ID,
		UserID:  userID,
		Items: lo.Map(items, func(item OrderItem, _ int) mq.OrderItem {
			return mq.OrderItem{GoodsID: item.GoodsID, Amount: item.Amount}
		}),
	}
	if err := s.publisher.PublishOrderCreated(ctx, msg); err != nil {
		logCtx.WithError(err).Error("订单创建消息发布失败")
	}
	return order, nil
}

func (s *orderService) Get(ctx context.Context, orderID string) (*model.Order, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, notFoundOr(err, "订单不存在")
	}
	return order, nil
}

func (s *orderService) ListByUser(ctx context.Context, userID string, page, perPage int) ([]model.Order, error) {
	list, err := s.orderRepo.ListByUser(ctx, userID, page, perPage)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	return list, nil
}

func (s *orderService) List(ctx context.Context, page, perPage int) ([]model.Order, error) {
	list, err := s.orderRepo.List(ctx, page, perPage)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	return list, nil
}
