package service

import (
	"context"
	"errors"

	"iDrone/internal/data"
	"iDrone/internal/model"
	"iDrone/internal/mq"
	"iDrone/internal/repository"
	"iDrone/pkg/logger"
)

// ErrSaleAlreadyApplied 该订单的销量已经统计过（消息重复投递）
var ErrSaleAlreadyApplied = errors.New("订单销量已统计")

type SalesService interface {
	ApplyOrderCreated(ctx context.Context, msg mq.OrderCreatedMessage) error
}

type salesService struct {
	uow data.UnitOfWork
}

func NewSalesService(uow data.UnitOfWork) SalesService {
	return &salesService{uow: uow}
}

// 统计订单销量：1、插入SaleRecord占位，order_id重复说明已处理过 2、逐个商品累加销量、扣减库存，整体在一个事务里
func (s *salesService) ApplyOrderCreated(ctx context.Context, msg mq.OrderCreatedMessage) error {
	logCtx := logger.Log.WithField("order_id", msg.OrderID)
	return s.uow.Execute(ctx, func(repos *data.TransactionalRepositories) error {
		if err := repos.GoodsRepo.CreateSaleRecord(ctx, &model.SaleRecord{OrderID: msg.OrderID}); err != nil {
			if repository.IsDuplicateKey(err) {
				return ErrSaleAlreadyApplied
			}
			return err
		}
		for _, item := range msg.Items {
			rows, err := repos.GoodsRepo.ApplySale(ctx, item.GoodsID, item.Amount)
			if err != nil {
				return err
			}
			if rows == 0 {
				// 商品已不存在或库存不足，不阻塞其余商品
				logCtx.WithField("goods_id", item.GoodsID).Warn("库存不足，跳过销量统计")
			}
		}
		return nil
	})
}
