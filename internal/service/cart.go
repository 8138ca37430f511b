package service

import (
	"context"

	"iDrone/internal/apperr"
	"iDrone/internal/model"
	"iDrone/internal/repository"
)

type CartService interface {
	Get(ctx context.Context, userID string) (*model.Cart, error)
	AddGoods(ctx context.Context, userID, goodsID string, amount int) (*model.GoodsInCart, error)
	// 返回删除的行数，关联不存在时为0
	RemoveGoods(ctx context.Context, userID, goodsID string) (int64, error)
}

type cartService struct {
	cartRepo repository.CartRepository
}

func NewCartService(cartRepo repository.CartRepository) CartService {
	return &cartService{cartRepo: cartRepo}
}

func (s *cartService) Get(ctx context.Context, userID string) (*model.Cart, error) {
	cart, err := s.cartRepo.FindWithGoodsByUserID(ctx, userID)
	if err != nil {
		return nil, notFoundOr(err, "购物车不存在")
	}
	return cart, nil
}

// 加入购物车：1、按用户找到购物车 2、写入或更新关联行的数量
// 商品是否存在不预先检查，不存在的商品由外键约束报存储错误
func (s *cartService) AddGoods(ctx context.Context, userID, goodsID string, amount int) (*model.GoodsInCart, error) {
	cart, err := s.cartRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, notFoundOr(err, "购物车不存在")
	}
	item := &model.GoodsInCart{CartID: cart.ID, GoodsID: goodsID, Amount: amount}
	if err := s.cartRepo.UpsertGoods(ctx, item); err != nil {
		return nil, apperr.Storage(err)
	}
	return item, nil
}

func (s *cartService) RemoveGoods(ctx context.Context, userID, goodsID string) (int64, error) {
	cart, err := s.cartRepo.FindByUserID(ctx, userID)
	if err != nil {
		return 0, notFoundOr(err, "购物车不存在")
	}
	rows, err := s.cartRepo.RemoveGoods(ctx, cart.ID, goodsID)
	if err != nil {
		return 0, apperr.Storage(err)
	}
	return rows, nil
}
