package repository

import (
	"context"

	"iDrone/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type OrderRepository interface {
	Create(ctx context.Context, order *model.Order) error
	AddGoods(ctx context.Context, item *model.GoodsInOrder) error
	// 带出订单中商品的 id/title/image 和购买数量
	FindByID(ctx context.Context, id string) (*model.Order, error)
	ListByUser(ctx context.Context, userID string, page, perPage int) ([]model.Order, error)
	List(ctx context.Context, page, perPage int) ([]model.Order, error)
	Count(ctx context.Context) (int64, error)

	WithTx(tx *gorm.DB) OrderRepository
}

type orderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) WithTx(tx *gorm.DB) OrderRepository {
	return &orderRepository{db: tx}
}

func (r *orderRepository) Create(ctx context.Context, order *model.Order) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(order).Error
}

func (r *orderRepository) AddGoods(ctx context.Context, item *model.GoodsInOrder) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(item).Error
}

// preloadGoods 订单里的商品只需要展示用的几个字段
func preloadGoods(db *gorm.DB) *gorm.DB {
	return db.Preload("Items").Preload("Items.Goods", func(db *gorm.DB) *gorm.DB {
		return db.Select("id", "title", "image")
	})
}

func (r *orderRepository) FindByID(ctx context.Context, id string) (*model.Order, error) {
	var order model.Order
	err := r.db.WithContext(ctx).Scopes(preloadGoods).Where("id = ?", id).First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) ListByUser(ctx context.Context, userID string, page, perPage int) ([]model.Order, error) {
	var list []model.Order
	err := r.db.WithContext(ctx).
		Scopes(preloadGoods, Paginate(page, perPage)).
		Where("user_id = ?", userID).
		Order("created_at desc").Order("id asc").
		Find(&list).Error
	return list, err
}

func (r *orderRepository) List(ctx context.Context, page, perPage int) ([]model.Order, error) {
	var list []model.Order
	err := r.db.WithContext(ctx).
		Scopes(preloadGoods, Paginate(page, perPage)).
		Order("created_at desc").Order("id asc").
		Find(&list).Error
	return list, err
}

func (r *orderRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Order{}).Count(&count).Error
	return count, err
}
