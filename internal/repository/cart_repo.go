package repository

import (
	"context"

	"iDrone/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CartRepository interface {
	Create(ctx context.Context, cart *model.Cart) error
	// 只查购物车本身
	FindByUserID(ctx context.Context, userID string) (*model.Cart, error)
	// 查购物车，并Preload出其中商品的 id/title/image/price
	FindWithGoodsByUserID(ctx context.Context, userID string) (*model.Cart, error)
	UpsertGoods(ctx context.Context, item *model.GoodsInCart) error
	RemoveGoods(ctx context.Context, cartID, goodsID string) (int64, error)

	WithTx(tx *gorm.DB) CartRepository
}

type cartRepository struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) CartRepository {
	return &cartRepository{db: db}
}

func (r *cartRepository) WithTx(tx *gorm.DB) CartRepository {
	return &cartRepository{db: tx}
}

func (r *cartRepository) Create(ctx context.Context, cart *model.Cart) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(cart).Error
}

func (r *cartRepository) FindByUserID(ctx context.Context, userID string) (*model.Cart, error) {
	var cart model.Cart
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&cart).Error
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

func (r *cartRepository) FindWithGoodsByUserID(ctx context.Context, userID string) (*model.Cart, error) {
	var cart model.Cart
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at asc")
		}).
		Preload("Items.Goods", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "title", "image", "price")
		}).
		Where("user_id = ?", userID).
		First(&cart).Error
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

// UpsertGoods 关联行已存在则更新数量，不存在则插入；不检查商品是否存在，交给外键
func (r *cartRepository) UpsertGoods(ctx context.Context, item *model.GoodsInCart) error {
	return r.db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "cart_id"}, {Name: "goods_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"amount", "updated_at"}),
		}).
		Create(item).Error
}

func (r *cartRepository) RemoveGoods(ctx context.Context, cartID, goodsID string) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("cart_id = ? AND goods_id = ?", cartID, goodsID).
		Delete(&model.GoodsInCart{})
	return result.RowsAffected, result.Error
}
