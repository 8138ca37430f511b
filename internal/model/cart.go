package model

import "time"

// Cart 与 User 是 1:1 关系，user_id 上的唯一索引保证一个用户最多一个购物车
type Cart struct {
	BaseModel
	UserID string `gorm:"type:char(36);not null;uniqueIndex"`

	Items []GoodsInCart `gorm:"foreignKey:CartID"`
}

func (Cart) TableName() string {
	return "carts"
}

// GoodsInCart 购物车和商品的关联行，自己持有两个外键和数量，只能通过购物车服务修改
type GoodsInCart struct {
	CartID    string `gorm:"type:char(36);primaryKey"`
	GoodsID   string `gorm:"type:char(36);primaryKey"`
	Amount    int    `gorm:"not null;default:1"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Goods *Goods `gorm:"foreignKey:GoodsID;references:ID"`
}

func (GoodsInCart) TableName() string {
	return "goods_in_carts"
}
