package model

import "time"

// OrderStatus 订单状态：0 未付款；1 已付款；2 已发货；3 已完成；-1 已取消
type OrderStatus int8

const (
	OrderStatusCancelled OrderStatus = -1
	OrderStatusUnpaid    OrderStatus = 0
	OrderStatusPaid      OrderStatus = 1
	OrderStatusShipped   OrderStatus = 2
	OrderStatusCompleted OrderStatus = 3
)

func (s OrderStatus) String() string {
	switch s {
	case OrderStatusCancelled:
		return "cancelled"
	case OrderStatusUnpaid:
		return "unpaid"
	case OrderStatusPaid:
		return "paid"
	case OrderStatusShipped:
		return "shipped"
	case OrderStatusCompleted:
		return "completed"
	}
	return "unknown"
}

// Order 与 User 是 1:n 关系，与 Goods 通过 GoodsInOrder 是 m:n 关系
type Order struct {
	BaseModel
	Status OrderStatus `gorm:"type:tinyint;not null;default:0"`
	UserID string      `gorm:"type:char(36);not null;index"`

	User  *User          `gorm:"foreignKey:UserID;references:ID"`
	Items []GoodsInOrder `gorm:"foreignKey:OrderID"`
}

func (Order) TableName() string {
	return "orders"
}

// GoodsInOrder 订单和商品的关联行，携带购买数量
type GoodsInOrder struct {
	OrderID   string `gorm:"type:char(36);primaryKey"`
	GoodsID   string `gorm:"type:char(36);primaryKey"`
	Amount    int    `gorm:"not null;default:1"`
	CreatedAt time.Time

	Goods *Goods `gorm:"foreignKey:GoodsID;references:ID"`
}

func (GoodsInOrder) TableName() string {
	return "goods_in_orders"
}
