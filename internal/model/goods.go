package model

import "github.com/shopspring/decimal"

type GoodsCategory struct {
	BaseModel
	Title string `gorm:"type:varchar(255);not null;uniqueIndex"`
}

func (GoodsCategory) TableName() string {
	return "goods_categories"
}

type Goods struct {
	BaseModel
	Title    string          `gorm:"type:varchar(255);not null;index"`
	Price    decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Sale     int             `gorm:"not null;default:0;index"` // 销量
	Stock    int             `gorm:"not null;default:0"`       // 库存
	Freight  decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Image    string          `gorm:"type:text;not null"` // 列表封面图
	Previews string          `gorm:"type:text;not null"` // 预览图，"|"分隔
	Brief    string          `gorm:"type:varchar(36)"`   // 简介文档的文件名
	// 可以不属于任何分类，属于时必须引用已存在的分类（外键约束）
	CategoryID *string `gorm:"type:char(36);index"`

	Category *GoodsCategory `gorm:"foreignKey:CategoryID;references:ID"`
}

// goods 的复数还是 goods，必须自己规定表名
func (Goods) TableName() string {
	return "goods"
}

// SaleRecord 记录一个订单的销量是否已累加，order_id唯一，保证消息重复投递时只累加一次
type SaleRecord struct {
	BaseModel
	OrderID string `gorm:"type:char(36);not null;uniqueIndex"`
}

func (SaleRecord) TableName() string {
	return "sale_records"
}
