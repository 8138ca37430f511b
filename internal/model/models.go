package model

// All 返回所有需要迁移的表，server/seeder/测试共用
func All() []any {
	return []any{
		&User{}, &Cart{}, &GoodsCategory{}, &Goods{}, &GoodsInCart{},
		&Order{}, &GoodsInOrder{}, &Video{}, &SaleRecord{},
	}
}
