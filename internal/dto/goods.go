package dto

import (
	"strings"
	"time"

	"iDrone/internal/model"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

type CategoryResponse struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

type GoodsResponse struct {
	ID         string          `json:"id"`
	CreatedAt  time.Time       `json:"created_at"`
	Title      string          `json:"title"`
	Price      decimal.Decimal `json:"price"`
	Sale       int             `json:"sale"`
	Stock      int             `json:"stock"`
	Freight    decimal.Decimal `json:"freight"`
	Image      string          `json:"image"`
	Previews   []string        `json:"previews"`
	Brief      string          `json:"brief"`
	CategoryID *string         `json:"category_id"`
}

// GoodsBrief 购物车、订单里展示用的商品信息，只带几个字段
type GoodsBrief struct {
	ID    string           `json:"id"`
	Title string           `json:"title"`
	Image string           `json:"image"`
	Price *decimal.Decimal `json:"price,omitempty"`
}

func ToCategoryResponse(category *model.GoodsCategory) CategoryResponse {
	return CategoryResponse{ID: category.ID, Title: category.Title}
}

func ToCategoryList(list []model.GoodsCategory) []CategoryResponse {
	return lo.Map(list, func(c model.GoodsCategory, _ int) CategoryResponse {
		return ToCategoryResponse(&c)
	})
}

// splitPreviews 预览图在库里用"|"拼接
func splitPreviews(previews string) []string {
	if previews == "" {
		return []string{}
	}
	return strings.Split(previews, "|")
}

func ToGoodsResponse(goods *model.Goods) GoodsResponse {
	return GoodsResponse{
		ID:         goods.ID,
		CreatedAt:  goods.CreatedAt,
		Title:      goods.Title,
		Price:      goods.Price,
		Sale:       goods.Sale,
		Stock:      goods.Stock,
		Freight:    goods.Freight,
		Image:      goods.Image,
		Previews:   splitPreviews(goods.Previews),
		Brief:      goods.Brief,
		CategoryID: goods.CategoryID,
	}
}

func ToGoodsList(list []model.Goods) []GoodsResponse {
	return lo.Map(list, func(g model.Goods, _ int) GoodsResponse {
		return ToGoodsResponse(&g)
	})
}
