package dto

import (
	"time"

	"iDrone/internal/model"

	"github.com/samber/lo"
)

type OrderItemResponse struct {
	Goods  GoodsBrief `json:"goods"`
	Amount int        `json:"amount"`
}

type OrderResponse struct {
	ID        string              `json:"id"`
	CreatedAt time.Time           `json:"created_at"`
	Status    string              `json:"status"`
	UserID    string              `json:"user_id"`
	Items     []OrderItemResponse `json:"goods_list"`
}

func ToOrderResponse(order *model.Order) OrderResponse {
	return OrderResponse{
		ID:        order.ID,
		CreatedAt: order.CreatedAt,
		Status:    order.Status.String(),
		UserID:    order.UserID,
		Items: lo.Map(order.Items, func(item model.GoodsInOrder, _ int) OrderItemResponse {
			brief := GoodsBrief{ID: item.GoodsID}
			if item.Goods != nil {
				brief.Title = item.Goods.Title
				brief.Image = item.Goods.Image
			}
			return OrderItemResponse{Goods: brief, Amount: item.Amount}
		}),
	}
}

func ToOrderList(list []model.Order) []OrderResponse {
	return lo.Map(list, func(o model.Order, _ int) OrderResponse {
		return ToOrderResponse(&o)
	})
}
