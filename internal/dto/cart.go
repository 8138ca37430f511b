package dto

import "iDrone/internal/model"

type CartItemResponse struct {
	Goods  GoodsBrief `json:"goods"`
	Amount int        `json:"amount"`
}

type CartResponse struct {
	ID    string             `json:"id"`
	Items []CartItemResponse `json:"goods_list"`
}

// ToCartResponse 依赖 Items.Goods 被preload，没有preload时只返回商品ID
func ToCartResponse(cart *model.Cart) CartResponse {
	resp := CartResponse{ID: cart.ID, Items: make([]CartItemResponse, 0, len(cart.Items))}
	for _, item := range cart.Items {
		brief := GoodsBrief{ID: item.GoodsID}
		if item.Goods != nil {
			price := item.Goods.Price
			brief.Title = item.Goods.Title
			brief.Image = item.Goods.Image
			brief.Price = &price
		}
		resp.Items = append(resp.Items, CartItemResponse{Goods: brief, Amount: item.Amount})
	}
	return resp
}
