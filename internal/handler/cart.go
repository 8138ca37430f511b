package handler

import (
	"net/http"

	"iDrone/internal/dto"
	"iDrone/internal/service"

	"github.com/gin-gonic/gin"
)

type CartHandler interface {
	Get(c *gin.Context)
	AddGoods(c *gin.Context)
	RemoveGoods(c *gin.Context)
}

type cartHandler struct {
	CartService service.CartService
}

func NewCartHandler(cartService service.CartService) CartHandler {
	return &cartHandler{CartService: cartService}
}

type AddCartGoodsRequest struct {
	GoodsID string `json:"goods_id" binding:"required" msg:"缺少商品ID"`
	Amount  int    `json:"amount" binding:"required,min=1" msg:"请输入商品数量"`
}

type RemoveCartGoodsRequest struct {
	GoodsID string `json:"goods_id" binding:"required" msg:"缺少商品ID"`
}

func (h *cartHandler) Get(c *gin.Context) {
	s, ok := currentSession(c)
	if !ok {
		return
	}
	logCtx := logFor(c)

	cart, err := h.CartService.Get(c.Request.Context(), s.UserID)
	if err != nil {
		sendAppError(c, logCtx, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": dto.ToCartResponse(cart)})
}

// 加入购物车：已在购物车中的商品直接覆盖数量
func (h *cartHandler) AddGoods(c *gin.Context) {
	s, ok := currentSession(c)
	if !ok {
		return
	}
	var req AddCartGoodsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendInvalid(c, bindingErrors(&req, err))
		return
	}

	logCtx := logFor(c).WithField("goods_id", req.GoodsID)
	item, err := h.CartService.AddGoods(c.Request.Context(), s.UserID, req.GoodsID, req.Amount)
	if err != nil {
		sendAppError(c, logCtx, err)
		return
	}

	logCtx.WithField("amount", item.Amount).Info("加入购物车成功")
	c.JSON(http.StatusOK, gin.H{
		"message": "加入购物车成功",
		"data": gin.H{
			"goods_id": item.GoodsID,
			"amount":   item.Amount,
		},
	})
}

func (h *cartHandler) RemoveGoods(c *gin.Context) {
	s, ok := currentSession(c)
	if !ok {
		return
	}
	var req RemoveCartGoodsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendInvalid(c, bindingErrors(&req, err))
		return
	}

	logCtx := logFor(c).WithField("goods_id", req.GoodsID)
	removed, err := h.CartService.RemoveGoods(c.Request.Context(), s.UserID, req.GoodsID)
	if err != nil {
		sendAppError(c, logCtx, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"removed": removed}})
}
