package handler

import (
	"net/http"

	"iDrone/internal/dto"
	"iDrone/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
)

type OrderHandler interface {
	Add(c *gin.Context)
	Get(c *gin.Context)
	ListByUser(c *gin.Context)
	List(c *gin.Context)
}

type orderHandler struct {
	OrderService service.OrderService
	PerPage      int
}

func NewOrderHandler(orderService service.OrderService, perPage int) OrderHandler {
	return &orderHandler{OrderService: orderService, PerPage: perPage}
}

type OrderGoods struct {
	ID     string `json:"id" binding:"required"`
	Amount int    `json:"amount" binding:"required,min=1"`
}

// 请求体包含一个商品列表：[{ id: "商品ID", amount: 商品数量 }, ...]
type AddOrderRequest struct {
	GoodsList []OrderGoods `json:"goods_list" binding:"required,min=1,dive" msg:"至少需要一个商品"`
}

type GetOrderRequest struct {
	OrderID string `form:"order_id" binding:"required" msg:"缺少订单ID"`
}

func (h *orderHandler) Add(c *gin.Context) {
	s, ok := currentSession(c)
	if !ok {
		return
	}
	var req AddOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendInvalid(c, bindingErrors(&req, err))
		return
	}

	logCtx := logFor(c).WithField("goods_count", len(req.GoodsList))
	items := lo.Map(req.GoodsList, func(g OrderGoods, _ int) service.OrderItem {
		return service.OrderItem{GoodsID: g.ID, Amount: g.Amount}
	})
	order, err := h.OrderService.Add(c.Request.Context(), s.UserID, items)
	if err != nil {
		sendAppError(c, logCtx, err)
		return
	}

	logCtx.WithField("order_id", order.ID).Info("下单成功")
	c.JSON(http.StatusOK, gin.H{
		"message": "下单成功",
		"data":    dto.ToOrderResponse(order),
	})
}

// 获取订单信息：订单不属于当前用户时同样返回404
func (h *orderHandler) Get(c *gin.Context) {
	s, ok := currentSession(c)
	if !ok {
		return
	}
	var req GetOrderRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		sendInvalid(c, bindingErrors(&req, err))
		return
	}

	logCtx := logFor(c).WithField("order_id", req.OrderID)
	order, err := h.OrderService.Get(c.Request.Context(), req.OrderID)
	if err != nil {
		sendAppError(c, logCtx, err)
		return
	}
	if order.UserID != s.UserID {
		logCtx.Warn("访问他人订单")
		sendErrorResponse(c, http.StatusNotFound, "订单不存在")
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": dto.ToOrderResponse(order)})
}

func (h *orderHandler) ListByUser(c *gin.Context) {
	s, ok := currentSession(c)
	if !ok {
		return
	}
	page := parsePage(c.Query("page"))

	list, err := h.OrderService.ListByUser(c.Request.Context(), s.UserID, page, h.PerPage)
	if err != nil {
		sendAppError(c, logFor(c), err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": dto.ToOrderList(list)})
}

// List 管理员查看全部订单
func (h *orderHandler) List(c *gin.Context) {
	page := parsePage(c.Query("page"))

	list, err := h.OrderService.List(c.Request.Context(), page, h.PerPage)
	if err != nil {
		sendAppError(c, logFor(c), err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": dto.ToOrderList(list)})
}
