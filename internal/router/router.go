package router

import (
	"net/http"

	"iDrone/internal/handler"
	"iDrone/internal/middleware"
	"iDrone/internal/repository"
	"iDrone/internal/session"

	"github.com/gin-gonic/gin"
)

// Handlers 路由用到的全部handler
type Handlers struct {
	User  handler.UserHandler
	Admin handler.AdminHandler
	Cart  handler.CartHandler
	Goods handler.GoodsHandler
	Order handler.OrderHandler
	Video handler.VideoHandler
}

func SetupRouter(h Handlers, issuer *session.Issuer, sessions repository.SessionRepository, publicDir string) *gin.Engine {
	handler.SetupValidator()

	r := gin.Default()
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pang",
		})
	})
	// 上传的图片/视频/简介
	r.Static("/static", publicDir)

	// 所有接口都先尝试解析session，必须登录的接口再挂 RequireRole
	r.Use(middleware.SessionMiddleware(issuer, sessions))
	user := middleware.RequireRole(session.RoleUser)
	admin := middleware.RequireRole(session.RoleAdmin)

	userGroup := r.Group("/user")
	{
		userGroup.POST("", h.User.Login)
		userGroup.PUT("", h.User.Register)
		userGroup.POST("/changeAvatar", user, h.User.ChangeAvatar)
		userGroup.POST("/changeNickname", user, h.User.ChangeNickname)
	}

	r.POST("/admin/login", h.Admin.Login)

	cartGroup := r.Group("/cart", user)
	{
		cartGroup.GET("", h.Cart.Get)
		cartGroup.PUT("", h.Cart.AddGoods)
		cartGroup.DELETE("", h.Cart.RemoveGoods)
	}

	goodsGroup := r.Group("/goods")
	{
		goodsGroup.GET("", h.Goods.Get)
		goodsGroup.PUT("", admin, h.Goods.Add)
		goodsGroup.GET("/category", h.Goods.ListCategories)
		goodsGroup.PUT("/category", admin, h.Goods.AddCategory)
		goodsGroup.GET("/list", h.Goods.List)
		goodsGroup.GET("/search", h.Goods.Search)
		goodsGroup.PUT("/upload/cover", admin, h.Goods.UploadCover)
		goodsGroup.PUT("/upload/preview", admin, h.Goods.UploadPreview)
		goodsGroup.PUT("/upload/brief_image", admin, h.Goods.UploadBriefImage)
	}

	orderGroup := r.Group("/order")
	{
		orderGroup.PUT("", user, h.Order.Add)
		orderGroup.GET("", user, h.Order.Get)
		orderGroup.GET("/list", user, h.Order.ListByUser)
		orderGroup.GET("/all", admin, h.Order.List)
	}

	videoGroup := r.Group("/video")
	{
		videoGroup.PUT("", user, h.Video.Add)
		videoGroup.GET("", h.Video.Get)
		videoGroup.PUT("/upload", user, h.Video.UploadVideo)
		videoGroup.PUT("/upload_cover", user, h.Video.UploadCover)
		videoGroup.GET("/list", h.Video.List)
		videoGroup.GET("/search", h.Video.Search)
	}

	return r
}
