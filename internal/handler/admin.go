package handler

import (
	"net/http"

	"iDrone/internal/service"

	"github.com/gin-gonic/gin"
)

type AdminHandler interface {
	Login(c *gin.Context)
}

type adminHandler struct {
	AdminService service.AdminService
}

func NewAdminHandler(adminService service.AdminService) AdminHandler {
	return &adminHandler{AdminService: adminService}
}

type AdminLoginRequest struct {
	Username string `json:"username" binding:"required" msg:"请输入用户名"`
	Password string `json:"password" binding:"required" msg:"请输入密码"`
}

func (h *adminHandler) Login(c *gin.Context) {
	var req AdminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendInvalid(c, bindingErrors(&req, err))
		return
	}

	logCtx := logFor(c).WithField("username", req.Username)
	token, err := h.AdminService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		sendAppError(c, logCtx, err)
		return
	}

	logCtx.Info("管理员登录成功")
	c.JSON(http.StatusOK, gin.H{
		"message": "登录成功",
		"data": gin.H{
			"token": token,
		},
	})
}
