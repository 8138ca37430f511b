package handler

import (
	"net/http"

	"iDrone/internal/dto"
	"iDrone/internal/service"
	"iDrone/internal/session"
	"iDrone/internal/upload"

	"github.com/gin-gonic/gin"
)

type UserHandler interface {
	Login(c *gin.Context)
	Register(c *gin.Context)
	ChangeAvatar(c *gin.Context)
	ChangeNickname(c *gin.Context)
}

// 对Service进行封装
type userHandler struct {
	UserService  service.UserService
	AvatarTarget upload.Target
}

func NewUserHandler(userService service.UserService, avatarTarget upload.Target) UserHandler {
	return &userHandler{UserService: userService, AvatarTarget: avatarTarget}
}

type LoginRequest struct {
	Code string `json:"code" binding:"required" msg:"缺少code参数"`
}

type RegisterRequest struct {
	OpenID  string `json:"openid" binding:"required" msg:"缺少openid参数"`
	UnionID string `json:"unionid"`
}

type ChangeNicknameRequest struct {
	Nickname string `json:"nickname" binding:"required,max=32" msg:"昵称为1到32个字符"`
}

// 登录：1、解析code 2、带上之前的token（如果有），由service删除旧session 3、返回昵称、头像和新token
func (h *userHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logFor(c).WithError(err).Warn("登录请求参数解析失败")
		sendInvalid(c, bindingErrors(&req, err))
		return
	}

	logCtx := logFor(c)
	logCtx.Info("开始处理用户登录请求")

	previous := session.TokenFromContext(c.Request.Context())
	result, err := h.UserService.LoginWithCode(c.Request.Context(), req.Code, previous)
	if err != nil {
		sendAppError(c, logCtx, err)
		return
	}

	logCtx.Info("用户登录成功")
	c.JSON(http.StatusOK, gin.H{
		"message": "登录成功",
		"data":    result,
	})
}

// 直接注册：正常流程里登录会自动注册，这个接口用于调试
func (h *userHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logFor(c).WithError(err).Warn("注册请求参数解析失败")
		sendInvalid(c, bindingErrors(&req, err))
		return
	}

	logCtx := logFor(c)
	user, err := h.UserService.Register(c.Request.Context(), req.OpenID, req.UnionID)
	if err != nil {
		sendAppError(c, logCtx, err)
		return
	}

	logCtx.WithField("new_user_id", user.ID).Info("用户注册成功")
	c.JSON(http.StatusOK, gin.H{
		"message": "注册成功",
		"data":    dto.ToUserResponse(user),
	})
}

// 更换头像：1、保存上传的头像文件 2、把文件名写入用户表
func (h *userHandler) ChangeAvatar(c *gin.Context) {
	s, ok := currentSession(c)
	if !ok {
		return
	}
	logCtx := logFor(c)

	filename, ok := saveUpload(c, logCtx, h.AvatarTarget, "avatar")
	if !ok {
		return
	}
	if err := h.UserService.ChangeAvatar(c.Request.Context(), s.UserID, filename); err != nil {
		sendAppError(c, logCtx, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"filename": filename})
}

func (h *userHandler) ChangeNickname(c *gin.Context) {
	s, ok := currentSession(c)
	if !ok {
		return
	}
	var req ChangeNicknameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendInvalid(c, bindingErrors(&req, err))
		return
	}

	logCtx := logFor(c)
	if err := h.UserService.ChangeNickname(c.Request.Context(), s.UserID, req.Nickname); err != nil {
		sendAppError(c, logCtx, err)
		return
	}
	logCtx.Info("昵称修改成功")
	c.JSON(http.StatusOK, gin.H{"message": "修改成功"})
}
