package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"iDrone/internal/apperr"
	"iDrone/internal/session"
	"iDrone/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// sendErrorResponse 是一个辅助函数，用于发送标准格式的错误响应
func sendErrorResponse(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, apperr.Error{Code: code, Message: message})
}

// sendInvalid 字段级校验失败，统一422
func sendInvalid(c *gin.Context, detail map[string]string) {
	c.AbortWithStatusJSON(http.StatusUnprocessableEntity, apperr.Invalid(detail))
}

// sendAppError 把领域错误翻译成HTTP响应：5xx记Error日志（带内部原因），其余记Warn
// 上游错误的响应体原样透传
func sendAppError(c *gin.Context, logCtx *logrus.Entry, err error) {
	appErr := apperr.From(err)
	if appErr.Code >= http.StatusInternalServerError {
		logCtx.WithError(err).Error("请求处理失败")
	} else {
		logCtx.WithError(err).Warn("请求处理失败")
	}

	if appErr.Raw != nil {
		contentType := "text/plain; charset=utf-8"
		if json.Valid(appErr.Raw) {
			contentType = "application/json; charset=utf-8"
		}
		c.Data(appErr.Code, contentType, appErr.Raw)
		c.Abort()
		return
	}
	c.AbortWithStatusJSON(appErr.Code, appErr)
}

// logFor 每个请求的日志上下文：带上客户端IP，登录后再带上用户ID
func logFor(c *gin.Context) *logrus.Entry {
	logCtx := logger.Log.WithField("ip", c.ClientIP())
	if s, ok := session.FromContext(c.Request.Context()); ok {
		logCtx = logCtx.WithField("user_id", s.UserID)
	}
	return logCtx
}

// parsePage 页码从1开始，缺省、非法或小于1都按第1页
func parsePage(raw string) int {
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// currentSession 取出中间件放进context的会话，路由上挂了 RequireRole 时一定存在
func currentSession(c *gin.Context) (*session.Session, bool) {
	s, ok := session.FromContext(c.Request.Context())
	if !ok {
		sendErrorResponse(c, http.StatusUnauthorized, "请先登录")
		return nil, false
	}
	return s, true
}
