package apperr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Error 是领域操作统一返回的结构化错误，由handler层翻译为HTTP状态码和响应体
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Detail  any    `json:"detail,omitempty"`

	// Raw 不为空时，handler原样返回给调用方（上游错误透传）
	Raw []byte `json:"-"`

	cause error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%d %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%d %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.cause
}

// NotFound 引用的实体不存在
func NotFound(message string) *Error {
	return &Error{Code: http.StatusNotFound, Message: message}
}

// Unauthorized 未登录或角色不符
func Unauthorized(message string) *Error {
	return &Error{Code: http.StatusUnauthorized, Message: message}
}

// Invalid 字段校验失败，detail 为字段级错误
func Invalid(detail any) *Error {
	return &Error{Code: http.StatusUnprocessableEntity, Message: "参数校验失败", Detail: detail}
}

// Storage 存储层错误，cause只进日志，不返回给客户端
func Storage(cause error) *Error {
	return &Error{Code: http.StatusInternalServerError, Message: "数据库错误", cause: cause}
}

// Unavailable 上游服务无法连接（没有拿到上游响应）
func Unavailable(message string, cause error) *Error {
	return &Error{Code: http.StatusBadGateway, Message: message, cause: cause}
}

// Upstream 上游服务返回了错误，状态码和响应体原样透传
func Upstream(status int, body []byte) *Error {
	e := &Error{Code: status, Message: "上游服务错误", Raw: body}
	if json.Valid(body) {
		e.Detail = json.RawMessage(body)
	} else if len(body) > 0 {
		e.Detail = string(body)
	}
	return e
}

// From 取出错误链上的 *Error，非结构化错误视为存储层错误
func From(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return Storage(err)
}

// IsNotFound 判断是否为不存在错误
func IsNotFound(err error) bool {
	var appErr *Error
	return errors.As(err, &appErr) && appErr.Code == http.StatusNotFound
}
