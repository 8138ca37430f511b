package session

import "context"

// 角色：普通用户和管理员，中间件按角色精确匹配
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Session 存在Redis里的会话信息
type Session struct {
	UserID     string `json:"id"`
	OpenID     string `json:"openid"`
	SessionKey string `json:"session_key"`
	Role       string `json:"role"`
}

type contextKey struct{}

type current struct {
	token   string
	session *Session
}

// WithSession 把会话和它的token显式放进context，service层从参数拿，而不是全局状态
func WithSession(ctx context.Context, token string, s *Session) context.Context {
	return context.WithValue(ctx, contextKey{}, current{token: token, session: s})
}

// FromContext 取出会话，没有时返回 nil, false
func FromContext(ctx context.Context) (*Session, bool) {
	c, ok := ctx.Value(contextKey{}).(current)
	return c.session, ok && c.session != nil
}

// TokenFromContext 取出当前会话的token，没有会话时为空串
func TokenFromContext(ctx context.Context) string {
	c, _ := ctx.Value(contextKey{}).(current)
	return c.token
}
