package wechat

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Session jscode2session 成功时的返回
type Session struct {
	OpenID     string `json:"openid"`
	UnionID    string `json:"unionid"`
	SessionKey string `json:"session_key"`
}

// APIError 微信返回了200，但响应体里带着非0的errcode
type APIError struct {
	ErrCode int    `json:"errcode"`
	ErrMsg  string `json:"errmsg"`
	Body    []byte `json:"-"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("wechat: errcode=%d errmsg=%s", e.ErrCode, e.ErrMsg)
}

// HTTPError 微信返回了非2xx状态码
type HTTPError struct {
	StatusCode int
	Body       []byte
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("wechat: unexpected status %d", e.StatusCode)
}

// IdentityError 微信返回了200且没有errcode，但响应里没有openid
type IdentityError struct {
	Body []byte
}

func (e *IdentityError) Error() string {
	return "wechat: response without openid"
}

// Config 小程序凭证
type Config struct {
	AppID            string
	AppSecret        string
	AuthorizationURL string
	Timeout          time.Duration
}

type Client struct {
	config     Config
	httpClient *http.Client
}

func NewClient(config Config) *Client {
	timeout := config.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Client{
		config:     config,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Code2Session 用登录code换取openid/unionid/session_key：
// 1、拼装 appid/secret/js_code/grant_type 参数 2、GET 请求 3、非2xx返回HTTPError 4、errcode非0返回APIError 5、缺少openid返回IdentityError
func (c *Client) Code2Session(ctx context.Context, code string) (*Session, error) {
	endpoint, err := url.Parse(c.config.AuthorizationURL)
	if err != nil {
		return nil, fmt.Errorf("wechat: invalid authorization url: %w", err)
	}
	query := endpoint.Query()
	query.Set("appid", c.config.AppID)
	query.Set("secret", c.config.AppSecret)
	query.Set("js_code", code)
	query.Set("grant_type", "authorization_code")
	endpoint.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("wechat: create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("wechat: request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("wechat: read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &HTTPError{StatusCode: resp.StatusCode, Body: body}
	}

	// errcode 存在且不为0才算失败，有的成功响应会带 errcode: 0
	var apiErr APIError
	if err := json.Unmarshal(body, &apiErr); err != nil {
		return nil, fmt.Errorf("wechat: decode response: %w", err)
	}
	if apiErr.ErrCode != 0 {
		apiErr.Body = body
		return nil, &apiErr
	}

	var session Session
	if err := json.Unmarshal(body, &session); err != nil {
		return nil, fmt.Errorf("wechat: decode response: %w", err)
	}
	if session.OpenID == "" {
		return nil, &IdentityError{Body: body}
	}
	return &session, nil
}
