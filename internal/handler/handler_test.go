package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"iDrone/internal/apperr"
	"iDrone/internal/model"
	"iDrone/internal/service"
	"iDrone/internal/session"
	"iDrone/internal/upload"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newEngine 测试引擎，userID 不为空时模拟已登录的普通用户
func newEngine(userID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	SetupValidator()
	r := gin.New()
	if userID != "" {
		r.Use(func(c *gin.Context) {
			ctx := session.WithSession(c.Request.Context(), "token-"+userID, &session.Session{UserID: userID, Role: session.RoleUser})
			c.Request = c.Request.WithContext(ctx)
			c.Next()
		})
	}
	return r
}

func doJSON(r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

type errorBody struct {
	Code    int               `json:"code"`
	Message string            `json:"message"`
	Detail  map[string]string `json:"detail"`
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) errorBody {
	t.Helper()
	var body errorBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

type fakeCartService struct {
	service.CartService
	added []string
	err   error
}

func (f *fakeCartService) AddGoods(ctx context.Context, userID, goodsID string, amount int) (*model.GoodsInCart, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.added = append(f.added, userID+":"+goodsID)
	return &model.GoodsInCart{GoodsID: goodsID, Amount: amount}, nil
}

type fakeOrderService struct {
	service.OrderService
	order *model.Order
	items []service.OrderItem
}

func (f *fakeOrderService) Add(ctx context.Context, userID string, items []service.OrderItem) (*model.Order, error) {
	f.items = items
	return &model.Order{BaseModel: model.BaseModel{ID: "order-1"}, UserID: userID}, nil
}

func (f *fakeOrderService) Get(ctx context.Context, orderID string) (*model.Order, error) {
	if f.order == nil || f.order.ID != orderID {
		return nil, apperr.NotFound("订单不存在")
	}
	return f.order, nil
}

type fakeUserService struct {
	service.UserService
	result   *service.LoginResult
	err      error
	previous string
	avatar   string
}

func (f *fakeUserService) ChangeAvatar(ctx context.Context, id, filename string) error {
	f.avatar = filename
	return f.err
}

func (f *fakeUserService) LoginWithCode(ctx context.Context, code, previousToken string) (*service.LoginResult, error) {
	f.previous = previousToken
	return f.result, f.err
}

func TestCartHandler_AddGoods(t *testing.T) {
	svc := &fakeCartService{}
	r := newEngine("u-1")
	r.PUT("/cart", NewCartHandler(svc).AddGoods)

	w := doJSON(r, http.MethodPut, "/cart", map[string]any{"amount": 1})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, map[string]string{"goods_id": "缺少商品ID"}, decodeError(t, w).Detail)

	w = doJSON(r, http.MethodPut, "/cart", map[string]any{"goods_id": "g-1", "amount": 0})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, map[string]string{"amount": "请输入商品数量"}, decodeError(t, w).Detail)

	w = doJSON(r, http.MethodPut, "/cart", map[string]any{"goods_id": "g-1", "amount": 2})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"u-1:g-1"}, svc.added)

	req := httptest.NewRequest(http.MethodPut, "/cart", bytes.NewBufferString("{"))
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, map[string]string{"body": "请求格式错误"}, decodeError(t, w).Detail)
}

func TestCartHandler_AppErrors(t *testing.T) {
	r := newEngine("u-1")
	r.PUT("/cart", NewCartHandler(&fakeCartService{err: apperr.NotFound("购物车不存在")}).AddGoods)

	w := doJSON(r, http.MethodPut, "/cart", map[string]any{"goods_id": "g-1", "amount": 1})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "购物车不存在", decodeError(t, w).Message)

	r = newEngine("u-1")
	r.PUT("/cart", NewCartHandler(&fakeCartService{err: apperr.Storage(assert.AnError)}).AddGoods)
	w = doJSON(r, http.MethodPut, "/cart", map[string]any{"goods_id": "g-1", "amount": 1})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	// 内部原因不外露
	assert.NotContains(t, w.Body.String(), assert.AnError.Error())
}

func TestCartHandler_RequiresSession(t *testing.T) {
	r := newEngine("")
	r.PUT("/cart", NewCartHandler(&fakeCartService{}).AddGoods)

	w := doJSON(r, http.MethodPut, "/cart", map[string]any{"goods_id": "g-1", "amount": 1})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestOrderHandler_Add(t *testing.T) {
	svc := &fakeOrderService{}
	r := newEngine("u-1")
	r.PUT("/order", NewOrderHandler(svc, 24).Add)

	w := doJSON(r, http.MethodPut, "/order", map[string]any{"goods_list": []any{}})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, map[string]string{"goods_list": "至少需要一个商品"}, decodeError(t, w).Detail)

	w = doJSON(r, http.MethodPut, "/order", map[string]any{"goods_list": []any{map[string]any{"amount": 1}}})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, map[string]string{"goods_list[0].id": "缺少参数"}, decodeError(t, w).Detail)

	w = doJSON(r, http.MethodPut, "/order", map[string]any{"goods_list": []any{
		map[string]any{"id": "g-1", "amount": 1},
		map[string]any{"id": "g-2", "amount": 3},
	}})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []service.OrderItem{{GoodsID: "g-1", Amount: 1}, {GoodsID: "g-2", Amount: 3}}, svc.items)
	assert.Contains(t, w.Body.String(), `"id":"order-1"`)
}

func TestOrderHandler_GetOtherUsersOrder(t *testing.T) {
	svc := &fakeOrderService{order: &model.Order{BaseModel: model.BaseModel{ID: "order-1"}, UserID: "someone-else"}}
	r := newEngine("u-1")
	r.GET("/order", NewOrderHandler(svc, 24).Get)

	w := doJSON(r, http.MethodGet, "/order?order_id=order-1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	svc.order.UserID = "u-1"
	w = doJSON(r, http.MethodGet, "/order?order_id=order-1", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, http.MethodGet, "/order", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, map[string]string{"order_id": "缺少订单ID"}, decodeError(t, w).Detail)
}

func TestUserHandler_Login(t *testing.T) {
	svc := &fakeUserService{result: &service.LoginResult{Nickname: "飞手", Token: "new-token"}}
	r := newEngine("u-1")
	r.POST("/user", NewUserHandler(svc, upload.Target{}).Login)

	w := doJSON(r, http.MethodPost, "/user", map[string]any{"code": "c-1"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "token-u-1", svc.previous)
	assert.Contains(t, w.Body.String(), `"token":"new-token"`)

	w = doJSON(r, http.MethodPost, "/user", map[string]any{})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, map[string]string{"code": "缺少code参数"}, decodeError(t, w).Detail)
}

func TestUserHandler_LoginUpstreamPassthrough(t *testing.T) {
	raw := `{"errcode":40029,"errmsg":"invalid code"}`
	svc := &fakeUserService{err: apperr.Upstream(http.StatusInternalServerError, []byte(raw))}
	r := newEngine("")
	r.POST("/user", NewUserHandler(svc, upload.Target{}).Login)

	w := doJSON(r, http.MethodPost, "/user", map[string]any{"code": "bad"})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, raw, w.Body.String())
	assert.Contains(t, w.Header().Get("Content-Type"), "application/json")
	assert.Empty(t, svc.previous)

	svc.err = apperr.Upstream(http.StatusServiceUnavailable, []byte("busy"))
	w = doJSON(r, http.MethodPost, "/user", map[string]any{"code": "bad"})
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "busy", w.Body.String())
}

func TestParsePage(t *testing.T) {
	assert.Equal(t, 1, parsePage(""))
	assert.Equal(t, 1, parsePage("abc"))
	assert.Equal(t, 1, parsePage("0"))
	assert.Equal(t, 1, parsePage("-3"))
	assert.Equal(t, 7, parsePage("7"))
}
