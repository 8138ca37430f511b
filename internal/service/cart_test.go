package service

import (
	"context"
	"net/http"
	"testing"

	"iDrone/internal/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartService_AddGoods(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	user, err := newUserService(f, &fakeExchanger{}).Register(ctx, "o-1", "")
	require.NoError(t, err)
	goods := f.createGoods(t, "桨叶", 10)
	svc := NewCartService(f.carts)

	_, err = svc.AddGoods(ctx, user.ID, goods.ID, 2)
	require.NoError(t, err)
	_, err = svc.AddGoods(ctx, user.ID, goods.ID, 5)
	require.NoError(t, err)

	cart, err := svc.Get(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 5, cart.Items[0].Amount)
	assert.Equal(t, "桨叶", cart.Items[0].Goods.Title)
}

func TestCartService_AddGoods_Errors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	user, err := newUserService(f, &fakeExchanger{}).Register(ctx, "o-1", "")
	require.NoError(t, err)
	goods := f.createGoods(t, "桨叶", 10)
	svc := NewCartService(f.carts)

	// 没有购物车
	_, err = svc.AddGoods(ctx, "no-cart-user", goods.ID, 1)
	assert.True(t, apperr.IsNotFound(err))

	// 有购物车但商品不存在：不是404，而是存储错误
	_, err = svc.AddGoods(ctx, user.ID, "00000000-0000-0000-0000-000000000000", 1)
	require.Error(t, err)
	assert.Equal(t, http.StatusInternalServerError, apperr.From(err).Code)
}

func TestCartService_RemoveGoodsIsIdempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	user, err := newUserService(f, &fakeExchanger{}).Register(ctx, "o-1", "")
	require.NoError(t, err)
	goods := f.createGoods(t, "桨叶", 10)
	svc := NewCartService(f.carts)
	_, err = svc.AddGoods(ctx, user.ID, goods.ID, 1)
	require.NoError(t, err)

	removed, err := svc.RemoveGoods(ctx, user.ID, goods.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, removed)

	removed, err = svc.RemoveGoods(ctx, user.ID, goods.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 0, removed)

	_, err = svc.RemoveGoods(ctx, "no-cart-user", goods.ID)
	assert.True(t, apperr.IsNotFound(err))
}

func TestCartService_Get_NotFound(t *testing.T) {
	svc := NewCartService(newFixture(t).carts)

	_, err := svc.Get(context.Background(), "missing")
	assert.True(t, apperr.IsNotFound(err))
}
