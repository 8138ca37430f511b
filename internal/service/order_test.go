package service

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"iDrone/internal/apperr"
	"iDrone/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderService_Add(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	user, err := newUserService(f, &fakeExchanger{}).Register(ctx, "o-1", "")
	require.NoError(t, err)
	first := f.createGoods(t, "机身", 5)
	second := f.createGoods(t, "电池", 5)
	publisher := &recordingPublisher{}
	svc := NewOrderService(f.orders, f.uow, publisher)

	order, err := svc.Add(ctx, user.ID, []OrderItem{
		{GoodsID: first.ID, Amount: 1},
		{GoodsID: second.ID, Amount: 3},
	})
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusUnpaid, order.Status)

	found, err := svc.Get(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.UserID)
	require.Len(t, found.Items, 2)
	for _, item := range found.Items {
		require.NotNil(t, item.Goods)
		assert.NotEmpty(t, item.Goods.Title)
	}

	require.Len(t, publisher.msgs, 1)
	assert.Equal(t, order.ID, publisher.msgs[0].OrderID)
	assert.Len(t, publisher.msgs[0].Items, 2)
}

func TestOrderService_AddIsAtomic(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	user, err := newUserService(f, &fakeExchanger{}).Register(ctx, "o-1", "")
	require.NoError(t, err)
	goods := f.createGoods(t, "机身", 5)
	publisher := &recordingPublisher{}
	svc := NewOrderService(f.orders, f.uow, publisher)

	_, err = svc.Add(ctx, user.ID, []OrderItem{
		{GoodsID: goods.ID, Amount: 1},
		{GoodsID: "00000000-0000-0000-0000-000000000000", Amount: 1},
	})
	require.Error(t, err)
	assert.Equal(t, http.StatusInternalServerError, apperr.From(err).Code)

	count, err := f.orders.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
	var rows int64
	require.NoError(t, f.db.Model(&model.GoodsInOrder{}).Count(&rows).Error)
	assert.Zero(t, rows)
	assert.Empty(t, publisher.msgs)

	list, err := svc.ListByUser(ctx, user.ID, 1, 24)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestOrderService_PublishFailureDoesNotFailOrder(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	user, err := newUserService(f, &fakeExchanger{}).Register(ctx, "o-1", "")
	require.NoError(t, err)
	goods := f.createGoods(t, "机身", 5)
	svc := NewOrderService(f.orders, f.uow, &recordingPublisher{err: errors.New("channel closed")})

	order, err := svc.Add(ctx, user.ID, []OrderItem{{GoodsID: goods.ID, Amount: 1}})
	require.NoError(t, err)
	_, err = svc.Get(ctx, order.ID)
	require.NoError(t, err)
}

func TestOrderService_Lists(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	users := newUserService(f, &fakeExchanger{})
	alice, err := users.Register(ctx, "alice", "")
	require.NoError(t, err)
	bob, err := users.Register(ctx, "bob", "")
	require.NoError(t, err)
	goods := f.createGoods(t, "机身", 5)
	svc := NewOrderService(f.orders, f.uow, &recordingPublisher{})

	for i := 0; i < 3; i++ {
		_, err := svc.Add(ctx, alice.ID, []OrderItem{{GoodsID: goods.ID, Amount: 1}})
		require.NoError(t, err)
	}
	_, err = svc.Add(ctx, bob.ID, []OrderItem{{GoodsID: goods.ID, Amount: 1}})
	require.NoError(t, err)

	mine, err := svc.ListByUser(ctx, alice.ID, 1, 2)
	require.NoError(t, err)
	assert.Len(t, mine, 2)
	assert.False(t, mine[0].CreatedAt.Before(mine[1].CreatedAt))

	all, err := svc.List(ctx, 1, 24)
	require.NoError(t, err)
	assert.Len(t, all, 4)

	_, err = svc.Get(ctx, "missing")
	assert.True(t, apperr.IsNotFound(err))
}
