package service

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"testing"

	"iDrone/internal/apperr"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGoodsService_AddThenGet(t *testing.T) {
	svc := NewGoodsService(newFixture(t).goods)
	ctx := context.Background()

	for _, title := range []string{"a", "大疆 Mini 4 Pro", "title with 'quotes' and %"} {
		goods, err := svc.Add(ctx, GoodsInput{
			Title:   title,
			Price:   decimal.RequireFromString("4788"),
			Freight: decimal.RequireFromString("0"),
			Stock:   3,
			Brief:   "brief-file",
		})
		require.NoError(t, err)

		found, err := svc.Get(ctx, goods.ID)
		require.NoError(t, err)
		assert.Equal(t, title, found.Title)
		assert.Equal(t, "brief-file", found.Brief)
	}

	_, err := svc.Get(ctx, "missing")
	assert.True(t, apperr.IsNotFound(err))
}

func TestGoodsService_Categories(t *testing.T) {
	svc := NewGoodsService(newFixture(t).goods)
	ctx := context.Background()

	category, err := svc.AddCategory(ctx, "整机")
	require.NoError(t, err)

	exists, err := svc.CategoryExists(ctx, category.ID)
	require.NoError(t, err)
	assert.True(t, exists)
	exists, err = svc.CategoryExists(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, exists)

	exists, err = svc.CategoryTitleExists(ctx, "整机")
	require.NoError(t, err)
	assert.True(t, exists)

	// 唯一索引兜底
	_, err = svc.AddCategory(ctx, "整机")
	assert.Equal(t, http.StatusUnprocessableEntity, apperr.From(err).Code)

	list, err := svc.ListCategories(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	goods, err := svc.Add(ctx, GoodsInput{Title: "Air 3", CategoryID: &category.ID})
	require.NoError(t, err)
	inCategory, err := svc.ListByCategory(ctx, category.ID, 1, 24)
	require.NoError(t, err)
	require.Len(t, inCategory, 1)
	assert.Equal(t, goods.ID, inCategory[0].ID)
}

func TestGoodsService_ListAndSearch(t *testing.T) {
	f := newFixture(t)
	svc := NewGoodsService(f.goods)
	ctx := context.Background()
	for i := 0; i < 30; i++ {
		f.createGoods(t, fmt.Sprintf("FPV 穿越机 %d", i), 1)
	}

	page, err := svc.List(ctx, 2, 24)
	require.NoError(t, err)
	assert.Len(t, page, 6)

	empty, err := svc.List(ctx, 3, 24)
	require.NoError(t, err)
	assert.Empty(t, empty)

	// 超大页码不能绕回第一页
	empty, err = svc.List(ctx, math.MaxInt64, 24)
	require.NoError(t, err)
	assert.Empty(t, empty)

	hits, err := svc.Search(ctx, "穿越机", 1, 30)
	require.NoError(t, err)
	assert.Len(t, hits, 30)

	none, err := svc.Search(ctx, "拖拉机", 1, 30)
	require.NoError(t, err)
	assert.Empty(t, none)
}
