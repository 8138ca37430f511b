package service

import (
	"context"

	"iDrone/internal/apperr"
	"iDrone/internal/model"
	"iDrone/internal/repository"

	"github.com/shopspring/decimal"
)

// GoodsInput 新增商品需要的字段，Brief 是已经落盘的简介文件名
type GoodsInput struct {
	Title      string
	Price      decimal.Decimal
	Sale       int
	Stock      int
	Freight    decimal.Decimal
	Image      string
	Previews   string
	Brief      string
	CategoryID *string
}

type GoodsService interface {
	Add(ctx context.Context, in GoodsInput) (*model.Goods, error)
	Get(ctx context.Context, id string) (*model.Goods, error)
	List(ctx context.Context, page, perPage int) ([]model.Goods, error)
	ListByCategory(ctx context.Context, categoryID string, page, perPage int) ([]model.Goods, error)
	Search(ctx context.Context, keyword string, page, perPage int) ([]model.Goods, error)

	AddCategory(ctx context.Context, title string) (*model.GoodsCategory, error)
	ListCategories(ctx context.Context) ([]model.GoodsCategory, error)
	CategoryExists(ctx context.Context, id string) (bool, error)
	CategoryTitleExists(ctx context.Context, title string) (bool, error)
}

type goodsService struct {
	goodsRepo repository.GoodsRepository
}

func NewGoodsService(goodsRepo repository.GoodsRepository) GoodsService {
	return &goodsService{goodsRepo: goodsRepo}
}

func (s *goodsService) Add(ctx context.Context, in GoodsInput) (*model.Goods, error) {
	goods := &model.Goods{
		Title:      in.Title,
		Price:      in.Price,
		Sale:       in.Sale,
		Stock:      in.Stock,
		Freight:    in.Freight,
		Image:      in.Image,
		Previews:   in.Previews,
		Brief:      in.Brief,
		CategoryID: in.CategoryID,
	}
	if err := s.goodsRepo.Create(ctx, goods); err != nil {
		return nil, apperr.Storage(err)
	}
	return goods, nil
}

func (s *goodsService) Get(ctx context.Context, id string) (*model.Goods, error) {
	goods, err := s.goodsRepo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "商品不存在")
	}
	return goods, nil
}

func (s *goodsService) List(ctx context.Context, page, perPage int) ([]model.Goods, error) {
	list, err := s.goodsRepo.List(ctx, page, perPage)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	return list, nil
}

func (s *goodsService) ListByCategory(ctx context.Context, categoryID string, page, perPage int) ([]model.Goods, error) {
	list, err := s.goodsRepo.ListByCategory(ctx, categoryID, page, perPage)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	return list, nil
}

func (s *goodsService) Search(ctx context.Context, keyword string, page, perPage int) ([]model.Goods, error) {
	list, err := s.goodsRepo.Search(ctx, keyword, page, perPage)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	return list, nil
}

// AddCategory 标题唯一由调用方先检查，并发插入同名分类时唯一索引兜底，同样按校验失败返回
func (s *goodsService) AddCategory(ctx context.Context, title string) (*model.GoodsCategory, error) {
	category := &model.GoodsCategory{Title: title}
	if err := s.goodsRepo.CreateCategory(ctx, category); err != nil {
		if repository.IsDuplicateKey(err) {
			return nil, apperr.Invalid(map[string]string{"title": "分类名已存在"})
		}
		return nil, apperr.Storage(err)
	}
	return category, nil
}

func (s *goodsService) ListCategories(ctx context.Context) ([]model.GoodsCategory, error) {
	list, err := s.goodsRepo.ListCategories(ctx)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	return list, nil
}

func (s *goodsService) CategoryExists(ctx context.Context, id string) (bool, error) {
	count, err := s.goodsRepo.CountCategoryByID(ctx, id)
	if err != nil {
		return false, apperr.Storage(err)
	}
	return count > 0, nil
}

func (s *goodsService) CategoryTitleExists(ctx context.Context, title string) (bool, error) {
	count, err := s.goodsRepo.CountCategoryByTitle(ctx, title)
	if err != nil {
		return false, apperr.Storage(err)
	}
	return count > 0, nil
}
