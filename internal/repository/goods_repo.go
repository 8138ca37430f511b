package repository

import (
	"context"

	"iDrone/internal/model"

	"gorm.io/gorm"
)

type GoodsRepository interface {
	Create(ctx context.Context, goods *model.Goods) error
	FindByID(ctx context.Context, id string) (*model.Goods, error)
	// 分页查询：List 按销量倒序
	List(ctx context.Context, page, perPage int) ([]model.Goods, error)
	ListByCategory(ctx context.Context, categoryID string, page, perPage int) ([]model.Goods, error)
	Search(ctx context.Context, keyword string, page, perPage int) ([]model.Goods, error)

	CreateCategory(ctx context.Context, category *model.GoodsCategory) error
	ListCategories(ctx context.Context) ([]model.GoodsCategory, error)
	CountCategoryByID(ctx context.Context, id string) (int64, error)
	CountCategoryByTitle(ctx context.Context, title string) (int64, error)

	// 销量统计：SaleRecord 的 order_id 唯一，重复插入返回唯一键冲突
	CreateSaleRecord(ctx context.Context, record *model.SaleRecord) error
	ApplySale(ctx context.Context, goodsID string, amount int) (int64, error)

	WithTx(tx *gorm.DB) GoodsRepository
}

type goodsRepository struct {
	db *gorm.DB
}

func NewGoodsRepository(db *gorm.DB) GoodsRepository {
	return &goodsRepository{db: db}
}

func (r *goodsRepository) WithTx(tx *gorm.DB) GoodsRepository {
	return &goodsRepository{db: tx}
}

func (r *goodsRepository) Create(ctx context.Context, goods *model.Goods) error {
	return r.db.WithContext(ctx).Omit("Category").Create(goods).Error
}

func (r *goodsRepository) FindByID(ctx context.Context, id string) (*model.Goods, error) {
	var goods model.Goods
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&goods).Error
	if err != nil {
		return nil, err
	}
	return &goods, nil
}

func (r *goodsRepository) List(ctx context.Context, page, perPage int) ([]model.Goods, error) {
	var list []model.Goods
	err := r.db.WithContext(ctx).
		Scopes(Paginate(page, perPage)).
		Order("sale desc").Order("id asc").
		Find(&list).Error
	return list, err
}

func (r *goodsRepository) ListByCategory(ctx context.Context, categoryID string, page, perPage int) ([]model.Goods, error) {
	var list []model.Goods
	err := r.db.WithContext(ctx).
		Where("category_id = ?", categoryID).
		Scopes(Paginate(page, perPage)).
		Order("created_at desc").Order("id asc").
		Find(&list).Error
	return list, err
}

// Search 标题子串匹配，大小写规则跟随数据库的排序规则
func (r *goodsRepository) Search(ctx context.Context, keyword string, page, perPage int) ([]model.Goods, error) {
	var list []model.Goods
	err := r.db.WithContext(ctx).
		Where("title LIKE ? ESCAPE '"+likeEscape+"'", containsPattern(keyword)).
		Scopes(Paginate(page, perPage)).
		Order("sale desc").Order("id asc").
		Find(&list).Error
	return list, err
}

func (r *goodsRepository) CreateCategory(ctx context.Context, category *model.GoodsCategory) error {
	return r.db.WithContext(ctx).Create(category).Error
}

func (r *goodsRepository) ListCategories(ctx context.Context) ([]model.GoodsCategory, error) {
	var list []model.GoodsCategory
	err := r.db.WithContext(ctx).Order("title asc").Find(&list).Error
	return list, err
}

func (r *goodsRepository) CountCategoryByID(ctx context.Context, id string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.GoodsCategory{}).Where("id = ?", id).Count(&count).Error
	return count, err
}

func (r *goodsRepository) CountCategoryByTitle(ctx context.Context, title string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.GoodsCategory{}).Where("title = ?", title).Count(&count).Error
	return count, err
}

func (r *goodsRepository) CreateSaleRecord(ctx context.Context, record *model.SaleRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

// ApplySale 原子更新：UPDATE goods SET sale = sale + ?, stock = stock - ? WHERE id = ? AND stock >= ?
// 库存不足时受影响行数为0，由调用方决定如何处理
func (r *goodsRepository) ApplySale(ctx context.Context, goodsID string, amount int) (int64, error) {
	result := r.db.WithContext(ctx).Model(&model.Goods{}).
		Where("id = ? AND stock >= ?", goodsID, amount).
		UpdateColumns(map[string]any{
			"sale":  gorm.Expr("sale + ?", amount),
			"stock": gorm.Expr("stock - ?", amount),
		})
	return result.RowsAffected, result.Error
}
