package repository

import (
	"context"

	"iDrone/internal/model"

	"gorm.io/gorm"
)

// 用户仓库接口：1、插入用户 2、按id/openid/unionid查找用户 3、修改昵称/头像
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id string) (*model.User, error)
	FindByOpenID(ctx context.Context, openid string) (*model.User, error)
	FindByUnionID(ctx context.Context, unionid string) (*model.User, error)
	// 返回受影响行数，0表示用户不存在
	UpdateNickname(ctx context.Context, id, nickname string) (int64, error)
	UpdateAvatar(ctx context.Context, id, avatar string) (int64, error)

	WithTx(tx *gorm.DB) UserRepository
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// WithTx 返回一个新的、使用事务的 userRepository 实例
func (r *userRepository) WithTx(tx *gorm.DB) UserRepository {
	return &userRepository{db: tx}
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Omit("Cart").Create(user).Error
}

func (r *userRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	return r.findBy(ctx, "id = ?", id)
}

func (r *userRepository) FindByOpenID(ctx context.Context, openid string) (*model.User, error) {
	return r.findBy(ctx, "openid = ?", openid)
}

func (r *userRepository) FindByUnionID(ctx context.Context, unionid string) (*model.User, error) {
	return r.findBy(ctx, "unionid = ?", unionid)
}

func (r *userRepository) findBy(ctx context.Context, query string, arg string) (*model.User, error) {
	var result model.User
	err := r.db.WithContext(ctx).Where(query, arg).First(&result).Error
	if err != nil {
		return nil, err // 如果有错（包括没找到），直接返回
	}
	return &result, nil
}

// Update 会顺带刷新 updated_at，所以即使新旧值相同，MySQL 也会返回1行受影响
func (r *userRepository) UpdateNickname(ctx context.Context, id, nickname string) (int64, error) {
	result := r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).Update("nickname", nickname)
	return result.RowsAffected, result.Error
}

func (r *userRepository) UpdateAvatar(ctx context.Context, id, avatar string) (int64, error) {
	result := r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).Update("avatar", avatar)
	return result.RowsAffected, result.Error
}
