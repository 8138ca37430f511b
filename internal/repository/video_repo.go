package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"time"

	"iDrone/internal/model"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

type VideoRepository interface {
	Create(ctx context.Context, video *model.Video) error
	// 利用videoID找视频，preload上传者的公开信息
	FindByID(ctx context.Context, videoID string) (*model.Video, error)
	// 分页，按上传时间倒序
	List(ctx context.Context, page, perPage int) ([]model.Video, error)
	ListByUser(ctx context.Context, userID string, page, perPage int) ([]model.Video, error)
	Search(ctx context.Context, keyword string, page, perPage int) ([]model.Video, error)

	GetVideoCache(ctx context.Context, videoID string) (*model.Video, error)
	SetVideoCache(ctx context.Context, video *model.Video) error
}

type videoRepository struct {
	db  *gorm.DB
	rdb *redis.Client
}

// rdb 可以为 nil，此时不走缓存
func NewVideoRepository(db *gorm.DB, rdb *redis.Client) VideoRepository {
	return &videoRepository{
		db:  db,
		rdb: rdb,
	}
}

func (r *videoRepository) Create(ctx context.Context, video *model.Video) error {
	return r.db.WithContext(ctx).Omit("User").Create(video).Error
}

// preloadUploader 上传者只带出 id/nickname/avatar，openid 之类不外露
func preloadUploader(db *gorm.DB) *gorm.DB {
	return db.Preload("User", func(db *gorm.DB) *gorm.DB {
		return db.Select("id", "nickname", "avatar")
	})
}

func (r *videoRepository) FindByID(ctx context.Context, videoID string) (*model.Video, error) {
	var video model.Video
	err := r.db.WithContext(ctx).Scopes(preloadUploader).Where("id = ?", videoID).First(&video).Error
	if err != nil {
		return nil, err
	}
	return &video, nil
}

func (r *videoRepository) List(ctx context.Context, page, perPage int) ([]model.Video, error) {
	var videos []model.Video
	err := r.db.WithContext(ctx).
		Scopes(preloadUploader, Paginate(page, perPage)).
		Order("upload_at desc").Order("id asc").
		Find(&videos).Error
	return videos, err
}

func (r *videoRepository) ListByUser(ctx context.Context, userID string, page, perPage int) ([]model.Video, error) {
	var videos []model.Video
	err := r.db.WithContext(ctx).
		Scopes(preloadUploader, Paginate(page, perPage)).
		Where("user_id = ?", userID).
		Order("upload_at desc").Order("id asc").
		Find(&videos).Error
	return videos, err
}

func (r *videoRepository) Search(ctx context.Context, keyword string, page, perPage int) ([]model.Video, error) {
	var videos []model.Video
	err := r.db.WithContext(ctx).
		Scopes(preloadUploader, Paginate(page, perPage)).
		Where("title LIKE ? ESCAPE '"+likeEscape+"'", containsPattern(keyword)).
		Order("upload_at desc").Order("id asc").
		Find(&videos).Error
	return videos, err
}

// 返回存储单个视频信息的字符串Key
func (r *videoRepository) keyVideoInfo(videoID string) string {
	return fmt.Sprintf("video:info:%s", videoID)
}

// 从Redis缓存中获取单个Video信息：1、利用VideoID组装key 2、拿key去rdb中寻找videoJSON 3、利用json.Unmarshal将拿到的videoJSON反序列化
func (r *videoRepository) GetVideoCache(ctx context.Context, videoID string) (*model.Video, error) {
	if r.rdb == nil {
		return nil, nil
	}
	videoJSON, err := r.rdb.Get(ctx, r.keyVideoInfo(videoID)).Result()
	if err == redis.Nil {
		return nil, nil // 如果缓存不存在，但是Redis正常工作
	} else if err != nil {
		return nil, err // Redis本身出错了
	}
	var video model.Video
	if err := json.Unmarshal([]byte(videoJSON), &video); err != nil {
		return nil, err
	}
	return &video, nil
}

// 将单个视频信息存入Redis缓存：1、拼装key 2、序列化成JSON字符串 3、设置带随机性的过期时间
func (r *videoRepository) SetVideoCache(ctx context.Context, video *model.Video) error {
	if r.rdb == nil {
		return nil
	}
	videoJSON, err := json.Marshal(video)
	if err != nil {
		return err
	}
	// 设置过期时间，再加上随机性防止缓存雪崩
	expiration := time.Minute*5 + time.Duration(rand.Intn(60))*time.Second
	return r.rdb.Set(ctx, r.keyVideoInfo(video.ID), videoJSON, expiration).Err()
}
