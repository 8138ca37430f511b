package service

import (
	"context"
	"fmt"
	"time"

	"iDrone/internal/apperr"
	"iDrone/internal/model"
	"iDrone/internal/repository"
	"iDrone/pkg/logger"

	"golang.org/x/sync/singleflight"
)

type VideoService interface {
	Add(ctx context.Context, title, source, cover, uploaderID string) (*model.Video, error)
	Get(ctx context.Context, videoID string) (*model.Video, error)
	List(ctx context.Context, page, perPage int) ([]model.Video, error)
	ListByUser(ctx context.Context, userID string, page, perPage int) ([]model.Video, error)
	Search(ctx context.Context, keyword string, page, perPage int) ([]model.Video, error)
}

type videoService struct {
	sf singleflight.Group

	videoRepo repository.VideoRepository
}

func NewVideoService(videoRepo repository.VideoRepository) VideoService {
	return &videoService{
		videoRepo: videoRepo,
	}
}

func (s *videoService) Add(ctx context.Context, title, source, cover, uploaderID string) (*model.Video, error) {
	video := &model.Video{
		Title:    title,
		Source:   source,
		Cover:    cover,
		UploadAt: time.Now(),
		UserID:   uploaderID,
	}
	if err := s.videoRepo.Create(ctx, video); err != nil {
		return nil, apperr.Storage(err)
	}
	return video, nil
}

// 根据videoID查找视频：1、查找Redis缓存 2、未命中时通过SingleFlight合并并发的数据库查找 3、写回缓存
func (s *videoService) Get(ctx context.Context, videoID string) (*model.Video, error) {
	logCtx := logger.Log.WithField("video_id", videoID)

	video, err := s.videoRepo.GetVideoCache(ctx, videoID)
	if err == nil && video != nil {
		return video, nil
	}
	// Redis本身出错时降级查库
	if err != nil {
		logCtx.WithError(err).Warn("读取视频缓存失败")
	}

	key := fmt.Sprintf("get_video_%s", videoID)
	result, err, _ := s.sf.Do(key, func() (interface{}, error) {
		dbVideo, dbErr := s.videoRepo.FindByID(ctx, videoID)
		if dbErr != nil {
			return nil, dbErr
		}
		if cacheErr := s.videoRepo.SetVideoCache(ctx, dbVideo); cacheErr != nil {
			logCtx.WithError(cacheErr).Warn("写入视频缓存失败")
		}
		return dbVideo, nil
	})
	if err != nil {
		return nil, notFoundOr(err, "视频不存在")
	}
	// 返回值是interface{}结构，需要断言
	return result.(*model.Video), nil
}

func (s *videoService) List(ctx context.Context, page, perPage int) ([]model.Video, error) {
	videos, err := s.videoRepo.List(ctx, page, perPage)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	return videos, nil
}

func (s *videoService) ListByUser(ctx context.Context, userID string, page, perPage int) ([]model.Video, error) {
	videos, err := s.videoRepo.ListByUser(ctx, userID, page, perPage)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	return videos, nil
}

func (s *videoService) Search(ctx context.Context, keyword string, page, perPage int) ([]model.Video, error) {
	videos, err := s.videoRepo.Search(ctx, keyword, page, perPage)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	return videos, nil
}
