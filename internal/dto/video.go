package dto

import (
	"time"

	"iDrone/internal/model"

	"github.com/samber/lo"
)

type VideoResponse struct {
	ID       string    `json:"id"`
	Title    string    `json:"title"`
	Source   string    `json:"source"`
	Cover    string    `json:"cover"`
	UploadAt time.Time `json:"upload_at"`
	User     UserInfo  `json:"user"`
}

// ToVideoResponse 是一个转换函数，把DB模型转换为API响应模型，并且正确利用preload返回的数据
func ToVideoResponse(video *model.Video) VideoResponse {
	resp := VideoResponse{
		ID:       video.ID,
		Title:    video.Title,
		Source:   video.Source,
		Cover:    video.Cover,
		UploadAt: video.UploadAt,
	}
	// 检查User是否被成功preload
	if video.User != nil {
		resp.User = ToUserInfo(video.User)
	} else {
		// 如果没有preload，就返回video结构体本身的
		resp.User.ID = video.UserID
	}
	return resp
}

func ToVideoList(list []model.Video) []VideoResponse {
	return lo.Map(list, func(v model.Video, _ int) VideoResponse {
		return ToVideoResponse(&v)
	})
}
