package handler

import (
	"net/http"

	"iDrone/internal/dto"
	"iDrone/internal/model"
	"iDrone/internal/service"
	"iDrone/internal/upload"

	"github.com/gin-gonic/gin"
)

type VideoHandler interface {
	Add(c *gin.Context)
	Get(c *gin.Context)
	List(c *gin.Context)
	Search(c *gin.Context)

	UploadVideo(c *gin.Context)
	UploadCover(c *gin.Context)
}

type videoHandler struct {
	VideoService service.VideoService
	VideoTarget  upload.Target
	CoverTarget  upload.Target
	PerPage      int
}

func NewVideoHandler(videoService service.VideoService, videoTarget, coverTarget upload.Target, perPage int) VideoHandler {
	return &videoHandler{
		VideoService: videoService,
		VideoTarget:  videoTarget,
		CoverTarget:  coverTarget,
		PerPage:      perPage,
	}
}

// source/cover 是先调用上传接口拿到的文件名
type AddVideoRequest struct {
	Title  string `json:"title" binding:"required,max=255" msg:"请输入视频标题"`
	Source string `json:"source" binding:"required" msg:"请上传视频"`
	Cover  string `json:"cover" binding:"required" msg:"请上传封面"`
}

type GetVideoRequest struct {
	ID string `form:"id" binding:"required" msg:"缺少视频ID"`
}

// 发布视频：1、校验请求体 2、session中取出上传者ID 3、service层写库，返回dto
func (h *videoHandler) Add(c *gin.Context) {
	s, ok := currentSession(c)
	if !ok {
		return
	}
	var req AddVideoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendInvalid(c, bindingErrors(&req, err))
		return
	}

	// 蛇形命名法（日志聚合平台ELK、前端JavaScript）
	logCtx := logFor(c)
	logCtx.Info("开始处理发布视频请求")

	video, err := h.VideoService.Add(c.Request.Context(), req.Title, req.Source, req.Cover, s.UserID)
	if err != nil {
		sendAppError(c, logCtx, err)
		return
	}
	// 没有赋值，临时追加上下文，避免污染后续其他日志
	logCtx.WithField("video_id", video.ID).Info("视频发布成功")

	c.JSON(http.StatusOK, gin.H{
		"message": "视频发布成功",
		"data":    dto.ToVideoResponse(video),
	})
}

func (h *videoHandler) Get(c *gin.Context) {
	var req GetVideoRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		sendInvalid(c, bindingErrors(&req, err))
		return
	}

	logCtx := logFor(c).WithField("video_id", req.ID)
	video, err := h.VideoService.Get(c.Request.Context(), req.ID)
	if err != nil {
		sendAppError(c, logCtx, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": dto.ToVideoResponse(video)})
}

// 获取视频列表：带user_id时只取该用户上传的视频
func (h *videoHandler) List(c *gin.Context) {
	page := parsePage(c.Query("page"))
	logCtx := logFor(c).WithField("page", page)
	ctx := c.Request.Context()

	var (
		videos []model.Video
		err    error
	)
	if userID, ok := c.GetQuery("user_id"); ok {
		videos, err = h.VideoService.ListByUser(ctx, userID, page, h.PerPage)
	} else {
		videos, err = h.VideoService.List(ctx, page, h.PerPage)
	}
	if err != nil {
		sendAppError(c, logCtx, err)
		return
	}

	logCtx.WithField("count", len(videos)).Info("成功获取视频列表")
	c.JSON(http.StatusOK, gin.H{"data": dto.ToVideoList(videos)})
}

func (h *videoHandler) Search(c *gin.Context) {
	var req SearchRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		sendInvalid(c, bindingErrors(&req, err))
		return
	}
	page := parsePage(req.Page)
	logCtx := logFor(c).WithField("keyword", req.Keyword)

	videos, err := h.VideoService.Search(c.Request.Context(), req.Keyword, page, h.PerPage)
	if err != nil {
		sendAppError(c, logCtx, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": dto.ToVideoList(videos)})
}

func (h *videoHandler) UploadVideo(c *gin.Context) {
	uploadTo(h.VideoTarget, "video")(c)
}

func (h *videoHandler) UploadCover(c *gin.Context) {
	uploadTo(h.CoverTarget, "cover")(c)
}
