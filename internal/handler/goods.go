package handler

import (
	"net/http"
	"strings"

	"iDrone/internal/dto"
	"iDrone/internal/model"
	"iDrone/internal/service"
	"iDrone/internal/upload"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type GoodsHandler interface {
	Get(c *gin.Context)
	Add(c *gin.Context)
	AddCategory(c *gin.Context)
	ListCategories(c *gin.Context)
	List(c *gin.Context)
	Search(c *gin.Context)

	UploadCover(c *gin.Context)
	UploadPreview(c *gin.Context)
	UploadBriefImage(c *gin.Context)
}

// GoodsUploads 商品相关的上传目标，以及简介HTML的存放目录
type GoodsUploads struct {
	Cover      upload.Target
	Preview    upload.Target
	BriefImage upload.Target
	BriefDir   string
}

type goodsHandler struct {
	GoodsService service.GoodsService
	Uploads      GoodsUploads
	PerPage      int
}

func NewGoodsHandler(goodsService service.GoodsService, uploads GoodsUploads, perPage int) GoodsHandler {
	return &goodsHandler{GoodsService: goodsService, Uploads: uploads, PerPage: perPage}
}

type GetGoodsRequest struct {
	ID string `form:"id" binding:"required" msg:"缺少商品ID"`
}

// 数值字段用指针，区分“没传”和“传了0”
type AddGoodsRequest struct {
	Title      string           `json:"title" binding:"required,max=255" msg:"请输入商品标题"`
	Price      *decimal.Decimal `json:"price" binding:"required" msg:"请输入商品价格"`
	Sale       *int             `json:"sale" binding:"required,min=0" msg:"请输入销量"`
	Stock      *int             `json:"stock" binding:"required,min=0" msg:"请输入库存"`
	Freight    *decimal.Decimal `json:"freight" binding:"required" msg:"请输入邮费"`
	Image      string           `json:"image" binding:"required" msg:"请上传封面图片"`
	Previews   string           `json:"previews" binding:"required" msg:"您必须上传至少一张预览图"`
	Brief      string           `json:"brief" binding:"required" msg:"请输入商品简介"`
	CategoryID *string          `json:"category_id"`
}

type AddCategoryRequest struct {
	Title string `json:"title" binding:"required,max=255" msg:"请输入分类名称"`
}

type SearchRequest struct {
	Keyword string `form:"keyword" binding:"required,min=1,max=255" msg:"关键字至少为1个字符且最多输入255个字符"`
	Page    string `form:"page"`
}

func (h *goodsHandler) Get(c *gin.Context) {
	var req GetGoodsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		sendInvalid(c, bindingErrors(&req, err))
		return
	}

	logCtx := logFor(c).WithField("goods_id", req.ID)
	goods, err := h.GoodsService.Get(c.Request.Context(), req.ID)
	if err != nil {
		sendAppError(c, logCtx, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": dto.ToGoodsResponse(goods)})
}

// 添加商品：
// 1、校验参数，分类ID传了就必须存在
// 2、将简介信息（HTML）写入文件
// 3、写入成功，将商品信息持久化到数据库
func (h *goodsHandler) Add(c *gin.Context) {
	var req AddGoodsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendInvalid(c, bindingErrors(&req, err))
		return
	}
	logCtx := logFor(c)
	ctx := c.Request.Context()

	if req.CategoryID != nil {
		exists, err := h.GoodsService.CategoryExists(ctx, *req.CategoryID)
		if err != nil {
			sendAppError(c, logCtx, err)
			return
		}
		if !exists {
			sendInvalid(c, map[string]string{"category_id": "分类信息不存在"})
			return
		}
	}

	brief, err := upload.WriteDocument(h.Uploads.BriefDir, req.Brief)
	if err != nil {
		logCtx.WithError(err).Error("商品简介写入失败")
		sendErrorResponse(c, http.StatusInternalServerError, "简介写入失败")
		return
	}

	goods, err := h.GoodsService.Add(ctx, service.GoodsInput{
		Title:      req.Title,
		Price:      *req.Price,
		Sale:       *req.Sale,
		Stock:      *req.Stock,
		Freight:    *req.Freight,
		Image:      req.Image,
		Previews:   req.Previews,
		Brief:      brief,
		CategoryID: req.CategoryID,
	})
	if err != nil {
		sendAppError(c, logCtx, err)
		return
	}

	logCtx.WithField("goods_id", goods.ID).Info("商品添加成功")
	c.JSON(http.StatusOK, gin.H{
		"message": "添加成功",
		"data":    dto.ToGoodsResponse(goods),
	})
}

// 添加商品分类：分类名去掉首尾空格后不能为空，也不能和已有分类重名
func (h *goodsHandler) AddCategory(c *gin.Context) {
	var req AddCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendInvalid(c, bindingErrors(&req, err))
		return
	}
	title := strings.TrimSpace(req.Title)
	if title == "" {
		sendInvalid(c, map[string]string{"title": "请输入分类名称"})
		return
	}

	logCtx := logFor(c).WithField("title", title)
	ctx := c.Request.Context()
	exists, err := h.GoodsService.CategoryTitleExists(ctx, title)
	if err != nil {
		sendAppError(c, logCtx, err)
		return
	}
	if exists {
		sendInvalid(c, map[string]string{"title": "分类名已存在"})
		return
	}

	category, err := h.GoodsService.AddCategory(ctx, title)
	if err != nil {
		sendAppError(c, logCtx, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "添加成功",
		"data":    dto.ToCategoryResponse(category),
	})
}

func (h *goodsHandler) ListCategories(c *gin.Context) {
	list, err := h.GoodsService.ListCategories(c.Request.Context())
	if err != nil {
		sendAppError(c, logFor(c), err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": dto.ToCategoryList(list)})
}

// 获取列表：请求中含有category_id时只取该分类下的商品，否则按销量倒序
func (h *goodsHandler) List(c *gin.Context) {
	page := parsePage(c.Query("page"))
	logCtx := logFor(c).WithField("page", page)
	ctx := c.Request.Context()

	var (
		list []model.Goods
		err  error
	)
	if categoryID, ok := c.GetQuery("category_id"); ok {
		list, err = h.GoodsService.ListByCategory(ctx, categoryID, page, h.PerPage)
	} else {
		list, err = h.GoodsService.List(ctx, page, h.PerPage)
	}
	if err != nil {
		sendAppError(c, logCtx, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": dto.ToGoodsList(list)})
}

func (h *goodsHandler) Search(c *gin.Context) {
	var req SearchRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		sendInvalid(c, bindingErrors(&req, err))
		return
	}
	page := parsePage(req.Page)
	logCtx := logFor(c).WithField("keyword", req.Keyword)

	list, err := h.GoodsService.Search(c.Request.Context(), req.Keyword, page, h.PerPage)
	if err != nil {
		sendAppError(c, logCtx, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": dto.ToGoodsList(list)})
}

func (h *goodsHandler) UploadCover(c *gin.Context) {
	uploadTo(h.Uploads.Cover, "cover")(c)
}

func (h *goodsHandler) UploadPreview(c *gin.Context) {
	uploadTo(h.Uploads.Preview, "preview")(c)
}

func (h *goodsHandler) UploadBriefImage(c *gin.Context) {
	uploadTo(h.Uploads.BriefImage, "brief_image")(c)
}
