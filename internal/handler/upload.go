package handler

import (
	"net/http"

	"iDrone/internal/upload"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// saveUpload 保存表单里的单个文件：缺文件或扩展名不允许返回422，超过大小返回413，IO失败返回500
func saveUpload(c *gin.Context, logCtx *logrus.Entry, target upload.Target, field string) (string, bool) {
	file, err := c.FormFile(field)
	if err != nil {
		sendInvalid(c, map[string]string{field: "请上传文件"})
		return "", false
	}

	result, err := target.Save(file)
	if err != nil {
		logCtx.WithError(err).WithField("target", target.Name).Error("上传文件保存失败")
		sendErrorResponse(c, http.StatusInternalServerError, "上传出错")
		return "", false
	}
	if !result.Accepted {
		logCtx.WithField("target", target.Name).WithField("reason", result.Reason).Warn("上传文件被拒绝")
		if result.Reason == upload.ReasonSize {
			sendErrorResponse(c, http.StatusRequestEntityTooLarge, "文件过大")
		} else {
			sendInvalid(c, map[string]string{field: "不支持的文件类型"})
		}
		return "", false
	}

	logCtx.WithField("target", target.Name).WithField("filename", result.Filename).Info("文件上传成功")
	return result.Filename, true
}

// uploadTo 只上传文件、返回文件名的接口
func uploadTo(target upload.Target, field string) gin.HandlerFunc {
	return func(c *gin.Context) {
		logCtx := logFor(c)
		filename, ok := saveUpload(c, logCtx, target, field)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, gin.H{"filename": filename})
	}
}
