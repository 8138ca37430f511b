package upload

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

// 拒绝原因
const (
	ReasonExtension = "extension"
	ReasonSize      = "size"
)

// Target 一个上传目标：目录、允许的扩展名、大小上限（字节）
type Target struct {
	Name       string
	Dir        string
	AllowedExt []string
	MaxSize    int64
}

// Result 上传结果，被拒绝时 Accepted 为 false 并给出原因，不会悄悄丢掉文件
type Result struct {
	Accepted bool
	Filename string
	Reason   string
}

// Check 只校验扩展名和大小，不落盘
func (t Target) Check(file *multipart.FileHeader) Result {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	allowed := lo.Map(t.AllowedExt, func(e string, _ int) string { return strings.ToLower(e) })
	if !lo.Contains(allowed, ext) {
		return Result{Reason: ReasonExtension}
	}
	if t.MaxSize > 0 && file.Size > t.MaxSize {
		return Result{Reason: ReasonSize}
	}
	return Result{Accepted: true}
}

// Save 保存上传文件：1、校验扩展名和大小 2、确保目录存在 3、以UUID为文件名写入目录
// 被拒绝时返回的 error 为 nil，只有IO失败才返回 error
func (t Target) Save(file *multipart.FileHeader) (Result, error) {
	result := t.Check(file)
	if !result.Accepted {
		return result, nil
	}

	src, err := file.Open()
	if err != nil {
		return Result{}, fmt.Errorf("打开上传文件失败: %w", err)
	}
	defer src.Close()

	filename, err := write(t.Dir, src)
	if err != nil {
		return Result{}, err
	}
	return Result{Accepted: true, Filename: filename}, nil
}

// WriteDocument 把文本内容写入目录，文件名为新的UUID（商品简介HTML）
func WriteDocument(dir, content string) (string, error) {
	return write(dir, strings.NewReader(content))
}

func write(dir string, src io.Reader) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("创建上传目录失败: %w", err)
	}
	filename := uuid.NewString()
	dst, err := os.Create(filepath.Join(dir, filename))
	if err != nil {
		return "", fmt.Errorf("创建文件失败: %w", err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return "", fmt.Errorf("写入文件失败: %w", err)
	}
	if err := dst.Close(); err != nil {
		return "", fmt.Errorf("写入文件失败: %w", err)
	}
	return filename, nil
}
