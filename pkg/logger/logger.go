package logger

import (
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Log 是一个全局的、配置好的 logrus 实例，未初始化前也可以直接使用（测试场景）
var Log = logrus.New()

// Options 日志配置
type Options struct {
	Level      string
	Dir        string
	Filename   string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// InitLogger 初始化全局的Logger实例
func InitLogger(opts Options) {
	Log = logrus.New()

	// 1. 设置日志格式为JSON，结构化日志便于ELK、Loki等工具分析
	Log.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: "2006-01-02 15:04:05",
	})

	// 2. 日志同时输出到控制台和滚动文件
	filename := opts.Filename
	if filename == "" {
		filename = "idrone.log"
	}
	rotate := &lumberjack.Logger{
		Filename:   filepath.Join(opts.Dir, filename),
		MaxSize:    opts.MaxSizeMB,
		MaxBackups: opts.MaxBackups,
		MaxAge:     opts.MaxAgeDays,
		Compress:   opts.Compress,
	}
	Log.SetOutput(io.MultiWriter(os.Stdout, rotate))

	// 3. 设置日志级别，解析失败时退回Info
	level, err := logrus.ParseLevel(opts.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	Log.SetLevel(level)
}
