package logger

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"mrmelo_sanctuary/config"
)

// Logger 全局日志记录器
var Logger = slog.New(slog.NewTextHandler(os.Stdout, nil))

// ParseLevel 将配置中的级别字符串转换为slog级别
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// New 根据配置创建slog日志记录器，不修改全局变量
func New(cfg *config.Config) (*slog.Logger, error) {
	filePath := cfg.Log.FilePath

	// 创建日志目录
	if filePath != "" {
		if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
			return nil, err
		}
	}

	// 设置输出目标
	var writer io.Writer
	switch strings.ToLower(cfg.Log.Output) {
	case "file":
		file, err := os.OpenFile(filePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			return nil, err
		}
		writer = file
	case "both":
		file, err := os.OpenFile(filePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			return nil, err
		}
		writer = io.MultiWriter(os.Stdout, file)
	default:
		writer = os.Stdout
	}

	return NewWithWriter(writer, cfg.Log.Format, cfg.Log.Level), nil
}

// NewWithWriter 使用指定的writer创建日志记录器
func NewWithWriter(w io.Writer, format, level string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(level)}

	var handler slog.Handler
	switch strings.ToLower(format) {
	case "json":
		handler = slog.NewJSONHandler(w, opts)
	default:
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}

// Init 使用配置文件初始化全局日志系统
func Init(cfg *config.Config) error {
	l, err := New(cfg)
	if err != nil {
		return err
	}
	Logger = l
	slog.SetDefault(Logger)
	return nil
}

// Component 返回带组件名的子日志记录器
func Component(name string) *slog.Logger {
	return Logger.With("component", name)
}

// Debug 记录调试级别的日志
func Debug(msg string, args ...any) {
	Logger.Debug(msg, args...)
}

// Info 记录信息级别的日志
func Info(msg string, args ...any) {
	Logger.Info(msg, args...)
}

// Warn 记录警告级别的日志
func Warn(msg string, args ...any) {
	Logger.Warn(msg, args...)
}

// Error 记录错误级别的日志
func Error(msg string, args ...any) {
	Logger.Error(msg, args...)
}
