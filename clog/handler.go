package clog

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// clogHandler 封装 slog.Handler，提供动态级别能力。
type clogHandler struct {
	slog.Handler
	levelVar *slog.LevelVar
}

// newHandler 创建并返回一个适配 clog 配置的 slog.Handler（内部使用）。
//
// 构造顺序：writer -> handler options -> base handler -> wrapper。
func newHandler(config *Config, options *options) (slog.Handler, error) {
	w, err := resolveWriter(config, options)
	if err != nil {
		return nil, err
	}

	level, err := ParseLevel(config.Level)
	if err != nil {
		return nil, err
	}
	levelVar := new(slog.LevelVar)
	levelVar.Set(level.toSlogLevel())

	opts := &slog.HandlerOptions{
		AddSource:   config.AddSource,
		Level:       levelVar,
		ReplaceAttr: replaceAttr,
	}

	var handler slog.Handler
	if strings.ToLower(config.Format) == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	return &clogHandler{Handler: handler, levelVar: levelVar}, nil
}

// resolveWriter 根据配置创建输出 writer。
func resolveWriter(config *Config, options *options) (io.Writer, error) {
	if options.writer != nil {
		return options.writer, nil
	}
	switch strings.ToLower(config.Output) {
	case "stdout":
		return os.Stdout, nil
	case "stderr":
		return os.Stderr, nil
	default:
		f, err := os.OpenFile(config.Output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			return nil, err
		}
		return f, nil
	}
}

// replaceAttr 统一处理 Level/Time 字段的输出形式。
func replaceAttr(groups []string, a slog.Attr) slog.Attr {
	switch a.Key {
	case slog.LevelKey:
		level := a.Value.Any().(slog.Level)
		var levelStr string
		switch {
		case level <= slog.LevelDebug:
			levelStr = "DEBUG"
		case level <= slog.LevelInfo:
			levelStr = "INFO"
		case level <= slog.LevelWarn:
			levelStr = "WARN"
		case level <= slog.LevelError:
			levelStr = "ERROR"
		default:
			levelStr = "FATAL"
		}
		a.Value = slog.StringValue(levelStr)
	case slog.TimeKey:
		if a.Value.Kind() == slog.KindTime {
			a.Value = slog.StringValue(a.Value.Time().Format(timeFormat))
		}
	case slog.SourceKey:
		if source, ok := a.Value.Any().(*slog.Source); ok {
			return slog.String("caller", fmt.Sprintf("%s:%d", source.File, source.Line))
		}
	}
	return a
}

// SetLevel 动态调整日志级别。
func (h *clogHandler) SetLevel(level Level) error {
	h.levelVar.Set(level.toSlogLevel())
	return nil
}
