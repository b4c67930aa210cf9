package clog

import (
	"context"
	"log/slog"
	"os"
	"runtime"
	"strings"
	"time"
)

// NamespaceKey 是日志中命名空间的字段名
const NamespaceKey = "namespace"

// loggerImpl 是 Logger 接口的具体实现
type loggerImpl struct {
	handler        slog.Handler
	config         *Config
	namespaceParts []string
	baseAttrs      []slog.Attr
}

// newLogger 创建 Logger 实例（内部使用）
func newLogger(config *Config, options *options) (Logger, error) {
	handler, err := newHandler(config, options)
	if err != nil {
		return nil, err
	}

	return &loggerImpl{
		handler:        handler,
		config:         config,
		namespaceParts: options.namespaceParts,
	}, nil
}

func (l *loggerImpl) Debug(msg string, fields ...Field) {
	l.log(DebugLevel, msg, fields...)
}

func (l *loggerImpl) Info(msg string, fields ...Field) {
	l.log(InfoLevel, msg, fields...)
}

func (l *loggerImpl) Warn(msg string, fields ...Field) {
	l.log(WarnLevel, msg, fields...)
}

func (l *loggerImpl) Error(msg string, fields ...Field) {
	l.log(ErrorLevel, msg, fields...)
}

func (l *loggerImpl) Fatal(msg string, fields ...Field) {
	l.log(FatalLevel, msg, fields...)
}

func (l *loggerImpl) With(fields ...Field) Logger {
	return &loggerImpl{
		handler:        l.handler,
		config:         l.config,
		namespaceParts: l.namespaceParts,
		baseAttrs:      append(l.baseAttrs[:len(l.baseAttrs):len(l.baseAttrs)], fields...),
	}
}

func (l *loggerImpl) WithNamespace(parts ...string) Logger {
	ns := l.namespaceParts[:len(l.namespaceParts):len(l.namespaceParts)]
	return &loggerImpl{
		handler:        l.handler,
		config:         l.config,
		namespaceParts: append(ns, parts...),
		baseAttrs:      l.baseAttrs,
	}
}

// log 构造 slog.Record 并交给 handler 处理（内部方法）
func (l *loggerImpl) log(level Level, msg string, fields ...Field) {
	ctx := context.Background()
	slogLevel := level.toSlogLevel()

	if !l.handler.Enabled(ctx, slogLevel) {
		return
	}

	attrs := make([]slog.Attr, 0, len(l.baseAttrs)+len(fields)+1)
	attrs = append(attrs, l.baseAttrs...)
	attrs = append(attrs, fields...)
	if ns := strings.Join(l.namespaceParts, "."); ns != "" {
		attrs = append(attrs, slog.String(NamespaceKey, ns))
	}

	// 获取正确的程序计数器(PC)值，用于准确的源码位置
	var pcs [1]uintptr
	runtime.Callers(3, pcs[:]) // skip: runtime.Callers, logger.log, Debug/Info 等
	record := slog.NewRecord(time.Now(), slogLevel, msg, pcs[0])
	record.AddAttrs(attrs...)

	_ = l.handler.Handle(ctx, record)

	if level == FatalLevel {
		os.Exit(1)
	}
}

// SetLevel 动态调整日志级别
func (l *loggerImpl) SetLevel(level Level) error {
	if h, ok := l.handler.(interface{ SetLevel(Level) error }); ok {
		return h.SetLevel(level)
	}
	return nil
}

// Flush 强制同步所有缓冲区的日志 (slog 默认是同步的，这里留空)
func (l *loggerImpl) Flush() {}
