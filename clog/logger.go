// Package clog 提供基于 slog 的结构化日志组件。
//
// 特性：
//   - 抽象接口，不暴露底层实现（slog）
//   - 支持层级命名空间，方便区分组件来源
//   - 零外部依赖（仅依赖 Go 标准库）
//   - 采用函数式选项模式
//
// 基本使用：
//
//	logger, _ := clog.New(&clog.Config{
//	    Level:  "info",
//	    Format: "console",
//	    Output: "stdout",
//	})
//	logger.Info("generator ready", clog.Int64("machine_id", 7))
//
// 创建子 Logger：
//
//	child := logger.With(clog.String("component", "idgen"))
//	child.Warn("clock moved backwards")
package clog

// Logger 日志接口，提供结构化日志记录功能
//
// 支持五个日志级别：Debug、Info、Warn、Error、Fatal。
// Fatal 记录日志后会终止进程。
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)
	Fatal(msg string, fields ...Field)

	// With 创建一个带有预设字段的子 Logger
	//
	// 预设的字段会出现在所有日志中。
	//
	// 示例：
	//   logger := logger.With(clog.String("component", "idgen"))
	With(fields ...Field) Logger

	// WithNamespace 创建一个扩展命名空间的子 Logger
	//
	// 命名空间以 "." 连接，作为日志中的 namespace 字段。
	WithNamespace(parts ...string) Logger

	// SetLevel 动态调整日志级别，不需要重新创建 Logger。
	SetLevel(level Level) error

	// Flush 强制同步所有缓冲区的日志。
	Flush()
}
