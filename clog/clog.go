package clog

import (
	"fmt"
	"sync"
)

// New 创建一个新的 Logger 实例
//
// config - 日志配置，如果为 nil 会使用默认配置
// opts   - 函数式选项列表，用于命名空间、输出 writer 等配置
func New(config *Config, opts ...Option) (Logger, error) {
	if config == nil {
		config = DefaultConfig()
	}

	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return newLogger(config, applyOptions(opts...))
}

var (
	defaultOnce   sync.Once
	defaultLogger Logger
)

// Default 返回进程级默认 Logger（console 格式，输出到 stdout），
// 适合示例和小工具直接使用。
//
// 库内组件未显式注入 Logger 时默认静默（Discard），需要日志输出
// 的场景通过各组件的 WithLogger 选项注入。
func Default() Logger {
	defaultOnce.Do(func() {
		logger, err := New(DefaultConfig())
		if err != nil {
			logger = Discard()
		}
		defaultLogger = logger
	})
	return defaultLogger
}
