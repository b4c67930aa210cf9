package idgen

import (
	"github.com/snowkit/snowid/clog"
	"github.com/snowkit/snowid/metrics"
)

// SnowflakeOption 生成器初始化选项函数
type SnowflakeOption func(*snowflakeOptions)

// snowflakeOptions 生成器初始化选项配置
type snowflakeOptions struct {
	logger   clog.Logger
	meter    metrics.Meter
	now      func() int64
	resolver func() int64
}

// WithLogger 设置 Logger
func WithLogger(logger clog.Logger) SnowflakeOption {
	return func(o *snowflakeOptions) {
		o.logger = logger
	}
}

// WithMeter 设置 Meter，用于上报生成计数、时钟回拨计数与序列号等待耗时
func WithMeter(meter metrics.Meter) SnowflakeOption {
	return func(o *snowflakeOptions) {
		o.meter = meter
	}
}

// WithClock 设置毫秒时钟源，默认为 time.Now().UnixMilli
//
// 主要用于测试注入可控时钟，驱动序列号翻转与时钟回拨分支。
func WithClock(now func() int64) SnowflakeOption {
	return func(o *snowflakeOptions) {
		if now != nil {
			o.now = now
		}
	}
}

// WithDataCenterResolver 设置默认数据中心 ID 的解析函数，
// 默认为 ResolveDefaultDataCenterID
//
// 仅对 NewSnowflakeWithDefaultDataCenter 生效，测试可借此避免真实的
// 网络地址查询。
func WithDataCenterResolver(resolver func() int64) SnowflakeOption {
	return func(o *snowflakeOptions) {
		if resolver != nil {
			o.resolver = resolver
		}
	}
}

// applySnowflakeOptions 应用所有选项并补齐默认值（内部使用）
func applySnowflakeOptions(opts ...SnowflakeOption) *snowflakeOptions {
	o := &snowflakeOptions{
		logger:   clog.Discard(),
		meter:    metrics.Noop(),
		now:      defaultClock,
		resolver: ResolveDefaultDataCenterID,
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = clog.Discard()
	}
	if o.meter == nil {
		o.meter = metrics.Noop()
	}
	return o
}
