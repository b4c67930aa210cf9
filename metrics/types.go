// Package metrics 提供统一的指标收集能力。
// 基于 OpenTelemetry 标准构建，提供简洁的 Counter、Histogram 指标接口。
//
// 快速开始：
//
//	cfg := &metrics.Config{
//	    Enabled:     true,
//	    ServiceName: "snowid",
//	    Version:     "v1.0.0",
//	    Port:        9090,
//	    Path:        "/metrics",
//	}
//
//	meter, err := metrics.New(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer meter.Shutdown(ctx)
//
//	counter, _ := meter.Counter("ids_generated_total", "生成的 ID 总数")
//	counter.Inc(ctx, metrics.L("mode", "snowflake"))
package metrics

import "context"

// Counter 计数器接口
// 用于记录只能增加的累计值，例如生成的 ID 数、错误次数等
//
// 使用示例：
//
//	counter, _ := meter.Counter("ids_generated_total", "生成的 ID 总数")
//	counter.Inc(ctx, metrics.L("mode", "snowflake"))
//	counter.Add(ctx, 5, metrics.L("mode", "snowflake"))
type Counter interface {
	// Inc 将计数器增加 1
	Inc(ctx context.Context, labels ...Label)

	// Add 将计数器增加给定的值
	// val 按整数累加，小数部分被截断
	// 注意：如果传入负数，大部分监控系统会忽略或报错
	Add(ctx context.Context, val float64, labels ...Label)
}

// Histogram 直方图接口
// 用于记录值的分布情况，例如等待耗时、延迟分布等
// 直方图会自动计算分位数（如 P95、P99）和总计数值
//
// 使用示例：
//
//	histogram, _ := meter.Histogram(
//	    "sequence_wait_seconds",
//	    "序列号耗尽时的等待耗时",
//	    metrics.WithUnit("s"),
//	)
//	histogram.Record(ctx, 0.0008, metrics.L("mode", "snowflake"))
type Histogram interface {
	// Record 在直方图中记录一个值
	Record(ctx context.Context, val float64, labels ...Label)
}

// Meter 指标创建工厂接口
// 是所有指标类型的创建入口，负责管理指标的生命周期
//
// 一个 Meter 实例通常对应一个服务。Meter 创建的指标是线程安全的，
// 可以在多个 goroutine 中并发使用。
type Meter interface {
	// Counter 创建计数器实例
	//
	// name 应该符合 Prometheus 命名规范（如：ids_generated_total）
	Counter(name string, desc string, opts ...MetricOption) (Counter, error)

	// Histogram 创建直方图实例
	Histogram(name string, desc string, opts ...MetricOption) (Histogram, error)

	// Shutdown 关闭 Meter，刷新所有指标
	// 通常在应用程序退出时调用
	Shutdown(ctx context.Context) error
}

// MetricOption 指标配置选项函数类型
type MetricOption func(*MetricOptions)

// MetricOptions 指标选项结构体
type MetricOptions struct {
	// Unit 指标的单位，例如 "bytes"、"seconds"
	// 建议使用 UCUM 单位代码：https://unitsofmeasure.org/ucum.html
	Unit string
}

// WithUnit 设置指标的单位
//
// 使用示例：
//
//	histogram, _ := meter.Histogram(
//	    "sequence_wait_seconds",
//	    "等待耗时",
//	    metrics.WithUnit("s"),
//	)
func WithUnit(unit string) MetricOption {
	return func(o *MetricOptions) {
		o.Unit = unit
	}
}
