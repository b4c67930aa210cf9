package idgen

import "github.com/snowkit/snowid/metrics"

// 指标常量定义
const (
	// MetricSnowflakeGenerated 雪花算法 ID 生成总数 (Counter)
	MetricSnowflakeGenerated = "idgen_snowflake_generated_total"

	// MetricClockRollback 时钟回拨拒绝次数 (Counter)
	MetricClockRollback = "idgen_clock_rollback_total"

	// MetricSequenceWait 序列号耗尽时的自旋等待耗时 (Histogram, 秒)
	MetricSequenceWait = "idgen_sequence_wait_seconds"
)

// setupMetrics 从 Meter 创建生成器使用的指标（内部使用）
//
// 指标创建失败不影响生成器工作，降级为 noop。
func (s *Snowflake) setupMetrics(meter metrics.Meter) {
	noop := metrics.Noop()

	generated, err := meter.Counter(MetricSnowflakeGenerated, "雪花算法 ID 生成总数")
	if err != nil {
		generated, _ = noop.Counter(MetricSnowflakeGenerated, "")
	}
	s.generatedCounter = generated

	rollback, err := meter.Counter(MetricClockRollback, "时钟回拨拒绝次数")
	if err != nil {
		rollback, _ = noop.Counter(MetricClockRollback, "")
	}
	s.rollbackCounter = rollback

	wait, err := meter.Histogram(MetricSequenceWait, "序列号耗尽时的自旋等待耗时", metrics.WithUnit("s"))
	if err != nil {
		wait, _ = noop.Histogram(MetricSequenceWait, "")
	}
	s.waitHistogram = wait
}
