// Package idgen 提供进程内的分布式唯一 ID 生成能力。
//
// 核心是雪花算法生成器：64 位整数由 41 位时间戳偏移、5 位数据中心 ID、
// 5 位机器 ID 和 12 位毫秒内序列号组成。同一进程内的多个调用方可以并发
// 调用同一个生成器实例；不同实例之间只要 (dataCenterID, machineID) 不同
// 就无需任何协调。
//
// 使用示例：
//
//	// 显式指定数据中心
//	sf, _ := idgen.NewSnowflake(1, 2)
//	id, _ := sf.NextID()
//
//	// 从本机 IP 推导数据中心（有碰撞可能，见 ResolveDefaultDataCenterID）
//	sf, _ := idgen.NewSnowflakeWithDefaultDataCenter(2,
//	    idgen.WithLogger(logger),
//	)
package idgen

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/snowkit/snowid/clog"
	"github.com/snowkit/snowid/metrics"
	"github.com/snowkit/snowid/xerrors"
)

const (
	// epoch 自定义纪元 2020-05-03 00:05:03 UTC+8
	// 固定不变，41 位时间戳字段可用到 2089 年
	epoch int64 = 1588435503000

	// 每一部分占用的位数
	sequenceBits   = 12
	machineIDBits  = 5
	dataCenterBits = 5

	// 每一部分向左的位移
	machineIDShift  = sequenceBits
	dataCenterShift = sequenceBits + machineIDBits
	timestampShift  = sequenceBits + machineIDBits + dataCenterBits
)

// 每一部分的最大值
const (
	MaxDataCenterID int64 = -1 ^ (-1 << dataCenterBits) // 31
	MaxMachineID    int64 = -1 ^ (-1 << machineIDBits)  // 31
	MaxSequence     int64 = -1 ^ (-1 << sequenceBits)   // 4095
)

// Snowflake 雪花算法生成器
//
// 内部状态由互斥锁保护，一个实例可被任意多个 goroutine 并发使用。
// 同一毫秒内序列号耗尽时自旋等待时钟前进；时钟回拨时立即返回
// ErrClockRolledBack，由调用方决定重试、告警还是终止。
type Snowflake struct {
	mu           sync.Mutex
	dataCenterID int64
	machineID    int64
	sequence     int64
	lastTime     int64

	now    func() int64
	logger clog.Logger

	generatedCounter metrics.Counter
	rollbackCounter  metrics.Counter
	waitHistogram    metrics.Histogram
}

// NewSnowflake 创建 Snowflake 生成器
//
// 参数:
//   - dataCenterID: 数据中心 ID [0, 31]
//   - machineID: 机器 ID [0, 31]
//   - opts: 可选参数 (Logger, Meter, Clock)
//
// dataCenterID 或 machineID 超出范围时返回 ErrInvalidConfiguration。
func NewSnowflake(dataCenterID, machineID int64, opts ...SnowflakeOption) (*Snowflake, error) {
	if dataCenterID < 0 || dataCenterID > MaxDataCenterID {
		return nil, xerrors.WithCode(ErrInvalidConfiguration, "data_center_id_out_of_range")
	}
	if machineID < 0 || machineID > MaxMachineID {
		return nil, xerrors.WithCode(ErrInvalidConfiguration, "machine_id_out_of_range")
	}

	opt := applySnowflakeOptions(opts...)

	sf := &Snowflake{
		dataCenterID: dataCenterID,
		machineID:    machineID,
		now:          opt.now,
		logger:       opt.logger.With(clog.String("component", "idgen")),
	}
	sf.setupMetrics(opt.meter)

	sf.logger.Info("snowflake generator created",
		clog.Int64("data_center_id", dataCenterID),
		clog.Int64("machine_id", machineID),
	)

	return sf, nil
}

// NewSnowflakeWithDefaultDataCenter 创建 Snowflake 生成器，数据中心 ID
// 在构造时通过解析器推导（默认 ResolveDefaultDataCenterID）
//
// 推导结果存在与其他实例碰撞的可能，需要保证唯一性的部署必须改用
// NewSnowflake 显式指定 dataCenterID。
func NewSnowflakeWithDefaultDataCenter(machineID int64, opts ...SnowflakeOption) (*Snowflake, error) {
	opt := applySnowflakeOptions(opts...)
	return NewSnowflake(opt.resolver(), machineID, opts...)
}

// NextID 生成下一个 ID
//
// 并发调用之间由互斥锁串行化。可能阻塞的两种情况：等待锁、同一毫秒内
// 4096 个序列号耗尽后的自旋等待（实际上界约 1ms）。
//
// 时钟回拨时立即返回 ErrClockRolledBack，内部不做重试。
func (s *Snowflake) NextID() (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()

	if now < s.lastTime {
		drift := s.lastTime - now
		s.rollbackCounter.Inc(context.Background())
		s.logger.Warn("clock moved backwards",
			clog.Int64("drift_ms", drift),
			clog.Int64("last_time_ms", s.lastTime),
		)
		return 0, xerrors.Wrapf(ErrClockRolledBack, "drift: %dms", drift)
	}

	if now == s.lastTime {
		s.sequence = (s.sequence + 1) & MaxSequence
		if s.sequence == 0 {
			// 序列号溢出，自旋等待下一毫秒
			waitStart := time.Now()
			for now <= s.lastTime {
				now = s.now()
			}
			s.waitHistogram.Record(context.Background(), time.Since(waitStart).Seconds())
		}
	} else {
		s.sequence = 0
	}

	s.lastTime = now

	id := (now-epoch)<<timestampShift |
		s.dataCenterID<<dataCenterShift |
		s.machineID<<machineIDShift |
		s.sequence

	s.generatedCounter.Inc(context.Background())
	return id, nil
}

// NextString 生成下一个 ID 的十进制字符串形式
func (s *Snowflake) NextString() (string, error) {
	id, err := s.NextID()
	if err != nil {
		return "", err
	}
	return strconv.FormatInt(id, 10), nil
}

// DataCenterID 返回该生成器的数据中心 ID
func (s *Snowflake) DataCenterID() int64 {
	return s.dataCenterID
}

// MachineID 返回该生成器的机器 ID
func (s *Snowflake) MachineID() int64 {
	return s.machineID
}

// defaultClock 读取当前毫秒时间戳
func defaultClock() int64 {
	return time.Now().UnixMilli()
}
