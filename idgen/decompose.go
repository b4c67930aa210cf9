package idgen

import "time"

// IDParts 表示一个雪花 ID 拆解后的四个字段
type IDParts struct {
	// Timestamp 生成时刻的毫秒时间戳（已还原纪元偏移）
	Timestamp int64

	// DataCenterID 数据中心 ID [0, 31]
	DataCenterID int64

	// MachineID 机器 ID [0, 31]
	MachineID int64

	// Sequence 毫秒内序列号 [0, 4095]
	Sequence int64
}

// Decompose 将雪花 ID 拆解为各个字段
//
// 使用示例:
//
//	parts := idgen.Decompose(id)
//	fmt.Println(parts.MachineID, parts.Time())
func Decompose(id int64) IDParts {
	return IDParts{
		Timestamp:    (id >> timestampShift) + epoch,
		DataCenterID: (id >> dataCenterShift) & MaxDataCenterID,
		MachineID:    (id >> machineIDShift) & MaxMachineID,
		Sequence:     id & MaxSequence,
	}
}

// Time 返回 ID 的生成时间
func (p IDParts) Time() time.Time {
	return time.UnixMilli(p.Timestamp)
}
