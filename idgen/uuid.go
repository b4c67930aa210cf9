package idgen

import "github.com/google/uuid"

// UUID 生成 UUID v7 字符串（时间排序）
//
// 雪花 ID 之外的便捷选择，适合作为数据库主键。
//
// 使用示例:
//
//	uid := idgen.UUID()
func UUID() string {
	return NewUUIDV7()
}

// NewUUIDV7 生成 UUID v7 (时间排序)
func NewUUIDV7() string {
	v7, _ := uuid.NewV7()
	return v7.String()
}

// NewUUIDV4 生成 UUID v4 (随机)
// 适用于不需要时间排序的场景
func NewUUIDV4() string {
	return uuid.New().String()
}
