package idgen

import "testing"

// ========================================
// Snowflake Benchmark
// ========================================

func BenchmarkSnowflake_NextID(b *testing.B) {
	sf, _ := NewSnowflake(1, 1)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		sf.NextID()
	}
}

func BenchmarkSnowflake_NextID_Parallel(b *testing.B) {
	sf, _ := NewSnowflake(1, 1)
	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			sf.NextID()
		}
	})
}

func BenchmarkSnowflake_NextString(b *testing.B) {
	sf, _ := NewSnowflake(1, 1)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		sf.NextString()
	}
}

// ========================================
// UUID Benchmark
// ========================================

func BenchmarkUUID(b *testing.B) {
	for i := 0; i < b.N; i++ {
		UUID()
	}
}

func BenchmarkUUID_Parallel(b *testing.B) {
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			UUID()
		}
	})
}
