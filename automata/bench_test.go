package automata_test

import (
	"testing"

	"github.com/katalvlaran/tsetlin/automata"
)

// BenchmarkIncrement measures one saturating carry chain over 32 automata.
// Complexity: O(B)
func BenchmarkIncrement(b *testing.B) {
	bank, err := automata.New(1, 32, 8, 127)
	if err != nil {
		b.Fatalf("setup New failed: %v", err)
	}
	s := bank.Clause(0)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s.Increment(0, 0xAAAAAAAA)
		s.Decrement(0, 0x55555555)
	}
}

// BenchmarkCountIncluded measures popcount over a 10k-literal clause.
func BenchmarkCountIncluded(b *testing.B) {
	bank, err := automata.New(1, 10000, 8, 128)
	if err != nil {
		b.Fatalf("setup New failed: %v", err)
	}
	s := bank.Clause(0)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = s.CountIncluded()
	}
}
